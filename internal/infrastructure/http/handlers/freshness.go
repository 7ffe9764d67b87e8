package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/misebox/v1/internal/ports/inbound"
	appErrors "github.com/misebox/v1/pkg/errors"
)

// FreshnessHandlers serves the scan and classification endpoints.
type FreshnessHandlers struct {
	service inbound.FreshnessService
	allowAI bool
	logger  *zap.Logger
}

// NewFreshnessHandlers creates the freshness API handlers. allowAI is the
// deployment-wide default for whether scans may call the estimator.
func NewFreshnessHandlers(service inbound.FreshnessService, allowAI bool, logger *zap.Logger) *FreshnessHandlers {
	return &FreshnessHandlers{
		service: service,
		allowAI: allowAI,
		logger:  logger.Named("freshness-handlers"),
	}
}

// HandleScan triggers a full inventory scan for the caller.
// POST /api/v1/scan?allow_ai=true|false
func (h *FreshnessHandlers) HandleScan(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	allowAI := h.allowAI
	if raw := r.URL.Query().Get("allow_ai"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, h.logger, appErrors.NewBadRequestError("invalid allow_ai value"))
			return
		}
		allowAI = parsed
	}

	summary, err := h.service.RunScan(r.Context(), uid, allowAI)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// HandleClassifyItem classifies a single item on demand.
// POST /api/v1/items/{id}/freshness?force_ai=true|false
func (h *FreshnessHandlers) HandleClassifyItem(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, appErrors.NewBadRequestError("invalid item id"))
		return
	}

	forceAI := false
	if raw := r.URL.Query().Get("force_ai"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, h.logger, appErrors.NewBadRequestError("invalid force_ai value"))
			return
		}
		forceAI = parsed
	}

	result, err := h.service.ClassifyItem(r.Context(), uid, itemID, h.allowAI, forceAI)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleNightlyScan runs the full pipeline for the caller, scan plus
// notification generators.
// POST /api/v1/scan/full
func (h *FreshnessHandlers) HandleNightlyScan(w http.ResponseWriter, r *http.Request) {
	uid, err := userID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	report, err := h.service.RunUserScan(r.Context(), uid)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
