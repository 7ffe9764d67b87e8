// Package handlers implements the JSON API handlers for the freshness engine.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appErrors "github.com/misebox/v1/pkg/errors"
)

// userHeader carries the authenticated user's ID, set by the gateway in
// front of this service.
const userHeader = "X-User-ID"

type errorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var appErr *appErrors.AppError
	if e, ok := err.(*appErrors.AppError); ok {
		appErr = e
	} else {
		appErr = appErrors.Wrap(err, "internal error")
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
	}

	writeJSON(w, status, errorResponse{
		Error:   appErr.Message,
		Code:    string(appErr.Code),
		Details: appErr.Details,
	})
}

// userID extracts the caller's user ID from the request header.
func userID(r *http.Request) (uuid.UUID, error) {
	raw := r.Header.Get(userHeader)
	if raw == "" {
		return uuid.Nil, appErrors.NewBadRequestError("missing " + userHeader + " header")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, appErrors.NewBadRequestError("invalid " + userHeader + " header")
	}
	return id, nil
}
