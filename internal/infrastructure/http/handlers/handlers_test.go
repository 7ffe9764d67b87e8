package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/misebox/v1/internal/domain/freshness"
	"github.com/misebox/v1/internal/ports/inbound"
	appErrors "github.com/misebox/v1/pkg/errors"
	"github.com/misebox/v1/test/testutils"
)

func newRouter(fs *testutils.MockFreshnessService, ns *testutils.MockNotificationService) *chi.Mux {
	fh := NewFreshnessHandlers(fs, true, zap.NewNop())
	nh := NewNotificationHandlers(ns, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/api/v1/scan", fh.HandleScan)
	r.Post("/api/v1/scan/full", fh.HandleNightlyScan)
	r.Post("/api/v1/items/{id}/freshness", fh.HandleClassifyItem)
	r.Get("/api/v1/notifications", nh.HandleList)
	r.Post("/api/v1/notifications/{id}/read", nh.HandleMarkRead)
	r.Post("/api/v1/notifications/read-all", nh.HandleMarkAllRead)
	r.Delete("/api/v1/notifications", nh.HandleClear)
	return r
}

func doRequest(t *testing.T, router http.Handler, method, target string, userID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestScanEndpoint(t *testing.T) {
	t.Run("MissingUserHeader_ShouldReturn400", func(t *testing.T) {
		router := newRouter(new(testutils.MockFreshnessService), new(testutils.MockNotificationService))

		rec := doRequest(t, router, http.MethodPost, "/api/v1/scan", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ValidRequest_ShouldReturnSummary", func(t *testing.T) {
		fs := new(testutils.MockFreshnessService)
		router := newRouter(fs, new(testutils.MockNotificationService))
		userID := uuid.New()
		fs.On("RunScan", mock.Anything, userID, true).Return(&inbound.ScanSummary{
			ItemsScanned: 3,
			ItemsChanged: 1,
			Alerts:       []inbound.ScanAlert{},
			Details:      []inbound.ClassificationResult{},
		}, nil)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/scan", userID.String())

		require.Equal(t, http.StatusOK, rec.Code)
		var summary inbound.ScanSummary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
		assert.Equal(t, 3, summary.ItemsScanned)
		assert.Equal(t, 1, summary.ItemsChanged)
	})

	t.Run("AllowAIQueryParam_ShouldOverrideDefault", func(t *testing.T) {
		fs := new(testutils.MockFreshnessService)
		router := newRouter(fs, new(testutils.MockNotificationService))
		userID := uuid.New()
		fs.On("RunScan", mock.Anything, userID, false).Return(&inbound.ScanSummary{}, nil)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/scan?allow_ai=false", userID.String())

		assert.Equal(t, http.StatusOK, rec.Code)
		fs.AssertExpectations(t)
	})

	t.Run("BadAllowAIValue_ShouldReturn400", func(t *testing.T) {
		router := newRouter(new(testutils.MockFreshnessService), new(testutils.MockNotificationService))

		rec := doRequest(t, router, http.MethodPost, "/api/v1/scan?allow_ai=maybe", uuid.New().String())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestClassifyItemEndpoint(t *testing.T) {
	t.Run("InvalidItemID_ShouldReturn400", func(t *testing.T) {
		router := newRouter(new(testutils.MockFreshnessService), new(testutils.MockNotificationService))

		rec := doRequest(t, router, http.MethodPost, "/api/v1/items/not-a-uuid/freshness", uuid.New().String())

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("UnknownItem_ShouldReturn404", func(t *testing.T) {
		fs := new(testutils.MockFreshnessService)
		router := newRouter(fs, new(testutils.MockNotificationService))
		userID := uuid.New()
		itemID := uuid.New()
		fs.On("ClassifyItem", mock.Anything, userID, itemID, true, false).
			Return(nil, appErrors.NewItemNotFoundError(itemID.String()))

		rec := doRequest(t, router, http.MethodPost, "/api/v1/items/"+itemID.String()+"/freshness", userID.String())

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("ForceAI_ShouldPassCallerAndFlagsThrough", func(t *testing.T) {
		fs := new(testutils.MockFreshnessService)
		router := newRouter(fs, new(testutils.MockNotificationService))
		userID := uuid.New()
		itemID := uuid.New()
		fs.On("ClassifyItem", mock.Anything, userID, itemID, true, true).
			Return(&inbound.ClassificationResult{
				ItemID:    itemID,
				NewStatus: freshness.StatusUseSoon,
				Source:    freshness.SourceAIEstimate,
				Changed:   true,
			}, nil)

		rec := doRequest(t, router, http.MethodPost,
			"/api/v1/items/"+itemID.String()+"/freshness?force_ai=true", userID.String())

		require.Equal(t, http.StatusOK, rec.Code)
		var result inbound.ClassificationResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, freshness.StatusUseSoon, result.NewStatus)
		assert.Equal(t, freshness.SourceAIEstimate, result.Source)
	})
}

func TestNotificationEndpoints(t *testing.T) {
	t.Run("List_ShouldReturnFeedPage", func(t *testing.T) {
		ns := new(testutils.MockNotificationService)
		router := newRouter(new(testutils.MockFreshnessService), ns)
		userID := uuid.New()
		ns.On("GetNotifications", mock.Anything, userID, true).
			Return(&inbound.FeedPage{UnreadCount: 2}, nil)

		rec := doRequest(t, router, http.MethodGet, "/api/v1/notifications?unread_only=true", userID.String())

		require.Equal(t, http.StatusOK, rec.Code)
		var page inbound.FeedPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, 2, page.UnreadCount)
	})

	t.Run("MarkRead_Unknown_ShouldReturn404", func(t *testing.T) {
		ns := new(testutils.MockNotificationService)
		router := newRouter(new(testutils.MockFreshnessService), ns)
		userID := uuid.New()
		id := uuid.New()
		ns.On("MarkRead", mock.Anything, userID, id).
			Return(appErrors.NewNotificationNotFoundError(id.String()))

		rec := doRequest(t, router, http.MethodPost, "/api/v1/notifications/"+id.String()+"/read", userID.String())

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("MarkAllRead_ShouldReportCount", func(t *testing.T) {
		ns := new(testutils.MockNotificationService)
		router := newRouter(new(testutils.MockFreshnessService), ns)
		userID := uuid.New()
		ns.On("MarkAllRead", mock.Anything, userID).Return(7, nil)

		rec := doRequest(t, router, http.MethodPost, "/api/v1/notifications/read-all", userID.String())

		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]int
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 7, body["marked_read"])
	})

	t.Run("Clear_ShouldReturn204", func(t *testing.T) {
		ns := new(testutils.MockNotificationService)
		router := newRouter(new(testutils.MockFreshnessService), ns)
		userID := uuid.New()
		ns.On("ClearNotifications", mock.Anything, userID).Return(nil)

		rec := doRequest(t, router, http.MethodDelete, "/api/v1/notifications", userID.String())

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
