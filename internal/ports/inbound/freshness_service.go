// Package inbound defines the interfaces for inbound ports (primary/driving
// adapters): the use cases the HTTP surface and the scan binary invoke.
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/misebox/v1/internal/domain/freshness"
	"github.com/misebox/v1/internal/domain/notification"
)

// ClassificationResult reports one item's classification run.
type ClassificationResult struct {
	ItemID              uuid.UUID         `json:"item_id"`
	Name                string            `json:"name"`
	OldStatus           freshness.Status  `json:"old_status"`
	NewStatus           freshness.Status  `json:"new_status"`
	EffectiveExpiration *time.Time        `json:"effective_expiration,omitempty"`
	Source              freshness.Source  `json:"source"`
	Changed             bool              `json:"changed"`
}

// ScanAlert is one alert-worthy transition collected during a scan.
type ScanAlert struct {
	ItemID    uuid.UUID        `json:"item_id"`
	Name      string           `json:"name"`
	Status    freshness.Status `json:"status"`
	OldStatus freshness.Status `json:"old_status"`
}

// ScanSummary is the outcome of one full inventory scan.
type ScanSummary struct {
	ItemsScanned int                    `json:"items_scanned"`
	ItemsChanged int                    `json:"items_changed"`
	Alerts       []ScanAlert            `json:"alerts"`
	Details      []ClassificationResult `json:"details"`
}

// NotificationCounts reports how many notifications each generator emitted.
type NotificationCounts struct {
	FreshnessAlerts      int `json:"freshness_alerts"`
	LowStockAlerts       int `json:"low_stock_alerts"`
	ThawReminders        int `json:"thaw_reminders"`
	MealReminders        int `json:"meal_reminders"`
	MaintenanceReminders int `json:"maintenance_reminders"`
}

// NightlyScanReport is the per-user result of the scheduled scan: the scan
// summary plus the notification fan-out.
type NightlyScanReport struct {
	UserID        uuid.UUID          `json:"user_id"`
	Scan          *ScanSummary       `json:"scan,omitempty"`
	Notifications NotificationCounts `json:"notifications"`
	Timestamp     time.Time          `json:"timestamp"`
	Err           string             `json:"error,omitempty"`
}

// FreshnessService is the freshness engine's use-case surface.
type FreshnessService interface {
	// ClassifyItem classifies a single item owned by userID and persists the
	// result. An item belonging to another user reads as not found. External
	// estimator failures degrade to rule-based classification and are never
	// returned to the caller; only structural failures (missing item, store
	// errors) surface.
	ClassifyItem(ctx context.Context, userID, itemID uuid.UUID, allowAI, forceAI bool) (*ClassificationResult, error)

	// RunScan classifies every dated item in the user's inventory.
	RunScan(ctx context.Context, userID uuid.UUID, allowAI bool) (*ScanSummary, error)

	// RunUserScan runs the full nightly pipeline (scan plus all notification
	// generators) for one user.
	RunUserScan(ctx context.Context, userID uuid.UUID) (*NightlyScanReport, error)

	// RunNightlyScan runs the pipeline for every known user.
	RunNightlyScan(ctx context.Context) ([]*NightlyScanReport, error)
}

// FeedPage is the notification list response.
type FeedPage struct {
	Notifications []*notification.Notification `json:"notifications"`
	UnreadCount   int                          `json:"unread_count"`
}

// NotificationService exposes the per-user feed and the generators that fill it.
type NotificationService interface {
	GetNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) (*FeedPage, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)
	ClearNotifications(ctx context.Context, userID uuid.UUID) error

	GenerateFreshnessAlerts(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error)
	GenerateLowStockAlerts(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error)
	GenerateThawReminders(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error)
	GenerateMealReminders(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error)
	GenerateMaintenanceReminders(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error)
}
