// Package outbound defines the interfaces for outbound ports (secondary/driven
// adapters): the stores and external services the freshness engine depends on.
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/misebox/v1/internal/domain/freshness"
	"github.com/misebox/v1/internal/domain/kitchen"
	"github.com/misebox/v1/internal/domain/notification"
	"github.com/misebox/v1/internal/domain/pantry"
)

// PantryRepository is the inventory store collaborator. The engine reads a
// user's items and writes back only the two freshness fields.
type PantryRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*pantry.Item, error)
	FindByID(ctx context.Context, id uuid.UUID) (*pantry.Item, error)
	FindByStatus(ctx context.Context, userID uuid.UUID, status freshness.Status) ([]*pantry.Item, error)
	FindFrozenByCanonicalName(ctx context.Context, userID uuid.UUID, canonical string) (*pantry.Item, error)
	FindLowStock(ctx context.Context, userID uuid.UUID) ([]*pantry.Item, error)
	UpdateFreshness(ctx context.Context, item *pantry.Item) error
}

// RuleRepository is the shelf-life knowledge base. InsertIfAbsent must be an
// idempotent first-write-wins insert: a concurrent duplicate is discarded
// silently, never surfaced as a uniqueness error.
type RuleRepository interface {
	LookupByCanonicalName(ctx context.Context, canonical string) (*freshness.Rule, error)
	InsertIfAbsent(ctx context.Context, rule *freshness.Rule) error
}

// NotificationFeed is the bounded per-user notification store. Push prepends
// and trims the feed to notification.FeedCap entries.
type NotificationFeed interface {
	Push(ctx context.Context, n *notification.Notification) error
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*notification.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

// MealPlanRepository supplies planned meals to the reminder generators.
type MealPlanRepository interface {
	FindUpcoming(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*kitchen.MealPlan, error)
	FindForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*kitchen.MealPlan, error)
	MarkThawReminderSent(ctx context.Context, id uuid.UUID) error
	FindRecipe(ctx context.Context, id uuid.UUID) (*kitchen.Recipe, error)
}

// ToolRepository supplies kitchen tools with maintenance schedules.
type ToolRepository interface {
	FindWithMaintenanceSchedule(ctx context.Context, userID uuid.UUID) ([]*kitchen.Tool, error)
}

// UserDirectory enumerates tenants for the nightly scan.
type UserDirectory interface {
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
}
