// Package notification defines the per-user notification feed entries emitted
// by the freshness engine and its companion generators.
package notification

import (
	"time"

	"github.com/google/uuid"
)

// Type classifies what kind of condition raised the notification.
type Type string

const (
	TypeFreshnessAlert      Type = "freshness_alert"
	TypeLowStock            Type = "low_stock"
	TypeThawReminder        Type = "thaw_reminder"
	TypeMealReminder        Type = "meal_reminder"
	TypeMaintenanceReminder Type = "maintenance_reminder"
)

// Severity orders notifications by urgency.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Action is the UI hint attached to a notification.
type Action struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

// Notification is one entry in a user's bounded feed. Entries are immutable
// except for the read flag.
type Notification struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Type       Type       `json:"type"`
	Severity   Severity   `json:"severity"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	ItemID     *uuid.UUID `json:"item_id,omitempty"`
	MealPlanID *uuid.UUID `json:"meal_plan_id,omitempty"`
	ToolID     *uuid.UUID `json:"tool_id,omitempty"`
	Action     Action     `json:"action"`
	Read       bool       `json:"read"`
	CreatedAt  time.Time  `json:"created_at"`
}

// New stamps identity, creation time and the unread state onto a freshly
// generated notification.
func New(userID uuid.UUID, t Type, severity Severity, title, message string) *Notification {
	return &Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      t,
		Severity:  severity,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}

// WithItem attaches the originating pantry item.
func (n *Notification) WithItem(id uuid.UUID) *Notification {
	n.ItemID = &id
	return n
}

// WithMealPlan attaches the originating meal plan entry.
func (n *Notification) WithMealPlan(id uuid.UUID) *Notification {
	n.MealPlanID = &id
	return n
}

// WithTool attaches the originating kitchen tool.
func (n *Notification) WithTool(id uuid.UUID) *Notification {
	n.ToolID = &id
	return n
}

// WithAction attaches the UI action hint.
func (n *Notification) WithAction(actionType, label string) *Notification {
	n.Action = Action{Type: actionType, Label: label}
	return n
}

// FeedCap bounds the per-user feed: only the newest entries survive.
const FeedCap = 50
