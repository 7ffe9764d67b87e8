// Package kitchen holds the supporting records the notification generators
// read: planned meals, recipe ingredient references and kitchen tools.
package kitchen

import (
	"time"

	"github.com/google/uuid"
)

// MealPlan is one planned meal on a user's calendar.
type MealPlan struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	PlanDate         time.Time
	MealType         string
	RecipeID         *uuid.UUID
	CustomMeal       string
	Servings         int
	Completed        bool
	ThawReminderSent bool
	Notes            string
}

// RecipeIngredient is the slice of a recipe the thaw-reminder generator
// cares about: the canonical name to join against the pantry, and whether
// the ingredient is optional.
type RecipeIngredient struct {
	CanonicalName string
	Optional      bool
}

// Recipe carries just enough of a saved recipe for reminder text and
// ingredient matching.
type Recipe struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Ingredients []RecipeIngredient
}

// Tool is a kitchen tool with an optional maintenance schedule.
type Tool struct {
	ID                      uuid.UUID
	UserID                  uuid.UUID
	Name                    string
	Category                string
	MaintenanceType         string
	MaintenanceIntervalDays *int
	LastMaintained          *time.Time
}

// MaintenanceDueBy reports whether the tool's next maintenance falls on or
// before the given date. Tools without a schedule are never due.
func (t *Tool) MaintenanceDueBy(by time.Time) bool {
	if t.MaintenanceIntervalDays == nil || t.LastMaintained == nil {
		return false
	}
	next := t.LastMaintained.AddDate(0, 0, *t.MaintenanceIntervalDays)
	return !next.After(by)
}
