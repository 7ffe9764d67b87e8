// Package testutils provides test data factories, mocks and database setup
// shared by the test suites.
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/misebox/v1/internal/domain/freshness"
	"github.com/misebox/v1/internal/domain/kitchen"
	"github.com/misebox/v1/internal/domain/pantry"
)

// ItemBuilder provides a fluent interface for building test pantry items
type ItemBuilder struct {
	item pantry.Item
}

// NewItemBuilder creates an item builder with plausible defaults.
func NewItemBuilder() *ItemBuilder {
	faker := gofakeit.New(time.Now().UnixNano())
	return &ItemBuilder{
		item: pantry.Item{
			ID:              uuid.New(),
			UserID:          uuid.New(),
			Name:            faker.Vegetable(),
			Category:        "produce",
			Unit:            "pieces",
			Location:        "fridge",
			FreshnessStatus: freshness.StatusFresh,
		},
	}
}

func (b *ItemBuilder) WithUser(userID uuid.UUID) *ItemBuilder {
	b.item.UserID = userID
	return b
}

func (b *ItemBuilder) WithName(name string) *ItemBuilder {
	b.item.Name = name
	return b
}

func (b *ItemBuilder) WithCanonicalName(canonical string) *ItemBuilder {
	b.item.CanonicalName = canonical
	return b
}

func (b *ItemBuilder) WithCategory(category string) *ItemBuilder {
	b.item.Category = category
	return b
}

func (b *ItemBuilder) WithLocation(location string) *ItemBuilder {
	b.item.Location = location
	return b
}

func (b *ItemBuilder) WithQuantity(quantity float64, unit string) *ItemBuilder {
	b.item.Quantity = &quantity
	b.item.Unit = unit
	return b
}

// PurchasedDaysAgo sets the purchase date relative to today.
func (b *ItemBuilder) PurchasedDaysAgo(days int) *ItemBuilder {
	d := freshness.DateOnly(time.Now()).AddDate(0, 0, -days)
	b.item.PurchaseDate = &d
	return b
}

// OpenedDaysAgo sets the opened date relative to today.
func (b *ItemBuilder) OpenedDaysAgo(days int) *ItemBuilder {
	d := freshness.DateOnly(time.Now()).AddDate(0, 0, -days)
	b.item.OpenedDate = &d
	return b
}

// ExpiresInDays sets the printed expiration date relative to today.
func (b *ItemBuilder) ExpiresInDays(days int) *ItemBuilder {
	d := freshness.DateOnly(time.Now()).AddDate(0, 0, days)
	b.item.ExpirationDate = &d
	return b
}

func (b *ItemBuilder) WithStatus(status freshness.Status) *ItemBuilder {
	b.item.FreshnessStatus = status
	return b
}

// AsStaple marks the item as a staple with a minimum quantity.
func (b *ItemBuilder) AsStaple(min float64) *ItemBuilder {
	b.item.IsStaple = true
	b.item.MinQuantity = &min
	return b
}

func (b *ItemBuilder) Build() *pantry.Item {
	clone := b.item
	return &clone
}

// NewRule creates a shelf-life rule for tests.
func NewRule(canonical, category string, sealedDays, openedDays int) *freshness.Rule {
	sealed, opened := sealedDays, openedDays
	return &freshness.Rule{
		CanonicalName:       canonical,
		Category:            category,
		SealedShelfLifeDays: &sealed,
		OpenedShelfLifeDays: &opened,
		Source:              freshness.RuleSourceCurated,
	}
}

// NewMealPlan creates an uncompleted, recipe-linked meal plan for tests.
func NewMealPlan(userID, recipeID uuid.UUID, daysFromNow int, mealType string) *kitchen.MealPlan {
	return &kitchen.MealPlan{
		ID:       uuid.New(),
		UserID:   userID,
		PlanDate: freshness.DateOnly(time.Now()).AddDate(0, 0, daysFromNow),
		MealType: mealType,
		RecipeID: &recipeID,
		Servings: 2,
	}
}

// NewTool creates a kitchen tool with a maintenance schedule for tests.
func NewTool(userID uuid.UUID, name string, intervalDays, lastMaintainedDaysAgo int) *kitchen.Tool {
	interval := intervalDays
	last := freshness.DateOnly(time.Now()).AddDate(0, 0, -lastMaintainedDaysAgo)
	return &kitchen.Tool{
		ID:                      uuid.New(),
		UserID:                  userID,
		Name:                    name,
		MaintenanceType:         "sharpen",
		MaintenanceIntervalDays: &interval,
		LastMaintained:          &last,
	}
}

// DaysFromToday returns midnight UTC the given number of days from today.
func DaysFromToday(days int) time.Time {
	return freshness.DateOnly(time.Now()).AddDate(0, 0, days)
}
