// Package pantry contains the pantry item record consumed and mutated by the
// freshness engine.
package pantry

import (
	"time"

	"github.com/google/uuid"

	"github.com/misebox/v1/internal/domain/freshness"
)

// Item is one pantry inventory record. The engine owns only the two freshness
// fields; everything else is supplied by the inventory CRUD surface.
type Item struct {
	ID     uuid.UUID
	UserID uuid.UUID

	Name          string
	CanonicalName string
	Category      string
	Subcategory   string

	Quantity *float64
	Unit     string
	Location string
	Brand    string

	PurchaseDate   *time.Time
	OpenedDate     *time.Time
	ExpirationDate *time.Time

	// Owned by the freshness engine. Stale the moment any date field or the
	// canonical name changes; consistency is restored on the next scan.
	FreshnessStatus   freshness.Status
	FreshnessExpires  *time.Time

	MinQuantity    *float64
	IsStaple       bool
	PreferredBrand string
	Notes          string
}

// Canonical returns the normalized join key into the rule table, deriving it
// from the display name when the stored canonical name is empty.
func (i *Item) Canonical() string {
	if c := freshness.NormalizeCanonicalName(i.CanonicalName); c != "" {
		return c
	}
	return freshness.NormalizeCanonicalName(i.Name)
}

// Snapshot projects the item into the classifier's input view.
func (i *Item) Snapshot() freshness.ItemSnapshot {
	return freshness.ItemSnapshot{
		Category:       i.Category,
		Location:       i.Location,
		PurchaseDate:   i.PurchaseDate,
		OpenedDate:     i.OpenedDate,
		ExpirationDate: i.ExpirationDate,
	}
}

// ApplyClassification writes a classification result onto the item and
// reports whether the status changed.
func (i *Item) ApplyClassification(c freshness.Classification) bool {
	changed := i.FreshnessStatus != c.Status
	i.FreshnessStatus = c.Status
	i.FreshnessExpires = c.ExpiresAt
	return changed
}

// IsLowStock reports whether a staple item has dropped to or below its
// configured minimum quantity.
func (i *Item) IsLowStock() bool {
	if !i.IsStaple || i.MinQuantity == nil || i.Quantity == nil {
		return false
	}
	return *i.Quantity <= *i.MinQuantity
}
