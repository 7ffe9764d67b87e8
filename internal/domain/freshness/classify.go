package freshness

import (
	"strings"
	"time"
)

// Source identifies which link of the inference chain produced a
// classification. The chain is evaluated in a fixed priority order:
// exact rule, then AI estimate, then category default.
type Source string

const (
	SourceExactRule       Source = "exact_rule"
	SourceCategoryDefault Source = "category_default"
	SourceAIEstimate      Source = "ai_estimate"
)

// ItemSnapshot is the read-only view of a pantry item the classifier needs.
// All dates carry date-only semantics.
type ItemSnapshot struct {
	Category       string
	Location       string
	PurchaseDate   *time.Time
	OpenedDate     *time.Time
	ExpirationDate *time.Time
}

// HasDateSignal reports whether the item carries at least one date the engine
// can reason about. Items without any date signal are skipped by scans.
func (s ItemSnapshot) HasDateSignal() bool {
	return s.PurchaseDate != nil || s.OpenedDate != nil || s.ExpirationDate != nil
}

// Classification is the outcome of one classifier run.
type Classification struct {
	Status    Status
	ExpiresAt *time.Time
	Source    Source
}

// Classify computes (status, effective expiration) for an item. When rule is
// nil the category defaults apply and the source is SourceCategoryDefault.
//
// Precedence: an opened shelf life beats a sealed-from-purchase shelf life
// beats the printed expiration date. The printed date then acts as a hard
// ceiling on the candidate. Freezer storage extends the result: the frozen
// candidate (purchase date plus the rule's frozen days, default 180) competes
// with the clipped candidate and the later of the two wins, so freezing never
// shortens a shelf life already derived.
func Classify(item ItemSnapshot, rule *Rule, today time.Time) Classification {
	src := SourceCategoryDefault
	shelf := DefaultShelfLife(item.Category)
	if rule != nil {
		src = SourceExactRule
		shelf = rule.ShelfLife()
	}

	today = DateOnly(today)

	var candidate time.Time
	switch {
	case item.OpenedDate != nil && shelf.OpenedDays != nil:
		candidate = DateOnly(*item.OpenedDate).AddDate(0, 0, *shelf.OpenedDays)
	case item.PurchaseDate != nil && shelf.SealedDays != nil:
		candidate = DateOnly(*item.PurchaseDate).AddDate(0, 0, *shelf.SealedDays)
	case item.ExpirationDate != nil:
		candidate = DateOnly(*item.ExpirationDate)
	default:
		// No date input at all: no actionable signal, not an error.
		return Classification{Status: StatusFresh, Source: src}
	}

	if item.ExpirationDate != nil {
		if printed := DateOnly(*item.ExpirationDate); printed.Before(candidate) {
			candidate = printed
		}
	}

	if isFreezer(item.Location) && item.PurchaseDate != nil {
		frozenDays := DefaultFrozenDays
		if shelf.FrozenDays != nil {
			frozenDays = *shelf.FrozenDays
		}
		frozen := DateOnly(*item.PurchaseDate).AddDate(0, 0, frozenDays)
		if frozen.After(candidate) {
			candidate = frozen
		}
	}

	return Classification{
		Status:    StatusForDaysRemaining(DaysBetween(today, candidate)),
		ExpiresAt: &candidate,
		Source:    src,
	}
}

// DateOnly truncates a timestamp to midnight UTC, the engine's calendar-day
// resolution.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b (negative when b is
// in the past). Both arguments are truncated to dates first.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

func isFreezer(location string) bool {
	return strings.EqualFold(strings.TrimSpace(location), "freezer")
}
