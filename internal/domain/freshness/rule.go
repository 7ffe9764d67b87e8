package freshness

import (
	"strings"
	"time"
)

// RuleSourceCurated and RuleSourceAIEstimate tag where a shelf-life rule came
// from. Rules are global: shelf life is a property of the ingredient, not of
// the owner, so every user shares the same rule table.
const (
	RuleSourceCurated    = "curated"
	RuleSourceAIEstimate = "AI estimate"
)

// Rule is a cached or curated record of how long an ingredient lasts sealed,
// opened or frozen. Keyed by canonical ingredient name; first write wins and
// later scans never overwrite an existing rule.
type Rule struct {
	CanonicalName       string
	Category            string
	SealedShelfLifeDays *int
	OpenedShelfLifeDays *int
	FrozenShelfLifeDays *int
	StorageLocation     string
	StorageTips         string
	Freezable           *bool
	Source              string
	CreatedAt           time.Time
}

// NormalizeCanonicalName lowercases and trims an ingredient name and strips
// any parenthetical (brand or packaging notes) so that "Kerrygold Butter
// (salted)" and "kerrygold butter" join to the same rule.
func NormalizeCanonicalName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if i := strings.Index(name, "("); i >= 0 {
		name = name[:i]
	}
	return strings.TrimSpace(name)
}

// ShelfLife is the resolved set of shelf-life parameters used by the
// classifier, whether they came from an exact rule or a category default.
type ShelfLife struct {
	SealedDays *int
	OpenedDays *int
	FrozenDays *int
}

// defaultShelfLife maps a category to (sealed, opened) shelf-life days.
var defaultShelfLife = map[string][2]int{
	"produce":      {7, 4},
	"dairy":        {14, 7},
	"meat":         {5, 3},
	"seafood":      {3, 2},
	"grains":       {365, 180},
	"spices":       {730, 365},
	"canned":       {730, 5},
	"frozen":       {180, 90},
	"condiments":   {365, 90},
	"baking":       {365, 180},
	"beverages":    {365, 7},
	"snacks":       {90, 14},
	"oils":         {365, 180},
	"asian_pantry": {365, 90},
	"latin_pantry": {365, 90},
	"preserved":    {365, 30},
	"alcohol":      {730, 365},
}

// Conservative fallback for categories outside the table.
const (
	fallbackSealedDays = 30
	fallbackOpenedDays = 14
)

// DefaultFrozenDays is applied to freezer-stored items when no rule supplies
// a frozen shelf life.
const DefaultFrozenDays = 180

// DefaultShelfLife returns the category-default shelf life. Category matching
// is case-insensitive; unknown categories get the conservative fallback.
func DefaultShelfLife(category string) ShelfLife {
	sealed, opened := fallbackSealedDays, fallbackOpenedDays
	if d, ok := defaultShelfLife[strings.ToLower(strings.TrimSpace(category))]; ok {
		sealed, opened = d[0], d[1]
	}
	return ShelfLife{SealedDays: &sealed, OpenedDays: &opened}
}

// ShelfLife projects the rule's day counts into the classifier's input shape.
func (r *Rule) ShelfLife() ShelfLife {
	return ShelfLife{
		SealedDays: r.SealedShelfLifeDays,
		OpenedDays: r.OpenedShelfLifeDays,
		FrozenDays: r.FrozenShelfLifeDays,
	}
}
