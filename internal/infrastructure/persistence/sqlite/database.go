// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/misebox/v1/internal/domain/freshness"
	gormModels "github.com/misebox/v1/internal/infrastructure/persistence/gorm"
)

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(gormModels.AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedRules populates the shelf-life knowledge base with curated rules for
// common ingredients. Existing rules are left untouched.
func SeedRules(db *gorm.DB) error {
	var count int64
	if err := db.Model(&gormModels.FreshnessRuleModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil // Already seeded
	}

	for _, rule := range curatedRules() {
		model := gormModels.RuleToModel(&rule)
		if err := db.Create(model).Error; err != nil {
			return fmt.Errorf("failed to seed rule %q: %w", rule.CanonicalName, err)
		}
	}
	return nil
}

func curatedRules() []freshness.Rule {
	type entry struct {
		name     string
		category string
		sealed   int
		opened   int
		frozen   int
		location string
		tips     string
		freeze   bool
	}
	entries := []entry{
		{"milk", "dairy", 7, 5, 90, "fridge", "Keep on an interior shelf, not the door.", true},
		{"butter", "dairy", 60, 30, 270, "fridge", "Freezes well; wrap tightly.", true},
		{"eggs", "dairy", 35, 35, 0, "fridge", "Store in the original carton.", false},
		{"yogurt", "dairy", 14, 7, 60, "fridge", "Keep sealed until use.", true},
		{"cheddar cheese", "dairy", 60, 21, 240, "fridge", "Rewrap in parchment, not plastic.", true},
		{"chicken breast", "meat", 2, 2, 270, "fridge", "Cook or freeze within two days of purchase.", true},
		{"ground beef", "meat", 2, 2, 120, "fridge", "Cook or freeze within two days of purchase.", true},
		{"bacon", "meat", 14, 7, 30, "fridge", "Freeze in portioned slices.", true},
		{"salmon", "seafood", 2, 1, 90, "fridge", "Keep on ice and use quickly.", true},
		{"shrimp", "seafood", 2, 1, 180, "fridge", "Buy frozen when possible.", true},
		{"lettuce", "produce", 7, 5, 0, "fridge", "Wrap in a paper towel inside a bag.", false},
		{"spinach", "produce", 7, 5, 300, "fridge", "Freeze only for cooked use.", true},
		{"tomatoes", "produce", 7, 4, 60, "counter", "Refrigerate only once fully ripe.", true},
		{"onions", "produce", 30, 7, 240, "pantry", "Store cool and dark, away from potatoes.", true},
		{"garlic", "produce", 90, 14, 365, "pantry", "Keep heads whole until needed.", true},
		{"potatoes", "produce", 30, 7, 0, "pantry", "Store dark; do not refrigerate raw.", false},
		{"apples", "produce", 30, 14, 240, "fridge", "Keep away from other produce; apples emit ethylene.", true},
		{"bananas", "produce", 5, 3, 90, "counter", "Freeze peeled for smoothies.", true},
		{"bread", "grains", 7, 5, 90, "counter", "Freeze sliced for easy toasting.", true},
		{"rice", "grains", 730, 365, 0, "pantry", "Keep dry and sealed.", false},
		{"pasta", "grains", 730, 365, 0, "pantry", "Keep dry and sealed.", false},
		{"olive oil", "oils", 540, 180, 0, "pantry", "Store away from heat and light.", false},
		{"soy sauce", "asian_pantry", 1095, 365, 0, "pantry", "Refrigerate after opening for best flavor.", false},
		{"ketchup", "condiments", 365, 180, 0, "fridge", "Refrigerate after opening.", false},
		{"mayonnaise", "condiments", 365, 60, 0, "fridge", "Refrigerate after opening.", false},
	}

	rules := make([]freshness.Rule, 0, len(entries))
	for _, e := range entries {
		rule := freshness.Rule{
			CanonicalName:   e.name,
			Category:        e.category,
			StorageLocation: e.location,
			StorageTips:     e.tips,
			Source:          freshness.RuleSourceCurated,
		}
		sealed, opened := e.sealed, e.opened
		rule.SealedShelfLifeDays = &sealed
		rule.OpenedShelfLifeDays = &opened
		if e.frozen > 0 {
			frozen := e.frozen
			rule.FrozenShelfLifeDays = &frozen
		}
		freezable := e.freeze
		rule.Freezable = &freezable
		rules = append(rules, rule)
	}
	return rules
}
