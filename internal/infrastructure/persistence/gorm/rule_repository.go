package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/misebox/v1/internal/domain/freshness"
	"github.com/misebox/v1/internal/ports/outbound"
)

// RuleRepository implements the shelf-life knowledge base using GORM
type RuleRepository struct {
	db *gorm.DB
}

// NewRuleRepository creates a new rule repository
func NewRuleRepository(db *gorm.DB) outbound.RuleRepository {
	return &RuleRepository{db: db}
}

// LookupByCanonicalName returns the rule for a canonical name, or nil when
// none exists.
func (r *RuleRepository) LookupByCanonicalName(ctx context.Context, canonical string) (*freshness.Rule, error) {
	var model FreshnessRuleModel
	result := r.db.WithContext(ctx).First(&model, "canonical_name = ?", canonical)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ModelToRule(&model), nil
}

// InsertIfAbsent inserts a rule unless one already exists for its canonical
// name. The conflict is resolved at the database level so concurrent writers
// race safely: the first insert wins, later ones are silently discarded.
func (r *RuleRepository) InsertIfAbsent(ctx context.Context, rule *freshness.Rule) error {
	model := RuleToModel(rule)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "canonical_name"}},
			DoNothing: true,
		}).
		Create(model)
	return result.Error
}
