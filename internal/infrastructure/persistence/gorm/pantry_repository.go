package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/misebox/v1/internal/domain/freshness"
	"github.com/misebox/v1/internal/domain/pantry"
	"github.com/misebox/v1/internal/ports/outbound"
)

// PantryRepository implements the pantry repository interface using GORM
type PantryRepository struct {
	db *gorm.DB
}

// NewPantryRepository creates a new pantry repository
func NewPantryRepository(db *gorm.DB) outbound.PantryRepository {
	return &PantryRepository{db: db}
}

// FindByUserID returns every item in the user's inventory.
func (r *PantryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*pantry.Item, error) {
	var models []PantryItemModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name asc").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return modelsToItems(models), nil
}

// FindByID finds one item by ID.
func (r *PantryRepository) FindByID(ctx context.Context, id uuid.UUID) (*pantry.Item, error) {
	var model PantryItemModel
	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, pantry.ErrItemNotFound
		}
		return nil, result.Error
	}
	return ModelToItem(&model), nil
}

// FindByStatus returns the user's items currently in the given status.
func (r *PantryRepository) FindByStatus(ctx context.Context, userID uuid.UUID, status freshness.Status) ([]*pantry.Item, error) {
	var models []PantryItemModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND freshness_status = ?", userID, string(status)).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return modelsToItems(models), nil
}

// FindFrozenByCanonicalName returns the first freezer-stored item matching
// the canonical name, or nil when the user has none.
func (r *PantryRepository) FindFrozenByCanonicalName(ctx context.Context, userID uuid.UUID, canonical string) (*pantry.Item, error) {
	var model PantryItemModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND canonical_name = ? AND location = ?", userID, canonical, "freezer").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ModelToItem(&model), nil
}

// FindLowStock returns staple items at or below their minimum quantity.
func (r *PantryRepository) FindLowStock(ctx context.Context, userID uuid.UUID) ([]*pantry.Item, error) {
	var models []PantryItemModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND is_staple = ? AND min_quantity IS NOT NULL AND quantity <= min_quantity",
			userID, true).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return modelsToItems(models), nil
}

// UpdateFreshness writes back only the item's freshness fields.
func (r *PantryRepository) UpdateFreshness(ctx context.Context, item *pantry.Item) error {
	result := r.db.WithContext(ctx).
		Model(&PantryItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"freshness_status":  string(item.FreshnessStatus),
			"freshness_expires": item.FreshnessExpires,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pantry.ErrItemNotFound
	}
	return nil
}

func modelsToItems(models []PantryItemModel) []*pantry.Item {
	items := make([]*pantry.Item, 0, len(models))
	for i := range models {
		items = append(items, ModelToItem(&models[i]))
	}
	return items
}
