package gorm

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/misebox/v1/internal/domain/kitchen"
	"github.com/misebox/v1/internal/ports/outbound"
)

// ToolRepository implements kitchen tool reads for the maintenance generator
type ToolRepository struct {
	db *gorm.DB
}

// NewToolRepository creates a new tool repository
func NewToolRepository(db *gorm.DB) outbound.ToolRepository {
	return &ToolRepository{db: db}
}

// FindWithMaintenanceSchedule returns tools that carry both a maintenance
// interval and a last-maintained date.
func (r *ToolRepository) FindWithMaintenanceSchedule(ctx context.Context, userID uuid.UUID) ([]*kitchen.Tool, error) {
	var models []KitchenToolModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND maintenance_interval_days IS NOT NULL AND last_maintained IS NOT NULL", userID).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	tools := make([]*kitchen.Tool, 0, len(models))
	for i := range models {
		tools = append(tools, ModelToTool(&models[i]))
	}
	return tools, nil
}
