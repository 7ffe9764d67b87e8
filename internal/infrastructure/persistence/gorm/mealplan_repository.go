package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/misebox/v1/internal/domain/kitchen"
	"github.com/misebox/v1/internal/ports/outbound"
)

// MealPlanRepository implements meal-plan reads for the reminder generators
type MealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository creates a new meal plan repository
func NewMealPlanRepository(db *gorm.DB) outbound.MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// FindUpcoming returns uncompleted, recipe-linked meals in [from, to] that
// have not had a thaw reminder yet.
func (r *MealPlanRepository) FindUpcoming(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*kitchen.MealPlan, error) {
	var models []MealPlanModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND plan_date BETWEEN ? AND ?", userID, from, to).
		Where("completed = ? AND recipe_id IS NOT NULL AND thaw_reminder_sent = ?", false, false).
		Order("plan_date asc").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return modelsToMealPlans(models), nil
}

// FindForDate returns the user's uncompleted meals for one day.
func (r *MealPlanRepository) FindForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*kitchen.MealPlan, error) {
	var models []MealPlanModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND plan_date = ? AND completed = ?", userID, date, false).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}
	return modelsToMealPlans(models), nil
}

// MarkThawReminderSent flags a meal so it is reminded at most once.
func (r *MealPlanRepository) MarkThawReminderSent(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&MealPlanModel{}).
		Where("id = ?", id).
		Update("thaw_reminder_sent", true).Error
}

// FindRecipe loads a recipe with its ingredient lines, or nil when missing.
func (r *MealPlanRepository) FindRecipe(ctx context.Context, id uuid.UUID) (*kitchen.Recipe, error) {
	var model RecipeModel
	result := r.db.WithContext(ctx).
		Preload("Ingredients").
		First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return ModelToRecipe(&model), nil
}

func modelsToMealPlans(models []MealPlanModel) []*kitchen.MealPlan {
	plans := make([]*kitchen.MealPlan, 0, len(models))
	for i := range models {
		plans = append(plans, ModelToMealPlan(&models[i]))
	}
	return plans
}
