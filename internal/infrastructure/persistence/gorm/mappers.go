package gorm

import (
	"github.com/misebox/v1/internal/domain/freshness"
	"github.com/misebox/v1/internal/domain/kitchen"
	"github.com/misebox/v1/internal/domain/notification"
	"github.com/misebox/v1/internal/domain/pantry"
)

// ModelToItem converts a pantry item row to its domain form.
func ModelToItem(m *PantryItemModel) *pantry.Item {
	return &pantry.Item{
		ID:               m.ID,
		UserID:           m.UserID,
		Name:             m.Name,
		CanonicalName:    m.CanonicalName,
		Category:         m.Category,
		Subcategory:      m.Subcategory,
		Quantity:         m.Quantity,
		Unit:             m.Unit,
		Location:         m.Location,
		Brand:            m.Brand,
		PurchaseDate:     m.PurchaseDate,
		OpenedDate:       m.OpenedDate,
		ExpirationDate:   m.ExpirationDate,
		FreshnessStatus:  freshness.Status(m.FreshnessStatus),
		FreshnessExpires: m.FreshnessExpires,
		MinQuantity:      m.MinQuantity,
		IsStaple:         m.IsStaple,
		PreferredBrand:   m.PreferredBrand,
		Notes:            m.Notes,
	}
}

// ItemToModel converts a domain pantry item to its row form.
func ItemToModel(i *pantry.Item) *PantryItemModel {
	return &PantryItemModel{
		ID:               i.ID,
		UserID:           i.UserID,
		Name:             i.Name,
		CanonicalName:    i.CanonicalName,
		Category:         i.Category,
		Subcategory:      i.Subcategory,
		Quantity:         i.Quantity,
		Unit:             i.Unit,
		Location:         i.Location,
		Brand:            i.Brand,
		PurchaseDate:     i.PurchaseDate,
		OpenedDate:       i.OpenedDate,
		ExpirationDate:   i.ExpirationDate,
		FreshnessStatus:  string(i.FreshnessStatus),
		FreshnessExpires: i.FreshnessExpires,
		MinQuantity:      i.MinQuantity,
		IsStaple:         i.IsStaple,
		PreferredBrand:   i.PreferredBrand,
		Notes:            i.Notes,
	}
}

// ModelToRule converts a shelf-life rule row to its domain form.
func ModelToRule(m *FreshnessRuleModel) *freshness.Rule {
	return &freshness.Rule{
		CanonicalName:       m.CanonicalName,
		Category:            m.Category,
		SealedShelfLifeDays: m.SealedShelfLifeDays,
		OpenedShelfLifeDays: m.OpenedShelfLifeDays,
		FrozenShelfLifeDays: m.FrozenShelfLifeDays,
		StorageLocation:     m.StorageLocation,
		StorageTips:         m.StorageTips,
		Freezable:           m.Freezable,
		Source:              m.Source,
		CreatedAt:           m.CreatedAt,
	}
}

// RuleToModel converts a domain rule to its row form.
func RuleToModel(r *freshness.Rule) *FreshnessRuleModel {
	return &FreshnessRuleModel{
		CanonicalName:       r.CanonicalName,
		Category:            r.Category,
		SealedShelfLifeDays: r.SealedShelfLifeDays,
		OpenedShelfLifeDays: r.OpenedShelfLifeDays,
		FrozenShelfLifeDays: r.FrozenShelfLifeDays,
		StorageLocation:     r.StorageLocation,
		StorageTips:         r.StorageTips,
		Freezable:           r.Freezable,
		Source:              r.Source,
	}
}

// ModelToNotification converts a feed row to its domain form.
func ModelToNotification(m *NotificationModel) *notification.Notification {
	return &notification.Notification{
		ID:         m.ID,
		UserID:     m.UserID,
		Type:       notification.Type(m.Type),
		Severity:   notification.Severity(m.Severity),
		Title:      m.Title,
		Message:    m.Message,
		ItemID:     m.ItemID,
		MealPlanID: m.MealPlanID,
		ToolID:     m.ToolID,
		Action:     notification.Action{Type: m.ActionType, Label: m.ActionLabel},
		Read:       m.Read,
		CreatedAt:  m.CreatedAt,
	}
}

// NotificationToModel converts a domain notification to its row form.
func NotificationToModel(n *notification.Notification) *NotificationModel {
	return &NotificationModel{
		ID:          n.ID,
		UserID:      n.UserID,
		Type:        string(n.Type),
		Severity:    string(n.Severity),
		Title:       n.Title,
		Message:     n.Message,
		ItemID:      n.ItemID,
		MealPlanID:  n.MealPlanID,
		ToolID:      n.ToolID,
		ActionType:  n.Action.Type,
		ActionLabel: n.Action.Label,
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}

// ModelToMealPlan converts a meal plan row to its domain form.
func ModelToMealPlan(m *MealPlanModel) *kitchen.MealPlan {
	return &kitchen.MealPlan{
		ID:               m.ID,
		UserID:           m.UserID,
		PlanDate:         m.PlanDate,
		MealType:         m.MealType,
		RecipeID:         m.RecipeID,
		CustomMeal:       m.CustomMeal,
		Servings:         m.Servings,
		Completed:        m.Completed,
		ThawReminderSent: m.ThawReminderSent,
		Notes:            m.Notes,
	}
}

// ModelToRecipe converts a recipe row with ingredients to its domain form.
func ModelToRecipe(m *RecipeModel) *kitchen.Recipe {
	ingredients := make([]kitchen.RecipeIngredient, 0, len(m.Ingredients))
	for _, ing := range m.Ingredients {
		ingredients = append(ingredients, kitchen.RecipeIngredient{
			CanonicalName: ing.CanonicalName,
			Optional:      ing.Optional,
		})
	}
	return &kitchen.Recipe{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Ingredients: ingredients,
	}
}

// ModelToTool converts a kitchen tool row to its domain form.
func ModelToTool(m *KitchenToolModel) *kitchen.Tool {
	return &kitchen.Tool{
		ID:                      m.ID,
		UserID:                  m.UserID,
		Name:                    m.Name,
		Category:                m.Category,
		MaintenanceType:         m.MaintenanceType,
		MaintenanceIntervalDays: m.MaintenanceIntervalDays,
		LastMaintained:          m.LastMaintained,
	}
}
