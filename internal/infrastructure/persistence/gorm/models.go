// Package gorm provides GORM model definitions and repository
// implementations for the freshness engine's stores.
package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the GORM model for users. The engine only enumerates
// users; account management lives elsewhere.
type UserModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name      string    `gorm:"type:varchar(255)"`
	IsActive  bool      `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserModel) TableName() string { return "users" }

// PantryItemModel represents the GORM model for pantry items
type PantryItemModel struct {
	ID            uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID        uuid.UUID `gorm:"type:char(36);not null;index"`
	Name          string    `gorm:"type:varchar(255);not null"`
	CanonicalName string    `gorm:"type:varchar(255);index"`
	Category      string    `gorm:"type:varchar(50);index"`
	Subcategory   string    `gorm:"type:varchar(50)"`
	Quantity      *float64
	Unit          string `gorm:"type:varchar(50)"`
	Location      string `gorm:"type:varchar(50);index"`
	Brand         string `gorm:"type:varchar(255)"`

	PurchaseDate   *time.Time
	OpenedDate     *time.Time
	ExpirationDate *time.Time

	FreshnessStatus  string `gorm:"type:varchar(20);default:'fresh';index"`
	FreshnessExpires *time.Time

	MinQuantity    *float64
	IsStaple       bool   `gorm:"default:false;index"`
	PreferredBrand string `gorm:"type:varchar(255)"`
	Notes          string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (PantryItemModel) TableName() string { return "pantry_items" }

// FreshnessRuleModel represents the GORM model for the shared shelf-life
// knowledge base. The canonical name is globally unique; the first insert
// wins and later writers are discarded.
type FreshnessRuleModel struct {
	ID                  uuid.UUID `gorm:"type:char(36);primaryKey"`
	CanonicalName       string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Category            string    `gorm:"type:varchar(50);index"`
	SealedShelfLifeDays *int
	OpenedShelfLifeDays *int
	FrozenShelfLifeDays *int
	StorageLocation     string `gorm:"type:varchar(50)"`
	StorageTips         string `gorm:"type:text"`
	Freezable           *bool
	Source              string `gorm:"type:varchar(50);default:'curated'"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (FreshnessRuleModel) TableName() string { return "freshness_rules" }

// NotificationModel represents the GORM model for the durable feed store
type NotificationModel struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID  `gorm:"type:char(36);not null;index"`
	Type       string     `gorm:"type:varchar(50);not null"`
	Severity   string     `gorm:"type:varchar(20);not null"`
	Title      string     `gorm:"type:varchar(255);not null"`
	Message    string     `gorm:"type:text"`
	ItemID     *uuid.UUID `gorm:"type:char(36)"`
	MealPlanID *uuid.UUID `gorm:"type:char(36)"`
	ToolID     *uuid.UUID `gorm:"type:char(36)"`
	ActionType string     `gorm:"type:varchar(50)"`
	ActionLabel string    `gorm:"type:varchar(100)"`
	Read       bool       `gorm:"default:false;index"`
	CreatedAt  time.Time  `gorm:"index"`
}

func (NotificationModel) TableName() string { return "notifications" }

// MealPlanModel represents the GORM model for planned meals
type MealPlanModel struct {
	ID               uuid.UUID  `gorm:"type:char(36);primaryKey"`
	UserID           uuid.UUID  `gorm:"type:char(36);not null;index"`
	PlanDate         time.Time  `gorm:"not null;index"`
	MealType         string     `gorm:"type:varchar(20);not null"`
	RecipeID         *uuid.UUID `gorm:"type:char(36);index"`
	CustomMeal       string     `gorm:"type:varchar(255)"`
	Servings         int        `gorm:"default:1"`
	Completed        bool       `gorm:"default:false;index"`
	ThawReminderSent bool       `gorm:"default:false"`
	Notes            string     `gorm:"type:text"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (MealPlanModel) TableName() string { return "meal_plans" }

// RecipeModel represents the GORM model for saved recipes
type RecipeModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `gorm:"type:char(36);not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Ingredients []RecipeIngredientModel `gorm:"foreignKey:RecipeID"`
}

func (RecipeModel) TableName() string { return "recipes" }

// RecipeIngredientModel represents one ingredient line of a recipe
type RecipeIngredientModel struct {
	ID             uuid.UUID `gorm:"type:char(36);primaryKey"`
	RecipeID       uuid.UUID `gorm:"type:char(36);not null;index"`
	IngredientName string    `gorm:"type:varchar(255);not null"`
	CanonicalName  string    `gorm:"type:varchar(255);index"`
	Quantity       *float64
	Unit           string `gorm:"type:varchar(50)"`
	Optional       bool   `gorm:"default:false"`
}

func (RecipeIngredientModel) TableName() string { return "recipe_ingredients" }

// KitchenToolModel represents the GORM model for kitchen tools
type KitchenToolModel struct {
	ID                      uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID                  uuid.UUID `gorm:"type:char(36);not null;index"`
	Name                    string    `gorm:"type:varchar(255);not null"`
	Category                string    `gorm:"type:varchar(50)"`
	MaintenanceType         string    `gorm:"type:varchar(50)"`
	MaintenanceIntervalDays *int
	LastMaintained          *time.Time
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (KitchenToolModel) TableName() string { return "kitchen_tools" }

// BeforeCreate hooks assign identity when the caller did not.

func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *PantryItemModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *FreshnessRuleModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *MealPlanModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *RecipeIngredientModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (m *KitchenToolModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// AllModels lists every model for auto-migration.
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&PantryItemModel{},
		&FreshnessRuleModel{},
		&NotificationModel{},
		&MealPlanModel{},
		&RecipeModel{},
		&RecipeIngredientModel{},
		&KitchenToolModel{},
	}
}
