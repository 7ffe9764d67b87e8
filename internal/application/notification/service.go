// Package notification implements the feed use cases and the generators that
// turn pantry, meal-plan and tool state into user notifications.
package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/misebox/v1/internal/domain/freshness"
	"github.com/misebox/v1/internal/domain/notification"
	"github.com/misebox/v1/internal/domain/pantry"
	"github.com/misebox/v1/internal/ports/inbound"
	"github.com/misebox/v1/internal/ports/outbound"
	appErrors "github.com/misebox/v1/pkg/errors"
)

// defaultMaintenanceHorizonDays widens the maintenance check so reminders
// fire a few days before the tool is due, not only on the day itself.
const defaultMaintenanceHorizonDays = 3

// Service manages the per-user notification feed and runs the generators.
type Service struct {
	feed   outbound.NotificationFeed
	items  outbound.PantryRepository
	meals  outbound.MealPlanRepository
	tools  outbound.ToolRepository
	logger *zap.Logger

	maintenanceHorizonDays int
	now                    func() time.Time
}

// NewService creates the notification service. A horizonDays of zero or less
// falls back to the default maintenance look-ahead.
func NewService(
	feed outbound.NotificationFeed,
	items outbound.PantryRepository,
	meals outbound.MealPlanRepository,
	tools outbound.ToolRepository,
	horizonDays int,
	logger *zap.Logger,
) *Service {
	if horizonDays <= 0 {
		horizonDays = defaultMaintenanceHorizonDays
	}
	return &Service{
		feed:                   feed,
		items:                  items,
		meals:                  meals,
		tools:                  tools,
		logger:                 logger.Named("notification-service"),
		maintenanceHorizonDays: horizonDays,
		now:                    time.Now,
	}
}

// GetNotifications returns the user's feed, newest first, with the unread
// count alongside.
func (s *Service) GetNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) (*inbound.FeedPage, error) {
	list, err := s.feed.List(ctx, userID, unreadOnly)
	if err != nil {
		return nil, appErrors.NewDatabaseError("list notifications", err)
	}
	unread, err := s.feed.UnreadCount(ctx, userID)
	if err != nil {
		return nil, appErrors.NewDatabaseError("count unread notifications", err)
	}
	if list == nil {
		list = []*notification.Notification{}
	}
	return &inbound.FeedPage{Notifications: list, UnreadCount: unread}, nil
}

// MarkRead flips one notification's read flag.
func (s *Service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.feed.MarkRead(ctx, userID, id); err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			return appErrors.NewNotificationNotFoundError(id.String())
		}
		return appErrors.NewDatabaseError("mark notification read", err)
	}
	return nil
}

// MarkAllRead flips every unread notification and returns how many flipped.
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := s.feed.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, appErrors.NewDatabaseError("mark all notifications read", err)
	}
	return count, nil
}

// ClearNotifications empties the user's feed.
func (s *Service) ClearNotifications(ctx context.Context, userID uuid.UUID) error {
	if err := s.feed.Clear(ctx, userID); err != nil {
		return appErrors.NewDatabaseError("clear notifications", err)
	}
	return nil
}

// GenerateFreshnessAlerts emits one notification per item currently in an
// attention-worthy status. Alerts derive from the item's current status, so
// an item still marked use_today tomorrow gets a fresh reminder.
func (s *Service) GenerateFreshnessAlerts(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error) {
	var generated []*notification.Notification

	useToday, err := s.items.FindByStatus(ctx, userID, freshness.StatusUseToday)
	if err != nil {
		return nil, appErrors.NewDatabaseError("find use-today items", err)
	}
	for _, item := range useToday {
		n := notification.New(userID, notification.TypeFreshnessAlert, notification.SeverityHigh,
			fmt.Sprintf("Use today: %s", item.Name),
			fmt.Sprintf("Your %s needs to be used today! (%s %s remaining)", item.Name, quantityLabel(item), item.Unit)).
			WithItem(item.ID).
			WithAction("view_recipes", "Find recipes")
		if err := s.push(ctx, n, &generated); err != nil {
			return generated, err
		}
	}

	useSoon, err := s.items.FindByStatus(ctx, userID, freshness.StatusUseSoon)
	if err != nil {
		return generated, appErrors.NewDatabaseError("find use-soon items", err)
	}
	for _, item := range useSoon {
		n := notification.New(userID, notification.TypeFreshnessAlert, notification.SeverityMedium,
			fmt.Sprintf("Use soon: %s", item.Name),
			fmt.Sprintf("Your %s should be used within a few days.", item.Name)).
			WithItem(item.ID).
			WithAction("view_item", "View item")
		if err := s.push(ctx, n, &generated); err != nil {
			return generated, err
		}
	}

	expired, err := s.items.FindByStatus(ctx, userID, freshness.StatusExpired)
	if err != nil {
		return generated, appErrors.NewDatabaseError("find expired items", err)
	}
	for _, item := range expired {
		n := notification.New(userID, notification.TypeFreshnessAlert, notification.SeverityCritical,
			fmt.Sprintf("Expired: %s", item.Name),
			fmt.Sprintf("Your %s has expired. Consider logging waste and removing it.", item.Name)).
			WithItem(item.ID).
			WithAction("log_waste", "Log waste")
		if err := s.push(ctx, n, &generated); err != nil {
			return generated, err
		}
	}

	return generated, nil
}

// GenerateLowStockAlerts emits one notification per staple item at or below
// its minimum quantity.
func (s *Service) GenerateLowStockAlerts(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error) {
	low, err := s.items.FindLowStock(ctx, userID)
	if err != nil {
		return nil, appErrors.NewDatabaseError("find low-stock items", err)
	}

	var generated []*notification.Notification
	for _, item := range low {
		qty := 0.0
		if item.Quantity != nil {
			qty = *item.Quantity
		}
		minQty := 0.0
		if item.MinQuantity != nil {
			minQty = *item.MinQuantity
		}
		n := notification.New(userID, notification.TypeLowStock, notification.SeverityMedium,
			fmt.Sprintf("Low stock: %s", item.Name),
			fmt.Sprintf("You're almost out of %s (%v %s remaining, min: %v).", item.Name, qty, item.Unit, minQty)).
			WithItem(item.ID).
			WithAction("add_to_grocery", "Add to grocery list")
		if err := s.push(ctx, n, &generated); err != nil {
			return generated, err
		}
	}
	return generated, nil
}

// GenerateThawReminders looks at meals planned for tomorrow and the day after
// and reminds the user to move any frozen required ingredient to the fridge.
// Each meal reminds at most once.
func (s *Service) GenerateThawReminders(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error) {
	today := freshness.DateOnly(s.now())
	tomorrow := today.AddDate(0, 0, 1)
	dayAfter := today.AddDate(0, 0, 2)

	meals, err := s.meals.FindUpcoming(ctx, userID, tomorrow, dayAfter)
	if err != nil {
		return nil, appErrors.NewDatabaseError("find upcoming meals", err)
	}

	var generated []*notification.Notification
	for _, meal := range meals {
		if meal.RecipeID == nil {
			continue
		}
		recipe, err := s.meals.FindRecipe(ctx, *meal.RecipeID)
		if err != nil {
			return generated, appErrors.NewDatabaseError("find recipe", err)
		}
		if recipe == nil {
			continue
		}

		for _, ing := range recipe.Ingredients {
			if ing.Optional || ing.CanonicalName == "" {
				continue
			}
			frozen, err := s.items.FindFrozenByCanonicalName(ctx, userID, ing.CanonicalName)
			if err != nil {
				return generated, appErrors.NewDatabaseError("find frozen item", err)
			}
			if frozen == nil {
				continue
			}

			n := notification.New(userID, notification.TypeThawReminder, notification.SeverityMedium,
				fmt.Sprintf("Thaw reminder: %s", frozen.Name),
				fmt.Sprintf("Move %s to the fridge tonight for %s's %s: %s",
					frozen.Name, meal.PlanDate.Format("Monday"), meal.MealType, recipe.Name)).
				WithItem(frozen.ID).
				WithMealPlan(meal.ID).
				WithAction("view_meal", "View meal")
			if err := s.push(ctx, n, &generated); err != nil {
				return generated, err
			}
		}

		if err := s.meals.MarkThawReminderSent(ctx, meal.ID); err != nil {
			return generated, appErrors.NewDatabaseError("mark thaw reminder sent", err)
		}
	}
	return generated, nil
}

// GenerateMealReminders emits a low-severity nudge for each of today's
// uncompleted meals.
func (s *Service) GenerateMealReminders(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error) {
	today := freshness.DateOnly(s.now())

	meals, err := s.meals.FindForDate(ctx, userID, today)
	if err != nil {
		return nil, appErrors.NewDatabaseError("find today's meals", err)
	}

	var generated []*notification.Notification
	for _, meal := range meals {
		name := meal.CustomMeal
		if name == "" {
			name = "a meal"
		}
		if meal.RecipeID != nil {
			recipe, err := s.meals.FindRecipe(ctx, *meal.RecipeID)
			if err != nil {
				return generated, appErrors.NewDatabaseError("find recipe", err)
			}
			if recipe != nil {
				name = recipe.Name
			}
		}

		n := notification.New(userID, notification.TypeMealReminder, notification.SeverityLow,
			fmt.Sprintf("Today's %s: %s", meal.MealType, name),
			fmt.Sprintf("You have %s planned for %s today.", name, meal.MealType)).
			WithMealPlan(meal.ID).
			WithAction("view_meal", "View meal")
		if err := s.push(ctx, n, &generated); err != nil {
			return generated, err
		}
	}
	return generated, nil
}

// GenerateMaintenanceReminders emits a nudge for each tool whose next
// maintenance falls within the coming few days.
func (s *Service) GenerateMaintenanceReminders(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error) {
	tools, err := s.tools.FindWithMaintenanceSchedule(ctx, userID)
	if err != nil {
		return nil, appErrors.NewDatabaseError("find tools", err)
	}

	horizon := freshness.DateOnly(s.now()).AddDate(0, 0, s.maintenanceHorizonDays)

	var generated []*notification.Notification
	for _, tool := range tools {
		if !tool.MaintenanceDueBy(horizon) {
			continue
		}
		verb := tool.MaintenanceType
		if verb == "" {
			verb = "maintain"
		}
		n := notification.New(userID, notification.TypeMaintenanceReminder, notification.SeverityLow,
			fmt.Sprintf("Maintenance due: %s", tool.Name),
			fmt.Sprintf("Time to %s your %s.", verb, tool.Name)).
			WithTool(tool.ID).
			WithAction("view_tool", "View tool")
		if err := s.push(ctx, n, &generated); err != nil {
			return generated, err
		}
	}
	return generated, nil
}

func (s *Service) push(ctx context.Context, n *notification.Notification, generated *[]*notification.Notification) error {
	if err := s.feed.Push(ctx, n); err != nil {
		return appErrors.NewDatabaseError("push notification", err)
	}
	*generated = append(*generated, n)
	return nil
}

func quantityLabel(item *pantry.Item) string {
	if item.Quantity == nil {
		return "?"
	}
	return fmt.Sprintf("%v", *item.Quantity)
}
