package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/misebox/v1/internal/domain/freshness"
	"github.com/misebox/v1/internal/domain/kitchen"
	"github.com/misebox/v1/internal/domain/notification"
	"github.com/misebox/v1/internal/domain/pantry"
	"github.com/misebox/v1/internal/ports/inbound"
	"github.com/misebox/v1/internal/ports/outbound"
)

// MockPantryRepository provides a testify mock of the pantry store.
type MockPantryRepository struct {
	mock.Mock
}

func (m *MockPantryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*pantry.Item, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pantry.Item), args.Error(1)
}

func (m *MockPantryRepository) FindByID(ctx context.Context, id uuid.UUID) (*pantry.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pantry.Item), args.Error(1)
}

func (m *MockPantryRepository) FindByStatus(ctx context.Context, userID uuid.UUID, status freshness.Status) ([]*pantry.Item, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pantry.Item), args.Error(1)
}

func (m *MockPantryRepository) FindFrozenByCanonicalName(ctx context.Context, userID uuid.UUID, canonical string) (*pantry.Item, error) {
	args := m.Called(ctx, userID, canonical)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pantry.Item), args.Error(1)
}

func (m *MockPantryRepository) FindLowStock(ctx context.Context, userID uuid.UUID) ([]*pantry.Item, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pantry.Item), args.Error(1)
}

func (m *MockPantryRepository) UpdateFreshness(ctx context.Context, item *pantry.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockRuleRepository provides a testify mock of the shelf-life knowledge base.
type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) LookupByCanonicalName(ctx context.Context, canonical string) (*freshness.Rule, error) {
	args := m.Called(ctx, canonical)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*freshness.Rule), args.Error(1)
}

func (m *MockRuleRepository) InsertIfAbsent(ctx context.Context, rule *freshness.Rule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

// MockEstimator provides a testify mock of the external estimator.
type MockEstimator struct {
	mock.Mock
	Configured bool
}

func (m *MockEstimator) IsConfigured() bool {
	return m.Configured
}

func (m *MockEstimator) EstimateFreshness(ctx context.Context, item outbound.ItemDescription, rule *outbound.RuleContext) (*outbound.FreshnessEstimate, error) {
	args := m.Called(ctx, item, rule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.FreshnessEstimate), args.Error(1)
}

func (m *MockEstimator) EstimateFreshnessBatch(ctx context.Context, items []outbound.ItemDescription) ([]outbound.FreshnessEstimate, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbound.FreshnessEstimate), args.Error(1)
}

// MockMealPlanRepository provides a testify mock of the meal-plan store.
type MockMealPlanRepository struct {
	mock.Mock
}

func (m *MockMealPlanRepository) FindUpcoming(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*kitchen.MealPlan, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*kitchen.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepository) FindForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*kitchen.MealPlan, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*kitchen.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepository) MarkThawReminderSent(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMealPlanRepository) FindRecipe(ctx context.Context, id uuid.UUID) (*kitchen.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kitchen.Recipe), args.Error(1)
}

// MockToolRepository provides a testify mock of the tool store.
type MockToolRepository struct {
	mock.Mock
}

func (m *MockToolRepository) FindWithMaintenanceSchedule(ctx context.Context, userID uuid.UUID) ([]*kitchen.Tool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*kitchen.Tool), args.Error(1)
}

// MockUserDirectory provides a testify mock of the user directory.
type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockFreshnessService provides a testify mock of the freshness use-case
// surface.
type MockFreshnessService struct {
	mock.Mock
}

func (m *MockFreshnessService) ClassifyItem(ctx context.Context, userID, itemID uuid.UUID, allowAI, forceAI bool) (*inbound.ClassificationResult, error) {
	args := m.Called(ctx, userID, itemID, allowAI, forceAI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ClassificationResult), args.Error(1)
}

func (m *MockFreshnessService) RunScan(ctx context.Context, userID uuid.UUID, allowAI bool) (*inbound.ScanSummary, error) {
	args := m.Called(ctx, userID, allowAI)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ScanSummary), args.Error(1)
}

func (m *MockFreshnessService) RunUserScan(ctx context.Context, userID uuid.UUID) (*inbound.NightlyScanReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.NightlyScanReport), args.Error(1)
}

func (m *MockFreshnessService) RunNightlyScan(ctx context.Context) ([]*inbound.NightlyScanReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inbound.NightlyScanReport), args.Error(1)
}

// MockNotificationService provides a testify mock of the notification
// use-case surface.
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) GetNotifications(ctx context.Context, userID uuid.UUID, unreadOnly bool) (*inbound.FeedPage, error) {
	args := m.Called(ctx, userID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.FeedPage), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationService) ClearNotifications(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationService) GenerateFreshnessAlerts(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error) {
	return m.generated(m.Called(ctx, userID))
}

func (m *MockNotificationService) GenerateLowStockAlerts(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error) {
	return m.generated(m.Called(ctx, userID))
}

func (m *MockNotificationService) GenerateThawReminders(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error) {
	return m.generated(m.Called(ctx, userID))
}

func (m *MockNotificationService) GenerateMealReminders(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error) {
	return m.generated(m.Called(ctx, userID))
}

func (m *MockNotificationService) GenerateMaintenanceReminders(ctx context.Context, userID uuid.UUID) ([]*notification.Notification, error) {
	return m.generated(m.Called(ctx, userID))
}

func (m *MockNotificationService) generated(args mock.Arguments) ([]*notification.Notification, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

// MockNotificationFeed provides a testify mock of the feed store.
type MockNotificationFeed struct {
	mock.Mock
}

func (m *MockNotificationFeed) Push(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationFeed) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]*notification.Notification, error) {
	args := m.Called(ctx, userID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

func (m *MockNotificationFeed) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationFeed) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockNotificationFeed) MarkAllRead(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockNotificationFeed) Clear(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
