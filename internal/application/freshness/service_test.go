package freshness

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/misebox/v1/internal/domain/freshness"
	"github.com/misebox/v1/internal/domain/notification"
	"github.com/misebox/v1/internal/domain/pantry"
	"github.com/misebox/v1/internal/ports/outbound"
	appErrors "github.com/misebox/v1/pkg/errors"
	"github.com/misebox/v1/test/testutils"
)

type FreshnessServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	items     *testutils.MockPantryRepository
	rules     *testutils.MockRuleRepository
	estimator *testutils.MockEstimator
	notifier  *testutils.MockNotificationService
	users     *testutils.MockUserDirectory
	service   *Service
}

func (s *FreshnessServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.items = new(testutils.MockPantryRepository)
	s.rules = new(testutils.MockRuleRepository)
	s.estimator = new(testutils.MockEstimator)
	s.notifier = new(testutils.MockNotificationService)
	s.users = new(testutils.MockUserDirectory)
	s.service = NewService(s.items, s.rules, s.estimator, s.notifier, s.users, nil, zap.NewNop())
}

func (s *FreshnessServiceTestSuite) TestClassifyItem() {
	s.Run("ExactRule_ShouldShortCircuitEstimator", func() {
		s.SetupTest()
		s.estimator.Configured = true

		// Arrange
		item := testutils.NewItemBuilder().
			WithName("Whole Milk").
			WithCanonicalName("milk").
			WithCategory("dairy").
			PurchasedDaysAgo(10).
			Build()
		s.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		s.rules.On("LookupByCanonicalName", mock.Anything, "milk").
			Return(testutils.NewRule("milk", "dairy", 14, 7), nil)
		s.items.On("UpdateFreshness", mock.Anything, item).Return(nil)

		// Act
		result, err := s.service.ClassifyItem(s.ctx, item.UserID, item.ID, true, false)

		// Assert
		require.NoError(s.T(), err)
		assert.Equal(s.T(), freshness.StatusUseSoon, result.NewStatus)
		assert.Equal(s.T(), freshness.SourceExactRule, result.Source)
		assert.True(s.T(), result.Changed)
		s.estimator.AssertNotCalled(s.T(), "EstimateFreshness", mock.Anything, mock.Anything, mock.Anything)
		s.items.AssertExpectations(s.T())
	})

	s.Run("MissingItem_ShouldReturnNotFound", func() {
		s.SetupTest()

		// Arrange
		itemID := uuid.New()
		s.items.On("FindByID", mock.Anything, itemID).Return(nil, pantry.ErrItemNotFound)

		// Act
		result, err := s.service.ClassifyItem(s.ctx, uuid.New(), itemID, true, false)

		// Assert
		require.Error(s.T(), err)
		assert.Nil(s.T(), result)
		assert.Equal(s.T(), appErrors.CodeItemNotFound, appErrors.GetCode(err))
	})

	s.Run("NoRuleNoEstimator_ShouldUseCategoryDefaults", func() {
		s.SetupTest()
		s.estimator.Configured = false

		// Arrange
		item := testutils.NewItemBuilder().
			WithCategory("produce").
			PurchasedDaysAgo(10).
			Build()
		s.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		s.rules.On("LookupByCanonicalName", mock.Anything, mock.Anything).Return(nil, nil)
		s.items.On("UpdateFreshness", mock.Anything, item).Return(nil)

		// Act
		result, err := s.service.ClassifyItem(s.ctx, item.UserID, item.ID, true, false)

		// Assert: sealed produce default is 7 days, so 10 days out is expired.
		require.NoError(s.T(), err)
		assert.Equal(s.T(), freshness.StatusExpired, result.NewStatus)
		assert.Equal(s.T(), freshness.SourceCategoryDefault, result.Source)
	})

	s.Run("ForeignItem_ShouldReadAsNotFound", func() {
		s.SetupTest()

		// Arrange
		item := testutils.NewItemBuilder().WithName("Not Yours").PurchasedDaysAgo(1).Build()
		s.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)

		// Act
		result, err := s.service.ClassifyItem(s.ctx, uuid.New(), item.ID, true, false)

		// Assert: the sentinel rides along but the caller sees a plain 404.
		require.Error(s.T(), err)
		assert.Nil(s.T(), result)
		assert.Equal(s.T(), appErrors.CodeItemNotFound, appErrors.GetCode(err))
		assert.ErrorIs(s.T(), err, pantry.ErrNotOwner)
		s.items.AssertNotCalled(s.T(), "UpdateFreshness", mock.Anything, mock.Anything)
	})

	s.Run("AIDisallowed_ShouldNotCallEstimator", func() {
		s.SetupTest()
		s.estimator.Configured = true

		// Arrange
		item := testutils.NewItemBuilder().PurchasedDaysAgo(1).Build()
		s.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		s.rules.On("LookupByCanonicalName", mock.Anything, mock.Anything).Return(nil, nil)
		s.items.On("UpdateFreshness", mock.Anything, item).Return(nil)

		// Act
		result, err := s.service.ClassifyItem(s.ctx, item.UserID, item.ID, false, false)

		// Assert
		require.NoError(s.T(), err)
		assert.Equal(s.T(), freshness.SourceCategoryDefault, result.Source)
		s.estimator.AssertNotCalled(s.T(), "EstimateFreshness", mock.Anything, mock.Anything, mock.Anything)
	})
}

func (s *FreshnessServiceTestSuite) TestEstimatorPath() {
	s.Run("AdoptedEstimate_ShouldCacheDerivedRule", func() {
		s.SetupTest()
		s.estimator.Configured = true

		// Arrange
		item := testutils.NewItemBuilder().
			WithName("Mystery Sauce").
			WithCanonicalName("mystery sauce").
			WithCategory("condiments").
			PurchasedDaysAgo(2).
			Build()
		estimate := &outbound.FreshnessEstimate{
			FreshnessStatus:         "use_soon",
			EffectiveExpirationDate: testutils.DaysFromToday(3).Format("2006-01-02"),
			Confidence:              0.8,
			StorageTips:             "Keep refrigerated",
		}
		s.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		s.rules.On("LookupByCanonicalName", mock.Anything, "mystery sauce").Return(nil, nil)
		s.estimator.On("EstimateFreshness", mock.Anything, mock.Anything, (*outbound.RuleContext)(nil)).
			Return(estimate, nil)
		s.rules.On("InsertIfAbsent", mock.Anything, mock.MatchedBy(func(r *freshness.Rule) bool {
			return r.CanonicalName == "mystery sauce" &&
				r.Source == freshness.RuleSourceAIEstimate &&
				r.SealedShelfLifeDays != nil && *r.SealedShelfLifeDays == 5 &&
				r.OpenedShelfLifeDays == nil
		})).Return(nil)
		s.items.On("UpdateFreshness", mock.Anything, item).Return(nil)

		// Act
		result, err := s.service.ClassifyItem(s.ctx, item.UserID, item.ID, true, false)

		// Assert
		require.NoError(s.T(), err)
		assert.Equal(s.T(), freshness.StatusUseSoon, result.NewStatus)
		assert.Equal(s.T(), freshness.SourceAIEstimate, result.Source)
		require.NotNil(s.T(), result.EffectiveExpiration)
		assert.Equal(s.T(), testutils.DaysFromToday(3), *result.EffectiveExpiration)
		s.rules.AssertExpectations(s.T())
	})

	s.Run("EstimatorFailure_ShouldFallBackToCategoryDefaults", func() {
		s.SetupTest()
		s.estimator.Configured = true

		// Arrange
		item := testutils.NewItemBuilder().
			WithCategory("dairy").
			PurchasedDaysAgo(10).
			Build()
		s.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		s.rules.On("LookupByCanonicalName", mock.Anything, mock.Anything).Return(nil, nil)
		s.estimator.On("EstimateFreshness", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("model overloaded"))
		s.items.On("UpdateFreshness", mock.Anything, item).Return(nil)

		// Act
		result, err := s.service.ClassifyItem(s.ctx, item.UserID, item.ID, true, false)

		// Assert: the failure is absorbed and the category default carries it.
		require.NoError(s.T(), err)
		assert.Equal(s.T(), freshness.StatusUseSoon, result.NewStatus)
		assert.Equal(s.T(), freshness.SourceCategoryDefault, result.Source)
		s.rules.AssertNotCalled(s.T(), "InsertIfAbsent", mock.Anything, mock.Anything)
	})

	s.Run("UnknownStatus_ShouldBeTreatedAsFresh", func() {
		s.SetupTest()
		s.estimator.Configured = true

		// Arrange
		item := testutils.NewItemBuilder().
			WithCanonicalName("").
			WithName("").
			PurchasedDaysAgo(1).
			Build()
		estimate := &outbound.FreshnessEstimate{FreshnessStatus: "pristine"}
		s.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		s.estimator.On("EstimateFreshness", mock.Anything, mock.Anything, mock.Anything).
			Return(estimate, nil)
		s.items.On("UpdateFreshness", mock.Anything, item).Return(nil)

		// Act
		result, err := s.service.ClassifyItem(s.ctx, item.UserID, item.ID, true, false)

		// Assert: no canonical name means no lookup and no caching either.
		require.NoError(s.T(), err)
		assert.Equal(s.T(), freshness.StatusFresh, result.NewStatus)
		assert.Nil(s.T(), result.EffectiveExpiration)
		s.rules.AssertNotCalled(s.T(), "LookupByCanonicalName", mock.Anything, mock.Anything)
		s.rules.AssertNotCalled(s.T(), "InsertIfAbsent", mock.Anything, mock.Anything)
	})

	s.Run("ForceAI_ShouldBypassExistingRule", func() {
		s.SetupTest()
		s.estimator.Configured = true

		// Arrange
		rule := testutils.NewRule("milk", "dairy", 14, 7)
		item := testutils.NewItemBuilder().
			WithCanonicalName("milk").
			WithCategory("dairy").
			PurchasedDaysAgo(3).
			Build()
		estimate := &outbound.FreshnessEstimate{
			FreshnessStatus:         "use_today",
			EffectiveExpirationDate: testutils.DaysFromToday(1).Format("2006-01-02"),
		}
		s.items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		s.rules.On("LookupByCanonicalName", mock.Anything, "milk").Return(rule, nil)
		s.estimator.On("EstimateFreshness", mock.Anything, mock.Anything, mock.MatchedBy(func(rc *outbound.RuleContext) bool {
			return rc != nil && rc.SealedShelfLifeDays != nil && *rc.SealedShelfLifeDays == 14
		})).Return(estimate, nil)
		s.items.On("UpdateFreshness", mock.Anything, item).Return(nil)

		// Act
		result, err := s.service.ClassifyItem(s.ctx, item.UserID, item.ID, true, true)

		// Assert: the known rule rides along as context but the estimate wins,
		// and an existing rule is never overwritten.
		require.NoError(s.T(), err)
		assert.Equal(s.T(), freshness.StatusUseToday, result.NewStatus)
		assert.Equal(s.T(), freshness.SourceAIEstimate, result.Source)
		s.rules.AssertNotCalled(s.T(), "InsertIfAbsent", mock.Anything, mock.Anything)
	})
}

func (s *FreshnessServiceTestSuite) TestRunScan() {
	s.Run("MixedInventory_ShouldSummarizeCorrectly", func() {
		s.SetupTest()
		userID := uuid.New()

		// Arrange: one undated item (skipped), one expiring transition that
		// warrants an alert, one already-correct status.
		undated := testutils.NewItemBuilder().WithUser(userID).Build()
		expiring := testutils.NewItemBuilder().
			WithUser(userID).
			WithStatus(freshness.StatusFresh).
			ExpiresInDays(0).
			Build()
		steady := testutils.NewItemBuilder().
			WithUser(userID).
			WithCategory("produce").
			WithStatus(freshness.StatusFresh).
			PurchasedDaysAgo(1).
			Build()

		s.items.On("FindByUserID", mock.Anything, userID).
			Return([]*pantry.Item{undated, expiring, steady}, nil)
		s.rules.On("LookupByCanonicalName", mock.Anything, mock.Anything).Return(nil, nil)
		s.items.On("UpdateFreshness", mock.Anything, mock.Anything).Return(nil)

		// Act
		summary, err := s.service.RunScan(s.ctx, userID, false)

		// Assert
		require.NoError(s.T(), err)
		assert.Equal(s.T(), 2, summary.ItemsScanned)
		assert.Equal(s.T(), 1, summary.ItemsChanged)
		require.Len(s.T(), summary.Alerts, 1)
		assert.Equal(s.T(), expiring.ID, summary.Alerts[0].ItemID)
		assert.Equal(s.T(), freshness.StatusExpired, summary.Alerts[0].Status)
		assert.Equal(s.T(), freshness.StatusFresh, summary.Alerts[0].OldStatus)
		assert.Len(s.T(), summary.Details, 2)
	})

	s.Run("ChangedButNotUrgent_ShouldNotAlert", func() {
		s.SetupTest()
		userID := uuid.New()

		// Arrange: produce purchased 4 days ago lands at use_soon, which is a
		// change but not alert-worthy.
		item := testutils.NewItemBuilder().
			WithUser(userID).
			WithCategory("produce").
			WithStatus(freshness.StatusFresh).
			PurchasedDaysAgo(4).
			Build()
		s.items.On("FindByUserID", mock.Anything, userID).Return([]*pantry.Item{item}, nil)
		s.rules.On("LookupByCanonicalName", mock.Anything, mock.Anything).Return(nil, nil)
		s.items.On("UpdateFreshness", mock.Anything, item).Return(nil)

		// Act
		summary, err := s.service.RunScan(s.ctx, userID, false)

		// Assert
		require.NoError(s.T(), err)
		assert.Equal(s.T(), 1, summary.ItemsChanged)
		assert.Empty(s.T(), summary.Alerts)
	})

	s.Run("StoreFailure_ShouldAbortScan", func() {
		s.SetupTest()
		userID := uuid.New()
		s.items.On("FindByUserID", mock.Anything, userID).Return(nil, errors.New("connection reset"))

		// Act
		summary, err := s.service.RunScan(s.ctx, userID, false)

		// Assert
		require.Error(s.T(), err)
		assert.Nil(s.T(), summary)
		assert.Equal(s.T(), appErrors.CodeDatabaseError, appErrors.GetCode(err))
	})
}

func (s *FreshnessServiceTestSuite) TestRunUserScan() {
	s.Run("GeneratorFailure_ShouldNotAbortPipeline", func() {
		s.SetupTest()
		userID := uuid.New()

		// Arrange: an empty inventory and one failing generator among five.
		s.items.On("FindByUserID", mock.Anything, userID).Return([]*pantry.Item{}, nil)
		s.notifier.On("GenerateFreshnessAlerts", mock.Anything, userID).
			Return(nil, errors.New("feed unavailable"))
		s.notifier.On("GenerateLowStockAlerts", mock.Anything, userID).
			Return([]*notification.Notification{notification.New(userID, notification.TypeLowStock, notification.SeverityMedium, "t", "m")}, nil)
		s.notifier.On("GenerateThawReminders", mock.Anything, userID).
			Return([]*notification.Notification{}, nil)
		s.notifier.On("GenerateMealReminders", mock.Anything, userID).
			Return([]*notification.Notification{}, nil)
		s.notifier.On("GenerateMaintenanceReminders", mock.Anything, userID).
			Return([]*notification.Notification{}, nil)

		// Act
		report, err := s.service.RunUserScan(s.ctx, userID)

		// Assert
		require.NoError(s.T(), err)
		assert.Empty(s.T(), report.Err)
		assert.Equal(s.T(), 0, report.Notifications.FreshnessAlerts)
		assert.Equal(s.T(), 1, report.Notifications.LowStockAlerts)
		s.notifier.AssertExpectations(s.T())
	})

	s.Run("ScanFailure_ShouldRecordErrorInReport", func() {
		s.SetupTest()
		userID := uuid.New()
		s.items.On("FindByUserID", mock.Anything, userID).Return(nil, errors.New("disk full"))

		// Act
		report, err := s.service.RunUserScan(s.ctx, userID)

		// Assert: no notification generator runs after a failed scan.
		require.Error(s.T(), err)
		require.NotNil(s.T(), report)
		assert.NotEmpty(s.T(), report.Err)
		assert.Nil(s.T(), report.Scan)
		s.notifier.AssertNotCalled(s.T(), "GenerateFreshnessAlerts", mock.Anything, mock.Anything)
	})
}

func (s *FreshnessServiceTestSuite) TestRunNightlyScan() {
	s.Run("OneUserFails_OthersStillScanned", func() {
		s.SetupTest()
		goodUser := uuid.New()
		badUser := uuid.New()

		s.users.On("ListUserIDs", mock.Anything).Return([]uuid.UUID{badUser, goodUser}, nil)
		s.items.On("FindByUserID", mock.Anything, badUser).Return(nil, errors.New("corrupt row"))
		s.items.On("FindByUserID", mock.Anything, goodUser).Return([]*pantry.Item{}, nil)
		for _, generator := range []string{
			"GenerateFreshnessAlerts", "GenerateLowStockAlerts", "GenerateThawReminders",
			"GenerateMealReminders", "GenerateMaintenanceReminders",
		} {
			s.notifier.On(generator, mock.Anything, goodUser).Return([]*notification.Notification{}, nil)
		}

		// Act
		reports, err := s.service.RunNightlyScan(s.ctx)

		// Assert
		require.NoError(s.T(), err)
		require.Len(s.T(), reports, 2)
		assert.NotEmpty(s.T(), reports[0].Err)
		assert.Empty(s.T(), reports[1].Err)
		require.NotNil(s.T(), reports[1].Scan)
	})

	s.Run("DirectoryFailure_ShouldSurface", func() {
		s.SetupTest()
		s.users.On("ListUserIDs", mock.Anything).Return(nil, errors.New("timeout"))

		// Act
		reports, err := s.service.RunNightlyScan(s.ctx)

		// Assert
		require.Error(s.T(), err)
		assert.Nil(s.T(), reports)
	})
}

func TestFreshnessServiceSuite(t *testing.T) {
	suite.Run(t, new(FreshnessServiceTestSuite))
}
