// Package freshness implements the freshness engine use cases: single-item
// classification, full-inventory scans and the nightly pipeline that feeds
// the notification generators.
package freshness

import (
	"context"
	"errors"
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

// Service orchestrates the inference chain. It resolves the best available
// knowledge for an item in priority order (exact rule, AI estimate, category
// default), persists the outcome and reports what changed.
type Service struct {
	items     outbound.PantryRepository
	rules     outbound.RuleRepository
	estimator outbound.FreshnessEstimator
	notifier  inbound.NotificationService
	users     outbound.UserDirectory
	metrics   outbound.EngineMetrics
	logger    *zap.Logger

	// now is swappable so tests can pin the calendar day.
	now func() time.Time
}

// NewService creates the freshness service. The estimator may be nil; the
// service then behaves as if it were unconfigured.
func NewService(
	items outbound.PantryRepository,
	rules outbound.RuleRepository,
	estimator outbound.FreshnessEstimator,
	notifier inbound.NotificationService,
	users outbound.UserDirectory,
	metrics outbound.EngineMetrics,
	logger *zap.Logger,
) *Service {
	if metrics == nil {
		metrics = outbound.NopMetrics{}
	}
	return &Service{
		items:     items,
		rules:     rules,
		estimator: estimator,
		notifier:  notifier,
		users:     users,
		metrics:   metrics,
		logger:    logger.Named("freshness-service"),
		now:       time.Now,
	}
}

// ClassifyItem loads one item, runs the inference chain and persists the
// result. Estimator failures degrade to rule-based classification; only
// structural failures (missing item, store errors) surface.
func (s *Service) ClassifyItem(ctx context.Context, userID, itemID uuid.UUID, allowAI, forceAI bool) (*inbound.ClassificationResult, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, pantry.ErrItemNotFound) {
			return nil, appErrors.NewItemNotFoundError(itemID.String())
		}
		return nil, appErrors.NewDatabaseError("find pantry item", err)
	}
	if item.UserID != userID {
		// Another user's item reads as not found so IDs don't leak.
		return nil, appErrors.NewItemNotFoundError(itemID.String()).WithCause(pantry.ErrNotOwner)
	}

	result, err := s.classify(ctx, item, allowAI, forceAI)
	if err != nil {
		return nil, err
	}
	if err := s.items.UpdateFreshness(ctx, item); err != nil {
		return nil, appErrors.NewDatabaseError("update freshness", err)
	}
	return result, nil
}

// classify runs the inference chain against an already-loaded item and
// mutates its freshness fields. It never returns an estimator error.
func (s *Service) classify(ctx context.Context, item *pantry.Item, allowAI, forceAI bool) (*inbound.ClassificationResult, error) {
	canonical := item.Canonical()

	var rule *freshness.Rule
	if canonical != "" {
		found, err := s.rules.LookupByCanonicalName(ctx, canonical)
		if err != nil {
			return nil, appErrors.NewDatabaseError("lookup shelf-life rule", err)
		}
		rule = found
	}

	oldStatus := item.FreshnessStatus
	today := s.now()

	var cls freshness.Classification
	switch {
	case rule != nil && !forceAI:
		cls = freshness.Classify(item.Snapshot(), rule, today)

	case allowAI && s.estimatorReady():
		cls = s.classifyWithEstimator(ctx, item, rule, canonical, today)

	default:
		// No rule and no estimator: the category defaults carry it.
		cls = freshness.Classify(item.Snapshot(), nil, today)
	}

	changed := item.ApplyClassification(cls)
	s.metrics.ClassificationRecorded(string(cls.Source), changed)

	return &inbound.ClassificationResult{
		ItemID:              item.ID,
		Name:                item.Name,
		OldStatus:           oldStatus,
		NewStatus:           item.FreshnessStatus,
		EffectiveExpiration: item.FreshnessExpires,
		Source:              cls.Source,
		Changed:             changed,
	}, nil
}

// classifyWithEstimator asks the external estimator and adopts its verdict.
// Any failure, malformed payload included, falls back to category defaults.
func (s *Service) classifyWithEstimator(ctx context.Context, item *pantry.Item, rule *freshness.Rule, canonical string, today time.Time) freshness.Classification {
	estimate, err := s.estimator.EstimateFreshness(ctx, describeItem(item, today), ruleContext(rule))
	s.metrics.EstimatorCall(err == nil)
	if err != nil {
		s.logger.Warn("estimator call failed, falling back to rule-based classification",
			zap.String("item_id", item.ID.String()),
			zap.Error(err))
		return freshness.Classify(item.Snapshot(), nil, today)
	}

	status, ok := freshness.ParseStatus(estimate.FreshnessStatus)
	if !ok {
		s.logger.Warn("estimator returned unknown status, treating as fresh",
			zap.String("item_id", item.ID.String()),
			zap.String("status", estimate.FreshnessStatus))
		status = freshness.StatusFresh
	}

	cls := freshness.Classification{
		Status: status,
		Source: freshness.SourceAIEstimate,
	}
	if expires, ok := parseEstimateDate(estimate.EffectiveExpirationDate); ok {
		cls.ExpiresAt = &expires
	}

	// Cache the estimate as a rule so the next lookup short-circuits the
	// estimator. Only the first write for a canonical name sticks.
	if rule == nil && canonical != "" {
		if cached := deriveRule(item, canonical, estimate, cls.ExpiresAt); cached != nil {
			if err := s.rules.InsertIfAbsent(ctx, cached); err != nil {
				s.logger.Warn("failed to cache estimated shelf-life rule",
					zap.String("canonical_name", canonical),
					zap.Error(err))
			}
		}
	}

	return cls
}

// RunScan classifies every dated item in the user's inventory. Items without
// any date signal are skipped. Estimator trouble never aborts the scan; the
// summary is always complete for the items the store returned.
func (s *Service) RunScan(ctx context.Context, userID uuid.UUID, allowAI bool) (*inbound.ScanSummary, error) {
	items, err := s.items.FindByUserID(ctx, userID)
	if err != nil {
		return nil, appErrors.NewDatabaseError("list pantry items", err)
	}

	summary := &inbound.ScanSummary{
		Alerts:  []inbound.ScanAlert{},
		Details: []inbound.ClassificationResult{},
	}
	for _, item := range items {
		if !item.Snapshot().HasDateSignal() {
			continue
		}
		summary.ItemsScanned++

		result, err := s.classify(ctx, item, allowAI, false)
		if err != nil {
			return nil, err
		}
		if err := s.items.UpdateFreshness(ctx, item); err != nil {
			return nil, appErrors.NewDatabaseError("update freshness", err)
		}

		summary.Details = append(summary.Details, *result)
		if result.Changed {
			summary.ItemsChanged++
			if result.NewStatus.AlertWorthy() {
				summary.Alerts = append(summary.Alerts, inbound.ScanAlert{
					ItemID:    item.ID,
					Name:      item.Name,
					Status:    result.NewStatus,
					OldStatus: result.OldStatus,
				})
			}
		}
	}

	s.metrics.ScanCompleted(summary.ItemsScanned, summary.ItemsChanged, len(summary.Alerts))
	s.logger.Info("inventory scan complete",
		zap.String("user_id", userID.String()),
		zap.Int("items_scanned", summary.ItemsScanned),
		zap.Int("items_changed", summary.ItemsChanged),
		zap.Int("alerts", len(summary.Alerts)))
	return summary, nil
}

// RunUserScan runs the full nightly pipeline for one user: a scan with the
// estimator enabled, then every notification generator. Generator failures
// are contained per generator so one bad store read cannot silence the rest.
func (s *Service) RunUserScan(ctx context.Context, userID uuid.UUID) (*inbound.NightlyScanReport, error) {
	report := &inbound.NightlyScanReport{
		UserID:    userID,
		Timestamp: s.now().UTC(),
	}

	scan, err := s.RunScan(ctx, userID, true)
	if err != nil {
		report.Err = err.Error()
		return report, err
	}
	report.Scan = scan

	report.Notifications = s.generateNotifications(ctx, userID)
	return report, nil
}

func (s *Service) generateNotifications(ctx context.Context, userID uuid.UUID) inbound.NotificationCounts {
	var counts inbound.NotificationCounts

	counts.FreshnessAlerts = s.runGenerator(ctx, userID, "freshness_alerts", s.notifier.GenerateFreshnessAlerts)
	counts.LowStockAlerts = s.runGenerator(ctx, userID, "low_stock_alerts", s.notifier.GenerateLowStockAlerts)
	counts.ThawReminders = s.runGenerator(ctx, userID, "thaw_reminders", s.notifier.GenerateThawReminders)
	counts.MealReminders = s.runGenerator(ctx, userID, "meal_reminders", s.notifier.GenerateMealReminders)
	counts.MaintenanceReminders = s.runGenerator(ctx, userID, "maintenance_reminders", s.notifier.GenerateMaintenanceReminders)

	return counts
}

// runGenerator invokes one generator and swallows its error after logging.
func (s *Service) runGenerator(ctx context.Context, userID uuid.UUID, kind string,
	generate func(context.Context, uuid.UUID) ([]*notification.Notification, error)) int {
	generated, err := generate(ctx, userID)
	if err != nil {
		s.logger.Error("notification generator failed",
			zap.String("user_id", userID.String()),
			zap.String("kind", kind),
			zap.Error(err))
		return 0
	}
	s.metrics.NotificationsGenerated(kind, len(generated))
	return len(generated)
}

// RunNightlyScan runs the pipeline for every known user. One user's failure
// is recorded in their report and the loop continues.
func (s *Service) RunNightlyScan(ctx context.Context) ([]*inbound.NightlyScanReport, error) {
	userIDs, err := s.users.ListUserIDs(ctx)
	if err != nil {
		return nil, appErrors.NewDatabaseError("list users", err)
	}

	reports := make([]*inbound.NightlyScanReport, 0, len(userIDs))
	for _, userID := range userIDs {
		report, err := s.RunUserScan(ctx, userID)
		if err != nil {
			s.logger.Error("nightly scan failed for user",
				zap.String("user_id", userID.String()),
				zap.Error(err))
		}
		reports = append(reports, report)
	}

	s.logger.Info("nightly scan complete", zap.Int("users", len(reports)))
	return reports, nil
}

func (s *Service) estimatorReady() bool {
	return s.estimator != nil && s.estimator.IsConfigured()
}

// describeItem builds the estimator's view of an item. Dates go over the wire
// as ISO dates; absent dates stay empty.
func describeItem(item *pantry.Item, today time.Time) outbound.ItemDescription {
	return outbound.ItemDescription{
		ID:             item.ID.String(),
		Name:           item.Name,
		Category:       item.Category,
		Location:       item.Location,
		PurchaseDate:   formatDate(item.PurchaseDate),
		ExpirationDate: formatDate(item.ExpirationDate),
		OpenedDate:     formatDate(item.OpenedDate),
		Quantity:       item.Quantity,
		Unit:           item.Unit,
		Today:          freshness.DateOnly(today).Format("2006-01-02"),
	}
}

func ruleContext(rule *freshness.Rule) *outbound.RuleContext {
	if rule == nil {
		return nil
	}
	return &outbound.RuleContext{
		SealedShelfLifeDays: rule.SealedShelfLifeDays,
		OpenedShelfLifeDays: rule.OpenedShelfLifeDays,
		StorageLocation:     rule.StorageLocation,
		Freezable:           rule.Freezable,
		StorageTips:         rule.StorageTips,
	}
}

// deriveRule turns an adopted estimate into a cacheable shelf-life rule.
// Sealed days are derived from the purchase date only while the item is still
// sealed; opened days from the opened date. Without an expiration date there
// is nothing to derive.
func deriveRule(item *pantry.Item, canonical string, estimate *outbound.FreshnessEstimate, expiresAt *time.Time) *freshness.Rule {
	if expiresAt == nil {
		return nil
	}

	rule := &freshness.Rule{
		CanonicalName:   canonical,
		Category:        item.Category,
		StorageLocation: item.Location,
		StorageTips:     estimate.StorageTips,
		Source:          freshness.RuleSourceAIEstimate,
	}

	if item.OpenedDate != nil {
		days := freshness.DaysBetween(*item.OpenedDate, *expiresAt)
		if days > 0 {
			rule.OpenedShelfLifeDays = &days
		}
	} else if item.PurchaseDate != nil {
		days := freshness.DaysBetween(*item.PurchaseDate, *expiresAt)
		if days > 0 {
			rule.SealedShelfLifeDays = &days
		}
	}

	if rule.SealedShelfLifeDays == nil && rule.OpenedShelfLifeDays == nil {
		return nil
	}
	return rule
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return freshness.DateOnly(*t).Format("2006-01-02")
}

func parseEstimateDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	// Tolerate a full timestamp; only the date part matters.
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return freshness.DateOnly(t), true
		}
	}
	return time.Time{}, false
}
