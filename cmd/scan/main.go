// Package main provides the nightly scan binary. It runs the freshness
// pipeline for every user once and exits, intended to be scheduled by cron.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	freshnessApp "github.com/misebox/v1/internal/application/freshness"
	notificationApp "github.com/misebox/v1/internal/application/notification"
	"github.com/misebox/v1/internal/infrastructure/ai/anthropic"
	"github.com/misebox/v1/internal/infrastructure/config"
	gormRepo "github.com/misebox/v1/internal/infrastructure/persistence/gorm"
	"github.com/misebox/v1/internal/infrastructure/persistence/postgres"
	redisStore "github.com/misebox/v1/internal/infrastructure/persistence/redis"
	"github.com/misebox/v1/internal/infrastructure/persistence/sqlite"
	"github.com/misebox/v1/internal/ports/outbound"
	"github.com/misebox/v1/pkg/logger"
)

// errPartialFailure reports that at least one user's scan failed. The run
// itself completed and already logged the details.
var errPartialFailure = errors.New("nightly scan finished with failures")

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, errPartialFailure) {
			log.Printf("scan failed: %v", err)
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	zapLog, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.App.Debug,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = zapLog.Sync() }()

	db, err := openDatabase(cfg, zapLog)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	feed, err := openFeed(ctx, cfg, db, zapLog)
	if err != nil {
		return err
	}

	items := gormRepo.NewPantryRepository(db)
	rules := gormRepo.NewRuleRepository(db)
	meals := gormRepo.NewMealPlanRepository(db)
	tools := gormRepo.NewToolRepository(db)
	users := gormRepo.NewUserDirectory(db)

	apiKey := ""
	if cfg.AI.Enabled {
		apiKey = cfg.AI.AnthropicKey
	}
	estimator := anthropic.NewClient(anthropic.Config{
		APIKey:  apiKey,
		Model:   cfg.AI.AnthropicModel,
		BaseURL: cfg.AI.BaseURL,
		Timeout: cfg.AI.Timeout,
	}, zapLog)

	notifier := notificationApp.NewService(feed, items, meals, tools,
		cfg.Notifications.MaintenanceHorizonDays, zapLog)
	engine := freshnessApp.NewService(items, rules, estimator, notifier, users, nil, zapLog)

	reports, err := engine.RunNightlyScan(ctx)
	if err != nil {
		return err
	}

	failures := 0
	for _, report := range reports {
		if report.Err != "" {
			failures++
		}
	}
	zapLog.Info("nightly scan finished",
		zap.Int("users", len(reports)),
		zap.Int("failures", failures))

	if failures > 0 {
		return errPartialFailure
	}
	return nil
}

func openDatabase(cfg *config.Config, zapLog *zap.Logger) (*gorm.DB, error) {
	if cfg.Database.Driver == "postgres" {
		return postgres.Connect(cfg, zapLog)
	}

	logLevel := gormLogger.Silent
	if cfg.App.Debug {
		logLevel = gormLogger.Info
	}
	return sqlite.SetupDatabase(cfg.Database.Path, logLevel)
}

func openFeed(ctx context.Context, cfg *config.Config, db *gorm.DB, zapLog *zap.Logger) (outbound.NotificationFeed, error) {
	if !cfg.Redis.Enabled {
		return gormRepo.NewNotificationFeed(db), nil
	}
	client, err := redisStore.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return redisStore.NewNotificationFeed(client, zapLog), nil
}
