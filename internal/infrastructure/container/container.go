// Package container provides dependency injection using Uber FX
package container

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	freshnessApp "github.com/misebox/v1/internal/application/freshness"
	notificationApp "github.com/misebox/v1/internal/application/notification"
	"github.com/misebox/v1/internal/infrastructure/ai/anthropic"
	"github.com/misebox/v1/internal/infrastructure/config"
	"github.com/misebox/v1/internal/infrastructure/http/server"
	"github.com/misebox/v1/internal/infrastructure/monitoring"
	gormRepo "github.com/misebox/v1/internal/infrastructure/persistence/gorm"
	"github.com/misebox/v1/internal/infrastructure/persistence/postgres"
	redisStore "github.com/misebox/v1/internal/infrastructure/persistence/redis"
	"github.com/misebox/v1/internal/infrastructure/persistence/sqlite"
	"github.com/misebox/v1/internal/ports/inbound"
	"github.com/misebox/v1/internal/ports/outbound"
	"github.com/misebox/v1/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	RepositoryModule,
	EstimatorModule,
	MetricsModule,
	ServiceModule,
	HTTPModule,
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the relational store, sqlite or postgres per config
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		if cfg.Database.Driver == "postgres" {
			return postgres.Connect(cfg, log)
		}

		logLevel := gormLogger.Silent
		if cfg.App.Debug {
			logLevel = gormLogger.Info
		}

		db, err := sqlite.SetupDatabase(cfg.Database.Path, logLevel)
		if err != nil {
			return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
		}

		if cfg.Database.SeedRules {
			if err := sqlite.SeedRules(db); err != nil {
				log.Warn("Failed to seed shelf-life rules", zap.Error(err))
			}
		}

		log.Info("Connected to SQLite database",
			zap.String("path", cfg.Database.Path),
			zap.Bool("in_memory", cfg.Database.Path == ":memory:"),
		)
		return db, nil
	},
)

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	fx.Annotate(
		gormRepo.NewPantryRepository,
		fx.As(new(outbound.PantryRepository)),
	),
	fx.Annotate(
		gormRepo.NewRuleRepository,
		fx.As(new(outbound.RuleRepository)),
	),
	fx.Annotate(
		gormRepo.NewMealPlanRepository,
		fx.As(new(outbound.MealPlanRepository)),
	),
	fx.Annotate(
		gormRepo.NewToolRepository,
		fx.As(new(outbound.ToolRepository)),
	),
	fx.Annotate(
		gormRepo.NewUserDirectory,
		fx.As(new(outbound.UserDirectory)),
	),

	// Notification feed: Redis when enabled, relational store otherwise.
	func(cfg *config.Config, db *gorm.DB, log *zap.Logger) (outbound.NotificationFeed, error) {
		if !cfg.Redis.Enabled {
			return gormRepo.NewNotificationFeed(db), nil
		}
		client, err := redisStore.NewClient(context.Background(), cfg)
		if err != nil {
			return nil, err
		}
		log.Info("Using Redis notification feed", zap.String("addr", cfg.RedisAddr()))
		return redisStore.NewNotificationFeed(client, log), nil
	},
)

// EstimatorModule provides the external freshness estimator
var EstimatorModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) outbound.FreshnessEstimator {
		apiKey := ""
		if cfg.AI.Enabled {
			apiKey = cfg.AI.AnthropicKey
		}
		return anthropic.NewClient(anthropic.Config{
			APIKey:  apiKey,
			Model:   cfg.AI.AnthropicModel,
			BaseURL: cfg.AI.BaseURL,
			Timeout: cfg.AI.Timeout,
		}, log)
	},
)

// MetricsModule provides the Prometheus metrics sink
var MetricsModule = fx.Provide(
	func(cfg *config.Config) outbound.EngineMetrics {
		if !cfg.Monitoring.EnableMetrics {
			return outbound.NopMetrics{}
		}
		return monitoring.NewEngineMetrics(prometheus.DefaultRegisterer)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	fx.Annotate(
		func(
			cfg *config.Config,
			feed outbound.NotificationFeed,
			items outbound.PantryRepository,
			meals outbound.MealPlanRepository,
			tools outbound.ToolRepository,
			log *zap.Logger,
		) *notificationApp.Service {
			return notificationApp.NewService(feed, items, meals, tools,
				cfg.Notifications.MaintenanceHorizonDays, log)
		},
		fx.As(new(inbound.NotificationService)),
	),
	fx.Annotate(
		freshnessApp.NewService,
		fx.As(new(inbound.FreshnessService)),
	),
)

// HTTPModule provides the HTTP server
var HTTPModule = fx.Provide(
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	srv *server.Server,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting Misebox freshness engine",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
			)

			go func() {
				if err := srv.Start(); err != nil {
					log.Fatal("Failed to start HTTP server", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down Misebox freshness engine")

			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			sqlDB, err := db.DB()
			if err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error("Failed to close database connection", zap.Error(err))
				}
			}

			_ = log.Sync()
			return nil
		},
	})
}
