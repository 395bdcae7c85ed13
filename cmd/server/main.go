package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gestor-confeitaria/assistant-api/internal/api"
	"github.com/gestor-confeitaria/assistant-api/internal/core/ports"
	"github.com/gestor-confeitaria/assistant-api/internal/core/service"
	"github.com/gestor-confeitaria/assistant-api/internal/dispatch"
	"github.com/gestor-confeitaria/assistant-api/internal/infrastructure/ai"
	"github.com/gestor-confeitaria/assistant-api/internal/infrastructure/cache"
	"github.com/gestor-confeitaria/assistant-api/internal/infrastructure/config"
	"github.com/gestor-confeitaria/assistant-api/internal/infrastructure/db/mongo"
	"github.com/gestor-confeitaria/assistant-api/internal/infrastructure/db/redis"
	"github.com/gestor-confeitaria/assistant-api/internal/monitoring"
	"github.com/gestor-confeitaria/assistant-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB (required) ---
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	// --- Redis (optional shared cache) ---
	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, serving from in-process cache only")
			rdb = nil
		}
	} else {
		log.Info().Msg("no redis configured, serving from in-process cache only")
	}

	// --- Repositories ---
	userRepo := mongo.NewUserRepository(db)
	expenseRepo := mongo.NewExpenseRepository(db)
	orderRepo := mongo.NewOrderRepository(db)
	recipeRepo := mongo.NewRecipeRepository(db)
	inventoryRepo := mongo.NewInventoryRepository(db)
	metricsRepo := mongo.NewMetricsRepository(db)
	onboardingRepo := mongo.NewOnboardingRepository(db)
	adminRepo := mongo.NewAdminRepository(db)
	backupRepo := mongo.NewBackupRepository(db)

	ensureIndexes(ctx, log, userRepo, expenseRepo, orderRepo, recipeRepo, inventoryRepo, metricsRepo)

	// --- Cache ---
	var remote cache.Backend
	if rdb != nil {
		remote = cache.NewRedisCache(rdb)
	}
	cacheManager := cache.NewManager(remote, cache.NewMemoryCache(cfg.Cache.MaxEntries), log)

	// --- Analyzer ---
	var analyzer ports.Analyzer
	if cfg.AI.APIKey != "" {
		analyzer, err = ai.NewOpenAIAnalyzer(ai.Config{
			APIKey:  cfg.AI.APIKey,
			BaseURL: cfg.AI.BaseURL,
			Model:   cfg.AI.Model,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("analyzer setup failed")
		}
	} else {
		log.Warn().Msg("no OpenAI API key configured, analysis intents will fail")
		analyzer = ai.Disabled{}
	}

	// --- Metrics pipeline ---
	collector := monitoring.NewCollector(metricsRepo, cfg.Metrics.BufferSize, log)
	collector.StartFlushLoop(ctx, time.Duration(cfg.Metrics.FlushSeconds)*time.Second)

	// --- Services ---
	limiter := service.NewPlanLimiter(userRepo, expenseRepo, orderRepo, recipeRepo, log)
	userSvc := service.NewUserService(userRepo, cacheManager, log)
	adminSvc := service.NewAdminService(adminRepo, userRepo, onboardingRepo, metricsRepo, userSvc, cfg.AdminEmails, log)
	services := dispatch.Services{
		Users:      userSvc,
		Expenses:   service.NewExpenseService(expenseRepo, cacheManager, limiter, log),
		Orders:     service.NewOrderService(orderRepo, cacheManager, limiter, log),
		Recipes:    service.NewRecipeService(recipeRepo, cacheManager, limiter, log),
		Inventory:  service.NewInventoryService(inventoryRepo, log),
		Analysis:   service.NewAnalysisService(expenseRepo, orderRepo, analyzer, cacheManager, log),
		Onboarding: service.NewOnboardingService(onboardingRepo, userRepo, log),
		Admin:      adminSvc,
		Backups:    service.NewBackupService(backupRepo, adminSvc, cfg.Metrics.RetentionDays, log),
		Monitoring: service.NewMonitoringService(metricsRepo, collector, cfg.Metrics.RetentionDays, log),
		Cache:      cacheManager,
	}

	// --- Dispatcher ---
	dispatcher := dispatch.NewDispatcher(collector, userSvc, log)
	dispatch.RegisterAll(dispatcher, services)
	log.Info().Int("intents", dispatcher.Intents()).Msg("intent registry ready")

	// --- Daily maintenance: backup record + metrics retention ---
	startMaintenanceLoop(ctx, log, services.Backups, services.Monitoring)

	// --- HTTP server ---
	e := api.NewRouter(dispatcher, db, rdb, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := collector.FlushAll(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("final metrics flush failed")
	}
}

type indexEnsurer interface {
	EnsureIndexes(ctx context.Context) error
}

// ensureIndexes creates collection indexes at startup. A failure is logged
// but not fatal: the service runs without indexes, just slower.
func ensureIndexes(ctx context.Context, log zerolog.Logger, ensurers ...indexEnsurer) {
	for _, e := range ensurers {
		if err := e.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("index creation failed")
		}
	}
}

// startMaintenanceLoop records a daily backup and prunes aged metric events
// once a day until ctx is cancelled.
func startMaintenanceLoop(ctx context.Context, log zerolog.Logger, backups *service.BackupService, monitoringSvc *service.MonitoringService) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := backups.RunDaily(ctx); err != nil {
					log.Error().Err(err).Msg("daily backup failed")
				}
				if err := monitoringSvc.CleanupOld(ctx); err != nil {
					log.Error().Err(err).Msg("metrics cleanup failed")
				}
			}
		}
	}()
}
