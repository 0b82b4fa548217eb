// Package main is the entry point for the FinSight API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/finsight/backend/config"
	"github.com/finsight/backend/internal/application/adapter"
	syncctl "github.com/finsight/backend/internal/application/sync"
	"github.com/finsight/backend/internal/application/usecase/rule"
	"github.com/finsight/backend/internal/application/usecase/suggestion"
	"github.com/finsight/backend/internal/application/usecase/transaction"
	"github.com/finsight/backend/internal/infra/bus"
	"github.com/finsight/backend/internal/infra/db"
	"github.com/finsight/backend/internal/infra/server/router"
	"github.com/finsight/backend/internal/integration/adapters"
	"github.com/finsight/backend/internal/integration/entrypoint/controller"
	"github.com/finsight/backend/internal/integration/entrypoint/middleware"
	"github.com/finsight/backend/internal/integration/persistence"
	"github.com/finsight/backend/internal/integration/persistence/model"
	"github.com/finsight/backend/internal/integration/realtime"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting FinSight API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	// Open the primary store, falling back to the local SQLite store when
	// PostgreSQL is unreachable. With neither, the API still serves health
	// and category suggestions.
	database := openStore(cfg)
	if database != nil {
		if err := database.AutoMigrate(
			&model.TransactionModel{},
			&model.CategoryRuleModel{},
		); err != nil {
			slog.Error("Failed to run database migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("Database migrations completed successfully", "store", string(database.Mode()))

		defer func() {
			if err := database.Close(); err != nil {
				slog.Error("Failed to close database connection", "error", err)
			}
		}()
	}

	// Connect the cross-process change feed. Optional: without Redis,
	// change events stay in-process.
	var feed adapter.ChangeFeed
	if redisClient, err := realtime.NewRedisClient(&cfg.Redis); err != nil {
		slog.Warn("Redis connection failed, change feed disabled", "error", err)
	} else {
		feed = realtime.NewRedisFeed(redisClient)
		defer func() {
			_ = redisClient.Close()
		}()
	}

	eventBus := bus.New()
	defer eventBus.Close()

	healthController := controller.NewHealthController(database)

	// Suggestion system works with or without a store; custom rules just
	// need the rule repository.
	var ruleRepo adapter.CategoryRuleRepository
	if database != nil {
		ruleRepo = persistence.NewCategoryRuleRepository(database.DB())
	}
	geminiService := adapters.NewGeminiService(&cfg.AI)
	suggestUseCase := suggestion.NewSuggestCategoryUseCase(
		suggestion.NewEngine(suggestion.BuiltinRules()),
		ruleRepo,
		geminiService,
	)
	suggestionController := controller.NewSuggestionController(suggestUseCase)
	suggestRateLimiter := middleware.NewRateLimiter()

	// Store-backed systems
	var summaryController *controller.SummaryController
	var transactionController *controller.TransactionController
	var ruleController *controller.RuleController
	var authMiddleware *middleware.AuthMiddleware

	if database != nil {
		transactionRepo := persistence.NewTransactionRepository(database.DB())
		broadcaster := realtime.NewBroadcaster(eventBus, feed)

		syncManager := syncctl.NewManager(transactionRepo, feed, eventBus, syncctl.Config{
			FetchTimeout: cfg.Sync.FetchTimeout,
			EventBuffer:  cfg.Sync.EventBuffer,
		})
		defer syncManager.Close()

		tokenService := adapters.NewTokenService(&cfg.JWT)
		authMiddleware = middleware.NewAuthMiddleware(tokenService)

		summaryController = controller.NewSummaryController(syncManager)
		transactionController = controller.NewTransactionController(
			transaction.NewCreateTransactionUseCase(transactionRepo, broadcaster),
			transaction.NewUpdateTransactionUseCase(transactionRepo, broadcaster),
			transaction.NewDeleteTransactionUseCase(transactionRepo, broadcaster),
			transaction.NewListTransactionsUseCase(transactionRepo),
		)
		ruleController = controller.NewRuleController(
			rule.NewCreateRuleUseCase(ruleRepo),
			rule.NewListRulesUseCase(ruleRepo),
			rule.NewDeleteRuleUseCase(ruleRepo),
		)

		slog.Info("Summary sync and transaction systems initialized")
	} else {
		slog.Warn("No store available; serving suggestions and health only")
	}

	// Setup router
	r := router.NewRouter(
		healthController,
		summaryController,
		transactionController,
		ruleController,
		suggestionController,
		suggestRateLimiter,
		authMiddleware,
	)
	engine := r.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     engine,
		ReadTimeout: cfg.Server.ReadTimeout,
		// No WriteTimeout: the summary stream endpoint holds its
		// connection open indefinitely.
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// openStore connects to PostgreSQL, then to the SQLite fallback store, and
// returns nil when neither is available.
func openStore(cfg *config.Config) *db.Database {
	database, err := db.NewPostgresConnection(&cfg.Database)
	if err == nil {
		return database
	}
	slog.Warn("Database connection failed", "error", err)

	if !cfg.Fallback.Enabled {
		return nil
	}

	database, err = db.NewFallbackConnection(&cfg.Fallback)
	if err != nil {
		slog.Error("Fallback store unavailable", "error", err)
		return nil
	}
	return database
}
