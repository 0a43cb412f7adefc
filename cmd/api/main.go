package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/paluwagan/paluwagan-backend/api/routes"
	"github.com/paluwagan/paluwagan-backend/internal/config"
	"github.com/paluwagan/paluwagan-backend/internal/cycle"
	"github.com/paluwagan/paluwagan-backend/internal/handlers"
	"github.com/paluwagan/paluwagan-backend/internal/repositories"
	mongorepo "github.com/paluwagan/paluwagan-backend/internal/repositories/mongodb"
	"github.com/paluwagan/paluwagan-backend/internal/scheduler"
	"github.com/paluwagan/paluwagan-backend/internal/services"
	"github.com/paluwagan/paluwagan-backend/pkg/mongodb"
	"github.com/paluwagan/paluwagan-backend/pkg/paymongo"
)

func main() {
	// Load .env if present; real deployments set environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
	cancel()
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	err = mongorepo.EnsureIndexes(ctx, db)
	cancel()
	if err != nil {
		slog.Error("Failed to ensure indexes", "error", err)
		os.Exit(1)
	}

	// Repositories
	var memberRepo repositories.MemberRepository = mongorepo.NewMemberRepository(db)
	var transactionRepo repositories.TransactionRepository = mongorepo.NewTransactionRepository(db)
	var recipientRepo repositories.RecipientRepository = mongorepo.NewRecipientRepository(db)

	gateway := paymongo.NewClient(cfg.PayMongo.SecretKey, cfg.PayMongo.BaseURL)
	clock := cycle.NewClock(cfg.Draw.Day, cfg.Draw.ClampToMonthEnd)

	// Services
	authService := services.NewAuthService(memberRepo, cfg)
	memberService := services.NewMemberService(memberRepo, transactionRepo)
	ledgerService := services.NewLedgerService(transactionRepo)
	statsService := services.NewStatsService(transactionRepo, memberRepo)
	recipientService := services.NewRecipientService(recipientRepo, memberRepo, transactionRepo, statsService, clock)
	contributionService := services.NewContributionService(memberRepo, gateway, cfg)

	// Handlers
	handlerSet := &routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		Member:       handlers.NewMemberHandler(memberService),
		Transaction:  handlers.NewTransactionHandler(ledgerService),
		Stats:        handlers.NewStatsHandler(statsService),
		Recipient:    handlers.NewRecipientHandler(recipientService),
		Contribution: handlers.NewContributionHandler(contributionService),
		Webhook:      handlers.NewWebhookHandler(ledgerService),
	}

	drawScheduler, err := scheduler.New(cfg.Draw.Schedule, recipientService)
	if err != nil {
		slog.Error("Failed to set up draw scheduler", "error", err)
		os.Exit(1)
	}
	drawScheduler.Start()
	defer drawScheduler.Stop()

	router := routes.SetupRouter(cfg, handlerSet)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	slog.Info("Server starting", "port", cfg.Server.Port)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})))
}
