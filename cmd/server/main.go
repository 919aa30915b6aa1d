package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	httpadapter "github.com/holtback/holtback-backend/internal/adapter/http"
	"github.com/holtback/holtback-backend/internal/adapter/media"
	"github.com/holtback/holtback-backend/internal/adapter/notifier"
	"github.com/holtback/holtback-backend/internal/adapter/repository/postgres"
	"github.com/holtback/holtback-backend/internal/adapter/repository/supabase"
	"github.com/holtback/holtback-backend/internal/config"
	"github.com/holtback/holtback-backend/internal/domain"
	"github.com/holtback/holtback-backend/internal/security"
	"github.com/holtback/holtback-backend/internal/usecase/auth"
	"github.com/holtback/holtback-backend/internal/usecase/deposit"
	"github.com/holtback/holtback-backend/internal/usecase/signup"
	"github.com/holtback/holtback-backend/internal/usecase/transfer"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 1. Setup repositories: Supabase when configured, Postgres otherwise
	var userRepo domain.UserRepository
	var sessionRepo domain.SessionRepository

	if cfg.SupabaseURL != "" {
		userRepo, err = supabase.NewUserRepository(cfg.SupabaseURL, cfg.SupabaseKey)
		if err != nil {
			log.Fatalf("Failed to connect to supabase: %v", err)
		}
		// Sessions stay local even with a remote record store
		db := mustConnectDB(cfg.DatabaseURL)
		defer db.Close()
		sessionRepo = postgres.NewSessionRepository(db)
	} else {
		db := mustConnectDB(cfg.DatabaseURL)
		defer db.Close()
		userRepo = postgres.NewUserRepository(db)
		sessionRepo = postgres.NewSessionRepository(db)
	}

	// 2. Security primitives
	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenProvider(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)

	// 3. Outbound collaborators
	// Leave the uploader interfaces nil when no media host is configured;
	// wrapping a nil *media.Client would make them non-nil.
	var signupUploader signup.Uploader
	var depositUploader deposit.Uploader
	if cfg.CloudinaryCloud != "" {
		uploader := media.NewClient(cfg.CloudinaryCloud, cfg.CloudinaryPreset)
		signupUploader = uploader
		depositUploader = uploader
	}

	var notifiers []signup.Notifier
	if cfg.TelegramToken != "" {
		tg, err := notifier.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("Failed to create telegram notifier: %v", err)
		}
		notifiers = append(notifiers, tg)
	}
	if cfg.EmailJSService != "" {
		notifiers = append(notifiers, notifier.NewEmailNotifier(cfg.EmailJSService, cfg.EmailJSTemplate, cfg.EmailJSKey))
	}

	// 4. Usecase services
	authService := auth.NewService(userRepo, sessionRepo, hasher, tokens)
	signupService := signup.NewService(userRepo, signupUploader, hasher, notifiers, logger)
	transferService := transfer.NewService(userRepo, sessionRepo, transfer.Config{
		ChallengeCode: cfg.ChallengeCode,
		AccessCode:    cfg.AccessCode,
		FeeRate:       decimal.NewFromFloat(cfg.FeeRate),
		MaxAttempts:   cfg.MaxAttempts,
		StoreTimeout:  cfg.StoreTimeout,
	})
	depositService := deposit.NewService(userRepo, sessionRepo, depositUploader)

	// 5. HTTP server
	server := httpadapter.NewServer(authService, signupService, transferService, depositService, tokens, logger)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Handler(),
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	waitForShutdown(srv, logger)
}

// mustConnectDB opens Postgres and ensures the schema exists.
func mustConnectDB(connStr string) *postgres.DB {
	if connStr == "" {
		connStr = "host=localhost port=5432 user=postgres password=postgres dbname=holtback sslmode=disable"
	}

	db, err := postgres.NewDB(connStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}
	return db
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(srv *http.Server, logger *slog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("shutting down", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("HTTP server stopped")
}
