package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seller-payout-vault/config"
	"seller-payout-vault/internal/adapter/http/handler"
	"seller-payout-vault/internal/adapter/storage/postgres"
	redisadapter "seller-payout-vault/internal/adapter/storage/redis"
	"seller-payout-vault/internal/service"
	"seller-payout-vault/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("SPV_CONFIG"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer pool.Close()

	redisClient, err := redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer redisClient.Close()

	// Storage
	sellerRepo := postgres.NewSellerRepo(pool)
	methodRepo := postgres.NewPayoutMethodRepo(pool)
	auditRepo := postgres.NewAuditRepo(pool)
	transactor := postgres.NewTransactor(pool)
	reauthGuard := redisadapter.NewReauthGuard(redisClient, cfg.Security)
	rateLimitStore := redisadapter.NewRateLimitStore(redisClient)

	// Services
	encryptor, err := service.NewEncryptionService(cfg.AES.Key)
	if err != nil {
		return fmt.Errorf("creating encryption service: %w", err)
	}
	hasher := service.NewHashService()
	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	audit := service.NewAuditService(auditRepo, log)
	auth := service.NewAuthService(sellerRepo, hasher, tokens, audit, cfg.JWT.Expiry, log)
	payouts := service.NewPayoutMethodService(
		transactor, methodRepo, sellerRepo, encryptor, hasher, reauthGuard, audit, log,
	)

	router := handler.NewRouter(handler.RouterDeps{
		Auth:    handler.NewAuthHandler(auth),
		Payouts: handler.NewPayoutMethodHandler(payouts),
		Health: handler.NewHealthHandler(
			postgres.NewHealthChecker(pool),
			redisadapter.NewHealthChecker(redisClient),
		),
		Tokens:    tokens,
		RateLimit: rateLimitStore,
		Logger:    log,
		Mode:      cfg.Server.Mode,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}
