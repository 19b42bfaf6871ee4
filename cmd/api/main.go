package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/igetback/shuttle-api/internal/adapters/email"
	"github.com/igetback/shuttle-api/internal/adapters/httpapi"
	memsubstore "github.com/igetback/shuttle-api/internal/adapters/memory/substore"
	memtripstore "github.com/igetback/shuttle-api/internal/adapters/memory/tripstore"
	memuserstore "github.com/igetback/shuttle-api/internal/adapters/memory/userstore"
	"github.com/igetback/shuttle-api/internal/adapters/postgres"
	pgsubstore "github.com/igetback/shuttle-api/internal/adapters/postgres/substore"
	pgtripstore "github.com/igetback/shuttle-api/internal/adapters/postgres/tripstore"
	pguserstore "github.com/igetback/shuttle-api/internal/adapters/postgres/userstore"
	"github.com/igetback/shuttle-api/internal/app/subscriptions"
	"github.com/igetback/shuttle-api/internal/app/trips"
	"github.com/igetback/shuttle-api/internal/platform/auth/jwtverifier"
	platformclock "github.com/igetback/shuttle-api/internal/platform/clock"
	"github.com/igetback/shuttle-api/internal/platform/config"
	"github.com/igetback/shuttle-api/internal/platform/logging"
	platformrefdata "github.com/igetback/shuttle-api/internal/platform/refdata"
	"github.com/igetback/shuttle-api/internal/ports/out/substore"
	"github.com/igetback/shuttle-api/internal/ports/out/tripstore"
	"github.com/igetback/shuttle-api/internal/ports/out/userstore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ref, err := platformrefdata.Load()
	if err != nil {
		logger.Fatal("load reference data", zap.Error(err))
	}

	var authMW func(http.Handler) http.Handler
	switch cfg.AuthMode {
	case "dev":
		logger.Warn("auth in dev mode; identities come from X-Debug-Email")
		authMW = httpapi.NewDevAuthMiddleware(cfg.DevEmail)
	default:
		authMW = httpapi.NewAuthMiddleware(jwtverifier.New(cfg.JWTSecret))
	}

	var (
		tripStore tripstore.Store
		userStore userstore.Store
		subStore  substore.Store
		cleanup   func()
	)
	switch cfg.StorageBackend {
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			cancel()
			logger.Fatal("connect postgres", zap.Error(err))
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			cancel()
			logger.Fatal("migrate", zap.Error(err))
		}
		cancel()
		cleanup = pool.Close

		tripStore = pgtripstore.NewStore(pool)
		userStore = pguserstore.NewStore(pool)
		subStore = pgsubstore.NewStore(pool)
	default:
		logger.Info("using in-memory storage; data is lost on restart")
		tripStore = memtripstore.NewStore()
		userStore = memuserstore.NewStore()
		subStore = memsubstore.NewStore()
	}
	if cleanup != nil {
		defer cleanup()
	}

	notifier := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	}, logger)

	clk := platformclock.NewSystemClock()
	tripsSvc := trips.NewService(tripStore, userStore, subStore, ref, notifier, clk, logger)
	subsSvc := subscriptions.NewService(subStore, ref, logger)

	api := httpapi.NewServer(tripsSvc, subsSvc, logger)
	handler := httpapi.NewRouter(api, httpapi.RouterOptions{AuthMiddleware: authMW})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("api listening",
			zap.String("port", cfg.Port),
			zap.String("storage", cfg.StorageBackend),
			zap.String("authMode", cfg.AuthMode),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
