package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/adapters/messaging/amqp"
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/core/services"
	"github.com/SscSPs/wallet_ledger_app/internal/handlers"
	"github.com/SscSPs/wallet_ledger_app/internal/middleware"
	"github.com/SscSPs/wallet_ledger_app/internal/platform/config"
	"github.com/SscSPs/wallet_ledger_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/wallet_ledger_app/internal/repositories/memory"
	"github.com/SscSPs/wallet_ledger_app/internal/utils"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/retry"
	"github.com/SscSPs/wallet_ledger_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// @title Wallet Ledger API
// @version 1.0
// @description Wallet balances, transfers, bill payments and budgets with idempotent operations.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	policy := retry.Policy{
		MaxRetries:      cfg.StoreCommitMaxRetries,
		InitialInterval: cfg.StoreCommitInitialBackoff,
		MaxInterval:     cfg.StoreCommitMaxBackoff,
	}

	repos, closeStore, err := openStore(ctx, cfg, policy, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var publisher portssvc.EventPublisher
	if cfg.AMQPURL != "" {
		amqpPublisher, err := amqp.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := amqpPublisher.Close(); cerr != nil {
				logger.Error("Error closing AMQP publisher", slog.String("error", cerr.Error()))
			}
		}()
		publisher = amqpPublisher
		logger.Info("Publishing committed operations", slog.String("exchange", cfg.AMQPExchange))
	}

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()

	serviceContainer := services.NewServiceContainer(cfg, repos, publisher)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendBaseURL}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", middleware.IdempotencyKeyHeader)
	corsConfig.ExposeHeaders = []string{middleware.IdempotencyKeyHeader, "X-Request-ID"}
	r.Use(cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer, posthogClient); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		sweepPending(gctx, serviceContainer.Transaction, cfg.PendingSweepInterval, cfg.PendingMaxAge, logger)
		return nil
	})

	return g.Wait()
}

// openStore selects the ledger store backend. The returned func releases its resources.
func openStore(ctx context.Context, cfg *config.Config, policy retry.Policy, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StoreBackend == config.StoreBackendMemory {
		logger.Warn("Using in-memory ledger store, data is lost on restart")
		store := memory.NewStore(memory.WithRetryPolicy(policy))
		return store.Provider(), func() {}, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
		dbPool.Close()
		return portsrepo.RepositoryProvider{}, nil, err
	}

	return pgsql.NewRepositoryProvider(dbPool, policy), dbPool.Close, nil
}

// sweepPending periodically fails journal records left PENDING by an interrupted
// operation, until ctx is done.
func sweepPending(ctx context.Context, sweeper portssvc.PendingSweeperSvc, interval, maxAge time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sweeper.SweepStalePending(ctx, maxAge)
			if err != nil {
				if ctx.Err() == nil {
					logger.Error("Pending sweep failed", slog.String("error", err.Error()))
				}
				continue
			}
			if n > 0 {
				logger.Warn("Failed stale pending operations", slog.Int("count", n))
			}
		}
	}
}
