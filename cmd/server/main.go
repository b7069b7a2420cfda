package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/timebank/internal/adapter/http"
	"github.com/iho/timebank/internal/adapter/http/handler"
	"github.com/iho/timebank/internal/adapter/repository/memory"
	"github.com/iho/timebank/internal/infrastructure/config"
	"github.com/iho/timebank/internal/infrastructure/logger"
	"github.com/iho/timebank/internal/infrastructure/metrics"
	"github.com/iho/timebank/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger
	zerolog.SetGlobalLevel(appLogger.GetLevel())

	// Initialize the in-memory ledger store and repositories
	store := memory.NewStore()
	txManager := memory.NewTxManager(store)
	accountRepo := memory.NewAccountRepository(store)
	entryRepo := memory.NewEntryRepository(store)

	// Identifier sequences, one per entry variant (deposits and
	// withdrawals share one)
	transactionIDs := memory.NewSequenceGenerator("transaction")
	transferIDs := memory.NewSequenceGenerator("transfer")
	scheduledIDs := memory.NewSequenceGenerator("scheduled")

	m := metrics.New()

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, entryRepo, transactionIDs, m)
	ledgerUC := usecase.NewLedgerUseCase(accountRepo, entryRepo)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, entryRepo, transferIDs, m)
	scheduledUC := usecase.NewScheduledUseCase(txManager, accountRepo, entryRepo, transferUC, scheduledIDs, m)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		Logger:           appLogger,
		AccountHandler:   handler.NewAccountHandler(accountUC, ledgerUC),
		TransferHandler:  handler.NewTransferHandler(transferUC),
		ScheduledHandler: handler.NewScheduledHandler(scheduledUC),
		HealthHandler:    handler.NewHealthHandler(),
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown. The ledger lives only in memory: stopping the
	// process discards it, by design.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
