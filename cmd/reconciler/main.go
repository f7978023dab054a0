package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/hub-shuttle/internal/adapter"
	"github.com/feral-file/hub-shuttle/internal/codec"
	"github.com/feral-file/hub-shuttle/internal/config"
	"github.com/feral-file/hub-shuttle/internal/hub"
	"github.com/feral-file/hub-shuttle/internal/logger"
	"github.com/feral-file/hub-shuttle/internal/reconciler"
	"github.com/feral-file/hub-shuttle/internal/shuttle"
	"github.com/feral-file/hub-shuttle/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadReconcilerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "reconciler",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Hub Reconciler")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db,
		cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns,
		cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize adapters and store
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()
	dataStore := store.NewPGStore(db, clockAdapter)

	// Connect to the hub
	hubClient, err := adapter.NewHubClient(cfg.Hub.Endpoint, cfg.Hub.Insecure)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial hub", zap.Error(err), zap.String("endpoint", cfg.Hub.Endpoint))
	}
	defer hubClient.Close()

	// Missing messages re-enter the dispatch pipeline without a checkpoint
	messageCodec := codec.NewCodec(jsonAdapter)
	dispatcher := shuttle.NewDispatcher(cfg.Hub.HubID, messageCodec, dataStore, nil, nil)

	rec := reconciler.NewReconciler(hubClient, dataStore)
	pool := reconciler.NewPool(rec, cfg.Worker.PoolSize)
	defer pool.Stop()

	// Cancel on SIGINT/SIGTERM; the pool observes ctx between batches
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	}()

	fids := cfg.Fidset()
	logger.InfoCtx(ctx, "Reconciling fids", zap.Int("count", len(fids)))

	hook := func(ctx context.Context, msg *hub.Message, state reconciler.MessageState) error {
		if !state.MissingInDB {
			return nil
		}
		return dispatcher.HandleMissing(ctx, msg)
	}

	if err := pool.ReconcileFids(ctx, fids, hook); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("component", "reconciler"))
	}

	logger.Info("Hub Reconciler finished")
}
