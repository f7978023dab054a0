package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/hub-shuttle/internal/adapter"
	"github.com/feral-file/hub-shuttle/internal/checkpoint"
	"github.com/feral-file/hub-shuttle/internal/codec"
	"github.com/feral-file/hub-shuttle/internal/config"
	"github.com/feral-file/hub-shuttle/internal/hub"
	"github.com/feral-file/hub-shuttle/internal/logger"
	"github.com/feral-file/hub-shuttle/internal/providers/jetstream"
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
	cfg, err := config.LoadShuttleConfig(*configFile, *envPath)
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
			"service": "shuttle",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Hub Shuttle")

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

	// Initialize adapters
	clockAdapter := adapter.NewClock()
	jsonAdapter := adapter.NewJSON()

	// Initialize store and schema
	dataStore := store.NewPGStore(db, clockAdapter)
	if err := dataStore.Migrate(ctx); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate schema", zap.Error(err))
	}

	// Initialize checkpoint store
	redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.FatalCtx(ctx, "Failed to connect to Redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
	}
	checkpointStore := checkpoint.NewRedisCheckpoint(redisClient)
	logger.InfoCtx(ctx, "Connected to Redis")

	// Connect to the hub
	hubClient, err := adapter.NewHubClient(cfg.Hub.Endpoint, cfg.Hub.Insecure)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to dial hub", zap.Error(err), zap.String("endpoint", cfg.Hub.Endpoint))
	}
	defer hubClient.Close()

	// Initialize the optional merge-notification publisher
	var handler shuttle.MessageHandler
	if cfg.NATS.Enabled {
		natsJS := adapter.NewNatsJetStream()
		publisher, err := jetstream.NewPublisher(jetstream.Config{
			URL:            cfg.NATS.URL,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, natsJS, jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to create NATS publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
		defer publisher.Close()
		handler = publisher
		logger.InfoCtx(ctx, "Connected to NATS JetStream")
	}

	messageCodec := codec.NewCodec(jsonAdapter)
	dispatcher := shuttle.NewDispatcher(cfg.Hub.HubID, messageCodec, dataStore, checkpointStore, handler)

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Run the subscribe loop with exponential backoff between transient failures
	errCh := make(chan error, 1)
	go func() {
		bo := backoff.NewExponentialBackOff()
		bo.MaxElapsedTime = 0
		errCh <- backoff.Retry(func() error {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			if err := runSubscription(ctx, cfg.Hub.HubID, hubClient, dispatcher, checkpointStore); err != nil {
				logger.ErrorCtx(ctx, err, zap.String("component", "subscriber"))
				return err
			}
			return nil
		}, backoff.WithContext(bo, ctx))
	}()

	// Wait for shutdown signal or a terminal error
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		if err != nil {
			logger.ErrorCtx(ctx, err, zap.String("component", "shuttle"))
		}
		cancel()
	}

	// Give some time for graceful shutdown
	time.Sleep(time.Second)

	// Use non-context logger for final shutdown message since context is already canceled
	logger.Info("Hub Shuttle stopped")
}

// runSubscription resumes from the saved checkpoint and streams until the
// stream fails, an event fails to dispatch, or the context is canceled
func runSubscription(ctx context.Context, hubID string, hubClient adapter.HubClient, dispatcher *shuttle.Dispatcher, checkpointStore checkpoint.Checkpoint) error {
	lastEventID, err := checkpointStore.Load(ctx, hubID)
	if err != nil {
		return err
	}
	var fromID *uint64
	if lastEventID > 0 {
		fromID = &lastEventID
	}

	var dispatchErr error
	subscriber := shuttle.NewSubscriber(hubClient, nil)
	subscriber.OnEvent(func(ctx context.Context, event *hub.Event) {
		if err := dispatcher.ProcessEvent(ctx, event); err != nil {
			logger.ErrorCtx(ctx, err, zap.Uint64("event_id", event.ID))
			dispatchErr = err
			subscriber.Stop()
		}
	})
	subscriber.OnError(func(err error, stopped bool) {
		if !stopped {
			logger.Error(err, zap.String("message", "Subscription ended"))
		}
	})
	if err := subscriber.Start(ctx, fromID); err != nil {
		return err
	}
	return dispatchErr
}
