package server

import (
	"context"
	"fmt"

	"visit-counter-api/internal/config"
	"visit-counter-api/internal/handlers"
	"visit-counter-api/internal/repositories"
	"visit-counter-api/internal/repositories/dynamo"
	"visit-counter-api/internal/repositories/memory"
	"visit-counter-api/internal/repositories/redis"
	"visit-counter-api/internal/repositories/sqlite"
	"visit-counter-api/internal/services"

	"github.com/sirupsen/logrus"
)

// Container holds all application dependencies. It is built once per
// process and only read afterwards.
type Container struct {
	Config       *config.Config
	Logger       *logrus.Logger
	Counter      repositories.CounterRepository
	VisitService services.VisitService
	VisitHandler *handlers.VisitHandler
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger := config.NewLogger(cfg)

	counter, err := NewCounterRepository(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter store: %w", cfg.Store.Type, err)
	}

	return newContainer(cfg, logger, counter), nil
}

func newContainer(cfg *config.Config, logger *logrus.Logger, counter repositories.CounterRepository) *Container {
	visitService := services.NewVisitService(counter, cfg.Store.CounterKey, logger)
	visitHandler := handlers.NewVisitHandler(visitService,
		handlers.WithLogger(logger),
		handlers.WithPreflightShortCircuit(cfg.CORS.PreflightShortCircuit),
	)

	logger.WithFields(config.GetServerlessConfig().LogFields()).
		WithField("store", counter.Name()).
		WithField("counter_key", cfg.Store.CounterKey).
		Info("Container initialized")

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Counter:      counter,
		VisitService: visitService,
		VisitHandler: visitHandler,
	}
}

// NewCounterRepository creates the counter store selected by configuration
func NewCounterRepository(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repositories.CounterRepository, error) {
	store := cfg.Store

	switch store.Type {
	case "dynamodb":
		client, err := dynamo.NewClient(ctx, dynamo.ClientConfig{
			Region:          store.DynamoDB.Region,
			Endpoint:        store.DynamoDB.Endpoint,
			AccessKeyID:     store.DynamoDB.AccessKeyID,
			SecretAccessKey: store.DynamoDB.SecretAccessKey,
			MaxAttempts:     store.MaxAttempts,
		})
		if err != nil {
			return nil, err
		}
		return dynamo.NewCounterRepository(client, store.DynamoDB.Table, store.DynamoDB.ConsistentRead, logger)

	case "redis":
		client := redis.NewClient(redis.Options{
			Addr:     store.Redis.Addr,
			Password: store.Redis.Password,
			DB:       store.Redis.DB,
		})
		return redis.NewCounterRepository(client, store.Redis.KeyPrefix, logger), nil

	case "sqlite":
		connConfig := sqlite.DefaultConnectionConfig()
		connConfig.DatabasePath = store.SQLite.Path
		connConfig.Logger = logger

		db, err := sqlite.Open(connConfig)
		if err != nil {
			return nil, err
		}
		return sqlite.NewCounterRepository(db, logger), nil

	case "memory":
		return memory.NewCounterRepository(), nil

	default:
		return nil, fmt.Errorf("unsupported store type: %s", store.Type)
	}
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.Counter == nil {
		return nil
	}
	if err := c.Counter.Close(); err != nil {
		return fmt.Errorf("failed to close counter store: %w", err)
	}
	return nil
}
