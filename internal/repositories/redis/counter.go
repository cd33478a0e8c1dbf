package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"visit-counter-api/internal/repositories"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const storeName = "redis"

// Options configures the Redis counter store
type Options struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// CounterRepository keeps visit counters as Redis integers. INCR is atomic
// on the server and creates missing keys at 0 before incrementing.
type CounterRepository struct {
	rdb    goredis.UniversalClient
	prefix string
	logger *logrus.Logger
}

// NewClient creates a Redis client from options
func NewClient(opts Options) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

// NewCounterRepository creates a Redis backed counter store
func NewCounterRepository(rdb goredis.UniversalClient, prefix string, logger *logrus.Logger) *CounterRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &CounterRepository{
		rdb:    rdb,
		prefix: prefix,
		logger: logger,
	}
}

// Ping verifies the server is reachable
func (r *CounterRepository) Ping(ctx context.Context) error {
	if err := r.rdb.Ping(ctx).Err(); err != nil {
		return repositories.NewStoreError(storeName, "Ping", "", err)
	}
	return nil
}

// Get implements repositories.CounterRepository.Get
func (r *CounterRepository) Get(ctx context.Context, key string) (uint64, error) {
	if key == "" {
		return 0, repositories.NewStoreError(storeName, "Get", key, repositories.ErrInvalidKey)
	}

	raw, err := r.rdb.Get(ctx, r.redisKey(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, repositories.NewStoreError(storeName, "Get", key, err)
	}

	visits, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, repositories.NewStoreError(storeName, "Get", key,
			fmt.Errorf("%w: %q is not a visit count", repositories.ErrMalformedItem, raw))
	}
	return visits, nil
}

// Increment implements repositories.CounterRepository.Increment
func (r *CounterRepository) Increment(ctx context.Context, key string) (uint64, error) {
	if key == "" {
		return 0, repositories.NewStoreError(storeName, "Increment", key, repositories.ErrInvalidKey)
	}

	visits, err := r.rdb.Incr(ctx, r.redisKey(key)).Result()
	if err != nil {
		return 0, repositories.NewStoreError(storeName, "Increment", key, err)
	}
	if visits < 0 {
		return 0, repositories.NewStoreError(storeName, "Increment", key,
			fmt.Errorf("%w: negative value %d", repositories.ErrMalformedItem, visits))
	}
	return uint64(visits), nil
}

// Name implements repositories.CounterRepository.Name
func (r *CounterRepository) Name() string {
	return storeName
}

// Close implements repositories.CounterRepository.Close
func (r *CounterRepository) Close() error {
	if err := r.rdb.Close(); err != nil {
		r.logger.WithError(err).Warn("Failed to close redis client")
		return err
	}
	return nil
}

func (r *CounterRepository) redisKey(key string) string {
	return r.prefix + key
}
