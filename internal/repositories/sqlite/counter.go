package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"visit-counter-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

const storeName = "sqlite"

const (
	selectVisits = `SELECT visits FROM visit_counters WHERE pk = ?`

	// The upsert runs as a single statement, so SQLite's write lock makes
	// the read-modify-write atomic.
	incrementVisits = `
INSERT INTO visit_counters (pk, visits) VALUES (?, 1)
ON CONFLICT (pk) DO UPDATE SET visits = visits + 1
RETURNING visits`
)

// CounterRepository keeps visit counters in a SQLite table
type CounterRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewCounterRepository creates a SQLite backed counter store
func NewCounterRepository(db *sql.DB, logger *logrus.Logger) *CounterRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &CounterRepository{
		db:     db,
		logger: logger,
	}
}

// Get implements repositories.CounterRepository.Get
func (r *CounterRepository) Get(ctx context.Context, key string) (uint64, error) {
	if key == "" {
		return 0, repositories.NewStoreError(storeName, "Get", key, repositories.ErrInvalidKey)
	}

	var visits int64
	err := r.db.QueryRowContext(ctx, selectVisits, key).Scan(&visits)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, repositories.NewStoreError(storeName, "Get", key, err)
	}

	return toVisits("Get", key, visits)
}

// Increment implements repositories.CounterRepository.Increment
func (r *CounterRepository) Increment(ctx context.Context, key string) (uint64, error) {
	if key == "" {
		return 0, repositories.NewStoreError(storeName, "Increment", key, repositories.ErrInvalidKey)
	}

	var visits int64
	if err := r.db.QueryRowContext(ctx, incrementVisits, key).Scan(&visits); err != nil {
		return 0, repositories.NewStoreError(storeName, "Increment", key, err)
	}

	return toVisits("Increment", key, visits)
}

// Name implements repositories.CounterRepository.Name
func (r *CounterRepository) Name() string {
	return storeName
}

// Close implements repositories.CounterRepository.Close
func (r *CounterRepository) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	r.logger.Info("Database connection closed")
	return nil
}

func toVisits(op, key string, visits int64) (uint64, error) {
	if visits < 0 {
		return 0, repositories.NewStoreError(storeName, op, key,
			fmt.Errorf("%w: negative value %d", repositories.ErrMalformedItem, visits))
	}
	return uint64(visits), nil
}
