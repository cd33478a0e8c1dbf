package services

import (
	"context"
	"fmt"
	"time"

	"visit-counter-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// VisitService defines the visit counter business operations
type VisitService interface {
	// RecordVisit atomically adds one visit and returns the new total
	RecordVisit(ctx context.Context) (uint64, error)

	// CurrentVisits returns the total without modifying it
	CurrentVisits(ctx context.Context) (uint64, error)
}

// visitService implements the VisitService interface
type visitService struct {
	repo   repositories.CounterRepository
	key    string
	logger *logrus.Logger
}

// NewVisitService creates a visit service bound to a single counter key
func NewVisitService(repo repositories.CounterRepository, key string, logger *logrus.Logger) VisitService {
	if logger == nil {
		logger = logrus.New()
	}
	return &visitService{
		repo:   repo,
		key:    key,
		logger: logger,
	}
}

// RecordVisit increments the counter
func (s *visitService) RecordVisit(ctx context.Context) (uint64, error) {
	start := time.Now()

	visits, err := s.repo.Increment(ctx, s.key)
	fields := s.fields(ctx, "increment", start)
	if err != nil {
		s.logger.WithFields(fields).WithError(err).Error("Failed to record visit")
		return 0, fmt.Errorf("failed to record visit: %w", err)
	}

	fields["count"] = visits
	s.logger.WithFields(fields).Info("Visit recorded")
	return visits, nil
}

// CurrentVisits reads the counter
func (s *visitService) CurrentVisits(ctx context.Context) (uint64, error) {
	start := time.Now()

	visits, err := s.repo.Get(ctx, s.key)
	fields := s.fields(ctx, "read", start)
	if err != nil {
		s.logger.WithFields(fields).WithError(err).Error("Failed to read visit count")
		return 0, fmt.Errorf("failed to read visit count: %w", err)
	}

	fields["count"] = visits
	s.logger.WithFields(fields).Debug("Visit count read")
	return visits, nil
}

func (s *visitService) fields(ctx context.Context, op string, start time.Time) logrus.Fields {
	fields := logrus.Fields{
		"operation":  op,
		"store":      s.repo.Name(),
		"key":        s.key,
		"latency_ms": float64(time.Since(start).Nanoseconds()) / 1000000,
	}
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		fields["request_id"] = requestID
	}
	return fields
}
