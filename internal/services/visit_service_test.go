package services

import (
	"context"
	"errors"
	"testing"

	"visit-counter-api/internal/repositories"
	"visit-counter-api/internal/repositories/memory"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// failingRepo returns the same error for every call
type failingRepo struct {
	err error
}

func (f *failingRepo) Get(ctx context.Context, key string) (uint64, error) {
	return 0, repositories.NewStoreError("fake", "Get", key, f.err)
}

func (f *failingRepo) Increment(ctx context.Context, key string) (uint64, error) {
	return 0, repositories.NewStoreError("fake", "Increment", key, f.err)
}

func (f *failingRepo) Name() string { return "fake" }

func (f *failingRepo) Close() error { return nil }

func TestVisitService_RecordAndRead(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	repo := memory.NewCounterRepository()
	service := NewVisitService(repo, "total_visits", logger)

	visits, err := service.CurrentVisits(ctx)
	if err != nil {
		t.Fatalf("CurrentVisits failed: %v", err)
	}
	if visits != 0 {
		t.Errorf("Expected 0 visits, got %d", visits)
	}
	if repo.Exists("total_visits") {
		t.Error("CurrentVisits must not create the record")
	}

	for want := uint64(1); want <= 3; want++ {
		visits, err := service.RecordVisit(ctx)
		if err != nil {
			t.Fatalf("RecordVisit failed: %v", err)
		}
		if visits != want {
			t.Errorf("Expected %d visits, got %d", want, visits)
		}
	}

	visits, err = service.CurrentVisits(ctx)
	if err != nil {
		t.Fatalf("CurrentVisits failed: %v", err)
	}
	if visits != 3 {
		t.Errorf("Expected 3 visits, got %d", visits)
	}
}

func TestVisitService_LogsRequestID(t *testing.T) {
	logger, hook := test.NewNullLogger()
	service := NewVisitService(memory.NewCounterRepository(), "total_visits", logger)

	ctx := WithRequestID(context.Background(), "req-123")
	if _, err := service.RecordVisit(ctx); err != nil {
		t.Fatalf("RecordVisit failed: %v", err)
	}

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("Expected a log entry")
	}
	if entry.Data["request_id"] != "req-123" {
		t.Errorf("Expected request_id req-123, got %v", entry.Data["request_id"])
	}
	if entry.Data["count"] != uint64(1) {
		t.Errorf("Expected count 1, got %v", entry.Data["count"])
	}
	if entry.Data["store"] != "memory" {
		t.Errorf("Expected store memory, got %v", entry.Data["store"])
	}
}

func TestVisitService_StoreFailure(t *testing.T) {
	logger, hook := test.NewNullLogger()
	cause := errors.New("ThrottlingException: rate exceeded")
	service := NewVisitService(&failingRepo{err: cause}, "total_visits", logger)

	_, err := service.RecordVisit(context.Background())
	if err == nil {
		t.Fatal("RecordVisit should have failed")
	}
	if !errors.Is(err, cause) {
		t.Errorf("Expected error to wrap cause, got %v", err)
	}
	if !repositories.IsStoreError(err) {
		t.Error("Expected a StoreError")
	}
	if hook.LastEntry() == nil || hook.LastEntry().Level != logrus.ErrorLevel {
		t.Error("Expected the failure to be logged at error level")
	}

	if _, err := service.CurrentVisits(context.Background()); !errors.Is(err, cause) {
		t.Errorf("Expected CurrentVisits to wrap cause, got %v", err)
	}
}
