package server

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"visit-counter-api/internal/config"
	"visit-counter-api/pkg/lambda"
)

func testConfig(storeType string) *config.Config {
	return &config.Config{
		Environment: "test",
		Port:        "8081",
		LogLevel:    "warn",
		Store: config.StoreConfig{
			Type:        storeType,
			CounterKey:  "total_visits",
			MaxAttempts: 1,
		},
		RateLimit: config.RateLimitConfig{Burst: 1},
	}
}

// TestNewContainer verifies that the container can be created successfully
func TestNewContainer(t *testing.T) {
	container, err := NewContainer(context.Background(), testConfig("memory"))
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	if container.Counter == nil {
		t.Error("Counter is nil")
	}
	if container.VisitService == nil {
		t.Error("VisitService is nil")
	}
	if container.VisitHandler == nil {
		t.Error("VisitHandler is nil")
	}
	if container.Counter.Name() != "memory" {
		t.Errorf("Expected memory store, got %s", container.Counter.Name())
	}

	if err := container.Close(); err != nil {
		t.Errorf("Failed to close container: %v", err)
	}
}

func TestNewContainer_SQLite(t *testing.T) {
	cfg := testConfig("sqlite")
	cfg.Store.SQLite.Path = filepath.Join(t.TempDir(), "visits.db")

	container, err := NewContainer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	defer container.Close()

	resp := container.VisitHandler.Handle(context.Background(), &lambda.Request{Method: "POST"})
	if resp.StatusCode != 200 || string(resp.Body) != `{"count":"1"}` {
		t.Errorf("Unexpected response: %d %s", resp.StatusCode, resp.Body)
	}
}

func TestNewContainer_DynamoDB(t *testing.T) {
	cfg := testConfig("dynamodb")
	cfg.Store.DynamoDB.Table = "ktad-portfolio-table"
	cfg.Store.DynamoDB.Region = "us-east-1"
	cfg.Store.DynamoDB.Endpoint = "http://localhost:8000"
	cfg.Store.DynamoDB.AccessKeyID = "local"
	cfg.Store.DynamoDB.SecretAccessKey = "local"

	// Building the client does not contact the endpoint.
	container, err := NewContainer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	defer container.Close()

	if container.Counter.Name() != "dynamodb" {
		t.Errorf("Expected dynamodb store, got %s", container.Counter.Name())
	}
}

func TestNewCounterRepository_Unsupported(t *testing.T) {
	_, err := NewCounterRepository(context.Background(), testConfig("postgres"), nil)
	if err == nil {
		t.Fatal("Expected error for unsupported store type")
	}
}

func TestConnectionManager(t *testing.T) {
	loads := 0
	cm := NewConnectionManager(func() (*config.Config, error) {
		loads++
		return testConfig("memory"), nil
	})

	if cm.IsInitialized() {
		t.Error("Manager should start uninitialized")
	}

	first, err := cm.GetContainer(context.Background())
	if err != nil {
		t.Fatalf("GetContainer failed: %v", err)
	}
	second, err := cm.GetContainer(context.Background())
	if err != nil {
		t.Fatalf("GetContainer failed: %v", err)
	}

	if first != second {
		t.Error("Expected the same container across invocations")
	}
	if loads != 1 {
		t.Errorf("Expected configuration to load once, loaded %d times", loads)
	}

	if err := cm.Cleanup(); err != nil {
		t.Errorf("Cleanup failed: %v", err)
	}
	if cm.IsInitialized() {
		t.Error("Manager should be uninitialized after cleanup")
	}
}

func TestConnectionManager_RetriesFailedInit(t *testing.T) {
	fail := true
	cm := NewConnectionManager(func() (*config.Config, error) {
		if fail {
			return nil, errors.New("missing configuration")
		}
		return testConfig("memory"), nil
	})

	if _, err := cm.GetContainer(context.Background()); err == nil {
		t.Fatal("Expected initialization error")
	}

	fail = false
	if _, err := cm.GetContainer(context.Background()); err != nil {
		t.Fatalf("Expected second initialization to succeed: %v", err)
	}
}
