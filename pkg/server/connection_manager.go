package server

import (
	"context"
	"sync"

	"visit-counter-api/internal/config"
)

// ConnectionManager builds the container once per Lambda execution
// environment and hands the same instance to every invocation.
type ConnectionManager struct {
	mu        sync.Mutex
	container *Container
	loadCfg   func() (*config.Config, error)
}

// NewConnectionManager creates a manager that loads configuration with
// loadCfg on first use. A nil loadCfg uses config.GetOptimizedConfig.
func NewConnectionManager(loadCfg func() (*config.Config, error)) *ConnectionManager {
	if loadCfg == nil {
		loadCfg = config.GetOptimizedConfig
	}
	return &ConnectionManager{loadCfg: loadCfg}
}

// GetContainer returns the container, initializing it on first use. A
// failed initialization is retried on the next call.
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*Container, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container != nil {
		return cm.container, nil
	}

	cfg, err := cm.loadCfg()
	if err != nil {
		return nil, err
	}

	container, err := NewContainer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cm.container = container
	return container, nil
}

// IsInitialized reports whether the container has been built
func (cm *ConnectionManager) IsInitialized() bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.container != nil
}

// Cleanup closes the container's resources
func (cm *ConnectionManager) Cleanup() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.container == nil {
		return nil
	}

	err := cm.container.Close()
	cm.container = nil
	return err
}
