//go:build integration

// Package containers starts the backing services integration suites need.
// One Redis instance is shared by every suite in a test binary.
package containers

import (
	"sync"
	"testing"

	"github.com/testcontainers/testcontainers-go"
)

// Manager hands out lazily started shared containers.
type Manager struct {
	mu    sync.Mutex
	redis *RedisContainer
}

var manager = sync.OnceValue(func() *Manager { return &Manager{} })

// GetManager returns the process-wide manager.
func GetManager() *Manager {
	return manager()
}

// GetRedis returns the shared Redis container, starting it on first use.
// Suites are skipped when no container runtime is reachable.
func (m *Manager) GetRedis(t *testing.T) *RedisContainer {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.redis == nil {
		m.redis = NewRedisContainer(t)
	}
	return m.redis
}
