package store

import (
	"context"
	"sync"
)

// Memory is a process-local Store. It is safe for concurrent use and mainly
// serves tests and single-process deployments.
type Memory struct {
	mu    sync.RWMutex
	snaps map[string]Snapshot
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{snaps: make(map[string]Snapshot)}
}

// GetState returns the snapshot for resourceKey, if any.
func (m *Memory) GetState(_ context.Context, resourceKey string) (Snapshot, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap, ok := m.snaps[resourceKey]
	return snap, ok, nil
}

// SetState stores the snapshot for resourceKey.
func (m *Memory) SetState(_ context.Context, resourceKey string, snap Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[resourceKey] = snap
	return nil
}
