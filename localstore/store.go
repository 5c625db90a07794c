// Package localstore is the client-side persistent key-value store. It stands
// in for the browser storage the portal UI would normally own: a durable
// store survives process restarts, an ephemeral store does not.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// ErrNotFound is returned when a key has no value.
var ErrNotFound = errors.New("localstore: key not found")

// Fixed key names for persisted local state.
const (
	KeySessionUserID   = "cla-user-id"
	KeyLastSubPage     = "cla-last-subpage"
	KeyLastCaseID      = "cla-last-case-id"
	KeyEmergencyList   = "cla-emergency-alerts"
	KeySupportInbox    = "cla-support-messages"
	KeySiteContent     = "cla-site-content"
	KeyThemePreference = "cla-theme"
)

// Store is the minimal contract the orchestrator needs from persistent
// storage.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// GetJSON reads key and unmarshals it into out. Missing keys return
// ErrNotFound with out untouched.
func GetJSON(ctx context.Context, s Store, key string, out interface{}) error {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), out)
}

// SetJSON marshals v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, string(b))
}

// MemoryStore is the ephemeral implementation, used for non-remembered
// sessions and in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

// Set implements Store.
func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
