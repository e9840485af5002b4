package storage

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	value   string
	expires time.Time
}

func (e memEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// MemoryBackend keeps everything in process memory. State is lost on
// restart; it is meant for development and tests.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string]map[string]memEntry
	now  func() time.Time
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: make(map[string]map[string]memEntry), now: time.Now}
}

// NewMemoryStore is a single-namespace in-memory Store.
func NewMemoryStore() Store {
	return Scoped(NewMemoryBackend(), "default")
}

// SetClock replaces the time source used for expiry.
func (m *MemoryBackend) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MemoryBackend) Get(_ context.Context, namespace, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.data[namespace][key]
	if !ok || e.expired(m.now()) {
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *MemoryBackend) Set(_ context.Context, namespace, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns, ok := m.data[namespace]
	if !ok {
		ns = make(map[string]memEntry)
		m.data[namespace] = ns
	}
	ns[key] = memEntry{value: value, expires: expiresAt(m.now(), ttl)}
	return nil
}

func (m *MemoryBackend) Delete(_ context.Context, namespace string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ns := m.data[namespace]
	for _, k := range keys {
		delete(ns, k)
	}
	if len(ns) == 0 {
		delete(m.data, namespace)
	}
	return nil
}

func (m *MemoryBackend) PurgeExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	var n int64
	for nsName, ns := range m.data {
		for k, e := range ns {
			if e.expired(now) {
				delete(ns, k)
				n++
			}
		}
		if len(ns) == 0 {
			delete(m.data, nsName)
		}
	}
	return n, nil
}

func (m *MemoryBackend) Ping(context.Context) error { return nil }

func (m *MemoryBackend) Close() error { return nil }
