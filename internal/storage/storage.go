// Package storage provides the per-browser key/value storage that backs the
// user registry and the active session.
//
// A Store is always scoped to one browser. The cookie adapter is scoped by
// construction (it reads the request and writes the response). Server-side
// backends hold every browser's data and are narrowed to one browser with
// Scoped, keyed by the device id cookie (see DeviceResolver).
//
// Expiry is enforced here, not by callers: an expired key reads as absent.
package storage

import (
	"context"
	"time"
)

// Store is the storage contract used by the session layer.
type Store interface {
	// Get returns the value and true, or "" and false when the key is
	// missing or expired.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set writes value under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes the keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

// Backend is server-side storage shared by many browsers, each addressed
// by a namespace.
type Backend interface {
	Get(ctx context.Context, namespace, key string) (string, bool, error)
	Set(ctx context.Context, namespace, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, namespace string, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

// Purger is implemented by backends that keep expired rows until swept.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type scoped struct {
	b  Backend
	ns string
}

// Scoped narrows a Backend to a single namespace.
func Scoped(b Backend, namespace string) Store {
	return &scoped{b: b, ns: namespace}
}

func (s *scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.b.Get(ctx, s.ns, key)
}

func (s *scoped) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.b.Set(ctx, s.ns, key, value, ttl)
}

func (s *scoped) Delete(ctx context.Context, keys ...string) error {
	return s.b.Delete(ctx, s.ns, keys...)
}

func expiresAt(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}
