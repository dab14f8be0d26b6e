// Package memory provides an in-process session store for single-node and
// development deployments.
package memory

import (
	"context"
	"maps"
	"time"

	"github.com/karlseguin/ccache/v3"

	"github.com/tl2/clientes-admin/internal/session"
)

const defaultMaxSessions = 10_000

// SessionStore keeps sessions in a bounded LRU cache. Sessions do not survive
// a restart.
type SessionStore struct {
	cache *ccache.Cache[map[string]string]
}

// NewSessionStore creates a store holding at most maxSessions entries.
func NewSessionStore(maxSessions int64) *SessionStore {
	if maxSessions <= 0 {
		maxSessions = defaultMaxSessions
	}
	return &SessionStore{
		cache: ccache.New(ccache.Configure[map[string]string]().MaxSize(maxSessions)),
	}
}

func (s *SessionStore) Load(_ context.Context, id string) (map[string]string, error) {
	item := s.cache.Get(id)
	if item == nil || item.Expired() {
		return nil, session.ErrSessionNotFound
	}
	return maps.Clone(item.Value()), nil
}

func (s *SessionStore) Save(_ context.Context, id string, values map[string]string, ttl time.Duration) error {
	s.cache.Set(id, maps.Clone(values), ttl)
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}

// Ping always succeeds; the cache lives in this process.
func (s *SessionStore) Ping(context.Context) error { return nil }

// Close stops the cache's background worker.
func (s *SessionStore) Close() {
	s.cache.Stop()
}

var _ session.Store = (*SessionStore)(nil)
