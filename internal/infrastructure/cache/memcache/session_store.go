// Package memcache stores sessions in memcached.
package memcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/tl2/clientes-admin/internal/session"
)

const keyPrefix = "session:"

// maxRelativeExpiration is the largest expiration memcached reads as a number
// of seconds; anything above it is taken as an absolute Unix time.
const maxRelativeExpiration = 30 * 24 * time.Hour

// SessionStore keeps session values as JSON items with memcached expiration.
type SessionStore struct {
	client *memcache.Client
}

// Connect builds a client for the given servers and verifies connectivity.
func Connect(servers ...string) (*memcache.Client, error) {
	if len(servers) == 0 {
		return nil, errors.New("memcache: no servers configured")
	}
	client := memcache.New(servers...)
	client.Timeout = 2 * time.Second
	if err := client.Ping(); err != nil {
		return nil, fmt.Errorf("memcache ping: %w", err)
	}
	return client, nil
}

func NewSessionStore(client *memcache.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Load ignores ctx; the memcache client has no context support.
func (s *SessionStore) Load(_ context.Context, id string) (map[string]string, error) {
	item, err := s.client.Get(keyPrefix + id)
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return nil, session.ErrSessionNotFound
		}
		return nil, fmt.Errorf("memcache session load: %w", err)
	}

	values := make(map[string]string)
	if err := json.Unmarshal(item.Value, &values); err != nil {
		return nil, fmt.Errorf("memcache session decode: %w", err)
	}
	return values, nil
}

func (s *SessionStore) Save(_ context.Context, id string, values map[string]string, ttl time.Duration) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("memcache session encode: %w", err)
	}
	err = s.client.Set(&memcache.Item{
		Key:        keyPrefix + id,
		Value:      raw,
		Expiration: expiration(ttl, time.Now()),
	})
	if err != nil {
		return fmt.Errorf("memcache session save: %w", err)
	}
	return nil
}

// expiration converts ttl to memcached's Expiration field. Zero means the
// item never expires.
func expiration(ttl time.Duration, now time.Time) int32 {
	if ttl <= 0 {
		return 0
	}
	if ttl > maxRelativeExpiration {
		return int32(now.Add(ttl).Unix())
	}
	return int32(ttl / time.Second)
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	if err := s.client.Delete(keyPrefix + id); err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return fmt.Errorf("memcache session delete: %w", err)
	}
	return nil
}

func (s *SessionStore) Ping(context.Context) error {
	return s.client.Ping()
}

var _ session.Store = (*SessionStore)(nil)
