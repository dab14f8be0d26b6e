package session

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Store persists session values by id. Expiry is owned by the store: entries
// older than the ttl passed to Save must stop being returned by Load.
type Store interface {
	// Load returns ErrSessionNotFound when id is unknown or expired.
	Load(ctx context.Context, id string) (map[string]string, error)
	Save(ctx context.Context, id string, values map[string]string, ttl time.Duration) error
	// Delete removes id. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}
