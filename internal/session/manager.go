package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultCookieName = "clientes_session"
	defaultTTL        = 30 * time.Minute
)

// Options configures the session cookie and lifetime.
type Options struct {
	CookieName string
	TTL        time.Duration
	// Secure marks the cookie HTTPS-only.
	Secure bool
}

// Manager ties a Store to the browser through a signed cookie.
type Manager struct {
	store  Store
	codec  *Codec
	opts   Options
	log    zerolog.Logger
	nextID func() string
}

func NewManager(store Store, codec *Codec, opts Options, log zerolog.Logger) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = defaultCookieName
	}
	if opts.TTL <= 0 {
		opts.TTL = defaultTTL
	}
	return &Manager{
		store:  store,
		codec:  codec,
		opts:   opts,
		log:    log,
		nextID: uuid.NewString,
	}
}

// Load returns the session referenced by the request cookie. A missing,
// forged or expired cookie, or a store miss, yields a fresh empty session.
// Store failures are logged and also degrade to an empty session.
func (m *Manager) Load(ctx context.Context, r *http.Request) *Session {
	cookie, err := r.Cookie(m.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return New(m.nextID())
	}

	id, err := m.codec.Decode(cookie.Value)
	if err != nil {
		m.log.Debug().Err(err).Msg("discarding session cookie")
		return New(m.nextID())
	}

	values, err := m.store.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			m.log.Error().Err(err).Str("session_id", id).Msg("session load failed")
		}
		return New(m.nextID())
	}
	return newFromValues(id, values)
}

// Save persists s and writes the session cookie. It must run before the
// response headers are committed.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, s *Session) error {
	if err := m.store.Save(ctx, s.id, s.values, m.opts.TTL); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	token, err := m.codec.Encode(s.id, m.opts.TTL)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	http.SetCookie(w, m.cookie(token, int(m.opts.TTL.Seconds())))
	s.markClean()
	return nil
}

// Renew moves s to a new id, dropping the old store entry, so a session id
// observed before login cannot be replayed after it.
func (m *Manager) Renew(ctx context.Context, s *Session) error {
	old := s.id
	if err := m.store.Delete(ctx, old); err != nil {
		return fmt.Errorf("renew session: %w", err)
	}
	s.id = m.nextID()
	s.dirty = true
	return nil
}

// Destroy empties s, expires the cookie and removes the stored entry. The
// in-memory session and the cookie are cleared even when the store fails.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, s *Session) error {
	s.Clear()
	s.markClean()
	http.SetCookie(w, m.cookie("", -1))

	if err := m.store.Delete(ctx, s.id); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
