// Package session models the per-browser state the web application relies on
// for authentication: an explicit key/value object loaded at the start of each
// request and persisted through a pluggable Store.
package session

import "maps"

// Keys written by the login flow and read by the guards.
const (
	KeyIsAuthenticated = "IsAuthenticated"
	KeyUser            = "User"
	KeyRol             = "Rol"
	KeyErrorMessage    = "ErrorMessage"
)

// ContextKey is the echo context key under which the request's Session lives.
const ContextKey = "session"

const authenticatedValue = "True"

// Session is the state attached to one browser. It is not safe for concurrent
// use; each request owns its own copy.
type Session struct {
	id     string
	values map[string]string
	dirty  bool
}

// New returns an empty session with the given id.
func New(id string) *Session {
	return &Session{id: id, values: make(map[string]string)}
}

func newFromValues(id string, values map[string]string) *Session {
	s := New(id)
	maps.Copy(s.values, values)
	return s
}

func (s *Session) ID() string { return s.id }

// Dirty reports whether the session changed since it was loaded or saved.
func (s *Session) Dirty() bool { return s.dirty }

func (s *Session) Get(key string) string { return s.values[key] }

func (s *Session) Set(key, value string) {
	if cur, ok := s.values[key]; ok && cur == value {
		return
	}
	s.values[key] = value
	s.dirty = true
}

func (s *Session) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	s.dirty = true
}

// Clear drops every key.
func (s *Session) Clear() {
	if len(s.values) == 0 {
		return
	}
	s.values = make(map[string]string)
	s.dirty = true
}

// Len returns the number of stored keys.
func (s *Session) Len() int { return len(s.values) }

// Values returns a copy of the stored keys.
func (s *Session) Values() map[string]string {
	return maps.Clone(s.values)
}

// SetAuthenticated records a successful login.
func (s *Session) SetAuthenticated(username, rol string) {
	s.Set(KeyIsAuthenticated, authenticatedValue)
	s.Set(KeyUser, username)
	s.Set(KeyRol, rol)
}

// IsAuthenticated reports whether a login completed in this session.
func (s *Session) IsAuthenticated() bool {
	return s.Get(KeyIsAuthenticated) == authenticatedValue && s.Get(KeyUser) != ""
}

func (s *Session) Username() string { return s.Get(KeyUser) }

func (s *Session) Rol() string { return s.Get(KeyRol) }

// AddFlash stores a one-shot error notice for the next rendered page.
func (s *Session) AddFlash(msg string) { s.Set(KeyErrorMessage, msg) }

// Flash returns the pending error notice and removes it.
func (s *Session) Flash() string {
	msg := s.Get(KeyErrorMessage)
	s.Delete(KeyErrorMessage)
	return msg
}

func (s *Session) markClean() { s.dirty = false }

// Getter is satisfied by echo.Context.
type Getter interface {
	Get(key string) any
}

// From returns the session stored under ContextKey, or an empty anonymous
// session when none was attached.
func From(c Getter) *Session {
	if s, ok := c.Get(ContextKey).(*Session); ok && s != nil {
		return s
	}
	return New("")
}
