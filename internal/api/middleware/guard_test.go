package middleware

import (
	"maps"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tl2/clientes-admin/internal/session"
)

func sessionWith(authenticated bool, rol string) *session.Session {
	s := session.New("sid")
	if authenticated {
		s.SetAuthenticated("alice", rol)
	}
	return s
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name  string
		sess  *session.Session
		level Level
		want  Decision
	}{
		{"nil session", nil, LevelAuthenticated, Unauthenticated},
		{"anonymous reader", sessionWith(false, ""), LevelAuthenticated, Unauthenticated},
		{"anonymous admin action", sessionWith(false, ""), LevelAdmin, Unauthenticated},
		{"regular reader", sessionWith(true, "Regular"), LevelAuthenticated, Authorized},
		{"regular admin action", sessionWith(true, "Regular"), LevelAdmin, Unauthorized},
		{"admin reader", sessionWith(true, "Admin"), LevelAuthenticated, Authorized},
		{"admin admin action", sessionWith(true, "Admin"), LevelAdmin, Authorized},
		{"role is case sensitive", sessionWith(true, "admin"), LevelAdmin, Unauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Evaluate(tc.sess, tc.level); got != tc.want {
				t.Fatalf("Evaluate = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestEvaluate_DoesNotMutate(t *testing.T) {
	for _, level := range []Level{LevelAuthenticated, LevelAdmin} {
		s := sessionWith(true, "Regular")
		before := s.Values()
		dirtyBefore := s.Dirty()

		Evaluate(s, level)

		if !maps.Equal(s.Values(), before) {
			t.Fatalf("Evaluate changed session values: %v -> %v", before, s.Values())
		}
		if s.Dirty() != dirtyBefore {
			t.Fatalf("Evaluate changed the dirty flag")
		}
	}
}

func runGuard(t *testing.T, level Level, s *session.Session) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/clientes/eliminarConfirmado/5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if s != nil {
		c.Set(session.ContextKey, s)
	}

	called := false
	handler := Guard(level, GuardConfig{Log: zerolog.Nop()})(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

func TestGuard_UnauthenticatedRedirectsToLogin(t *testing.T) {
	rec, called := runGuard(t, LevelAdmin, nil)

	if called {
		t.Fatalf("next must not run")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected /login, got %q", loc)
	}
}

func TestGuard_RegularUserOnAdminActionGetsFlash(t *testing.T) {
	s := sessionWith(true, "Regular")
	rec, called := runGuard(t, LevelAdmin, s)

	if called {
		t.Fatalf("next must not run")
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/clientes/index" {
		t.Fatalf("expected /clientes/index, got %q", loc)
	}
	if got := s.Get(session.KeyErrorMessage); got != MsgForbidden {
		t.Fatalf("expected flash notice, got %q", got)
	}
}

func TestGuard_AuthorizedCallsNext(t *testing.T) {
	rec, called := runGuard(t, LevelAdmin, sessionWith(true, "Admin"))
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestGuard_RegularUserMayRead(t *testing.T) {
	_, called := runGuard(t, LevelAuthenticated, sessionWith(true, "Regular"))
	if !called {
		t.Fatalf("next not called")
	}
}
