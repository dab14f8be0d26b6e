package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tl2/clientes-admin/internal/api/metrics"
	"github.com/tl2/clientes-admin/internal/core/domain"
	"github.com/tl2/clientes-admin/internal/session"
)

// Level is the access a protected action requires.
type Level int

const (
	LevelAuthenticated Level = iota
	LevelAdmin
)

// Decision is the outcome of evaluating a session against a Level.
type Decision int

const (
	Authorized Decision = iota
	Unauthenticated
	Unauthorized
)

func (d Decision) String() string {
	switch d {
	case Authorized:
		return "authorized"
	case Unauthenticated:
		return "unauthenticated"
	case Unauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

const (
	DefaultLoginPath = "/login"
	DefaultListPath  = "/clientes/index"

	// MsgForbidden is shown on the listing after an admin-only action is refused.
	MsgForbidden = "No tienes permisos para realizar esta acción."
)

// Evaluate checks authentication first, then role. It does not modify s.
func Evaluate(s *session.Session, level Level) Decision {
	if s == nil || !s.IsAuthenticated() {
		return Unauthenticated
	}
	if level == LevelAdmin && s.Rol() != domain.RoleAdmin.String() {
		return Unauthorized
	}
	return Authorized
}

// GuardConfig holds the redirect targets used on rejection.
type GuardConfig struct {
	LoginPath string
	ListPath  string
	Log       zerolog.Logger
}

// Guard rejects requests whose session does not reach level. Unauthenticated
// callers go to the login form; authenticated callers lacking the role get a
// flash notice and go back to the listing. The wrapped handler never runs on
// rejection.
func Guard(level Level, cfg GuardConfig) echo.MiddlewareFunc {
	if cfg.LoginPath == "" {
		cfg.LoginPath = DefaultLoginPath
	}
	if cfg.ListPath == "" {
		cfg.ListPath = DefaultListPath
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := session.From(c)

			switch d := Evaluate(s, level); d {
			case Authorized:
				return next(c)
			case Unauthenticated:
				metrics.GuardRejectionsTotal.WithLabelValues(d.String()).Inc()
				cfg.Log.Debug().Str("path", c.Request().URL.Path).Msg("unauthenticated request redirected to login")
				return c.Redirect(http.StatusSeeOther, cfg.LoginPath)
			default:
				metrics.GuardRejectionsTotal.WithLabelValues(d.String()).Inc()
				cfg.Log.Warn().
					Str("username", s.Username()).
					Str("rol", s.Rol()).
					Str("path", c.Request().URL.Path).
					Msg("admin action refused")
				s.AddFlash(MsgForbidden)
				return c.Redirect(http.StatusSeeOther, cfg.ListPath)
			}
		}
	}
}
