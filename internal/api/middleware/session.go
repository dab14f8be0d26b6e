package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tl2/clientes-admin/internal/session"
)

// SessionManager is the part of session.Manager the middleware needs.
type SessionManager interface {
	Load(ctx context.Context, r *http.Request) *session.Session
	Save(ctx context.Context, w http.ResponseWriter, s *session.Session) error
}

// Sessions loads the caller's session into the context and persists it
// before the response headers go out if the handler changed it.
func Sessions(m SessionManager, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			s := m.Load(req.Context(), req)
			c.Set(session.ContextKey, s)

			c.Response().Before(func() {
				if !s.Dirty() {
					return
				}
				if err := m.Save(req.Context(), c.Response().Writer, s); err != nil {
					log.Error().Err(err).
						Str("path", c.Path()).
						Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
						Msg("session save failed")
				}
			})

			return next(c)
		}
	}
}
