package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tl2/clientes-admin/internal/api/handler"
	"github.com/tl2/clientes-admin/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Renders the not-found page for unknown routes and missing clientes.
//   - Keeps the status of Echo's own errors (bad form, CSRF rejection) on the error page.
//   - Logs unexpected errors internally and answers with a generic 500 page.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := resolveStatus(err, log, c)

		var renderErr error
		if code == http.StatusNotFound {
			renderErr = handler.RenderNotFound(c)
		} else {
			renderErr = handler.RenderError(c, code)
		}
		if renderErr != nil {
			log.Error().Err(renderErr).Str("path", c.Request().URL.Path).Msg("error page render failed")
			_ = c.NoContent(code)
		}
	}
}

func resolveStatus(err error, log zerolog.Logger, c echo.Context) int {
	// Echo's own errors (bind failures, CSRF, 404/405 from the router).
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		log.Debug().
			Int("status", he.Code).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Interface("message", he.Message).
			Msg("request rejected")
		return he.Code
	}

	if errors.Is(err, domain.ErrClienteNotFound) {
		return http.StatusNotFound
	}

	// Unexpected error: log the real cause, return a generic page.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError
}
