package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/tl2/clientes-admin/internal/api/view"
)

// requestID returns the correlation id assigned by the RequestID middleware.
func requestID(c echo.Context) string {
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}

// csrfToken returns the anti-forgery token the CSRF middleware generated for
// this request, to be echoed back in the form.
func csrfToken(c echo.Context) string {
	token, _ := c.Get(echomiddleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}

// pathID parses the :id route parameter. A non-numeric or non-positive id
// cannot name a stored cliente.
func pathID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// RenderError renders the generic error page carrying the correlation id.
func RenderError(c echo.Context, status int) error {
	return c.Render(status, view.PageError, ErrorViewModel{RequestID: requestID(c)})
}

// RenderNotFound renders the 404 page.
func RenderNotFound(c echo.Context) error {
	return c.Render(http.StatusNotFound, view.PageNotFound, ErrorViewModel{RequestID: requestID(c)})
}
