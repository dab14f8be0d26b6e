package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tl2/clientes-admin/internal/api/metrics"
	"github.com/tl2/clientes-admin/internal/api/middleware"
	"github.com/tl2/clientes-admin/internal/api/view"
	"github.com/tl2/clientes-admin/internal/core/domain"
	"github.com/tl2/clientes-admin/internal/core/ports"
	"github.com/tl2/clientes-admin/internal/session"
)

// Messages shown on the login form.
const (
	MsgMissingCredentials = "Por favor ingrese su nombre de usuario y contraseña."
	MsgInvalidCredentials = "Credenciales Inválidas."
	MsgUnexpected         = "Ocurrió un error inesperado. Por favor, intente nuevamente más tarde."
)

// SessionLifecycle is the part of session.Manager the login flow drives
// directly, outside the Sessions middleware.
type SessionLifecycle interface {
	Save(ctx context.Context, w http.ResponseWriter, s *session.Session) error
	Renew(ctx context.Context, s *session.Session) error
	Destroy(ctx context.Context, w http.ResponseWriter, s *session.Session) error
}

type LoginHandler struct {
	auth     ports.AuthService
	sessions SessionLifecycle
	log      zerolog.Logger
}

func NewLoginHandler(auth ports.AuthService, sessions SessionLifecycle, log zerolog.Logger) *LoginHandler {
	return &LoginHandler{auth: auth, sessions: sessions, log: log}
}

// ShowLoginForm renders the login page.
//
// @Summary      Login form
// @Tags         auth
// @Produce      html
// @Success      200
// @Router       /login [get]
func (h *LoginHandler) ShowLoginForm(c echo.Context) error {
	s := session.From(c)
	return c.Render(http.StatusOK, view.PageLogin, LoginViewModel{
		IsAuthenticated: s.IsAuthenticated(),
		CSRF:            csrfToken(c),
	})
}

// Login checks the submitted credentials and, on a match, marks the session
// as authenticated and sends the user to the customer listing.
//
// @Summary      Login
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        username  formData  string  true  "User name"
// @Param        password  formData  string  true  "Password"
// @Success      303
// @Success      200  {string}  string  "form re-rendered with an error message"
// @Router       /login [post]
func (h *LoginHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		return h.loginFailed(c, form, "missing_fields", MsgMissingCredentials)
	}

	ctx := c.Request().Context()
	user, err := h.auth.Login(ctx, form.Username, form.Password)
	switch {
	case errors.Is(err, domain.ErrMissingCredentials):
		return h.loginFailed(c, form, "missing_fields", MsgMissingCredentials)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return h.loginFailed(c, form, "invalid_credentials", MsgInvalidCredentials)
	case err != nil:
		// Already logged by the auth service.
		return h.loginFailed(c, form, "error", MsgUnexpected)
	}

	s := session.From(c)
	if err := h.sessions.Renew(ctx, s); err != nil {
		h.log.Error().Err(err).Str("username", user.Username).Msg("session rotation failed on login")
		return h.loginFailed(c, form, "error", MsgUnexpected)
	}
	s.SetAuthenticated(user.Username, user.Rol.String())
	if err := h.sessions.Save(ctx, c.Response().Writer, s); err != nil {
		h.log.Error().Err(err).Str("username", user.Username).Msg("session save failed on login")
		s.Clear()
		return h.loginFailed(c, form, "error", MsgUnexpected)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return c.Redirect(http.StatusSeeOther, middleware.DefaultListPath)
}

func (h *LoginHandler) loginFailed(c echo.Context, form loginForm, result, msg string) error {
	metrics.LoginAttemptsTotal.WithLabelValues(result).Inc()
	return c.Render(http.StatusOK, view.PageLogin, LoginViewModel{
		Username:        form.Username,
		IsAuthenticated: session.From(c).IsAuthenticated(),
		ErrorMessage:    msg,
		CSRF:            csrfToken(c),
	})
}

// Logout destroys the session and returns to the login page.
//
// @Summary      Logout
// @Tags         auth
// @Produce      html
// @Success      303
// @Failure      500
// @Router       /login/logout [get]
func (h *LoginHandler) Logout(c echo.Context) error {
	s := session.From(c)
	username := s.Username()

	if err := h.sessions.Destroy(c.Request().Context(), c.Response().Writer, s); err != nil {
		metrics.LogoutsTotal.WithLabelValues("error").Inc()
		h.log.Error().Err(err).
			Str("username", username).
			Str("request_id", requestID(c)).
			Msg("logout failed")
		return RenderError(c, http.StatusInternalServerError)
	}

	metrics.LogoutsTotal.WithLabelValues("success").Inc()
	if username != "" {
		h.log.Info().Str("username", username).Msg("user logged out")
	}
	return c.Redirect(http.StatusSeeOther, middleware.DefaultLoginPath)
}
