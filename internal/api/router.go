package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/tl2/clientes-admin/docs"
	"github.com/tl2/clientes-admin/internal/api/handler"
	"github.com/tl2/clientes-admin/internal/api/middleware"
	"github.com/tl2/clientes-admin/internal/core/ports"
)

// SessionManager is what the router needs from session.Manager.
type SessionManager interface {
	middleware.SessionManager
	handler.SessionLifecycle
}

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Log      zerolog.Logger
	Renderer echo.Renderer
	Sessions SessionManager
	Auth     ports.AuthService
	Clientes ports.ClienteRepository
	// Health is keyed by the dependency name reported by /health/ready.
	Health map[string]handler.Pinger
	// SecureCookies marks the CSRF cookie Secure.
	SecureCookies bool

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = deps.Renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "clientes",
		Registerer: deps.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		TokenLookup:    "form:_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   deps.SecureCookies,
		CookieSameSite: http.SameSiteLaxMode,
	}))
	e.Use(middleware.Sessions(deps.Sessions, deps.Log))

	// --- Dependencies ---
	loginHandler := handler.NewLoginHandler(deps.Auth, deps.Sessions, deps.Log)
	clienteHandler := handler.NewClienteHandler(deps.Clientes, deps.Log)
	healthHandler := handler.NewHealthHandler(deps.Health)

	guardCfg := middleware.GuardConfig{Log: deps.Log}
	authenticated := middleware.Guard(middleware.LevelAuthenticated, guardCfg)
	admin := middleware.Guard(middleware.LevelAdmin, guardCfg)

	// --- Login routes ---
	e.GET("/login", loginHandler.ShowLoginForm)
	e.POST("/login", loginHandler.Login)
	e.GET("/login/logout", loginHandler.Logout)

	// --- Cliente routes ---
	e.GET("/clientes", clienteHandler.List, authenticated)
	e.GET("/clientes/error", clienteHandler.Error)

	clientes := e.Group("/clientes")
	clientes.GET("/index", clienteHandler.Index, authenticated)
	clientes.GET("/crear", clienteHandler.CreateForm, admin)
	clientes.POST("/crear", clienteHandler.Create, admin)
	clientes.GET("/modificar/:id", clienteHandler.EditForm, admin)
	clientes.POST("/modificar/:id", clienteHandler.Update, admin)
	clientes.GET("/eliminar/:id", clienteHandler.DeleteConfirm, admin)
	clientes.POST("/eliminarConfirmado/:id", clienteHandler.DeleteConfirmed, admin)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: deps.Gatherer,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one zerolog event per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
