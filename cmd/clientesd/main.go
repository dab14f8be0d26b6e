// Command clientesd serves the clientes administration site.
//
//	@title			Clientes Admin
//	@version		1.0
//	@description	Server-rendered administration site for customers, with session login and Admin/Regular roles.
//	@BasePath		/
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tl2/clientes-admin/internal/api"
	"github.com/tl2/clientes-admin/internal/api/handler"
	"github.com/tl2/clientes-admin/internal/api/view"
	"github.com/tl2/clientes-admin/internal/core/service"
	"github.com/tl2/clientes-admin/internal/pkg/config"
	"github.com/tl2/clientes-admin/internal/session"
	"github.com/tl2/clientes-admin/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "clientesd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "clientesd",
	})

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.close(context.Background())

	sessions, err := openSessionStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer sessions.close(context.Background())

	renderer, err := view.NewRenderer()
	if err != nil {
		return err
	}

	manager := session.NewManager(
		sessions.store,
		session.NewCodec(cfg.Session.Secret),
		session.Options{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.Session.Secure,
		},
		logger.Component("session"),
	)

	e := api.NewRouter(api.Dependencies{
		Log:      logger.Component("http"),
		Renderer: renderer,
		Sessions: manager,
		Auth:     service.NewAuthService(store.users, logger.Component("auth")),
		Clientes: store.clientes,
		Health: map[string]handler.Pinger{
			cfg.StorageDriver:   store.pinger,
			cfg.Session.Backend: sessions.pinger,
		},
		SecureCookies: cfg.Session.Secure,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("storage", cfg.StorageDriver).
			Str("sessions", cfg.Session.Backend).
			Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	log.Info().Msg("http server stopped")
	return nil
}
