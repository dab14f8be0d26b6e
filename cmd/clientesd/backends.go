package main

import (
	"context"
	"fmt"

	"github.com/tl2/clientes-admin/internal/api/handler"
	"github.com/tl2/clientes-admin/internal/core/ports"
	"github.com/tl2/clientes-admin/internal/infrastructure/cache/memcache"
	"github.com/tl2/clientes-admin/internal/infrastructure/cache/memory"
	mongostore "github.com/tl2/clientes-admin/internal/infrastructure/db/mongo"
	mysqlstore "github.com/tl2/clientes-admin/internal/infrastructure/db/mysql"
	redisstore "github.com/tl2/clientes-admin/internal/infrastructure/db/redis"
	"github.com/tl2/clientes-admin/internal/pkg/config"
	"github.com/tl2/clientes-admin/internal/session"
	"github.com/tl2/clientes-admin/pkg/logger"
)

// storage bundles the repositories of the configured STORAGE_DRIVER.
type storage struct {
	users    ports.UserRepository
	clientes ports.ClienteRepository
	pinger   handler.Pinger
	close    func(ctx context.Context)
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	log := logger.Component("storage")

	switch cfg.StorageDriver {
	case config.StorageMySQL:
		db, err := mysqlstore.Connect(ctx, cfg.MySQL.DSN)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("connected to mysql")
		return &storage{
			users:    mysqlstore.NewUserRepository(db),
			clientes: mysqlstore.NewClienteRepository(db),
			pinger:   mysqlstore.NewPinger(db),
			close: func(context.Context) {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil

	default:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		clientes := mongostore.NewClienteRepository(db)
		if err := clientes.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		return &storage{
			users:    mongostore.NewUserRepository(db),
			clientes: clientes,
			pinger:   mongostore.NewPinger(db),
			close: func(ctx context.Context) {
				_ = client.Disconnect(ctx)
			},
		}, nil
	}
}

// sessionBackend bundles the session.Store of the configured SESSION_BACKEND.
type sessionBackend struct {
	store  session.Store
	pinger handler.Pinger
	close  func(ctx context.Context)
}

func openSessionStore(ctx context.Context, cfg *config.Config) (*sessionBackend, error) {
	log := logger.Component("session")

	switch cfg.Session.Backend {
	case config.SessionMemory:
		store := memory.NewSessionStore(cfg.Session.MaxSessions)
		log.Warn().Msg("sessions kept in process memory; they will not survive a restart")
		return &sessionBackend{
			store:  store,
			pinger: store,
			close:  func(context.Context) { store.Close() },
		}, nil

	case config.SessionMemcache:
		client, err := memcache.Connect(cfg.Memcache.Servers...)
		if err != nil {
			return nil, err
		}
		store := memcache.NewSessionStore(client)
		log.Info().Strs("servers", cfg.Memcache.Servers).Msg("connected to memcached")
		return &sessionBackend{
			store:  store,
			pinger: store,
			// gomemcache keeps only idle connections; nothing to release.
			close: func(context.Context) {},
		}, nil

	default:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		store := redisstore.NewSessionStore(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
		return &sessionBackend{
			store:  store,
			pinger: store,
			close:  func(context.Context) { _ = client.Close() },
		}, nil
	}
}
