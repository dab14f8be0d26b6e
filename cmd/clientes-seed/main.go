// Command clientes-seed loads users from a YAML file into the configured
// user store, hashing their passwords with bcrypt. The web application only
// reads users; this is how they come to exist.
//
// Usage:
//
//	clientes-seed -file usuarios.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/tl2/clientes-admin/internal/core/domain"
	"github.com/tl2/clientes-admin/internal/infrastructure/db/mongo"
	"github.com/tl2/clientes-admin/internal/infrastructure/db/mysql"
	"github.com/tl2/clientes-admin/internal/pkg/config"
	"github.com/tl2/clientes-admin/internal/pkg/password"
	"github.com/tl2/clientes-admin/pkg/logger"
)

type seedFile struct {
	Usuarios []seedUser `yaml:"usuarios"`
}

type seedUser struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Rol      string `yaml:"rol"`
}

// upserter is implemented by the user repositories of every storage driver.
type upserter interface {
	UpsertUsuario(ctx context.Context, user *domain.User) error
}

func main() {
	file := flag.String("file", "usuarios.yaml", "YAML file with the users to load")
	flag.Parse()

	if err := run(*file); err != nil {
		fmt.Fprintf(os.Stderr, "clientes-seed: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "clientes-seed"})

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	users, err := loadUsers(f)
	if err != nil {
		return err
	}

	repo, closeFn, err := openUserStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	n, err := seed(ctx, repo, users)
	if err != nil {
		return err
	}
	log.Info().Int("users", n).Str("storage", cfg.StorageDriver).Msg("users loaded")
	return nil
}

// loadUsers parses and validates the seed file.
func loadUsers(r io.Reader) ([]seedUser, error) {
	var sf seedFile
	if err := yaml.NewDecoder(r).Decode(&sf); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	var errs []error
	seen := make(map[string]bool, len(sf.Usuarios))
	for i, u := range sf.Usuarios {
		switch {
		case strings.TrimSpace(u.Username) == "":
			errs = append(errs, fmt.Errorf("usuario %d: username is required", i+1))
		case u.Password == "":
			errs = append(errs, fmt.Errorf("usuario %q: password is required", u.Username))
		case seen[u.Username]:
			errs = append(errs, fmt.Errorf("usuario %q: listed twice", u.Username))
		}
		seen[u.Username] = true
	}
	if len(sf.Usuarios) == 0 {
		errs = append(errs, errors.New("seed file lists no usuarios"))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return sf.Usuarios, nil
}

// seed hashes each password and upserts the user. It returns how many users
// were written before any failure.
func seed(ctx context.Context, repo upserter, users []seedUser) (int, error) {
	for i, u := range users {
		hash, err := password.Hash(u.Password)
		if err != nil {
			return i, fmt.Errorf("hash password for %q: %w", u.Username, err)
		}
		user := &domain.User{
			Username:     u.Username,
			PasswordHash: hash,
			Rol:          domain.ParseRole(u.Rol),
		}
		if err := repo.UpsertUsuario(ctx, user); err != nil {
			return i, fmt.Errorf("upsert %q: %w", u.Username, err)
		}
	}
	return len(users), nil
}

func openUserStore(ctx context.Context, cfg *config.Config) (upserter, func(), error) {
	if cfg.StorageDriver == config.StorageMySQL {
		db, err := mysql.Connect(ctx, cfg.MySQL.DSN)
		if err != nil {
			return nil, nil, err
		}
		return mysql.NewUserRepository(db), func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}, nil
	}

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, nil, err
	}
	return mongo.NewUserRepository(db), func() { _ = client.Disconnect(context.Background()) }, nil
}
