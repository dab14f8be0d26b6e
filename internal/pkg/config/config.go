package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StorageMongo = "mongo"
	StorageMySQL = "mysql"

	SessionRedis    = "redis"
	SessionMemcache = "memcache"
	SessionMemory   = "memory"

	envDevelopment = "development"
)

type Config struct {
	Port          string `env:"PORT,           default=8080"`
	Env           string `env:"ENV,            default=development"`
	LogLevel      string `env:"LOG_LEVEL,      default=info"`
	StorageDriver string `env:"STORAGE_DRIVER, default=mongo"`

	Session  SessionConfig
	Mongo    MongoConfig
	MySQL    MySQLConfig
	Redis    RedisConfig
	Memcache MemcacheConfig
}

type SessionConfig struct {
	Backend     string        `env:"SESSION_BACKEND,      default=redis"`
	Secret      string        `env:"SESSION_SECRET"`
	TTL         time.Duration `env:"SESSION_TTL,          default=30m"`
	CookieName  string        `env:"SESSION_COOKIE,       default=clientes_session"`
	Secure      bool          `env:"SESSION_SECURE,       default=false"`
	MaxSessions int64         `env:"SESSION_MAX_SESSIONS, default=10000"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=clientes"`
}

type MySQLConfig struct {
	DSN string `env:"MYSQL_DSN, default=clientes:clientes@tcp(localhost:3306)/clientes?charset=utf8mb4&parseTime=True&loc=Local"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type MemcacheConfig struct {
	Servers []string `env:"MEMCACHE_SERVERS, default=localhost:11211"`
}

// IsDevelopment reports whether the process runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == envDevelopment
}

// Validate rejects unknown backends and an unsigned session cookie outside
// development.
func (c *Config) Validate() error {
	var errs []error

	switch c.StorageDriver {
	case StorageMongo, StorageMySQL:
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	switch c.Session.Backend {
	case SessionRedis, SessionMemcache, SessionMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown SESSION_BACKEND %q", c.Session.Backend))
	}

	if c.Session.Secret == "" && !c.IsDevelopment() {
		errs = append(errs, errors.New("SESSION_SECRET is required outside development"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}

	return errors.Join(errs...)
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.Session.Secret == "" && cfg.IsDevelopment() {
		cfg.Session.Secret = "development-only-secret"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
