// Package config loads the service configuration from a YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultServerPort      = 10000
	defaultServerTimeout   = 30
	defaultDatabasePort    = 5432
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5
	defaultRedisAddress    = "localhost:6379"
	defaultSMTPPort        = 587
	defaultViewGuardTTL    = 30 * time.Minute
	defaultAssetsDir       = "assets"
)

type Config struct {
	Debug    bool           `env:"APP_DEBUG" yaml:"debug"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Assets   AssetsConfig   `yaml:"assets"`
	Admin    AdminConfig    `yaml:"admin"`
}

type ServerConfig struct {
	Host         string        `env:"SERVER_HOST" yaml:"host"`
	Port         int           `env:"SERVER_PORT" yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" yaml:"cors_origins"`
}

type DatabaseConfig struct {
	Host            string        `env:"DB_HOST"     yaml:"host"`
	Port            int           `env:"DB_PORT"     yaml:"port"`
	User            string        `env:"DB_USER"     yaml:"user"`
	Password        string        `env:"DB_PASSWORD" yaml:"password"`
	DBName          string        `env:"DB_NAME"     yaml:"dbname"`
	SSLMode         string        `env:"DB_SSLMODE"  yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// RedisConfig holds the connection for the session view-guard. When disabled
// the service falls back to an in-process guard.
type RedisConfig struct {
	Address  string        `env:"REDIS_ADDRESS"  yaml:"address"`
	Password string        `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int           `env:"REDIS_DB"       yaml:"db"`
	Enabled  bool          `env:"REDIS_ENABLED"  yaml:"enabled"`
	GuardTTL time.Duration `yaml:"guard_ttl"`
}

// SMTPConfig holds outbound mail settings. When Host is empty the notifier
// is disabled and all sends are no-ops.
type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" yaml:"host"`
	Port     int    `env:"SMTP_PORT" yaml:"port"`
	User     string `env:"SMTP_USER" yaml:"user"`
	Password string `env:"SMTP_PASS" yaml:"password"`
	From     string `env:"SMTP_FROM" yaml:"from"`
}

// AssetsConfig holds the on-disk asset store location and the public URL
// prefix baked into resolved image/icon links.
type AssetsConfig struct {
	Dir       string `env:"ASSETS_DIR"        yaml:"dir"`
	PublicURL string `env:"ASSETS_PUBLIC_URL" yaml:"public_url"`
}

// AdminConfig holds the moderation recipient and the base URL used to build
// the approve/decline links in review emails.
type AdminConfig struct {
	Email           string `env:"ADMIN_EMAIL"       yaml:"email"`
	DecisionBaseURL string `env:"DECISION_BASE_URL" yaml:"decision_base_url"`
}

func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host is required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port is required and must be positive")
	}
	if c.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if c.Database.Port <= 0 {
		return errors.New("database.port is required and must be positive")
	}
	if c.Database.User == "" {
		return errors.New("database.user is required")
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if c.SMTP.Host != "" && c.Admin.Email == "" {
		return errors.New("admin.email is required when smtp is configured")
	}
	return nil
}

func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	setDefaults(cfg)
	// Re-apply env overrides after defaults (env always wins)
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerTimeout * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerTimeout * time.Second
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = defaultDatabasePort
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = defaultMaxOpenConns
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = defaultMaxIdleConns
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = defaultConnMaxLifetime * time.Minute
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = defaultRedisAddress
	}
	if cfg.Redis.GuardTTL == 0 {
		cfg.Redis.GuardTTL = defaultViewGuardTTL
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = defaultSMTPPort
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = "Yeai <noreply@yeai.tech>"
	}
	if cfg.Assets.Dir == "" {
		cfg.Assets.Dir = defaultAssetsDir
	}
}
