package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces all configuration variables, e.g. HOOKSCOPE_PORT.
const envPrefix = "HOOKSCOPE_"

const (
	defaultPort          = "3000"
	defaultRetentionDays = 90
)

type Config struct {
	// Port the HTTP server listens on.
	Port string `koanf:"port"`
	// DatabaseURL is the Postgres DSN.
	DatabaseURL string `koanf:"database_url" validate:"required"`
	// DatabaseSSL forces sslmode=require when the DSN does not set one.
	DatabaseSSL bool `koanf:"database_ssl"`
	// RetentionDays is the maximum capture age before cleanup deletes it.
	RetentionDays int `koanf:"retention_days" validate:"gte=0"`

	ReadTimeout  time.Duration `koanf:"-"`
	WriteTimeout time.Duration `koanf:"-"`
	IdleTimeout  time.Duration `koanf:"-"`
}

// LoadConfig reads configuration from HOOKSCOPE_-prefixed environment
// variables and applies defaults for everything except the database DSN.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.RetentionDays == 0 {
		cfg.RetentionDays = defaultRetentionDays
	}
	cfg.ReadTimeout = 15 * time.Second
	cfg.WriteTimeout = 15 * time.Second
	cfg.IdleTimeout = 60 * time.Second

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// DSN returns the database connection string with the SSL requirement
// applied. DSNs that already specify sslmode are left untouched.
func (c *Config) DSN() string {
	if !c.DatabaseSSL || strings.Contains(c.DatabaseURL, "sslmode=") {
		return c.DatabaseURL
	}
	if strings.Contains(c.DatabaseURL, "://") {
		sep := "?"
		if strings.Contains(c.DatabaseURL, "?") {
			sep = "&"
		}
		return c.DatabaseURL + sep + "sslmode=require"
	}
	return c.DatabaseURL + " sslmode=require"
}
