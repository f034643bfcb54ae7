// Package config loads service configuration from the environment.
//
// A `.env` file in the working directory, if present, is loaded into the
// process environment before anything is read.
package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Env                string        `koanf:"app_env"               validate:"required"`
	Port               string        `koanf:"port"                  validate:"required,numeric"`
	MongoURI           string        `koanf:"mongo_uri"             validate:"required"`
	MongoDB            string        `koanf:"mongo_db"              validate:"required"`
	MongoTimeout       time.Duration `koanf:"mongo_connect_timeout" validate:"gt=0"`
	RedisAddr          string        `koanf:"redis_addr"            validate:"omitempty,hostname_port"`
	RedisPassword      string        `koanf:"redis_password"`
	UserCacheTTL       time.Duration `koanf:"user_cache_ttl"        validate:"gt=0"`
	CORSAllowedOrigins string        `koanf:"cors_allowed_origins"`
	LogLevel           string        `koanf:"log_level"             validate:"oneof=trace debug info warn error"`
	Timezone           string        `koanf:"timezone"              validate:"required"`

	// Location is resolved from Timezone by Load.
	Location *time.Location `koanf:"-"`
}

// knownKeys limits what is read from the environment to the keys above.
var knownKeys = map[string]bool{
	"app_env":               true,
	"port":                  true,
	"mongo_uri":             true,
	"mongo_db":              true,
	"mongo_connect_timeout": true,
	"redis_addr":            true,
	"redis_password":        true,
	"user_cache_ttl":        true,
	"cors_allowed_origins":  true,
	"log_level":             true,
	"timezone":              true,
}

func defaults() *Config {
	return &Config{
		Env:                "development",
		Port:               "3000",
		MongoDB:            "exercise_tracker",
		MongoTimeout:       10 * time.Second,
		UserCacheTTL:       10 * time.Minute,
		CORSAllowedOrigins: "*",
		LogLevel:           "info",
		Timezone:           "UTC",
	}
}

// Load reads the environment on top of the defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider("", ".", func(s string) string {
		key := strings.ToLower(s)
		if !knownKeys[key] {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}
	// Empty variables keep the defaults.
	for _, key := range k.Keys() {
		if strings.TrimSpace(k.String(key)) == "" {
			k.Delete(key)
		}
	}

	cfg := defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc
	return cfg, nil
}

// AllowedOrigins splits CORSAllowedOrigins on commas.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Development reports whether the service runs in the development environment.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// CacheEnabled reports whether a Redis user cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}
