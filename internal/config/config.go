package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	LogLevel  string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string   `env:"LOG_FORMAT" envDefault:"text"`
	Server    Server   `envPrefix:"SERVER_"`
	Database  Database `envPrefix:"DATABASE_"`
	Redis     Redis    `envPrefix:"REDIS_"`
	JWT       JWT      `envPrefix:"JWT_"`
	Cookie    Cookie   `envPrefix:"COOKIE_"`
	Blog      Blog     `envPrefix:"BLOG_"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// Server contains HTTP server parameters.
type Server struct {
	Port            string        `env:"PORT" envDefault:"3001"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Database contains database connection parameters.
type Database struct {
	Driver      string `env:"DRIVER" envDefault:"mysql"`
	DSN         string `env:"DSN" envDefault:"user:password@tcp(localhost:3306)/blog?charset=utf8mb4&parseTime=True&loc=Local"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
}

// Redis contains parameters of the token revocation store.
type Redis struct {
	Enabled  bool   `env:"ENABLED" envDefault:"true"`
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

// JWT contains session token parameters.
type JWT struct {
	Secret string        `env:"SECRET,required,notEmpty"`
	TTL    time.Duration `env:"TTL" envDefault:"24h"`
}

// Cookie contains session cookie parameters.
type Cookie struct {
	Secure bool `env:"SECURE" envDefault:"false"`
}

// Blog contains post handling parameters.
type Blog struct {
	// HideMissingPosts answers 403 for unknown post ids, same as for foreign posts.
	HideMissingPosts bool `env:"HIDE_MISSING_POSTS" envDefault:"true"`
}

// Load builds Config from the environment.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	switch cfg.Database.Driver {
	case "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if cfg.JWT.TTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive, got %s", cfg.JWT.TTL)
	}

	return &cfg, nil
}
