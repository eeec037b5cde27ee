// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	// Prefix is prepended to every environment key.
	Prefix = "MATHWHEEL_"

	// MaxOptions matches the digit keys 1-9 that pick an answer.
	MaxOptions = 9
)

// App holds core runtime configuration.
type App struct {
	Name string `env:"APP_NAME" envDefault:"mathwheel"`
	Env  string `env:"ENV" envDefault:"development"`

	DB   DB
	Log  Log
	HTTP HTTP
	Game Game
}

// DB selects the storage backend.
type DB struct {
	Driver string `env:"DB_DRIVER" envDefault:"sqlite"`
	// DSN is a SQLite path or a Postgres URL. Empty means the default
	// SQLite file under the data directory.
	DSN string `env:"DB"`
}

// Log configures the zerolog output.
type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	// File receives logs while the TUI owns the terminal.
	File string `env:"LOG_FILE"`
}

// HTTP configures the API server.
type HTTP struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:"127.0.0.1:8080"`
	CORSOrigins     []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
	RequestTimeout  time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Game holds gameplay tuning.
type Game struct {
	Options      int           `env:"OPTIONS" envDefault:"4"`
	SpinDuration time.Duration `env:"SPIN_DURATION" envDefault:"3s"`
}

// Load reads .env (if present) and parses MATHWHEEL_* variables into App.
func Load() (*App, error) {
	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	return Parse()
}

// LoadDotEnv loads the given files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Parse builds App from the current environment.
func Parse() (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: Prefix}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the game cannot run with.
func (c *App) Validate() error {
	if c.Game.Options < 2 || c.Game.Options > MaxOptions {
		return fmt.Errorf("%sOPTIONS must be between 2 and %d, got %d", Prefix, MaxOptions, c.Game.Options)
	}
	if c.Game.SpinDuration < 0 {
		return fmt.Errorf("%sSPIN_DURATION must not be negative", Prefix)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%sLOG_FORMAT must be json or console, got %q", Prefix, c.Log.Format)
	}
	return nil
}

// IsProduction reports whether Env is "production".
func (c *App) IsProduction() bool {
	return c.Env == "production"
}
