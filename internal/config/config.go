// Package config loads the relay settings from the environment (and an
// optional .env file), then applies command-line overrides.
package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type Config struct {
	Port           int           `env:"RELAY_PORT,default=7777" validate:"min=1024,max=65535"`
	Address        string        `env:"RELAY_ADDRESS" validate:"omitempty,hostname_rfc1123|ip"`
	DBPath         string        `env:"RELAY_DB_PATH,default=relay.db" validate:"required"`
	MetricsAddr    string        `env:"RELAY_METRICS_ADDR,default=:9090"`
	PollInterval   time.Duration `env:"RELAY_POLL_INTERVAL,default=500ms" validate:"gt=0"`
	OutboundBuffer int           `env:"RELAY_OUTBOUND_BUFFER,default=32" validate:"min=1"`
	LogLevel       string        `env:"RELAY_LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
	Console        bool          `env:"RELAY_CONSOLE,default=false"`
}

// Load reads .env (if present), the process environment and then args.
// Flags win over the environment.
func Load(args []string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return cfg, fmt.Errorf("config error: %w", err)
	}

	fs := flag.NewFlagSet("relay", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.IntVar(&cfg.Port, "p", cfg.Port, "TCP port to listen on")
	fs.StringVar(&cfg.Address, "a", cfg.Address, "host name or IP to bind (default: all interfaces)")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "directory database path")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "metrics listen address, empty to disable")
	fs.BoolVar(&cfg.Console, "console", cfg.Console, "run the interactive admin console on stdin")
	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("invalid arguments: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ListenAddr is the TCP address for the relay listener.
func (c Config) ListenAddr() string {
	return net.JoinHostPort(c.Address, strconv.Itoa(c.Port))
}

func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
