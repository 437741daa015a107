package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	req := require.New(t)

	cfg, err := Load(nil)
	req.NoError(err)
	req.Equal(7777, cfg.Port)
	req.Empty(cfg.Address)
	req.Equal("relay.db", cfg.DBPath)
	req.Equal(500*time.Millisecond, cfg.PollInterval)
	req.Equal(32, cfg.OutboundBuffer)
	req.Equal(":7777", cfg.ListenAddr())
	req.Equal(slog.LevelInfo, cfg.SlogLevel())
	req.False(cfg.Console)
}

func TestLoad_EnvironmentThenFlags(t *testing.T) {
	req := require.New(t)
	t.Setenv("RELAY_PORT", "8888")
	t.Setenv("RELAY_ADDRESS", "10.0.0.1")
	t.Setenv("RELAY_LOG_LEVEL", "debug")
	t.Setenv("RELAY_POLL_INTERVAL", "250ms")

	cfg, err := Load(nil)
	req.NoError(err)
	req.Equal("10.0.0.1:8888", cfg.ListenAddr())
	req.Equal(slog.LevelDebug, cfg.SlogLevel())
	req.Equal(250*time.Millisecond, cfg.PollInterval)

	cfg, err = Load([]string{"-p", "9999", "-a", "127.0.0.1", "-console"})
	req.NoError(err)
	req.Equal("127.0.0.1:9999", cfg.ListenAddr())
	req.True(cfg.Console)
}

func TestLoad_RejectsInvalidArguments(t *testing.T) {
	cases := map[string][]string{
		"port not a number":  {"-p", "http"},
		"port below range":   {"-p", "80"},
		"port above range":   {"-p", "70000"},
		"address with port":  {"-a", "localhost:1"},
		"address with space": {"-a", "my host"},
		"port without value": {"-p"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(args)
			require.Error(t, err)
		})
	}
}

func TestLoad_AcceptsHostNames(t *testing.T) {
	req := require.New(t)

	cfg, err := Load([]string{"-a", "localhost"})
	req.NoError(err)
	req.Equal("localhost:7777", cfg.ListenAddr())

	cfg, err = Load([]string{"-a", "::1"})
	req.NoError(err)
	req.Equal("[::1]:7777", cfg.ListenAddr())
}

func TestValidate_LogLevel(t *testing.T) {
	req := require.New(t)
	cfg, err := Load(nil)
	req.NoError(err)

	cfg.LogLevel = "verbose"
	req.Error(cfg.Validate())
}
