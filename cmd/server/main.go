package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andy6609/jim-relay-server/internal/chat"
	"github.com/andy6609/jim-relay-server/internal/config"
	"github.com/andy6609/jim-relay-server/internal/console"
	"github.com/andy6609/jim-relay-server/internal/directory"
	"github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	db, err := badger.Open(badger.DefaultOptions(cfg.DBPath).WithLoggingLevel(badger.WARNING))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("close directory database", "error", err)
		}
	}()

	store, err := directory.NewStore(db, logger)
	if err != nil {
		return err
	}

	srv := chat.NewServer(cfg.ListenAddr(), store, chat.Options{
		PollInterval:   cfg.PollInterval,
		OutboundBuffer: cfg.OutboundBuffer,
	}, logger)

	var changes <-chan chat.RegistryChange
	if cfg.Console {
		changes = srv.Subscribe(64)
	}
	if err := srv.Start(); err != nil {
		return err
	}
	defer srv.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsAddr != "" {
		metrics := serveMetrics(cfg.MetricsAddr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = metrics.Shutdown(shutdownCtx)
		}()
	}

	if cfg.Console {
		// "exit" on the console stops the server like a signal does.
		go func() {
			if err := console.New(store, changes, os.Stdin, os.Stdout).Run(ctx); err != nil {
				logger.Warn("console stopped", "error", err)
			}
			stop()
		}()
	}

	<-ctx.Done()
	return nil
}

func serveMetrics(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	hs := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("metrics server listening", "addr", addr)
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", "error", err)
		}
	}()
	return hs
}
