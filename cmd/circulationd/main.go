// Command circulationd serves the library circulation API.
//
// Configuration comes from the environment, optionally loaded from an env file, and can be
// overridden by flags:
//
//	circulationd -env-file .env -addr :8080 -eventstore-backend postgres
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/config"
)

const (
	serviceName     = "circulationd"
	serviceVersion  = "0.1.0"
	shutdownTimeout = 10 * time.Second
)

func main() {
	var (
		envFile  = flag.String("env-file", ".env", "Env file loaded before reading the environment, ignored if missing")
		addr     = flag.String("addr", "", "HTTP listen address, overrides HTTP_ADDR")
		backend  = flag.String("eventstore-backend", "", "memory or postgres, overrides EVENTSTORE_BACKEND")
		notifier = flag.String("notifier", "", "log or amqp, overrides NOTIFIER")
	)

	flag.Parse()

	cfg, err := config.FromEnvironment(*envFile)
	if err != nil {
		slog.Error("loading configuration failed", "error", err.Error())
		os.Exit(1)
	}

	if cfg, err = applyFlags(cfg, *addr, *backend, *notifier); err != nil {
		slog.Error("invalid flags", "error", err.Error())
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg, logger); err != nil {
		logger.Error("circulationd stopped with error", "error", err.Error())
		os.Exit(1)
	}
}

func applyFlags(cfg config.Config, addr string, backend string, notifier string) (config.Config, error) {
	if addr != "" {
		cfg.HTTPAddr = addr
	}

	if backend != "" {
		cfg.EventStoreBackend = backend
	}

	if notifier != "" {
		cfg.Notifier = notifier
	}

	return cfg, cfg.Validate()
}

// run serves until ctx is canceled and then shuts the server down gracefully.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	app, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.close(context.Background())

	e := app.server.Echo()

	errChan := make(chan error, 1)
	go func() {
		logger.Info("circulationd listening", "addr", cfg.HTTPAddr, "eventstore", cfg.EventStoreBackend, "notifier", cfg.Notifier)

		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}

		close(errChan)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err, ok := <-errChan:
		if ok {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}
