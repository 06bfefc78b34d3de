// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/govote/auth"
	"github.com/danielhkuo/govote/cliparse"
	"github.com/danielhkuo/govote/db"
	"github.com/danielhkuo/govote/ledger"
	"github.com/danielhkuo/govote/middleware"
	"github.com/danielhkuo/govote/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := cliparse.LoadEnvFile(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	if cfg.IssueKey != "" {
		fmt.Println(auth.GenerateCallerKey(cfg.IssueKey, cfg.CallerKeySalt))
		return
	}

	logger := newLogger(cfg.Debug)
	slog.SetDefault(logger)

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		slog.Debug(fmt.Sprintf(format, args...))
	})); err != nil {
		slog.Warn("failed to set GOMAXPROCS", "error", err)
	}

	if err := run(cfg, logger); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg cliparse.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	genesis, err := cliparse.Genesis(cfg)
	if err != nil {
		return err
	}

	// Connect to the database
	dbConn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	var clock ledger.Clock = ledger.NewManualClock(0)
	if cfg.ClockMode == cliparse.ClockWall {
		clock = ledger.WallClock{}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := &ledger.Metrics{}
	metrics.Register(registry)

	l := ledger.New(dbConn, clock,
		ledger.WithLogger(logger),
		ledger.WithMetrics(metrics),
	)
	if err := l.Init(ctx, genesis); err != nil {
		return fmt.Errorf("ledger init failed: %w", err)
	}
	slog.Info("Ledger ready", "owner", genesis.Owner, "clock", cfg.ClockMode, "height", l.Height())

	// Create router
	mux := router.NewRouter(l, clock, registry, cfg)
	limiter := middleware.NewRateLimiter(cfg.RateLimit, int(cfg.RateLimit)*2, middleware.WithTrustProxy(cfg.TrustProxy))

	// Create server
	server := &http.Server{
		Handler:           limiter.Middleware(middleware.CORS(mux)),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		// Wait for a signal or a listener failure
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	slog.Info("Server closed", "error", err)
	return err
}

// newLogger writes text to a terminal and JSON otherwise.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if isatty.IsTerminal(os.Stderr.Fd()) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
