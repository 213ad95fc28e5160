// Package main is the entry point for the lineup schedule editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/dshills/lineup/internal/app"
	"github.com/dshills/lineup/internal/config"
	"github.com/dshills/lineup/internal/metrics"
	"github.com/dshills/lineup/internal/script"
	"github.com/dshills/lineup/internal/seed"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	seedPath   string
	scriptPath string
	logLevel   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	logger, err := app.NewLogger(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q: %v\n", cfg.Log.Level, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionOpts := []app.Option{
		app.WithLogger(logger),
		app.WithMaxUndoEntries(cfg.History.MaxEntries),
	}
	if cfg.Metrics.Enabled {
		collector := metrics.New()
		reg := prometheus.NewRegistry()
		if err := collector.Register(reg); err != nil {
			logger.Error().Err(err).Msg("failed to register metrics")
			return 1
		}
		sessionOpts = append(sessionOpts, app.WithObserver(collector))
		go startMetricsServer(ctx, cfg.Metrics.Address, reg, &logger)
	}

	session := app.NewSession(sessionOpts...)

	if opts.seedPath != "" {
		f, err := seed.ReadFile(opts.seedPath)
		if err != nil {
			logger.Error().Err(err).Msg("failed to read seed")
			return 1
		}
		if err := session.Seed(f); err != nil {
			logger.Error().Err(err).Msg("failed to seed lineup")
			return 1
		}
	}

	runner := script.NewRunner(session,
		script.WithOutput(os.Stdout),
		script.WithTimeout(cfg.Script.Timeout.Duration),
		script.WithLogger(logger),
	)

	if opts.scriptPath != "" {
		err = session.Atomically(func() error {
			return runner.RunFile(ctx, opts.scriptPath)
		})
		if err != nil {
			logger.Error().Err(err).Msg("script failed")
			fmt.Fprint(os.Stdout, session.Render())
			return 1
		}
		fmt.Fprint(os.Stdout, session.Render())
		return 0
	}

	shell := app.NewShell(session, runner, os.Stdout, logger)
	if err := shell.Run(ctx, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("shell stopped")
		return 1
	}
	logger.Debug().Int("undo_depth", session.History().UndoCount()).Msg("session ended")
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to TOML configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to TOML configuration file (shorthand)")
	flag.StringVar(&opts.seedPath, "seed", "", "YAML lineup to load at startup")
	flag.StringVar(&opts.scriptPath, "script", "", "Run a Lua script, print the week and exit")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "lineup - weekly schedule editor with undo/redo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: lineup [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  lineup                       Start with an empty week\n")
		fmt.Fprintf(os.Stderr, "  lineup -seed week.yaml       Load a lineup, then edit it\n")
		fmt.Fprintf(os.Stderr, "  lineup -script plan.lua      Run a script non-interactively\n")
		fmt.Fprintf(os.Stderr, "\nUndo history is unlimited unless history.max_entries is set.\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("lineup %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}

func startMetricsServer(ctx context.Context, addr string, reg *prometheus.Registry, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	logger.Info().Str("addr", addr).Msg("metrics server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
