package main

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/subcommands"

	"levelkit/charts"
	"levelkit/config"
	"levelkit/curve"
)

// app aggregates the shared command context: the resolved configuration and
// the canonical level table every subcommand reads from.
type app struct {
	cfg   *config.Config
	table *curve.Table
}

// appLoader builds the app once, on first use, so commands like help never
// require a valid configuration.
type appLoader struct {
	configPath string

	once sync.Once
	app  *app
	err  error
}

func (l *appLoader) load() (*app, error) {
	l.once.Do(func() {
		l.app, l.err = newApp(l.configPath)
	})
	return l.app, l.err
}

func newApp(configPath string) (*app, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	setupLogging(cfg)

	table, err := curve.BuildTable(cfg.Curve, curve.WithAnchorTolerance(cfg.AnchorTolerance))
	if err != nil {
		return nil, fmt.Errorf("building level table: %w", err)
	}
	slog.Debug("level table built",
		"gamma", table.Gamma,
		"levels", table.Levels(),
		"exp_cap", table.ExpCap())

	return &app{cfg: cfg, table: table}, nil
}

func (a *app) chartOptions() charts.Options {
	return charts.Options{Width: a.cfg.Chart.Width, Height: a.cfg.Chart.Height}
}

// fail logs a command error and maps it to a failure exit status.
func fail(err error) subcommands.ExitStatus {
	slog.Error("command failed", "error", err)
	return subcommands.ExitFailure
}

// setupLogging configures the default logger based on configuration. Logs
// go to stderr; stdout is reserved for command output.
func setupLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logging.Level),
	}

	var handler slog.Handler
	switch cfg.Logging.Format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
