// Package cli wires the sitealert use cases and adapters behind the CLI commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bnema/sitealert/internal/cli/styles"
	"github.com/bnema/sitealert/internal/domain/build"
	"github.com/bnema/sitealert/internal/infrastructure/config"
	"github.com/bnema/sitealert/internal/logging"
)

// AppOptions carry the persistent CLI flags.
type AppOptions struct {
	// ConfigFile overrides the config search path.
	ConfigFile string
	// LogLevel and LogFormat override the config file when set.
	LogLevel  string
	LogFormat string
	// Out receives user-facing output. Defaults to stdout.
	Out io.Writer
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info
	Out       io.Writer

	// Context with logger
	ctx        context.Context
	logCleanup func()
}

// NewApp loads the configuration and sets up logging.
func NewApp(opts AppOptions) (*App, error) {
	mgr, err := config.NewManager(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	logLevel := cfg.Logging.Level
	if opts.LogLevel != "" {
		logLevel = opts.LogLevel
	}
	logFormat := cfg.Logging.Format
	if opts.LogFormat != "" {
		logFormat = opts.LogFormat
	}

	logCfg := logging.Config{
		Level:      logging.ParseLevel(logLevel),
		Format:     logFormat,
		TimeFormat: "15:04:05",
	}
	logCleanup := func() {}
	if cfg.Logging.EnableFileLog {
		rotator, rotErr := logging.NewRotator(cfg.RotatorConfig())
		if rotErr != nil {
			return nil, fmt.Errorf("open log file: %w", rotErr)
		}
		logCfg.File = rotator
		logCleanup = func() { _ = rotator.Close() }
	}
	logger := logging.New(logCfg)
	ctx := logging.WithContext(context.Background(), logger)

	logger.Debug().
		Str("config", mgr.GetConfigFile()).
		Int("urgent_sites", len(cfg.Rules.ExactCodes)).
		Int("prefixes", len(cfg.Rules.Prefixes)).
		Msg("configuration loaded")

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return &App{
		Config:     cfg,
		Manager:    mgr,
		Theme:      styles.NewTheme(),
		Out:        out,
		ctx:        ctx,
		logCleanup: logCleanup,
	}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
