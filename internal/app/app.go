package app

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/specialistvlad/microconf/internal/overlay"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	hosts     overlay.HostResolver
	lookupEnv func(string) (string, bool)
	debounce  time.Duration

	// sources is the import closure of the last successful compile.
	sources []string
}

// Option customizes an App.
type Option func(*App)

// WithHostResolver replaces the DNS resolver used by the overlay pass.
func WithHostResolver(h overlay.HostResolver) Option {
	return func(a *App) { a.hosts = h }
}

// WithEnvLookup replaces os.LookupEnv as the source of environment bindings.
func WithEnvLookup(fn func(string) (string, bool)) Option {
	return func(a *App) { a.lookupEnv = fn }
}

// WithDebounce sets how long watch mode waits for file events to settle.
func WithDebounce(d time.Duration) Option {
	return func(a *App) { a.debounce = d }
}

// NewApp is the constructor for the main application. Reports go to outW and
// logs to logW.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		lookupEnv: os.LookupEnv,
		debounce:  250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
