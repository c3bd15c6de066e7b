package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/gretago/internal/config"
	"github.com/specialistvlad/gretago/internal/ctxlog"
	"github.com/specialistvlad/gretago/internal/handlers"
	"github.com/specialistvlad/gretago/internal/localsession"
	"github.com/specialistvlad/gretago/internal/nodeid"
	"github.com/specialistvlad/gretago/internal/registry"
	"github.com/specialistvlad/gretago/internal/session"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	def      *config.Definition
	registry *registry.Registry
	declared registry.Declared
	options  config.Options
	session  session.Session
}

// NewApp loads the model files named by cfg, populates a fresh registry from
// them and opens a local session. Extra kernels are registered next to the
// built-in operators. Results are written to outW and logs to logW.
func NewApp(ctx context.Context, outW, logW io.Writer, cfg *Config, loader config.Loader, kernels ...*handlers.Kernel) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	def, err := loader.Load(ctx, cfg.Paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load model definition: %w", err)
	}
	logger.Debug("Model definition loaded and translated into unified model.")

	opts, err := def.Settings.Options(config.DefaultOptions())
	if err != nil {
		return nil, err
	}
	opts = cfg.options(opts)

	reg := registry.New()
	declared, err := reg.Populate(ctx, def)
	if err != nil {
		return nil, fmt.Errorf("failed to populate registry: %w", err)
	}
	logger.Debug("Registry populated from model definition.", "nodes", reg.Len())

	h := handlers.Default()
	for _, k := range kernels {
		h.Register(k)
	}
	sess, err := (&localsession.SessionFactory{Handlers: h}).NewSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	return &App{
		outW:     outW,
		logger:   logger,
		def:      def,
		registry: reg,
		declared: declared,
		options:  opts,
		session:  sess,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Options returns the build options after file settings and overrides.
func (a *App) Options() config.Options {
	return a.options
}

// Close releases the session.
func (a *App) Close(ctx context.Context) error {
	return a.session.Close(ctxlog.WithLogger(ctx, a.logger))
}

func (a *App) context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// seeds returns the tracked declarations of the model block, or nil when
// nothing is tracked.
func (a *App) seeds() ([]nodeid.ID, error) {
	if len(a.def.Settings.Track) == 0 {
		return nil, nil
	}
	return a.declared.Resolve(a.def.Settings.Track)
}
