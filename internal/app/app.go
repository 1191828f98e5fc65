// Package app wires configuration, clock, store and the collaborators
// around it into one running instance.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/dori/tasklist/internal/api"
	"github.com/dori/tasklist/internal/clock"
	"github.com/dori/tasklist/internal/config"
	"github.com/dori/tasklist/internal/interp"
	"github.com/dori/tasklist/internal/logging"
	"github.com/dori/tasklist/internal/notify"
	"github.com/dori/tasklist/internal/render"
	"github.com/dori/tasklist/internal/store"
	"github.com/dori/tasklist/internal/ui"
	"github.com/dori/tasklist/internal/ui/theme"
)

// ErrAlreadyServing is returned by Serve when another server holds the lock
var ErrAlreadyServing = errors.New("another tasklist server is already running")

// App holds the application state and dependencies
type App struct {
	Config   *config.Config
	Clock    clock.Clock
	Store    *store.Store
	Renderer *render.Renderer
	Interp   *interp.Interpreter
	Notifier *notify.Notifier
	Logger   *slog.Logger
	lockFile *flock.Flock
}

// Options overrides parts of the wiring, mostly for tests
type Options struct {
	Clock    clock.Clock
	Logger   *slog.Logger
	Notifier *notify.Notifier
}

// New creates a new application instance
func New(cfg *config.Config, opts Options) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	clk := opts.Clock
	if clk == nil {
		loc, err := cfg.Location()
		if err != nil {
			return nil, err
		}
		clk = clock.Real(loc)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.NewNotifier()
	}
	notifier.SetEnabled(cfg.Notify)

	styles := theme.PlainStyles()
	if !cfg.Plain {
		t, ok := theme.ByName(cfg.Theme)
		if !ok {
			return nil, fmt.Errorf("%w: %s", config.ErrUnknownTheme, cfg.Theme)
		}
		styles = theme.NewStyles(t)
	}

	s := store.New(clk)
	r := render.New(styles, cfg.DateLayout, clk.Now)

	return &App{
		Config:   cfg,
		Clock:    clk,
		Store:    s,
		Renderer: r,
		Interp: interp.New(interp.Options{
			Store:    s,
			Clock:    clk,
			Renderer: r,
			Notifier: notifier,
			Logger:   logger,
		}),
		Notifier: notifier,
		Logger:   logger,
	}, nil
}

// RunLines runs the plain line loop on r and w
func (a *App) RunLines(ctx context.Context, r io.Reader, w io.Writer) error {
	return a.Interp.Run(ctx, r, w)
}

// RunShell runs the full-screen shell until the user quits
func (a *App) RunShell(ctx context.Context) error {
	return ui.Run(ctx, ui.Options{
		Interp:   a.Interp,
		Renderer: a.Renderer,
		Theme:    a.Config.Theme,
		Plain:    a.Config.Plain,
		Logger:   a.Logger,
	})
}

// Serve exposes the store on the configured socket until ctx is cancelled.
// Only one server may use a socket path at a time.
func (a *App) Serve(ctx context.Context) error {
	if err := a.acquireLock(); err != nil {
		return err
	}
	defer a.releaseLock()

	srv := api.NewServer(a.Config.SocketPath, a.Logger)
	api.NewService(a.Store, a.Clock, a.Logger).Register(srv)
	return srv.Serve(ctx)
}

// acquireLock acquires an exclusive file lock next to the socket
func (a *App) acquireLock() error {
	lockPath := a.Config.LockPath()
	if err := os.MkdirAll(filepath.Dir(lockPath), 0755); err != nil {
		return fmt.Errorf("failed to create socket directory: %w", err)
	}
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("%w on %s", ErrAlreadyServing, a.Config.SocketPath)
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
		a.lockFile = nil
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	a.releaseLock()
	return nil
}
