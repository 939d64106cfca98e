package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/gofta/internal/fta"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/gofta/internal/pkg/pkglog"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/gofta/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/gofta/internal/pkg/pkguid"
	"gorm.io/gorm"
)

// Options select how the application is assembled.
type Options struct {
	// ConfigPath overrides the default config file location.
	ConfigPath string
	Debug      bool
	// WithoutHTTP skips the HTTP server, for one-shot commands.
	WithoutHTTP bool
}

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	options Options
	config  pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	snowflake pkguid.NumberID
	goroutine *pkgroutine.Manager

	// resources
	db *gorm.DB

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	// modules
	fta *fta.Module

	// closed after the modules, in reverse order
	resources []closer
	// closed right after the HTTP server, in reverse order
	modules []closer
}

type closer struct {
	name string
	fn   func(context.Context) error
}

func New(opts Options) (*App, error) {
	pkglog.InitLogging(opts.Debug)

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:     ctx,
		cancel:  cancel,
		options: opts,
	}

	steps := []func() error{
		app.initConfig,
		app.initLibraries,
		app.initResources,
		app.initHTTPServer,
		app.initModules,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			app.Stop(context.Background())
			return nil, err
		}
	}

	return app, nil
}

// FTA returns the transaction analysis module, or nil when it is disabled.
func (a *App) FTA() *fta.Module {
	return a.fta
}

func (a *App) addResource(name string, fn func(context.Context) error) {
	a.resources = append(a.resources, closer{name: name, fn: fn})
}

func (a *App) addModule(name string, fn func(context.Context) error) {
	a.modules = append(a.modules, closer{name: name, fn: fn})
}

func closeAll(ctx context.Context, closers []closer) {
	for i := len(closers) - 1; i >= 0; i-- {
		c := closers[i]
		if err := c.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", c.name, "error", err)
		}
	}
}
