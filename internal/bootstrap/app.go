package bootstrap

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"cover-merge/internal/applications"
	"cover-merge/internal/pdfdoc"
	"cover-merge/internal/render"
	"cover-merge/internal/shared/config"
	"cover-merge/internal/shared/server"
	"cover-merge/internal/shared/server/middleware"
)

// App holds the dependencies of one running service.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	Renderer     *render.Renderer
	Merger       *pdfdoc.Merger
	MergeService *applications.Service
	MergeHandler *applications.Handler
}

// Option adjusts an App before its router is built.
type Option func(*App, *server.RouterDeps)

// WithRateLimiter replaces the default rate limiter.
func WithRateLimiter(l *middleware.RateLimiter) Option {
	return func(_ *App, deps *server.RouterDeps) {
		deps.Limiter = l
	}
}

// WithRenderer replaces the cover renderer, e.g. to pin its clock.
func WithRenderer(r *render.Renderer) Option {
	return func(app *App, _ *server.RouterDeps) {
		app.Renderer = r
	}
}

// Build prepares dependencies and routes.
func Build(cfg config.Config, opts ...Option) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.CoverTitle) == "" {
		cfg.CoverTitle = render.DefaultTitle
	}
	if cfg.MaxUploadBytes < 0 {
		return nil, errors.New("max upload bytes must not be negative")
	}

	app := &App{
		Config:   cfg,
		Renderer: render.New(),
		Merger:   pdfdoc.NewMerger(),
	}
	deps := server.RouterDeps{Config: cfg}
	for _, opt := range opts {
		opt(app, &deps)
	}

	app.MergeService = applications.NewService(app.Renderer, app.Merger, cfg.CoverTitle)
	app.MergeHandler = applications.NewHandler(app.MergeService, cfg.MaxUploadBytes)

	deps.MergeHandler = app.MergeHandler
	app.Router = server.NewRouter(deps)
	return app, nil
}
