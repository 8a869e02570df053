// Package folio is a file-backed blog engine built with Go, Echo, and templ.
// Posts are Markdown files with YAML front matter; folio discovers them,
// resolves URL slugs back to files, and serves the listing and post pages
// either live or as a pre-rendered static site.
package folio

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

// ViewFuncs holds the page components the handlers and the static builder
// render. Fields left nil fall back to the views package.
type ViewFuncs struct {
	Home        func(cfg views.SiteConfig, posts []content.Post) templ.Component
	Post        func(cfg views.SiteConfig, post content.Post, adj content.Adjacent) templ.Component
	NotFound    func(cfg views.SiteConfig) templ.Component
	ServerError func(cfg views.SiteConfig) templ.Component
}

func (v *ViewFuncs) setDefaults() {
	if v.Home == nil {
		v.Home = views.Home
	}
	if v.Post == nil {
		v.Post = views.Post
	}
	if v.NotFound == nil {
		v.NotFound = views.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = views.ServerError
	}
}

// App is the central folio application. It wires together the content
// store, the post index, handlers, middleware, and page components.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Index  *content.Index
	Views  ViewFuncs

	store   content.Store
	bundle  *content.SQLiteStore
	logger  zerolog.Logger
	started bool
}

// New creates a folio App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(a)
	}
	a.Views.setDefaults()

	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	return a
}

// Setup opens the content store, builds the index, and registers
// middleware and routes. It is called by Start and Build and is safe to
// call more than once.
func (a *App) Setup() error {
	if a.started {
		return nil
	}

	if a.store == nil {
		store, err := a.openStore()
		if err != nil {
			return err
		}
		a.store = store
	}

	a.Index = content.NewIndex(a.store,
		content.WithLogger(a.logger),
		content.WithFailurePolicy(a.Config.FailurePolicy),
	)

	a.setupMiddleware()
	a.setupRoutes()
	a.started = true
	return nil
}

func (a *App) openStore() (content.Store, error) {
	if a.Config.BundlePath != "" {
		bundle, err := content.NewSQLiteStore(a.Config.BundlePath)
		if err != nil {
			return nil, fmt.Errorf("folio: open bundle: %w", err)
		}
		a.bundle = bundle
		a.logger.Info().Str("bundle", a.Config.BundlePath).Msg("serving content bundle")
		return bundle, nil
	}
	if _, err := os.Stat(a.Config.ContentDir); err != nil {
		return nil, fmt.Errorf("folio: content directory: %w", err)
	}
	return content.NewDirStore(a.Config.ContentDir, a.Config.Extensions...), nil
}

// Start initializes the app and serves HTTP until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}

	a.logger.Info().Str("addr", a.Config.Addr).Str("url", a.Config.URL).Msg("starting server")

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/thumbs/:file", a.handleThumbnail)

	e.GET("/", a.handleHome)
	e.GET("/:slug/", a.handlePost)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.bundle != nil {
		return a.bundle.Close()
	}
	return nil
}

func (a *App) site() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}
