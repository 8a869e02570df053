package folio

import (
	"github.com/rs/zerolog"

	"github.com/eringen/folio/content"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for meta tags
	Author      string // Author name for JSON-LD and the footer

	Addr       string   // Listen address (default ":3000")
	ContentDir string   // Directory holding the posts (default "content/blogs")
	BundlePath string   // Packed SQLite bundle; takes precedence over ContentDir when set
	StaticDir  string   // Static assets served under /public (default "public")
	OutputDir  string   // Static build output (default "out")
	Extensions []string // Content file extensions (default .md, .mdx)

	ThumbnailWidth int                   // Card thumbnail width in pixels (default 740)
	FailurePolicy  content.FailurePolicy // Posts with unloadable metadata
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/blogs"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if len(c.Extensions) == 0 {
		c.Extensions = content.DefaultExtensions
	}
	if c.ThumbnailWidth <= 0 {
		c.ThumbnailWidth = 740
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithStore serves content from s instead of ContentDir or BundlePath.
func WithStore(s content.Store) Option {
	return func(a *App) {
		a.store = s
	}
}

// WithViews replaces the page components.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}

// WithLogger sets the logger for requests, content diagnostics and builds.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithStaticDir overrides the directory served under /public and copied
// into static builds.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}
