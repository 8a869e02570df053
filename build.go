package folio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

// BuildManifest is written to manifest.json at the root of a static build.
type BuildManifest struct {
	BuildID     string    `json:"build_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Routes      []string  `json:"routes"`
}

// Routes lists the site paths a static build generates: the listing page
// followed by one /slug/ per non-draft post.
func (a *App) Routes() ([]string, error) {
	if err := a.Setup(); err != nil {
		return nil, err
	}
	slugs, err := a.Index.Slugs()
	if err != nil {
		return nil, err
	}
	routes := make([]string, 0, len(slugs)+1)
	routes = append(routes, "/")
	for _, slug := range slugs {
		routes = append(routes, views.PostPath(slug))
	}
	return routes, nil
}

// Build renders the whole site into dir, replacing anything already there.
func (a *App) Build(ctx context.Context, dir string) (BuildManifest, error) {
	if err := a.Setup(); err != nil {
		return BuildManifest{}, err
	}
	start := time.Now()

	if err := os.RemoveAll(dir); err != nil {
		return BuildManifest{}, fmt.Errorf("clean output: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return BuildManifest{}, fmt.Errorf("create output: %w", err)
	}

	if err := a.buildStatic(dir); err != nil {
		return BuildManifest{}, err
	}

	posts, err := a.Index.ListPublished()
	if err != nil {
		return BuildManifest{}, err
	}
	if err := RenderFile(ctx, filepath.Join(dir, "index.html"), a.Views.Home(a.site(), posts)); err != nil {
		return BuildManifest{}, fmt.Errorf("render home: %w", err)
	}

	slugs, err := a.Index.Slugs()
	if err != nil {
		return BuildManifest{}, err
	}
	routes := make([]string, 0, len(slugs)+1)
	routes = append(routes, "/")
	thumbs := 0
	for _, slug := range slugs {
		if err := ctx.Err(); err != nil {
			return BuildManifest{}, err
		}
		post, err := a.Index.GetOne(slug)
		if errors.Is(err, content.ErrNotFound) {
			a.logger.Warn().Err(err).Str("slug", slug).Msg("post skipped")
			continue
		}
		if err != nil {
			return BuildManifest{}, fmt.Errorf("load %q: %w", slug, err)
		}
		page, err := outputPath(dir, slug, "index.html")
		if err != nil {
			return BuildManifest{}, err
		}
		cmp := a.Views.Post(a.site(), post, a.Index.GetAdjacent(slug))
		if err := RenderFile(ctx, page, cmp); err != nil {
			return BuildManifest{}, fmt.Errorf("render %q: %w", slug, err)
		}
		routes = append(routes, views.PostPath(slug))
		if a.buildThumbnail(dir, slug) {
			thumbs++
		}
	}

	if err := RenderFile(ctx, filepath.Join(dir, "404.html"), a.Views.NotFound(a.site())); err != nil {
		return BuildManifest{}, fmt.Errorf("render 404: %w", err)
	}

	m := BuildManifest{
		BuildID:     uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Routes:      routes,
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return BuildManifest{}, err
	}
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), data, 0o644); err != nil {
		return BuildManifest{}, fmt.Errorf("write manifest: %w", err)
	}

	a.logger.Info().
		Str("out", dir).
		Int("pages", len(routes)-1).
		Int("thumbnails", thumbs).
		Dur("took", time.Since(start)).
		Msg("build complete")
	return m, nil
}

// buildStatic copies the static directory to dir/public and writes the
// favicon and robots.txt at the root.
func (a *App) buildStatic(dir string) error {
	static := a.Config.StaticDir
	if _, err := os.Stat(static); err == nil {
		if err := copyDirContents(static, filepath.Join(dir, "public")); err != nil {
			return fmt.Errorf("copy static assets: %w", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	} else {
		a.logger.Debug().Str("dir", static).Msg("static directory not found, skipping copy")
	}

	favicon := filepath.Join(static, "favicon.svg")
	if err := copyFile(favicon, filepath.Join(dir, "favicon.svg")); err != nil {
		if err := os.WriteFile(filepath.Join(dir, "favicon.svg"), defaultFavicon, 0o644); err != nil {
			return err
		}
	}
	robots := filepath.Join(static, "robots.txt")
	if err := copyFile(robots, filepath.Join(dir, "robots.txt")); err != nil {
		if err := os.WriteFile(filepath.Join(dir, "robots.txt"), []byte(defaultRobots), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// buildThumbnail writes dir/thumbs/<slug>.jpg and reports whether it did.
// Posts without a local thumbnail are skipped quietly.
func (a *App) buildThumbnail(dir, slug string) bool {
	data, err := a.thumbnail(slug)
	if err != nil {
		if !errors.Is(err, errNoThumbnail) {
			a.logger.Warn().Err(err).Str("slug", slug).Msg("thumbnail skipped")
		}
		return false
	}
	path, err := outputPath(dir, "thumbs", slug+thumbnailExt)
	if err != nil {
		a.logger.Warn().Err(err).Str("slug", slug).Msg("thumbnail skipped")
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		a.logger.Warn().Err(err).Str("slug", slug).Msg("thumbnail skipped")
		return false
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		a.logger.Warn().Err(err).Str("slug", slug).Msg("thumbnail skipped")
		return false
	}
	return true
}

// outputPath joins elem onto dir and rejects results that land on dir
// itself or outside it.
func outputPath(dir string, elem ...string) (string, error) {
	p := filepath.Join(append([]string{dir}, elem...)...)
	rel, err := filepath.Rel(dir, p)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("output path %q is outside %s", filepath.Join(elem...), dir)
	}
	return p, nil
}

// copyDirContents recursively copies contents from src to dst.
func copyDirContents(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		return copyFile(path, target)
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
