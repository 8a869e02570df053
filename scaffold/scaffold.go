// Package scaffold creates new folio sites and new posts from embedded
// text/template files.
package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/eringen/folio/content"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

var funcs = template.FuncMap{
	"quote": strconv.Quote,
}

// SiteData holds the template variables passed to the site templates.
type SiteData struct {
	SiteName string
	Date     string
}

// PostData holds the template variables passed to the post template.
type PostData struct {
	Title string
	Date  string
}

// Site writes a new site skeleton into dir, which must not exist yet.
// It returns the created files relative to dir.
func Site(dir string, data SiteData) ([]string, error) {
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("directory %q already exists", dir)
	}

	root := "templates/site"
	var created []string

	err := fs.WalkDir(Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		// Strip the .tmpl suffix; dotenv becomes .env.example.
		outPath := filepath.Join(dir, strings.TrimSuffix(relPath, ".tmpl"))
		if filepath.Base(outPath) == "dotenv" {
			outPath = filepath.Join(filepath.Dir(outPath), ".env.example")
		}

		if d.IsDir() {
			return os.MkdirAll(outPath, 0o755)
		}

		if err := render(path, outPath, data); err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, outPath)
		created = append(created, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Post creates a draft post in contentDir named NNN-<slug>.md, where NNN
// is the next free ordinal. It returns the path of the new file.
func Post(contentDir, title string, now time.Time) (string, error) {
	slug := content.Slugify(title)
	if slug == "" {
		return "", errors.New("title must contain at least one letter or digit")
	}

	listing, err := content.NewDirStore(contentDir).List()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("list %s: %w", contentDir, err)
	}
	for _, filename := range listing {
		if content.SlugOf(filename) == slug {
			return "", fmt.Errorf("a post with slug %q already exists: %s", slug, filename)
		}
	}

	name := fmt.Sprintf("%03d-%s.md", content.NextOrdinal(listing), slug)
	outPath := filepath.Join(contentDir, name)

	data := PostData{Title: title, Date: now.Format("2006-01-02")}
	if err := render("templates/post.md.tmpl", outPath, data); err != nil {
		return "", err
	}
	return outPath, nil
}

func render(src, outPath string, data any) error {
	raw, err := Templates.ReadFile(src)
	if err != nil {
		return fmt.Errorf("read %s: %w", src, err)
	}

	tmpl, err := template.New(filepath.Base(src)).Funcs(funcs).Parse(string(raw))
	if err != nil {
		return fmt.Errorf("parse template %s: %w", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("execute template %s: %w", src, err)
	}
	return nil
}
