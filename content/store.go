package content

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// DefaultExtensions are the content file extensions recognized when none are
// configured.
var DefaultExtensions = []string{".md", ".mdx"}

// Store is the read-only source of content files.
type Store interface {
	// List returns the content filenames in directory-listing order.
	List() ([]string, error)
	// Read returns the raw bytes of a file previously returned by List.
	Read(filename string) ([]byte, error)
}

// FSStore reads content files from the root of an fs.FS. It serves a
// directory on disk via os.DirFS as well as an embed.FS.
type FSStore struct {
	fsys       fs.FS
	extensions []string
}

// NewFSStore creates a store over fsys. When no extensions are given,
// DefaultExtensions is used.
func NewFSStore(fsys fs.FS, extensions ...string) *FSStore {
	exts := normalizeExtensions(extensions)
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	return &FSStore{fsys: fsys, extensions: exts}
}

// NewDirStore creates a store over the directory root on disk.
func NewDirStore(root string, extensions ...string) *FSStore {
	return NewFSStore(os.DirFS(root), extensions...)
}

// List returns the content files in the root, sorted by filename as
// fs.ReadDir does. Directories and dotfiles are skipped.
func (s *FSStore) List() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("list content: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsContentFile(e.Name(), s.extensions) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Read returns the contents of filename.
func (s *FSStore) Read(filename string) ([]byte, error) {
	if !fs.ValidPath(filename) || strings.Contains(filename, "/") {
		return nil, fmt.Errorf("read %s: %w", filename, fs.ErrInvalid)
	}
	return fs.ReadFile(s.fsys, filename)
}

// IsContentFile reports whether name is a visible file with one of the given
// extensions. Extension matching is case-insensitive.
func IsContentFile(name string, extensions []string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	ext := strings.ToLower(path.Ext(name))
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}
