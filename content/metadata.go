package content

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// Placeholder values assigned to a post whose metadata failed to load.
const (
	PlaceholderTitle = "Untitled"
	PlaceholderDate  = "1970-01-01"
)

var yamlFrontMatter = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// dateLayouts are the ISO-8601 shapes accepted for publishDate.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Metadata is the front matter record of a post.
type Metadata struct {
	Title       string `yaml:"title"`
	PublishDate string `yaml:"publishDate"`
	Description string `yaml:"description,omitempty"`
	Draft       bool   `yaml:"draft,omitempty"`
	Thumbnail   string `yaml:"thumbnail,omitempty"`
	Portrait    string `yaml:"portrait,omitempty"`

	// Extra carries front matter keys this package does not interpret.
	Extra map[string]any `yaml:",inline"`
}

// PlaceholderMetadata returns the metadata used in place of a record that
// could not be loaded.
func PlaceholderMetadata() Metadata {
	return Metadata{Title: PlaceholderTitle, PublishDate: PlaceholderDate}
}

// Published returns the parsed publish date, or the zero time when the date
// does not parse.
func (m Metadata) Published() time.Time {
	t, err := ParseDate(m.PublishDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// LoadResult is the outcome of loading a post's metadata: either OK, with
// Metadata set, or LoadFailed, with Err set and Metadata holding placeholders.
type LoadResult struct {
	Metadata Metadata
	Err      error
}

// Failed reports whether the metadata could not be loaded.
func (r LoadResult) Failed() bool {
	return r.Err != nil
}

// ParseDate parses an ISO-8601 date or date-time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// ParseDocument splits src into front matter and body. The body is returned
// even when the metadata fails to load.
func ParseDocument(filename string, src []byte) (LoadResult, []byte) {
	var meta Metadata
	body, err := frontmatter.MustParse(bytes.NewReader(src), &meta, yamlFrontMatter)
	if err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			body = src
		}
		return failed(filename, err), body
	}
	if strings.TrimSpace(meta.Title) == "" {
		return failed(filename, errors.New("missing title")), body
	}
	if meta.PublishDate == "" {
		return failed(filename, errors.New("missing publishDate")), body
	}
	if _, err := ParseDate(meta.PublishDate); err != nil {
		return failed(filename, fmt.Errorf("publishDate: %w", err)), body
	}
	return LoadResult{Metadata: meta}, body
}

func failed(filename string, err error) LoadResult {
	return LoadResult{
		Metadata: PlaceholderMetadata(),
		Err:      &MetadataError{Filename: filename, Err: err},
	}
}
