// Package content discovers blog posts in a content store, derives their
// slugs from filenames and builds the ordered public index used by the
// listing and post pages.
//
// Filenames follow the pattern [ordinal-]slug.ext. The optional numeric
// prefix orders posts for previous/next navigation without leaking into
// URLs: "003-gamma.md" is served as "gamma".
package content

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// FailurePolicy decides what happens to a post whose metadata fails to load.
type FailurePolicy int

const (
	// IncludePlaceholder keeps the post as a non-draft with placeholder
	// metadata.
	IncludePlaceholder FailurePolicy = iota
	// ExcludeFailed hides the post from listings, navigation and direct access.
	ExcludeFailed
)

func (p FailurePolicy) String() string {
	switch p {
	case IncludePlaceholder:
		return "include"
	case ExcludeFailed:
		return "exclude"
	default:
		return fmt.Sprintf("FailurePolicy(%d)", int(p))
	}
}

// ParseFailurePolicy parses "include" or "exclude". An empty string selects
// IncludePlaceholder.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "include":
		return IncludePlaceholder, nil
	case "exclude":
		return ExcludeFailed, nil
	}
	return IncludePlaceholder, fmt.Errorf("unknown failure policy %q", s)
}

// PostSummary is an index entry without metadata.
type PostSummary struct {
	Filename string
	Slug     string
	Ordinal  int
}

// Post is a fully loaded post.
type Post struct {
	Slug     string
	Filename string
	Ordinal  int
	Metadata Metadata
	// LoadErr is set when Metadata holds placeholders because the real
	// record could not be loaded.
	LoadErr error
	// Body is the Markdown source following the front matter.
	Body []byte
}

// Adjacent holds the neighbours of a post in navigation order. Either side
// is nil at the boundaries.
type Adjacent struct {
	Previous *Post
	Next     *Post
}

// Index builds the public view of a Store. It keeps no state between calls:
// every operation enumerates the store afresh.
type Index struct {
	store  Store
	logger zerolog.Logger
	policy FailurePolicy
}

// IndexOption configures an Index.
type IndexOption func(*Index)

// WithLogger sets the logger used for per-file diagnostics.
func WithLogger(l zerolog.Logger) IndexOption {
	return func(x *Index) {
		x.logger = l
	}
}

// WithFailurePolicy sets how posts with unloadable metadata are treated.
func WithFailurePolicy(p FailurePolicy) IndexOption {
	return func(x *Index) {
		x.policy = p
	}
}

// NewIndex creates an Index over store.
func NewIndex(store Store, opts ...IndexOption) *Index {
	x := &Index{
		store:  store,
		logger: zerolog.Nop(),
		policy: IncludePlaceholder,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// ListAll returns every content file ordered by ordinal ascending. Files
// with equal ordinals keep their directory-listing order.
func (x *Index) ListAll() ([]PostSummary, error) {
	_, summaries, err := x.enumerate()
	return summaries, err
}

// ListPublished returns the visible posts, newest publish date first. Posts
// sharing a date keep their ordinal order.
func (x *Index) ListPublished() ([]Post, error) {
	posts, err := x.published()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Metadata.Published().After(posts[j].Metadata.Published())
	})
	return posts, nil
}

// GetAdjacent returns the previous and next visible posts around slug in
// ordinal order. Unknown slugs and enumeration failures yield an empty
// Adjacent.
func (x *Index) GetAdjacent(slug string) Adjacent {
	posts, err := x.published()
	if err != nil {
		x.logger.Error().Err(err).Str("slug", slug).Msg("adjacent lookup failed")
		return Adjacent{}
	}
	for i := range posts {
		if posts[i].Slug != slug {
			continue
		}
		var adj Adjacent
		if i > 0 {
			prev := posts[i-1]
			adj.Previous = &prev
		}
		if i < len(posts)-1 {
			next := posts[i+1]
			adj.Next = &next
		}
		return adj
	}
	return Adjacent{}
}

// GetOne loads the post addressed by slug. Drafts fail with
// ErrDraftAccessDenied; unknown slugs with ErrNotFound.
func (x *Index) GetOne(slug string) (Post, error) {
	names, err := x.store.List()
	if err != nil {
		return Post{}, fmt.Errorf("content index: %w", err)
	}
	filename, err := ResolveSlugToFilename(slug, names)
	if err != nil || !ValidSlug(slug) {
		return Post{}, ErrNotFound
	}
	post := x.load(PostSummary{
		Filename: filename,
		Slug:     slug,
		Ordinal:  ExtractOrdinal(filename),
	})
	if post.LoadErr != nil && x.policy == ExcludeFailed {
		return Post{}, fmt.Errorf("%w: %v", ErrNotFound, post.LoadErr)
	}
	if post.Metadata.Draft {
		return Post{}, ErrDraftAccessDenied
	}
	return post, nil
}

// Slugs returns the slugs of all visible posts for static pre-rendering.
func (x *Index) Slugs() ([]string, error) {
	posts, err := x.published()
	if err != nil {
		return nil, err
	}
	slugs := make([]string, len(posts))
	for i, p := range posts {
		slugs[i] = p.Slug
	}
	return slugs, nil
}

// Manifest maps each visible slug to the file it is served from.
func (x *Index) Manifest() (map[string]string, error) {
	posts, err := x.published()
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(posts))
	for _, p := range posts {
		m[p.Slug] = p.Filename
	}
	return m, nil
}

func (x *Index) enumerate() ([]string, []PostSummary, error) {
	names, err := x.store.List()
	if err != nil {
		return nil, nil, fmt.Errorf("content index: %w", err)
	}
	summaries := make([]PostSummary, len(names))
	for i, name := range names {
		summaries[i] = PostSummary{
			Filename: name,
			Slug:     SlugOf(name),
			Ordinal:  ExtractOrdinal(name),
		}
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Ordinal < summaries[j].Ordinal
	})
	return names, summaries, nil
}

// published returns the visible posts in ordinal order. A slug claimed by
// several files is served from the first one in listing order, matching
// ResolveSlugToFilename; the others are dropped. Files without a valid slug
// are skipped, as GetOne would reject them.
func (x *Index) published() ([]Post, error) {
	names, summaries, err := x.enumerate()
	if err != nil {
		return nil, err
	}
	owner := make(map[string]string, len(names))
	for _, name := range names {
		slug := SlugOf(name)
		if _, ok := owner[slug]; !ok {
			owner[slug] = name
		}
	}

	posts := make([]Post, 0, len(summaries))
	for _, s := range summaries {
		if !ValidSlug(s.Slug) {
			x.logger.Warn().
				Str("file", s.Filename).
				Str("slug", s.Slug).
				Msg("invalid slug, file skipped")
			continue
		}
		if owner[s.Slug] != s.Filename {
			x.logger.Warn().
				Str("file", s.Filename).
				Str("slug", s.Slug).
				Str("served_from", owner[s.Slug]).
				Msg("duplicate slug, file is shadowed")
			continue
		}
		post := x.load(s)
		if !x.visible(post) {
			continue
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (x *Index) visible(p Post) bool {
	if p.LoadErr != nil {
		return x.policy == IncludePlaceholder
	}
	return !p.Metadata.Draft
}

func (x *Index) load(s PostSummary) Post {
	var (
		res  LoadResult
		body []byte
	)
	src, err := x.store.Read(s.Filename)
	if err != nil {
		res = failed(s.Filename, err)
	} else {
		res, body = ParseDocument(s.Filename, src)
	}
	if res.Failed() {
		x.logger.Warn().
			Err(res.Err).
			Str("file", s.Filename).
			Stringer("policy", x.policy).
			Msg("metadata load failed")
	}
	return Post{
		Slug:     s.Slug,
		Filename: s.Filename,
		Ordinal:  s.Ordinal,
		Metadata: res.Metadata,
		LoadErr:  res.Err,
		Body:     body,
	}
}
