package content

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no content file resolves to a slug.
var ErrNotFound = errors.New("content: post not found")

// ErrDraftAccessDenied is returned when a slug resolves to a draft. It wraps
// ErrNotFound so callers that only check for not-found treat drafts the same.
var ErrDraftAccessDenied = fmt.Errorf("%w: post is a draft", ErrNotFound)

// MetadataError reports why the metadata of a content file could not be loaded.
type MetadataError struct {
	Filename string
	Err      error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("content: load metadata for %s: %v", e.Filename, e.Err)
}

func (e *MetadataError) Unwrap() error {
	return e.Err
}
