package content

import (
	"path"
	"regexp"
	"strconv"
	"strings"
)

var (
	ordinalPrefix = regexp.MustCompile(`^(\d+)-`)
	slugPattern   = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// StripPrefix removes a leading ordinal prefix such as "007-" from name.
// Names without a prefix are returned unchanged. Only one prefix is removed,
// so "001-002-nested" becomes "002-nested".
func StripPrefix(name string) string {
	return ordinalPrefix.ReplaceAllString(name, "")
}

// ExtractOrdinal returns the numeric prefix of name, or 0 when there is none.
// Example: "007-my-post" -> 7
func ExtractOrdinal(name string) int {
	m := ordinalPrefix.FindStringSubmatch(name)
	if len(m) < 2 {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// StripExt removes the file extension from filename.
func StripExt(filename string) string {
	return strings.TrimSuffix(filename, path.Ext(filename))
}

// SlugOf derives the public slug for a content filename.
// Example: "003-gamma.mdx" -> "gamma"
func SlugOf(filename string) string {
	return StripPrefix(StripExt(filename))
}

// ValidSlug reports whether slug is non-empty and made only of lowercase
// letters, digits and hyphens. Files whose slug fails this check are never
// served.
func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

// ResolveSlugToFilename returns the first entry in listing whose slug equals
// slug. It never touches file contents.
func ResolveSlugToFilename(slug string, listing []string) (string, error) {
	for _, filename := range listing {
		if SlugOf(filename) == slug {
			return filename, nil
		}
	}
	return "", ErrNotFound
}

// Slugify converts a title to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// NextOrdinal returns one more than the highest ordinal prefix in listing.
func NextOrdinal(listing []string) int {
	highest := 0
	for _, filename := range listing {
		if n := ExtractOrdinal(filename); n > highest {
			highest = n
		}
	}
	return highest + 1
}
