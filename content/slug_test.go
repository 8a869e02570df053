package content

import (
	"errors"
	"testing"
)

func TestStripPrefix(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"zero padded prefix", "007-my-post", "my-post"},
		{"no prefix", "my-post", "my-post"},
		{"long prefix", "12345-deep-dive", "deep-dive"},
		{"digits without hyphen", "2024", "2024"},
		{"digits inside slug", "react-18-hooks", "react-18-hooks"},
		{"only first prefix removed", "001-002-nested", "002-nested"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripPrefix(tt.input); got != tt.want {
				t.Errorf("StripPrefix(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripPrefixIdempotent(t *testing.T) {
	for _, input := range []string{"007-my-post", "my-post", "1-a", "99-"} {
		once := StripPrefix(input)
		if twice := StripPrefix(once); twice != once {
			t.Errorf("StripPrefix(StripPrefix(%q)) = %q, want %q", input, twice, once)
		}
	}

	// A slug that itself starts with digits and a hyphen loses one prefix
	// per call. "001-002-nested" is served as "002-nested".
	once := StripPrefix("001-002-nested")
	if twice := StripPrefix(once); once != "002-nested" || twice != "nested" {
		t.Errorf("nested prefix: once = %q, twice = %q", once, twice)
	}
}

func TestValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"my-post", true},
		{"react-18", true},
		{"002-nested", true},
		{"", false},
		{".", false},
		{"..", false},
		{"My-Post", false},
		{"a/b", false},
		{"with space", false},
		{"under_score", false},
	}
	for _, tt := range tests {
		if got := ValidSlug(tt.slug); got != tt.want {
			t.Errorf("ValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
		}
	}
}

func TestExtractOrdinal(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"007-my-post", 7},
		{"my-post", 0},
		{"001-unit-testing-react-hooks.mdx", 1},
		{"120-large.md", 120},
		{"2024", 0},
		{"99999999999999999999999-overflow", 0},
	}
	for _, tt := range tests {
		if got := ExtractOrdinal(tt.input); got != tt.want {
			t.Errorf("ExtractOrdinal(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestSlugOf(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"007-my-post.mdx", "my-post"},
		{"my-post.md", "my-post"},
		{"003-gamma.mdx", "gamma"},
	}
	for _, tt := range tests {
		if got := SlugOf(tt.filename); got != tt.want {
			t.Errorf("SlugOf(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestResolveSlugToFilenameRoundTrip(t *testing.T) {
	listing := []string{"001-alpha.mdx", "002-beta.mdx", "gamma.md", "010-delta.mdx"}
	for _, f := range listing {
		got, err := ResolveSlugToFilename(StripPrefix(StripExt(f)), listing)
		if err != nil {
			t.Fatalf("ResolveSlugToFilename for %q: %v", f, err)
		}
		if got != f {
			t.Errorf("ResolveSlugToFilename(%q) = %q, want %q", SlugOf(f), got, f)
		}
	}
}

func TestResolveSlugToFilenameFirstMatchWins(t *testing.T) {
	listing := []string{"001-dup.md", "002-dup.md"}
	got, err := ResolveSlugToFilename("dup", listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "001-dup.md" {
		t.Errorf("got %q, want %q", got, "001-dup.md")
	}
}

func TestResolveSlugToFilenameNotFound(t *testing.T) {
	_, err := ResolveSlugToFilename("missing", []string{"001-alpha.md"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	_, err = ResolveSlugToFilename("001-alpha", []string{"001-alpha.md"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("prefixed slug should not resolve, got %v", err)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Testing with Vitest!  ", "testing-with-vitest"},
		{"React & TypeScript: 2024", "react-typescript-2024"},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNextOrdinal(t *testing.T) {
	if got := NextOrdinal(nil); got != 1 {
		t.Errorf("NextOrdinal(nil) = %d, want 1", got)
	}
	listing := []string{"002-b.md", "010-j.mdx", "about.md"}
	if got := NextOrdinal(listing); got != 11 {
		t.Errorf("NextOrdinal = %d, want 11", got)
	}
}
