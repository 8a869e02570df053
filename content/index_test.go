package content

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
)

func post(title, date string, draft bool) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(fmt.Sprintf(
		"---\ntitle: %s\npublishDate: %s\ndraft: %t\n---\nBody of %s.\n", title, date, draft, title,
	))}
}

// scenarioFS is the alpha/beta/gamma example: beta is a draft and gamma is
// newer than alpha.
func scenarioFS() fstest.MapFS {
	return fstest.MapFS{
		"001-alpha.mdx": post("Alpha", "2024-01-01", false),
		"002-beta.mdx":  post("Beta", "2024-03-01", true),
		"003-gamma.mdx": post("Gamma", "2024-02-01", false),
	}
}

func slugsOf(posts []Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Slug
	}
	return out
}

func TestListAllOrdersByOrdinal(t *testing.T) {
	fsys := fstest.MapFS{
		"010-last.md":   post("Last", "2024-01-01", false),
		"002-second.md": post("Second", "2024-01-01", false),
		"intro.md":      post("Intro", "2024-01-01", false),
		"001-first.md":  post("First", "2024-01-01", false),
		"notes.txt":     &fstest.MapFile{Data: []byte("ignored")},
		".hidden.md":    post("Hidden", "2024-01-01", false),
	}
	x := NewIndex(NewFSStore(fsys))

	got, err := x.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	want := []PostSummary{
		{Filename: "intro.md", Slug: "intro", Ordinal: 0},
		{Filename: "001-first.md", Slug: "first", Ordinal: 1},
		{Filename: "002-second.md", Slug: "second", Ordinal: 2},
		{Filename: "010-last.md", Slug: "last", Ordinal: 10},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListAll = %+v, want %+v", got, want)
	}
}

func TestListAllStableTies(t *testing.T) {
	fsys := fstest.MapFS{
		"b.md": post("B", "2024-01-01", false),
		"a.md": post("A", "2024-01-01", false),
		"c.md": post("C", "2024-01-01", false),
	}
	got, err := NewIndex(NewFSStore(fsys)).ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	// fs.ReadDir lists by name, so equal ordinals keep a, b, c.
	var slugs []string
	for _, s := range got {
		slugs = append(slugs, s.Slug)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(slugs, want) {
		t.Errorf("slugs = %v, want %v", slugs, want)
	}
}

func TestListPublishedScenario(t *testing.T) {
	x := NewIndex(NewFSStore(scenarioFS()))
	posts, err := x.ListPublished()
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if got, want := slugsOf(posts), []string{"gamma", "alpha"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ListPublished = %v, want %v", got, want)
	}
	for _, p := range posts {
		if p.Metadata.Draft {
			t.Errorf("draft %q in published list", p.Slug)
		}
	}
}

func TestListPublishedDateDescending(t *testing.T) {
	fsys := fstest.MapFS{
		"001-a.md": post("A", "2023-05-01", false),
		"002-b.md": post("B", "2024-05-01", false),
		"003-c.md": post("C", "2022-05-01", false),
		"004-d.md": post("D", "2024-05-01T12:00:00Z", false),
		"005-e.md": post("E", "2024-05-01", true),
	}
	posts, err := NewIndex(NewFSStore(fsys)).ListPublished()
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	for i := 1; i < len(posts); i++ {
		prev, cur := posts[i-1].Metadata.Published(), posts[i].Metadata.Published()
		if cur.After(prev) {
			t.Errorf("%s (%s) listed after older %s (%s)", posts[i].Slug, cur, posts[i-1].Slug, prev)
		}
	}
	if got, want := slugsOf(posts), []string{"d", "b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ListPublished = %v, want %v", got, want)
	}
}

func TestListPublishedTiesKeepOrdinalOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"003-c.md": post("C", "2024-01-01", false),
		"001-a.md": post("A", "2024-01-01", false),
		"002-b.md": post("B", "2024-01-01", false),
	}
	posts, err := NewIndex(NewFSStore(fsys)).ListPublished()
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if got, want := slugsOf(posts), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ListPublished = %v, want %v", got, want)
	}
}

func TestFailurePolicy(t *testing.T) {
	fsys := fstest.MapFS{
		"001-good.md":   post("Good", "2024-01-01", false),
		"002-broken.md": &fstest.MapFile{Data: []byte("no front matter here")},
	}

	t.Run("include placeholder", func(t *testing.T) {
		x := NewIndex(NewFSStore(fsys))
		posts, err := x.ListPublished()
		if err != nil {
			t.Fatalf("ListPublished: %v", err)
		}
		if got, want := slugsOf(posts), []string{"good", "broken"}; !reflect.DeepEqual(got, want) {
			t.Fatalf("ListPublished = %v, want %v", got, want)
		}
		broken := posts[1]
		if broken.LoadErr == nil {
			t.Error("LoadErr should be set")
		}
		if broken.Metadata.Title != PlaceholderTitle || broken.Metadata.PublishDate != PlaceholderDate {
			t.Errorf("Metadata = %+v, want placeholders", broken.Metadata)
		}
		if _, err := x.GetOne("broken"); err != nil {
			t.Errorf("GetOne(broken) = %v, want success", err)
		}
	})

	t.Run("exclude failed", func(t *testing.T) {
		x := NewIndex(NewFSStore(fsys), WithFailurePolicy(ExcludeFailed))
		posts, err := x.ListPublished()
		if err != nil {
			t.Fatalf("ListPublished: %v", err)
		}
		if got, want := slugsOf(posts), []string{"good"}; !reflect.DeepEqual(got, want) {
			t.Errorf("ListPublished = %v, want %v", got, want)
		}
		if _, err := x.GetOne("broken"); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetOne(broken) = %v, want ErrNotFound", err)
		}
		if adj := x.GetAdjacent("good"); adj.Next != nil {
			t.Errorf("Next = %q, want nil", adj.Next.Slug)
		}
	})
}

func TestGetAdjacent(t *testing.T) {
	fsys := fstest.MapFS{
		"001-one.md":   post("One", "2024-01-03", false),
		"002-two.md":   post("Two", "2024-01-01", false),
		"003-three.md": post("Three", "2024-01-02", false),
	}
	x := NewIndex(NewFSStore(fsys))

	first := x.GetAdjacent("one")
	if first.Previous != nil {
		t.Errorf("first post Previous = %q, want nil", first.Previous.Slug)
	}
	if first.Next == nil || first.Next.Slug != "two" {
		t.Errorf("first post Next = %v, want two", first.Next)
	}

	mid := x.GetAdjacent("two")
	if mid.Previous == nil || mid.Previous.Slug != "one" {
		t.Errorf("middle Previous = %v, want one", mid.Previous)
	}
	if mid.Next == nil || mid.Next.Slug != "three" {
		t.Errorf("middle Next = %v, want three", mid.Next)
	}
	if mid.Next != nil && mid.Next.Metadata.Title != "Three" {
		t.Errorf("Next title = %q, want %q", mid.Next.Metadata.Title, "Three")
	}

	last := x.GetAdjacent("three")
	if last.Next != nil {
		t.Errorf("last post Next = %q, want nil", last.Next.Slug)
	}

	missing := x.GetAdjacent("nope")
	if missing.Previous != nil || missing.Next != nil {
		t.Errorf("unknown slug Adjacent = %+v, want empty", missing)
	}
}

func TestGetAdjacentSkipsDrafts(t *testing.T) {
	x := NewIndex(NewFSStore(scenarioFS()))
	adj := x.GetAdjacent("alpha")
	if adj.Previous != nil {
		t.Errorf("Previous = %q, want nil", adj.Previous.Slug)
	}
	if adj.Next == nil || adj.Next.Slug != "gamma" {
		t.Errorf("Next = %v, want gamma", adj.Next)
	}
	if got := x.GetAdjacent("beta"); got.Previous != nil || got.Next != nil {
		t.Errorf("draft Adjacent = %+v, want empty", got)
	}
}

func TestGetOne(t *testing.T) {
	x := NewIndex(NewFSStore(scenarioFS()))

	p, err := x.GetOne("gamma")
	if err != nil {
		t.Fatalf("GetOne(gamma): %v", err)
	}
	if p.Filename != "003-gamma.mdx" || p.Ordinal != 3 {
		t.Errorf("GetOne(gamma) = %s/%d, want 003-gamma.mdx/3", p.Filename, p.Ordinal)
	}
	if p.Metadata.Title != "Gamma" {
		t.Errorf("Title = %q, want %q", p.Metadata.Title, "Gamma")
	}
	if strings.TrimSpace(string(p.Body)) != "Body of Gamma." {
		t.Errorf("Body = %q", p.Body)
	}

	_, err = x.GetOne("beta")
	if !errors.Is(err, ErrDraftAccessDenied) {
		t.Errorf("GetOne(beta) = %v, want ErrDraftAccessDenied", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("draft error should also match ErrNotFound")
	}

	for _, slug := range []string{"missing", "", "003-gamma", "../003-gamma.mdx"} {
		if _, err := x.GetOne(slug); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetOne(%q) = %v, want ErrNotFound", slug, err)
		}
	}
}

func TestDuplicateSlugsServeFirstListed(t *testing.T) {
	fsys := fstest.MapFS{
		"001-dup.md":  post("Old", "2024-01-01", false),
		"009-dup.md":  post("New", "2024-06-01", false),
		"005-solo.md": post("Solo", "2024-02-01", false),
	}
	x := NewIndex(NewFSStore(fsys))

	posts, err := x.ListPublished()
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	if got, want := slugsOf(posts), []string{"solo", "dup"}; !reflect.DeepEqual(got, want) {
		t.Errorf("ListPublished = %v, want %v", got, want)
	}
	p, err := x.GetOne("dup")
	if err != nil {
		t.Fatalf("GetOne(dup): %v", err)
	}
	if p.Filename != "001-dup.md" {
		t.Errorf("GetOne(dup) served %q, want 001-dup.md", p.Filename)
	}
}

func TestInvalidSlugsAreSkipped(t *testing.T) {
	fsys := scenarioFS()
	fsys["007-.md"] = post("Empty", "2024-04-01", false)
	fsys["1-..md"] = post("Dot", "2024-04-01", false)
	fsys["1-...md"] = post("DotDot", "2024-04-01", false)
	fsys["008-Upper.md"] = post("Upper", "2024-04-01", false)
	x := NewIndex(NewFSStore(fsys))

	slugs, err := x.Slugs()
	if err != nil {
		t.Fatalf("Slugs: %v", err)
	}
	if want := []string{"alpha", "gamma"}; !reflect.DeepEqual(slugs, want) {
		t.Errorf("Slugs = %v, want %v", slugs, want)
	}
	if adj := x.GetAdjacent("alpha"); adj.Next == nil || adj.Next.Slug != "gamma" {
		t.Errorf("alpha.Next = %+v, want gamma", adj.Next)
	}
	for _, slug := range []string{"", ".", "..", "Upper"} {
		if _, err := x.GetOne(slug); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetOne(%q) = %v, want ErrNotFound", slug, err)
		}
	}

	all, err := x.ListAll()
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 7 {
		t.Errorf("ListAll returned %d files, want all 7", len(all))
	}
}

func TestSlugsAndManifest(t *testing.T) {
	x := NewIndex(NewFSStore(scenarioFS()))

	slugs, err := x.Slugs()
	if err != nil {
		t.Fatalf("Slugs: %v", err)
	}
	if want := []string{"alpha", "gamma"}; !reflect.DeepEqual(slugs, want) {
		t.Errorf("Slugs = %v, want %v", slugs, want)
	}

	m, err := x.Manifest()
	if err != nil {
		t.Fatalf("Manifest: %v", err)
	}
	want := map[string]string{"alpha": "001-alpha.mdx", "gamma": "003-gamma.mdx"}
	if !reflect.DeepEqual(m, want) {
		t.Errorf("Manifest = %v, want %v", m, want)
	}
}

func TestListingIsIdempotent(t *testing.T) {
	x := NewIndex(NewFSStore(scenarioFS()))
	a1, _ := x.ListAll()
	a2, _ := x.ListAll()
	if !reflect.DeepEqual(a1, a2) {
		t.Errorf("ListAll not idempotent: %v vs %v", a1, a2)
	}
	p1, _ := x.ListPublished()
	p2, _ := x.ListPublished()
	if !reflect.DeepEqual(p1, p2) {
		t.Errorf("ListPublished not idempotent")
	}
}

type failingStore struct{}

func (failingStore) List() ([]string, error)     { return nil, errors.New("disk gone") }
func (failingStore) Read(string) ([]byte, error) { return nil, errors.New("disk gone") }

func TestStoreErrors(t *testing.T) {
	x := NewIndex(failingStore{})
	if _, err := x.ListAll(); err == nil {
		t.Error("ListAll should propagate store errors")
	}
	if _, err := x.ListPublished(); err == nil {
		t.Error("ListPublished should propagate store errors")
	}
	if adj := x.GetAdjacent("any"); adj.Previous != nil || adj.Next != nil {
		t.Errorf("GetAdjacent = %+v, want empty", adj)
	}
	if _, err := x.GetOne("any"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("GetOne = %v, want a store error", err)
	}
}

func TestParseFailurePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    FailurePolicy
		wantErr bool
	}{
		{"", IncludePlaceholder, false},
		{"include", IncludePlaceholder, false},
		{"Exclude", ExcludeFailed, false},
		{"drop", IncludePlaceholder, true},
	}
	for _, tt := range tests {
		got, err := ParseFailurePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFailurePolicy(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFailurePolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
