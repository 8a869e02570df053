package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func render(t *testing.T, md string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, []byte(md)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf.String()
}

func TestRenderBasics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"heading with id", "## Getting Started", `<h2 id="getting-started">Getting Started</h2>`},
		{"bold", "**bold**", "<strong>bold</strong>"},
		{"inline code", "use `go test`", "<code>go test</code>"},
		{"link", "[docs](https://go.dev)", `<a href="https://go.dev">docs</a>`},
		{"strikethrough", "~~old~~", "<del>old</del>"},
		{"fenced code", "```go\nfmt.Println()\n```", `<code class="language-go">`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(t, tt.input); !strings.Contains(got, tt.want) {
				t.Errorf("Render(%q) = %q, want it to contain %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderTable(t *testing.T) {
	got := render(t, "| a | b |\n|---|---|\n| 1 | 2 |\n")
	if !strings.Contains(got, "<table>") || !strings.Contains(got, "<td>1</td>") {
		t.Errorf("table not rendered: %q", got)
	}
}

func TestStackBlitzDefaults(t *testing.T) {
	got := render(t, "Intro\n\n<StackBlitz id=\"my-demo\" />\n\nOutro")
	want := `src="https://stackblitz.com/edit/my-demo?embed=1&amp;file=index.html&amp;view=preview"`
	if !strings.Contains(got, want) {
		t.Errorf("got %q, want it to contain %q", got, want)
	}
	if !strings.Contains(got, "<p>Outro</p>") {
		t.Errorf("text after component lost: %q", got)
	}
}

func TestStackBlitzAttributes(t *testing.T) {
	out := string(ExpandComponents([]byte(`<StackBlitz id="demo" file="src/App.tsx" view="both" />`)))
	if !strings.Contains(out, "file=src%2FApp.tsx") {
		t.Errorf("file not encoded: %q", out)
	}
	if !strings.Contains(out, "view=both") {
		t.Errorf("view not kept: %q", out)
	}

	out = string(ExpandComponents([]byte(`<StackBlitz id="demo" view="fullscreen" />`)))
	if !strings.Contains(out, "view=preview") {
		t.Errorf("unknown view should fall back to preview: %q", out)
	}
}

func TestExpandComponentsLeavesOthers(t *testing.T) {
	tests := []string{
		`<StackBlitz file="x" />`,
		`<Unknown id="x" />`,
		`Text with <StackBlitz id="x" /> inline`,
	}
	for _, input := range tests {
		if got := string(ExpandComponents([]byte(input))); got != input {
			t.Errorf("ExpandComponents(%q) = %q, want unchanged", input, got)
		}
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown([]byte("# Title")).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), `<h1 id="title">Title</h1>`) {
		t.Errorf("got %q", buf.String())
	}
}
