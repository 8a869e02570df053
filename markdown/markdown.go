// Package markdown renders post bodies to HTML as templ components.
//
// Bodies are GitHub-flavoured Markdown. A small set of embedded components,
// written as self-closing tags on their own line, are expanded to HTML before
// rendering:
//
//	<StackBlitz id="react-hooks-demo" file="src/App.tsx" view="both" />
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"net/url"
	"regexp"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	reComponent = regexp.MustCompile(`(?m)^[ \t]*<([A-Z][A-Za-z0-9]*)((?:\s+[A-Za-z]+="[^"]*")*)\s*/>[ \t]*$`)
	reAttr      = regexp.MustCompile(`([A-Za-z]+)="([^"]*)"`)
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		// Components expand to raw HTML.
		gmhtml.WithUnsafe(),
	),
)

// Markdown returns a templ.Component that renders body as HTML.
func Markdown(body []byte) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return Render(w, body)
	})
}

// Render writes the HTML representation of body to w.
func Render(w io.Writer, body []byte) error {
	var buf bytes.Buffer
	if err := md.Convert(ExpandComponents(body), &buf); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// ExpandComponents replaces known component tags with their HTML. Unknown
// components are left untouched.
func ExpandComponents(body []byte) []byte {
	return reComponent.ReplaceAllFunc(body, func(match []byte) []byte {
		m := reComponent.FindSubmatch(match)
		attrs := map[string]string{}
		for _, a := range reAttr.FindAllSubmatch(m[2], -1) {
			attrs[string(a[1])] = string(a[2])
		}
		switch string(m[1]) {
		case "StackBlitz":
			out, ok := stackBlitz(attrs)
			if !ok {
				return match
			}
			return []byte("\n" + out + "\n")
		default:
			return match
		}
	})
}

// stackBlitz renders the StackBlitz embed. id is required; file defaults to
// index.html and view to preview.
func stackBlitz(attrs map[string]string) (string, bool) {
	id := attrs["id"]
	if id == "" {
		return "", false
	}
	file := attrs["file"]
	if file == "" {
		file = "index.html"
	}
	view := attrs["view"]
	switch view {
	case "preview", "editor", "both":
	default:
		view = "preview"
	}

	q := url.Values{}
	q.Set("embed", "1")
	q.Set("file", file)
	q.Set("view", view)
	src := "https://stackblitz.com/edit/" + url.PathEscape(id) + "?" + q.Encode()

	return fmt.Sprintf(
		`<div class="stackblitz w-full rounded-lg overflow-hidden"><iframe src="%s" class="w-full border-0 stackblitz-embed" allowfullscreen title="StackBlitz Embed"></iframe></div>`,
		html.EscapeString(src),
	), true
}
