// Package views holds the page components of the site. Every page is a
// templ component wrapped in the shared layout, so handlers and the static
// builder render them the same way.
package views

import (
	"bytes"
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/markdown"
)

// Home renders the listing page. posts are shown in the order given.
func Home(cfg SiteConfig, posts []content.Post) templ.Component {
	meta := PageMeta{
		Title:       cfg.Name + " | Blog",
		Description: cfg.Description,
		URL:         BuildURL(cfg.URL),
		OGType:      "website",
	}
	return layout(page{Site: cfg, Meta: meta, JSONLD: WebsiteJsonLD(cfg)}, postList(posts))
}

// Post renders a post with links to its neighbours.
func Post(cfg SiteConfig, p content.Post, adj content.Adjacent) templ.Component {
	meta := PageMeta{
		Title:       cfg.Name + " | " + p.Metadata.Title,
		Description: p.Metadata.Description,
		URL:         BuildURL(cfg.URL, p.Slug),
		OGType:      "article",
		Image:       shareImage(cfg, p),
	}
	return layout(page{Site: cfg, Meta: meta, JSONLD: BlogPostingJsonLD(cfg, p)}, article(p, adj))
}

// NotFound renders the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	meta := PageMeta{Title: cfg.Name + " | Page Not Found", OGType: "website"}
	return layout(page{Site: cfg, Meta: meta}, statusMessage("404", "Page Not Found",
		"The page you&apos;re looking for doesn&apos;t exist or has been moved."))
}

// ServerError renders the 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	meta := PageMeta{Title: cfg.Name + " | Something went wrong", OGType: "website"}
	return layout(page{Site: cfg, Meta: meta}, statusMessage("500", "Something went wrong",
		"Please try again in a moment."))
}

func layout(p page, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		esc := html.EscapeString

		buf.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		buf.WriteString("  <meta charset=\"utf-8\">\n")
		buf.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		buf.WriteString("  <title>" + esc(p.Meta.Title) + "</title>\n")
		if p.Meta.Description != "" {
			buf.WriteString("  <meta name=\"description\" content=\"" + esc(p.Meta.Description) + "\">\n")
		}
		if p.Meta.URL != "" {
			buf.WriteString("  <link rel=\"canonical\" href=\"" + esc(p.Meta.URL) + "\">\n")
			buf.WriteString("  <meta property=\"og:url\" content=\"" + esc(p.Meta.URL) + "\">\n")
		}
		buf.WriteString("  <meta property=\"og:type\" content=\"" + esc(p.Meta.OGType) + "\">\n")
		buf.WriteString("  <meta property=\"og:title\" content=\"" + esc(p.Meta.Title) + "\">\n")
		buf.WriteString("  <meta name=\"twitter:card\" content=\"summary_large_image\">\n")
		buf.WriteString("  <meta name=\"twitter:title\" content=\"" + esc(p.Meta.Title) + "\">\n")
		if p.Meta.Description != "" {
			buf.WriteString("  <meta name=\"twitter:description\" content=\"" + esc(p.Meta.Description) + "\">\n")
		}
		if p.Meta.Image != "" {
			buf.WriteString("  <meta property=\"og:image\" content=\"" + esc(p.Meta.Image) + "\">\n")
		}
		buf.WriteString("  <link rel=\"icon\" href=\"/favicon.svg\" type=\"image/svg+xml\">\n")
		buf.WriteString("  <link rel=\"stylesheet\" href=\"/public/styles.css\">\n")
		if p.JSONLD != "" {
			// json.Marshal escapes <, > and &, so the block cannot close the script.
			buf.WriteString("  <script type=\"application/ld+json\">" + p.JSONLD + "</script>\n")
		}
		buf.WriteString("</head>\n<body class=\"antialiased\">\n  <div class=\"flex flex-col min-h-dvh\">\n")
		buf.WriteString("    <header class=\"bg-primary text-primary-foreground py-4 px-4 sm:px-6 fixed w-full z-50\">\n")
		buf.WriteString("      <div class=\"sm:container sm:mx-auto flex justify-between\">\n")
		buf.WriteString("        <a href=\"/\"><h1 class=\"text-2xl font-bold\">" + esc(p.Site.Name) + "</h1></a>\n")
		buf.WriteString("      </div>\n    </header>\n    <div class=\"mt-16\">\n")
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
		buf.Reset()

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		owner := p.Site.Author
		if owner == "" {
			owner = p.Site.Name
		}
		buf.WriteString("\n    </div>\n")
		buf.WriteString("    <footer class=\"bg-muted text-muted-foreground py-4 px-6\">\n")
		buf.WriteString("      <div class=\"container mx-auto text-center text-sm\">\n")
		buf.WriteString("        &copy; " + esc(owner) + ". All rights reserved.\n")
		buf.WriteString("      </div>\n    </footer>\n  </div>\n</body>\n</html>\n")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func postList(posts []content.Post) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		esc := html.EscapeString

		buf.WriteString("<main class=\"flex-1 py-12 px-4 md:px-6\">\n")
		buf.WriteString("  <div class=\"container mx-auto max-w-4xl\">\n")
		buf.WriteString("    <div class=\"grid gap-8 md:grid-cols-2\">\n")
		if len(posts) == 0 {
			buf.WriteString("      <p class=\"text-muted-foreground\">No posts yet.</p>\n")
		}
		for _, p := range posts {
			title := esc(p.Metadata.Title)
			href := esc(PostPath(p.Slug))
			buf.WriteString("      <article class=\"grid gap-4 max-w-[370px]\" data-slug=\"" + esc(p.Slug) + "\">\n")
			buf.WriteString("        <img width=\"370\" height=\"245\" src=\"" + esc(ThumbnailURL(p)) + "\" alt=\"" + title +
				"\" class=\"rounded-lg object-cover w-[370px] h-[245px]\" loading=\"lazy\">\n")
			buf.WriteString("        <a href=\"" + href + "\">\n")
			buf.WriteString("          <h2 class=\"text-xl font-bold\">" + title + "</h2>\n")
			buf.WriteString("          <p class=\"text-muted-foreground\">Posted on <time datetime=\"" + esc(p.Metadata.PublishDate) + "\">" +
				esc(FormatDate(p.Metadata.PublishDate)) + "</time></p>\n")
			buf.WriteString("        </a>\n")
			if p.Metadata.Description != "" {
				buf.WriteString("        <p class=\"text-muted-foreground\">" + esc(p.Metadata.Description) + "</p>\n")
			}
			buf.WriteString("        <a href=\"" + href + "\" class=\"text-primary hover:underline\">Read More</a>\n")
			buf.WriteString("      </article>\n")
		}
		buf.WriteString("    </div>\n  </div>\n</main>")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func article(p content.Post, adj content.Adjacent) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		esc := html.EscapeString

		buf.WriteString("<main id=\"main-content\" class=\"flex flex-col items-center px-6 py-12 sm:px-10 sm:py-24\">\n")
		buf.WriteString("  <div class=\"max-w-3xl w-full\">\n    <div class=\"mb-8\">\n")
		buf.WriteString("      <a href=\"/\" class=\"text-gray-600 hover:text-gray-900 transition-colors inline-flex items-center gap-2 rounded\">\n")
		buf.WriteString("        <span aria-hidden=\"true\">&larr;</span>\n        <span>Back to home</span>\n      </a>\n    </div>\n")
		buf.WriteString("    <article class=\"prose prose-lg\">\n      <div class=\"pb-8\">\n")
		buf.WriteString("        <time datetime=\"" + esc(p.Metadata.PublishDate) + "\" class=\"font-semibold text-lg block\">\n")
		buf.WriteString("          <span class=\"text-red-600 pr-1\">" + esc(FormatDate(p.Metadata.PublishDate)) + "</span>\n")
		buf.WriteString("        </time>\n      </div>\n      <div class=\"pb-10\">\n")
		buf.WriteString("        <h1 class=\"text-5xl sm:text-6xl font-black leading-12\">" + esc(p.Metadata.Title) + "</h1>\n")
		buf.WriteString("      </div>\n")
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
		buf.Reset()

		if err := markdown.Markdown(p.Body).Render(ctx, w); err != nil {
			return err
		}

		buf.WriteString("\n    </article>\n")
		if adj.Previous != nil || adj.Next != nil {
			buf.WriteString("    <nav class=\"mt-16 pt-8 border-t border-gray-200 flex flex-col sm:flex-row gap-4 sm:gap-8\" aria-label=\"Post navigation\">\n")
			if prev := adj.Previous; prev != nil {
				title := esc(prev.Metadata.Title)
				buf.WriteString("      <a href=\"" + esc(PostPath(prev.Slug)) + "\" rel=\"prev\" class=\"flex-1 group hover:bg-gray-50 p-4 rounded-lg transition-colors\" aria-label=\"Previous post: " + title + "\">\n")
				buf.WriteString("        <div class=\"flex items-center gap-2 text-sm text-gray-500 mb-2\"><span aria-hidden=\"true\">&larr;</span><span>Previous</span></div>\n")
				buf.WriteString("        <p class=\"font-semibold text-gray-900 group-hover:text-gray-700\">" + title + "</p>\n")
				buf.WriteString("      </a>\n")
			}
			if next := adj.Next; next != nil {
				title := esc(next.Metadata.Title)
				buf.WriteString("      <a href=\"" + esc(PostPath(next.Slug)) + "\" rel=\"next\" class=\"flex-1 group hover:bg-gray-50 p-4 rounded-lg transition-colors text-right sm:text-left\" aria-label=\"Next post: " + title + "\">\n")
				buf.WriteString("        <div class=\"flex items-center gap-2 text-sm text-gray-500 mb-2 justify-end sm:justify-start\"><span>Next</span><span aria-hidden=\"true\">&rarr;</span></div>\n")
				buf.WriteString("        <p class=\"font-semibold text-gray-900 group-hover:text-gray-700\">" + title + "</p>\n")
				buf.WriteString("      </a>\n")
			}
			buf.WriteString("    </nav>\n")
		}
		buf.WriteString("  </div>\n</main>")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// statusMessage is the body of the error pages. message is trusted HTML.
func statusMessage(code, heading, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<main id=\"main-content\" class=\"flex flex-col items-center justify-center min-h-screen px-6 py-12 sm:px-10\">\n")
		buf.WriteString("  <div class=\"max-w-3xl w-full text-center\">\n")
		buf.WriteString("    <h1 class=\"text-6xl sm:text-8xl font-black mb-4\">" + code + "</h1>\n")
		buf.WriteString("    <h2 class=\"text-2xl sm:text-3xl font-bold mb-6\">" + heading + "</h2>\n")
		buf.WriteString("    <p class=\"text-gray-600 text-lg mb-8\">" + message + "</p>\n")
		buf.WriteString("    <a href=\"/\" class=\"inline-flex items-center gap-2 hover:opacity-80 transition-opacity font-semibold rounded\">\n")
		buf.WriteString("      <span aria-hidden=\"true\">&larr;</span>\n      <span>Back to Home</span>\n    </a>\n")
		buf.WriteString("  </div>\n</main>")
		_, err := w.Write(buf.Bytes())
		return err
	})
}
