package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/eringen/folio/content"
)

// PlaceholderImage is shown on cards for posts without a thumbnail.
const PlaceholderImage = "https://generated.vusercontent.net/placeholder.svg"

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PostPath returns the site-relative URL of a post.
func PostPath(slug string) string {
	return "/" + url.PathEscape(slug) + "/"
}

// FormatDate renders an ISO date as "January 02, 2006". Unparseable dates
// are returned as given.
func FormatDate(date string) string {
	t, err := content.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("January 02, 2006")
}

// IsRemoteImage reports whether ref points outside the site.
func IsRemoteImage(ref string) bool {
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "data:")
}

// ThumbnailPath returns the site-relative path of the resized card
// thumbnail for slug.
func ThumbnailPath(slug string) string {
	return "/thumbs/" + url.PathEscape(slug) + ".jpg"
}

// ThumbnailURL picks the card image for a post: remote thumbnails are used
// as-is, local ones go through the resized /thumbs/ copy.
func ThumbnailURL(p content.Post) string {
	ref := p.Metadata.Thumbnail
	switch {
	case ref == "":
		return PlaceholderImage
	case IsRemoteImage(ref):
		return ref
	default:
		return ThumbnailPath(p.Slug)
	}
}

func shareImage(cfg SiteConfig, p content.Post) string {
	ref := p.Metadata.Portrait
	if ref == "" {
		ref = p.Metadata.Thumbnail
	}
	if ref == "" || IsRemoteImage(ref) {
		return ref
	}
	return strings.TrimSuffix(BuildURL(cfg.URL, ref), "/")
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      BuildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg SiteConfig, p content.Post) string {
	postURL := BuildURL(cfg.URL, p.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      p.Metadata.Title,
		"datePublished": p.Metadata.PublishDate,
		"url":           postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if p.Metadata.Description != "" {
		data["description"] = p.Metadata.Description
	}
	if img := shareImage(cfg, p); img != "" {
		data["image"] = img
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
