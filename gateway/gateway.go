// Package gateway holds the outward-facing ports the editor consumes:
// flag icon resolution against Wikimedia Commons and wiki link
// resolution against Wikipedia. The parsing core never imports this
// package; it only produces the targets and codes these resolvers take.
package gateway

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// ResolvedLink is the outcome of a successful link resolution.
type ResolvedLink struct {
	// Title is the canonical page title, which may differ from the raw
	// target after redirects and normalization.
	Title string `json:"title"`
	URL   string `json:"url"`
}

// IconResolver turns a flag template code into an image URL. A nil
// result with a nil error means the icon is unknown and the caller
// should fall back to plain text.
type IconResolver interface {
	ResolveFlagIcon(ctx context.Context, templateName, code string, widthPx int, hostOverride string) (string, error)
}

// LinkResolver resolves a wiki link target to its canonical page.
type LinkResolver interface {
	Resolve(ctx context.Context, rawTarget, fragment, forcedLang, defaultLang string) (*ResolvedLink, error)
}

// BuildNaiveURL constructs a plausible article URL without consulting
// the wiki, used while resolution is pending or unavailable.
func BuildNaiveURL(rawTarget, fragment, forcedLang, defaultLang string) string {
	lang := forcedLang
	if lang == "" {
		lang = defaultLang
	}
	if lang == "" {
		lang = "en"
	}

	title := strings.ReplaceAll(strings.TrimSpace(rawTarget), " ", "_")
	u := fmt.Sprintf("https://%s.wikipedia.org/wiki/%s", lang, url.PathEscape(title))
	if fragment != "" {
		u += "#" + url.PathEscape(fragment)
	}
	return u
}
