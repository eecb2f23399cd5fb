package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultCommonsHost = "commons.wikimedia.org"
	defaultTimeout     = 10 * time.Second
)

// Client resolves icons and links over HTTP against live Wikimedia
// hosts. The zero value is not usable; construct it with NewClient.
type Client struct {
	httpClient *http.Client

	// wikiBase overrides the "https://<lang>.wikipedia.org" pattern in
	// tests; empty means live Wikipedia.
	wikiBase string
	// commonsBase overrides the Commons host in tests.
	commonsBase string
}

func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ResolveFlagIcon builds the Commons file-path URL for a flag code and
// verifies the file exists. An unknown code yields ("", nil) so the
// caller can fall back to plain text.
func (c *Client) ResolveFlagIcon(ctx context.Context, templateName, code string, widthPx int, hostOverride string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", nil
	}

	host := defaultCommonsHost
	if hostOverride != "" {
		host = hostOverride
	}

	fileName := fmt.Sprintf("Flag_of_%s.svg", strings.ReplaceAll(code, " ", "_"))
	iconURL := fmt.Sprintf("https://%s/wiki/Special:FilePath/%s", host, url.PathEscape(fileName))
	if widthPx > 0 {
		iconURL += fmt.Sprintf("?width=%d", widthPx)
	}
	if c.commonsBase != "" {
		iconURL = c.commonsBase + "/wiki/Special:FilePath/" + url.PathEscape(fileName)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, iconURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to check icon %q: %w", code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("icon lookup for %q returned status %d", code, resp.StatusCode)
	}
	return iconURL, nil
}

// pageSummary is the slice of the Wikipedia REST summary payload we
// actually consume.
type pageSummary struct {
	Title       string `json:"title"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// Resolve looks a target up through the REST summary endpoint. A
// missing page yields (nil, nil); the caller decides whether to use
// BuildNaiveURL instead.
func (c *Client) Resolve(ctx context.Context, rawTarget, fragment, forcedLang, defaultLang string) (*ResolvedLink, error) {
	target := strings.TrimSpace(rawTarget)
	if target == "" {
		return nil, nil
	}

	lang := forcedLang
	if lang == "" {
		lang = defaultLang
	}
	if lang == "" {
		lang = "en"
	}

	base := c.wikiBase
	if base == "" {
		base = fmt.Sprintf("https://%s.wikipedia.org", lang)
	}

	title := strings.ReplaceAll(target, " ", "_")
	reqURL := base + "/api/rest_v1/page/summary/" + url.PathEscape(title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve link %q: %w", rawTarget, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("link lookup for %q returned status %d", rawTarget, resp.StatusCode)
	}

	var summary pageSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, fmt.Errorf("failed to parse summary json: %w", err)
	}

	link := &ResolvedLink{
		Title: summary.Title,
		URL:   summary.ContentURLs.Desktop.Page,
	}
	if link.URL == "" {
		link.URL = BuildNaiveURL(summary.Title, "", lang, lang)
	}
	if fragment != "" {
		link.URL += "#" + url.PathEscape(fragment)
	}
	return link, nil
}
