// Package scraper fetches HTML pages so they can be processed like pasted
// snippets.
//
// It can return either the whole page or only its main content container,
// which is usually what a generated article lives in.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Config controls how pages are fetched.
type Config struct {
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int64
}

// DefaultConfig returns the settings used when none are given.
func DefaultConfig() *Config {
	return &Config{
		UserAgent:   "Mozilla/5.0 (compatible; ukify/1.0)",
		Timeout:     10 * time.Second,
		MaxBodySize: 16 << 20,
	}
}

// ErrNoMainContent is returned when a page has neither a main content
// container nor a body.
var ErrNoMainContent = errors.New("could not find main content")

// mainContentSelector lists the containers that usually hold a page's
// article, in no particular priority; the first in document order wins.
const mainContentSelector = "main, article, #content, #main"

// Scraper fetches single pages over HTTP.
type Scraper struct {
	Config *Config
	client *http.Client
}

// New returns a Scraper. A nil config means DefaultConfig.
func New(config *Config) *Scraper {
	if config == nil {
		config = DefaultConfig()
	}
	return &Scraper{
		Config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// Fetch downloads the page at pageURL. Non-200 responses and content that
// is not text/html are errors.
func (s *Scraper) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.Config.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	switch ct := resp.Header.Get("Content-Type"); {
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	case !strings.Contains(ct, "text/html"):
		return "", fmt.Errorf("not HTML content: %q", ct)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, s.Config.MaxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read page: %w", err)
	}
	return string(body), nil
}

// MainContent returns the inner HTML of the page's <main>, <article>,
// #content or #main element, falling back to <body>.
func MainContent(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	sel := doc.Find(mainContentSelector).First()
	if sel.Length() == 0 {
		sel = doc.Find("body").First()
	}
	if sel.Length() == 0 {
		return "", ErrNoMainContent
	}

	inner, err := sel.Html()
	if err != nil {
		return "", fmt.Errorf("failed to render content: %w", err)
	}
	return inner, nil
}

// IsURL reports whether s is an http(s) URL.
func IsURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
