// Package fetcher retrieves the raw HTML of a page to be exported.
// Implement the Fetcher interface to plug in other transports, such as a
// headless browser for script-rendered pages.
package fetcher

import (
	"context"
	"errors"
	"time"
)

// Fetcher abstracts page fetching strategies.
type Fetcher interface {
	// Fetch retrieves page content from a URL.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Close releases any resources (browser instances, etc.).
	Close() error

	// Type returns a string identifying the fetcher type (e.g., "static", "dynamic").
	Type() string
}

// Options controls fetching behavior.
type Options struct {
	UserAgent       string
	Timeout         time.Duration
	WaitForSelector string        // CSS selector to wait for (dynamic fetchers)
	WaitDuration    time.Duration // Additional wait after load
	Headers         map[string]string
	MaxBodySize     int64 // 0 = fetcher default
}

// Content represents fetched page data.
type Content struct {
	URL         string
	HTML        string
	Title       string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

var (
	// ErrBodyTooLarge indicates the response exceeded Options.MaxBodySize.
	ErrBodyTooLarge = errors.New("response body exceeds size limit")
	// ErrNotHTML indicates the response content type is not an HTML document.
	ErrNotHTML = errors.New("response is not html")
)
