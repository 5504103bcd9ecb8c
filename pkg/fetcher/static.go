package fetcher

import (
	"context"
	"fmt"
	"mime"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/jmylchreest/readease/internal/logger"
)

// StaticConfig holds configuration for the static fetcher.
type StaticConfig struct {
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int64
}

// DefaultStaticConfig returns sensible defaults.
func DefaultStaticConfig() StaticConfig {
	return StaticConfig{
		UserAgent:   defaultUserAgent,
		Timeout:     30 * time.Second,
		MaxBodySize: 10 << 20,
	}
}

// Chrome user agent for better compatibility
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// StaticFetcher uses Colly for plain HTTP fetching.
type StaticFetcher struct {
	config StaticConfig
}

// NewStatic creates a new static fetcher.
func NewStatic(cfg StaticConfig) *StaticFetcher {
	def := DefaultStaticConfig()
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = def.MaxBodySize
	}
	return &StaticFetcher{config: cfg}
}

// Fetch retrieves a page using Colly. Non-2xx responses and non-HTML
// content types are errors.
func (f *StaticFetcher) Fetch(ctx context.Context, targetURL string, opts Options) (Content, error) {
	logger.Debug("static fetch starting", "url", targetURL)

	result := Content{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	limit := opts.MaxBodySize
	if limit == 0 {
		limit = f.config.MaxBodySize
	}

	userAgent := coalesce(opts.UserAgent, f.config.UserAgent)
	// One byte over the limit so an oversized body is detectable rather
	// than silently truncated.
	c := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.StdlibContext(ctx),
		colly.MaxBodySize(int(limit)+1),
	)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.config.Timeout
	}
	c.SetRequestTimeout(timeout)
	logger.Debug("static fetch configured", "user_agent", userAgent, "timeout", timeout, "max_body", limit)

	if len(opts.Headers) > 0 {
		c.OnRequest(func(r *colly.Request) {
			for k, v := range opts.Headers {
				r.Headers.Set(k, v)
			}
		})
	}

	var fetchErr error

	c.OnResponse(func(r *colly.Response) {
		result.StatusCode = r.StatusCode
		result.ContentType = r.Headers.Get("Content-Type")
		result.URL = r.Request.URL.String()
		result.HTML = string(r.Body)
		logger.Debug("static fetch response received",
			"status", r.StatusCode,
			"content_type", result.ContentType,
			"body_size", len(r.Body))
	})

	c.OnError(func(r *colly.Response, err error) {
		statusCode := 0
		if r != nil {
			statusCode = r.StatusCode
			result.StatusCode = statusCode
		}
		fetchErr = fmt.Errorf("fetch error: %w", err)
		logger.Debug("static fetch error", "status", statusCode, "error", err)
	})

	if err := c.Visit(targetURL); err != nil {
		logger.Debug("static fetch visit failed", "url", targetURL, "error", err)
		return result, fmt.Errorf("failed to visit URL: %w", err)
	}
	if fetchErr != nil {
		return result, fetchErr
	}

	if int64(len(result.HTML)) > limit {
		return result, fmt.Errorf("%s: %w", targetURL, ErrBodyTooLarge)
	}
	if !isHTML(result.ContentType) {
		return result, fmt.Errorf("%s (%s): %w", targetURL, result.ContentType, ErrNotHTML)
	}

	if result.HTML != "" {
		if err := f.parseTitle(&result); err != nil {
			return result, fmt.Errorf("failed to parse content: %w", err)
		}
	}

	logger.Debug("static fetch complete", "url", result.URL, "title", result.Title)
	return result, nil
}

func (f *StaticFetcher) parseTitle(content *Content) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content.HTML))
	if err != nil {
		return err
	}
	content.Title = strings.TrimSpace(doc.Find("title").First().Text())
	return nil
}

// Close releases resources.
func (f *StaticFetcher) Close() error {
	return nil
}

// Type returns the fetcher type.
func (f *StaticFetcher) Type() string {
	return "static"
}

// isHTML accepts an empty content type; servers serving local files often
// omit it.
func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// coalesce returns the first non-empty string.
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
