// Package readease provides the public API for turning a web page into
// clipboard-ready HTML, plain text and Markdown.
package readease

import (
	"time"

	"github.com/jmylchreest/readease/pkg/export"
	"github.com/jmylchreest/readease/pkg/extract"
	"github.com/jmylchreest/readease/pkg/fetcher"
	"github.com/jmylchreest/readease/pkg/markdown"
	"github.com/jmylchreest/readease/pkg/sanitize"
)

// Config holds all Readease configuration.
type Config struct {
	// Fetch settings
	UserAgent    string
	Timeout      time.Duration
	MaxInputSize int64 // bytes; 0 = unlimited

	// Export settings
	Export export.Options

	// Fetcher overrides the default static fetcher.
	Fetcher fetcher.Fetcher
	// Extractor overrides the default Readability -> body chain.
	Extractor extract.Extractor
}

// Chrome user agent for better compatibility
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultMaxInputSize bounds documents handed to the extractor.
const DefaultMaxInputSize = 10 << 20

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent:    defaultUserAgent,
		Timeout:      30 * time.Second,
		MaxInputSize: DefaultMaxInputSize,
		Export:       export.DefaultOptions(),
	}
}

// Option configures Readease.
type Option func(*Config)

// WithUserAgent sets the HTTP user agent.
func WithUserAgent(ua string) Option {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithMaxInputSize limits the size of fetched or supplied documents.
func WithMaxInputSize(n int64) Option {
	return func(c *Config) {
		c.MaxInputSize = n
	}
}

// WithFormat selects the artifact used for clipboard fallbacks and raw output.
func WithFormat(f export.Format) Option {
	return func(c *Config) {
		c.Export.Format = f
	}
}

// WithMarkdown replaces the Markdown serializer options.
func WithMarkdown(opts markdown.Options) Option {
	return func(c *Config) {
		c.Export.Markdown = opts
	}
}

// WithBaseURL overrides the page URL used to absolutize links and images.
func WithBaseURL(u string) Option {
	return func(c *Config) {
		c.Export.Markdown.BaseURL = u
	}
}

// WithSanitizeConfig replaces the sanitizer configuration.
func WithSanitizeConfig(cfg *sanitize.Config) Option {
	return func(c *Config) {
		c.Export.Sanitize = cfg
	}
}

// WithPrettyHTML indents the sanitized HTML artifact.
func WithPrettyHTML(enabled bool) Option {
	return func(c *Config) {
		c.Export.PrettyHTML = enabled
	}
}

// WithDedupeTitle toggles suppression of a title repeated as the first heading.
func WithDedupeTitle(enabled bool) Option {
	return func(c *Config) {
		c.Export.DedupeTitle = enabled
	}
}

// WithFetcher injects a custom fetcher, e.g. a headless browser.
func WithFetcher(f fetcher.Fetcher) Option {
	return func(c *Config) {
		c.Fetcher = f
	}
}

// WithExtractor injects a custom content extractor.
func WithExtractor(e extract.Extractor) Option {
	return func(c *Config) {
		c.Extractor = e
	}
}
