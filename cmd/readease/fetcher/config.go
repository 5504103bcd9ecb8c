// Package fetcher provides the headless-browser fetcher used by the CLI for
// pages that render their article with JavaScript.
package fetcher

import (
	"time"
)

// Config holds configuration for the dynamic fetcher.
type Config struct {
	UserAgent       string
	Timeout         time.Duration
	WaitForSelector string        // CSS selector that signals the article is rendered
	WaitDuration    time.Duration // Extra settle time after the selector is ready
	ChromePath      string        // Overrides FindChromePath
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		UserAgent:       defaultUserAgent,
		Timeout:         30 * time.Second,
		WaitForSelector: "body",
	}
}

// Chrome user agent for better compatibility
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
