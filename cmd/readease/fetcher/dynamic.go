package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/jmylchreest/readease/internal/logger"
	"github.com/jmylchreest/readease/pkg/fetcher"
)

// DynamicFetcher renders pages in headless Chrome through chromedp.
type DynamicFetcher struct {
	config    Config
	allocCtx  context.Context
	cancelCtx context.CancelFunc
}

// NewDynamicFetcher creates a fetcher that owns a browser allocator until
// Close.
func NewDynamicFetcher(cfg Config) (*DynamicFetcher, error) {
	def := DefaultConfig()
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.WaitForSelector == "" {
		cfg.WaitForSelector = def.WaitForSelector
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1280, 1024),
		chromedp.UserAgent(cfg.UserAgent),
	)

	chromePath := cfg.ChromePath
	if chromePath == "" {
		chromePath = FindChromePath()
	}
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	logger.Debug("dynamic fetcher created", "chrome", chromePath, "timeout", cfg.Timeout)
	return &DynamicFetcher{
		config:    cfg,
		allocCtx:  allocCtx,
		cancelCtx: cancel,
	}, nil
}

// Fetch navigates to targetURL and returns the rendered document.
func (f *DynamicFetcher) Fetch(ctx context.Context, targetURL string, opts fetcher.Options) (fetcher.Content, error) {
	result := fetcher.Content{
		URL:       targetURL,
		FetchedAt: time.Now(),
	}

	browserCtx, cancelBrowser := chromedp.NewContext(f.allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			logger.Debug("chromedp", "msg", fmt.Sprintf(format, args...))
		}),
	)
	defer cancelBrowser()

	// Stop the browser tab when the caller gives up.
	stop := context.AfterFunc(ctx, cancelBrowser)
	defer stop()

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = f.config.Timeout
	}
	timeoutCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	selector := coalesce(opts.WaitForSelector, f.config.WaitForSelector)
	wait := opts.WaitDuration
	if wait == 0 {
		wait = f.config.WaitDuration
	}

	var html, title, location string
	actions := []chromedp.Action{
		chromedp.Navigate(targetURL),
		// WaitVisible polls forever on some pages; WaitReady does not.
		chromedp.WaitReady(selector),
	}
	if wait > 0 {
		actions = append(actions, chromedp.Sleep(wait))
	}
	actions = append(actions,
		chromedp.OuterHTML("html", &html),
		chromedp.Title(&title),
		chromedp.Location(&location),
	)

	logger.Debug("dynamic fetch starting", "url", targetURL, "selector", selector, "timeout", timeout)
	if err := chromedp.Run(timeoutCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return result, fmt.Errorf("browser fetch cancelled: %w", ctx.Err())
		}
		return result, fmt.Errorf("browser automation failed: %w", err)
	}

	if opts.MaxBodySize > 0 && int64(len(html)) > opts.MaxBodySize {
		return result, fmt.Errorf("%s: %w", targetURL, fetcher.ErrBodyTooLarge)
	}

	result.HTML = html
	result.Title = title
	result.StatusCode = 200 // chromedp doesn't easily expose status codes
	if location != "" {
		result.URL = location
	}

	logger.Debug("dynamic fetch complete", "url", result.URL, "title", title, "size", len(html))
	return result, nil
}

// Close shuts the browser down.
func (f *DynamicFetcher) Close() error {
	if f.cancelCtx != nil {
		f.cancelCtx()
	}
	return nil
}

// Type returns the fetcher type.
func (f *DynamicFetcher) Type() string {
	return "dynamic"
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
