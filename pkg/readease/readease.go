package readease

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/readease/internal/logger"
	"github.com/jmylchreest/readease/pkg/export"
	"github.com/jmylchreest/readease/pkg/extract"
	"github.com/jmylchreest/readease/pkg/fetcher"
)

// ErrInputTooLarge is returned when a document exceeds Config.MaxInputSize.
var ErrInputTooLarge = errors.New("input exceeds maximum size")

// Version returns the module version of the readease library.
// Returns "(devel)" when built from source without version info.
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		return info.Main.Version
	}
	return "(unknown)"
}

// Result is an exported page.
type Result struct {
	export.Result `yaml:",inline"`

	URL            string        `json:"url,omitempty" yaml:"url,omitempty"`
	FetchedAt      time.Time     `json:"fetched_at,omitzero" yaml:"fetched_at,omitempty"`
	Extractor      string        `json:"extractor" yaml:"extractor"` // readability, body
	FetchDuration  time.Duration `json:"fetch_duration_ns,omitempty" yaml:"fetch_duration_ns,omitempty"`
	ExportDuration time.Duration `json:"export_duration_ns" yaml:"export_duration_ns"`
	Error          error         `json:"-" yaml:"-"`
}

// Readease is the main entry point.
type Readease struct {
	fetcher   fetcher.Fetcher
	extractor extract.Extractor
	exporter  *export.Exporter
	config    Config
}

// New creates a new Readease instance.
func New(opts ...Option) (*Readease, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var f fetcher.Fetcher
	if cfg.Fetcher != nil {
		f = cfg.Fetcher
	} else {
		f = fetcher.NewStatic(fetcher.StaticConfig{
			UserAgent:   cfg.UserAgent,
			Timeout:     cfg.Timeout,
			MaxBodySize: cfg.MaxInputSize,
		})
	}

	var ext extract.Extractor
	if cfg.Extractor != nil {
		ext = cfg.Extractor
	} else {
		ext = extract.Default()
	}

	exp, err := export.New(cfg.Export)
	if err != nil {
		return nil, err
	}

	return &Readease{
		fetcher:   f,
		extractor: ext,
		exporter:  exp,
		config:    cfg,
	}, nil
}

// Export fetches a URL and builds all artifacts.
func (r *Readease) Export(ctx context.Context, url string) (*Result, error) {
	fetchOpts := fetcher.Options{
		UserAgent:   r.config.UserAgent,
		Timeout:     r.config.Timeout,
		MaxBodySize: r.config.MaxInputSize,
	}

	fetchStart := time.Now()
	content, err := r.fetcher.Fetch(ctx, url, fetchOpts)
	fetchDuration := time.Since(fetchStart)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}
	logger.Debug("page fetched",
		"url", content.URL,
		"fetcher", r.fetcher.Type(),
		"size", humanize.Bytes(uint64(len(content.HTML))),
		"duration", fetchDuration)

	result, err := r.ExportHTML(content.HTML, content.URL)
	if err != nil {
		return nil, err
	}
	result.FetchedAt = content.FetchedAt
	result.FetchDuration = fetchDuration
	return result, nil
}

// ExportHTML builds all artifacts from an already loaded document. pageURL
// may be empty; it is used to resolve relative links and images.
func (r *Readease) ExportHTML(document, pageURL string) (*Result, error) {
	if limit := r.config.MaxInputSize; limit > 0 && int64(len(document)) > limit {
		return nil, fmt.Errorf("%s > %s: %w",
			humanize.Bytes(uint64(len(document))), humanize.Bytes(uint64(limit)), ErrInputTooLarge)
	}

	start := time.Now()
	ex, err := r.extractor.Extract(document, pageURL)
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	logger.Debug("content extracted", "extractor", ex.Source, "title", ex.Title)

	exported, err := r.exporter.Export(ex)
	if err != nil {
		return nil, fmt.Errorf("export failed: %w", err)
	}

	return &Result{
		Result:         *exported,
		URL:            pageURL,
		Extractor:      ex.Source,
		ExportDuration: time.Since(start),
	}, nil
}

// ExportMany exports multiple URLs concurrently. Failed URLs are reported
// through Result.Error.
func (r *Readease) ExportMany(ctx context.Context, urls []string, concurrency int) <-chan *Result {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make(chan *Result, len(urls))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for _, url := range urls {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result, err := r.Export(ctx, u)
			if err != nil {
				results <- &Result{URL: u, Error: err}
				return
			}
			results <- result
		}(url)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// Format returns the selected export format.
func (r *Readease) Format() export.Format {
	return r.config.Export.Format
}

// Close releases all resources.
func (r *Readease) Close() error {
	if r.fetcher != nil {
		return r.fetcher.Close()
	}
	return nil
}
