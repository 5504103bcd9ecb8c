package export

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/yosssi/gohtml"

	"github.com/jmylchreest/readease/internal/logger"
	"github.com/jmylchreest/readease/pkg/extract"
	"github.com/jmylchreest/readease/pkg/markdown"
	"github.com/jmylchreest/readease/pkg/sanitize"
)

// ErrNilExtraction is returned when Export is called without content.
var ErrNilExtraction = errors.New("nil extraction")

// Exporter runs sanitize, serialize and assemble over an extraction.
type Exporter struct {
	opts      Options
	sanitizer *sanitize.Sanitizer
	assembler Assembler
}

// New creates an Exporter after validating opts.
func New(opts Options) (*Exporter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Exporter{
		opts:      opts,
		sanitizer: sanitize.New(opts.Sanitize),
		assembler: Assembler{DedupeTitle: opts.DedupeTitle},
	}, nil
}

// Options returns the exporter options.
func (e *Exporter) Options() Options {
	return e.opts
}

// Export builds all three artifacts. The extraction's tree is cloned, never
// modified.
func (e *Exporter) Export(ex *extract.Extraction) (*Result, error) {
	if ex == nil || ex.Root == nil {
		return nil, ErrNilExtraction
	}
	title := ex.Title
	if title == "" {
		title = extract.DefaultTitle
	}

	sanitized := e.sanitizer.SanitizeWithStats(ex.Root.Clone())
	for _, w := range sanitized.Warnings {
		logger.Debug("sanitize warning", "warning", w.String())
	}

	body, err := e.sanitizer.RenderHTML(sanitized.Root)
	if err != nil {
		return nil, fmt.Errorf("render sanitized html: %w", err)
	}
	if e.opts.PrettyHTML {
		body = gohtml.Format(body)
	}

	mdOpts := e.opts.Markdown
	if mdOpts.BaseURL == "" {
		mdOpts.BaseURL = ex.URL
	}
	md := markdown.New(mdOpts).Convert(sanitized.Root)

	text := e.assembler.PlainText(title, ex.Text)
	result := e.assembler.Assemble(title, body, text, md.Markdown, md.Images)
	result.Stats = sanitized.Stats
	result.Warnings = sanitized.Warnings

	logger.Debug("export assembled",
		"title", title,
		"source", ex.Source,
		"html", humanize.Bytes(uint64(len(result.HTML))),
		"markdown", humanize.Bytes(uint64(len(result.Markdown))),
		"images", len(result.Images),
		"removed", sanitized.Stats.TotalElementsRemoved(),
	)
	return result, nil
}
