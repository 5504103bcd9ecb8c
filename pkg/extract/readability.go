package extract

import (
	"fmt"
	"net/url"
	"strings"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/readease/internal/logger"
	"github.com/jmylchreest/readease/pkg/dom"
)

// ReadabilityConfig configures the Readability extractor.
type ReadabilityConfig struct {
	// MaxElemsToParse limits the number of nodes to parse (0 = no limit).
	MaxElemsToParse int
	// NTopCandidates is the number of top candidates to consider (default: 5).
	NTopCandidates int
	// CharThreshold is the minimum character count for valid content (default: 500).
	CharThreshold int
}

// Readability extracts the main article with go-readability, a port of
// Mozilla's Readability.js.
type Readability struct {
	cfg    ReadabilityConfig
	parser readability.Parser
}

// NewReadability creates a Readability extractor.
// Pass nil for default configuration.
func NewReadability(cfg *ReadabilityConfig) *Readability {
	if cfg == nil {
		cfg = &ReadabilityConfig{}
	}

	parser := readability.NewParser()
	if cfg.MaxElemsToParse > 0 {
		parser.MaxElemsToParse = cfg.MaxElemsToParse
	}
	if cfg.NTopCandidates > 0 {
		parser.NTopCandidates = cfg.NTopCandidates
	}
	if cfg.CharThreshold > 0 {
		parser.CharThresholds = cfg.CharThreshold
	}
	// The sanitizer matches on class names before stripping them.
	parser.KeepClasses = true

	return &Readability{
		cfg:    *cfg,
		parser: parser,
	}
}

// Name returns the extractor name.
func (r *Readability) Name() string {
	return "readability"
}

// Extract runs Readability over document. The article title Readability
// derives wins over the page title chain. It returns ErrNoContent when no
// article candidate with text is found.
func (r *Readability) Extract(document, pageURL string) (*Extraction, error) {
	var base *url.URL
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			logger.Debug("ignoring unparseable page url", "url", pageURL, "error", err)
		} else {
			base = u
		}
	}

	article, err := r.parser.Parse(strings.NewReader(document), base)
	if err != nil {
		return nil, fmt.Errorf("readability: %w", err)
	}
	if article.Node == nil {
		return nil, ErrNoContent
	}

	root := dom.FromHTML(article.Node)
	text := dom.InnerText(root)
	if text == "" {
		return nil, ErrNoContent
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	title := collapse(article.Title())
	if title == "" {
		title = PageTitle(doc)
	}

	return &Extraction{
		Title:  title,
		Root:   root,
		Text:   text,
		URL:    pageURL,
		Source: r.Name(),
	}, nil
}
