package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmylchreest/readease/internal/logger"
)

// Chain tries extractors in order and returns the first success.
type Chain struct {
	extractors []Extractor
}

// NewChain creates an extractor that falls through the given extractors.
//
// Example:
//
//	chain := extract.NewChain(
//	    extract.NewReadability(nil),
//	    extract.NewBody(),
//	)
func NewChain(extractors ...Extractor) *Chain {
	return &Chain{extractors: extractors}
}

// Default returns Readability with the whole-body fallback.
func Default() *Chain {
	return NewChain(NewReadability(nil), NewBody())
}

// Extract returns the first successful extraction. If all extractors fail
// the errors are joined.
func (c *Chain) Extract(document, pageURL string) (*Extraction, error) {
	if len(c.extractors) == 0 {
		return nil, ErrNoContent
	}
	var errs []error
	for _, e := range c.extractors {
		ex, err := e.Extract(document, pageURL)
		if err == nil {
			return ex, nil
		}
		logger.Debug("extractor failed, trying next", "extractor", e.Name(), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", e.Name(), err))
	}
	return nil, errors.Join(errs...)
}

// Name returns the names of all chained extractors.
func (c *Chain) Name() string {
	names := make([]string, len(c.extractors))
	for i, e := range c.extractors {
		names[i] = e.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}
