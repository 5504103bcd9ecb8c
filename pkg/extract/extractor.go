// Package extract finds the readable content of an HTML page.
package extract

import (
	"errors"

	"github.com/jmylchreest/readease/pkg/dom"
)

// ErrNoContent is returned when an extractor finds nothing worth exporting.
var ErrNoContent = errors.New("no readable content found")

// DefaultTitle is used when a page has no usable title.
const DefaultTitle = "Untitled"

// Extraction is the content handed to the export pipeline.
type Extraction struct {
	// Title is the article title, never empty.
	Title string
	// Root is the content container. Callers may mutate a Clone of it.
	Root *dom.Node
	// Text is the rendered text of Root.
	Text string
	// URL is the page URL, used as base for relative links. May be empty.
	URL string
	// Source names the extractor that produced this result.
	Source string
}

// Extractor turns an HTML document into an Extraction.
type Extractor interface {
	// Extract finds the content of document. pageURL may be empty.
	Extract(document, pageURL string) (*Extraction, error)

	// Name returns the extractor name for logging.
	Name() string
}
