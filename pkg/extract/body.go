package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/readease/pkg/dom"
)

// Body is the fallback extractor: the whole <body> with the page title.
type Body struct{}

// NewBody returns the whole-body extractor.
func NewBody() *Body {
	return &Body{}
}

// Name returns the extractor name.
func (b *Body) Name() string {
	return "body"
}

// Extract returns the document body. It fails only when the body holds no
// text and no image.
func (b *Body) Extract(document, pageURL string) (*Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil, ErrNoContent
	}
	root := dom.FromHTML(body.Get(0))
	text := dom.InnerText(root)
	if text == "" && root.Find(dom.KindImage) == nil {
		return nil, ErrNoContent
	}

	return &Extraction{
		Title:  PageTitle(doc),
		Root:   root,
		Text:   text,
		URL:    pageURL,
		Source: b.Name(),
	}, nil
}
