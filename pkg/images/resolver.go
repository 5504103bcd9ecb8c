// Package images picks the best source URL for image-bearing elements and
// formats it as a Markdown image.
package images

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jmylchreest/readease/internal/logger"
	"github.com/jmylchreest/readease/pkg/dom"
)

// LazyAttributes are probed in order for a plain <img> source. Lazy-loading
// scripts park the real URL in one of the data-* variants.
var LazyAttributes = []string{
	"src",
	"data-src",
	"data-original",
	"data-actualsrc",
	"data-lazy-src",
	"data-lazy",
	"data-url",
	"data-image",
	"data-image-src",
	"data-kg-src",
}

// Image is a resolved image ready to be written out.
type Image struct {
	Alt string
	URL string
}

// Resolver resolves image sources against a document base URL.
type Resolver struct {
	base *url.URL
}

// NewResolver returns a Resolver for baseURL. An empty or unparseable base
// leaves relative URLs as they are.
func NewResolver(baseURL string) *Resolver {
	r := &Resolver{}
	if baseURL == "" {
		return r
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		logger.Debug("ignoring unparseable base url", "base", baseURL, "error", err)
		return r
	}
	r.base = u
	return r
}

// Base returns the base URL, or nil.
func (r *Resolver) Base() *url.URL {
	return r.base
}

// Resolve finds the best URL for an img or picture element. picture is the
// nearest enclosing <picture> of an img, or nil. The returned Image always
// carries the alt text; ok reports whether a URL was found.
func (r *Resolver) Resolve(el, picture *dom.Node) (img Image, ok bool) {
	var raw string
	switch {
	case el.Is(dom.KindPicture):
		raw = pickPicture(el)
		if inner := el.Find(dom.KindImage); inner != nil {
			img.Alt = inner.Attribute("alt")
		}
	case el.Is(dom.KindImage):
		raw = pickImage(el)
		if raw == "" && picture != nil {
			raw = pickSources(picture)
		}
		img.Alt = el.Attribute("alt")
	default:
		return img, false
	}
	if raw == "" {
		return img, false
	}
	img.URL = r.Absolute(raw)
	return img, true
}

// Absolute resolves raw against the base URL. Failures return raw
// unchanged.
func (r *Resolver) Absolute(raw string) string {
	raw = strings.TrimSpace(raw)
	if r.base == nil || raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		logger.Debug("leaving unparseable image url as is", "url", raw, "error", err)
		return raw
	}
	return r.base.ResolveReference(u).String()
}

func pickImage(el *dom.Node) string {
	for _, attr := range LazyAttributes {
		if v := strings.TrimSpace(el.Attribute(attr)); v != "" {
			return v
		}
	}
	for _, attr := range []string{"srcset", "data-srcset"} {
		if c, ok := PickBest(el.Attribute(attr)); ok {
			return c.URL
		}
	}
	return ""
}

// pickPicture chooses among the picture's sources and falls back to its
// img using only the plain-image rule.
func pickPicture(picture *dom.Node) string {
	if raw := pickSources(picture); raw != "" {
		return raw
	}
	if inner := picture.Find(dom.KindImage); inner != nil {
		return pickImage(inner)
	}
	return ""
}

func pickSources(picture *dom.Node) string {
	var (
		best  Candidate
		score float64
		found bool
	)
	for _, source := range picture.FindAll(dom.KindSource) {
		srcset := source.Attribute("srcset")
		if strings.TrimSpace(srcset) == "" {
			srcset = source.Attribute("data-srcset")
		}
		c, ok := PickBest(srcset)
		if !ok {
			continue
		}
		if s := c.score(); !found || s > score {
			best, score, found = c, s, true
		}
	}
	return best.URL
}

var altEscaper = strings.NewReplacer("[", `\[`, "]", `\]`)

// EscapeAlt backslash-escapes square brackets in alt text.
func EscapeAlt(alt string) string {
	return altEscaper.Replace(alt)
}

var pointyEscaper = strings.NewReplacer("<", `\<`, ">", `\>`)

// Destination formats u as a Markdown link destination. URLs containing
// parentheses, whitespace or angle brackets are wrapped in <...>.
func Destination(u string) string {
	if !strings.ContainsAny(u, "()<> \t\n\r") {
		return u
	}
	return "<" + pointyEscaper.Replace(u) + ">"
}

// Markdown renders img as ![alt](url). An image without URL renders as
// ![alt](), and one without either renders as "".
func Markdown(img Image) string {
	if img.URL == "" && img.Alt == "" {
		return ""
	}
	return fmt.Sprintf("![%s](%s)", EscapeAlt(img.Alt), Destination(img.URL))
}
