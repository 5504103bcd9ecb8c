package sanitize

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/jmylchreest/readease/pkg/dom"
)

// StrictPolicy returns the bluemonday policy applied when StrictHTML is set:
// the UGC baseline plus the picture/figure elements the export keeps and the
// paragraph margin the sanitizer writes.
func StrictPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("picture", "source", "figure", "figcaption")
	p.AllowAttrs("srcset", "sizes", "media", "type").OnElements("source", "img")
	p.AllowStyles("margin").OnElements("p")
	return p
}

// RenderHTML serializes the children of root. With StrictHTML the result is
// passed through StrictPolicy.
func (s *Sanitizer) RenderHTML(root *dom.Node) (string, error) {
	out, err := dom.InnerHTML(root)
	if err != nil {
		return "", err
	}
	if s.config.StrictHTML {
		out = StrictPolicy().Sanitize(out)
	}
	return out, nil
}
