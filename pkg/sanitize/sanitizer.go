package sanitize

import (
	"strings"
	"time"

	"github.com/jmylchreest/readease/pkg/dom"
)

// Sanitizer removes noise elements and presentation attributes from a
// content tree.
type Sanitizer struct {
	config *Config

	removeTags   map[string]bool
	removeRoles  map[string]bool
	keepEmpty    map[string]bool
	stripAttrs   []string
	classMarkers []string
}

// New creates a new Sanitizer with the given configuration.
// If config is nil, DefaultConfig() is used.
func New(config *Config) *Sanitizer {
	if config == nil {
		config = DefaultConfig()
	}
	s := &Sanitizer{
		config:      config,
		removeTags:  toSet(config.RemoveTags),
		removeRoles: toSet(config.RemoveRoles),
		keepEmpty:   toSet(config.KeepEmptyTags),
	}
	for _, a := range config.StripAttributes {
		s.stripAttrs = append(s.stripAttrs, strings.ToLower(a))
	}
	for _, m := range config.RemoveClassSubstrings {
		if m != "" {
			s.classMarkers = append(s.classMarkers, strings.ToLower(m))
		}
	}
	return s
}

// Config returns the configuration the sanitizer was built with.
func (s *Sanitizer) Config() *Config {
	return s.config
}

// Sanitize cleans root in place with the default configuration and
// returns it.
func Sanitize(root *dom.Node) *dom.Node {
	return New(nil).Sanitize(root)
}

// Sanitize cleans root in place and returns it.
func (s *Sanitizer) Sanitize(root *dom.Node) *dom.Node {
	return s.SanitizeWithStats(root).Root
}

// SanitizeWithStats cleans root in place and reports what was done.
// The root itself is never removed, only its descendants.
func (s *Sanitizer) SanitizeWithStats(root *dom.Node) *Result {
	start := time.Now()
	result := &Result{
		Root:  root,
		Stats: NewStats(),
	}
	if root == nil {
		result.AddWarning("remove", "nothing to sanitize", "nil root")
		return result
	}

	// Order matters: drop whole subtrees first, then prune what they left
	// empty, then clean the attributes of what survives.
	if root.IsElement() && s.isNoise(root) != "" {
		result.AddWarning("remove", "root matches a removal rule and was kept", root.Data)
	}
	s.markQuoteLike(root, result)
	s.removeNoise(root, result)
	if s.config.StripEmptyElements {
		s.removeEmpty(root, result)
	}
	s.stripAttributes(root, result)
	if s.config.ParagraphMargin != "" {
		s.normalizeParagraphs(root)
	}

	root.Walk(func(n *dom.Node) bool {
		if n.IsElement() && n != root {
			result.Stats.ElementsKept++
		}
		return true
	})
	result.Stats.TotalDuration = time.Since(start)
	return result
}

// markQuoteLike records the quote class hint before class attributes are
// stripped. Hints set by an earlier pass are kept.
func (s *Sanitizer) markQuoteLike(root *dom.Node, result *Result) {
	marker := strings.ToLower(s.config.QuoteClassSubstring)
	if marker == "" {
		return
	}
	root.Walk(func(n *dom.Node) bool {
		if n.IsElement() && !n.Hints.QuoteLike &&
			strings.Contains(strings.ToLower(n.Attribute("class")), marker) {
			n.Hints.QuoteLike = true
			result.Stats.QuoteLikeMarked++
		}
		return true
	})
}

// isNoise returns the name of the rule that matches n, or "".
func (s *Sanitizer) isNoise(n *dom.Node) string {
	if s.removeTags[n.Data] {
		return "tag"
	}
	if role := strings.TrimSpace(n.Attribute("role")); role != "" && s.removeRoles[strings.ToLower(role)] {
		return "role"
	}
	if class := strings.ToLower(n.Attribute("class")); class != "" {
		for _, m := range s.classMarkers {
			if strings.Contains(class, m) {
				return "class"
			}
		}
	}
	return ""
}

func (s *Sanitizer) removeNoise(n *dom.Node, result *Result) {
	kept := n.Children[:0]
	for _, c := range n.Children {
		if c.IsElement() {
			switch s.isNoise(c) {
			case "tag":
				result.Stats.RecordRemoval(c.Data)
				continue
			case "role":
				result.Stats.RecordRemoval(c.Data)
				result.Stats.RoleRemovals++
				continue
			case "class":
				result.Stats.RecordRemoval(c.Data)
				result.Stats.ClassRemovals++
				continue
			}
			s.removeNoise(c, result)
		}
		kept = append(kept, c)
	}
	clearTail(n.Children, len(kept))
	n.Children = kept
}

// removeEmpty drops childless elements bottom-up, so a parent emptied by
// the removal of its last child goes in the same pass and a second pass
// finds nothing to do.
func (s *Sanitizer) removeEmpty(n *dom.Node, result *Result) {
	kept := n.Children[:0]
	for _, c := range n.Children {
		if c.IsElement() {
			s.removeEmpty(c, result)
			if len(c.Children) == 0 && !s.keepEmpty[c.Data] {
				result.Stats.RecordRemoval(c.Data)
				result.Stats.EmptyElementRemovals++
				continue
			}
		}
		kept = append(kept, c)
	}
	clearTail(n.Children, len(kept))
	n.Children = kept
}

func (s *Sanitizer) stripAttributes(root *dom.Node, result *Result) {
	root.Walk(func(n *dom.Node) bool {
		if !n.IsElement() {
			return true
		}
		for _, a := range s.stripAttrs {
			if n.RemoveAttribute(a) {
				result.Stats.AttributesRemoved++
			}
		}
		return true
	})
}

func (s *Sanitizer) normalizeParagraphs(root *dom.Node) {
	style := "margin: " + s.config.ParagraphMargin
	root.Walk(func(n *dom.Node) bool {
		if n.Is(dom.KindParagraph) {
			n.SetAttribute("style", style)
		}
		return true
	})
}

// clearTail nils out the slots past n so filtered-out nodes can be
// collected.
func clearTail(children []*dom.Node, n int) {
	for i := n; i < len(children); i++ {
		children[i] = nil
	}
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(strings.TrimSpace(item))] = true
	}
	return set
}
