// Package sanitize strips page chrome and presentation attributes from an
// extracted content tree so it can be re-rendered as clean HTML and fed to
// the Markdown serializer.
package sanitize

// Config defines what the sanitizer removes and rewrites.
type Config struct {
	// === Removal ===

	// RemoveTags lists element names removed together with their subtree.
	RemoveTags []string `json:"remove_tags" yaml:"remove_tags" mapstructure:"remove_tags"`

	// RemoveRoles lists role attribute values whose elements are removed.
	RemoveRoles []string `json:"remove_roles" yaml:"remove_roles" mapstructure:"remove_roles"`

	// RemoveClassSubstrings removes elements whose class attribute contains
	// any of these substrings (case-insensitive).
	RemoveClassSubstrings []string `json:"remove_class_substrings" yaml:"remove_class_substrings" mapstructure:"remove_class_substrings"`

	// StripEmptyElements removes elements left without any child node.
	StripEmptyElements bool `json:"strip_empty_elements" yaml:"strip_empty_elements" mapstructure:"strip_empty_elements"`

	// KeepEmptyTags are exempt from empty-element removal.
	KeepEmptyTags []string `json:"keep_empty_tags" yaml:"keep_empty_tags" mapstructure:"keep_empty_tags"`

	// === Attributes ===

	// StripAttributes are removed from every remaining element.
	StripAttributes []string `json:"strip_attributes" yaml:"strip_attributes" mapstructure:"strip_attributes"`

	// QuoteClassSubstring marks elements as quote-like when their original
	// class contains it. Empty disables the hint.
	QuoteClassSubstring string `json:"quote_class_substring" yaml:"quote_class_substring" mapstructure:"quote_class_substring"`

	// ParagraphMargin is written as the margin style of every <p>.
	// Empty leaves paragraphs without a style attribute.
	ParagraphMargin string `json:"paragraph_margin" yaml:"paragraph_margin" mapstructure:"paragraph_margin"`

	// === Output ===

	// StrictHTML runs rendered HTML through a bluemonday UGC policy.
	StrictHTML bool `json:"strict_html" yaml:"strict_html" mapstructure:"strict_html"`
}

// DefaultConfig returns the rules used for clipboard export.
func DefaultConfig() *Config {
	return &Config{
		RemoveTags: []string{
			"script", "style", "link", "meta", "iframe",
			"button", "input", "form", "nav", "footer",
		},
		RemoveRoles:           []string{"complementary"},
		RemoveClassSubstrings: []string{"sidebar", "related", "comment"},
		StripEmptyElements:    true,
		// source stays: picture sources are childless by nature and carry
		// the srcset the image resolver reads.
		KeepEmptyTags:       []string{"img", "br", "source"},
		StripAttributes:     []string{"class", "style", "id"},
		QuoteClassSubstring: "quote",
		ParagraphMargin:     "1em 0",
	}
}

// PresetMinimal only removes executable and styling elements and keeps
// every attribute. Useful when the HTML export should stay close to the
// page.
func PresetMinimal() *Config {
	return &Config{
		RemoveTags:          []string{"script", "style", "link", "meta", "iframe"},
		QuoteClassSubstring: "quote",
	}
}

// Merge merges another config into this one.
// List values from other are appended (deduplicated); non-empty strings and
// true booleans from other win.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	merged := *c
	merged.RemoveTags = appendUnique(c.RemoveTags, other.RemoveTags)
	merged.RemoveRoles = appendUnique(c.RemoveRoles, other.RemoveRoles)
	merged.RemoveClassSubstrings = appendUnique(c.RemoveClassSubstrings, other.RemoveClassSubstrings)
	merged.KeepEmptyTags = appendUnique(c.KeepEmptyTags, other.KeepEmptyTags)
	merged.StripAttributes = appendUnique(c.StripAttributes, other.StripAttributes)

	if other.StripEmptyElements {
		merged.StripEmptyElements = true
	}
	if other.StrictHTML {
		merged.StrictHTML = true
	}
	if other.QuoteClassSubstring != "" {
		merged.QuoteClassSubstring = other.QuoteClassSubstring
	}
	if other.ParagraphMargin != "" {
		merged.ParagraphMargin = other.ParagraphMargin
	}
	return &merged
}

func appendUnique(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, s := range list {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	return out
}
