// Package markdown renders a sanitized content tree as Markdown.
package markdown

// Engine selects the Markdown renderer.
type Engine string

const (
	// EngineNative is the tree serializer in this package.
	EngineNative Engine = "native"
	// EngineCommonMark renders the sanitized HTML with html-to-markdown.
	EngineCommonMark Engine = "commonmark"
)

// LineBreak controls how <br> is written.
type LineBreak string

const (
	// LineBreakHard writes two trailing spaces and a newline.
	LineBreakHard LineBreak = "hard"
	// LineBreakSoft writes a bare newline.
	LineBreakSoft LineBreak = "soft"
)

// Figcaption controls how <figcaption> is written.
type Figcaption string

const (
	FigcaptionItalic     Figcaption = "italic"
	FigcaptionBlockquote Figcaption = "blockquote"
)

// DefaultMaxDepth bounds recursion on hostile trees.
const DefaultMaxDepth = 512

// Options configures a Serializer.
type Options struct {
	Engine     Engine     `json:"engine" yaml:"engine" mapstructure:"engine" validate:"omitempty,oneof=native commonmark"`
	LineBreak  LineBreak  `json:"line_break" yaml:"line_break" mapstructure:"line_break" validate:"omitempty,oneof=hard soft"`
	Figcaption Figcaption `json:"figcaption" yaml:"figcaption" mapstructure:"figcaption" validate:"omitempty,oneof=italic blockquote"`

	// QuoteHeuristics enables quote-class blockquotes, full-quotation
	// blockquotes and caption-to-heading promotion.
	QuoteHeuristics bool `json:"quote_heuristics" yaml:"quote_heuristics" mapstructure:"quote_heuristics"`

	// BaseURL resolves relative image and link URLs.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// MaxDepth is the deepest element rendered structurally; deeper
	// subtrees are flattened to their text. Zero means DefaultMaxDepth.
	MaxDepth int `json:"max_depth" yaml:"max_depth" mapstructure:"max_depth" validate:"gte=0"`
}

// DefaultOptions returns hard line breaks, italic captions and quote
// heuristics on.
func DefaultOptions() Options {
	return Options{
		Engine:          EngineNative,
		LineBreak:       LineBreakHard,
		Figcaption:      FigcaptionItalic,
		QuoteHeuristics: true,
		MaxDepth:        DefaultMaxDepth,
	}
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}
