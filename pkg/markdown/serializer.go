package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"

	"github.com/jmylchreest/readease/internal/logger"
	"github.com/jmylchreest/readease/pkg/dom"
	"github.com/jmylchreest/readease/pkg/images"
)

// blockKind is the last block-level production the serializer emitted.
type blockKind int

const (
	blockNone blockKind = iota
	blockFigure
	blockFigcaption
	blockParagraph
	blockOther
)

// conversionState is created per Convert call and threaded through the
// recursion.
type conversionState struct {
	lastBlock blockKind
	images    []string
}

// Output is the result of a conversion.
type Output struct {
	Markdown string
	// Images lists every resolved image URL in document order.
	Images []string
}

// Serializer converts content trees to Markdown. It holds no per-call
// state and may be shared.
type Serializer struct {
	opts     Options
	resolver *images.Resolver
	conv     *converter.Converter
}

// New creates a Serializer. Zero-valued option fields take their defaults.
func New(opts Options) *Serializer {
	def := DefaultOptions()
	if opts.Engine == "" {
		opts.Engine = def.Engine
	}
	if opts.LineBreak == "" {
		opts.LineBreak = def.LineBreak
	}
	if opts.Figcaption == "" {
		opts.Figcaption = def.Figcaption
	}
	s := &Serializer{
		opts:     opts,
		resolver: images.NewResolver(opts.BaseURL),
	}
	if opts.Engine == EngineCommonMark {
		s.conv = newCommonMarkConverter()
	}
	return s
}

// Options returns the effective options.
func (s *Serializer) Options() Options {
	return s.opts
}

// Serialize renders the children of root as Markdown.
func (s *Serializer) Serialize(root *dom.Node) string {
	return s.Convert(root).Markdown
}

// Convert renders the children of root as Markdown and reports the images
// it resolved.
func (s *Serializer) Convert(root *dom.Node) Output {
	if root == nil {
		return Output{}
	}
	if s.conv != nil {
		out, err := s.convertCommonMark(root)
		if err == nil {
			return out
		}
		logger.Debug("commonmark engine failed, using native serializer", "error", err)
	}

	st := &conversionState{}
	md := s.children(root, st, 1)
	return Output{
		Markdown: finish(md),
		Images:   st.images,
	}
}

var (
	spaceRunRe   = regexp.MustCompile(`[\s\p{Zs}]+`)
	newlines3Re  = regexp.MustCompile(`\n{3,}`)
	newlines2Re  = regexp.MustCompile(`\n{2,}`)
	newlineRunRe = regexp.MustCompile(`\s*\n\s*`)

	// fullQuoteRe matches content wrapped entirely in one pair of
	// full-width quotation marks.
	fullQuoteRe = regexp.MustCompile(`^(?:“[^”]{2,}”|「[^」]{2,}」|『[^』]{2,}』)$`)
)

func finish(md string) string {
	return newlines3Re.ReplaceAllString(strings.TrimSpace(md), "\n\n")
}

func (s *Serializer) children(n *dom.Node, st *conversionState, depth int) string {
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(s.node(c, n, st, depth))
	}
	return sb.String()
}

// node renders n, whose nesting depth is depth, and updates st.
func (s *Serializer) node(n, parent *dom.Node, st *conversionState, depth int) string {
	if n.Type == dom.TextNode {
		if dom.IsBlank(n.Data) {
			return ""
		}
		return spaceRunRe.ReplaceAllString(n.Data, " ")
	}
	if depth > s.opts.maxDepth() {
		return spaceRunRe.ReplaceAllString(dom.TextContent(n), " ")
	}

	switch n.Kind {
	case dom.KindHeading:
		content := strings.TrimSpace(s.children(n, st, depth+1))
		st.lastBlock = blockOther
		if content == "" {
			return ""
		}
		return strings.Repeat("#", n.HeadingLevel()) + " " + content + "\n\n"

	case dom.KindParagraph:
		return s.paragraph(n, parent, st, depth)

	case dom.KindBreak:
		if s.opts.LineBreak == LineBreakSoft {
			return "\n"
		}
		return "  \n"

	case dom.KindStrong:
		return wrapInline(s.children(n, st, depth+1), "**")

	case dom.KindEmphasis:
		return wrapInline(s.children(n, st, depth+1), "*")

	case dom.KindCode:
		return inlineCode(s.children(n, st, depth+1))

	case dom.KindPre:
		st.lastBlock = blockOther
		return codeBlock(dom.TextContent(n))

	case dom.KindImage, dom.KindPicture:
		return s.image(n, st)

	case dom.KindAnchor:
		return s.anchor(n, st, depth)

	case dom.KindUnorderedList, dom.KindOrderedList:
		return s.list(n, st, depth)

	case dom.KindListItem:
		return s.listItem(n, st, depth)

	case dom.KindBlockquote:
		content := strings.TrimSpace(s.children(n, st, depth+1))
		st.lastBlock = blockOther
		if content == "" {
			return ""
		}
		return "\n" + quote(newlines2Re.ReplaceAllString(content, "\n")) + "\n\n"

	case dom.KindFigure:
		content := s.children(n, st, depth+1)
		st.lastBlock = blockFigure
		return content + "\n"

	case dom.KindFigcaption:
		content := strings.TrimSpace(s.children(n, st, depth+1))
		st.lastBlock = blockFigcaption
		if content == "" {
			return ""
		}
		if s.opts.Figcaption == FigcaptionBlockquote {
			return "\n" + quote(content) + "\n\n"
		}
		return "*" + newlineRunRe.ReplaceAllString(content, " ") + "*\n\n"

	default:
		content := s.children(n, st, depth+1)
		if s.opts.QuoteHeuristics && n.Hints.QuoteLike {
			if content = strings.TrimSpace(content); content == "" {
				return ""
			}
			return "\n" + quote(content) + "\n\n"
		}
		return content
	}
}

func (s *Serializer) paragraph(n, parent *dom.Node, st *conversionState, depth int) string {
	content := strings.TrimSpace(s.children(n, st, depth+1))
	last := st.lastBlock
	st.lastBlock = blockParagraph

	if s.opts.QuoteHeuristics && content != "" {
		full := fullQuoteRe.MatchString(content)
		if last == blockFigcaption && full {
			level := 2
			if parent != nil && parent.Is(dom.KindFigure) {
				level = 1
			}
			return "\n\n" + strings.Repeat("#", level) + " " + content + "\n\n"
		}
		if n.Hints.QuoteLike || full {
			return "\n" + quote(content) + "\n\n"
		}
	}
	if content == "" {
		return ""
	}
	return content + "\n\n"
}

func (s *Serializer) image(n *dom.Node, st *conversionState) string {
	img, ok := s.resolver.Resolve(n, nil)
	if ok {
		st.images = append(st.images, img.URL)
	}
	md := images.Markdown(img)
	if md == "" {
		return ""
	}
	return md + "\n\n"
}

func (s *Serializer) anchor(n *dom.Node, st *conversionState, depth int) string {
	if visual := onlyVisual(n); visual != nil {
		return s.image(visual, st)
	}

	raw := s.children(n, st, depth+1)
	// Script hrefs keep the link but lose the destination.
	href := strings.TrimSpace(n.Attribute("href"))
	if strings.HasPrefix(strings.ToLower(href), "javascript:") {
		href = ""
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		text = href
	}
	if text == "" {
		return raw
	}
	lead, trail := edgeSpace(raw)
	return lead + "[" + text + "](" + images.Destination(s.resolver.Absolute(href)) + ")" + trail
}

// onlyVisual returns the picture or img an anchor wraps when the anchor
// has no visible text of its own.
func onlyVisual(a *dom.Node) *dom.Node {
	visual := a.Find(dom.KindPicture)
	if visual == nil {
		visual = a.Find(dom.KindImage)
	}
	if visual == nil || !dom.IsBlank(dom.TextContent(a)) {
		return nil
	}
	return visual
}

func (s *Serializer) list(n *dom.Node, st *conversionState, depth int) string {
	ordered := n.Is(dom.KindOrderedList)
	num := 1
	if ordered {
		if v, err := strconv.Atoi(strings.TrimSpace(n.Attribute("start"))); err == nil {
			num = v
		}
	}

	var items []string
	for _, li := range n.ElementChildren() {
		if !li.Is(dom.KindListItem) {
			continue
		}
		marker := "* "
		if ordered {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		items = append(items, strings.TrimRight(marker+s.listItem(li, st, depth+1), " "))
	}
	st.lastBlock = blockOther
	if len(items) == 0 {
		return ""
	}
	return strings.Join(items, "\n") + "\n\n"
}

// listItem renders the children of li in order. Directly nested lists
// start on a new line and are indented by four spaces.
func (s *Serializer) listItem(li *dom.Node, st *conversionState, depth int) string {
	if depth > s.opts.maxDepth() {
		return strings.TrimSpace(spaceRunRe.ReplaceAllString(dom.TextContent(li), " "))
	}
	var sb strings.Builder
	for _, c := range li.Children {
		if c.IsElement() && c.IsList() {
			nested := strings.TrimSpace(s.node(c, li, st, depth+1))
			if nested != "" {
				sb.WriteString("\n")
				sb.WriteString(indent(nested, "    "))
			}
			continue
		}
		sb.WriteString(s.node(c, li, st, depth+1))
	}
	return strings.TrimSpace(sb.String())
}

// quote prefixes every line of content with "> ".
func quote(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

func indent(content, prefix string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// edgeSpace returns the whitespace that opens and closes raw, each
// collapsed to a single space.
func edgeSpace(raw string) (lead, trail string) {
	if raw == "" {
		return "", ""
	}
	if strings.TrimLeft(raw, " \n") != raw {
		lead = " "
	}
	if strings.TrimRight(raw, " \n") != raw {
		trail = " "
	}
	return lead, trail
}

// wrapInline wraps the trimmed content in marker, keeping surrounding
// whitespace outside the markers. Empty content renders as nothing.
func wrapInline(raw, marker string) string {
	content := strings.TrimSpace(raw)
	if content == "" {
		return ""
	}
	lead, trail := edgeSpace(raw)
	return lead + marker + content + marker + trail
}

func inlineCode(raw string) string {
	content := strings.TrimSpace(raw)
	if content == "" {
		return ""
	}
	lead, trail := edgeSpace(raw)
	if !strings.Contains(content, "`") {
		return lead + "`" + content + "`" + trail
	}
	fence := strings.Repeat("`", longestRun(content, '`')+1)
	return lead + fence + " " + content + " " + fence + trail
}

// codeBlock fences raw even when it is blank.
func codeBlock(raw string) string {
	content := strings.TrimSpace(raw)
	fence := "```"
	if n := longestRun(content, '`'); n >= 3 {
		fence = strings.Repeat("`", n+1)
	}
	return "\n" + fence + "\n" + content + "\n" + fence + "\n\n"
}

func longestRun(s string, r rune) int {
	longest, cur := 0, 0
	for _, c := range s {
		if c == r {
			cur++
			longest = max(longest, cur)
			continue
		}
		cur = 0
	}
	return longest
}
