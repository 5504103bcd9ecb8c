package dom

import (
	"regexp"
	"strings"
	"unicode"
)

// TextContent returns the concatenated raw text of n and its descendants,
// whitespace untouched.
func TextContent(n *Node) string {
	var sb strings.Builder
	n.Walk(func(d *Node) bool {
		if d.Type == TextNode {
			sb.WriteString(d.Data)
		}
		return true
	})
	return sb.String()
}

// IsBlank reports whether s has no non-whitespace character. Unlike
// strings.TrimSpace this also treats U+00A0 (&nbsp;) as whitespace.
func IsBlank(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsSpace(r) && r != ' '
	}) < 0
}

// paragraphTags are separated by a blank line in inner text.
var paragraphTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "figure": true, "table": true, "ul": true, "ol": true,
}

// lineTags start on their own line in inner text.
var lineTags = map[string]bool{
	"div": true, "section": true, "article": true, "main": true, "header": true,
	"aside": true, "li": true, "dt": true, "dd": true, "dl": true, "tr": true,
	"figcaption": true, "address": true, "hr": true, "picture": true,
}

var (
	spaceRunRe   = regexp.MustCompile(`[ \t\f\r\n]+`)
	blankLinesRe = regexp.MustCompile(`\n[ \t]*(\n[ \t]*)+`)
	lineSpaceRe  = regexp.MustCompile(`[ \t]*\n[ \t]*`)
)

// InnerText approximates the browser's rendered text of n: whitespace
// inside text collapses, block elements start new lines, paragraphs and
// headings are separated by a blank line, and <pre> keeps its line breaks.
func InnerText(n *Node) string {
	var sb strings.Builder
	innerText(&sb, n)
	out := lineSpaceRe.ReplaceAllString(sb.String(), "\n")
	out = blankLinesRe.ReplaceAllString(out, "\n\n")
	return strings.TrimSpace(out)
}

func innerText(sb *strings.Builder, n *Node) {
	if n.Type == TextNode {
		sb.WriteString(spaceRunRe.ReplaceAllString(n.Data, " "))
		return
	}
	switch n.Kind {
	case KindScript, KindStyle, KindMeta, KindLink:
		return
	case KindBreak:
		sb.WriteString("\n")
		return
	case KindPre:
		sb.WriteString("\n\n")
		sb.WriteString(TextContent(n))
		sb.WriteString("\n\n")
		return
	}
	switch {
	case paragraphTags[n.Data]:
		sb.WriteString("\n\n")
		innerChildren(sb, n)
		sb.WriteString("\n\n")
	case lineTags[n.Data]:
		ensureNewline(sb)
		innerChildren(sb, n)
		ensureNewline(sb)
	default:
		innerChildren(sb, n)
	}
}

func innerChildren(sb *strings.Builder, n *Node) {
	for _, c := range n.Children {
		innerText(sb, c)
	}
}

func ensureNewline(sb *strings.Builder) {
	s := sb.String()
	if len(s) > 0 && !strings.HasSuffix(s, "\n") {
		sb.WriteString("\n")
	}
}
