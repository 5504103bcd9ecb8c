// Package export turns an extraction into the HTML, plain text and
// Markdown artifacts handed to the clipboard.
package export

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/jmylchreest/readease/pkg/dom"
	"github.com/jmylchreest/readease/pkg/sanitize"
)

// Result holds the three artifacts of one export. It is not modified after
// Assemble returns.
type Result struct {
	Title    string   `json:"title" yaml:"title"`
	HTML     string   `json:"html" yaml:"html"`
	Text     string   `json:"text" yaml:"text"`
	Markdown string   `json:"markdown" yaml:"markdown"`
	Images   []string `json:"images,omitempty" yaml:"images,omitempty"`

	// Stats and Warnings come from the sanitize pass, when one ran.
	Stats    *sanitize.Stats    `json:"stats,omitempty" yaml:"stats,omitempty"`
	Warnings []sanitize.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Payload returns the MIME-typed content to write for format.
func (r *Result) Payload(format Format) (Payload, error) {
	switch format {
	case FormatText:
		return Payload{MIMEPlain: r.Text}, nil
	case FormatHTML:
		return Payload{MIMEHTML: r.HTML, MIMEPlain: r.Text}, nil
	case FormatMarkdown:
		return Payload{MIMEPlain: r.Markdown, MIMEMarkdown: r.Markdown}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Artifact returns the single string that stands for format when only
// plain text can be written.
func (r *Result) Artifact(format Format) (string, error) {
	switch format {
	case FormatText:
		return r.Text, nil
	case FormatHTML:
		return r.HTML, nil
	case FormatMarkdown:
		return r.Markdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Assembler composes export artifacts.
type Assembler struct {
	// DedupeTitle skips the title prefix when the content already opens
	// with it.
	DedupeTitle bool
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// FormatPlainText collapses runs of three or more newlines in text and
// prefixes the title.
func FormatPlainText(title, text string) string {
	return Assembler{}.PlainText(title, text)
}

// Assemble composes a Result without title de-duplication.
func Assemble(title, sanitizedHTML, plainText, markdownBody string, images []string) *Result {
	return Assembler{}.Assemble(title, sanitizedHTML, plainText, markdownBody, images)
}

// PlainText collapses runs of three or more newlines in text and prefixes
// the title.
func (a Assembler) PlainText(title, text string) string {
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	if a.DedupeTitle && firstLine(text) == strings.TrimSpace(title) {
		return strings.TrimLeft(text, "\n")
	}
	return title + "\n\n" + text
}

// Assemble prefixes the title to the HTML and Markdown bodies and passes
// plainText through.
func (a Assembler) Assemble(title, sanitizedHTML, plainText, markdownBody string, images []string) *Result {
	r := &Result{
		Title:    title,
		HTML:     "<h1>" + html.EscapeString(title) + "</h1>" + sanitizedHTML,
		Text:     plainText,
		Markdown: "# " + title + "\n\n" + markdownBody,
		Images:   images,
	}
	if !a.DedupeTitle {
		return r
	}
	if firstLine(markdownBody) == "# "+strings.TrimSpace(title) {
		r.Markdown = markdownBody
	}
	if opensWithHeading(sanitizedHTML, title) {
		r.HTML = sanitizedHTML
	}
	return r
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// opensWithHeading reports whether the first element of fragment is an
// <h1> whose text is title.
func opensWithHeading(fragment, title string) bool {
	root, err := dom.Parse(fragment)
	if err != nil {
		return false
	}
	for _, c := range root.Children {
		if c.Type == dom.TextNode {
			if dom.IsBlank(c.Data) {
				continue
			}
			return false
		}
		return c.Data == "h1" && dom.InnerText(c) == strings.TrimSpace(title)
	}
	return false
}
