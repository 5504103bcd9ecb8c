package export

import (
	"errors"
	"fmt"
	"strings"
)

// Format is a requested export artifact.
type Format string

const (
	FormatText     Format = "text"
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// MIME types used in clipboard payloads.
const (
	MIMEPlain    = "text/plain"
	MIMEHTML     = "text/html"
	MIMEMarkdown = "text/markdown"
)

// ErrUnknownFormat is returned for a format other than text, html or
// markdown.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat parses a format name. "txt" and "md" are accepted as
// aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt", "plain":
		return FormatText, nil
	case "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Payload maps MIME types to clipboard content.
type Payload map[string]string

// Types returns the MIME types in write preference order: the richest
// representation first, text/plain last.
func (p Payload) Types() []string {
	var types []string
	for _, t := range []string{MIMEHTML, MIMEMarkdown, MIMEPlain} {
		if _, ok := p[t]; ok {
			types = append(types, t)
		}
	}
	return types
}
