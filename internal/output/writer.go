// Package output writes export results to a stream, either as the bare
// artifact or as a structured record.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jmylchreest/readease/pkg/export"
)

// Format represents output format types.
type Format string

const (
	FormatRaw   Format = "raw"
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatRaw, FormatJSON, FormatJSONL, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format: %s (use raw, json, jsonl or yaml)", s)
}

// Writer handles output serialization.
type Writer interface {
	// Write outputs a single result.
	Write(data any) error

	// Close flushes buffered output.
	Close() error
}

// Artifacter is implemented by export results.
type Artifacter interface {
	Artifact(format export.Format) (string, error)
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty   bool
	indent   string
	artifact export.Format
}

// WithPretty enables pretty-printing.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithIndent sets the indentation string.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// WithArtifact selects the artifact the raw writer prints.
func WithArtifact(f export.Format) WriterOption {
	return func(c *writerConfig) {
		c.artifact = f
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty:   true,
		indent:   "  ",
		artifact: export.FormatMarkdown,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatRaw:
		return &RawWriter{w: w, artifact: cfg.artifact}, nil
	case FormatJSON:
		return &JSONWriter{w: w, pretty: cfg.pretty, indent: cfg.indent}, nil
	case FormatJSONL:
		return &JSONLWriter{w: w}, nil
	case FormatYAML:
		return &YAMLWriter{w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// RawWriter prints the selected artifact of each result. Multiple results
// are separated by a blank line.
type RawWriter struct {
	w        io.Writer
	artifact export.Format
	n        int
}

func (w *RawWriter) Write(data any) error {
	var s string
	switch v := data.(type) {
	case string:
		s = v
	case Artifacter:
		a, err := v.Artifact(w.artifact)
		if err != nil {
			return err
		}
		s = a
	default:
		return fmt.Errorf("raw output cannot render %T", data)
	}

	if w.n > 0 {
		if _, err := io.WriteString(w.w, "\n"); err != nil {
			return err
		}
	}
	w.n++
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	_, err := io.WriteString(w.w, s)
	return err
}

func (w *RawWriter) Close() error { return nil }
