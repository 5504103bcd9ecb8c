package output

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// JSONWriter buffers results and writes them on Close: a single result as
// an object, several as an array.
type JSONWriter struct {
	w      io.Writer
	pretty bool
	indent string
	items  []any
}

func (w *JSONWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

func (w *JSONWriter) Close() error {
	enc := json.NewEncoder(w.w)
	enc.SetEscapeHTML(false)
	if w.pretty {
		enc.SetIndent("", w.indent)
	}
	return enc.Encode(single(w.items))
}

// JSONLWriter writes one JSON object per line as results arrive.
type JSONLWriter struct {
	w io.Writer
}

func (w *JSONLWriter) Write(data any) error {
	enc := json.NewEncoder(w.w)
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}

func (w *JSONLWriter) Close() error { return nil }

// YAMLWriter buffers results and writes them on Close.
type YAMLWriter struct {
	w     io.Writer
	items []any
}

func (w *YAMLWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

func (w *YAMLWriter) Close() error {
	enc := yaml.NewEncoder(w.w)
	enc.SetIndent(2)
	if err := enc.Encode(single(w.items)); err != nil {
		return err
	}
	return enc.Close()
}

func single(items []any) any {
	if len(items) == 1 {
		return items[0]
	}
	if items == nil {
		return []any{}
	}
	return items
}
