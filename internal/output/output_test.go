package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/readease/pkg/export"
)

func result() *export.Result {
	return &export.Result{
		Title:    "T",
		HTML:     "<h1>T</h1><p>a & b</p>",
		Text:     "T\n\na & b",
		Markdown: "# T\n\na & b",
	}
}

func TestParseFormat(t *testing.T) {
	for _, in := range []string{"raw", "JSON", " jsonl ", "yaml"} {
		if _, err := ParseFormat(in); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", in, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
	if _, err := NewWriter(&bytes.Buffer{}, "xml"); err == nil {
		t.Error("expected NewWriter error for xml")
	}
}

func TestRawWriter(t *testing.T) {
	tests := []struct {
		artifact export.Format
		want     string
	}{
		{export.FormatMarkdown, "# T\n\na & b\n"},
		{export.FormatText, "T\n\na & b\n"},
		{export.FormatHTML, "<h1>T</h1><p>a & b</p>\n"},
	}
	for _, tt := range tests {
		t.Run(string(tt.artifact), func(t *testing.T) {
			buf := &bytes.Buffer{}
			w, _ := NewWriter(buf, FormatRaw, WithArtifact(tt.artifact))
			if err := w.Write(result()); err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}

	buf := &bytes.Buffer{}
	w, _ := NewWriter(buf, FormatRaw)
	_ = w.Write("one")
	_ = w.Write("two\n")
	if buf.String() != "one\n\ntwo\n" {
		t.Errorf("multiple writes = %q", buf.String())
	}
	if err := w.Write(42); err == nil {
		t.Error("expected error for unsupported type")
	}
}

func TestJSONWriter(t *testing.T) {
	t.Run("single result is an object", func(t *testing.T) {
		buf := &bytes.Buffer{}
		w, _ := NewWriter(buf, FormatJSON)
		_ = w.Write(result())
		if err := w.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
		var got map[string]any
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if got["markdown"] != "# T\n\na & b" {
			t.Errorf("markdown = %v", got["markdown"])
		}
		if strings.Contains(buf.String(), `\u0026`) {
			t.Errorf("HTML should not be escaped: %s", buf.String())
		}
		if !strings.Contains(buf.String(), "\n  \"") {
			t.Errorf("expected pretty output: %s", buf.String())
		}
	})

	t.Run("several results are an array", func(t *testing.T) {
		buf := &bytes.Buffer{}
		w, _ := NewWriter(buf, FormatJSON, WithPretty(false))
		_ = w.Write(result())
		_ = w.Write(result())
		_ = w.Close()
		var got []map[string]any
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil || len(got) != 2 {
			t.Errorf("expected array of 2, got %v (%v)", got, err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		buf := &bytes.Buffer{}
		w, _ := NewWriter(buf, FormatJSON, WithPretty(false))
		_ = w.Close()
		if strings.TrimSpace(buf.String()) != "[]" {
			t.Errorf("got %q", buf.String())
		}
	})
}

func TestJSONLWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w, _ := NewWriter(buf, FormatJSONL)
	_ = w.Write(result())
	_ = w.Write(result())
	_ = w.Close()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %s", len(lines), buf.String())
	}
	for _, line := range lines {
		var got map[string]any
		if err := json.Unmarshal([]byte(line), &got); err != nil {
			t.Errorf("invalid line %q: %v", line, err)
		}
	}
}

func TestYAMLWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	w, _ := NewWriter(buf, FormatYAML)
	_ = w.Write(result())
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	var got map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if got["title"] != "T" || got["text"] != "T\n\na & b" {
		t.Errorf("unexpected YAML: %v", got)
	}
}
