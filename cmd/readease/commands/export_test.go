package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/jmylchreest/readease/internal/output"
	"github.com/jmylchreest/readease/pkg/export"
	"github.com/jmylchreest/readease/pkg/readease"
)

func testViper(values map[string]any) *viper.Viper {
	v := viper.New()
	defaults := map[string]any{
		"format":         "markdown",
		"emit":           "raw",
		"fetch_mode":     "static",
		"max_input_size": "10MB",
		"engine":         "native",
		"line_break":     "hard",
		"figcaption":     "italic",
		"preset":         "default",
		"concurrency":    3,
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestLoadSettings(t *testing.T) {
	s, err := loadSettings(testViper(map[string]any{
		"format":         "md",
		"emit":           "JSON",
		"max_input_size": "512KB",
		"base_url":       "https://example.com/",
	}))
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}
	if s.format != export.FormatMarkdown || s.emit != output.FormatJSON {
		t.Errorf("format = %q, emit = %q", s.format, s.emit)
	}
	if s.maxInputSize != 512000 {
		t.Errorf("maxInputSize = %d", s.maxInputSize)
	}
	if s.baseURL != "https://example.com/" {
		t.Errorf("baseURL = %q", s.baseURL)
	}
	if _, err := readease.New(s.options...); err != nil {
		t.Errorf("options rejected: %v", err)
	}

	unlimited, err := loadSettings(testViper(map[string]any{"max_input_size": "0"}))
	if err != nil || unlimited.maxInputSize != 0 {
		t.Errorf("max_input_size 0 = %d, %v", unlimited.maxInputSize, err)
	}
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		set  map[string]any
	}{
		{"format", map[string]any{"format": "pdf"}},
		{"emit", map[string]any{"emit": "xml"}},
		{"size", map[string]any{"max_input_size": "lots"}},
		{"fetch mode", map[string]any{"fetch_mode": "psychic"}},
		{"preset", map[string]any{"preset": "aggressive"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loadSettings(testViper(tt.set)); err == nil {
				t.Error("expected error")
			}
		})
	}

	s, err := loadSettings(testViper(map[string]any{"engine": "pandoc"}))
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}
	if _, err := readease.New(s.options...); err == nil {
		t.Error("expected readease.New to reject an unknown engine")
	}
}

func TestExportOne_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	page := `<html><head><title>Saved</title></head><body><h1>Saved</h1>
		<p>See <a href="/docs">the docs</a>.</p><aside class="sidebar">ad</aside></body></html>`
	if err := os.WriteFile(path, []byte(page), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := loadSettings(testViper(map[string]any{
		"base_url": "https://example.com/post",
		"format":   "text",
	}))
	if err != nil {
		t.Fatalf("loadSettings() error = %v", err)
	}
	r, err := readease.New(s.options...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	res, err := exportOne(context.Background(), r, nil, path, s)
	if err != nil {
		t.Fatalf("exportOne() error = %v", err)
	}
	if res.URL != path {
		t.Errorf("URL = %q", res.URL)
	}
	if !strings.Contains(res.Markdown, "[the docs](https://example.com/docs)") {
		t.Errorf("Markdown = %q", res.Markdown)
	}
	if strings.Contains(res.HTML, "ad</") {
		t.Errorf("sidebar kept: %s", res.HTML)
	}

	stdin := strings.NewReader(page)
	if _, err := exportOne(context.Background(), r, stdin, "-", s); err != nil {
		t.Errorf("stdin export error = %v", err)
	}

	if _, err := exportOne(context.Background(), r, nil, filepath.Join(dir, "missing.html"), s); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReadLimited(t *testing.T) {
	got, err := readLimited(strings.NewReader("abcdef"), 3)
	if err != nil || got != "abcd" {
		t.Errorf("readLimited() = %q, %v", got, err)
	}
	got, _ = readLimited(strings.NewReader("abcdef"), 0)
	if got != "abcdef" {
		t.Errorf("unlimited readLimited() = %q", got)
	}
}

func TestIsURL(t *testing.T) {
	for in, want := range map[string]bool{
		"https://example.com/a": true,
		"http://localhost:8080": true,
		"page.html":             false,
		"-":                     false,
		"file:///tmp/a.html":    false,
		"https://":              false,
	} {
		if got := isURL(in); got != want {
			t.Errorf("isURL(%q) = %v, want %v", in, got, want)
		}
	}
}
