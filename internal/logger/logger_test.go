package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestInit_Levels(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		logged   []string
		dropped  []string
		debugsOn bool
	}{
		{"default", Options{}, []string{"info", "warn", "error"}, []string{"debug"}, false},
		{"debug", Options{Debug: true}, []string{"debug", "info", "warn", "error"}, nil, true},
		{"quiet", Options{Quiet: true}, []string{"error"}, []string{"debug", "info", "warn"}, false},
		{"quiet beats debug", Options{Quiet: true, Debug: true}, []string{"error"}, []string{"debug", "info"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			tt.opts.Output = buf
			Init(tt.opts)
			defer Init(Options{})

			Debug("msg-debug")
			Info("msg-info")
			Warn("msg-warn")
			Error("msg-error")

			for _, lvl := range tt.logged {
				if !strings.Contains(buf.String(), "msg-"+lvl) {
					t.Errorf("%s message should be logged", lvl)
				}
			}
			for _, lvl := range tt.dropped {
				if strings.Contains(buf.String(), "msg-"+lvl) {
					t.Errorf("%s message should be dropped", lvl)
				}
			}
			if Enabled(slog.LevelDebug) != tt.debugsOn {
				t.Errorf("Enabled(debug) = %v", !tt.debugsOn)
			}
		})
	}
}

func TestInit_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})
	defer Init(Options{})

	Info("exported", "format", "markdown")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v: %s", err, buf.String())
	}
	if entry["msg"] != "exported" || entry["format"] != "markdown" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestSetLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	SetLogger(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer Init(Options{})

	DebugContext(context.Background(), "ctx-debug")
	With("component", "sanitize").Info("scoped")

	for _, want := range []string{"ctx-debug", "component=sanitize", "scoped"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q: %s", want, buf.String())
		}
	}
}
