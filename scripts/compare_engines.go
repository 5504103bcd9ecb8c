// compare_engines.go - Compare the native and CommonMark Markdown engines
//
// Usage: go run scripts/compare_engines.go <url>
//
// Both outputs are written to the temp directory for diffing.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/readease/pkg/markdown"
	"github.com/jmylchreest/readease/pkg/readease"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/compare_engines.go <url>")
		os.Exit(1)
	}
	url := os.Args[1]

	for _, engine := range []markdown.Engine{markdown.EngineNative, markdown.EngineCommonMark} {
		opts := markdown.DefaultOptions()
		opts.Engine = engine

		r, err := readease.New(readease.WithMarkdown(opts))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		result, err := r.Export(context.Background(), url)
		_ = r.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting %s: %v\n", url, err)
			os.Exit(1)
		}

		fmt.Println(strings.Repeat("=", 61))
		fmt.Printf("ENGINE: %s\n", engine)
		fmt.Println(strings.Repeat("=", 61))
		fmt.Printf("Markdown: %s, %d images, %d lines\n",
			humanize.Bytes(uint64(len(result.Markdown))),
			strings.Count(result.Markdown, "!["),
			strings.Count(result.Markdown, "\n")+1)

		path := filepath.Join(os.TempDir(), "readease_"+string(engine)+".md")
		if err := os.WriteFile(path, []byte(result.Markdown), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
			continue
		}
		fmt.Println("Saved to:", path)
	}
}
