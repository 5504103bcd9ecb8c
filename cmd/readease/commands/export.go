package commands

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	clifetcher "github.com/jmylchreest/readease/cmd/readease/fetcher"
	"github.com/jmylchreest/readease/internal/clipboard"
	"github.com/jmylchreest/readease/internal/logger"
	"github.com/jmylchreest/readease/internal/output"
	"github.com/jmylchreest/readease/pkg/export"
	"github.com/jmylchreest/readease/pkg/markdown"
	"github.com/jmylchreest/readease/pkg/readease"
	"github.com/jmylchreest/readease/pkg/sanitize"
)

var exportCmd = &cobra.Command{
	Use:   "export [url|file|-]...",
	Short: "Export the article of a page",
	Long: `Export extracts the article from each input and writes it as Markdown,
plain text or HTML.

Inputs may be http(s) URLs, local HTML files, or "-" for stdin. With
--copy the selected format is placed on the clipboard; HTML is offered as
rich text where the platform allows it, falling back to plain text.

Every flag can also be set in $HOME/.readease.yaml or through READEASE_*
environment variables (e.g. READEASE_FORMAT=html). A "sanitize" section in
the config file extends the sanitizer rules:

  sanitize:
    remove_tags: [aside]
    remove_class_substrings: [newsletter]`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	flags := exportCmd.Flags()

	// Output settings
	flags.StringP("format", "f", "markdown", "artifact: markdown, text, html")
	flags.String("emit", "raw", "output encoding: raw (the artifact), json, jsonl, yaml")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.Bool("copy", false, "copy the artifact to the clipboard")
	flags.Bool("stats", false, "print sanitizer statistics to stderr")

	// Fetch settings
	flags.String("fetch-mode", "static", "fetch mode: static, dynamic")
	flags.Duration("timeout", 30*time.Second, "request timeout")
	flags.String("max-input-size", "10MB", "max document size (e.g., 512KB, 5MB, 0=unlimited)")
	flags.String("wait-for", "", "CSS selector to wait for in dynamic mode")
	flags.IntP("concurrency", "c", 3, "concurrent fetches when exporting several URLs")

	// Conversion settings
	flags.String("base-url", "", "URL used to resolve relative links and images")
	flags.String("engine", string(markdown.EngineNative), "markdown engine: native, commonmark")
	flags.String("line-break", string(markdown.LineBreakHard), "<br> rendering: hard, soft")
	flags.String("figcaption", string(markdown.FigcaptionItalic), "figcaption rendering: italic, blockquote")
	flags.Bool("no-quote-heuristics", false, "disable pull-quote detection")
	flags.Bool("no-dedupe-title", false, "always prepend the title, even if the article starts with it")
	flags.String("preset", "default", "sanitizer preset: default, minimal")
	flags.Bool("strict-html", false, "run the HTML artifact through a strict allow-list policy")
	flags.Bool("pretty-html", false, "indent the HTML artifact")

	for key, name := range map[string]string{
		"format":              "format",
		"emit":                "emit",
		"fetch_mode":          "fetch-mode",
		"timeout":             "timeout",
		"max_input_size":      "max-input-size",
		"wait_for":            "wait-for",
		"concurrency":         "concurrency",
		"base_url":            "base-url",
		"engine":              "engine",
		"line_break":          "line-break",
		"figcaption":          "figcaption",
		"no_quote_heuristics": "no-quote-heuristics",
		"no_dedupe_title":     "no-dedupe-title",
		"preset":              "preset",
		"strict_html":         "strict-html",
		"pretty_html":         "pretty-html",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}
}

// exportSettings is the resolved command configuration.
type exportSettings struct {
	format       export.Format
	emit         output.Format
	fetchMode    string
	timeout      time.Duration
	maxInputSize int64
	waitFor      string
	concurrency  int
	baseURL      string
	options      []readease.Option
}

// loadSettings resolves flags, environment and config file values.
func loadSettings(v *viper.Viper) (*exportSettings, error) {
	format, err := export.ParseFormat(v.GetString("format"))
	if err != nil {
		return nil, err
	}
	emit, err := output.ParseFormat(v.GetString("emit"))
	if err != nil {
		return nil, err
	}

	var maxSize int64
	if s := strings.TrimSpace(v.GetString("max_input_size")); s != "" && s != "0" {
		n, err := humanize.ParseBytes(s)
		if err != nil {
			return nil, fmt.Errorf("invalid max-input-size %q: %w", s, err)
		}
		maxSize = int64(n)
	}

	fetchMode := v.GetString("fetch_mode")
	if fetchMode != "static" && fetchMode != "dynamic" {
		return nil, fmt.Errorf("unknown fetch mode: %s (use 'static' or 'dynamic')", fetchMode)
	}

	var sanitizeCfg *sanitize.Config
	switch preset := v.GetString("preset"); preset {
	case "default", "":
		sanitizeCfg = sanitize.DefaultConfig()
	case "minimal":
		sanitizeCfg = sanitize.PresetMinimal()
	default:
		return nil, fmt.Errorf("unknown preset: %s (use 'default' or 'minimal')", preset)
	}
	if v.IsSet("sanitize") {
		var extra sanitize.Config
		if err := v.UnmarshalKey("sanitize", &extra); err != nil {
			return nil, fmt.Errorf("invalid sanitize config: %w", err)
		}
		sanitizeCfg = sanitizeCfg.Merge(&extra)
	}
	if v.GetBool("strict_html") {
		sanitizeCfg.StrictHTML = true
	}

	mdOpts := markdown.DefaultOptions()
	mdOpts.Engine = markdown.Engine(v.GetString("engine"))
	mdOpts.LineBreak = markdown.LineBreak(v.GetString("line_break"))
	mdOpts.Figcaption = markdown.Figcaption(v.GetString("figcaption"))
	mdOpts.QuoteHeuristics = !v.GetBool("no_quote_heuristics")
	mdOpts.BaseURL = v.GetString("base_url")

	s := &exportSettings{
		format:       format,
		emit:         emit,
		fetchMode:    fetchMode,
		timeout:      v.GetDuration("timeout"),
		maxInputSize: maxSize,
		waitFor:      v.GetString("wait_for"),
		concurrency:  v.GetInt("concurrency"),
		baseURL:      mdOpts.BaseURL,
	}
	s.options = []readease.Option{
		readease.WithFormat(format),
		readease.WithTimeout(s.timeout),
		readease.WithMaxInputSize(maxSize),
		readease.WithMarkdown(mdOpts),
		readease.WithSanitizeConfig(sanitizeCfg),
		readease.WithPrettyHTML(v.GetBool("pretty_html")),
		readease.WithDedupeTitle(!v.GetBool("no_dedupe_title")),
	}
	return s, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	settings, err := loadSettings(viper.GetViper())
	if err != nil {
		logError("%v", err)
		return err
	}

	copyToClipboard, _ := cmd.Flags().GetBool("copy")
	if copyToClipboard && len(args) > 1 {
		err := fmt.Errorf("--copy accepts a single input, got %d", len(args))
		logError("%v", err)
		return err
	}

	opts := settings.options
	if settings.fetchMode == "dynamic" {
		f, err := clifetcher.NewDynamicFetcher(clifetcher.Config{
			Timeout:         settings.timeout,
			WaitForSelector: settings.waitFor,
		})
		if err != nil {
			logger.Error("failed to create dynamic fetcher", "error", err)
			return err
		}
		opts = append(opts, readease.WithFetcher(f))
	}

	r, err := readease.New(opts...)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		return err
	}
	defer func() { _ = r.Close() }()

	// With --copy the artifact goes to the clipboard instead of stdout
	// unless an output was asked for explicitly.
	printOutput := !copyToClipboard || cmd.Flags().Changed("output") || cmd.Flags().Changed("emit")

	var writer output.Writer
	if printOutput {
		out := cmd.OutOrStdout()
		if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
			f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
			if err != nil {
				logger.Error("failed to create output file", "path", outPath, "error", err)
				return err
			}
			defer func() { _ = f.Close() }()
			out = f
		}
		writer, err = output.NewWriter(out, settings.emit, output.WithArtifact(settings.format))
		if err != nil {
			return err
		}
	}

	showStats, _ := cmd.Flags().GetBool("stats")
	var failed int
	for res := range exportAll(ctx, r, cmd.InOrStdin(), args, settings) {
		if res.Error != nil {
			failed++
			logError("%s: %v", res.URL, res.Error)
			continue
		}
		if showStats && res.Stats != nil {
			logInfo("%s: %s (%s, %s)", displayName(res.URL), res.Stats.String(), res.Extractor, res.ExportDuration.Round(time.Millisecond))
		}
		if writer != nil {
			if err := writer.Write(res); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
		if copyToClipboard {
			if err := clipboard.System().CopyResult(&res.Result, settings.format); err != nil {
				logError("%v", err)
				return err
			}
			artifact, _ := res.Artifact(settings.format)
			logInfo("Copied %s (%s) to the clipboard", settings.format, humanize.Bytes(uint64(len(artifact))))
		}
	}

	if writer != nil {
		if err := writer.Close(); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, len(args))
	}
	return nil
}

// exportAll exports every input. Several URLs are fetched concurrently and
// may complete out of order; files and stdin are processed in order.
func exportAll(ctx context.Context, r *readease.Readease, stdin io.Reader, inputs []string, s *exportSettings) <-chan *readease.Result {
	allURLs := len(inputs) > 1
	for _, in := range inputs {
		allURLs = allURLs && isURL(in)
	}
	if allURLs {
		return r.ExportMany(ctx, inputs, s.concurrency)
	}

	results := make(chan *readease.Result, len(inputs))
	go func() {
		defer close(results)
		for _, in := range inputs {
			res, err := exportOne(ctx, r, stdin, in, s)
			if err != nil {
				res = &readease.Result{URL: in, Error: err}
			}
			results <- res
		}
	}()
	return results
}

func exportOne(ctx context.Context, r *readease.Readease, stdin io.Reader, input string, s *exportSettings) (*readease.Result, error) {
	if isURL(input) {
		return r.Export(ctx, input)
	}

	var src io.Reader
	if input == "-" {
		src = stdin
	} else {
		f, err := os.Open(input) //#nosec G304 -- CLI tool reads user-specified input file
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		src = f
	}

	document, err := readLimited(src, s.maxInputSize)
	if err != nil {
		return nil, err
	}
	res, err := r.ExportHTML(document, s.baseURL)
	if err != nil {
		return nil, err
	}
	res.URL = input
	return res, nil
}

// readLimited reads at most limit+1 bytes so ExportHTML can reject an
// oversized document without reading all of it.
func readLimited(src io.Reader, limit int64) (string, error) {
	if limit > 0 {
		src = io.LimitReader(src, limit+1)
	}
	b, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(b), nil
}

func isURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func displayName(s string) string {
	if s == "-" || s == "" {
		return "stdin"
	}
	return s
}
