package markdown

import (
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/jmylchreest/readease/pkg/dom"
)

func parse(t *testing.T, fragment string) *dom.Node {
	t.Helper()
	root, err := dom.Parse(fragment)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return root
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name string
		html string
		opts *Options
		want string
	}{
		{
			name: "heading",
			html: `<h2>Title</h2>`,
			want: "## Title",
		},
		{
			name: "heading and paragraph",
			html: `<h1>Hello</h1><p>World</p>`,
			want: "# Hello\n\nWorld",
		},
		{
			name: "whitespace collapses",
			html: "<p>a   \n\t b</p>",
			want: "a b",
		},
		{
			name: "nested list indents four spaces",
			html: `<ul><li>A<ul><li>B</li></ul></li></ul>`,
			want: "* A\n    * B",
		},
		{
			name: "three level list",
			html: `<ul><li>A<ul><li>B<ol><li>C</li></ol></li></ul></li><li>D</li></ul>`,
			want: "* A\n    * B\n        1. C\n* D",
		},
		{
			name: "ordered list honours start",
			html: `<ol start="3"><li>x</li><li>y</li></ol>`,
			want: "3. x\n4. y",
		},
		{
			name: "ordered list ignores bad start",
			html: `<ol start="abc"><li>x</li></ol>`,
			want: "1. x",
		},
		{
			name: "stray list item",
			html: `<li>solo</li>`,
			want: "solo",
		},
		{
			name: "inline emphasis",
			html: `<p>Hello <b>bold</b> and <i>it</i>.</p>`,
			want: "Hello **bold** and *it*.",
		},
		{
			name: "edge whitespace moves outside markers",
			html: `<p>a<strong> b</strong></p>`,
			want: "a **b**",
		},
		{
			name: "empty emphasis renders nothing",
			html: `<p>x<b></b><em> </em>y</p>`,
			want: "xy",
		},
		{
			name: "inline code",
			html: `<p>Run <code>go test</code></p>`,
			want: "Run `go test`",
		},
		{
			name: "inline code with backtick",
			html: "<p><code>a`b</code></p>",
			want: "`` a`b ``",
		},
		{
			name: "pre keeps raw text",
			html: "<pre><code>  line1\n    line2\n</code></pre>",
			want: "```\nline1\n    line2\n```",
		},
		{
			name: "hard line break",
			html: `<p>a<br>b</p>`,
			want: "a  \nb",
		},
		{
			name: "soft line break",
			html: `<p>a<br>b</p>`,
			opts: &Options{LineBreak: LineBreakSoft},
			want: "a\nb",
		},
		{
			name: "blockquote collapses blank lines",
			html: `<blockquote><p>one</p><p>two</p></blockquote>`,
			want: "> one\n> two",
		},
		{
			name: "full quotation paragraph",
			html: `<p>“To be or not”</p>`,
			want: "> “To be or not”",
		},
		{
			name: "corner bracket quotation",
			html: `<p>「引用です」</p>`,
			want: "> 「引用です」",
		},
		{
			name: "short quotation is not promoted",
			html: `<p>“a”</p>`,
			want: "“a”",
		},
		{
			name: "caption then quotation inside figure is h1",
			html: `<figure><img src="a.jpg" alt="a"><figcaption>Caption</figcaption><p>“Big words”</p></figure>`,
			want: "![a](a.jpg)\n\n*Caption*\n\n# “Big words”",
		},
		{
			name: "caption then quotation outside figure is h2",
			html: `<figcaption>Cap</figcaption><p>“Big words”</p>`,
			want: "*Cap*\n\n## “Big words”",
		},
		{
			name: "paragraph after figure is not promoted",
			html: `<figure><figcaption>Cap</figcaption></figure><p>“Big words”</p>`,
			want: "*Cap*\n\n> “Big words”",
		},
		{
			name: "quote heuristics off",
			html: `<figcaption>Cap</figcaption><p>“Big words”</p>`,
			opts: &Options{QuoteHeuristics: false},
			want: "*Cap*\n\n“Big words”",
		},
		{
			name: "blockquote captions",
			html: `<figure><figcaption>Cap</figcaption></figure>`,
			opts: &Options{Figcaption: FigcaptionBlockquote, QuoteHeuristics: true},
			want: "> Cap",
		},
		{
			name: "unknown tags pass through",
			html: `<section><span>one</span> <custom-el>two</custom-el></section>`,
			want: "onetwo",
		},
		{
			name: "image without url keeps alt",
			html: `<img alt="gone">`,
			want: "![gone]()",
		},
		{
			name: "image without url or alt is dropped",
			html: `<p>x</p><img>`,
			want: "x",
		},
		{
			name: "blank lines collapse",
			html: `<p>a</p><div><br><br><br></div><p>b</p>`,
			opts: &Options{LineBreak: LineBreakSoft},
			want: "a\n\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			if tt.opts != nil {
				opts = *tt.opts
			}
			got := New(opts).Serialize(parse(t, tt.html))
			if got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerialize_Anchors(t *testing.T) {
	s := New(Options{BaseURL: "http://example.com/post/", QuoteHeuristics: true})

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "image-only anchor unwraps",
			html: `<a href="http://x"><img alt="cat" src="c.jpg"></a>`,
			want: "![cat](http://example.com/post/c.jpg)",
		},
		{
			name: "picture inside anchor unwraps",
			html: `<a href="/full.jpg"> <picture><source srcset="/p.webp 2x"><img alt="p"></picture>&nbsp;</a>`,
			want: "![p](http://example.com/p.webp)",
		},
		{
			name: "relative link made absolute",
			html: `<p>See <a href="../doc">the docs</a> now</p>`,
			want: "See [the docs](http://example.com/doc) now",
		},
		{
			name: "empty text falls back to href",
			html: `<a href="http://x.org/y"></a>`,
			want: "[http://x.org/y](http://x.org/y)",
		},
		{
			name: "anchor with text and image stays a link",
			html: `<a href="http://x.org/">go <img src="i.png"></a>`,
			want: "[go ![](http://example.com/post/i.png)](http://x.org/)",
		},
		{
			name: "anchor without href keeps empty destination",
			html: `<p><a>plain</a> text</p>`,
			want: "[plain]() text",
		},
		{
			name: "javascript href loses destination",
			html: `<p><a href="javascript:void(0)">click</a></p>`,
			want: "[click]()",
		},
		{
			name: "empty anchor without href emits nothing",
			html: `<p>a<a> </a>b</p>`,
			want: "ab",
		},
		{
			name: "parentheses in href wrapped",
			html: `<a href="http://x.org/a_(b)">w</a>`,
			want: "[w](<http://x.org/a_(b)>)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Serialize(parse(t, tt.html)); got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerialize_QuoteHint(t *testing.T) {
	root := parse(t, `<div>Quoted <b>text</b></div><p>plain</p>`)
	root.Children[0].Hints.QuoteLike = true

	got := New(DefaultOptions()).Serialize(root)
	if want := "> Quoted **text**\n\nplain"; got != want {
		t.Errorf("Serialize() = %q, want %q", got, want)
	}

	got = New(Options{}).Serialize(root)
	if strings.Contains(got, ">") {
		t.Errorf("quote hint should be ignored with heuristics off, got %q", got)
	}
}

func TestSerialize_NoTripleNewlines(t *testing.T) {
	inputs := []string{
		`<h1>a</h1><div><p></p><p>b</p></div><figure><figcaption>c</figcaption></figure><p>d</p>`,
		`<ul><li><p>x</p><p>y</p></li></ul><pre>

code

</pre><blockquote><p>q</p></blockquote>`,
		`<p>a<br><br><br><br>b</p>`,
	}
	triple := regexp.MustCompile(`\n{3,}`)
	for _, in := range inputs {
		got := New(DefaultOptions()).Serialize(parse(t, in))
		if triple.MatchString(got) {
			t.Errorf("output for %q contains 3+ newlines: %q", in, got)
		}
		if got != strings.TrimSpace(got) {
			t.Errorf("output for %q is not trimmed: %q", in, got)
		}
	}
}

func TestConvert_Images(t *testing.T) {
	root := parse(t, `<p><img src="/a.png"></p><picture><source srcset="/b.webp 2x"><img src="/b.png"></picture><img alt="none">`)
	out := New(Options{BaseURL: "http://e.com/"}).Convert(root)

	want := []string{"http://e.com/a.png", "http://e.com/b.webp"}
	if !slices.Equal(out.Images, want) {
		t.Errorf("Images = %v, want %v", out.Images, want)
	}
}

func TestConvert_StateIsPerCall(t *testing.T) {
	s := New(DefaultOptions())
	first := s.Serialize(parse(t, `<figcaption>Cap</figcaption>`))
	second := s.Serialize(parse(t, `<p>“Big words”</p>`))

	if first != "*Cap*" {
		t.Errorf("first = %q", first)
	}
	if second != "> “Big words”" {
		t.Errorf("caption state leaked across calls: %q", second)
	}
}

func TestSerialize_MaxDepth(t *testing.T) {
	t.Run("flattens below max depth", func(t *testing.T) {
		root := parse(t, `<div><div><b>deep <i>text</i></b></div></div>`)
		got := New(Options{MaxDepth: 2}).Serialize(root)
		if got != "deep text" {
			t.Errorf("Serialize() = %q, want flattened text", got)
		}
	})

	// The HTML parser caps nesting at 512 open elements, so trees deeper
	// than the default limit are built by hand.
	t.Run("default limit on a built tree", func(t *testing.T) {
		node := dom.NewElement("b", nil, dom.NewText("bottom"))
		for i := 0; i < 2000; i++ {
			node = dom.NewElement("span", nil, node)
		}
		root := dom.NewElement("body", nil, node)
		if got := New(DefaultOptions()).Serialize(root); got != "bottom" {
			t.Errorf("deep tree = %q, want %q", got, "bottom")
		}
	})

	t.Run("list item past the limit", func(t *testing.T) {
		li := dom.NewElement("li", nil,
			dom.NewElement("b", nil, dom.NewText("item")),
			dom.NewText("  one"),
		)
		root := dom.NewElement("body", nil, dom.NewElement("ul", nil, li))
		if got := New(Options{MaxDepth: 1}).Serialize(root); got != "* item one" {
			t.Errorf("Serialize() = %q, want %q", got, "* item one")
		}
	})
}

func TestSerialize_Blocks(t *testing.T) {
	tests := []struct {
		name string
		root *dom.Node
		opts Options
		want string
	}{
		{
			name: "empty pre keeps its fence",
			root: dom.NewElement("body", nil, dom.NewElement("pre", nil, dom.NewText("  \n "))),
			want: "```\n\n```",
		},
		{
			name: "blank caption lines are prefixed",
			root: dom.NewElement("body", nil, dom.NewElement("figcaption", nil,
				dom.NewText("one"), dom.NewElement("br", nil), dom.NewElement("br", nil), dom.NewText("two"))),
			opts: Options{Figcaption: FigcaptionBlockquote, LineBreak: LineBreakSoft},
			want: "> one\n> \n> two",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.opts).Serialize(tt.root); got != tt.want {
				t.Errorf("Serialize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSerialize_NilRoot(t *testing.T) {
	if got := New(DefaultOptions()).Convert(nil); got.Markdown != "" || got.Images != nil {
		t.Errorf("Convert(nil) = %+v", got)
	}
}

// nestedListDepth parses md with goldmark and returns how deep lists nest.
func nestedListDepth(md string) int {
	src := []byte(md)
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	deepest := 0
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if _, ok := n.(*ast.List); !ok {
			return ast.WalkContinue, nil
		}
		depth := 0
		for p := ast.Node(n); p != nil; p = p.Parent() {
			if _, ok := p.(*ast.List); ok {
				depth++
			}
		}
		deepest = max(deepest, depth)
		return ast.WalkContinue, nil
	})
	return deepest
}

func TestSerialize_NestedListsParseAsNested(t *testing.T) {
	tests := []struct {
		html string
		want int
	}{
		{`<ul><li>A</li><li>B</li></ul>`, 1},
		{`<ul><li>A<ul><li>B</li></ul></li></ul>`, 2},
		{`<ol><li>A<ul><li>B<ul><li>C</li></ul></li></ul></li></ol>`, 3},
	}
	for _, tt := range tests {
		md := New(DefaultOptions()).Serialize(parse(t, tt.html))
		if got := nestedListDepth(md); got != tt.want {
			t.Errorf("list depth of %q = %d, want %d", md, got, tt.want)
		}
	}
}
