package markdown

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"

	"github.com/jmylchreest/readease/pkg/dom"
)

func newCommonMarkConverter() *converter.Converter {
	return converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(
				commonmark.WithBulletListMarker("*"),
			),
			table.NewTablePlugin(),
			strikethrough.NewStrikethroughPlugin(),
		),
	)
}

// convertCommonMark renders root through html-to-markdown. Image sources
// are resolved first so lazy and responsive images come out the same as
// with the native serializer.
func (s *Serializer) convertCommonMark(root *dom.Node) (Output, error) {
	prepared, found := s.prepareImages(root)

	html, err := dom.InnerHTML(prepared)
	if err != nil {
		return Output{}, err
	}

	var opts []converter.ConvertOptionFunc
	if u := s.resolver.Base(); u != nil {
		opts = append(opts, converter.WithDomain(u.String()))
	}
	md, err := s.conv.ConvertString(html, opts...)
	if err != nil {
		return Output{}, fmt.Errorf("convert html to markdown: %w", err)
	}
	return Output{
		Markdown: finish(strings.ReplaceAll(md, "\r\n", "\n")),
		Images:   found,
	}, nil
}

// prepareImages returns a copy of root where every img carries its
// resolved absolute URL in src, and the list of those URLs.
func (s *Serializer) prepareImages(root *dom.Node) (*dom.Node, []string) {
	clone := root.Clone()
	var found []string

	var visit func(n *dom.Node)
	visit = func(n *dom.Node) {
		switch n.Kind {
		case dom.KindPicture:
			img, ok := s.resolver.Resolve(n, nil)
			if ok {
				found = append(found, img.URL)
			}
			for _, inner := range n.FindAll(dom.KindImage) {
				setSource(inner, img.URL)
			}
			return
		case dom.KindImage:
			img, ok := s.resolver.Resolve(n, nil)
			if ok {
				found = append(found, img.URL)
			}
			setSource(n, img.URL)
			return
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(clone)
	return clone, found
}

func setSource(img *dom.Node, src string) {
	img.RemoveAttribute("srcset")
	img.RemoveAttribute("data-srcset")
	if src == "" {
		img.RemoveAttribute("src")
		return
	}
	img.SetAttribute("src", src)
}
