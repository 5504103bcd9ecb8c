package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses an HTML fragment and returns it wrapped in a synthetic
// "body" element, the way a browser exposes div.innerHTML.
func Parse(fragment string) (*Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return nil, fmt.Errorf("parse html fragment: %w", err)
	}
	root := NewElement("body", nil)
	for _, n := range nodes {
		if c := FromHTML(n); c != nil {
			root.Children = append(root.Children, c)
		}
	}
	return root, nil
}

// FromHTML converts an x/net/html node into an owned tree. Comments,
// doctypes and other non-content nodes are dropped; a document node is
// converted to its <body> element when one exists.
func FromHTML(n *html.Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Type {
	case html.TextNode:
		return NewText(n.Data)
	case html.ElementNode:
		attrs := make(map[string]string, len(n.Attr))
		for _, a := range n.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + a.Key
			}
			attrs[key] = a.Val
		}
		el := NewElement(n.Data, attrs)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := FromHTML(c); child != nil {
				el.Children = append(el.Children, child)
			}
		}
		return el
	case html.DocumentNode:
		if body := findBody(n); body != nil {
			return FromHTML(body)
		}
		root := NewElement("body", nil)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := FromHTML(c); child != nil {
				root.Children = append(root.Children, child)
			}
		}
		return root
	default:
		return nil
	}
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// ToHTML converts an owned tree back into an x/net/html tree.
func ToHTML(n *Node) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == TextNode {
		return &html.Node{Type: html.TextNode, Data: n.Data}
	}
	out := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Data,
		DataAtom: atom.Lookup([]byte(n.Data)),
	}
	for _, k := range n.AttributeKeys() {
		out.Attr = append(out.Attr, html.Attribute{Key: k, Val: n.Attr[k]})
	}
	for _, c := range n.Children {
		out.AppendChild(ToHTML(c))
	}
	return out
}
