package dom

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
)

// Render serializes n, including its own tag, as HTML.
func Render(n *Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, ToHTML(n)); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

// InnerHTML serializes the children of n as HTML.
func InnerHTML(n *Node) (string, error) {
	var buf bytes.Buffer
	for _, c := range n.Children {
		if err := html.Render(&buf, ToHTML(c)); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return buf.String(), nil
}
