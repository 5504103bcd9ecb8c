// Package dom provides the owned node tree that readease transforms.
//
// A tree is built once from golang.org/x/net/html output and from then on is
// plain Go data: every element owns its children, there are no parent
// pointers, and Clone gives callers a private copy to mutate.
package dom

import (
	"sort"
	"strings"
)

// NodeType distinguishes text from element nodes.
type NodeType int

const (
	TextNode NodeType = iota
	ElementNode
)

// Hints carries facts computed from attributes that a later stage strips.
type Hints struct {
	// QuoteLike is set when the element's original class attribute
	// contained "quote".
	QuoteLike bool
}

// Node is either a text node (Data holds the text) or an element
// (Data holds the lower-case tag name).
type Node struct {
	Type     NodeType
	Data     string
	Kind     Kind
	Attr     map[string]string
	Children []*Node
	Hints    Hints
}

// NewText returns a text node.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Data: text}
}

// NewElement returns an element node. attrs may be nil.
func NewElement(tag string, attrs map[string]string, children ...*Node) *Node {
	tag = strings.ToLower(tag)
	n := &Node{
		Type:     ElementNode,
		Data:     tag,
		Kind:     KindOf(tag),
		Attr:     make(map[string]string, len(attrs)),
		Children: children,
	}
	for k, v := range attrs {
		n.Attr[strings.ToLower(k)] = v
	}
	return n
}

// IsElement reports whether n is an element.
func (n *Node) IsElement() bool {
	return n != nil && n.Type == ElementNode
}

// Is reports whether n is an element of the given kind.
func (n *Node) Is(k Kind) bool {
	return n.IsElement() && n.Kind == k
}

// Attribute returns the value of key, or "" when absent.
func (n *Node) Attribute(key string) string {
	if !n.IsElement() {
		return ""
	}
	return n.Attr[key]
}

// HasAttribute reports whether key is set on n.
func (n *Node) HasAttribute(key string) bool {
	if !n.IsElement() {
		return false
	}
	_, ok := n.Attr[key]
	return ok
}

// SetAttribute sets key to val.
func (n *Node) SetAttribute(key, val string) {
	if n.Attr == nil {
		n.Attr = make(map[string]string)
	}
	n.Attr[strings.ToLower(key)] = val
}

// RemoveAttribute deletes key and reports whether it was present.
func (n *Node) RemoveAttribute(key string) bool {
	if _, ok := n.Attr[key]; !ok {
		return false
	}
	delete(n.Attr, key)
	return true
}

// AttributeKeys returns the attribute names of n in sorted order.
func (n *Node) AttributeKeys() []string {
	keys := make([]string, 0, len(n.Attr))
	for k := range n.Attr {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ElementChildren returns the element children of n, skipping text.
func (n *Node) ElementChildren() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.IsElement() {
			out = append(out, c)
		}
	}
	return out
}

// Find returns the first descendant of n (excluding n) of kind k in
// document order, or nil.
func (n *Node) Find(k Kind) *Node {
	for _, c := range n.Children {
		if c.Is(k) {
			return c
		}
		if found := c.Find(k); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant of n of kind k in document order.
func (n *Node) FindAll(k Kind) []*Node {
	var out []*Node
	n.Walk(func(d *Node) bool {
		if d != n && d.Is(k) {
			out = append(out, d)
		}
		return true
	})
	return out
}

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the children of the node just visited.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Type:  n.Type,
		Data:  n.Data,
		Kind:  n.Kind,
		Hints: n.Hints,
	}
	if n.Attr != nil {
		c.Attr = make(map[string]string, len(n.Attr))
		for k, v := range n.Attr {
			c.Attr[k] = v
		}
	}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Equal reports whether two trees have the same shape, data, attributes
// and hints.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type || a.Data != b.Data || a.Hints != b.Hints {
		return false
	}
	if len(a.Attr) != len(b.Attr) || len(a.Children) != len(b.Children) {
		return false
	}
	for k, v := range a.Attr {
		if bv, ok := b.Attr[k]; !ok || bv != v {
			return false
		}
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
