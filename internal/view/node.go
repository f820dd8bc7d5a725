// Package view maps glossary records to a declarative view tree. The tree
// does not depend on any display API: it is serialized to HTML for the site
// and the server, walked by the terminal browser, and inspected by tests.
package view

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr is a single element attribute. Attribute order is preserved so that
// serialization is deterministic.
type Attr struct {
	Key string
	Val string
}

// Node is an element, a text node (Tag == ""), or a trusted HTML fragment
// (Tag == "" and Raw != "").
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Raw      string
	Children []*Node
}

// El builds an element node.
func El(tag string, attrs []Attr, children ...*Node) *Node {
	return &Node{Tag: tag, Attrs: attrs, Children: compact(children)}
}

// T builds a text node.
func T(text string) *Node {
	return &Node{Text: text}
}

// RawHTML wraps an already rendered, trusted HTML fragment.
func RawHTML(fragment string) *Node {
	return &Node{Raw: fragment}
}

// A is shorthand for building attribute lists from key/value pairs.
func A(kv ...string) []Attr {
	attrs := make([]Attr, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs = append(attrs, Attr{Key: kv[i], Val: kv[i+1]})
	}
	return attrs
}

func compact(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Attr returns the value of an attribute and whether it is set.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func (n *Node) SetAttr(key, val string) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Val = val
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Val: val})
}

// HasClass reports whether the class attribute contains class.
func (n *Node) HasClass(class string) bool {
	v, _ := n.Attr("class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants depth-first, in document order. It
// stops descending below a node when visit returns false.
func (n *Node) Walk(visit func(*Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// FindAll returns every descendant (including n) carrying class.
func (n *Node) FindAll(class string) []*Node {
	var found []*Node
	n.Walk(func(c *Node) bool {
		if c.HasClass(class) {
			found = append(found, c)
		}
		return true
	})
	return found
}

// Find returns the first node carrying class, or nil.
func (n *Node) Find(class string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.HasClass(class) {
			found = c
			return false
		}
		return true
	})
	return found
}

// FindID returns the node with the given id attribute, or nil.
func (n *Node) FindID(id string) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if v, ok := c.Attr("id"); ok && v == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// TextContent returns the visible text of the subtree: every non-empty text
// run, trimmed and joined by single spaces.
func (n *Node) TextContent() string {
	var parts []string
	n.Walk(func(c *Node) bool {
		switch {
		case c.Tag == "" && c.Raw != "":
			if t := fragmentText(c.Raw); t != "" {
				parts = append(parts, t)
			}
		case c.Tag == "":
			if t := strings.TrimSpace(c.Text); t != "" {
				parts = append(parts, t)
			}
		}
		return true
	})
	return strings.Join(parts, " ")
}

func fragmentText(fragment string) string {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div})
	if err != nil {
		return ""
	}
	var parts []string
	var collect func(*html.Node)
	collect = func(h *html.Node) {
		if h.Type == html.TextNode {
			if t := strings.TrimSpace(h.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := h.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	for _, h := range nodes {
		collect(h)
	}
	return strings.Join(parts, " ")
}

// Clone returns a deep copy of the subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Tag: n.Tag, Text: n.Text, Raw: n.Raw}
	if n.Attrs != nil {
		c.Attrs = append([]Attr(nil), n.Attrs...)
	}
	for _, child := range n.Children {
		c.Children = append(c.Children, child.Clone())
	}
	return c
}

// Render writes the subtree as HTML.
func Render(w io.Writer, n *Node) error {
	for _, h := range toHTML(n) {
		if err := html.Render(w, h); err != nil {
			return err
		}
	}
	return nil
}

// HTML returns the subtree serialized as an HTML string.
func HTML(n *Node) string {
	var b strings.Builder
	if err := Render(&b, n); err != nil {
		return ""
	}
	return b.String()
}

func toHTML(n *Node) []*html.Node {
	if n == nil {
		return nil
	}
	if n.Tag == "" {
		if n.Raw != "" {
			nodes, err := html.ParseFragment(strings.NewReader(n.Raw), &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div})
			if err != nil {
				return []*html.Node{{Type: html.TextNode, Data: n.Raw}}
			}
			return nodes
		}
		return []*html.Node{{Type: html.TextNode, Data: n.Text}}
	}

	h := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	for _, a := range n.Attrs {
		h.Attr = append(h.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	for _, c := range n.Children {
		for _, hc := range toHTML(c) {
			h.AppendChild(hc)
		}
	}
	return []*html.Node{h}
}
