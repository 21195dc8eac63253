// ABOUTME: Immutable document tree value type built from parsed HTML
// ABOUTME: Provides parsing, fallback handling and deterministic serialization

// Package annotate implements the offset-based highlight overlay engine.
// It projects a document tree onto a canonical plain-text coordinate space,
// resolves offset ranges back to tree positions, and composes highlight
// overlays on top of the original markup.
package annotate

import (
	"html"
	"strings"

	coreerrors "github.com/samling-jackyjyo/hoarder-sub003/core/errors"
	xhtml "golang.org/x/net/html"
)

// NodeType discriminates the node kinds of a document tree
type NodeType int

const (
	// DocumentNode is the synthetic root holding the content's top-level nodes
	DocumentNode NodeType = iota
	// ElementNode is an HTML element with a tag, attributes and children
	ElementNode
	// TextNode is a text leaf
	TextNode
)

// Attribute is a single element attribute in source order
type Attribute struct {
	Key string
	Val string
}

// Node is an immutable document tree node. Trees are never mutated in place;
// the compositor produces new trees sharing untouched subtrees with the
// source.
type Node struct {
	Type     NodeType
	Tag      string
	Attrs    []Attribute
	Children []*Node

	// Text holds the content of text leaves
	Text string
}

// voidElements have no children and no closing tag
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Parse builds a document tree from sanitized HTML markup.
// The returned root is a DocumentNode wrapping the body's children.
func Parse(src string) (*Node, error) {
	doc, err := xhtml.Parse(strings.NewReader(src))
	if err != nil {
		return nil, &coreerrors.ParseError{Reason: err.Error()}
	}

	root := &Node{Type: DocumentNode}
	body := findBody(doc)
	if body == nil {
		body = doc
	}
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if n := convert(c); n != nil {
			root.Children = append(root.Children, n)
		}
	}
	return root, nil
}

// ParseOrOpaque parses markup, degrading to a single opaque text leaf when
// parsing fails. The ParseError is returned alongside the fallback tree so
// the caller can disable highlighting while still displaying the document.
func ParseOrOpaque(src string) (*Node, error) {
	root, err := Parse(src)
	if err != nil {
		return Opaque(src), err
	}
	return root, nil
}

// Opaque wraps raw content in a document with a single text leaf
func Opaque(text string) *Node {
	return &Node{
		Type:     DocumentNode,
		Children: []*Node{{Type: TextNode, Text: text}},
	}
}

// convert maps an x/net/html node into the immutable tree representation.
// Comments, doctypes and other non-content nodes are dropped.
func convert(n *xhtml.Node) *Node {
	switch n.Type {
	case xhtml.TextNode:
		return &Node{Type: TextNode, Text: n.Data}
	case xhtml.ElementNode:
		node := &Node{Type: ElementNode, Tag: n.Data}
		for _, a := range n.Attr {
			node.Attrs = append(node.Attrs, Attribute{Key: a.Key, Val: a.Val})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				node.Children = append(node.Children, child)
			}
		}
		return node
	}
	return nil
}

func findBody(n *xhtml.Node) *xhtml.Node {
	if n.Type == xhtml.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// HTML serializes the tree to markup. Serialization is deterministic:
// attributes are emitted in stored order and text is entity-escaped, so equal
// trees always produce byte-identical output.
func (n *Node) HTML() string {
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

func (n *Node) writeHTML(b *strings.Builder) {
	switch n.Type {
	case DocumentNode:
		for _, c := range n.Children {
			c.writeHTML(b)
		}
	case TextNode:
		b.WriteString(html.EscapeString(n.Text))
	case ElementNode:
		b.WriteByte('<')
		b.WriteString(n.Tag)
		for _, a := range n.Attrs {
			b.WriteByte(' ')
			b.WriteString(a.Key)
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(a.Val))
			b.WriteByte('"')
		}
		b.WriteByte('>')
		if voidElements[n.Tag] {
			return
		}
		for _, c := range n.Children {
			c.writeHTML(b)
		}
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteByte('>')
	}
}
