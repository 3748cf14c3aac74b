package xbrl

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrMalformedDocument indicates the input bytes are not well-formed XML.
var ErrMalformedDocument = errors.New("input is not well-formed XML")

// Node is a single element of a parsed document. Only the local (unqualified)
// element and attribute names are retained: taxonomy vendors prefix the same
// concept with different namespace identifiers, so matching must never depend
// on the prefix or namespace URI.
type Node struct {
	Local    string
	Text     string
	Attrs    map[string]string
	Children []*Node
}

// Attr returns the value of the attribute with the given local name.
func (n *Node) Attr(name string) string {
	return n.Attrs[name]
}

// Document is an immutable tree of labeled nodes built from one XBRL
// instance document. It is owned exclusively by the extraction call that
// parsed it and is never mutated afterwards.
type Document struct {
	root *Node
}

// ParseDocument decodes raw bytes into a Document. Any XML syntax error,
// including an empty input, is reported as ErrMalformedDocument.
func ParseDocument(data []byte) (*Document, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var root *Node
	var stack []*Node
	var text []*strings.Builder

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}

		switch tok := token.(type) {
		case xml.StartElement:
			node := &Node{
				Local: tok.Name.Local,
				Attrs: make(map[string]string, len(tok.Attr)),
			}
			for _, attr := range tok.Attr {
				node.Attrs[attr.Name.Local] = attr.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("%w: multiple root elements", ErrMalformedDocument)
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
			text = append(text, &strings.Builder{})

		case xml.CharData:
			if len(text) > 0 {
				text[len(text)-1].Write(tok)
			}

		case xml.EndElement:
			node := stack[len(stack)-1]
			node.Text = text[len(text)-1].String()
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	}
	return &Document{root: root}, nil
}

// walk visits every node in document order (depth-first, pre-order) until
// the visitor returns false.
func (d *Document) walk(visit func(*Node) bool) {
	var rec func(*Node) bool
	rec = func(n *Node) bool {
		if !visit(n) {
			return false
		}
		for _, child := range n.Children {
			if !rec(child) {
				return false
			}
		}
		return true
	}
	rec(d.root)
}

// find returns the first node in document order satisfying the predicate,
// or nil when no node matches.
func (d *Document) find(pred func(*Node) bool) *Node {
	var found *Node
	d.walk(func(n *Node) bool {
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// descendant returns the first descendant of n (in document order) with the
// given local name, or nil.
func descendant(n *Node, local string) *Node {
	for _, child := range n.Children {
		if child.Local == local {
			return child
		}
		if hit := descendant(child, local); hit != nil {
			return hit
		}
	}
	return nil
}
