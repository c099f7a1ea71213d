// Package xmltree provides a minimal namespace-aware XML node tree with
// descendant lookup, enough to navigate the loosely-validated documents
// SUSHI vendors return. Vendor responses disagree on envelope nesting, so
// lookups search by (namespace, local name) anywhere below a node rather
// than by fixed paths.
package xmltree

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Node is one element of a parsed document.
type Node struct {
	Space    string // namespace URI
	Local    string // local element name
	Attrs    []xml.Attr
	Children []*Node

	text strings.Builder
}

// Parse reads an XML document and returns its root element.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Space: t.Name.Space, Local: t.Name.Local, Attrs: t.Attr}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parse xml: multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("parse xml: empty document")
	}
	return root, nil
}

// Text returns the node's directly contained character data, trimmed.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return strings.TrimSpace(n.text.String())
}

// Attr returns the value of the named attribute. The namespace of
// attributes is ignored; SUSHI attributes are unprefixed.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first direct child with the given namespace and name,
// or nil.
func (n *Node) Child(space, local string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Space == space && c.Local == local {
			return c
		}
	}
	return nil
}

// First returns the first descendant (document order, self excluded) with
// the given namespace and name, or nil.
func (n *Node) First(space, local string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Space == space && c.Local == local {
			return c
		}
		if found := c.First(space, local); found != nil {
			return found
		}
	}
	return nil
}

// All returns every descendant with the given namespace and name in
// document order.
func (n *Node) All(space, local string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Space == space && c.Local == local {
			out = append(out, c)
		}
		out = append(out, c.All(space, local)...)
	}
	return out
}

// Path walks a chain of direct children, returning nil if any hop is
// missing. All hops share one namespace.
func (n *Node) Path(space string, locals ...string) *Node {
	cur := n
	for _, name := range locals {
		cur = cur.Child(space, name)
		if cur == nil {
			return nil
		}
	}
	return cur
}
