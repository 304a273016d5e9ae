package gdata

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// Attr is an attribute with its original prefix and resolved namespace.
type Attr struct {
	Prefix    string
	Name      string
	Namespace string
	Value     string
}

// Node is an element of a decoded XML document. It keeps the prefixes used
// on the wire so unhandled elements can be written back unchanged.
type Node struct {
	Prefix    string
	Name      string
	Namespace string
	Attrs     []Attr
	Children  []*Node
	Parent    *Node

	// scope maps every in-scope prefix to its namespace; "" is the default.
	scope map[string]string
	// parts holds character data (string) and child elements (*Node) in
	// document order.
	parts []any
}

// ParseNode decodes data and returns its root element.
func ParseNode(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader

	var (
		root  *Node
		stack []*Node
	)
	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errParsingXML(err.Error())
		}

		switch t := tok.(type) {
		case xml.StartElement:
			var parent *Node
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			} else if root != nil {
				return nil, errParsingXML("Extra content at the end of the document")
			}
			n, err := newNode(t, parent)
			if err != nil {
				return nil, errParsingXML(err.Error())
			}
			if parent == nil {
				root = n
			} else {
				parent.Children = append(parent.Children, n)
				parent.parts = append(parent.parts, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, errParsingXML("unexpected end element </" + qualified(t.Name.Space, t.Name.Local) + ">")
			}
			top := stack[len(stack)-1]
			if top.Prefix != t.Name.Space || top.Name != t.Name.Local {
				return nil, errParsingXML(fmt.Sprintf("element <%s> closed by </%s>",
					qualified(top.Prefix, top.Name), qualified(t.Name.Space, t.Name.Local)))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.parts = append(top.parts, string(t))
			}
		}
	}

	if root == nil {
		return nil, errParsingXML("Empty document.")
	}
	if len(stack) > 0 {
		return nil, errParsingXML("Premature end of data in tag " + qualified(stack[len(stack)-1].Prefix, stack[len(stack)-1].Name))
	}
	return root, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

func qualified(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + ":" + name
}

func newNode(t xml.StartElement, parent *Node) (*Node, error) {
	n := &Node{
		Prefix: t.Name.Space,
		Name:   t.Name.Local,
		Parent: parent,
		scope:  map[string]string{"xml": xmlNamespace},
	}
	if parent != nil {
		for k, v := range parent.scope {
			n.scope[k] = v
		}
	}

	// Declarations first, so attributes on the same element resolve.
	for _, a := range t.Attr {
		switch {
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			n.scope[""] = a.Value
		case a.Name.Space == "xmlns":
			n.scope[a.Name.Local] = a.Value
		}
	}

	for _, a := range t.Attr {
		attr := Attr{Prefix: a.Name.Space, Name: a.Name.Local, Value: a.Value}
		if attr.Prefix != "" && attr.Prefix != "xmlns" {
			ns, ok := n.scope[attr.Prefix]
			if !ok {
				return nil, fmt.Errorf("namespace prefix %s for %s on %s is not defined",
					attr.Prefix, attr.Name, qualified(n.Prefix, n.Name))
			}
			attr.Namespace = ns
		}
		n.Attrs = append(n.Attrs, attr)
	}

	ns, ok := n.scope[n.Prefix]
	if !ok && n.Prefix != "" {
		return nil, fmt.Errorf("namespace prefix %s on %s is not defined", n.Prefix, n.Name)
	}
	n.Namespace = ns
	return n, nil
}

// Text returns the element's own character data, excluding descendants.
func (n *Node) Text() string {
	var b strings.Builder
	for _, p := range n.parts {
		if s, ok := p.(string); ok {
			b.WriteString(s)
		}
	}
	return b.String()
}

// HasText reports whether the element contains any character data.
func (n *Node) HasText() bool {
	for _, p := range n.parts {
		if _, ok := p.(string); ok {
			return true
		}
	}
	return false
}

// Attr returns the value of the attribute called name regardless of its
// namespace, and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name && a.Prefix != "xmlns" {
			return a.Value, true
		}
	}
	return "", false
}

// AttrNS returns the value of the attribute name in namespace ns.
func (n *Node) AttrNS(ns, name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name && a.Namespace == ns {
			return a.Value, true
		}
	}
	return "", false
}

// Is reports whether the element has the given namespace and local name.
func (n *Node) Is(ns, name string) bool {
	return n.Namespace == ns && n.Name == name
}

// HasEarlierSibling reports whether an element with the same namespace and
// name precedes n under the same parent.
func (n *Node) HasEarlierSibling() bool {
	if n.Parent == nil {
		return false
	}
	for _, c := range n.Parent.Children {
		if c == n {
			return false
		}
		if c.Namespace == n.Namespace && c.Name == n.Name {
			return true
		}
	}
	return false
}

// Namespaces returns the prefixed namespaces in scope at n.
func (n *Node) Namespaces() map[string]string {
	out := make(map[string]string, len(n.scope))
	for k, v := range n.scope {
		if k != "" && k != "xml" {
			out[k] = v
		}
	}
	return out
}

func hasDisplayPrefix(n *Node) bool {
	return n.Prefix != "" && n.Namespace != AtomNamespace
}

// Describe renders n for error messages: "<parent/ns:name>", leaving out
// the prefix of Atom and unprefixed elements.
func (n *Node) Describe() string {
	self := n.Name
	if hasDisplayPrefix(n) {
		self = n.Prefix + ":" + n.Name
	}
	if n.Parent == nil {
		return "<" + self + ">"
	}
	parent := n.Parent.Name
	if hasDisplayPrefix(n.Parent) {
		parent = n.Parent.Prefix + ":" + n.Parent.Name
	}
	return "<" + parent + "/" + self + ">"
}

// XML serialises n and its descendants with their original prefixes.
func (n *Node) XML() string {
	var b strings.Builder
	n.writeXML(&b)
	return b.String()
}

func (n *Node) writeXML(b *strings.Builder) {
	name := qualified(n.Prefix, n.Name)
	b.WriteByte('<')
	b.WriteString(name)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(qualified(a.Prefix, a.Name))
		b.WriteString(`="`)
		writeEscapedXML(b, a.Value)
		b.WriteByte('"')
	}
	if len(n.parts) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, p := range n.parts {
		switch v := p.(type) {
		case string:
			writeEscapedXML(b, v)
		case *Node:
			v.writeXML(b)
		}
	}
	b.WriteString("</")
	b.WriteString(name)
	b.WriteByte('>')
}
