package gdata

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/gdata-go/internal/logger"
)

const xmlDeclaration = "<?xml version='1.0' encoding='UTF-8'?>"

// Parsable holds the content of a payload that no handler claimed so it
// can be written back out. Every resource embeds it, usually through Entry.
//
// The zero value is ready to use. Parsable also supplies no-op defaults for
// the optional hooks of XMLParsable and JSONParsable.
type Parsable struct {
	extraXML        []string
	extraNamespaces map[string]string
	extraJSON       []jsonMember
}

type jsonMember struct {
	name  string
	value json.RawMessage
}

func (p *Parsable) parsable() *Parsable { return p }

// ExtraXML returns the unhandled XML in the order it was read.
func (p *Parsable) ExtraXML() string {
	var b bytes.Buffer
	for _, s := range p.extraXML {
		b.WriteString(s)
	}
	return b.String()
}

// ExtraNamespaces returns the prefixed namespaces the unhandled XML needs.
func (p *Parsable) ExtraNamespaces() map[string]string {
	return MergeNamespaces(p.extraNamespaces)
}

// ExtraJSON returns the raw value of an unhandled JSON member.
func (p *Parsable) ExtraJSON(name string) (json.RawMessage, bool) {
	for _, m := range p.extraJSON {
		if m.name == name {
			return m.value, true
		}
	}
	return nil, false
}

// ExtraJSONMembers returns the names of the unhandled JSON members in order.
func (p *Parsable) ExtraJSONMembers() []string {
	names := make([]string, len(p.extraJSON))
	for i, m := range p.extraJSON {
		names[i] = m.name
	}
	return names
}

func (p *Parsable) keepXML(owner any, n *Node) {
	xml := n.XML()
	log := logger.Component("gdata")
	log.Debug().
		Str("type", fmt.Sprintf("%T", owner)).
		Str("xml", xml).
		Msg("unhandled XML")
	p.extraXML = append(p.extraXML, xml)
	for prefix, uri := range n.Namespaces() {
		if p.extraNamespaces == nil {
			p.extraNamespaces = make(map[string]string)
		}
		p.extraNamespaces[prefix] = uri
	}
}

func (p *Parsable) keepJSON(owner any, name string, value json.RawMessage) {
	log := logger.Component("gdata")
	log.Debug().
		Str("type", fmt.Sprintf("%T", owner)).
		Str("member", name).
		RawJSON("value", value).
		Msg("unhandled JSON")
	for i := range p.extraJSON {
		if p.extraJSON[i].name == name {
			p.extraJSON[i].value = value
			return
		}
	}
	p.extraJSON = append(p.extraJSON, jsonMember{name: name, value: value})
}

// PreParseXML reads attributes of the root element. The default does nothing.
func (p *Parsable) PreParseXML(*Node) error { return nil }

// ParseXMLNode handles one child element. The default claims nothing.
func (p *Parsable) ParseXMLNode(*Node) (bool, error) { return false, nil }

// PostParseXML validates after every child was read. The default accepts.
func (p *Parsable) PostParseXML() error { return nil }

// PreGetXML writes attributes of the root element. The default writes none.
func (p *Parsable) PreGetXML(*XMLBuilder) {}

// GetXML writes child content. The default writes none.
func (p *Parsable) GetXML(*XMLBuilder) {}

// ElementPrefix is the namespace prefix of the root element; "" is Atom.
func (p *Parsable) ElementPrefix() string { return "" }

// Namespaces lists the prefixes the type declares on a top-level document.
func (p *Parsable) Namespaces() map[string]string { return nil }

// ParseJSONMember handles one member. The default claims nothing.
func (p *Parsable) ParseJSONMember(string, json.RawMessage) (bool, error) { return false, nil }

// PostParseJSON validates after every member was read. The default accepts.
func (p *Parsable) PostParseJSON() error { return nil }

// GetJSON writes members. The default writes none.
func (p *Parsable) GetJSON(*JSONBuilder) {}

// ContentType is the MIME type of the serialised resource.
func (p *Parsable) ContentType() string { return ContentTypeAtom }

type base interface {
	parsable() *Parsable
}

// XMLParsable is implemented by resources that read and write Atom XML.
// Embed Parsable for the defaults and override what the type handles.
type XMLParsable interface {
	base
	ElementName() string
	ElementPrefix() string
	Namespaces() map[string]string
	PreParseXML(root *Node) error
	ParseXMLNode(n *Node) (bool, error)
	PostParseXML() error
	PreGetXML(x *XMLBuilder)
	GetXML(x *XMLBuilder)
}

// JSONParsable is implemented by resources that read and write JSON.
type JSONParsable interface {
	base
	ParseJSONMember(name string, value json.RawMessage) (bool, error)
	PostParseJSON() error
	GetJSON(j *JSONBuilder)
	ContentType() string
}

// ParseXML decodes data and fills p from its root element.
func ParseXML(data []byte, p XMLParsable) error {
	root, err := ParseNode(data)
	if err != nil {
		return err
	}
	return ParseXMLElement(root, p)
}

// ParseXMLElement fills p from an already decoded element. Children no
// handler claims are kept verbatim.
func ParseXMLElement(root *Node, p XMLParsable) error {
	if err := p.PreParseXML(root); err != nil {
		return err
	}
	for _, child := range root.Children {
		handled, err := p.ParseXMLNode(child)
		if err != nil {
			return err
		}
		if !handled {
			p.parsable().keepXML(p, child)
		}
	}
	return p.PostParseXML()
}

// NewFromXML builds a value with newFn and parses data into it. Nothing is
// returned on failure.
func NewFromXML[P XMLParsable](data []byte, newFn func() P) (P, error) {
	v := newFn()
	if err := ParseXML(data, v); err != nil {
		var zero P
		return zero, err
	}
	return v, nil
}

// GetXML serialises p as a standalone document.
func GetXML(p XMLParsable) string {
	var x XMLBuilder
	x.Raw(xmlDeclaration)
	writeElement(&x, p, true)
	return x.String()
}

// GetXMLFragment writes p as a child element of another document.
func GetXMLFragment(x *XMLBuilder, p XMLParsable) {
	writeElement(x, p, false)
}

func writeElement(x *XMLBuilder, p XMLParsable, topLevel bool) {
	name := qualified(p.ElementPrefix(), p.ElementName())
	extra := p.parsable().extraNamespaces

	x.Raw("<" + name)
	if topLevel {
		declared := p.Namespaces()
		x.Raw(" xmlns='" + AtomNamespace + "'")
		writeNamespaces(x, declared)
		extra = withoutDeclared(extra, declared)
	}
	writeNamespaces(x, extra)
	p.PreGetXML(x)

	var content XMLBuilder
	p.GetXML(&content)
	for _, s := range p.parsable().extraXML {
		content.Raw(s)
	}
	if content.Len() == 0 {
		x.Raw("/>")
		return
	}
	x.Raw(">")
	x.Raw(content.String())
	x.Raw("</" + name + ">")
}

func withoutDeclared(extra, declared map[string]string) map[string]string {
	if len(declared) == 0 {
		return extra
	}
	out := make(map[string]string, len(extra))
	for k, v := range extra {
		if _, ok := declared[k]; !ok {
			out[k] = v
		}
	}
	return out
}

// ParseJSON decodes data, which must be a JSON object, into p.
func ParseJSON(data []byte, p JSONParsable) error {
	return ParseJSONValue(data, p)
}

// ParseJSONValue fills p from a JSON object, offering each member to p in
// order. Members p does not claim are kept verbatim.
func ParseJSONValue(raw json.RawMessage, p JSONParsable) error {
	if !json.Valid(raw) {
		var v any
		err := json.Unmarshal(raw, &v)
		detail := "invalid JSON"
		if err != nil {
			detail = err.Error()
		}
		return errParsingJSON(detail)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return errParsingJSON(err.Error())
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errParsingJSON("Outermost JSON node is not an object.")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return errParsingJSON(err.Error())
		}
		name, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return errParsingJSON(err.Error())
		}
		handled, err := p.ParseJSONMember(name, value)
		if err != nil {
			return err
		}
		if !handled {
			p.parsable().keepJSON(p, name, value)
		}
	}
	return p.PostParseJSON()
}

// NewFromJSON builds a value with newFn and parses data into it. Nothing is
// returned on failure.
func NewFromJSON[P JSONParsable](data []byte, newFn func() P) (P, error) {
	v := newFn()
	if err := ParseJSON(data, v); err != nil {
		var zero P
		return zero, err
	}
	return v, nil
}

// GetJSON serialises p as a JSON object.
func GetJSON(p JSONParsable) string {
	var j JSONBuilder
	j.beginObject()
	writeMembers(&j, p)
	j.endObject()
	return j.JSON()
}

// GetJSONObject writes p as the value of member name of another object.
func GetJSONObject(j *JSONBuilder, name string, p JSONParsable) {
	j.Object(name, func(j *JSONBuilder) { writeMembers(j, p) })
}

func writeMembers(j *JSONBuilder, p JSONParsable) {
	p.GetJSON(j)
	for _, m := range p.parsable().extraJSON {
		j.Raw(m.name, m.value)
	}
}
