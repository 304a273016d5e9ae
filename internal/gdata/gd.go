package gdata

import (
	"slices"
	"strings"
)

// Relation types for gd:email and gd:phoneNumber.
const (
	RelHome   = "http://schemas.google.com/g/2005#home"
	RelWork   = "http://schemas.google.com/g/2005#work"
	RelOther  = "http://schemas.google.com/g/2005#other"
	RelMobile = "http://schemas.google.com/g/2005#mobile"
	RelFax    = "http://schemas.google.com/g/2005#fax"
)

var gdNamespaces = map[string]string{"gd": GDNamespace}

// EmailAddress is a gd:email element.
type EmailAddress struct {
	Parsable

	Address     string
	Relation    string
	Label       string
	DisplayName string
	Primary     bool
}

// NewEmailAddress returns an email address element.
func NewEmailAddress(address, rel, label string, primary bool) *EmailAddress {
	return &EmailAddress{Address: address, Relation: rel, Label: label, Primary: primary}
}

// ElementName implements XMLParsable.
func (e *EmailAddress) ElementName() string { return "email" }

// ElementPrefix implements XMLParsable.
func (e *EmailAddress) ElementPrefix() string { return "gd" }

// Namespaces implements XMLParsable.
func (e *EmailAddress) Namespaces() map[string]string { return gdNamespaces }

// Equal reports whether both elements hold the same address.
func (e *EmailAddress) Equal(other *EmailAddress) bool { return e.Address == other.Address }

// PreParseXML reads the email attributes.
func (e *EmailAddress) PreParseXML(root *Node) error {
	primary, err := BooleanFromProperty(root, "primary", 0)
	if err != nil {
		return err
	}
	address, _ := root.Attr("address")
	if address == "" {
		return RequiredPropertyMissing(root, "address")
	}
	rel, ok := root.Attr("rel")
	if ok && rel == "" {
		return RequiredPropertyMissing(root, "rel")
	}
	e.Address = address
	e.Relation = rel
	e.Label, _ = root.Attr("label")
	e.DisplayName, _ = root.Attr("displayName")
	e.Primary = primary
	return nil
}

// PreGetXML writes the email attributes.
func (e *EmailAddress) PreGetXML(x *XMLBuilder) {
	x.Escaped(" address='", e.Address, "'")
	if e.Relation != "" {
		x.Escaped(" rel='", e.Relation, "'")
	}
	if e.Label != "" {
		x.Escaped(" label='", e.Label, "'")
	}
	if e.DisplayName != "" {
		x.Escaped(" displayName='", e.DisplayName, "'")
	}
	writePrimary(x, e.Primary)
}

// PhoneNumber is a gd:phoneNumber element.
type PhoneNumber struct {
	Parsable

	Number   string
	Relation string
	Label    string
	URI      string
	Primary  bool
}

// NewPhoneNumber returns a phone number element.
func NewPhoneNumber(number, rel, label, uri string, primary bool) *PhoneNumber {
	return &PhoneNumber{Number: strings.TrimSpace(number), Relation: rel, Label: label, URI: uri, Primary: primary}
}

// ElementName implements XMLParsable.
func (p *PhoneNumber) ElementName() string { return "phoneNumber" }

// ElementPrefix implements XMLParsable.
func (p *PhoneNumber) ElementPrefix() string { return "gd" }

// Namespaces implements XMLParsable.
func (p *PhoneNumber) Namespaces() map[string]string { return gdNamespaces }

// Equal reports whether both elements hold the same number.
func (p *PhoneNumber) Equal(other *PhoneNumber) bool { return p.Number == other.Number }

// PreParseXML reads the number and its attributes.
func (p *PhoneNumber) PreParseXML(root *Node) error {
	primary, err := BooleanFromProperty(root, "primary", 0)
	if err != nil {
		return err
	}
	number := strings.TrimSpace(root.Text())
	if number == "" {
		return RequiredContentMissing(root)
	}
	rel, ok := root.Attr("rel")
	if ok && rel == "" {
		return RequiredPropertyMissing(root, "rel")
	}
	p.Number = number
	p.Relation = rel
	p.Label, _ = root.Attr("label")
	p.URI, _ = root.Attr("uri")
	p.Primary = primary
	return nil
}

// PreGetXML writes the phone number attributes.
func (p *PhoneNumber) PreGetXML(x *XMLBuilder) {
	if p.URI != "" {
		x.Escaped(" uri='", p.URI, "'")
	}
	if p.Relation != "" {
		x.Escaped(" rel='", p.Relation, "'")
	}
	if p.Label != "" {
		x.Escaped(" label='", p.Label, "'")
	}
	writePrimary(x, p.Primary)
}

// GetXML writes the number.
func (p *PhoneNumber) GetXML(x *XMLBuilder) {
	x.Escaped("", p.Number, "")
}

func writePrimary(x *XMLBuilder, primary bool) {
	if primary {
		x.Raw(" primary='true'")
	} else {
		x.Raw(" primary='false'")
	}
}

// AppendUnique appends v to s unless an element equal to it is present.
// It reports whether v was added.
func AppendUnique[T interface{ Equal(T) bool }](s []T, v T) ([]T, bool) {
	if slices.ContainsFunc(s, v.Equal) {
		return s, false
	}
	return append(s, v), true
}
