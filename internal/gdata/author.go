package gdata

// Author is an atom:author element.
type Author struct {
	Parsable

	Name         string
	URI          string
	EmailAddress string
}

// NewAuthor returns an author; uri and email may be empty.
func NewAuthor(name, uri, email string) *Author {
	return &Author{Name: name, URI: uri, EmailAddress: email}
}

func newEmptyAuthor() *Author { return &Author{} }

// ElementName implements XMLParsable.
func (a *Author) ElementName() string { return "author" }

// Equal reports whether a and other have the same name.
func (a *Author) Equal(other *Author) bool { return a.Name == other.Name }

// ParseXMLNode reads the name, uri and email children.
func (a *Author) ParseXMLNode(n *Node) (bool, error) {
	const opts = OptNoDupes | OptRequired | OptNonEmpty
	if ok, err := StringFromElement(n, AtomNamespace, "name", opts, &a.Name); ok {
		return true, err
	}
	if ok, err := StringFromElement(n, AtomNamespace, "uri", opts, &a.URI); ok {
		return true, err
	}
	if ok, err := StringFromElement(n, AtomNamespace, "email", opts, &a.EmailAddress); ok {
		return true, err
	}
	return a.Parsable.ParseXMLNode(n)
}

// PostParseXML requires a name.
func (a *Author) PostParseXML() error {
	if a.Name == "" {
		return RequiredElementMissing("name", "author")
	}
	return nil
}

// GetXML writes the author children.
func (a *Author) GetXML(x *XMLBuilder) {
	x.Escaped("<name>", a.Name, "</name>")
	if a.URI != "" {
		x.Escaped("<uri>", a.URI, "</uri>")
	}
	if a.EmailAddress != "" {
		x.Escaped("<email>", a.EmailAddress, "</email>")
	}
}
