package gdata

// KindScheme is the category scheme naming the kind of an entry.
const KindScheme = "http://schemas.google.com/g/2005#kind"

// Category is an atom:category element.
type Category struct {
	Parsable

	Term   string
	Scheme string
	Label  string
}

// NewCategory returns a category with the given term, scheme and label.
func NewCategory(term, scheme, label string) *Category {
	return &Category{Term: term, Scheme: scheme, Label: label}
}

func newEmptyCategory() *Category { return &Category{} }

// ElementName implements XMLParsable.
func (c *Category) ElementName() string { return "category" }

// Equal reports whether c and other share a term and scheme.
func (c *Category) Equal(other *Category) bool {
	return c.Term == other.Term && c.Scheme == other.Scheme
}

// PreParseXML reads the category attributes.
func (c *Category) PreParseXML(root *Node) error {
	term, _ := root.Attr("term")
	if term == "" {
		return RequiredPropertyMissing(root, "term")
	}
	scheme, ok := root.Attr("scheme")
	if ok && scheme == "" {
		return RequiredPropertyMissing(root, "scheme")
	}
	c.Term = term
	c.Scheme = scheme
	c.Label, _ = root.Attr("label")
	return nil
}

// PreGetXML writes the category attributes.
func (c *Category) PreGetXML(x *XMLBuilder) {
	x.Escaped(" term='", c.Term, "'")
	if c.Scheme != "" {
		x.Escaped(" scheme='", c.Scheme, "'")
	}
	if c.Label != "" {
		x.Escaped(" label='", c.Label, "'")
	}
}
