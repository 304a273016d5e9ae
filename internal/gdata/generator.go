package gdata

// Generator is the atom:generator element of a feed.
type Generator struct {
	Parsable

	Name    string
	URI     string
	Version string
}

func newEmptyGenerator() *Generator { return &Generator{} }

// ElementName implements XMLParsable.
func (g *Generator) ElementName() string { return "generator" }

// PreParseXML reads the generator name from the element text and its uri
// and version attributes.
func (g *Generator) PreParseXML(root *Node) error {
	uri, ok := root.Attr("uri")
	if ok && uri == "" {
		return RequiredPropertyMissing(root, "uri")
	}
	g.URI = uri
	g.Name = root.Text()
	g.Version, _ = root.Attr("version")
	return nil
}

// PreGetXML writes the uri and version attributes.
func (g *Generator) PreGetXML(x *XMLBuilder) {
	if g.URI != "" {
		x.Escaped(" uri='", g.URI, "'")
	}
	if g.Version != "" {
		x.Escaped(" version='", g.Version, "'")
	}
}

// GetXML writes the generator name.
func (g *Generator) GetXML(x *XMLBuilder) {
	if g.Name != "" {
		x.Escaped("", g.Name, "")
	}
}
