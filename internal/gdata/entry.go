package gdata

import (
	"encoding/json"
	"slices"
)

var entryNamespaces = map[string]string{"gd": GDNamespace}

// Entry is an Atom entry. Service resources embed it and chain their
// handlers to it.
type Entry struct {
	Parsable

	title        string
	id           string
	etag         string
	summary      string
	rights       string
	content      string
	contentIsURI bool
	updated      int64
	published    int64
	categories   []*Category
	links        []*Link
	authors      []*Author
}

// NewEntry returns an entry with the given id, which may be empty for an
// entry that has not been inserted yet.
func NewEntry(id string) *Entry {
	return &Entry{id: id, updated: Unset, published: Unset}
}

// InitEntry resets e to an empty entry with the given id. Embedding types
// call it from their constructors.
func (e *Entry) InitEntry(id string) {
	*e = Entry{id: id, updated: Unset, published: Unset}
}

// ElementName implements XMLParsable.
func (e *Entry) ElementName() string { return "entry" }

// Namespaces implements XMLParsable.
func (e *Entry) Namespaces() map[string]string { return entryNamespaces }

// Accessors for the Atom entry fields. Timestamps are Unix seconds or Unset.
func (e *Entry) Title() string { return e.title }
func (e *Entry) SetTitle(t string) { e.title = t }
func (e *Entry) Summary() string { return e.summary }
func (e *Entry) SetSummary(s string) { e.summary = s }
func (e *Entry) Rights() string { return e.rights }
func (e *Entry) SetRights(r string) { e.rights = r }
func (e *Entry) ID() string { return e.id }
func (e *Entry) ETag() string { return e.etag }
func (e *Entry) SetETag(etag string) { e.etag = etag }
func (e *Entry) Updated() int64 { return e.updated }
func (e *Entry) Published() int64 { return e.published }

// SetID, SetUpdated and SetPublished are for resource parsers that read
// these members from non-Atom shapes. An entry with an id counts as inserted.
func (e *Entry) SetID(id string) { e.id = id }
func (e *Entry) SetUpdated(t int64) { e.updated = t }
func (e *Entry) SetPublished(t int64) { e.published = t }

func (e *Entry) Content() string { return e.content }
func (e *Entry) ContentIsURI() bool { return e.contentIsURI }
func (e *Entry) Categories() []*Category { return e.categories }
func (e *Entry) Authors() []*Author { return e.authors }
func (e *Entry) Links() []*Link { return e.links }

// SetContent sets inline text content.
func (e *Entry) SetContent(text string) {
	e.content = text
	e.contentIsURI = false
}

// SetContentURI sets content held at uri.
func (e *Entry) SetContentURI(uri string) {
	e.content = uri
	e.contentIsURI = true
}

// IsInserted reports whether the entry exists on the server.
func (e *Entry) IsInserted() bool { return e.id != "" }

// AddCategory adds c unless an equal category is present.
func (e *Entry) AddCategory(c *Category) {
	if !slices.ContainsFunc(e.categories, c.Equal) {
		e.categories = append(e.categories, c)
	}
}

// AddLink adds l unless an equal link is present.
func (e *Entry) AddLink(l *Link) {
	if !slices.ContainsFunc(e.links, l.Equal) {
		e.links = append(e.links, l)
	}
}

// RemoveLink removes l and reports whether it was present.
func (e *Entry) RemoveLink(l *Link) bool {
	i := slices.IndexFunc(e.links, l.Equal)
	if i < 0 {
		return false
	}
	e.links = slices.Delete(e.links, i, i+1)
	return true
}

// AddAuthor adds a unless an equal author is present.
func (e *Entry) AddAuthor(a *Author) {
	if !slices.ContainsFunc(e.authors, a.Equal) {
		e.authors = append(e.authors, a)
	}
}

// LookupLink returns the first link with relation rel.
func (e *Entry) LookupLink(rel string) *Link {
	for _, l := range e.links {
		if l.Relation == rel {
			return l
		}
	}
	return nil
}

// LookupLinks returns every link with relation rel.
func (e *Entry) LookupLinks(rel string) []*Link {
	var out []*Link
	for _, l := range e.links {
		if l.Relation == rel {
			out = append(out, l)
		}
	}
	return out
}

// PreParseXML reads the gd:etag attribute.
func (e *Entry) PreParseXML(root *Node) error {
	if etag, ok := root.AttrNS(GDNamespace, "etag"); ok {
		e.etag = etag
	} else if etag, ok := root.Attr("etag"); ok {
		e.etag = etag
	}
	return nil
}

// ParseXMLNode handles the Atom entry elements.
func (e *Entry) ParseXMLNode(n *Node) (bool, error) {
	switch {
	case IsNamespace(n, AtomNamespace):
		if ok, err := StringFromElement(n, AtomNamespace, "title", OptNoDupes, &e.title); ok {
			return true, err
		}
		if ok, err := StringFromElement(n, AtomNamespace, "id", OptRequired|OptNonEmpty|OptNoDupes, &e.id); ok {
			return true, err
		}
		if ok, err := StringFromElement(n, AtomNamespace, "summary", OptNone, &e.summary); ok {
			return true, err
		}
		if ok, err := StringFromElement(n, AtomNamespace, "rights", OptNone, &e.rights); ok {
			return true, err
		}
		if ok, err := Int64TimeFromElement(n, AtomNamespace, "updated", OptRequired|OptNoDupes, &e.updated); ok {
			return true, err
		}
		if ok, err := Int64TimeFromElement(n, AtomNamespace, "published", OptRequired|OptNoDupes, &e.published); ok {
			return true, err
		}
		if ok, err := ObjectFromElement(n, AtomNamespace, "category", OptRequired, newEmptyCategory, e.AddCategory); ok {
			return true, err
		}
		if ok, err := ObjectFromElement(n, AtomNamespace, "link", OptRequired, newEmptyLink, e.AddLink); ok {
			return true, err
		}
		if ok, err := ObjectFromElement(n, AtomNamespace, "author", OptRequired, newEmptyAuthor, e.AddAuthor); ok {
			return true, err
		}
		if n.Name == "content" {
			if src, ok := n.Attr("src"); ok {
				e.SetContentURI(src)
			} else {
				e.SetContent(n.Text())
			}
			return true, nil
		}
	case IsNamespace(n, BatchNamespace):
		switch n.Name {
		case "id", "status", "operation":
			return true, nil
		}
	}
	return e.Parsable.ParseXMLNode(n)
}

// PreGetXML writes the gd:etag attribute.
func (e *Entry) PreGetXML(x *XMLBuilder) {
	if e.etag != "" {
		x.Escaped(" gd:etag='", e.etag, "'")
	}
}

// GetXML writes the Atom entry elements.
func (e *Entry) GetXML(x *XMLBuilder) {
	e.GetXMLWithTitle(x, e.title)
}

// GetXMLWithTitle writes the Atom entry elements using title in place of
// the stored title. Types whose title is derived from other fields call it
// from their GetXML.
func (e *Entry) GetXMLWithTitle(x *XMLBuilder, title string) {
	x.Escaped("<title type='text'>", title, "</title>")
	if e.id != "" {
		x.Escaped("<id>", e.id, "</id>")
	}
	if e.updated != Unset {
		x.Printf("<updated>%s</updated>", FormatISO8601(e.updated))
	}
	if e.published != Unset {
		x.Printf("<published>%s</published>", FormatISO8601(e.published))
	}
	if e.summary != "" {
		x.Escaped("<summary type='text'>", e.summary, "</summary>")
	}
	if e.rights != "" {
		x.Escaped("<rights>", e.rights, "</rights>")
	}
	if e.content != "" {
		if e.contentIsURI {
			x.Escaped("<content type='text/plain' src='", e.content, "'/>")
		} else {
			x.Escaped("<content type='text'>", e.content, "</content>")
		}
	}
	for _, c := range e.categories {
		GetXMLFragment(x, c)
	}
	for _, l := range e.links {
		GetXMLFragment(x, l)
	}
	for _, a := range e.authors {
		GetXMLFragment(x, a)
	}
}

// ParseJSONMember handles the common JSON entry members.
func (e *Entry) ParseJSONMember(name string, value json.RawMessage) (bool, error) {
	if ok, err := StringFromJSON(name, value, "title", OptNoDupes, &e.title); ok {
		return true, err
	}
	if ok, err := StringFromJSON(name, value, "id", OptNonEmpty|OptNoDupes, &e.id); ok {
		return true, err
	}
	if ok, err := StringFromJSON(name, value, "description", OptNone, &e.summary); ok {
		return true, err
	}
	if ok, err := Int64TimeFromJSON(name, value, "updated", OptRequired|OptNoDupes, &e.updated); ok {
		return true, err
	}
	if ok, err := StringFromJSON(name, value, "etag", OptNonEmpty|OptNoDupes, &e.etag); ok {
		return true, err
	}
	switch name {
	case "selfLink":
		var uri string
		if _, err := StringFromJSON(name, value, name, OptRequired|OptNonEmpty, &uri); err != nil {
			return true, err
		}
		e.AddLink(NewLink(uri, RelSelf))
		return true, nil
	case "kind":
		var kind string
		if _, err := StringFromJSON(name, value, name, OptRequired|OptNonEmpty, &kind); err != nil {
			return true, err
		}
		e.AddCategory(NewCategory(kind, KindScheme, ""))
		return true, nil
	}
	return e.Parsable.ParseJSONMember(name, value)
}

// GetJSON writes the common JSON entry members.
func (e *Entry) GetJSON(j *JSONBuilder) {
	e.GetJSONWithTitle(j, e.title)
}

// GetJSONWithTitle is GetJSON with title in place of the stored title.
func (e *Entry) GetJSONWithTitle(j *JSONBuilder, title string) {
	j.String("title", title)
	if e.id != "" {
		j.String("id", e.id)
	}
	if e.summary != "" {
		j.String("description", e.summary)
	}
	if e.updated != Unset {
		j.Time("updated", e.updated)
	}
	for _, c := range e.categories {
		if c.Scheme == KindScheme {
			j.String("kind", c.Term)
		}
	}
	if e.etag != "" {
		j.String("etag", e.etag)
	}
	if l := e.LookupLink(RelSelf); l != nil {
		j.String("selfLink", l.URI)
	}
}
