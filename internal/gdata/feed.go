package gdata

import (
	"encoding/json"
	"slices"
)

// Resource is an entry type that can be read from either wire format.
type Resource interface {
	XMLParsable
	JSONParsable
}

// Feed is an Atom or JSON feed of entries of type E.
type Feed[E Resource] struct {
	Parsable

	title         string
	subtitle      string
	id            string
	etag          string
	logo          string
	icon          string
	rights        string
	updated       int64
	generator     *Generator
	categories    []*Category
	links         []*Link
	authors       []*Author
	entries       []E
	totalResults  int64
	startIndex    int64
	itemsPerPage  int64
	nextPageToken string

	newEntry func() E
	progress func(E)
}

// NewFeed returns an empty feed whose entries are built with newEntry.
// progress, if not nil, is called with every entry as it is decoded.
func NewFeed[E Resource](newEntry func() E, progress func(E)) *Feed[E] {
	return &Feed[E]{updated: Unset, newEntry: newEntry, progress: progress}
}

// ElementName implements XMLParsable.
func (f *Feed[E]) ElementName() string { return "feed" }

// Namespaces implements XMLParsable.
func (f *Feed[E]) Namespaces() map[string]string { return entryNamespaces }

// Accessors for the feed metadata. Updated is Unix seconds or Unset.
func (f *Feed[E]) Title() string { return f.title }
func (f *Feed[E]) Subtitle() string { return f.subtitle }
func (f *Feed[E]) ID() string { return f.id }
func (f *Feed[E]) ETag() string { return f.etag }
func (f *Feed[E]) Logo() string { return f.logo }
func (f *Feed[E]) Icon() string { return f.icon }
func (f *Feed[E]) Rights() string { return f.rights }
func (f *Feed[E]) Updated() int64 { return f.updated }
func (f *Feed[E]) Generator() *Generator { return f.generator }
func (f *Feed[E]) Categories() []*Category { return f.categories }
func (f *Feed[E]) Links() []*Link { return f.links }
func (f *Feed[E]) Authors() []*Author { return f.authors }
func (f *Feed[E]) Entries() []E { return f.entries }
func (f *Feed[E]) TotalResults() int64 { return f.totalResults }
func (f *Feed[E]) StartIndex() int64 { return f.startIndex }
func (f *Feed[E]) ItemsPerPage() int64 { return f.itemsPerPage }
func (f *Feed[E]) NextPageToken() string { return f.nextPageToken }

// LookupLink returns the first feed link with relation rel.
func (f *Feed[E]) LookupLink(rel string) *Link {
	for _, l := range f.links {
		if l.Relation == rel {
			return l
		}
	}
	return nil
}

// NextLink returns the link to the next page, if any.
func (f *Feed[E]) NextLink() *Link {
	if l := f.LookupLink(RelNextIANA); l != nil {
		return l
	}
	return f.LookupLink(RelNext)
}

// PreviousLink returns the link to the previous page, if any.
func (f *Feed[E]) PreviousLink() *Link {
	if l := f.LookupLink(RelPreviousIANA); l != nil {
		return l
	}
	return f.LookupLink(RelPrevious)
}

func (f *Feed[E]) addEntry(e E) {
	if f.progress != nil {
		f.progress(e)
	}
	f.entries = append(f.entries, e)
}

func (f *Feed[E]) addLink(l *Link) {
	if !slices.ContainsFunc(f.links, l.Equal) {
		f.links = append(f.links, l)
	}
}

func (f *Feed[E]) addCategory(c *Category) {
	if !slices.ContainsFunc(f.categories, c.Equal) {
		f.categories = append(f.categories, c)
	}
}

func (f *Feed[E]) addAuthor(a *Author) {
	if !slices.ContainsFunc(f.authors, a.Equal) {
		f.authors = append(f.authors, a)
	}
}

// PreParseXML reads the gd:etag attribute.
func (f *Feed[E]) PreParseXML(root *Node) error {
	if etag, ok := root.AttrNS(GDNamespace, "etag"); ok {
		f.etag = etag
	} else if etag, ok := root.Attr("etag"); ok {
		f.etag = etag
	}
	return nil
}

// ParseXMLNode handles the Atom feed and OpenSearch elements.
func (f *Feed[E]) ParseXMLNode(n *Node) (bool, error) {
	switch {
	case IsNamespace(n, AtomNamespace):
		if n.Name == "entry" {
			e := f.newEntry()
			if err := ParseXMLElement(n, e); err != nil {
				return true, err
			}
			f.addEntry(e)
			return true, nil
		}
		if ok, err := StringFromElement(n, AtomNamespace, "title", OptNoDupes, &f.title); ok {
			return true, err
		}
		if ok, err := StringFromElement(n, AtomNamespace, "subtitle", OptNoDupes, &f.subtitle); ok {
			return true, err
		}
		if ok, err := StringFromElement(n, AtomNamespace, "id", OptRequired|OptNonEmpty|OptNoDupes, &f.id); ok {
			return true, err
		}
		if ok, err := StringFromElement(n, AtomNamespace, "logo", OptNoDupes, &f.logo); ok {
			return true, err
		}
		if ok, err := StringFromElement(n, AtomNamespace, "icon", OptNoDupes, &f.icon); ok {
			return true, err
		}
		if ok, err := ObjectFromElement(n, AtomNamespace, "category", OptRequired, newEmptyCategory, f.addCategory); ok {
			return true, err
		}
		if ok, err := ObjectFromElement(n, AtomNamespace, "link", OptRequired, newEmptyLink, f.addLink); ok {
			return true, err
		}
		if ok, err := ObjectFromElement(n, AtomNamespace, "author", OptRequired, newEmptyAuthor, f.addAuthor); ok {
			return true, err
		}
		if ok, err := ObjectFromElement(n, AtomNamespace, "generator", OptRequired|OptNoDupes, newEmptyGenerator,
			func(g *Generator) { f.generator = g }); ok {
			return true, err
		}
		if ok, err := Int64TimeFromElement(n, AtomNamespace, "updated", OptRequired|OptNoDupes, &f.updated); ok {
			return true, err
		}
		if ok, err := StringFromElement(n, AtomNamespace, "rights", OptNone, &f.rights); ok {
			return true, err
		}
	case IsNamespace(n, OpenSearchNamespace):
		const opts = OptRequired | OptNoDupes
		if ok, err := Int64FromElement(n, OpenSearchNamespace, "totalResults", opts, &f.totalResults); ok {
			return true, err
		}
		if ok, err := Int64FromElement(n, OpenSearchNamespace, "startIndex", opts, &f.startIndex); ok {
			return true, err
		}
		if ok, err := Int64FromElement(n, OpenSearchNamespace, "itemsPerPage", opts, &f.itemsPerPage); ok {
			return true, err
		}
	}
	return f.Parsable.ParseXMLNode(n)
}

// PostParseXML requires the feed id and updated time.
func (f *Feed[E]) PostParseXML() error {
	if f.id == "" {
		return RequiredElementMissing("id", "feed")
	}
	if f.updated == Unset {
		return RequiredElementMissing("updated", "feed")
	}
	return nil
}

// GetXML writes the feed metadata followed by its entries.
func (f *Feed[E]) GetXML(x *XMLBuilder) {
	x.Escaped("<title type='text'>", f.title, "</title>")
	if f.subtitle != "" {
		x.Escaped("<subtitle type='text'>", f.subtitle, "</subtitle>")
	}
	if f.id != "" {
		x.Escaped("<id>", f.id, "</id>")
	}
	if f.updated != Unset {
		x.Printf("<updated>%s</updated>", FormatISO8601(f.updated))
	}
	for _, c := range f.categories {
		GetXMLFragment(x, c)
	}
	for _, l := range f.links {
		GetXMLFragment(x, l)
	}
	for _, a := range f.authors {
		GetXMLFragment(x, a)
	}
	for _, e := range f.entries {
		GetXMLFragment(x, e)
	}
}

// ParseJSONMember handles the members of a JSON list response.
func (f *Feed[E]) ParseJSONMember(name string, value json.RawMessage) (bool, error) {
	switch name {
	case "items":
		var items []json.RawMessage
		if err := decodeJSON(name, value, &items); err != nil {
			return true, err
		}
		for _, raw := range items {
			e := f.newEntry()
			if err := ParseJSONValue(raw, e); err != nil {
				return true, err
			}
			f.addEntry(e)
		}
		return true, nil
	case "selfLink":
		var uri string
		if _, err := StringFromJSON(name, value, name, OptRequired|OptNonEmpty, &uri); err != nil {
			return true, err
		}
		f.addLink(NewLink(uri, RelSelf))
		return true, nil
	case "kind":
		return true, nil
	}
	if ok, err := StringFromJSON(name, value, "etag", OptNone, &f.etag); ok {
		return true, err
	}
	if ok, err := StringFromJSON(name, value, "nextPageToken", OptNone, &f.nextPageToken); ok {
		return true, err
	}
	return f.Parsable.ParseJSONMember(name, value)
}

// GetJSON writes the feed as a JSON list response.
func (f *Feed[E]) GetJSON(j *JSONBuilder) {
	if f.etag != "" {
		j.String("etag", f.etag)
	}
	if l := f.LookupLink(RelSelf); l != nil {
		j.String("selfLink", l.URI)
	}
	if f.nextPageToken != "" {
		j.String("nextPageToken", f.nextPageToken)
	}
	items := make([]string, len(f.entries))
	for i, e := range f.entries {
		items[i] = GetJSON(e)
	}
	j.RawArray("items", items)
}
