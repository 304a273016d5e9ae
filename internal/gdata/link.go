package gdata

import "strconv"

// Link relation types used by the services.
const (
	RelAlternate     = "alternate"
	RelSelf          = "self"
	RelEdit          = "edit"
	RelEditMedia     = "edit-media"
	RelRelated       = "related"
	RelNext          = "next"
	RelPrevious      = "previous"
	RelNextIANA      = "http://www.iana.org/assignments/relation/next"
	RelPreviousIANA  = "http://www.iana.org/assignments/relation/previous"
	RelFeed          = "http://schemas.google.com/g/2005#feed"
	RelPost          = "http://schemas.google.com/g/2005#post"
	RelBatch         = "http://schemas.google.com/g/2005#batch"
	RelAccessControl = "http://schemas.google.com/acl/2007#accessControlList"
)

// Link is an atom:link element.
type Link struct {
	Parsable

	URI      string
	Relation string
	Type     string
	Language string
	Title    string
	// Length is the size of the linked content in bytes, or -1.
	Length int64
}

// NewLink returns a link to uri with relation rel, or alternate when rel
// is empty.
func NewLink(uri, rel string) *Link {
	if rel == "" {
		rel = RelAlternate
	}
	return &Link{URI: uri, Relation: rel, Length: -1}
}

func newEmptyLink() *Link { return &Link{Length: -1} }

// ElementName implements XMLParsable.
func (l *Link) ElementName() string { return "link" }

// Equal reports whether l and other point at the same URI with the same
// relation.
func (l *Link) Equal(other *Link) bool {
	return l.URI == other.URI && l.Relation == other.Relation
}

// PreParseXML reads the link attributes.
func (l *Link) PreParseXML(root *Node) error {
	href, ok := root.Attr("href")
	if !ok {
		return RequiredPropertyMissing(root, "href")
	}
	rel, ok := root.Attr("rel")
	switch {
	case !ok:
		rel = RelAlternate
	case rel == "":
		return RequiredPropertyMissing(root, "rel")
	}
	lang, ok := root.Attr("hreflang")
	if ok && lang == "" {
		return RequiredPropertyMissing(root, "hreflang")
	}

	l.URI = href
	l.Relation = rel
	l.Type, _ = root.Attr("type")
	l.Language = lang
	l.Title, _ = root.Attr("title")
	l.Length = -1
	if v, ok := root.Attr("length"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 0 {
			return UnknownPropertyValue(root, "length", v)
		}
		l.Length = n
	}
	return nil
}

// PreGetXML writes the link attributes.
func (l *Link) PreGetXML(x *XMLBuilder) {
	x.Escaped(" href='", l.URI, "'")
	if l.Relation != "" {
		x.Escaped(" rel='", l.Relation, "'")
	}
	if l.Type != "" {
		x.Escaped(" type='", l.Type, "'")
	}
	if l.Language != "" {
		x.Escaped(" hreflang='", l.Language, "'")
	}
	if l.Title != "" {
		x.Escaped(" title='", l.Title, "'")
	}
	if l.Length >= 0 {
		x.Printf(" length='%d'", l.Length)
	}
}
