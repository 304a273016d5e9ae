package gdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNode_Tree(t *testing.T) {
	doc := `<?xml version="1.0"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:gd="http://schemas.google.com/g/2005" gd:etag="E">
  <entry><title>One &amp; two</title><gd:email address="a@b"/></entry>
  <entry/>
</feed>`

	root, err := ParseNode([]byte(doc))
	require.NoError(t, err)

	assert.True(t, root.Is(AtomNamespace, "feed"))
	etag, ok := root.AttrNS(GDNamespace, "etag")
	assert.True(t, ok)
	assert.Equal(t, "E", etag)
	require.Len(t, root.Children, 2)

	entry := root.Children[0]
	assert.False(t, entry.HasEarlierSibling())
	assert.True(t, root.Children[1].HasEarlierSibling())

	title := entry.Children[0]
	assert.Equal(t, "One & two", title.Text())
	assert.Equal(t, "<entry/title>", title.Describe())

	email := entry.Children[1]
	assert.True(t, email.Is(GDNamespace, "email"))
	assert.Equal(t, "<entry/gd:email>", email.Describe())
	assert.Equal(t, map[string]string{"gd": GDNamespace}, email.Namespaces())
	assert.False(t, email.HasText())
}

func TestNode_XML(t *testing.T) {
	root, err := ParseNode([]byte(`<a xmlns:x="urn:x"><x:b k="v&amp;">t&lt;</x:b><c/></a>`))
	require.NoError(t, err)

	assert.Equal(t, `<x:b k="v&amp;">t&lt;</x:b>`, root.Children[0].XML())
	assert.Equal(t, `<c/>`, root.Children[1].XML())
	assert.Equal(t, `<a xmlns:x="urn:x"><x:b k="v&amp;">t&lt;</x:b><c/></a>`, root.XML())
}

func TestParseNode_Charset(t *testing.T) {
	doc := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><a>`), 0xe9)
	doc = append(doc, []byte(`</a>`)...)

	root, err := ParseNode(doc)
	require.NoError(t, err)
	assert.Equal(t, "é", root.Text())
}

func TestParseNode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{"empty", "", "Error parsing XML: Empty document."},
		{"whitespace only", "  \n", "Error parsing XML: Empty document."},
		{"mismatched", "<a><b></a>", "Error parsing XML: element <b> closed by </a>"},
		{"unclosed", "<a><b>", "Error parsing XML: Premature end of data in tag b"},
		{"two roots", "<a/><b/>", "Error parsing XML: Extra content at the end of the document"},
		{"undeclared prefix", "<x:a/>", "Error parsing XML: namespace prefix x on a is not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNode([]byte(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDocument)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestXMLBuilder_Escaping(t *testing.T) {
	var x XMLBuilder
	x.Raw("<a")
	x.Escaped(" v='", `'"<>&`, "'")
	x.Printf(" n='%d'>", 3)
	x.Escaped("", "bell\x07", "")
	x.Raw("</a>")

	assert.Equal(t, `<a v='&apos;&quot;&lt;&gt;&amp;' n='3'>bell&#x7;</a>`, x.String())
	assert.Equal(t, "tab\tok", EscapeXML("tab\tok"))
}
