package gdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
)

const entryXML = `<entry xmlns='http://www.w3.org/2005/Atom' xmlns:gd='http://schemas.google.com/g/2005' gd:etag='W/"abc"'>
	<title type='text'>Testing title &amp; escaping</title>
	<id>http://example.com/id/1</id>
	<updated>2009-01-01T00:00:00Z</updated>
	<published>2009-01-01T00:00:00Z</published>
	<summary>Sum</summary>
	<content>Body</content>
	<category term='cat' scheme='http://example.com/scheme' label='Cat'/>
	<link href='http://example.com/' rel='alternate'/>
	<link href='http://example.com/edit' rel='edit' length='12'/>
	<author><name>Joe</name><email>joe@example.com</email></author>
	<foo:bar xmlns:foo='http://example.com/foo' baz='1'>text</foo:bar>
</entry>`

func TestEntry_ParseXML(t *testing.T) {
	e, err := NewFromXML([]byte(entryXML), func() *Entry { return NewEntry("") })
	require.NoError(t, err)

	assert.Equal(t, "Testing title & escaping", e.Title())
	assert.Equal(t, "http://example.com/id/1", e.ID())
	assert.Equal(t, `W/"abc"`, e.ETag())
	assert.Equal(t, int64(1230768000), e.Updated())
	assert.Equal(t, int64(1230768000), e.Published())
	assert.Equal(t, "Sum", e.Summary())
	assert.Equal(t, "Body", e.Content())
	assert.False(t, e.ContentIsURI())
	assert.True(t, e.IsInserted())

	require.Len(t, e.Categories(), 1)
	assert.Equal(t, "cat", e.Categories()[0].Term)
	assert.Equal(t, "Cat", e.Categories()[0].Label)

	require.Len(t, e.Links(), 2)
	assert.Equal(t, RelAlternate, e.Links()[0].Relation)
	edit := e.LookupLink(RelEdit)
	require.NotNil(t, edit)
	assert.Equal(t, "http://example.com/edit", edit.URI)
	assert.Equal(t, int64(12), edit.Length)
	assert.Nil(t, e.LookupLink(RelSelf))

	require.Len(t, e.Authors(), 1)
	assert.Equal(t, "Joe", e.Authors()[0].Name)
	assert.Equal(t, "joe@example.com", e.Authors()[0].EmailAddress)

	assert.Equal(t, `<foo:bar xmlns:foo="http://example.com/foo" baz="1">text</foo:bar>`, e.ExtraXML())
	assert.Equal(t, map[string]string{"gd": GDNamespace, "foo": "http://example.com/foo"}, e.ExtraNamespaces())
}

func TestEntry_GetXML(t *testing.T) {
	e, err := NewFromXML([]byte(entryXML), func() *Entry { return NewEntry("") })
	require.NoError(t, err)

	want := `<?xml version='1.0' encoding='UTF-8'?>` +
		`<entry xmlns='http://www.w3.org/2005/Atom' xmlns:gd='http://schemas.google.com/g/2005'` +
		` xmlns:foo='http://example.com/foo' gd:etag='W/&quot;abc&quot;'>` +
		`<title type='text'>Testing title &amp; escaping</title>` +
		`<id>http://example.com/id/1</id>` +
		`<updated>2009-01-01T00:00:00Z</updated>` +
		`<published>2009-01-01T00:00:00Z</published>` +
		`<summary type='text'>Sum</summary>` +
		`<content type='text'>Body</content>` +
		`<category term='cat' scheme='http://example.com/scheme' label='Cat'/>` +
		`<link href='http://example.com/' rel='alternate'/>` +
		`<link href='http://example.com/edit' rel='edit' length='12'/>` +
		`<author><name>Joe</name><email>joe@example.com</email></author>` +
		`<foo:bar xmlns:foo="http://example.com/foo" baz="1">text</foo:bar>` +
		`</entry>`
	assert.Equal(t, want, GetXML(e))

	again, err := NewFromXML([]byte(GetXML(e)), func() *Entry { return NewEntry("") })
	require.NoError(t, err)
	assert.Equal(t, GetXML(e), GetXML(again))
}

func TestNewEntry_GetXML(t *testing.T) {
	e := NewEntry("")
	e.SetTitle("New")
	e.SetContentURI("http://example.com/media?a=1&b=2")
	e.AddLink(NewLink("http://example.com/", ""))
	e.AddLink(NewLink("http://example.com/", RelAlternate))
	e.AddAuthor(NewAuthor("Ann", "", ""))
	e.AddAuthor(NewAuthor("Ann", "http://ann.example.com", ""))

	assert.False(t, e.IsInserted())
	assert.Len(t, e.Links(), 1)
	assert.Len(t, e.Authors(), 1)

	want := `<?xml version='1.0' encoding='UTF-8'?>` +
		`<entry xmlns='http://www.w3.org/2005/Atom' xmlns:gd='http://schemas.google.com/g/2005'>` +
		`<title type='text'>New</title>` +
		`<content type='text/plain' src='http://example.com/media?a=1&amp;b=2'/>` +
		`<link href='http://example.com/' rel='alternate'/>` +
		`<author><name>Ann</name></author>` +
		`</entry>`
	assert.Equal(t, want, GetXML(e))

	assert.True(t, e.RemoveLink(NewLink("http://example.com/", "")))
	assert.False(t, e.RemoveLink(NewLink("http://example.com/", "")))
	assert.Empty(t, e.Links())
}

func TestEntry_ContentSource(t *testing.T) {
	e, err := NewFromXML([]byte(`<entry xmlns='http://www.w3.org/2005/Atom'><content src='http://example.com/x'/></entry>`),
		func() *Entry { return NewEntry("") })
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/x", e.Content())
	assert.True(t, e.ContentIsURI())
}

func TestEntry_IgnoresBatchElements(t *testing.T) {
	doc := `<entry xmlns='http://www.w3.org/2005/Atom' xmlns:batch='http://schemas.google.com/gdata/batch'>` +
		`<batch:id>1</batch:id><batch:status code='200'/><batch:operation type='query'/></entry>`
	e, err := NewFromXML([]byte(doc), func() *Entry { return NewEntry("") })
	require.NoError(t, err)
	assert.Empty(t, e.ExtraXML())
}

func TestEntry_ParseXMLErrors(t *testing.T) {
	const head = `<entry xmlns='http://www.w3.org/2005/Atom'>`
	tests := []struct {
		name     string
		doc      string
		wantKind error
		wantMsg  string
	}{
		{
			name:     "empty id",
			doc:      head + `<id></id></entry>`,
			wantKind: ErrRequiredContentMissing,
			wantMsg:  "A <entry/id> element was missing required content.",
		},
		{
			name:     "duplicate title",
			doc:      head + `<title>a</title><title>b</title></entry>`,
			wantKind: ErrDuplicateElement,
			wantMsg:  "A singleton element (<entry/title>) was duplicated.",
		},
		{
			name:     "bad updated",
			doc:      head + `<updated>nope</updated></entry>`,
			wantKind: ErrMalformedValue,
			wantMsg:  "The content of a <entry/updated> element (‘nope’) was not in ISO 8601 format.",
		},
		{
			name:     "link without href",
			doc:      head + `<link rel='self'/></entry>`,
			wantKind: ErrRequiredAttributeMissing,
			wantMsg:  "A required property of a <entry/link> element (@href) was not present.",
		},
		{
			name:     "category with empty scheme",
			doc:      head + `<category term='a' scheme=''/></entry>`,
			wantKind: ErrRequiredAttributeMissing,
			wantMsg:  "A required property of a <entry/category> element (@scheme) was not present.",
		},
		{
			name:     "category without term",
			doc:      head + `<category/></entry>`,
			wantKind: ErrRequiredAttributeMissing,
			wantMsg:  "A required property of a <entry/category> element (@term) was not present.",
		},
		{
			name:     "author without name",
			doc:      head + `<author><uri>http://x</uri></author></entry>`,
			wantKind: ErrRequiredElementMissing,
			wantMsg:  "A required element (<author/name>) was not present.",
		},
		{
			name:     "author with empty email",
			doc:      head + `<author><name>a</name><email></email></author></entry>`,
			wantKind: ErrRequiredContentMissing,
			wantMsg:  "A <author/email> element was missing required content.",
		},
		{
			name:     "not XML",
			doc:      `<entry`,
			wantKind: ErrDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewFromXML([]byte(tt.doc), func() *Entry { return NewEntry("") })
			require.Error(t, err)
			assert.Nil(t, e)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.ErrorIs(t, err, domain.ErrInvalidResponse)
			assert.True(t, IsParseError(err))
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}

func TestEntry_JSON(t *testing.T) {
	doc := `{"kind":"tasks#task","id":"abc","etag":"\"e\"","title":"T","updated":"2009-01-01T00:00:00.000Z",` +
		`"selfLink":"https://example.com/abc","description":"d","extra":{"a":[1,2]}}`

	e, err := NewFromJSON([]byte(doc), func() *Entry { return NewEntry("") })
	require.NoError(t, err)

	assert.Equal(t, "T", e.Title())
	assert.Equal(t, "abc", e.ID())
	assert.Equal(t, `"e"`, e.ETag())
	assert.Equal(t, "d", e.Summary())
	assert.Equal(t, int64(1230768000), e.Updated())
	require.NotNil(t, e.LookupLink(RelSelf))
	assert.Equal(t, "https://example.com/abc", e.LookupLink(RelSelf).URI)
	require.Len(t, e.Categories(), 1)
	assert.Equal(t, KindScheme, e.Categories()[0].Scheme)
	assert.Equal(t, []string{"extra"}, e.ExtraJSONMembers())

	want := `{"title":"T","id":"abc","description":"d","updated":"2009-01-01T00:00:00Z","kind":"tasks#task",` +
		`"etag":"\"e\"","selfLink":"https://example.com/abc","extra":{"a":[1,2]}}`
	assert.Equal(t, want, GetJSON(e))
	assert.Equal(t, ContentTypeAtom, e.ContentType())
}

func TestEntry_JSONErrors(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		wantKind error
		wantMsg  string
	}{
		{"array root", `[1]`, ErrDocument, "Error parsing JSON: Outermost JSON node is not an object."},
		{"string root", `"x"`, ErrDocument, "Error parsing JSON: Outermost JSON node is not an object."},
		{"truncated", `{"title":`, ErrDocument, ""},
		{"bad updated", `{"updated":"nope"}`, ErrMalformedValue, "The content of a ‘updated’ element (‘nope’) was not in ISO 8601 format."},
		{"empty self link", `{"selfLink":""}`, ErrRequiredContentMissing, "A ‘selfLink’ element was missing required content."},
		{"empty kind", `{"kind":""}`, ErrRequiredContentMissing, "A ‘kind’ element was missing required content."},
		{"wrong type", `{"title":5}`, ErrMalformedValue, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromJSON([]byte(tt.doc), func() *Entry { return NewEntry("") })
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, err.Error())
			}
		})
	}
}
