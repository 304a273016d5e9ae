package gdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailAddress_XML(t *testing.T) {
	doc := `<gd:email xmlns:gd='http://schemas.google.com/g/2005' address='a@example.com' rel='` + RelWork +
		`' label='Work' displayName='A' primary='true'/>`

	e, err := NewFromXML([]byte(doc), func() *EmailAddress { return &EmailAddress{} })
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", e.Address)
	assert.Equal(t, RelWork, e.Relation)
	assert.Equal(t, "Work", e.Label)
	assert.Equal(t, "A", e.DisplayName)
	assert.True(t, e.Primary)

	var x XMLBuilder
	GetXMLFragment(&x, NewEmailAddress("b@example.com", RelHome, "", false))
	assert.Equal(t, `<gd:email address='b@example.com' rel='http://schemas.google.com/g/2005#home' primary='false'/>`, x.String())
}

func TestEmailAddress_Errors(t *testing.T) {
	const ns = `xmlns:gd='http://schemas.google.com/g/2005'`
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{"no address", `<gd:email ` + ns + `/>`, "A required property of a <gd:email> element (@address) was not present."},
		{"empty address", `<gd:email ` + ns + ` address=''/>`, "A required property of a <gd:email> element (@address) was not present."},
		{"empty rel", `<gd:email ` + ns + ` address='a' rel=''/>`, "A required property of a <gd:email> element (@rel) was not present."},
		{"bad primary", `<gd:email ` + ns + ` address='a' primary='yes'/>`, "The value of the primary property of a <gd:email> element (‘yes’) was unknown."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFromXML([]byte(tt.doc), func() *EmailAddress { return &EmailAddress{} })
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestPhoneNumber_XML(t *testing.T) {
	doc := `<gd:phoneNumber xmlns:gd='http://schemas.google.com/g/2005' rel='` + RelMobile + `'> +1 555 0100 </gd:phoneNumber>`

	p, err := NewFromXML([]byte(doc), func() *PhoneNumber { return &PhoneNumber{} })
	require.NoError(t, err)
	assert.Equal(t, "+1 555 0100", p.Number)
	assert.False(t, p.Primary)

	var x XMLBuilder
	GetXMLFragment(&x, p)
	assert.Equal(t, `<gd:phoneNumber rel='http://schemas.google.com/g/2005#mobile' primary='false'>+1 555 0100</gd:phoneNumber>`, x.String())

	_, err = NewFromXML([]byte(`<gd:phoneNumber xmlns:gd='http://schemas.google.com/g/2005'> </gd:phoneNumber>`),
		func() *PhoneNumber { return &PhoneNumber{} })
	assert.ErrorIs(t, err, ErrRequiredContentMissing)
}

func TestAppendUnique_SkipsEqual(t *testing.T) {
	var emails []*EmailAddress
	var added bool

	emails, added = AppendUnique(emails, NewEmailAddress("a@example.com", "", "", false))
	assert.True(t, added)
	emails, added = AppendUnique(emails, NewEmailAddress("a@example.com", RelWork, "", true))
	assert.False(t, added)
	emails, added = AppendUnique(emails, NewEmailAddress("b@example.com", "", "", false))
	assert.True(t, added)

	require.Len(t, emails, 2)
	assert.Equal(t, "", emails[0].Relation)

	phones, _ := AppendUnique([]*PhoneNumber(nil), NewPhoneNumber(" 1 ", "", "", "", false))
	phones, added = AppendUnique(phones, NewPhoneNumber("1", "", "", "", false))
	assert.False(t, added)
	assert.Len(t, phones, 1)
}

func TestColor_ParseAndFormat(t *testing.T) {
	c, ok := ParseColor("#ff8000")
	require.True(t, ok)
	assert.Equal(t, Color{Red: 255, Green: 128}, c)
	assert.Equal(t, "#ff8000", c.Hex())

	_, ok = ParseColor("12345")
	assert.False(t, ok)
	_, ok = ParseColor("gg0000")
	assert.False(t, ok)
}
