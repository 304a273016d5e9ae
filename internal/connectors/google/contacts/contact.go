package contacts

import (
	"slices"
	"strings"
	"time"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

const (
	contactKind = "http://schemas.google.com/contact/2008#contact"
	groupKind   = "http://schemas.google.com/contact/2008#group"

	// RelPhoto marks the link to a contact's photo.
	RelPhoto = "http://schemas.google.com/contacts/2008/rel#photo"
)

var contactNamespaces = map[string]string{
	"gd":       gdata.GDNamespace,
	"gContact": gdata.GContactNamespace,
	"app":      gdata.AppNamespace,
}

// fullProjection rewrites the first /base/ segment of uri to /full/. The
// base projection hides extended properties.
func fullProjection(uri string) string {
	return strings.Replace(uri, "/base/", "/full/", 1)
}

// EntryURI returns the URI a contact or group id is fetched from: always
// https and always the full projection.
func EntryURI(id string) string {
	if rest, ok := strings.CutPrefix(id, "http://"); ok {
		id = "https://" + rest
	}
	return fullProjection(id)
}

// fixID delegates the Atom id to the entry and then moves it to the full
// projection.
func fixID(e *gdata.Entry, n *gdata.Node) (bool, error) {
	ok, err := e.ParseXMLNode(n)
	if err == nil {
		e.SetID(fullProjection(e.ID()))
	}
	return ok, err
}

// parseExtendedProperty reads a gd:extendedProperty into props. Without a
// value attribute the element's child markup is the value.
func parseExtendedProperty(n *gdata.Node, props map[string]string) error {
	name, ok := n.Attr("name")
	if !ok {
		return gdata.RequiredPropertyMissing(n, "name")
	}
	value, ok := n.Attr("value")
	if !ok {
		var b strings.Builder
		for _, c := range n.Children {
			b.WriteString(c.XML())
		}
		if b.Len() == 0 {
			b.WriteString(gdata.EscapeXML(n.Text()))
		}
		value = b.String()
	}
	props[name] = value
	return nil
}

// writeExtendedProperties writes props sorted by name. Values are markup
// and are written unescaped.
func writeExtendedProperties(x *gdata.XMLBuilder, props map[string]string) {
	for _, name := range sortedKeys(props) {
		x.Escaped("<gd:extendedProperty name='", name, "'>")
		x.Raw(props[name] + "</gd:extendedProperty>")
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func newEmptyEmailAddress() *gdata.EmailAddress { return &gdata.EmailAddress{} }
func newEmptyPhoneNumber() *gdata.PhoneNumber   { return &gdata.PhoneNumber{} }

// Contact is an entry in the user's address book. The entry title is the
// contact's full name.
type Contact struct {
	gdata.Entry

	edited             int64
	emailAddresses     []*gdata.EmailAddress
	phoneNumbers       []*gdata.PhoneNumber
	nickname           string
	fileAs             string
	occupation         string
	gender             string
	hobbies            []string
	groups             map[string]bool
	extendedProperties map[string]string
	userDefinedFields  map[string]string
	deleted            bool
	photoETag          string
}

// NewContact returns a contact with the given id, empty for a new one. A
// new contact's edited time is its creation time.
func NewContact(id string) *Contact {
	c := newEmptyContact()
	c.SetID(fullProjection(id))
	c.edited = time.Now().Unix()
	return c
}

func newEmptyContact() *Contact {
	c := &Contact{
		edited:             gdata.Unset,
		groups:             make(map[string]bool),
		extendedProperties: make(map[string]string),
		userDefinedFields:  make(map[string]string),
	}
	c.InitEntry("")
	c.AddCategory(gdata.NewCategory(contactKind, gdata.KindScheme, ""))
	return c
}

// Namespaces implements gdata.XMLParsable.
func (c *Contact) Namespaces() map[string]string {
	return gdata.MergeNamespaces(c.Entry.Namespaces(), contactNamespaces)
}

// ParseXMLNode handles app:edited, the gd and gContact elements and the
// photo link, then the Atom entry elements.
func (c *Contact) ParseXMLNode(n *gdata.Node) (bool, error) {
	switch {
	case gdata.IsNamespace(n, gdata.AppNamespace):
		if ok, err := gdata.Int64TimeFromElement(n, gdata.AppNamespace, "edited", gdata.OptRequired|gdata.OptNoDupes, &c.edited); ok {
			return true, err
		}
	case n.Is(gdata.AtomNamespace, "id"):
		return fixID(&c.Entry, n)
	case n.Is(gdata.AtomNamespace, "link"):
		if rel, _ := n.Attr("rel"); rel == RelPhoto && c.photoETag == "" {
			c.photoETag, _ = n.AttrNS(gdata.GDNamespace, "etag")
		}
	case gdata.IsNamespace(n, gdata.GDNamespace):
		return c.parseGD(n)
	case gdata.IsNamespace(n, gdata.GContactNamespace):
		return c.parseGContact(n)
	}
	return c.Entry.ParseXMLNode(n)
}

func (c *Contact) parseGD(n *gdata.Node) (bool, error) {
	if ok, err := gdata.ObjectFromElement(n, gdata.GDNamespace, "phoneNumber", gdata.OptRequired, newEmptyPhoneNumber, c.AddPhoneNumber); ok {
		return true, err
	}
	switch n.Name {
	case "email":
		address, ok := n.Attr("address")
		if !ok {
			return true, gdata.RequiredPropertyMissing(n, "address")
		}
		// An empty address makes the element a no-op.
		if address == "" {
			return true, nil
		}
		_, err := gdata.ObjectFromElement(n, gdata.GDNamespace, "email", gdata.OptRequired, newEmptyEmailAddress, c.AddEmailAddress)
		return true, err
	case "extendedProperty":
		return true, parseExtendedProperty(n, c.extendedProperties)
	case "deleted":
		c.deleted = true
		return true, nil
	}
	return c.Entry.ParseXMLNode(n)
}

func (c *Contact) parseGContact(n *gdata.Node) (bool, error) {
	const ns = gdata.GContactNamespace
	for _, s := range []struct {
		name string
		out  *string
	}{
		{"nickname", &c.nickname},
		{"fileAs", &c.fileAs},
		{"occupation", &c.occupation},
	} {
		if ok, err := gdata.StringFromElement(n, ns, s.name, gdata.OptRequired|gdata.OptNoDupes, s.out); ok {
			return true, err
		}
	}

	switch n.Name {
	case "gender":
		if c.gender != "" {
			return true, gdata.DuplicateElement(n)
		}
		value, _ := n.Attr("value")
		if value == "" {
			return true, gdata.RequiredContentMissing(n)
		}
		c.gender = value
	case "hobby":
		hobby := n.Text()
		if hobby == "" {
			return true, gdata.RequiredContentMissing(n)
		}
		c.AddHobby(hobby)
	case "userDefinedField":
		key, ok := n.Attr("key")
		if !ok {
			return true, gdata.RequiredPropertyMissing(n, "key")
		}
		value, ok := n.Attr("value")
		if !ok {
			return true, gdata.RequiredPropertyMissing(n, "value")
		}
		c.userDefinedFields[key] = value
	case "groupMembershipInfo":
		href, ok := n.Attr("href")
		if !ok {
			return true, gdata.RequiredPropertyMissing(n, "href")
		}
		deleted, err := gdata.BooleanFromProperty(n, "deleted", 0)
		if err != nil {
			return true, err
		}
		c.groups[href] = deleted
	default:
		return c.Entry.ParseXMLNode(n)
	}
	return true, nil
}

// GetXML writes the entry elements, then the contact's gd and gContact
// elements.
func (c *Contact) GetXML(x *gdata.XMLBuilder) {
	c.Entry.GetXML(x)

	for _, e := range c.emailAddresses {
		gdata.GetXMLFragment(x, e)
	}
	for _, p := range c.phoneNumbers {
		gdata.GetXMLFragment(x, p)
	}
	writeExtendedProperties(x, c.extendedProperties)
	for _, key := range sortedKeys(c.userDefinedFields) {
		x.Escaped("<gContact:userDefinedField key='", key, "' ")
		x.Escaped("value='", c.userDefinedFields[key], "'/>")
	}
	for _, href := range sortedKeys(c.groups) {
		// Group membership is only accepted in the base projection.
		x.Escaped("<gContact:groupMembershipInfo href='", strings.Replace(href, "/full/", "/base/", 1), "'/>")
	}
	for _, h := range c.hobbies {
		x.Escaped("<gContact:hobby>", h, "</gContact:hobby>")
	}
	if c.nickname != "" {
		x.Escaped("<gContact:nickname>", c.nickname, "</gContact:nickname>")
	}
	if c.fileAs != "" {
		x.Escaped("<gContact:fileAs>", c.fileAs, "</gContact:fileAs>")
	}
	if c.gender != "" {
		x.Escaped("<gContact:gender value='", c.gender, "'/>")
	}
	if c.occupation != "" {
		x.Escaped("<gContact:occupation>", c.occupation, "</gContact:occupation>")
	}
}

// Edited returns the last edit time, or gdata.Unset.
func (c *Contact) Edited() int64 { return c.edited }

// EmailAddresses returns the contact's addresses in insertion order.
func (c *Contact) EmailAddresses() []*gdata.EmailAddress { return c.emailAddresses }

// AddEmailAddress adds address unless the contact already has it.
func (c *Contact) AddEmailAddress(address *gdata.EmailAddress) {
	c.emailAddresses, _ = gdata.AppendUnique(c.emailAddresses, address)
}

// PrimaryEmailAddress returns the address marked primary, or nil.
func (c *Contact) PrimaryEmailAddress() *gdata.EmailAddress {
	for _, e := range c.emailAddresses {
		if e.Primary {
			return e
		}
	}
	return nil
}

// RemoveAllEmailAddresses clears the contact's addresses.
func (c *Contact) RemoveAllEmailAddresses() { c.emailAddresses = nil }

// PhoneNumbers returns the contact's numbers in insertion order.
func (c *Contact) PhoneNumbers() []*gdata.PhoneNumber { return c.phoneNumbers }

// AddPhoneNumber adds number unless the contact already has it.
func (c *Contact) AddPhoneNumber(number *gdata.PhoneNumber) {
	c.phoneNumbers, _ = gdata.AppendUnique(c.phoneNumbers, number)
}

// RemoveAllPhoneNumbers clears the contact's numbers.
func (c *Contact) RemoveAllPhoneNumbers() { c.phoneNumbers = nil }

func (c *Contact) Nickname() string            { return c.nickname }
func (c *Contact) SetNickname(nickname string) { c.nickname = nickname }
func (c *Contact) FileAs() string              { return c.fileAs }
func (c *Contact) SetFileAs(fileAs string)     { c.fileAs = fileAs }
func (c *Contact) Occupation() string          { return c.occupation }
func (c *Contact) SetOccupation(o string)      { c.occupation = o }
func (c *Contact) Gender() string              { return c.gender }
func (c *Contact) SetGender(gender string)     { c.gender = gender }

// Hobbies returns the contact's hobbies.
func (c *Contact) Hobbies() []string { return c.hobbies }

// AddHobby adds hobby unless it is already listed.
func (c *Contact) AddHobby(hobby string) {
	if !slices.Contains(c.hobbies, hobby) {
		c.hobbies = append(c.hobbies, hobby)
	}
}

// Groups returns the hrefs of the groups the contact belongs to, sorted,
// excluding memberships the server marked deleted.
func (c *Contact) Groups() []string {
	var out []string
	for _, href := range sortedKeys(c.groups) {
		if !c.groups[href] {
			out = append(out, href)
		}
	}
	return out
}

// IsGroupDeleted reports whether the membership of href was deleted.
func (c *Contact) IsGroupDeleted(href string) bool { return c.groups[href] }

// AddGroup makes the contact a member of the group href.
func (c *Contact) AddGroup(href string) { c.groups[href] = false }

// RemoveGroup drops the membership of href.
func (c *Contact) RemoveGroup(href string) { delete(c.groups, href) }

// ExtendedProperty returns the value stored under name.
func (c *Contact) ExtendedProperty(name string) (string, bool) {
	v, ok := c.extendedProperties[name]
	return v, ok
}

// SetExtendedProperty stores value under name; an empty value removes it.
func (c *Contact) SetExtendedProperty(name, value string) {
	if value == "" {
		delete(c.extendedProperties, name)
		return
	}
	c.extendedProperties[name] = value
}

// UserDefinedField returns the value of the field key.
func (c *Contact) UserDefinedField(key string) (string, bool) {
	v, ok := c.userDefinedFields[key]
	return v, ok
}

// SetUserDefinedField stores value under key; an empty value removes it.
func (c *Contact) SetUserDefinedField(key, value string) {
	if value == "" {
		delete(c.userDefinedFields, key)
		return
	}
	c.userDefinedFields[key] = value
}

// IsDeleted reports whether the server returned the contact as deleted.
func (c *Contact) IsDeleted() bool { return c.deleted }

// HasPhoto reports whether the contact has a photo.
func (c *Contact) HasPhoto() bool { return c.photoETag != "" }

// PhotoETag returns the ETag of the contact's photo, or "".
func (c *Contact) PhotoETag() string { return c.photoETag }
