package contacts

import (
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// System group ids. Their titles come from Google unlocalised.
const (
	SystemGroupContacts  = "Contacts"
	SystemGroupFriends   = "Friends"
	SystemGroupFamily    = "Family"
	SystemGroupCoworkers = "Coworkers"
)

// Group is a contact group.
type Group struct {
	gdata.Entry

	edited             int64
	deleted            bool
	systemGroupID      string
	extendedProperties map[string]string
}

// NewGroup returns a group with the given id, empty for a new one.
func NewGroup(id string) *Group {
	g := newEmptyGroup()
	g.SetID(fullProjection(id))
	return g
}

func newEmptyGroup() *Group {
	g := &Group{
		edited:             gdata.Unset,
		extendedProperties: make(map[string]string),
	}
	g.InitEntry("")
	g.AddCategory(gdata.NewCategory(groupKind, gdata.KindScheme, ""))
	return g
}

// Namespaces implements gdata.XMLParsable.
func (g *Group) Namespaces() map[string]string {
	return gdata.MergeNamespaces(g.Entry.Namespaces(), contactNamespaces)
}

// ParseXMLNode handles app:edited, gd:extendedProperty, gd:deleted and
// gContact:systemGroup, then the Atom entry elements.
func (g *Group) ParseXMLNode(n *gdata.Node) (bool, error) {
	if ok, err := gdata.Int64TimeFromElement(n, gdata.AppNamespace, "edited", gdata.OptRequired|gdata.OptNoDupes, &g.edited); ok {
		return true, err
	}
	switch {
	case n.Is(gdata.AtomNamespace, "id"):
		return fixID(&g.Entry, n)
	case n.Is(gdata.GDNamespace, "extendedProperty"):
		return true, parseExtendedProperty(n, g.extendedProperties)
	case n.Is(gdata.GDNamespace, "deleted"):
		if g.deleted {
			return true, gdata.DuplicateElement(n)
		}
		g.deleted = true
		return true, nil
	case n.Is(gdata.GContactNamespace, "systemGroup"):
		if g.systemGroupID != "" {
			return true, gdata.DuplicateElement(n)
		}
		id, _ := n.Attr("id")
		if id == "" {
			return true, gdata.RequiredPropertyMissing(n, "id")
		}
		g.systemGroupID = id
		return true, nil
	}
	return g.Entry.ParseXMLNode(n)
}

// GetXML writes the entry elements and the extended properties. System
// group membership is read-only.
func (g *Group) GetXML(x *gdata.XMLBuilder) {
	g.Entry.GetXML(x)
	writeExtendedProperties(x, g.extendedProperties)
}

// Edited returns the last edit time, or gdata.Unset.
func (g *Group) Edited() int64 { return g.edited }

// IsDeleted reports whether the server returned the group as deleted.
func (g *Group) IsDeleted() bool { return g.deleted }

// SystemGroupID returns one of the SystemGroup ids, or "" for user groups.
func (g *Group) SystemGroupID() string { return g.systemGroupID }

// ExtendedProperty returns the value stored under name.
func (g *Group) ExtendedProperty(name string) (string, bool) {
	v, ok := g.extendedProperties[name]
	return v, ok
}

// SetExtendedProperty stores value under name; an empty value removes it.
func (g *Group) SetExtendedProperty(name, value string) {
	if value == "" {
		delete(g.extendedProperties, name)
		return
	}
	g.extendedProperties[name] = value
}
