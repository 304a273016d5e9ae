package gdata

import "fmt"

// Access rule roles and scope types shared by the services.
const (
	RoleNone = "none"

	ScopeUser    = "user"
	ScopeDomain  = "domain"
	ScopeDefault = "default"

	accessRuleKind = "http://schemas.google.com/acl/2007#accessRule"
)

var accessRuleNamespaces = map[string]string{
	"gAcl": ACLNamespace,
	"app":  AppNamespace,
}

// AccessRule grants a role to a scope on a shared resource. Its Atom title
// is the role; there is no separately stored title.
type AccessRule struct {
	Entry

	role       string
	scopeType  string
	scopeValue string
	key        string
	edited     int64
}

// NewAccessRule returns a rule with role none and the default scope.
func NewAccessRule(id string) *AccessRule {
	r := &AccessRule{}
	r.InitAccessRule(id)
	return r
}

// InitAccessRule resets r. Service-specific rules call it from their
// constructors.
func (r *AccessRule) InitAccessRule(id string) {
	r.InitAccessRuleWithKind(id, accessRuleKind)
}

// InitAccessRuleWithKind is InitAccessRule for services that name the rule
// kind differently, such as JSON APIs.
func (r *AccessRule) InitAccessRuleWithKind(id, kind string) {
	r.InitEntry(id)
	r.role = RoleNone
	r.scopeType = ScopeDefault
	r.scopeValue = ""
	r.key = ""
	r.edited = Unset
	r.AddCategory(NewCategory(kind, KindScheme, ""))
}

// Namespaces implements XMLParsable.
func (r *AccessRule) Namespaces() map[string]string {
	return MergeNamespaces(r.Entry.Namespaces(), accessRuleNamespaces)
}

// Role returns the granted role.
func (r *AccessRule) Role() string { return r.role }

// SetRole sets the granted role.
func (r *AccessRule) SetRole(role string) { r.role = role }

// Title returns the role.
func (r *AccessRule) Title() string { return r.role }

// SetTitle sets the role.
func (r *AccessRule) SetTitle(title string) { r.role = title }

// Scope returns the scope type and value. The value is empty for the
// default scope.
func (r *AccessRule) Scope() (scopeType, scopeValue string) {
	return r.scopeType, r.scopeValue
}

// SetScope sets the scope. ScopeDefault takes no value and every other type
// requires one; SetScope panics otherwise.
func (r *AccessRule) SetScope(scopeType, scopeValue string) {
	if scopeType == "" {
		panic("gdata: SetScope called with an empty scope type")
	}
	if (scopeType == ScopeDefault) != (scopeValue == "") {
		panic(fmt.Sprintf("gdata: SetScope(%q, %q): only the %s scope has no value",
			scopeType, scopeValue, ScopeDefault))
	}
	r.scopeType = scopeType
	r.scopeValue = scopeValue
}

// Key returns the authorisation key the role is bound to, if any.
func (r *AccessRule) Key() string { return r.key }

// SetKey binds the role to an authorisation key.
func (r *AccessRule) SetKey(key string) { r.key = key }

// Edited returns the last edit time in Unix seconds, or Unset.
func (r *AccessRule) Edited() int64 { return r.edited }

// SetEdited sets the last edit time.
func (r *AccessRule) SetEdited(t int64) { r.edited = t }

// ParseXMLNode handles app:edited and the gAcl elements, then the Atom
// entry elements.
func (r *AccessRule) ParseXMLNode(n *Node) (bool, error) {
	if ok, err := Int64TimeFromElement(n, AppNamespace, "edited", OptRequired|OptNoDupes, &r.edited); ok {
		return true, err
	}
	if IsNamespace(n, AtomNamespace) && n.Name == "title" {
		var title string
		if ok, err := StringFromElement(n, AtomNamespace, "title", OptNoDupes, &title); ok && err != nil {
			return true, err
		}
		if title != "" {
			r.role = title
		}
		return true, nil
	}
	if IsNamespace(n, ACLNamespace) {
		switch n.Name {
		case "role":
			return true, r.parseRole(n)
		case "withKey":
			key, ok := n.Attr("key")
			if !ok {
				return true, RequiredPropertyMissing(n, "key")
			}
			for _, child := range n.Children {
				if IsNamespace(child, ACLNamespace) && child.Name == "role" {
					if err := r.parseRole(child); err != nil {
						return true, err
					}
				}
			}
			r.key = key
			return true, nil
		case "scope":
			scopeType, _ := n.Attr("type")
			if scopeType == "" {
				return true, RequiredPropertyMissing(n, "type")
			}
			scopeValue, _ := n.Attr("value")
			if scopeType == ScopeDefault {
				scopeValue = ""
			} else if scopeValue == "" {
				return true, RequiredPropertyMissing(n, "value")
			}
			r.SetScope(scopeType, scopeValue)
			return true, nil
		}
	}
	return r.Entry.ParseXMLNode(n)
}

func (r *AccessRule) parseRole(n *Node) error {
	role, ok := n.Attr("value")
	if !ok {
		return RequiredPropertyMissing(n, "value")
	}
	r.role = role
	return nil
}

// GetXML writes the entry elements, with the role as title, followed by
// the role and scope.
func (r *AccessRule) GetXML(x *XMLBuilder) {
	r.Entry.GetXMLWithTitle(x, r.role)

	if r.key != "" {
		x.Escaped("<gAcl:withKey key='", r.key, "'>")
		x.Escaped("<gAcl:role value='", r.role, "'/>")
		x.Raw("</gAcl:withKey>")
	} else {
		x.Escaped("<gAcl:role value='", r.role, "'/>")
	}

	if r.scopeType == "" {
		return
	}
	if r.scopeValue != "" {
		x.Escaped("<gAcl:scope type='", r.scopeType, "'")
		x.Escaped(" value='", r.scopeValue, "'/>")
	} else {
		x.Escaped("<gAcl:scope type='", r.scopeType, "'/>")
	}
}
