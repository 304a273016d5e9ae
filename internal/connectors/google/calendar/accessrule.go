package calendar

import (
	"encoding/json"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Calendar roles, in the form the rule stores them.
const (
	RoleFreeBusy = "http://schemas.google.com/gCal/2005#freebusy"
	RoleRead     = "http://schemas.google.com/gCal/2005#read"
	RoleEditor   = "http://schemas.google.com/gCal/2005#editor"
	RoleOwner    = "http://schemas.google.com/gCal/2005#owner"
	RoleRoot     = "http://schemas.google.com/gCal/2005#root"
)

const aclRuleKind = "calendar#aclRule"

// rolePairs maps stored roles to the names the JSON API uses.
var rolePairs = []struct{ stored, wire string }{
	{gdata.RoleNone, "none"},
	{RoleFreeBusy, "freeBusyReader"},
	{RoleRead, "reader"},
	{RoleEditor, "writer"},
	{RoleOwner, "owner"},
}

func roleFromWire(wire string) string {
	for _, p := range rolePairs {
		if p.wire == wire {
			return p.stored
		}
	}
	return wire
}

func roleToWire(stored string) string {
	for _, p := range rolePairs {
		if p.stored == stored {
			return p.wire
		}
	}
	return stored
}

// AccessRule shares a calendar. It is exchanged as JSON; the role is
// translated to and from the JSON API's names and anything unrecognised is
// kept verbatim. Scope types have the same names in both forms.
type AccessRule struct {
	gdata.AccessRule
}

// NewAccessRule returns a rule with the given id, empty for a new rule.
func NewAccessRule(id string) *AccessRule {
	r := &AccessRule{}
	r.InitAccessRuleWithKind(id, aclRuleKind)
	return r
}

func newEmptyAccessRule() *AccessRule { return NewAccessRule("") }

// ContentType implements gdata.JSONParsable.
func (r *AccessRule) ContentType() string { return gdata.ContentTypeJSON }

type scopeJSON struct {
	Type  *string `json:"type"`
	Value *string `json:"value"`
}

// ParseJSONMember handles role and scope, then the entry members.
func (r *AccessRule) ParseJSONMember(name string, value json.RawMessage) (bool, error) {
	switch name {
	case "role":
		var role string
		if _, err := gdata.StringFromJSON(name, value, name, gdata.OptNone, &role); err != nil {
			return true, err
		}
		r.SetRole(roleFromWire(role))
		return true, nil
	case "scope":
		var scope scopeJSON
		if err := json.Unmarshal(value, &scope); err != nil {
			return true, gdata.RequiredJSONContentMissing(name)
		}
		if scope.Type == nil {
			return true, gdata.RequiredJSONContentMissing(name)
		}
		var scopeValue string
		if scope.Value != nil {
			scopeValue = *scope.Value
		}
		switch {
		case *scope.Type == gdata.ScopeDefault:
			// The public principal sent with default scopes is not kept.
			scopeValue = ""
		case *scope.Type == "" || scopeValue == "":
			return true, gdata.RequiredJSONContentMissing(name)
		}
		r.SetScope(*scope.Type, scopeValue)
		return true, nil
	}
	return r.AccessRule.Entry.ParseJSONMember(name, value)
}

// GetJSON writes id, kind, etag, role and scope. The Atom members have no
// JSON counterpart for rules.
func (r *AccessRule) GetJSON(j *gdata.JSONBuilder) {
	if id := r.ID(); id != "" {
		j.String("id", id)
	}
	j.String("kind", aclRuleKind)
	if etag := r.ETag(); etag != "" {
		j.String("etag", etag)
	}
	if role := r.Role(); role != "" {
		j.String("role", roleToWire(role))
	}

	scopeType, scopeValue := r.Scope()
	if scopeType == "" && scopeValue == "" {
		return
	}
	j.Object("scope", func(j *gdata.JSONBuilder) {
		if scopeType != "" {
			j.String("type", scopeType)
		}
		if scopeValue != "" {
			j.String("value", scopeValue)
		}
	})
}
