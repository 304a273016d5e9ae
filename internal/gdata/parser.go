package gdata

import (
	"strconv"
	"strings"
)

// ParseOption controls the checks made by the element and member helpers.
type ParseOption uint

const (
	// OptNone applies no checks.
	OptNone ParseOption = 0
	// OptNoDupes rejects a second occurrence of the element.
	OptNoDupes ParseOption = 1 << iota
	// OptRequired rejects an element without content.
	OptRequired
	// OptNonEmpty rejects an element whose content is the empty string.
	OptNonEmpty
	// OptIgnoreError drops a child object that fails to parse instead of
	// failing the parent. It cannot be combined with OptRequired.
	OptIgnoreError
)

// IsNamespace reports whether n is in the namespace ns. Elements with no
// namespace are treated as Atom.
func IsNamespace(n *Node, ns string) bool {
	if n.Namespace == "" {
		return ns == AtomNamespace
	}
	return n.Namespace == ns
}

func matches(n *Node, ns, name string) bool {
	return n.Name == name && IsNamespace(n, ns)
}

// StringFromElement stores the text of n in out when n is the element
// ns:name. It reports whether n matched; err is set when a check in opts
// failed.
func StringFromElement(n *Node, ns, name string, opts ParseOption, out *string) (bool, error) {
	if !matches(n, ns, name) {
		return false, nil
	}
	if opts&OptNoDupes != 0 && n.HasEarlierSibling() {
		return true, DuplicateElement(n)
	}
	if (opts&OptRequired != 0 && !n.HasText()) || (opts&OptNonEmpty != 0 && n.Text() == "") {
		return true, RequiredContentMissing(n)
	}
	*out = n.Text()
	return true, nil
}

// Int64TimeFromElement stores the ISO 8601 content of n in out as Unix
// seconds when n is the element ns:name.
func Int64TimeFromElement(n *Node, ns, name string, opts ParseOption, out *int64) (bool, error) {
	if !matches(n, ns, name) {
		return false, nil
	}
	if opts&OptNoDupes != 0 && n.HasEarlierSibling() {
		return true, DuplicateElement(n)
	}
	text := n.Text()
	if opts&OptRequired != 0 && text == "" {
		return true, RequiredContentMissing(n)
	}
	t, ok := ParseISO8601(text)
	if !ok {
		return true, NotISO8601(n, text)
	}
	*out = t
	return true, nil
}

// ObjectFromElement parses n into a fresh value from newFn and hands it to
// set when n is the element ns:name.
func ObjectFromElement[P XMLParsable](n *Node, ns, name string, opts ParseOption, newFn func() P, set func(P)) (bool, error) {
	if !matches(n, ns, name) {
		return false, nil
	}
	if opts&OptNoDupes != 0 && n.HasEarlierSibling() {
		return true, DuplicateElement(n)
	}
	child := newFn()
	if err := ParseXMLElement(n, child); err != nil {
		if opts&OptIgnoreError != 0 && opts&OptRequired == 0 {
			return true, nil
		}
		return true, err
	}
	set(child)
	return true, nil
}

// BooleanFromProperty reads the attribute name of n as "true" or "false".
// A missing attribute yields def, or an error when def is negative.
func BooleanFromProperty(n *Node, name string, def int) (bool, error) {
	v, ok := n.Attr(name)
	switch {
	case !ok:
		if def < 0 {
			return false, RequiredPropertyMissing(n, name)
		}
		return def == 1, nil
	case v == "true":
		return true, nil
	case v == "false":
		return false, nil
	default:
		return false, UnknownPropertyValue(n, name, v)
	}
}

// Int64FromElement stores the decimal content of n in out when n is the
// element ns:name.
func Int64FromElement(n *Node, ns, name string, opts ParseOption, out *int64) (bool, error) {
	if !matches(n, ns, name) {
		return false, nil
	}
	if opts&OptNoDupes != 0 && n.HasEarlierSibling() {
		return true, DuplicateElement(n)
	}
	text := strings.TrimSpace(n.Text())
	if opts&OptRequired != 0 && text == "" {
		return true, RequiredContentMissing(n)
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return true, UnknownContent(n, text)
	}
	*out = v
	return true, nil
}
