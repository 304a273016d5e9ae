package freebase

import (
	"fmt"
	"strconv"
	"strings"
)

// FilterType combines the children of a filter container.
type FilterType int

const (
	FilterAll FilterType = iota
	FilterAny
	FilterNot
)

var filterTypeNames = [...]string{"all", "any", "not"}

func (t FilterType) String() string {
	if t < 0 || int(t) >= len(filterTypeNames) {
		return fmt.Sprintf("FilterType(%d)", int(t))
	}
	return filterTypeNames[t]
}

// Filter is a node of a search filter expression.
type Filter interface {
	writeFilter(b *strings.Builder)
}

type container struct {
	kind     FilterType
	children []Filter
}

func (c *container) writeFilter(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(c.kind.String())
	for _, child := range c.children {
		child.writeFilter(b)
	}
	b.WriteByte(')')
}

// All matches topics matching every child.
func All(children ...Filter) Filter { return &container{kind: FilterAll, children: children} }

// Any matches topics matching at least one child.
func Any(children ...Filter) Filter { return &container{kind: FilterAny, children: children} }

// Not matches topics matching none of the children.
func Not(children ...Filter) Filter { return &container{kind: FilterNot, children: children} }

type value struct {
	property string
	value    string
}

func (v *value) writeFilter(b *strings.Builder) {
	b.WriteByte(' ')
	b.WriteString(v.property)
	b.WriteString(`:"`)
	b.WriteString(escapeValue(v.value))
	b.WriteByte('"')
}

// Value matches topics whose property has the given value, e.g.
// Value("type", "/location/citytown").
func Value(property, v string) Filter { return &value{property: property, value: v} }

type location struct {
	radius   uint64
	lat, lon float64
}

func (l *location) writeFilter(b *strings.Builder) {
	fmt.Fprintf(b, "(within radius:%dm lon:%s lat:%s)", l.radius,
		strconv.FormatFloat(l.lon, 'f', 4, 64), strconv.FormatFloat(l.lat, 'f', 4, 64))
}

// Within matches topics located within radius metres of a point.
func Within(radius uint64, lat, lon float64) Filter {
	return &location{radius: radius, lat: lat, lon: lon}
}

// FilterString renders f in the search filter syntax.
func FilterString(f Filter) string {
	if f == nil {
		return ""
	}
	var b strings.Builder
	f.writeFilter(&b)
	return b.String()
}

// escapeValue backslash-escapes quotes, backslashes and ASCII control
// characters.
func escapeValue(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\%03o`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
