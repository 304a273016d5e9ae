package gdata

import (
	"fmt"
	"strings"
)

// EscapeXML escapes s for use in XML content or single- or double-quoted
// attribute values. C0 and C1 control characters other than tab, newline and
// carriage return become numeric character references.
func EscapeXML(s string) string {
	var b strings.Builder
	writeEscapedXML(&b, s)
	return b.String()
}

func writeEscapedXML(b *strings.Builder, s string) {
	for _, c := range s {
		switch c {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '\'':
			b.WriteString("&apos;")
		case '"':
			b.WriteString("&quot;")
		default:
			if isEscapedControl(c) {
				fmt.Fprintf(b, "&#x%x;", c)
			} else {
				b.WriteRune(c)
			}
		}
	}
}

func isEscapedControl(c rune) bool {
	return (0x1 <= c && c <= 0x8) ||
		(0xb <= c && c <= 0xc) ||
		(0xe <= c && c <= 0x1f) ||
		(0x7f <= c && c <= 0x84) ||
		(0x86 <= c && c <= 0x9f)
}

// XMLBuilder accumulates serialised XML.
type XMLBuilder struct {
	b strings.Builder
}

// Raw appends s unmodified.
func (x *XMLBuilder) Raw(s string) { x.b.WriteString(s) }

// Printf appends formatted text unmodified; arguments are not escaped.
func (x *XMLBuilder) Printf(format string, args ...any) { fmt.Fprintf(&x.b, format, args...) }

// Escaped appends pre, the escaped content, then post.
func (x *XMLBuilder) Escaped(pre, content, post string) {
	x.b.WriteString(pre)
	writeEscapedXML(&x.b, content)
	x.b.WriteString(post)
}

// Len returns the number of bytes written.
func (x *XMLBuilder) Len() int { return x.b.Len() }

// String returns the XML built so far.
func (x *XMLBuilder) String() string { return x.b.String() }
