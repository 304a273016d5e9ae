package google

import (
	"regexp"
	"strings"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// linkRegex matches Link header entries: <url>; rel="type" (quotes optional).
var linkRegex = regexp.MustCompile(`<([^>]*)>[^,<]*?;\s*rel="?([^";,]+)"?`)

// ParseLinkHeader extracts all URLs from an RFC 5988 Link header by
// relationship type. A rel listing several types maps each to the URL.
// The first URL for a relationship wins.
func ParseLinkHeader(header string) map[string]string {
	links := make(map[string]string)
	if header == "" {
		return links
	}

	for _, m := range linkRegex.FindAllStringSubmatch(header, -1) {
		for _, rel := range strings.Fields(m[2]) {
			if _, ok := links[rel]; !ok {
				links[rel] = m[1]
			}
		}
	}
	return links
}

// linkHeaderURIs returns the next and previous URIs named in a Link header,
// accepting both the IANA and the Atom relation names.
func linkHeaderURIs(header string) (next, previous string) {
	links := ParseLinkHeader(header)
	next = firstOf(links, gdata.RelNext, gdata.RelNextIANA)
	previous = firstOf(links, gdata.RelPrevious, "prev", gdata.RelPreviousIANA)
	return next, previous
}

func firstOf(links map[string]string, rels ...string) string {
	for _, rel := range rels {
		if uri, ok := links[rel]; ok {
			return uri
		}
	}
	return ""
}
