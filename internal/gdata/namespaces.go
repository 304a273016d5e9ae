package gdata

import "sort"

// Namespace URIs used across the GData wire formats.
const (
	AtomNamespace       = "http://www.w3.org/2005/Atom"
	GDNamespace         = "http://schemas.google.com/g/2005"
	AppNamespace        = "http://www.w3.org/2007/app"
	ACLNamespace        = "http://schemas.google.com/acl/2007"
	BatchNamespace      = "http://schemas.google.com/gdata/batch"
	OpenSearchNamespace = "http://a9.com/-/spec/opensearch/1.1/"
	GContactNamespace   = "http://schemas.google.com/contact/2008"
)

// Content types of the two wire formats.
const (
	ContentTypeAtom = "application/atom+xml"
	ContentTypeJSON = "application/json"
)

// MergeNamespaces combines prefix→URI maps from the most general type to the
// most specific; later maps win on conflicts.
func MergeNamespaces(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

func writeNamespaces(x *XMLBuilder, namespaces map[string]string) {
	prefixes := make([]string, 0, len(namespaces))
	for p := range namespaces {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	for _, p := range prefixes {
		x.Raw(" xmlns:" + p + "='")
		x.Escaped("", namespaces[p], "'")
	}
}
