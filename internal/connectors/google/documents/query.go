package documents

import (
	"strings"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// maxPageSize is the largest page the files endpoint returns.
const maxPageSize = 1000

// Query searches the user's files. Its filters are expressed as Drive
// search clauses added to the q parameter, so they combine with any free
// text the caller sets. It pages with server tokens.
type Query struct {
	gdata.Query

	folderID      string
	title         string
	exactTitle    bool
	showDeleted   bool
	showFolders   bool
	collaborators []*gdata.EmailAddress
	readers       []*gdata.EmailAddress
}

// NewQuery returns a query for the free-text search q, which may be empty.
func NewQuery(q string) *Query {
	query := &Query{}
	query.Init(q)
	query.SetPaginationType(gdata.PaginationTokens)
	return query
}

// QueryURI implements gdata.Querier.
func (q *Query) QueryURI(feedURI string) (string, error) {
	return gdata.BuildURI(&q.Query, feedURI, q)
}

func addressClause(addrs []*gdata.EmailAddress, role string) string {
	clauses := make([]string, len(addrs))
	for i, a := range addrs {
		clauses[i] = "'" + a.Address + "' in " + role
	}
	return strings.Join(clauses, " or ")
}

// escapeTitle backslash-escapes the quote and backslash characters so the
// title can sit inside a quoted search term.
func escapeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if r == '\'' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// AppendParams rebuilds the search clauses, then writes the shared
// parameters followed by the Drive ones.
func (q *Query) AppendParams(w *gdata.URIWriter) {
	if q.folderID != "" {
		w.AppendPath("/folder%3A" + gdata.EscapeURI(q.folderID, ""))
	}

	q.ClearInternalClauses()
	q.AddInternalClause(addressClause(q.collaborators, "writers"))
	q.AddInternalClause(addressClause(q.readers, "readers"))
	if q.showDeleted {
		q.AddInternalClause("trashed=true")
	} else {
		q.AddInternalClause("trashed=false")
	}
	if !q.showFolders {
		q.AddInternalClause("mimeType!='" + MimeTypeFolder + "'")
	}
	if q.title != "" {
		op := " contains "
		if q.exactTitle {
			op = "="
		}
		q.AddInternalClause("title" + op + "'" + escapeTitle(q.title) + "'")
	}

	q.Query.AppendParams(w)

	if n := q.MaxResults(); n > 0 {
		w.UintParam("maxResults", min(n, maxPageSize))
	}
	w.RawParam("includeItemsFromAllDrives", "true")
	w.RawParam("supportsAllDrives", "true")
}

// FolderID returns the folder results are restricted to.
func (q *Query) FolderID() string { return q.folderID }

// SetFolderID restricts results to the folder with the given id.
func (q *Query) SetFolderID(id string) {
	q.folderID = id
	q.SetETag("")
}

// Title returns the title filter and whether it must match exactly.
func (q *Query) Title() (title string, exact bool) { return q.title, q.exactTitle }

// SetTitle filters by title, either exactly or by substring.
func (q *Query) SetTitle(title string, exact bool) {
	q.title = title
	q.exactTitle = exact
	q.SetETag("")
}

// ShowDeleted reports whether results come from the trash.
func (q *Query) ShowDeleted() bool { return q.showDeleted }

// SetShowDeleted searches the trash instead of live files.
func (q *Query) SetShowDeleted(show bool) {
	q.showDeleted = show
	q.SetETag("")
}

// ShowFolders reports whether folders are included.
func (q *Query) ShowFolders() bool { return q.showFolders }

// SetShowFolders includes or excludes folders.
func (q *Query) SetShowFolders(show bool) {
	q.showFolders = show
	q.SetETag("")
}

// Collaborators returns the addresses that must be able to edit results.
func (q *Query) Collaborators() []*gdata.EmailAddress { return q.collaborators }

// AddCollaborator requires results to be editable by address. Repeated
// addresses are ignored; any one listed collaborator matches.
func (q *Query) AddCollaborator(address string) {
	var added bool
	q.collaborators, added = gdata.AppendUnique(q.collaborators, gdata.NewEmailAddress(address, "", "", false))
	if added {
		q.SetETag("")
	}
}

// Readers returns the addresses that must be able to read results.
func (q *Query) Readers() []*gdata.EmailAddress { return q.readers }

// AddReader requires results to be readable by address. Repeated addresses
// are ignored; any one listed reader matches.
func (q *Query) AddReader(address string) {
	var added bool
	q.readers, added = gdata.AppendUnique(q.readers, gdata.NewEmailAddress(address, "", "", false))
	if added {
		q.SetETag("")
	}
}
