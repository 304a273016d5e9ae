package documents

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gdata-go/internal/connectors/google"
	"github.com/custodia-labs/gdata-go/internal/connectors/google/googletest"
	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

func TestQuery_DefaultURI(t *testing.T) {
	q := NewQuery("")

	assert.Equal(t, gdata.PaginationTokens, q.PaginationType())
	assert.False(t, q.ShowDeleted())
	assert.False(t, q.ShowFolders())

	uri, err := q.QueryURI("http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com?q=trashed%3Dfalse%20and%20mimeType%21%3D%27application%2Fvnd.google-apps.folder%27"+
		"&includeItemsFromAllDrives=true&supportsAllDrives=true", uri)
}

func TestQuery_URI(t *testing.T) {
	q := NewQuery("q")
	q.SetFolderID("this-is-a-folder-id")
	q.SetShowDeleted(true)
	q.SetShowFolders(true)
	q.AddCollaborator("example@gmail.com")
	q.AddReader("foo@example.com")
	q.SetTitle("Test title", true)
	q.SetMaxResults(2000)

	uri, err := q.QueryURI("http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/folder%3Athis-is-a-folder-id"+
		"?q=q%20and%20%27example%40gmail.com%27%20in%20writers%20and%20%27foo%40example.com%27%20in%20readers"+
		"%20and%20trashed%3Dtrue%20and%20title%3D%27Test%20title%27"+
		"&max-results=2000&maxResults=1000&includeItemsFromAllDrives=true&supportsAllDrives=true", uri)
}

func TestQuery_ClausesRebuiltEachTime(t *testing.T) {
	q := NewQuery("")
	q.SetShowFolders(true)

	_, err := q.QueryURI("http://example.com")
	require.NoError(t, err)
	_, err = q.QueryURI("http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "trashed=false", q.InternalClauses())
}

func TestQuery_TitleEscaping(t *testing.T) {
	q := NewQuery("")
	q.SetShowFolders(true)
	q.SetTitle(`it's a \path`, false)

	_, err := q.QueryURI("http://example.com")
	require.NoError(t, err)
	assert.Equal(t, `trashed=false and title contains 'it\'s a \\path'`, q.InternalClauses())
}

func TestQuery_MultipleCollaborators(t *testing.T) {
	q := NewQuery("")
	q.SetShowFolders(true)
	q.AddCollaborator("a@example.com")
	q.AddCollaborator("b@example.com")

	_, err := q.QueryURI("http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "'a@example.com' in writers or 'b@example.com' in writers and trashed=false", q.InternalClauses())
}

func TestQuery_AddressesDeduplicated(t *testing.T) {
	q := NewQuery("")
	q.AddCollaborator("a@example.com")
	q.SetETag("etag")
	q.AddCollaborator("a@example.com")
	assert.Len(t, q.Collaborators(), 1)
	assert.Equal(t, "etag", q.ETag())

	q.AddReader("a@example.com")
	q.AddReader("a@example.com")
	assert.Len(t, q.Readers(), 1)
	assert.Empty(t, q.ETag())
}

func TestQuery_SettersClearETag(t *testing.T) {
	tests := []struct {
		name string
		set  func(q *Query)
	}{
		{"folder", func(q *Query) { q.SetFolderID("f") }},
		{"title", func(q *Query) { q.SetTitle("t", false) }},
		{"show deleted", func(q *Query) { q.SetShowDeleted(true) }},
		{"show folders", func(q *Query) { q.SetShowFolders(true) }},
		{"collaborator", func(q *Query) { q.AddCollaborator("x@example.com") }},
		{"reader", func(q *Query) { q.AddReader("x@example.com") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewQuery("")
			q.SetETag("etag")
			tt.set(q)
			assert.Empty(t, q.ETag())
		})
	}
}

const documentJSON = `{
	"kind": "drive#file",
	"id": "doc1",
	"etag": "\"d\"",
	"selfLink": "https://www.googleapis.com/drive/v2/files/doc1",
	"alternateLink": "https://docs.google.com/document/d/doc1/edit",
	"title": "Plan",
	"mimeType": "application/vnd.google-apps.document",
	"labels": {"starred": true, "hidden": false, "trashed": false, "restricted": false, "viewed": true},
	"createdDate": "2014-08-30T19:40:00.000Z",
	"modifiedDate": "2014-08-31T19:40:00.000Z",
	"lastViewedByMeDate": "2014-09-01T00:00:00.000Z",
	"parents": [{"kind": "drive#parentReference", "id": "folder1", "isRoot": false}],
	"exportLinks": {
		"text/plain": "https://docs.google.com/export?format=txt",
		"application/pdf": "https://docs.google.com/export?format=pdf"
	},
	"quotaBytesUsed": "1024",
	"shared": true,
	"owners": [{"kind": "drive#user", "displayName": "Alice", "emailAddress": "alice@example.com"}]
}`

func TestDocument_Parse(t *testing.T) {
	doc, err := gdata.NewFromJSON([]byte(documentJSON), newEmptyDocument)
	require.NoError(t, err)

	assert.Equal(t, "doc1", doc.ID())
	assert.Equal(t, "Plan", doc.Title())
	assert.Equal(t, KindText, doc.Kind())
	assert.False(t, doc.IsFolder())
	assert.True(t, doc.IsStarred())
	assert.True(t, doc.IsViewed())
	assert.False(t, doc.IsDeleted())
	assert.True(t, doc.IsShared())
	assert.Equal(t, int64(1409427600), doc.Published())
	assert.Equal(t, int64(1409514000), doc.Updated())
	assert.Equal(t, int64(1409529600), doc.LastViewed())
	assert.Equal(t, int64(1024), doc.QuotaUsed())
	assert.Equal(t, []string{"folder1"}, doc.ParentIDs())
	assert.Equal(t, "/folder1/Plan", doc.Path())

	assert.Equal(t, ExportMimeText, doc.DefaultExportFormat())
	assert.Equal(t, "https://docs.google.com/export?format=txt", doc.DownloadURI(ExportMimeText))
	assert.Equal(t, "https://docs.google.com/export?format=pdf", doc.DownloadURI(ExportMimePDF))

	require.Len(t, doc.Authors(), 1)
	assert.Equal(t, "Alice", doc.Authors()[0].Name)
	assert.Equal(t, "alice@example.com", doc.Authors()[0].EmailAddress)

	alt := doc.LookupLink(gdata.RelAlternate)
	require.NotNil(t, alt)
	assert.Equal(t, "https://docs.google.com/document/d/doc1/edit", alt.URI)
	assert.NotNil(t, doc.LookupLink(gdata.RelSelf))
}

func TestDocument_UploadedFile(t *testing.T) {
	doc, err := gdata.NewFromJSON([]byte(`{
		"kind": "drive#file", "id": "f", "title": "notes.txt", "mimeType": "text/plain",
		"fileSize": "42", "downloadUrl": "https://example.com/dl"
	}`), newEmptyDocument)
	require.NoError(t, err)

	assert.Equal(t, KindDocument, doc.Kind())
	assert.True(t, doc.IsText())
	assert.Equal(t, int64(42), doc.FileSize())
	assert.Empty(t, doc.DefaultExportFormat())
	assert.Equal(t, "https://example.com/dl", doc.DownloadURI(ExportMimeText))
	assert.Equal(t, "/notes.txt", doc.Path())
	assert.Equal(t, gdata.Unset, doc.LastViewed())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		mime string
		want Kind
	}{
		{MimeTypeFolder, KindFolder},
		{MimeTypePDF, KindPDF},
		{MimeTypeGoogleDoc, KindText},
		{MimeTypeDrawing, KindDrawing},
		{MimeTypeGoogleSlides, KindPresentation},
		{MimeTypeGoogleSheet, KindSpreadsheet},
		{"image/png", KindDocument},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.mime))
		})
	}
}

func TestDocument_ParseErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"labels not an object", `{"labels": []}`},
		{"owners not an array", `{"owners": {}}`},
		{"owner without name", `{"owners": [{"emailAddress": "a@example.com"}]}`},
		{"bad modified date", `{"modifiedDate": "last week"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gdata.NewFromJSON([]byte(tt.json), newEmptyDocument)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidResponse)
		})
	}
}

func TestDocument_JSON(t *testing.T) {
	doc := NewDocument("")
	doc.SetTitle("Budget")
	doc.SetMimeType(MimeTypeGoogleSheet)
	doc.AddParent("folder1")
	doc.AddParent("folder1")

	assert.JSONEq(t, `{
		"title": "Budget",
		"kind": "drive#file",
		"mimeType": "application/vnd.google-apps.spreadsheet",
		"parents": [{"id": "folder1"}]
	}`, gdata.GetJSON(doc))
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery(map[string]string{
		"folder_id":     "f1",
		"title":         "Plan",
		"exact_title":   "true",
		"show_folders":  "yes",
		"collaborators": "a@example.com, b@example.com,a@example.com",
	})
	require.Error(t, err, "yes is not a boolean")
	assert.Nil(t, q)

	q, err = ParseQuery(map[string]string{
		"folder_id":     "f1",
		"title":         "Plan",
		"exact_title":   "true",
		"show_folders":  "1",
		"collaborators": "a@example.com, b@example.com,a@example.com",
		"readers":       "c@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "f1", q.FolderID())
	title, exact := q.Title()
	assert.Equal(t, "Plan", title)
	assert.True(t, exact)
	assert.True(t, q.ShowFolders())
	assert.Len(t, q.Collaborators(), 2)
	assert.Len(t, q.Readers(), 1)
}

func TestParseConfig_BadAddress(t *testing.T) {
	_, err := ParseConfig(map[string]string{"readers": "not-an-address"})
	require.ErrorIs(t, err, domain.ErrInvalidQuery)
	assert.Contains(t, err.Error(), "Readers[0]: email")
}

func TestQueryDocuments(t *testing.T) {
	svc, rec := googletest.NewService(t, google.ServiceDocuments,
		googletest.Reply(http.StatusOK, "application/json",
			`{"kind": "drive#fileList", "etag": "\"list\"", "nextPageToken": "n", "items": [`+documentJSON+`]}`))

	q := NewQuery("")
	q.SetFolderID("root")
	feed, err := QueryDocuments(context.Background(), svc, q, nil)
	require.NoError(t, err)

	require.Len(t, feed.Entries(), 1)
	assert.Equal(t, "n", q.NextPageToken())
	assert.Equal(t, `"list"`, q.ETag())

	req := rec.Last()
	assert.Equal(t, "/drive/v2/files/folder:root", req.URL.Path)
	assert.Equal(t, "true", req.URL.Query().Get("supportsAllDrives"))
}

func TestInsertDocument(t *testing.T) {
	var body []byte
	svc, rec := googletest.NewService(t, google.ServiceDocuments, func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(documentJSON))
	})

	doc := NewDocument("")
	doc.SetTitle("Plan")
	doc.SetMimeType(MimeTypeGoogleDoc)

	inserted, err := InsertDocument(context.Background(), svc, doc)
	require.NoError(t, err)
	assert.Equal(t, "doc1", inserted.ID())

	assert.Equal(t, http.MethodPost, rec.Last().Method)
	assert.Equal(t, "/drive/v2/files", rec.Last().URL.Path)
	assert.JSONEq(t, `{"title": "Plan", "kind": "drive#file", "mimeType": "application/vnd.google-apps.document"}`, string(body))
}

func TestDeleteDocument_UsesSelfLink(t *testing.T) {
	svc, rec := googletest.NewService(t, google.ServiceDocuments,
		googletest.Reply(http.StatusNoContent, "", ""))

	doc, err := gdata.NewFromJSON([]byte(documentJSON), newEmptyDocument)
	require.NoError(t, err)

	require.NoError(t, DeleteDocument(context.Background(), svc, doc))
	assert.Equal(t, http.MethodDelete, rec.Last().Method)
	assert.Equal(t, "/drive/v2/files/doc1", rec.Last().URL.Path)
	assert.Equal(t, `"d"`, rec.Last().Header.Get("If-Match"))
}
