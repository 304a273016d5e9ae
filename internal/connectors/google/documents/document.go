package documents

import (
	"encoding/json"
	"strconv"
	"strings"

	drive "google.golang.org/api/drive/v2"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// MIME types of the Google Workspace formats.
const (
	MimeTypeFolder       = "application/vnd.google-apps.folder"
	MimeTypeGoogleDoc    = "application/vnd.google-apps.document"
	MimeTypeGoogleSheet  = "application/vnd.google-apps.spreadsheet"
	MimeTypeGoogleSlides = "application/vnd.google-apps.presentation"
	MimeTypeDrawing      = "application/vnd.google-apps.drawing"
	MimeTypePDF          = "application/pdf"
)

// Export formats for Google Workspace files.
const (
	ExportMimeText = "text/plain"
	ExportMimeCSV  = "text/csv"
	ExportMimePDF  = "application/pdf"
)

// Kind classifies a file by its MIME type.
type Kind string

const (
	KindFolder       Kind = "folder"
	KindPDF          Kind = "pdf"
	KindText         Kind = "text"
	KindDrawing      Kind = "drawing"
	KindPresentation Kind = "presentation"
	KindSpreadsheet  Kind = "spreadsheet"
	KindDocument     Kind = "document"
)

// KindOf returns the kind of a file with the given MIME type. Anything
// that is not a Workspace format or a PDF is a plain document.
func KindOf(mimeType string) Kind {
	switch mimeType {
	case MimeTypeFolder:
		return KindFolder
	case MimeTypePDF:
		return KindPDF
	case MimeTypeGoogleDoc:
		return KindText
	case MimeTypeDrawing:
		return KindDrawing
	case MimeTypeGoogleSlides:
		return KindPresentation
	case MimeTypeGoogleSheet:
		return KindSpreadsheet
	}
	return KindDocument
}

const fileKind = "drive#file"

// Document is a file in the user's Drive, exchanged in the v2 files shape.
type Document struct {
	gdata.Entry

	mimeType    string
	lastViewed  int64
	quotaUsed   int64
	fileSize    int64
	shared      bool
	labels      drive.FileLabels
	parents     []*drive.ParentReference
	exportLinks map[string]string
	downloadURL string
}

// NewDocument returns a document with the given id, empty for a new one.
func NewDocument(id string) *Document {
	d := &Document{}
	d.InitEntry(id)
	d.lastViewed = gdata.Unset
	d.AddCategory(gdata.NewCategory(fileKind, gdata.KindScheme, ""))
	return d
}

func newEmptyDocument() *Document { return NewDocument("") }

// ContentType implements gdata.JSONParsable.
func (d *Document) ContentType() string { return gdata.ContentTypeJSON }

func int64FromJSONString(name string, value json.RawMessage, member string, out *int64) (bool, error) {
	var s string
	ok, err := gdata.StringFromJSON(name, value, member, gdata.OptNone, &s)
	if !ok || err != nil {
		return ok, err
	}
	// The API documents these as numbers but sends strings; anything else
	// is ignored.
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*out = n
	}
	return true, nil
}

// ParseJSONMember handles the files members, then the entry ones.
func (d *Document) ParseJSONMember(name string, value json.RawMessage) (bool, error) {
	if ok, err := gdata.StringFromJSON(name, value, "mimeType", gdata.OptNone, &d.mimeType); ok {
		return true, err
	}
	if ok, err := gdata.Int64TimeFromJSON(name, value, "lastViewedByMeDate", gdata.OptNone, &d.lastViewed); ok {
		return true, err
	}
	if ok, err := int64FromJSONString(name, value, "quotaBytesUsed", &d.quotaUsed); ok {
		return true, err
	}
	if ok, err := int64FromJSONString(name, value, "fileSize", &d.fileSize); ok {
		return true, err
	}
	if ok, err := gdata.BooleanFromJSON(name, value, "shared", &d.shared); ok {
		return true, err
	}
	if ok, err := gdata.StringFromJSON(name, value, "downloadUrl", gdata.OptNone, &d.downloadURL); ok {
		return true, err
	}

	switch name {
	case "alternateLink":
		var uri string
		if _, err := gdata.StringFromJSON(name, value, name, gdata.OptNone, &uri); err != nil {
			return true, err
		}
		if uri != "" {
			d.AddLink(gdata.NewLink(uri, gdata.RelAlternate))
		}
		return true, nil
	case "createdDate", "modifiedDate":
		var t int64
		if _, err := gdata.Int64TimeFromJSON(name, value, name, gdata.OptNone, &t); err != nil {
			return true, err
		}
		if name == "createdDate" {
			d.SetPublished(t)
		} else {
			d.SetUpdated(t)
		}
		return true, nil
	case "labels":
		if err := json.Unmarshal(value, &d.labels); err != nil {
			return true, gdata.InvalidJSON(name, "JSON node ‘labels’ is not an object.")
		}
		return true, nil
	case "owners":
		var owners []*drive.User
		if err := json.Unmarshal(value, &owners); err != nil {
			return true, gdata.InvalidJSON(name, "JSON node ‘owners’ is not an array.")
		}
		for _, o := range owners {
			if o == nil || o.DisplayName == "" {
				return true, gdata.InvalidJSON(name, "Failed to find ‘displayName’.")
			}
			d.AddAuthor(gdata.NewAuthor(o.DisplayName, "", o.EmailAddress))
		}
		return true, nil
	case "parents":
		if err := json.Unmarshal(value, &d.parents); err != nil {
			return true, gdata.InvalidJSON(name, "JSON node ‘parents’ is not an array.")
		}
		return true, nil
	case "exportLinks":
		if err := json.Unmarshal(value, &d.exportLinks); err != nil {
			return true, gdata.InvalidJSON(name, "JSON node ‘exportLinks’ is not an object.")
		}
		return true, nil
	}
	return d.Entry.ParseJSONMember(name, value)
}

// GetJSON writes the members a file insert or update accepts.
func (d *Document) GetJSON(j *gdata.JSONBuilder) {
	j.String("title", d.Title())
	if id := d.ID(); id != "" {
		j.String("id", id)
	}
	if s := d.Summary(); s != "" {
		j.String("description", s)
	}
	j.String("kind", fileKind)
	if etag := d.ETag(); etag != "" {
		j.String("etag", etag)
	}
	if d.mimeType != "" {
		j.String("mimeType", d.mimeType)
	}
	if len(d.parents) > 0 {
		data, err := json.Marshal(d.parents)
		if err == nil {
			j.Raw("parents", data)
		}
	}
}

// MimeType returns the file's MIME type.
func (d *Document) MimeType() string { return d.mimeType }

// SetMimeType sets the MIME type, e.g. MimeTypeGoogleDoc to create a
// Workspace document.
func (d *Document) SetMimeType(mimeType string) { d.mimeType = mimeType }

// Kind classifies the file by MIME type.
func (d *Document) Kind() Kind { return KindOf(d.mimeType) }

// IsFolder reports whether the file is a folder.
func (d *Document) IsFolder() bool { return d.mimeType == MimeTypeFolder }

// LastViewed returns when the user last opened the file, or gdata.Unset.
func (d *Document) LastViewed() int64 { return d.lastViewed }

// QuotaUsed returns the storage quota the file consumes in bytes.
func (d *Document) QuotaUsed() int64 { return d.quotaUsed }

// FileSize returns the size of uploaded content in bytes, 0 for Workspace
// formats.
func (d *Document) FileSize() int64 { return d.fileSize }

// IsShared reports whether the file is shared with anyone.
func (d *Document) IsShared() bool { return d.shared }

// IsStarred reports whether the user starred the file.
func (d *Document) IsStarred() bool { return d.labels.Starred }

// IsViewed reports whether the user has opened the file.
func (d *Document) IsViewed() bool { return d.labels.Viewed }

// IsDeleted reports whether the file is in the trash.
func (d *Document) IsDeleted() bool { return d.labels.Trashed }

// ParentIDs returns the ids of the folders holding the file.
func (d *Document) ParentIDs() []string {
	ids := make([]string, 0, len(d.parents))
	for _, p := range d.parents {
		ids = append(ids, p.Id)
	}
	return ids
}

// AddParent places the file in the folder with the given id.
func (d *Document) AddParent(folderID string) {
	for _, p := range d.parents {
		if p.Id == folderID {
			return
		}
	}
	d.parents = append(d.parents, &drive.ParentReference{Id: folderID})
}

// Path returns a display path built from the first parent id and the title.
// Parent ids are not resolved to names.
func (d *Document) Path() string {
	if len(d.parents) == 0 {
		return "/" + d.Title()
	}
	return "/" + d.parents[0].Id + "/" + d.Title()
}

// DownloadURI returns the URI to fetch the file's content as format. For
// Workspace formats that is an export link; for uploaded files format is
// ignored and the direct download URL is returned.
func (d *Document) DownloadURI(format string) string {
	if uri, ok := d.exportLinks[format]; ok {
		return uri
	}
	return d.downloadURL
}

// DefaultExportFormat returns the format Workspace files are exported as
// for indexing: CSV for spreadsheets, plain text otherwise. Uploaded files
// return "".
func (d *Document) DefaultExportFormat() string {
	switch d.mimeType {
	case MimeTypeGoogleSheet:
		return ExportMimeCSV
	case MimeTypeGoogleDoc, MimeTypeGoogleSlides:
		return ExportMimeText
	case MimeTypeDrawing:
		return ExportMimePDF
	}
	return ""
}

// IsText reports whether the file's content is likely readable text.
func (d *Document) IsText() bool {
	if strings.HasPrefix(d.mimeType, "text/") {
		return true
	}
	switch d.mimeType {
	case "application/json", "application/xml", "application/javascript",
		"application/x-yaml", "application/x-sh", "application/sql":
		return true
	}
	return false
}
