package documents

import (
	"context"

	"github.com/custodia-labs/gdata-go/internal/connectors/google"
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// FilesURI is the file feed of the Drive API v2.
const FilesURI = "https://www.googleapis.com/drive/v2/files"

func querier(q *Query) gdata.Querier {
	if q == nil {
		return nil
	}
	return q
}

// QueryDocuments fetches a page of the user's files.
func QueryDocuments(
	ctx context.Context,
	svc *google.Service,
	q *Query,
	progress func(*Document),
) (*gdata.Feed[*Document], error) {
	return google.QueryFeed(ctx, svc, querier(q), FilesURI, newEmptyDocument, progress)
}

// InsertDocument creates a file from doc's metadata. Content upload is not
// supported, so this creates empty Workspace files and folders.
func InsertDocument(ctx context.Context, svc *google.Service, doc *Document) (*Document, error) {
	return google.InsertEntry(ctx, svc, FilesURI, doc, newEmptyDocument)
}

// UpdateDocument replaces doc's metadata through its self link.
func UpdateDocument(ctx context.Context, svc *google.Service, doc *Document) (*Document, error) {
	return google.UpdateEntry(ctx, svc, doc, newEmptyDocument)
}

// DeleteDocument removes doc permanently.
func DeleteDocument(ctx context.Context, svc *google.Service, doc *Document) error {
	return google.DeleteEntry(ctx, svc, doc)
}
