package picasaweb

import (
	"context"
	"fmt"

	"github.com/custodia-labs/gdata-go/internal/connectors/google"
	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

const (
	feedPrefix  = "https://picasaweb.google.com/data/feed/api/user/"
	entryPrefix = "https://picasaweb.google.com/data/entry/api/user/"

	// DefaultFilesURI lists the files in the authenticated user's default
	// album.
	DefaultFilesURI = feedPrefix + "default/albumid/default"
)

func userPath(username string) string {
	if username == "" {
		return "default"
	}
	return gdata.EscapeURI(username, "")
}

// AlbumsURI returns the album feed of username, or of the authenticated
// user when username is empty.
func AlbumsURI(username string) string {
	return feedPrefix + userPath(username)
}

// UserURI returns the profile entry of username, or of the authenticated
// user when username is empty.
func UserURI(username string) string {
	return entryPrefix + userPath(username)
}

// FilesURIFor returns the file feed of album, or of the default album when
// album is nil or has no feed link.
func FilesURIFor(album *Album) string {
	if album != nil {
		if uri := album.FeedURI(); uri != "" {
			return uri
		}
	}
	return DefaultFilesURI
}

func querier(q *Query) gdata.Querier {
	if q == nil {
		return nil
	}
	return q
}

// QueryAlbums fetches a page of username's albums. An empty username means
// the authenticated user.
func QueryAlbums(
	ctx context.Context,
	svc *google.Service,
	username string,
	q *Query,
	progress func(*Album),
) (*gdata.Feed[*Album], error) {
	return google.QueryFeed(ctx, svc, querier(q), AlbumsURI(username), newEmptyAlbum, progress)
}

// QueryFiles fetches a page of the photos and videos in album.
func QueryFiles(
	ctx context.Context,
	svc *google.Service,
	album *Album,
	q *Query,
	progress func(*File),
) (*gdata.Feed[*File], error) {
	return google.QueryFeed(ctx, svc, querier(q), FilesURIFor(album), newEmptyFile, progress)
}

// InsertAlbum creates album for the authenticated user.
func InsertAlbum(ctx context.Context, svc *google.Service, album *Album) (*Album, error) {
	if album.Title() == "" {
		return nil, fmt.Errorf("album has no title: %w", domain.ErrInvalidInput)
	}
	return google.InsertEntry(ctx, svc, AlbumsURI(""), album, newEmptyAlbum)
}

// UpdateAlbum replaces album through its edit link.
func UpdateAlbum(ctx context.Context, svc *google.Service, album *Album) (*Album, error) {
	return google.UpdateEntry(ctx, svc, album, newEmptyAlbum)
}

// UpdateFile replaces file's metadata through its edit link.
func UpdateFile(ctx context.Context, svc *google.Service, file *File) (*File, error) {
	return google.UpdateEntry(ctx, svc, file, newEmptyFile)
}

// DeleteAlbum removes album and its files.
func DeleteAlbum(ctx context.Context, svc *google.Service, album *Album) error {
	return google.DeleteEntry(ctx, svc, album)
}
