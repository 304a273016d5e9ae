package picasaweb

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// PhotosNamespace is the gphoto extension namespace.
const PhotosNamespace = "http://schemas.google.com/photos/2007"

const (
	albumKind = "http://schemas.google.com/photos/2007#album"
	photoKind = "http://schemas.google.com/photos/2007#photo"
)

var photoNamespaces = map[string]string{
	"gphoto": PhotosNamespace,
	"app":    gdata.AppNamespace,
}

// parseCommenting reads a gphoto:commentingEnabled element.
func parseCommenting(n *gdata.Node, out *bool) error {
	text := strings.TrimSpace(n.Text())
	if text == "" {
		return gdata.RequiredContentMissing(n)
	}
	*out = text == "true"
	return nil
}

// parseVisibility reads a gphoto:access element. Protected albums count as
// private.
func parseVisibility(n *gdata.Node, out *Visibility) error {
	switch text := strings.TrimSpace(n.Text()); text {
	case "public":
		*out = VisibilityPublic
	case "private", "protected":
		*out = VisibilityPrivate
	default:
		return gdata.UnknownContent(n, text)
	}
	return nil
}

func writeGPhoto(x *gdata.XMLBuilder, name, value string) {
	x.Escaped("<gphoto:"+name+">", value, "</gphoto:"+name+">")
}

func writeCommonGPhoto(x *gdata.XMLBuilder, timestamp int64, commenting bool) {
	if timestamp != gdata.Unset {
		writeGPhoto(x, "timestamp", strconv.FormatInt(timestamp, 10))
	}
	writeGPhoto(x, "commentingEnabled", strconv.FormatBool(commenting))
}

// Album is a PicasaWeb album entry. Timestamps are in milliseconds.
type Album struct {
	gdata.Entry

	albumID            string
	user               string
	nickname           string
	location           string
	visibility         Visibility
	timestamp          int64
	numPhotos          int64
	numPhotosRemaining int64
	bytesUsed          int64
	commentingEnabled  bool
	commentCount       int64
	edited             int64
}

// NewAlbum returns a public album with commenting enabled and the given
// id, empty for a new one.
func NewAlbum(id string) *Album {
	a := &Album{}
	a.InitEntry(id)
	a.visibility = VisibilityPublic
	a.timestamp = gdata.Unset
	a.edited = gdata.Unset
	a.commentingEnabled = true
	a.AddCategory(gdata.NewCategory(albumKind, gdata.KindScheme, ""))
	return a
}

func newEmptyAlbum() *Album { return NewAlbum("") }

// Namespaces implements gdata.XMLParsable.
func (a *Album) Namespaces() map[string]string {
	return gdata.MergeNamespaces(a.Entry.Namespaces(), photoNamespaces)
}

// ParseXMLNode handles app:edited and the gphoto elements, then the Atom
// entry elements.
func (a *Album) ParseXMLNode(n *gdata.Node) (bool, error) {
	if ok, err := gdata.Int64TimeFromElement(n, gdata.AppNamespace, "edited", gdata.OptRequired|gdata.OptNoDupes, &a.edited); ok {
		return true, err
	}
	if !gdata.IsNamespace(n, PhotosNamespace) {
		return a.Entry.ParseXMLNode(n)
	}

	if ok, err := gdata.StringFromElement(n, PhotosNamespace, "user", gdata.OptRequired|gdata.OptNonEmpty, &a.user); ok {
		return true, err
	}
	if ok, err := gdata.StringFromElement(n, PhotosNamespace, "nickname", gdata.OptRequired|gdata.OptNonEmpty, &a.nickname); ok {
		return true, err
	}
	if ok, err := gdata.StringFromElement(n, PhotosNamespace, "location", gdata.OptNone, &a.location); ok {
		return true, err
	}
	if ok, err := gdata.StringFromElement(n, PhotosNamespace, "id", gdata.OptRequired|gdata.OptNonEmpty|gdata.OptNoDupes, &a.albumID); ok {
		return true, err
	}
	if ok, err := gdata.Int64FromElement(n, PhotosNamespace, "timestamp", gdata.OptNone, &a.timestamp); ok {
		return true, err
	}
	if ok, err := gdata.Int64FromElement(n, PhotosNamespace, "numphotos", gdata.OptRequired, &a.numPhotos); ok {
		return true, err
	}
	if ok, err := gdata.Int64FromElement(n, PhotosNamespace, "numphotosremaining", gdata.OptRequired, &a.numPhotosRemaining); ok {
		return true, err
	}
	if ok, err := gdata.Int64FromElement(n, PhotosNamespace, "bytesUsed", gdata.OptRequired, &a.bytesUsed); ok {
		return true, err
	}
	if ok, err := gdata.Int64FromElement(n, PhotosNamespace, "commentCount", gdata.OptRequired, &a.commentCount); ok {
		return true, err
	}
	switch n.Name {
	case "access":
		return true, parseVisibility(n, &a.visibility)
	case "commentingEnabled":
		return true, parseCommenting(n, &a.commentingEnabled)
	}
	return a.Entry.ParseXMLNode(n)
}

// GetXML writes the entry elements followed by the writable gphoto ones.
func (a *Album) GetXML(x *gdata.XMLBuilder) {
	a.Entry.GetXML(x)

	if a.albumID != "" {
		writeGPhoto(x, "id", a.albumID)
	}
	if a.location != "" {
		writeGPhoto(x, "location", a.location)
	}
	writeGPhoto(x, "access", a.visibility.String())
	writeCommonGPhoto(x, a.timestamp, a.commentingEnabled)
}

// AlbumID returns the gphoto album id.
func (a *Album) AlbumID() string { return a.albumID }

// User returns the owner's username.
func (a *Album) User() string { return a.user }

// Nickname returns the owner's display name.
func (a *Album) Nickname() string { return a.nickname }

// Location returns where the album's photos were taken.
func (a *Album) Location() string { return a.location }

// SetLocation sets where the album's photos were taken.
func (a *Album) SetLocation(location string) { a.location = location }

// Visibility returns who can see the album.
func (a *Album) Visibility() Visibility { return a.visibility }

// SetVisibility sets who can see the album. VisibilityAll is not a valid
// album visibility and is stored as public.
func (a *Album) SetVisibility(v Visibility) {
	if v == VisibilityAll {
		v = VisibilityPublic
	}
	a.visibility = v
}

// Timestamp returns the album date in milliseconds, or gdata.Unset.
func (a *Album) Timestamp() int64 { return a.timestamp }

// SetTimestamp sets the album date in milliseconds.
func (a *Album) SetTimestamp(ms int64) { a.timestamp = ms }

// NumPhotos returns the number of photos in the album.
func (a *Album) NumPhotos() int64 { return a.numPhotos }

// NumPhotosRemaining returns how many more photos the album can hold.
func (a *Album) NumPhotosRemaining() int64 { return a.numPhotosRemaining }

// BytesUsed returns the storage the album consumes.
func (a *Album) BytesUsed() int64 { return a.bytesUsed }

// IsCommentingEnabled reports whether photos in the album accept comments.
func (a *Album) IsCommentingEnabled() bool { return a.commentingEnabled }

// SetIsCommentingEnabled enables or disables comments.
func (a *Album) SetIsCommentingEnabled(enabled bool) { a.commentingEnabled = enabled }

// CommentCount returns the number of comments on the album.
func (a *Album) CommentCount() int64 { return a.commentCount }

// Edited returns the last edit time, or gdata.Unset.
func (a *Album) Edited() int64 { return a.edited }

// FeedURI returns the URI of the album's photo feed, or "".
func (a *Album) FeedURI() string {
	if l := a.LookupLink(gdata.RelFeed); l != nil {
		return l.URI
	}
	return ""
}
