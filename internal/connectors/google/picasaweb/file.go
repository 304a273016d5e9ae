package picasaweb

import (
	"strconv"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// File is a photo or video in an album.
type File struct {
	gdata.Entry

	fileID            string
	albumID           string
	version           string
	checksum          string
	videoStatus       string
	width             int64
	height            int64
	size              int64
	rotation          int64
	timestamp         int64
	commentingEnabled bool
	commentCount      int64
	edited            int64
}

// NewFile returns a file with commenting enabled and the given id, empty
// for a new one.
func NewFile(id string) *File {
	f := &File{}
	f.InitEntry(id)
	f.timestamp = gdata.Unset
	f.edited = gdata.Unset
	f.commentingEnabled = true
	f.AddCategory(gdata.NewCategory(photoKind, gdata.KindScheme, ""))
	return f
}

func newEmptyFile() *File { return NewFile("") }

// Namespaces implements gdata.XMLParsable.
func (f *File) Namespaces() map[string]string {
	return gdata.MergeNamespaces(f.Entry.Namespaces(), photoNamespaces)
}

// ParseXMLNode handles app:edited and the gphoto elements, then the Atom
// entry elements.
func (f *File) ParseXMLNode(n *gdata.Node) (bool, error) {
	if ok, err := gdata.Int64TimeFromElement(n, gdata.AppNamespace, "edited", gdata.OptRequired|gdata.OptNoDupes, &f.edited); ok {
		return true, err
	}
	if !gdata.IsNamespace(n, PhotosNamespace) {
		return f.Entry.ParseXMLNode(n)
	}

	for _, s := range []struct {
		name string
		opts gdata.ParseOption
		out  *string
	}{
		{"id", gdata.OptRequired | gdata.OptNonEmpty | gdata.OptNoDupes, &f.fileID},
		{"albumid", gdata.OptNone, &f.albumID},
		{"imageVersion", gdata.OptNone, &f.version},
		{"checksum", gdata.OptNone, &f.checksum},
		{"videostatus", gdata.OptNoDupes, &f.videoStatus},
	} {
		if ok, err := gdata.StringFromElement(n, PhotosNamespace, s.name, s.opts, s.out); ok {
			return true, err
		}
	}
	for _, i := range []struct {
		name string
		opts gdata.ParseOption
		out  *int64
	}{
		{"width", gdata.OptRequired, &f.width},
		{"height", gdata.OptRequired, &f.height},
		{"size", gdata.OptRequired, &f.size},
		{"rotation", gdata.OptNone, &f.rotation},
		{"timestamp", gdata.OptNone, &f.timestamp},
		{"commentCount", gdata.OptRequired, &f.commentCount},
	} {
		if ok, err := gdata.Int64FromElement(n, PhotosNamespace, i.name, i.opts, i.out); ok {
			return true, err
		}
	}
	if n.Name == "commentingEnabled" {
		return true, parseCommenting(n, &f.commentingEnabled)
	}
	return f.Entry.ParseXMLNode(n)
}

// GetXML writes the entry elements followed by the writable gphoto ones.
func (f *File) GetXML(x *gdata.XMLBuilder) {
	f.Entry.GetXML(x)

	if f.fileID != "" {
		writeGPhoto(x, "id", f.fileID)
	}
	if f.albumID != "" {
		writeGPhoto(x, "albumid", f.albumID)
	}
	if f.checksum != "" {
		writeGPhoto(x, "checksum", f.checksum)
	}
	if f.rotation != 0 {
		writeGPhoto(x, "rotation", strconv.FormatInt(f.rotation, 10))
	}
	writeCommonGPhoto(x, f.timestamp, f.commentingEnabled)
}

// FileID returns the gphoto id.
func (f *File) FileID() string { return f.fileID }

// AlbumID returns the id of the containing album.
func (f *File) AlbumID() string { return f.albumID }

// SetAlbumID moves the file to another album on update.
func (f *File) SetAlbumID(id string) { f.albumID = id }

// Version returns the image version, which changes when the image does.
func (f *File) Version() string { return f.version }

// Checksum returns the client-supplied checksum.
func (f *File) Checksum() string { return f.checksum }

// SetChecksum sets the client-supplied checksum.
func (f *File) SetChecksum(checksum string) { f.checksum = checksum }

// VideoStatus returns the processing state of a video, or "" for photos.
func (f *File) VideoStatus() string { return f.videoStatus }

// Dimensions returns the width and height in pixels.
func (f *File) Dimensions() (width, height int64) { return f.width, f.height }

// Size returns the file size in bytes.
func (f *File) Size() int64 { return f.size }

// Rotation returns the clockwise rotation in degrees.
func (f *File) Rotation() int64 { return f.rotation }

// SetRotation sets the clockwise rotation in degrees.
func (f *File) SetRotation(degrees int64) { f.rotation = degrees }

// Timestamp returns when the photo was taken in milliseconds, or
// gdata.Unset.
func (f *File) Timestamp() int64 { return f.timestamp }

// SetTimestamp sets when the photo was taken in milliseconds.
func (f *File) SetTimestamp(ms int64) { f.timestamp = ms }

// IsCommentingEnabled reports whether the file accepts comments.
func (f *File) IsCommentingEnabled() bool { return f.commentingEnabled }

// SetIsCommentingEnabled enables or disables comments.
func (f *File) SetIsCommentingEnabled(enabled bool) { f.commentingEnabled = enabled }

// CommentCount returns the number of comments on the file.
func (f *File) CommentCount() int64 { return f.commentCount }

// Edited returns the last edit time, or gdata.Unset.
func (f *File) Edited() int64 { return f.edited }
