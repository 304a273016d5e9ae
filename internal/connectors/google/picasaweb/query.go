package picasaweb

import (
	"strconv"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Visibility is who can see an album.
type Visibility int

const (
	// VisibilityAll selects albums of any visibility. It is only meaningful
	// in queries; unauthenticated requests get public albums alone.
	VisibilityAll Visibility = iota
	VisibilityPublic
	VisibilityPrivate
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityPrivate:
		return "private"
	}
	return "all"
}

// ParseVisibility reads "all", "public" or "private".
func ParseVisibility(s string) (Visibility, bool) {
	switch s {
	case "all":
		return VisibilityAll, true
	case "public":
		return VisibilityPublic, true
	case "private":
		return VisibilityPrivate, true
	}
	return VisibilityAll, false
}

// BoundingBox is a geographic area in degrees. A box with north equal to
// south or east equal to west is empty and not sent.
type BoundingBox struct {
	North, East, South, West float64
}

// IsEmpty reports whether the box covers no area.
func (b BoundingBox) IsEmpty() bool {
	return b.North == b.South || b.East == b.West
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Query filters album and photo feeds. It pages by index and adds the
// PicasaWeb parameters after the shared ones.
type Query struct {
	gdata.Query

	visibility    Visibility
	thumbnailSize string
	imageSize     string
	tag           string
	bbox          BoundingBox
	location      string
}

// NewQuery returns a query for the free-text search q, which may be empty.
func NewQuery(q string) *Query {
	query := &Query{}
	query.Init(q)
	query.SetPaginationType(gdata.PaginationIndexed)
	return query
}

// NewQueryWithLimits is NewQuery with a start index and page size.
func NewQueryWithLimits(q string, startIndex, maxResults uint) *Query {
	query := NewQuery(q)
	query.SetStartIndex(startIndex)
	query.SetMaxResults(maxResults)
	return query
}

// QueryURI implements gdata.Querier.
func (q *Query) QueryURI(feedURI string) (string, error) {
	return gdata.BuildURI(&q.Query, feedURI, q)
}

// AppendParams writes the shared parameters, then access, thumbsize,
// imgmax, tag, bbox and l.
func (q *Query) AppendParams(w *gdata.URIWriter) {
	q.Query.AppendParams(w)

	if q.visibility != VisibilityAll {
		w.RawParam("access", q.visibility.String())
	}
	if q.thumbnailSize != "" {
		w.Param("thumbsize", q.thumbnailSize)
	}
	if q.imageSize != "" {
		w.Param("imgmax", q.imageSize)
	}
	if q.tag != "" {
		w.Param("tag", q.tag)
	}
	if !q.bbox.IsEmpty() {
		w.RawParam("bbox", formatCoord(q.bbox.West)+","+formatCoord(q.bbox.South)+","+
			formatCoord(q.bbox.East)+","+formatCoord(q.bbox.North))
	}
	if q.location != "" {
		w.Param("l", q.location)
	}
}

// Visibility returns the album visibility filter.
func (q *Query) Visibility() Visibility { return q.visibility }

// SetVisibility filters albums by visibility.
func (q *Query) SetVisibility(v Visibility) {
	q.visibility = v
	q.SetETag("")
}

// ThumbnailSize returns the requested thumbnail sizes.
func (q *Query) ThumbnailSize() string { return q.thumbnailSize }

// SetThumbnailSize requests thumbnails of the given sizes, a comma-separated
// list such as "32c,64u".
func (q *Query) SetThumbnailSize(size string) {
	q.thumbnailSize = size
	q.SetETag("")
}

// ImageSize returns the requested image size.
func (q *Query) ImageSize() string { return q.imageSize }

// SetImageSize requests content URIs for images of the given size, such as
// "d" for the original.
func (q *Query) SetImageSize(size string) {
	q.imageSize = size
	q.SetETag("")
}

// Tag returns the tag filter.
func (q *Query) Tag() string { return q.tag }

// SetTag restricts results to photos with the tag.
func (q *Query) SetTag(tag string) {
	q.tag = tag
	q.SetETag("")
}

// BoundingBox returns the geographic filter.
func (q *Query) BoundingBox() BoundingBox { return q.bbox }

// SetBoundingBox restricts results to photos taken within box.
func (q *Query) SetBoundingBox(box BoundingBox) {
	q.bbox = box
	q.SetETag("")
}

// Location returns the named location filter.
func (q *Query) Location() string { return q.location }

// SetLocation restricts results to photos taken at a named location.
func (q *Query) SetLocation(location string) {
	q.location = location
	q.SetETag("")
}
