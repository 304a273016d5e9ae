// Package picasaweb implements the PicasaWeb Albums Data API: album and
// photo entries in the gphoto namespace and the Query that filters them by
// visibility, tag, location and bounding box.
package picasaweb
