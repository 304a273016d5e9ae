package youtube

import (
	"encoding/json"

	youtubeapi "google.golang.org/api/youtube/v3"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

const videoKind = "youtube#video"

// Video is a search result or video resource. Search results carry the id
// as a resource reference object; video resources carry it as a string.
type Video struct {
	gdata.Entry

	channelID  string
	categoryID string
	tags       []string
	thumbnails *youtubeapi.ThumbnailDetails
	privacy    string
}

// NewVideo returns a video with the given id, empty for a new one.
func NewVideo(id string) *Video {
	v := &Video{}
	v.InitEntry(id)
	v.AddCategory(gdata.NewCategory(videoKind, gdata.KindScheme, ""))
	return v
}

func newEmptyVideo() *Video { return NewVideo("") }

// ContentType implements gdata.JSONParsable.
func (v *Video) ContentType() string { return gdata.ContentTypeJSON }

// ParseJSONMember handles id, snippet and status, then the entry members.
func (v *Video) ParseJSONMember(name string, value json.RawMessage) (bool, error) {
	switch name {
	case "id":
		return true, v.parseID(value)
	case "snippet":
		return true, v.parseSnippet(value)
	case "status":
		var status youtubeapi.VideoStatus
		if err := json.Unmarshal(value, &status); err != nil {
			return true, gdata.RequiredJSONContentMissing(name)
		}
		v.privacy = status.PrivacyStatus
		return true, nil
	}
	return v.Entry.ParseJSONMember(name, value)
}

func (v *Video) parseID(value json.RawMessage) error {
	var id string
	if err := json.Unmarshal(value, &id); err != nil {
		var ref youtubeapi.ResourceId
		if err := json.Unmarshal(value, &ref); err != nil {
			return gdata.RequiredJSONContentMissing("id")
		}
		id = ref.VideoId
	}
	if id == "" {
		return gdata.RequiredJSONContentMissing("id")
	}
	v.SetID(id)
	return nil
}

func (v *Video) parseSnippet(value json.RawMessage) error {
	var snippet youtubeapi.VideoSnippet
	if err := json.Unmarshal(value, &snippet); err != nil {
		return gdata.RequiredJSONContentMissing("snippet")
	}
	if snippet.PublishedAt != "" {
		t, ok := gdata.ParseISO8601(snippet.PublishedAt)
		if !ok {
			return gdata.NotISO8601JSON("publishedAt", snippet.PublishedAt)
		}
		v.SetPublished(t)
	}
	v.SetTitle(snippet.Title)
	v.SetSummary(snippet.Description)
	v.channelID = snippet.ChannelId
	v.categoryID = snippet.CategoryId
	v.tags = snippet.Tags
	v.thumbnails = snippet.Thumbnails
	return nil
}

// GetJSON writes the video resource shape.
func (v *Video) GetJSON(j *gdata.JSONBuilder) {
	j.String("kind", videoKind)
	if id := v.ID(); id != "" {
		j.String("id", id)
	}
	if etag := v.ETag(); etag != "" {
		j.String("etag", etag)
	}
	j.Object("snippet", func(j *gdata.JSONBuilder) {
		j.String("title", v.Title())
		if s := v.Summary(); s != "" {
			j.String("description", s)
		}
		if len(v.tags) > 0 {
			j.Strings("tags", v.tags)
		}
		if v.categoryID != "" {
			j.String("categoryId", v.categoryID)
		}
	})
	if v.privacy != "" {
		j.Object("status", func(j *gdata.JSONBuilder) {
			j.String("privacyStatus", v.privacy)
		})
	}
}

// ChannelID returns the id of the uploading channel.
func (v *Video) ChannelID() string { return v.channelID }

// CategoryID returns the video category id.
func (v *Video) CategoryID() string { return v.categoryID }

// SetCategoryID sets the video category id.
func (v *Video) SetCategoryID(id string) { v.categoryID = id }

// Keywords returns the video's tags.
func (v *Video) Keywords() []string { return v.tags }

// SetKeywords replaces the video's tags.
func (v *Video) SetKeywords(tags []string) { v.tags = tags }

// IsPrivate reports whether only the owner can see the video.
func (v *Video) IsPrivate() bool { return v.privacy == "private" }

// SetIsPrivate switches the video between private and public.
func (v *Video) SetIsPrivate(private bool) {
	if private {
		v.privacy = "private"
	} else {
		v.privacy = "public"
	}
}

// ThumbnailURI returns the URL of the largest thumbnail, or "".
func (v *Video) ThumbnailURI() string {
	t := v.thumbnails
	if t == nil {
		return ""
	}
	for _, th := range []*youtubeapi.Thumbnail{t.Maxres, t.Standard, t.High, t.Medium, t.Default} {
		if th != nil && th.Url != "" {
			return th.Url
		}
	}
	return ""
}
