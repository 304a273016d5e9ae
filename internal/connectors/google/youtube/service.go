package youtube

import (
	"context"
	"fmt"

	"github.com/custodia-labs/gdata-go/internal/connectors/google"
	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Feed URIs of the YouTube Data API.
const (
	SearchURI      = "https://www.googleapis.com/youtube/v3/search?part=snippet&type=video"
	MostPopularURI = "https://www.googleapis.com/youtube/v3/videos?part=snippet&chart=mostPopular"
)

// RelatedURI returns the search feed of videos related to the video id.
func RelatedURI(id string) string {
	return SearchURI + "&relatedToVideoId=" + gdata.EscapeURI(id, "")
}

func querier(q *Query) gdata.Querier {
	if q == nil {
		return nil
	}
	return q
}

// QueryVideos searches every public video.
func QueryVideos(
	ctx context.Context,
	svc *google.Service,
	q *Query,
	progress func(*Video),
) (*gdata.Feed[*Video], error) {
	return google.QueryFeed(ctx, svc, querier(q), SearchURI, newEmptyVideo, progress)
}

// QueryRelated searches for videos related to video.
func QueryRelated(
	ctx context.Context,
	svc *google.Service,
	video *Video,
	q *Query,
	progress func(*Video),
) (*gdata.Feed[*Video], error) {
	if !video.IsInserted() {
		return nil, fmt.Errorf("video has no id: %w", domain.ErrInvalidInput)
	}
	return google.QueryFeed(ctx, svc, querier(q), RelatedURI(video.ID()), newEmptyVideo, progress)
}

// QueryMostPopular fetches the most popular videos chart.
func QueryMostPopular(
	ctx context.Context,
	svc *google.Service,
	q *Query,
	progress func(*Video),
) (*gdata.Feed[*Video], error) {
	return google.QueryFeed(ctx, svc, querier(q), MostPopularURI, newEmptyVideo, progress)
}
