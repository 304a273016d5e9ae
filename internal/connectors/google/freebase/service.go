package freebase

import (
	"context"

	"github.com/custodia-labs/gdata-go/internal/connectors/google"
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Endpoints of the Freebase API.
const (
	MQLReadURI = "https://www.googleapis.com/freebase/v1/mqlread"
	SearchURI  = "https://www.googleapis.com/freebase/v1/search"
	TopicURI   = "https://www.googleapis.com/freebase/v1/topic"
)

type entryResource interface {
	gdata.Resource
	ETag() string
}

// queryOne issues q against feedURI and parses the single reply into out.
// q's ETag makes the request conditional and is updated from the reply.
func queryOne(ctx context.Context, svc *google.Service, q gdata.Querier, feedURI string, out entryResource) error {
	uri, err := q.QueryURI(feedURI)
	if err != nil {
		return err
	}
	base := q.Base()
	if err := google.QueryEntry(ctx, svc, uri, base.ETag(), out); err != nil {
		return err
	}
	base.SetETag(out.ETag())
	return nil
}

// Read runs an MQL read. An unchanged reply to a conditional request
// returns google.ErrNotModified.
func Read(ctx context.Context, svc *google.Service, q *Query) (*Result, error) {
	r := NewResult()
	if err := queryOne(ctx, svc, q, MQLReadURI, r); err != nil {
		return nil, err
	}
	return r, nil
}

// Search runs a topic search.
func Search(ctx context.Context, svc *google.Service, q *SearchQuery) (*SearchResult, error) {
	r := NewSearchResult()
	if err := queryOne(ctx, svc, q, SearchURI, r); err != nil {
		return nil, err
	}
	return r, nil
}

// GetTopic fetches the topic q names.
func GetTopic(ctx context.Context, svc *google.Service, q *TopicQuery) (*TopicResult, error) {
	r := NewTopicResult()
	if err := queryOne(ctx, svc, q, TopicURI, r); err != nil {
		return nil, err
	}
	return r, nil
}
