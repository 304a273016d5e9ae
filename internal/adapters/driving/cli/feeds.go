package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/custodia-labs/gdata-go/internal/connectors/google"
	"github.com/custodia-labs/gdata-go/internal/connectors/google/calendar"
	"github.com/custodia-labs/gdata-go/internal/connectors/google/contacts"
	"github.com/custodia-labs/gdata-go/internal/connectors/google/documents"
	"github.com/custodia-labs/gdata-go/internal/connectors/google/freebase"
	"github.com/custodia-labs/gdata-go/internal/connectors/google/picasaweb"
	"github.com/custodia-labs/gdata-go/internal/connectors/google/tasks"
	"github.com/custodia-labs/gdata-go/internal/connectors/google/youtube"
	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// feedItem is the printable summary of one entry.
type feedItem struct {
	ID      string `json:"id"`
	Title   string `json:"title,omitempty"`
	Updated int64  `json:"updated,omitempty"`
	ETag    string `json:"etag,omitempty"`
}

// feedPage is one reply. NotModified is set when a conditional request
// found nothing new.
type feedPage struct {
	Items       []feedItem
	NotModified bool
}

// feed describes a named feed the CLI can query.
type feed struct {
	Name        string
	Service     google.ServiceType
	Description string

	// Arg names the positional argument, such as a calendar id.
	Arg         string
	ArgRequired bool

	// Single feeds return one reply and never page.
	Single bool

	URI   func(arg string) string
	Query func(params map[string]string, uri string) (gdata.Querier, error)
	Fetch func(ctx context.Context, svc *google.Service, q gdata.Querier, arg string) (*feedPage, error)
}

// summarisable is an entry that can be listed.
type summarisable interface {
	gdata.Resource
	ID() string
	Title() string
	Updated() int64
	ETag() string
}

func summarise[E summarisable](f *gdata.Feed[E], err error) (*feedPage, error) {
	if err != nil {
		return nil, err
	}
	if f == nil {
		return &feedPage{NotModified: true}, nil
	}
	page := &feedPage{Items: make([]feedItem, 0, len(f.Entries()))}
	for _, e := range f.Entries() {
		page.Items = append(page.Items, feedItem{ID: e.ID(), Title: e.Title(), Updated: e.Updated(), ETag: e.ETag()})
	}
	return page, nil
}

// asQuerier drops the typed nil a failed parser returns.
func asQuerier[Q gdata.Querier](q Q, err error) (gdata.Querier, error) {
	if err != nil {
		return nil, err
	}
	return q, nil
}

func fixedURI(uri string) func(string) string {
	return func(string) string { return uri }
}

func baseQuery(pagination gdata.PaginationType) func(map[string]string, string) (gdata.Querier, error) {
	return func(params map[string]string, _ string) (gdata.Querier, error) {
		return asQuerier(google.ParseQuery(params, pagination))
	}
}

// freebaseQuery picks the query type from the endpoint.
func freebaseQuery(params map[string]string, uri string) (gdata.Querier, error) {
	cfg, err := freebase.ParseConfig(params)
	if err != nil {
		return nil, err
	}
	return cfg.QueryFor(uri)
}

// single wraps a one-shot reply, mapping ErrNotModified to an empty page.
func single(items []feedItem, err error) (*feedPage, error) {
	if errors.Is(err, google.ErrNotModified) {
		return &feedPage{NotModified: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return &feedPage{Items: items}, nil
}

var feeds = []*feed{
	{
		Name:        "calendar/calendars",
		Service:     google.ServiceCalendar,
		Description: "calendars in the user's calendar list",
		URI:         fixedURI(calendar.CalendarListURI),
		Query:       baseQuery(gdata.PaginationTokens),
		Fetch: func(ctx context.Context, svc *google.Service, q gdata.Querier, _ string) (*feedPage, error) {
			return summarise(calendar.QueryCalendars(ctx, svc, q, nil))
		},
	},
	{
		Name:        "calendar/events",
		Service:     google.ServiceCalendar,
		Description: "events in a calendar",
		Arg:         "calendar-id",
		URI:         calendar.EventsURI,
		Query: func(params map[string]string, _ string) (gdata.Querier, error) {
			return asQuerier(calendar.ParseQuery(params))
		},
		Fetch: func(ctx context.Context, svc *google.Service, q gdata.Querier, arg string) (*feedPage, error) {
			var cal *calendar.Calendar
			if arg != "" {
				cal = calendar.NewCalendar(arg)
			}
			return summarise(calendar.QueryEvents(ctx, svc, cal, q.(*calendar.Query), nil))
		},
	},
	{
		Name:        "contacts/contacts",
		Service:     google.ServiceContacts,
		Description: "the user's contacts",
		URI:         fixedURI(contacts.ContactsURI),
		Query: func(params map[string]string, _ string) (gdata.Querier, error) {
			return asQuerier(contacts.ParseQuery(params))
		},
		Fetch: func(ctx context.Context, svc *google.Service, q gdata.Querier, _ string) (*feedPage, error) {
			return summarise(contacts.QueryContacts(ctx, svc, q.(*contacts.Query), nil))
		},
	},
	{
		Name:        "contacts/groups",
		Service:     google.ServiceContacts,
		Description: "the user's contact groups",
		URI:         fixedURI(contacts.GroupsURI),
		Query: func(params map[string]string, _ string) (gdata.Querier, error) {
			return asQuerier(contacts.ParseQuery(params))
		},
		Fetch: func(ctx context.Context, svc *google.Service, q gdata.Querier, _ string) (*feedPage, error) {
			return summarise(contacts.QueryGroups(ctx, svc, q.(*contacts.Query), nil))
		},
	},
	{
		Name:        "documents/files",
		Service:     google.ServiceDocuments,
		Description: "the user's documents and folders",
		URI:         fixedURI(documents.FilesURI),
		Query: func(params map[string]string, _ string) (gdata.Querier, error) {
			return asQuerier(documents.ParseQuery(params))
		},
		Fetch: func(ctx context.Context, svc *google.Service, q gdata.Querier, _ string) (*feedPage, error) {
			return summarise(documents.QueryDocuments(ctx, svc, q.(*documents.Query), nil))
		},
	},
	{
		Name:        "freebase/mqlread",
		Service:     google.ServiceFreebase,
		Description: "an MQL read",
		Single:      true,
		URI:         fixedURI(freebase.MQLReadURI),
		Query:       freebaseQuery,
		Fetch: func(ctx context.Context, svc *google.Service, q gdata.Querier, _ string) (*feedPage, error) {
			r, err := freebase.Read(ctx, svc, q.(*freebase.Query))
			if err != nil {
				return single(nil, err)
			}
			return single([]feedItem{{ID: "result", Title: string(r.Result())}}, nil)
		},
	},
	{
		Name:        "freebase/search",
		Service:     google.ServiceFreebase,
		Description: "topics matching a search",
		Single:      true,
		URI:         fixedURI(freebase.SearchURI),
		Query:       freebaseQuery,
		Fetch: func(ctx context.Context, svc *google.Service, q gdata.Querier, _ string) (*feedPage, error) {
			r, err := freebase.Search(ctx, svc, q.(*freebase.SearchQuery))
			if err != nil {
				return single(nil, err)
			}
			items := make([]feedItem, 0, len(r.Items()))
			for _, item := range r.Items() {
				items = append(items, feedItem{ID: item.MID, Title: item.Name})
			}
			return single(items, nil)
		},
	},
	{
		Name:        "freebase/topic",
		Service:     google.ServiceFreebase,
		Description: "the properties of the topic named by q",
		Single:      true,
		URI:         fixedURI(freebase.TopicURI),
		Query:       freebaseQuery,
		Fetch: func(ctx context.Context, svc *google.Service, q gdata.Querier, _ string) (*feedPage, error) {
			r, err := freebase.GetTopic(ctx, svc, q.(*freebase.TopicQuery))
			if err != nil {
				return single(nil, err)
			}
			var items []feedItem
			if o := r.Object(); o != nil {
				for _, property := range o.Properties() {
					for _, v := range o.Values(property) {
						items = append(items, feedItem{ID: property, Title: v.Text})
					}
				}
			}
			return single(items, nil)
		},
	},
	{
		Name:        "picasaweb/albums",
		Service:     google.ServicePicasaWeb,
		Description: "a user's albums",
		Arg:         "user",
		URI:         picasaweb.AlbumsURI,
		Query: func(params map[string]string, _ string) (gdata.Querier, error) {
			return asQuerier(picasaweb.ParseQuery(params))
		},
		Fetch: func(ctx context.Context, svc *google.Service, q gdata.Querier, arg string) (*feedPage, error) {
			return summarise(picasaweb.QueryAlbums(ctx, svc, arg, q.(*picasaweb.Query), nil))
		},
	},
	{
		Name:        "picasaweb/files",
		Service:     google.ServicePicasaWeb,
		Description: "photos and videos in the default album",
		URI:         fixedURI(picasaweb.DefaultFilesURI),
		Query: func(params map[string]string, _ string) (gdata.Querier, error) {
			return asQuerier(picasaweb.ParseQuery(params))
		},
		Fetch: func(ctx context.Context, svc *google.Service, q gdata.Querier, _ string) (*feedPage, error) {
			return summarise(picasaweb.QueryFiles(ctx, svc, nil, q.(*picasaweb.Query), nil))
		},
	},
	{
		Name:        "tasks/lists",
		Service:     google.ServiceTasks,
		Description: "the user's task lists",
		URI:         fixedURI(tasks.ListsURI),
		Query: func(params map[string]string, _ string) (gdata.Querier, error) {
			return asQuerier(tasks.ParseQuery(params))
		},
		Fetch: func(ctx context.Context, svc *google.Service, q gdata.Querier, _ string) (*feedPage, error) {
			return summarise(tasks.QueryTasklists(ctx, svc, q.(*tasks.Query), nil))
		},
	},
	{
		Name:        "tasks/tasks",
		Service:     google.ServiceTasks,
		Description: "tasks in a task list",
		Arg:         "list-id",
		ArgRequired: true,
		URI:         tasks.TasksURI,
		Query: func(params map[string]string, _ string) (gdata.Querier, error) {
			return asQuerier(tasks.ParseQuery(params))
		},
		Fetch: func(ctx context.Context, svc *google.Service, q gdata.Querier, arg string) (*feedPage, error) {
			return summarise(tasks.QueryTasks(ctx, svc, tasks.NewTasklistWithID(arg), q.(*tasks.Query), nil))
		},
	},
	{
		Name:        "youtube/search",
		Service:     google.ServiceYouTube,
		Description: "videos matching a search",
		URI:         fixedURI(youtube.SearchURI),
		Query: func(params map[string]string, _ string) (gdata.Querier, error) {
			return asQuerier(youtube.ParseQuery(params))
		},
		Fetch: func(ctx context.Context, svc *google.Service, q gdata.Querier, _ string) (*feedPage, error) {
			return summarise(youtube.QueryVideos(ctx, svc, q.(*youtube.Query), nil))
		},
	},
	{
		Name:        "youtube/popular",
		Service:     google.ServiceYouTube,
		Description: "the most popular videos chart",
		URI:         fixedURI(youtube.MostPopularURI),
		Query: func(params map[string]string, _ string) (gdata.Querier, error) {
			return asQuerier(youtube.ParseQuery(params))
		},
		Fetch: func(ctx context.Context, svc *google.Service, q gdata.Querier, _ string) (*feedPage, error) {
			return summarise(youtube.QueryMostPopular(ctx, svc, q.(*youtube.Query), nil))
		},
	},
	{
		Name:        "youtube/related",
		Service:     google.ServiceYouTube,
		Description: "videos related to a video",
		Arg:         "video-id",
		ArgRequired: true,
		URI:         youtube.RelatedURI,
		Query: func(params map[string]string, _ string) (gdata.Querier, error) {
			return asQuerier(youtube.ParseQuery(params))
		},
		Fetch: func(ctx context.Context, svc *google.Service, q gdata.Querier, arg string) (*feedPage, error) {
			return summarise(youtube.QueryRelated(ctx, svc, youtube.NewVideo(arg), q.(*youtube.Query), nil))
		},
	},
}

// lookupFeed returns the feed called name.
func lookupFeed(name string) (*feed, error) {
	i := slices.IndexFunc(feeds, func(f *feed) bool { return f.Name == name })
	if i < 0 {
		names := make([]string, 0, len(feeds))
		for _, f := range feeds {
			names = append(names, f.Name)
		}
		return nil, fmt.Errorf("unknown feed %q (want one of %s): %w",
			name, strings.Join(names, ", "), domain.ErrInvalidInput)
	}
	return feeds[i], nil
}

// checkArg validates the positional argument for f.
func (f *feed) checkArg(arg string) error {
	if arg != "" && f.Arg == "" {
		return fmt.Errorf("feed %s takes no argument: %w", f.Name, domain.ErrInvalidInput)
	}
	if f.ArgRequired && arg == "" {
		return fmt.Errorf("feed %s requires <%s>: %w", f.Name, f.Arg, domain.ErrInvalidInput)
	}
	return nil
}

// buildQuery parses params for f and restores an encoded cursor into the
// result. A restored query is advanced to the page after the cursor.
func (f *feed) buildQuery(params map[string]string, arg, cursor string) (gdata.Querier, error) {
	q, err := f.Query(params, f.URI(arg))
	if err != nil {
		return nil, err
	}
	if cursor == "" {
		return q, nil
	}
	c, err := gdata.DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}
	if err := q.Base().RestoreCursor(c); err != nil {
		return nil, err
	}
	q.Base().NextPage()
	return q, nil
}
