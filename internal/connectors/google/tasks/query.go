package tasks

import (
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Query filters the tasks of a task list. It pages with server tokens.
//
// The shared GData parameters are written too; the Tasks API ignores the
// ones it does not understand.
type Query struct {
	gdata.Query

	completedMin int64
	completedMax int64
	dueMin       int64
	dueMax       int64

	showCompleted bool
	showDeleted   bool
	showHidden    bool
}

// NewQuery returns a query with no filters.
func NewQuery() *Query {
	q := &Query{}
	q.Init("")
	q.SetPaginationType(gdata.PaginationTokens)
	q.completedMin = gdata.Unset
	q.completedMax = gdata.Unset
	q.dueMin = gdata.Unset
	q.dueMax = gdata.Unset
	return q
}

// QueryURI implements gdata.Querier.
func (q *Query) QueryURI(feedURI string) (string, error) {
	return gdata.BuildURI(&q.Query, feedURI, q)
}

// AppendParams writes the shared parameters followed by the Tasks ones.
// The show* flags are always sent.
func (q *Query) AppendParams(w *gdata.URIWriter) {
	q.Query.AppendParams(w)

	if n := q.MaxResults(); n > 0 {
		w.UintParam("maxResults", n)
	}
	if t := q.UpdatedMin(); t != gdata.Unset {
		w.TimeParam("updatedMin", t)
	}
	if q.completedMin != gdata.Unset {
		w.TimeParam("completedMin", q.completedMin)
	}
	if q.completedMax != gdata.Unset {
		w.TimeParam("completedMax", q.completedMax)
	}
	if q.dueMin != gdata.Unset {
		w.TimeParam("dueMin", q.dueMin)
	}
	if q.dueMax != gdata.Unset {
		w.TimeParam("dueMax", q.dueMax)
	}
	w.BoolParam("showCompleted", q.showCompleted)
	w.BoolParam("showDeleted", q.showDeleted)
	w.BoolParam("showHidden", q.showHidden)
}

// CompletedMin returns the lower completion bound, or gdata.Unset.
func (q *Query) CompletedMin() int64 { return q.completedMin }

// SetCompletedMin sets the lower completion bound in Unix seconds.
func (q *Query) SetCompletedMin(t int64) error {
	return q.setTime("completed-min", &q.completedMin, t)
}

// CompletedMax returns the upper completion bound, or gdata.Unset.
func (q *Query) CompletedMax() int64 { return q.completedMax }

// SetCompletedMax sets the upper completion bound in Unix seconds.
func (q *Query) SetCompletedMax(t int64) error {
	return q.setTime("completed-max", &q.completedMax, t)
}

// DueMin returns the lower due-date bound, or gdata.Unset.
func (q *Query) DueMin() int64 { return q.dueMin }

// SetDueMin sets the lower due-date bound in Unix seconds.
func (q *Query) SetDueMin(t int64) error {
	return q.setTime("due-min", &q.dueMin, t)
}

// DueMax returns the upper due-date bound, or gdata.Unset.
func (q *Query) DueMax() int64 { return q.dueMax }

// SetDueMax sets the upper due-date bound in Unix seconds.
func (q *Query) SetDueMax(t int64) error {
	return q.setTime("due-max", &q.dueMax, t)
}

func (q *Query) setTime(name string, field *int64, t int64) error {
	if err := gdata.ValidateTimestamp(name, t); err != nil {
		return err
	}
	*field = t
	q.SetETag("")
	return nil
}

// ShowCompleted reports whether completed tasks are returned.
func (q *Query) ShowCompleted() bool { return q.showCompleted }

// SetShowCompleted includes or excludes completed tasks.
func (q *Query) SetShowCompleted(show bool) {
	q.showCompleted = show
	q.SetETag("")
}

// ShowDeleted reports whether deleted tasks are returned.
func (q *Query) ShowDeleted() bool { return q.showDeleted }

// SetShowDeleted includes or excludes deleted tasks.
func (q *Query) SetShowDeleted(show bool) {
	q.showDeleted = show
	q.SetETag("")
}

// ShowHidden reports whether hidden tasks are returned.
func (q *Query) ShowHidden() bool { return q.showHidden }

// SetShowHidden includes or excludes hidden tasks.
func (q *Query) SetShowHidden(show bool) {
	q.showHidden = show
	q.SetETag("")
}
