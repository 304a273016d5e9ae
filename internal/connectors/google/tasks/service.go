package tasks

import (
	"context"
	"fmt"

	"github.com/custodia-labs/gdata-go/internal/connectors/google"
	"github.com/custodia-labs/gdata-go/internal/core/domain"
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

func querier(q *Query) gdata.Querier {
	if q == nil {
		return nil
	}
	return q
}

// QueryTasklists fetches a page of the user's task lists.
func QueryTasklists(
	ctx context.Context,
	svc *google.Service,
	q *Query,
	progress func(*Tasklist),
) (*gdata.Feed[*Tasklist], error) {
	return google.QueryFeed(ctx, svc, querier(q), ListsURI, NewTasklist, progress)
}

// QueryTasks fetches a page of the tasks in list.
func QueryTasks(
	ctx context.Context,
	svc *google.Service,
	list *Tasklist,
	q *Query,
	progress func(*Task),
) (*gdata.Feed[*Task], error) {
	uri := TasksURIFor(list)
	if uri == "" {
		return nil, fmt.Errorf("task list has no id: %w", domain.ErrInvalidInput)
	}
	return google.QueryFeed(ctx, svc, querier(q), uri, newEmptyTask, progress)
}

// InsertTasklist creates list and returns the server's copy.
func InsertTasklist(ctx context.Context, svc *google.Service, list *Tasklist) (*Tasklist, error) {
	return google.InsertEntry(ctx, svc, ListsURI, list, NewTasklist)
}

// InsertTask adds task to list and returns the server's copy.
func InsertTask(ctx context.Context, svc *google.Service, task *Task, list *Tasklist) (*Task, error) {
	uri := TasksURIFor(list)
	if uri == "" {
		return nil, fmt.Errorf("task list has no id: %w", domain.ErrInvalidInput)
	}
	return google.InsertEntry(ctx, svc, uri, task, newEmptyTask)
}

// UpdateTask replaces task through its self link.
func UpdateTask(ctx context.Context, svc *google.Service, task *Task) (*Task, error) {
	return google.UpdateEntry(ctx, svc, task, newEmptyTask)
}

// UpdateTasklist replaces list through its self link.
func UpdateTasklist(ctx context.Context, svc *google.Service, list *Tasklist) (*Tasklist, error) {
	return google.UpdateEntry(ctx, svc, list, NewTasklist)
}
