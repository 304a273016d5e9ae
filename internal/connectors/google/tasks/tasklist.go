package tasks

import (
	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Feed URIs of the Tasks API.
const (
	ListsURI = "https://www.googleapis.com/tasks/v1/users/@me/lists"
	listBase = "https://www.googleapis.com/tasks/v1/lists/"
)

const tasklistKind = "tasks#taskList"

// Tasklist is a named list of tasks. Only the common entry members apply.
type Tasklist struct {
	gdata.Entry
}

// NewTasklist returns an empty list for inserting or for decoding a feed.
func NewTasklist() *Tasklist {
	return NewTasklistWithID("")
}

// NewTasklistWithID returns a list with the given id.
func NewTasklistWithID(id string) *Tasklist {
	l := &Tasklist{}
	l.InitEntry(id)
	l.AddCategory(gdata.NewCategory(tasklistKind, gdata.KindScheme, ""))
	return l
}

// ContentType implements gdata.JSONParsable.
func (l *Tasklist) ContentType() string { return gdata.ContentTypeJSON }

// TasksURI returns the feed of tasks in the list with the given id.
func TasksURI(listID string) string {
	return listBase + gdata.EscapeURI(listID, "") + "/tasks"
}

// TasksURIFor returns the task feed of list, or "" if list was never
// inserted.
func TasksURIFor(list *Tasklist) string {
	if !list.IsInserted() {
		return ""
	}
	return TasksURI(list.ID())
}
