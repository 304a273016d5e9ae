package tasks

import (
	"encoding/json"

	"github.com/custodia-labs/gdata-go/internal/gdata"
)

// Task statuses.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

const taskKind = "tasks#task"

// Task is a single to-do item. It is only exchanged as JSON.
type Task struct {
	gdata.Entry

	parent    string
	position  string
	notes     string
	status    string
	due       int64
	completed int64
	deleted   bool
	hidden    bool
}

// NewTask returns a task with the given id, which is empty for a task that
// has not been inserted yet.
func NewTask(id string) *Task {
	t := &Task{}
	t.InitEntry(id)
	t.AddCategory(gdata.NewCategory(taskKind, gdata.KindScheme, ""))
	t.due = gdata.Unset
	t.completed = gdata.Unset
	return t
}

// newEmptyTask is the feed entry constructor.
func newEmptyTask() *Task { return NewTask("") }

// ContentType implements gdata.JSONParsable.
func (t *Task) ContentType() string { return gdata.ContentTypeJSON }

// ParseJSONMember handles the task members and chains to the entry.
func (t *Task) ParseJSONMember(name string, value json.RawMessage) (bool, error) {
	if ok, err := gdata.StringFromJSON(name, value, "parent", gdata.OptNone, &t.parent); ok {
		return true, err
	}
	if ok, err := gdata.StringFromJSON(name, value, "position", gdata.OptNone, &t.position); ok {
		return true, err
	}
	if ok, err := gdata.StringFromJSON(name, value, "notes", gdata.OptNone, &t.notes); ok {
		return true, err
	}
	if ok, err := gdata.StringFromJSON(name, value, "status", gdata.OptNone, &t.status); ok {
		return true, err
	}
	if ok, err := gdata.Int64TimeFromJSON(name, value, "due", gdata.OptNone, &t.due); ok {
		return true, err
	}
	if ok, err := gdata.Int64TimeFromJSON(name, value, "completed", gdata.OptNone, &t.completed); ok {
		return true, err
	}
	if ok, err := gdata.BooleanFromJSON(name, value, "deleted", &t.deleted); ok {
		return true, err
	}
	if ok, err := gdata.BooleanFromJSON(name, value, "hidden", &t.hidden); ok {
		return true, err
	}
	return t.Entry.ParseJSONMember(name, value)
}

// GetJSON writes the entry members, the optional task members, then the
// deleted and hidden flags.
func (t *Task) GetJSON(j *gdata.JSONBuilder) {
	t.Entry.GetJSON(j)

	if t.parent != "" {
		j.String("parent", t.parent)
	}
	if t.position != "" {
		j.String("position", t.position)
	}
	if t.notes != "" {
		j.String("notes", t.notes)
	}
	if t.status != "" {
		j.String("status", t.status)
	}
	if t.due != gdata.Unset {
		j.Time("due", t.due)
	}
	if t.completed != gdata.Unset {
		j.Time("completed", t.completed)
	}
	j.Bool("deleted", t.deleted)
	j.Bool("hidden", t.hidden)
}

// Parent returns the parent task's id, empty for a top-level task.
func (t *Task) Parent() string { return t.parent }

// SetParent moves the task under another task.
func (t *Task) SetParent(id string) { t.parent = id }

// Position orders the task among its siblings lexicographically.
func (t *Task) Position() string { return t.position }

// SetPosition sets the sibling ordering key.
func (t *Task) SetPosition(p string) { t.position = p }

// Notes returns the task description.
func (t *Task) Notes() string { return t.notes }

// SetNotes sets the task description.
func (t *Task) SetNotes(notes string) { t.notes = notes }

// Status returns StatusNeedsAction, StatusCompleted or whatever the server sent.
func (t *Task) Status() string { return t.status }

// SetStatus sets the status.
func (t *Task) SetStatus(status string) { t.status = status }

// Due returns the due date in Unix seconds, or gdata.Unset.
func (t *Task) Due() int64 { return t.due }

// SetDue sets the due date. Pass gdata.Unset to clear it.
func (t *Task) SetDue(due int64) { t.due = due }

// Completed returns the completion time in Unix seconds, or gdata.Unset.
func (t *Task) Completed() int64 { return t.completed }

// SetCompleted sets the completion time. Pass gdata.Unset to clear it.
func (t *Task) SetCompleted(completed int64) { t.completed = completed }

// IsDeleted reports whether the task was deleted.
func (t *Task) IsDeleted() bool { return t.deleted }

// SetIsDeleted marks the task deleted or restores it.
func (t *Task) SetIsDeleted(deleted bool) { t.deleted = deleted }

// IsHidden reports whether the task is hidden, which happens once a
// completed task is cleared from the list.
func (t *Task) IsHidden() bool { return t.hidden }
