// Package tasks implements the Google Tasks API: task lists, tasks and the
// Query that filters them. Both resources are exchanged as JSON only.
package tasks
