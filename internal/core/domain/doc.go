// Package domain holds the error families and authentication types shared by
// the gdata core, the Google service and the CLI.
//
// Callers classify failures with errors.Is against the sentinels here:
// ErrInvalidQuery before a request is sent, ErrInvalidResponse when a reply
// cannot be parsed, and ErrProtocol (with its refinements) when the server
// answers with an error status.
//
// The package imports the standard library only.
package domain
