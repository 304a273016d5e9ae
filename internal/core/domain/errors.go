package domain

import "errors"

// Domain errors group every failure into one of three families a caller can
// tell apart with errors.Is: the request or query was invalid, the server's
// response could not be parsed, or the server reported a protocol failure.
var (
	// ErrInvalidQuery indicates a query or request was rejected before any
	// network traffic happened.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrInvalidInput indicates a malformed argument outside of query building,
	// such as inserting an entry that already exists.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidResponse indicates the server's payload could not be parsed
	// into the expected resource.
	ErrInvalidResponse = errors.New("invalid response")

	// ErrProtocol indicates the server answered with a non-success status.
	ErrProtocol = errors.New("protocol error")

	// Protocol refinements. Errors matching these also match ErrProtocol.

	// ErrBadRequest indicates the server rejected the request URI or headers (400).
	ErrBadRequest = errors.New("bad request")

	// ErrAuthRequired indicates the request needs (different) credentials (401, 403).
	ErrAuthRequired = errors.New("authentication required")

	// ErrNotFound indicates a requested resource does not exist (404).
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates the resource changed since it was fetched (409, 412).
	ErrConflict = errors.New("conflict")

	// ErrRateLimited indicates the API rate limit was exceeded (429).
	ErrRateLimited = errors.New("rate limited")

	// Authentication errors.

	// ErrTokenUnavailable indicates a token provider could not supply a token.
	ErrTokenUnavailable = errors.New("token unavailable")
)
