// Package gdata implements the query-building and wire-format core shared by
// every Google data service binding.
//
// Two abstractions carry the package:
//
//   - Query accumulates the common filter parameters, owns an ETag for
//     conditional re-fetch and drives one of three pagination strategies
//     (indexed, server-supplied URIs, or opaque page tokens). Service query
//     types embed Query and extend the URI it builds through ParamAppender.
//
//   - Parsable is the parse/serialise contract for resources. XML resources
//     are decoded one child element at a time through a chain of handlers,
//     most specific type first; JSON resources are decoded one object member
//     at a time. Content no handler claims is logged and kept so it survives a
//     round trip back to the server.
//
// # Errors
//
// Parse failures are *ParseError values matching both a kind sentinel
// (ErrRequiredAttributeMissing and friends) and domain.ErrInvalidResponse.
// Query validation failures wrap domain.ErrInvalidQuery. Pagination setters
// called against the wrong strategy panic.
package gdata
