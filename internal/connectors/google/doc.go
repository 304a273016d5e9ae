// Package google is the HTTP side of the GData client: it sends the queries
// built by package gdata and parses the responses back into resources.
//
// It provides:
//   - Service, configured from Config, which issues feed and entry requests
//   - QueryFeed, QueryEntry, InsertEntry, UpdateEntry and DeleteEntry
//   - APIError and the Is* helpers mapping HTTP statuses onto domain errors
//   - RateLimiter in front of every request, honouring Retry-After on 429
//   - Metrics recorded into a Prometheus registry
//   - TokenSource adapter from driven.TokenProvider to oauth2.TokenSource
//
// # Usage
//
//	svc, err := google.NewService(cfg, google.WithTokenSource(ts))
//	q := tasks.NewQuery()
//	feed, err := google.QueryFeed(ctx, svc, q, tasks.ListsURI, tasks.NewTasklist, nil)
//
// Per-service query and resource types live in the subpackages.
package google
