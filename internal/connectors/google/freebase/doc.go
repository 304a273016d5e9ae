// Package freebase implements the Freebase API: MQL reads, topic search and
// topic fetches.
//
// None of the endpoints follow the GData parameter conventions, so each
// query type writes its own parameter list. Replies are single JSON objects
// rather than feeds.
package freebase
