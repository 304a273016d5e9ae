// Package documents implements file search and metadata against the Drive
// API v2, the successor of the Documents List feed.
package documents
