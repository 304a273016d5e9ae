// Package youtube implements video search against the YouTube Data API v3.
//
// The v3 search endpoint accepts few of the classic GData parameters, so
// Query writes its own parameter list rather than extending the shared one.
package youtube
