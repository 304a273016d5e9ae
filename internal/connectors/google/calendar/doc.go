// Package calendar implements the Google Calendar API v3: the user's
// calendar list, events, sharing rules and the Query that filters events.
//
// Event times, organisers and attendees use the generated types from
// google.golang.org/api/calendar/v3; everything else goes through the
// gdata entry machinery so events page and cache like any other feed.
package calendar
