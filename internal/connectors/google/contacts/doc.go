// Package contacts implements the Google Contacts Data API: contacts and
// groups as Atom entries with gd and gContact extensions, and the Query
// that orders and filters the contacts feed.
//
// Ids are always normalised to the full projection; the base projection
// hides extended properties.
package contacts
