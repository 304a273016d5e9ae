// Package driven declares what the Google service needs from the outside
// world: an HTTPClient to send requests, a TokenProvider for credentials and
// a ConfigStore for settings.
//
// Adapters under internal/adapters/driven implement these. Only the domain
// package may be imported from here.
package driven
