// Package auth provides the TokenProvider implementations: anonymous and API
// key access, static bearer tokens, and refreshable OAuth 2.0 credentials.
package auth
