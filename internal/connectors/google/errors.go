package google

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/gdata-go/internal/core/domain"
)

// ErrNotModified is returned by QueryEntry when the server reports that the
// entry has not changed since the supplied ETag.
var ErrNotModified = errors.New("google: entry not modified")

// Operation names the kind of request that failed, for error messages.
type Operation string

const (
	OpQuery  Operation = "querying"
	OpInsert Operation = "inserting"
	OpUpdate Operation = "updating"
	OpDelete Operation = "deleting"
)

// APIError is a non-success response from the server.
// It matches domain.ErrProtocol and one refinement of it via errors.Is, and
// unwraps to the decoded *googleapi.Error.
type APIError struct {
	StatusCode int
	Operation  Operation
	// Message is the server-supplied detail: the JSON error message when
	// present, otherwise the trimmed response body.
	Message string
	URI     string

	kind   error
	cause  *googleapi.Error
	reason string
}

// Messages for JSON error reasons that override the status-based text.
const (
	msgQuotaExceeded = "You have made too many API calls recently. Please wait a few minutes and try again."
	msgAuthRequired  = "You must be authenticated to do this."
)

// Error formats the message for the status class.
func (e *APIError) Error() string {
	if e.reason != "" {
		return e.reason
	}
	switch e.kind {
	case domain.ErrBadRequest:
		return fmt.Sprintf("Invalid request URI or header, or unsupported nonstandard parameter: %s", e.Message)
	case domain.ErrAuthRequired:
		return fmt.Sprintf("Authentication required: %s", e.Message)
	case domain.ErrNotFound:
		return fmt.Sprintf("The requested resource was not found: %s", e.Message)
	case domain.ErrConflict:
		return fmt.Sprintf("The entry has been modified since it was downloaded: %s", e.Message)
	case domain.ErrRateLimited:
		return fmt.Sprintf("The API rate limit was exceeded: %s", e.Message)
	default:
		return fmt.Sprintf("Error code %d when %s: %s", e.StatusCode, e.Operation, e.Message)
	}
}

// Is reports whether target is ErrProtocol or the status refinement.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrProtocol || (e.kind != nil && target == e.kind)
}

// Unwrap returns the decoded googleapi error.
func (e *APIError) Unwrap() error {
	if e.cause == nil {
		return nil
	}
	return e.cause
}

// statusKind maps a status code onto a domain protocol refinement.
func statusKind(code int) error {
	switch code {
	case http.StatusBadRequest:
		return domain.ErrBadRequest
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrAuthRequired
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict, http.StatusPreconditionFailed:
		return domain.ErrConflict
	case http.StatusTooManyRequests:
		return domain.ErrRateLimited
	default:
		return nil
	}
}

// newAPIError builds an APIError from a non-2xx response. It consumes the body.
func newAPIError(op Operation, uri string, resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Operation:  op,
		URI:        uri,
		kind:       statusKind(resp.StatusCode),
	}

	var gerr *googleapi.Error
	if errors.As(googleapi.CheckResponse(resp), &gerr) {
		apiErr.cause = gerr
		apiErr.Message = gerr.Message
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(gerr.Body)
		}
		apiErr.applyReason(gerr.Errors)
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}

// applyReason refines the error from the first JSON error item. Reasons
// other than quota and authentication failures keep the status mapping.
func (e *APIError) applyReason(items []googleapi.ErrorItem) {
	if len(items) == 0 {
		return
	}
	switch items[0].Reason {
	case "dailyLimitExceededUnreg":
		e.kind = domain.ErrRateLimited
		e.reason = msgQuotaExceeded
	case "authError", "required":
		e.kind = domain.ErrAuthRequired
		e.reason = msgAuthRequired
	}
}

// statusCode extracts the HTTP status from an APIError or googleapi.Error.
func statusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}

// IsUnauthorized returns true if the error indicates invalid credentials.
func IsUnauthorized(err error) bool {
	return statusCode(err) == http.StatusUnauthorized
}

// IsForbidden returns true if the error indicates insufficient permissions.
func IsForbidden(err error) bool {
	return statusCode(err) == http.StatusForbidden
}

// IsNotFound returns true if the error indicates a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound) || statusCode(err) == http.StatusNotFound
}

// IsRateLimited returns true if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	return errors.Is(err, domain.ErrRateLimited) || statusCode(err) == http.StatusTooManyRequests
}

// IsConflict returns true if the entry changed on the server since it was fetched.
func IsConflict(err error) bool {
	if errors.Is(err, domain.ErrConflict) {
		return true
	}
	code := statusCode(err)
	return code == http.StatusConflict || code == http.StatusPreconditionFailed
}
