package driven

import "net/http"

// HTTPClient sends HTTP requests on behalf of a service.
// *http.Client satisfies it; tests substitute fakes or httptest clients.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
