package ports

import "net/http"

// HTTPClient is the subset of *http.Client the HTTP transport needs.
// Tests substitute a recorder; production passes a tuned *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
