package ports

import "context"

// Transport performs one outbound POST and returns the raw response body.
// Implementations return an error only for infrastructure failures (connection refused,
// gateway 5xx); processor-reported declines come back as a normal body.
// Timeouts and cancellation are governed by ctx.
type Transport interface {
	Post(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error)
}

// TransportFunc adapts a function to the Transport interface
type TransportFunc func(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error)

// Post calls f
func (f TransportFunc) Post(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	return f(ctx, url, body, headers)
}
