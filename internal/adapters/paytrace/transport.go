package paytrace

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/kevin07696/paytrace-gateway/internal/adapters/ports"
	pkgerrors "github.com/kevin07696/paytrace-gateway/pkg/errors"
)

// HTTPTransport implements ports.Transport over an HTTP client
type HTTPTransport struct {
	client ports.HTTPClient
	logger ports.Logger
}

// NewHTTPTransport creates a transport with dependency injection
func NewHTTPTransport(client ports.HTTPClient, logger ports.Logger) *HTTPTransport {
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &HTTPTransport{
		client: client,
		logger: logger,
	}
}

// Post sends body to url once. PayTrace reports business failures as 4xx with a JSON
// body, so those bodies are returned to the caller; network failures and 5xx are errors.
func (t *HTTPTransport) Post(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.NewPaymentError("NETWORK_ERROR", "Failed to connect to payment gateway", pkgerrors.CategoryNetworkError, true).WithCause(err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	t.logger.Debug("received PayTrace response",
		ports.Int("status_code", httpResp.StatusCode),
		ports.Int("body_length", len(respBody)),
	)

	if httpResp.StatusCode >= 500 {
		perr := pkgerrors.NewPaymentError("GATEWAY_ERROR", "Payment gateway error", pkgerrors.CategorySystemError, true)
		perr.StatusCode = httpResp.StatusCode
		return nil, perr
	}

	return respBody, nil
}
