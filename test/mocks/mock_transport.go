package mocks

import (
	"context"
	"fmt"
	"sync"
)

// TransportCall is one captured Post
type TransportCall struct {
	URL     string
	Body    []byte
	Headers map[string]string
}

// MockResponse is a scripted reply: a body or an error
type MockResponse struct {
	Body string
	Err  error
}

// MockTransport returns scripted responses in order and records every call.
// Once the script runs out the last response is repeated.
type MockTransport struct {
	mu        sync.Mutex
	Responses []MockResponse
	Calls     []TransportCall
}

// NewMockTransport creates a transport that answers with bodies in order
func NewMockTransport(bodies ...string) *MockTransport {
	m := &MockTransport{}
	for _, b := range bodies {
		m.Responses = append(m.Responses, MockResponse{Body: b})
	}
	return m
}

// Post records the call and returns the next scripted response
func (m *MockTransport) Post(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hdrs := make(map[string]string, len(headers))
	for k, v := range headers {
		hdrs[k] = v
	}
	m.Calls = append(m.Calls, TransportCall{
		URL:     url,
		Body:    append([]byte(nil), body...),
		Headers: hdrs,
	})

	if len(m.Responses) == 0 {
		return nil, fmt.Errorf("mock transport: no response scripted for %s", url)
	}
	idx := len(m.Calls) - 1
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	resp := m.Responses[idx]
	if resp.Err != nil {
		return nil, resp.Err
	}
	return []byte(resp.Body), nil
}

// CallCount returns the number of Post calls made so far
func (m *MockTransport) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Reset clears captured calls
func (m *MockTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = nil
}
