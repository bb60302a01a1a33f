package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one queued reply of a MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider serves queued replies in order and records every request.
// Once the queue runs dry it answers with Fallback, or fails with
// ErrProviderUnavailable when no fallback is set.
type MockProvider struct {
	mu       sync.Mutex
	queue    []MockResponse
	Calls    []Request
	Fallback func(Request) MockResponse
}

// NewMockProvider queues responses for successive Generate calls.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// NewEchoProvider answers every request with the smallest object its schema
// accepts. It backs POLYGLOT_LLM_PROVIDER=mock so the tutor works offline.
func NewEchoProvider() *MockProvider {
	return &MockProvider{Fallback: echoSchema}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var resp MockResponse
	switch {
	case len(m.queue) > 0:
		resp, m.queue = m.queue[0], m.queue[1:]
	case m.Fallback != nil:
		resp = m.Fallback(req)
	default:
		return nil, &ErrProviderUnavailable{}
	}
	if resp.Err != nil {
		return nil, resp.Err
	}
	if err := validateResponse(req.Schema, resp.Content); err != nil {
		return nil, err
	}
	return &Response{Content: resp.Content, Usage: resp.Usage, Model: "mock", StopReason: "end"}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse queues one more reply.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// echoSchema fills each declared property with a placeholder of its type.
// Requests without a schema get an empty object.
func echoSchema(req Request) MockResponse {
	out := map[string]any{}
	if req.Schema != nil {
		props, _ := req.Schema.Definition["properties"].(map[string]any)
		for name, p := range props {
			def, _ := p.(map[string]any)
			switch def["type"] {
			case "string":
				out[name] = "(mock " + name + ")"
			case "integer", "number":
				out[name] = 0
			case "boolean":
				out[name] = false
			case "array":
				out[name] = []any{}
			case "object":
				out[name] = map[string]any{}
			}
		}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return MockResponse{Err: &ErrInvalidResponse{Err: err}}
	}
	in := len(req.System)
	for _, msg := range req.Messages {
		in += len(msg.Content)
	}
	return MockResponse{Content: b, Usage: usage(in/4, len(b)/4)}
}
