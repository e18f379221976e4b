package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockReply is one scripted answer.
type MockReply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted replies in order and remembers every
// request. With an empty script it falls back to Respond, and failing
// that returns UnavailableError. Used by tests and the "mock" provider.
type MockProvider struct {
	// Respond, when set, answers requests once the script is exhausted.
	Respond func(Request) MockReply

	mu       sync.Mutex
	script   []MockReply
	requests []Request
}

// NewMockProvider returns a provider that replays replies.
func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{script: replies}
}

// Push appends replies to the script.
func (m *MockProvider) Push(replies ...MockReply) {
	m.mu.Lock()
	m.script = append(m.script, replies...)
	m.mu.Unlock()
}

func (m *MockProvider) ModelID() string { return ProviderMock }

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	var (
		reply MockReply
		ok    bool
	)
	if len(m.script) > 0 {
		reply, m.script, ok = m.script[0], m.script[1:], true
	}
	respond := m.Respond
	m.mu.Unlock()

	if !ok {
		if respond == nil {
			return nil, &UnavailableError{}
		}
		reply = respond(req)
	}
	if reply.Err != nil {
		return nil, reply.Err
	}
	return finish(req, &Response{
		Content:    reply.Content,
		Usage:      reply.Usage,
		Model:      ProviderMock,
		StopReason: StopEnd,
	})
}

// Requests returns a copy of every request seen so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}
