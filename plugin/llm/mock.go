package llm

import (
	"context"
	"sync"

	"github.com/sashabaranov/go-openai"
)

// MockCompleter is a scripted Completer for testing. Each call consumes
// the next scripted step; when the script is exhausted it repeats the
// last step.
type MockCompleter struct {
	mu       sync.Mutex
	script   []mockStep
	requests []openai.ChatCompletionRequest
}

type mockStep struct {
	text string
	err  error
}

// NewMockCompleter creates an empty mock; enqueue steps before use.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// EnqueueText scripts a successful completion returning text.
func (m *MockCompleter) EnqueueText(text string) *MockCompleter {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, mockStep{text: text})
	return m
}

// EnqueueError scripts a provider error.
func (m *MockCompleter) EnqueueError(err error) *MockCompleter {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, mockStep{err: err})
	return m
}

// CreateChatCompletion implements Completer.
func (m *MockCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if err := ctx.Err(); err != nil {
		return openai.ChatCompletionResponse{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if len(m.script) == 0 {
		return openai.ChatCompletionResponse{}, nil
	}

	step := m.script[0]
	if len(m.script) > 1 {
		m.script = m.script[1:]
	}

	if step.err != nil {
		return openai.ChatCompletionResponse{}, step.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: step.text}},
		},
	}, nil
}

// Requests returns a copy of the recorded requests.
func (m *MockCompleter) Requests() []openai.ChatCompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]openai.ChatCompletionRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// CallCount returns the number of provider calls made.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

var _ Completer = (*MockCompleter)(nil)
