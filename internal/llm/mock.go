package llm

import (
	"context"
	"sync"
)

// MockResponse is a canned reply for MockClient.
type MockResponse struct {
	Content string
	Err     error
}

// MockClient returns canned responses in FIFO order and records every request.
// With an empty queue it answers with a fixed mid-range rubric so local
// development works without credentials.
type MockClient struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request
}

func NewMockClient(responses ...MockResponse) *MockClient {
	return &MockClient{responses: responses}
}

func (m *MockClient) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if len(m.responses) == 0 {
		return &Response{Content: mockRubricJSON, Model: "mock", PromptTokens: 400, OutputTokens: 120}, nil
	}

	next := m.responses[0]
	m.responses = m.responses[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{Content: next.Content, Model: "mock"}, nil
}

func (m *MockClient) ModelID() string {
	return "mock"
}

func (m *MockClient) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

const mockRubricJSON = "```json\n" + `{
  "total_score": 70,
  "feedback": "[Mock] Clear delivery with a few hesitations.",
  "strengths": ["[Mock] Steady pace"],
  "improvements": ["[Mock] Link ideas with connectors"]
}` + "\n```"
