package adapter

import "context"

// MockAdapter returns deterministic responses for local runs and tests.
type MockAdapter struct {
	CompleteResponse string
	GeneralResponse  string
	Err              error

	CompleteCalls int
	GeneralCalls  int
	LastSystem    string
	LastInput     string
	Usage         *Usage
}

// NewMockAdapter creates a mock adapter with default responses.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{
		CompleteResponse: "mock completion",
		GeneralResponse:  "mock general response",
	}
}

// Name returns the adapter identifier.
func (a *MockAdapter) Name() string {
	return "mock"
}

// Models returns the list of supported mock models.
func (a *MockAdapter) Models() []string {
	return []string{"mock-1"}
}

// Complete returns the canned completion.
func (a *MockAdapter) Complete(_ context.Context, system, user string) (*Response, error) {
	a.CompleteCalls++
	a.LastSystem = system
	a.LastInput = user
	if a.Err != nil {
		return nil, a.Err
	}
	return &Response{Content: a.CompleteResponse, Usage: a.Usage}, nil
}

// RunGeneral returns the canned general response.
func (a *MockAdapter) RunGeneral(_ context.Context, input string) (*Response, error) {
	a.GeneralCalls++
	a.LastInput = input
	if a.Err != nil {
		return nil, a.Err
	}
	return &Response{Content: a.GeneralResponse, Usage: a.Usage}, nil
}
