package textgen

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockProvider is a deterministic in-process implementation used by tests and
// local runs without credentials. It never calls out.
type MockProvider struct {
	mu sync.Mutex
	// Err, when set, is returned for every call until cleared.
	Err error
	// ErrFor returns an error for specific prompts; keyed by substring.
	ErrFor map[string]error

	calls []Request
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Complete(_ context.Context, req Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)

	if m.Err != nil {
		return "", m.Err
	}
	for substr, err := range m.ErrFor {
		if strings.Contains(req.Prompt, substr) {
			return "", err
		}
	}

	var sb strings.Builder
	sb.WriteString("## Overview\n\n")
	sb.WriteString("This generated passage summarizes the requested topic in a few sentences. ")
	sb.WriteString("It exists so the pipeline has structured text to parse.\n\n")
	sb.WriteString("- first supporting point\n")
	sb.WriteString("- second supporting point\n\n")
	sb.WriteString("1. initial step\n")
	sb.WriteString("2. following step\n\n")
	sb.WriteString(fmt.Sprintf("Prompt length was %d characters.\n", len(req.Prompt)))
	return sb.String(), nil
}

// Calls returns a copy of every request seen so far.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}
