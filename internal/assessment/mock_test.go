package assessment

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/career-prep/internal/llm"
	"github.com/jonathan/career-prep/internal/types"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	CompleteFunc func(ctx context.Context, req llm.Request) (string, error)

	mu       sync.Mutex
	requests []llm.Request
}

func (m *MockLLMClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "{}", nil
}

func (m *MockLLMClient) GetModel(tier llm.ModelTier) string {
	return "mock-" + string(tier)
}

func (m *MockLLMClient) Close() error {
	return nil
}

func (m *MockLLMClient) Requests() []llm.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.Request(nil), m.requests...)
}

// mockStore records resumes and assigns ids like the database does
type mockStore struct {
	mu      sync.Mutex
	records []*types.ResumeRecord
	err     error
}

func (s *mockStore) CreateResume(_ context.Context, record *types.ResumeRecord) error {
	if s.err != nil {
		return s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = uuid.New()
	s.records = append(s.records, record)
	return nil
}
