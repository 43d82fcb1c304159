package testutil

import (
	"context"
	"sync"

	"github.com/teamseven/codeconnect/internal/domain"
	"github.com/teamseven/codeconnect/internal/runner"
)

// MockClient implements hub.Client for testing.
type MockClient struct {
	Name     string
	messages [][]byte
	mu       sync.Mutex
}

// NewMockClient creates a new MockClient with the given name.
func NewMockClient(name string) *MockClient {
	return &MockClient{Name: name}
}

// Send records a message sent to the mock client.
func (m *MockClient) Send(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.messages = append(m.messages, cp)
}

// GetMessages returns a copy of all messages received by the mock client.
func (m *MockClient) GetMessages() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([][]byte, len(m.messages))
	copy(cp, m.messages)
	return cp
}

// MockStore implements store.Store for testing.
type MockStore struct {
	mu   sync.Mutex
	runs map[string][]domain.RunRecord
}

// NewMockStore creates a new MockStore.
func NewMockStore() *MockStore {
	return &MockStore{runs: make(map[string][]domain.RunRecord)}
}

// Save persists a run record in the mock store.
func (s *MockStore) Save(rec domain.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[rec.Room] = append(s.runs[rec.Room], rec)
	return nil
}

// Recent returns stored runs for a room.
func (s *MockStore) Recent(room string, limit int) ([]domain.RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := s.runs[room]
	if len(recs) > limit {
		recs = recs[len(recs)-limit:]
	}
	return recs, nil
}

// Close is a no-op for the mock store.
func (s *MockStore) Close() error { return nil }

// MockProvider implements runner.Provider with a scripted response.
type MockProvider struct {
	Resp runner.ExecResponse
	Err  error

	mu       sync.Mutex
	requests []runner.ExecRequest
}

// Execute records the request and returns the scripted result.
func (p *MockProvider) Execute(ctx context.Context, req runner.ExecRequest) (runner.ExecResponse, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()
	if p.Err != nil {
		return runner.ExecResponse{}, p.Err
	}
	return p.Resp, nil
}

// Requests returns a copy of all requests seen by the provider.
func (p *MockProvider) Requests() []runner.ExecRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := make([]runner.ExecRequest, len(p.requests))
	copy(cp, p.requests)
	return cp
}
