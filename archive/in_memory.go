// Package archive stores finished invocation results for later retrieval,
// playing the checkpoint role for workflows that want to inspect or replay
// past conversations.
package archive

import (
	"sync"

	"github.com/hupe1980/supervisorkit/core"
	"github.com/hupe1980/supervisorkit/runtime"
)

// Store archives invocation results keyed by invocation ID.
type Store interface {
	// Save records a finished result. Saving the same invocation ID again
	// overwrites the previous entry.
	Save(res *runtime.Result) error
	// Get returns the archived result for the given invocation ID.
	Get(invocationID string) (*runtime.Result, bool)
	// List returns all archived results in save order.
	List() []*runtime.Result
}

// InMemoryStore is a volatile Store keeping results in a process local map.
// It is safe for concurrent access and best suited for tests or ephemeral
// demo runs. Results are cloned on the way in and out to prevent external
// mutation of archived state.
type InMemoryStore struct {
	mu      sync.RWMutex
	results map[string]*runtime.Result
	order   []string
}

// NewInMemoryStore constructs an empty in-memory archive.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{results: make(map[string]*runtime.Result)}
}

// Save records a clone of the result snapshot.
func (s *InMemoryStore) Save(res *runtime.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.results[res.InvocationID]; !exists {
		s.order = append(s.order, res.InvocationID)
	}
	s.results[res.InvocationID] = clone(res)
	return nil
}

// Get returns a clone of the archived result, if any.
func (s *InMemoryStore) Get(invocationID string) (*runtime.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.results[invocationID]
	if !ok {
		return nil, false
	}
	return clone(res), true
}

// List returns clones of all archived results in save order.
func (s *InMemoryStore) List() []*runtime.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*runtime.Result, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.results[id]))
	}
	return out
}

func clone(res *runtime.Result) *runtime.Result {
	cp := *res
	cp.Messages = res.Messages.Clone()
	cp.Handoffs = append([]core.HandoffRecord(nil), res.Handoffs...)
	return &cp
}
