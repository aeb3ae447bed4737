package memory

import (
	"context"
	"sync"

	"github.com/Popolzen/quranverse/internal/model"
)

type StateRepository struct {
	mu     sync.RWMutex
	states map[string]model.State
	shares map[string]map[string]struct{}
}

func NewStateRepository() *StateRepository {
	return &StateRepository{
		states: map[string]model.State{},
		shares: map[string]map[string]struct{}{},
	}
}

func (r *StateRepository) Get(_ context.Context, sessionID string) (model.State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.states[sessionID], nil
}

func (r *StateRepository) Save(_ context.Context, sessionID string, state model.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.states[sessionID] = state
	return nil
}

// RecordShare запоминает адрес, которым поделилась сессия, повторы не считаются
func (r *StateRepository) RecordShare(_ context.Context, sessionID, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	urls, ok := r.shares[sessionID]
	if !ok {
		urls = map[string]struct{}{}
		r.shares[sessionID] = urls
	}
	urls[url] = struct{}{}
	return nil
}

func (r *StateRepository) Stats(_ context.Context) (model.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := model.Stats{Sessions: len(r.states)}
	for _, urls := range r.shares {
		stats.Shares += len(urls)
	}
	return stats, nil
}

func (r *StateRepository) Close() error {
	return nil
}
