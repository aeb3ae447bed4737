package filestorage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/Popolzen/quranverse/internal/model"
	"github.com/google/uuid"
)

type StateRepository struct {
	mu     sync.RWMutex
	states map[string]model.State
	shares map[string]map[string]struct{}
	path   string
}

func NewStateRepository(path string) *StateRepository {
	repo := &StateRepository{
		states: map[string]model.State{},
		shares: map[string]map[string]struct{}{},
		path:   path,
	}

	if err := repo.load(); err != nil {
		return &StateRepository{
			states: map[string]model.State{},
			shares: map[string]map[string]struct{}{},
			path:   path,
		}
	}
	return repo
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
	return r.flush()
}

func (r *StateRepository) RecordShare(_ context.Context, sessionID, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	urls, ok := r.shares[sessionID]
	if !ok {
		urls = map[string]struct{}{}
		r.shares[sessionID] = urls
	}
	if _, exists := urls[url]; exists {
		return nil
	}
	urls[url] = struct{}{}
	return r.flush()
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

// Close сбрасывает данные в файл
func (r *StateRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.flush()
}

// load загружает данные из файла в память
func (r *StateRepository) load() error {
	var records []model.SessionRecord

	file, err := os.OpenFile(r.path, os.O_RDONLY, 0644)
	if err != nil {
		return fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("ошибка чтения файла: %w", err)
	}

	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("ошибка десериализации JSON: %w", err)
	}

	for i := range records {
		r.states[records[i].SessionID] = records[i].State
		if len(records[i].Shares) == 0 {
			continue
		}
		urls := make(map[string]struct{}, len(records[i].Shares))
		for _, u := range records[i].Shares {
			urls[u] = struct{}{}
		}
		r.shares[records[i].SessionID] = urls
	}

	return nil
}

// flush перезаписывает файл текущим содержимым, вызывается под блокировкой
func (r *StateRepository) flush() error {
	records := make([]model.SessionRecord, 0, len(r.states))

	for id, state := range r.states {
		records = append(records, model.SessionRecord{
			UUID:      uuid.New().String(),
			SessionID: id,
			State:     state,
			Shares:    sortedKeys(r.shares[id]),
		})
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("ошибка сериализации JSON: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла: %w", err)
	}

	return nil
}

func sortedKeys(m map[string]struct{}) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
