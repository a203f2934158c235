package repositories

import "sync"

// MockStateRepository is an in-memory implementation of StateRepository.
type MockStateRepository struct {
	entries map[string][]byte
	mu      sync.RWMutex
}

// NewMockStateRepository creates a new instance of MockStateRepository.
func NewMockStateRepository() *MockStateRepository {
	return &MockStateRepository{
		entries: make(map[string][]byte),
	}
}

// Load returns a copy of the bytes stored under key.
func (r *MockStateRepository) Load(key string) ([]byte, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.entries[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Save stores a copy of data under key.
func (r *MockStateRepository) Save(key string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[key] = append([]byte(nil), data...)
	return nil
}
