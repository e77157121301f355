package core

import (
	"errors"
	"strconv"
	"sync"
)

// ErrKeyNotFound is returned by KVStore.Get for a missing key.
var ErrKeyNotFound = errors.New("kv: key not found")

// KVStore is a string key-value store used for small persistent values
// such as high scores.
type KVStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// HighScoreKey returns the storage key for a game's high score.
func HighScoreKey(gameID string) string {
	return gameID + "-high-score"
}

// LoadHighScore reads a decimal high score. A nil store, a missing key,
// a read failure or a malformed value all count as "no high score".
func LoadHighScore(store KVStore, key string) int {
	if store == nil {
		return 0
	}
	v, err := store.Get(key)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SaveHighScore writes a decimal high score.
func SaveHighScore(store KVStore, key string, score int) error {
	if store == nil {
		return nil
	}
	return store.Set(key, strconv.Itoa(score))
}

// MemoryStore is an in-process KVStore. Safe for concurrent use.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get returns the value for key or ErrKeyNotFound.
func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return v, nil
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
