package storage

import (
	"errors"
	"sort"
	"stash/internal/structures"
	"strings"
	"sync"

	"go.uber.org/atomic"
)

var (
	ErrNotFound      = errors.New("entry not found")
	ErrCorrupt       = errors.New("stored entry is malformed")
	ErrQuotaExceeded = errors.New("store quota exceeded")
)

// KeyValueStore is the client-side persistent string store the repositories
// are built on. Values are raw JSON or plain strings.
type KeyValueStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
	Keys(prefix string) []string
	Len() int
	// Snapshot copies the content together with its write generation.
	Snapshot() (map[string]string, uint64)
	Load(entries map[string]string)
	Dirty() bool
	// MarkClean records that everything up to generation is persisted.
	MarkClean(generation uint64)
}

type MemoryStore struct {
	mu         sync.RWMutex
	data       map[string]string
	maxEntries int
	generation atomic.Uint64
	saved      atomic.Uint64
}

// NewMemoryStore creates a store holding at most maxEntries keys; zero or a
// negative value means unlimited.
func NewMemoryStore(maxEntries int) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]string),
		maxEntries: maxEntries,
	}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data[key]; !exists && s.maxEntries > 0 && len(s.data) >= s.maxEntries {
		return ErrQuotaExceeded
	}
	s.data[key] = value
	s.generation.Inc()
	return nil
}

func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.data[key]; ok {
		delete(s.data, key)
		s.generation.Inc()
	}
	return nil
}

// Keys returns the sorted keys starting with prefix.
func (s *MemoryStore) Keys(prefix string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0)
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) Snapshot() (map[string]string, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out, s.generation.Load()
}

// Load replaces the store content. Quota is not enforced on restore.
func (s *MemoryStore) Load(entries map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]string, len(entries))
	for k, v := range entries {
		s.data[k] = v
	}
	s.saved.Store(s.generation.Inc())
}

func (s *MemoryStore) Dirty() bool {
	return s.generation.Load() != s.saved.Load()
}

// MarkClean never moves the saved mark backwards, so a slow save finishing
// after a newer one cannot hide writes.
func (s *MemoryStore) MarkClean(generation uint64) {
	for {
		saved := s.saved.Load()
		if generation <= saved || s.saved.CompareAndSwap(saved, generation) {
			return
		}
	}
}

// NewKeyValueStore builds the process store from config.
func NewKeyValueStore(conf *structures.Config) KeyValueStore {
	return NewMemoryStore(conf.Persistence.MaxEntries)
}
