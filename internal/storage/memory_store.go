package storage

import (
	"context"
	"sort"
	"strings"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps values in process memory. It backs tests and the "memory"
// storage driver, which forgets everything on exit.
type MemoryStore struct {
	items *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: cache.New(cache.NoExpiration, 0),
	}
}

func (s *MemoryStore) Load(_ context.Context, key string) (string, bool, error) {
	value, ok := s.items.Get(key)
	if !ok {
		return "", false, nil
	}
	return value.(string), true, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, value string) error {
	if key == "" {
		return ErrInvalidKey
	}
	s.items.Set(key, value, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.items.Delete(key)
	return nil
}

func (s *MemoryStore) Keys(_ context.Context, prefix string) ([]string, error) {
	var keys []string
	for key := range s.items.Items() {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
