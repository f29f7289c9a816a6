package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"
)

// KVStore is an in-process JSON key-value store with optional per-key expiry.
type KVStore struct {
	mu    sync.RWMutex
	clock func() time.Time
	items map[string]kvItem
}

type kvItem struct {
	value     []byte
	expiresAt time.Time
}

func NewKVStore() *KVStore {
	return &KVStore{clock: time.Now, items: make(map[string]kvItem)}
}

func (s *KVStore) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	item := kvItem{value: data}
	if ttl > 0 {
		item.expiresAt = s.clock().Add(ttl)
	}
	s.mu.Lock()
	s.items[key] = item
	s.mu.Unlock()
	return nil
}

func (s *KVStore) Get(_ context.Context, key string, dst any) (bool, error) {
	s.mu.RLock()
	item, ok := s.items[key]
	s.mu.RUnlock()
	if !ok || item.expired(s.clock()) {
		return false, nil
	}
	return true, json.Unmarshal(item.value, dst)
}

func (s *KVStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}

func (s *KVStore) Clear(_ context.Context) error {
	s.mu.Lock()
	s.items = make(map[string]kvItem)
	s.mu.Unlock()
	return nil
}

// Keys lists live keys in lexical order.
func (s *KVStore) Keys(_ context.Context) ([]string, error) {
	now := s.clock()
	s.mu.RLock()
	keys := make([]string, 0, len(s.items))
	for k, item := range s.items {
		if !item.expired(now) {
			keys = append(keys, k)
		}
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys, nil
}

func (i kvItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && !i.expiresAt.After(now)
}
