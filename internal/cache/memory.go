// Package cache provides bounded key-value caches behind the ports.Cache
// interface: an in-process TTL+LRU cache and a Redis-backed variant for
// deployments that share a cache between instances.
package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// Memory is a bounded in-process cache. Entries expire after the configured
// TTL and the least recently used entry is evicted once capacity is reached.
// Capacity and TTL are constructor parameters so tests can inject tiny
// caches.
type Memory struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[string]*list.Element
	order    *list.List // front = most recently used
	now      func() time.Time
}

// NewMemory creates a cache holding at most capacity entries, each expiring
// ttl after being set.
func NewMemory(capacity int, ttl time.Duration) *Memory {
	if capacity < 1 {
		capacity = 1
	}
	return &Memory{
		capacity: capacity,
		ttl:      ttl,
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
		now:      time.Now,
	}
}

// Get returns the cached value for key, if present and unexpired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	entry := elem.Value.(*memoryEntry)
	if m.now().After(entry.expiresAt) {
		m.order.Remove(elem)
		delete(m.entries, key)
		return nil, false
	}

	m.order.MoveToFront(elem)
	return entry.value, true
}

// Set stores value under key, evicting the least recently used entry when
// the cache is full. Last writer wins on concurrent sets of the same key.
func (m *Memory) Set(_ context.Context, key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = value
		entry.expiresAt = m.now().Add(m.ttl)
		m.order.MoveToFront(elem)
		return
	}

	if m.order.Len() >= m.capacity {
		oldest := m.order.Back()
		if oldest != nil {
			m.order.Remove(oldest)
			delete(m.entries, oldest.Value.(*memoryEntry).key)
		}
	}

	elem := m.order.PushFront(&memoryEntry{
		key:       key,
		value:     value,
		expiresAt: m.now().Add(m.ttl),
	})
	m.entries[key] = elem
}

// Len returns the current entry count, expired entries included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}
