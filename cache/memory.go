package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/docsmith/docgen/observability"
)

// DefaultMaxEntries bounds the in-memory store when no cap is configured.
const DefaultMaxEntries = 256

type memoryEntry struct {
	key       string
	entry     Entry
	expiresAt time.Time
}

// Memory is a TTL + LRU in-process store. Safe for concurrent use; readers
// always see a complete entry or a miss, never a partial write. Expired
// entries are dropped lazily on access.
type Memory struct {
	mu      sync.Mutex
	items   map[string]*list.Element
	order   *list.List // front = most recently used
	max     int
	nowFunc func() time.Time
	metrics observability.Metrics
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithMetrics attaches a metrics sink; evictions count against
// observability.MetricCacheEvict.
func WithMetrics(m observability.Metrics) MemoryOption {
	return func(s *Memory) { s.metrics = m }
}

// NewMemory creates a store holding at most maxEntries documents; zero or
// negative applies DefaultMaxEntries.
func NewMemory(maxEntries int, opts ...MemoryOption) *Memory {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	m := &Memory{
		items:   make(map[string]*list.Element),
		order:   list.New(),
		max:     maxEntries,
		nowFunc: time.Now,
		metrics: observability.NopMetrics{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(ctx context.Context, key string) (Entry, bool, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.items[key]
	if !ok {
		return Entry{}, false, nil
	}
	me := el.Value.(*memoryEntry)
	if m.nowFunc().After(me.expiresAt) {
		m.order.Remove(el)
		delete(m.items, key)
		return Entry{}, false, nil
	}
	m.order.MoveToFront(el)
	return me.entry, true, nil
}

func (m *Memory) Put(ctx context.Context, key string, e Entry, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	expires := m.nowFunc().Add(ttl)
	if el, ok := m.items[key]; ok {
		me := el.Value.(*memoryEntry)
		me.entry = e
		me.expiresAt = expires
		m.order.MoveToFront(el)
		return nil
	}
	el := m.order.PushFront(&memoryEntry{key: key, entry: e, expiresAt: expires})
	m.items[key] = el
	for m.order.Len() > m.max {
		oldest := m.order.Back()
		m.order.Remove(oldest)
		delete(m.items, oldest.Value.(*memoryEntry).key)
		m.metrics.Count(observability.MetricCacheEvict, 1)
	}
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if el, ok := m.items[key]; ok {
		m.order.Remove(el)
		delete(m.items, key)
	}
	return nil
}

// Invalidate drops every entry whose key starts with prefix.
func (m *Memory) Invalidate(ctx context.Context, prefix string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key, el := range m.items {
		if strings.HasPrefix(key, prefix) {
			m.order.Remove(el)
			delete(m.items, key)
			removed++
		}
	}
	return removed, nil
}

// Len reports the current entry count, expired entries included until their
// next access.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}
