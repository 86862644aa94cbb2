package faqstats

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

type queryStats struct {
	display  string
	count    int64
	matched  int64
	notFound int64
}

// DefaultMaxQueries bounds the number of distinct queries a MemoryStore tracks.
const DefaultMaxQueries = 10000

// MemoryStore is an in-memory implementation of faq.StatsStore for tests/dev.
// Once full, a new query evicts the least asked one.
type MemoryStore struct {
	mu         sync.RWMutex
	queries    map[string]*queryStats
	maxQueries int
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return NewBoundedMemoryStore(DefaultMaxQueries)
}

// NewBoundedMemoryStore tracks at most maxQueries distinct queries.
func NewBoundedMemoryStore(maxQueries int) *MemoryStore {
	if maxQueries <= 0 {
		maxQueries = DefaultMaxQueries
	}
	return &MemoryStore{queries: make(map[string]*queryStats), maxQueries: maxQueries}
}

// Record bumps the counters for a canonical query and remembers its first display string.
func (s *MemoryStore) Record(_ context.Context, canonical, display string, outcome faq.Outcome) error {
	if canonical == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.queries[canonical]
	if !ok {
		if len(s.queries) >= s.maxQueries {
			s.evictLocked()
		}
		q = &queryStats{display: display}
		s.queries[canonical] = q
	}
	q.count++
	switch outcome {
	case faq.OutcomeMatched:
		q.matched++
	case faq.OutcomeNotFound:
		q.notFound++
	}
	return nil
}

// Top returns the most frequent canonical questions.
func (s *MemoryStore) Top(_ context.Context, limit int) ([]faq.TrendingQuery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 {
		limit = faq.DefaultTrendingLimit
	}
	items := make([]faq.TrendingQuery, 0, len(s.queries))
	for canonical, q := range s.queries {
		display := q.display
		if display == "" {
			display = canonical
		}
		items = append(items, faq.TrendingQuery{
			Query:    display,
			Count:    q.count,
			Matched:  q.matched,
			NotFound: q.notFound,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Query < items[j].Query
		}
		return items[i].Count > items[j].Count
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// evictLocked drops the least asked query; ties go to the lexically smallest key.
func (s *MemoryStore) evictLocked() {
	victim := ""
	var lowest int64
	for canonical, q := range s.queries {
		if victim == "" || q.count < lowest || (q.count == lowest && canonical < victim) {
			victim, lowest = canonical, q.count
		}
	}
	delete(s.queries, victim)
}

var _ faq.StatsStore = (*MemoryStore)(nil)
