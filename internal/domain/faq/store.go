package faq

import "context"

// CatalogSource produces the current ordered FAQ entries.
// Implementations never fail: unreadable or malformed resources yield an empty slice.
type CatalogSource interface {
	Entries(ctx context.Context) []Entry
}

// StatsStore tracks how often queries are asked and how they resolved.
type StatsStore interface {
	Record(ctx context.Context, canonical, display string, outcome Outcome) error
	Top(ctx context.Context, limit int) ([]TrendingQuery, error)
}

// DefaultTrendingLimit is used by StatsStore.Top when limit is not positive.
const DefaultTrendingLimit = 10
