package faqstats

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

func TestMemoryStore_TopOrdersByCount(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, "what are your hours", "What are your hours?", faq.OutcomeMatched))
	require.NoError(t, store.Record(ctx, "what are your hours", "what are your hours", faq.OutcomeMatched))
	require.NoError(t, store.Record(ctx, "asdf", "asdf", faq.OutcomeNotFound))
	require.NoError(t, store.Record(ctx, "where", "where", faq.OutcomeUnavailable))

	items, err := store.Top(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, []faq.TrendingQuery{
		{Query: "What are your hours?", Count: 2, Matched: 2},
		{Query: "asdf", Count: 1, NotFound: 1},
		{Query: "where", Count: 1},
	}, items)
}

func TestMemoryStore_TopRespectsLimit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for _, q := range []string{"a", "b", "c"} {
		require.NoError(t, store.Record(ctx, q, q, faq.OutcomeMatched))
	}

	items, err := store.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "a", items[0].Query)
}

func TestMemoryStore_IgnoresBlankCanonical(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.Record(context.Background(), "", "?", faq.OutcomeNotFound))
	items, err := store.Top(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestMemoryStore_TopDefaultLimit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for i := 0; i < faq.DefaultTrendingLimit+5; i++ {
		q := fmt.Sprintf("query %02d", i)
		require.NoError(t, store.Record(ctx, q, q, faq.OutcomeNotFound))
	}

	items, err := store.Top(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, faq.DefaultTrendingLimit)
}

func TestMemoryStore_EvictsLeastAskedWhenFull(t *testing.T) {
	store := NewBoundedMemoryStore(2)
	ctx := context.Background()

	require.NoError(t, store.Record(ctx, "popular", "popular", faq.OutcomeMatched))
	require.NoError(t, store.Record(ctx, "popular", "popular", faq.OutcomeMatched))
	require.NoError(t, store.Record(ctx, "rare", "rare", faq.OutcomeNotFound))
	require.NoError(t, store.Record(ctx, "fresh", "fresh", faq.OutcomeNotFound))

	items, err := store.Top(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, []faq.TrendingQuery{
		{Query: "popular", Count: 2, Matched: 2},
		{Query: "fresh", Count: 1, NotFound: 1},
	}, items)
}
