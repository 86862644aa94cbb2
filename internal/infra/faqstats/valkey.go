package faqstats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

// ValkeyStore keeps query statistics in a Valkey-compatible database:
// a sorted set of canonical queries plus one outcome hash per query.
type ValkeyStore struct {
	client valkey.Client
	prefix string
	logger *slog.Logger
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string, logger *slog.Logger) *ValkeyStore {
	if prefix == "" {
		prefix = "faq"
	}
	return &ValkeyStore{client: client, prefix: prefix, logger: logger.With("component", "faqstats.valkey")}
}

func (s *ValkeyStore) Record(ctx context.Context, canonical, display string, outcome faq.Outcome) error {
	if canonical == "" {
		return nil
	}
	if err := s.client.Do(ctx, s.client.B().Zincrby().Key(s.trendingKey()).Increment(1).Member(canonical).Build()).Error(); err != nil {
		return err
	}
	if outcome != "" {
		if err := s.client.Do(ctx, s.client.B().Hincrby().Key(s.outcomeKey(canonical)).Field(string(outcome)).Increment(1).Build()).Error(); err != nil {
			return err
		}
	}
	if display != "" {
		// SET NX answers nil once the display string exists
		err := s.client.Do(ctx, s.client.B().Set().Key(s.displayKey(canonical)).Value(display).Nx().Build()).Error()
		if err != nil && !valkey.IsValkeyNil(err) {
			s.logger.Debug("store display string failed", "canonical", canonical, "error", err)
		}
	}
	return nil
}

func (s *ValkeyStore) Top(ctx context.Context, limit int) ([]faq.TrendingQuery, error) {
	if limit <= 0 {
		limit = faq.DefaultTrendingLimit
	}
	scores, err := s.client.Do(ctx, s.client.B().Zrevrange().Key(s.trendingKey()).Start(0).Stop(int64(limit-1)).Withscores().Build()).AsZScores()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}
	return assembleTrending(scores, func(canonical string) string {
		return s.fetchDisplay(ctx, canonical)
	}, func(canonical string) map[string]int64 {
		return s.fetchOutcomes(ctx, canonical)
	}), nil
}

// assembleTrending joins ranked scores with their display strings and outcome counts.
func assembleTrending(scores []valkey.ZScore, display func(string) string, outcomes func(string) map[string]int64) []faq.TrendingQuery {
	out := make([]faq.TrendingQuery, 0, len(scores))
	for _, z := range scores {
		if z.Member == "" {
			continue
		}
		counts := outcomes(z.Member)
		out = append(out, faq.TrendingQuery{
			Query:    display(z.Member),
			Count:    int64(z.Score),
			Matched:  counts[string(faq.OutcomeMatched)],
			NotFound: counts[string(faq.OutcomeNotFound)],
		})
	}
	return out
}

func (s *ValkeyStore) fetchDisplay(ctx context.Context, canonical string) string {
	display, err := s.client.Do(ctx, s.client.B().Get().Key(s.displayKey(canonical)).Build()).ToString()
	if err != nil || display == "" {
		return canonical
	}
	return display
}

func (s *ValkeyStore) fetchOutcomes(ctx context.Context, canonical string) map[string]int64 {
	counts, err := s.client.Do(ctx, s.client.B().Hgetall().Key(s.outcomeKey(canonical)).Build()).AsIntMap()
	if err != nil {
		return map[string]int64{}
	}
	return counts
}

func (s *ValkeyStore) trendingKey() string {
	return fmt.Sprintf("%s:trending", s.prefix)
}

func (s *ValkeyStore) displayKey(canonical string) string {
	return fmt.Sprintf("%s:display:%s", s.prefix, canonical)
}

func (s *ValkeyStore) outcomeKey(canonical string) string {
	return fmt.Sprintf("%s:outcome:%s", s.prefix, canonical)
}

var _ faq.StatsStore = (*ValkeyStore)(nil)
