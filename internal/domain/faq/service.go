package faq

import (
	"context"
	"log/slog"

	apperrors "github.com/yanqian/faq-chatbot/pkg/errors"
)

// Service exposes FAQ lookups together with query statistics.
type Service interface {
	Match(ctx context.Context, question string) Result
	Answer(ctx context.Context, question string) string
	Trending(ctx context.Context) ([]TrendingQuery, error)
}

type service struct {
	cfg     Config
	matcher *Matcher
	stats   StatsStore
	logger  *slog.Logger
}

// NewService wires up the FAQ domain.
func NewService(cfg Config, catalog CatalogSource, stats StatsStore, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		matcher: NewMatcher(catalog, logger),
		stats:   stats,
		logger:  logger.With("component", "faq.service"),
	}
}

// Match answers the question and records the outcome. Stats failures are only logged.
func (s *service) Match(ctx context.Context, question string) Result {
	result := s.matcher.Match(ctx, question)

	if canonical := canonicalQuery(question); canonical != "" {
		if err := s.stats.Record(ctx, canonical, normalizeText(question), result.Outcome); err != nil {
			s.logger.Warn("faq stats record failed", "error", err)
		}
	}
	return result
}

func (s *service) Answer(ctx context.Context, question string) string {
	return s.Match(ctx, question).Answer
}

func (s *service) Trending(ctx context.Context) ([]TrendingQuery, error) {
	recs, err := s.stats.Top(ctx, s.cfg.TopRecommendations)
	if err != nil {
		return nil, apperrors.Wrap("faq_error", "failed to load trending queries", err)
	}
	return recs, nil
}
