package faq

import (
	"context"
	"log/slog"
)

// Matcher maps a raw user utterance to the closest catalog answer.
// It keeps no state between calls and is safe for concurrent use.
type Matcher struct {
	catalog CatalogSource
	logger  *slog.Logger
}

// NewMatcher constructs a Matcher reading entries from catalog on every call.
func NewMatcher(catalog CatalogSource, logger *slog.Logger) *Matcher {
	return &Matcher{
		catalog: catalog,
		logger:  logger.With("component", "faq.matcher"),
	}
}

// Answer returns the best matching answer or one of the fixed fallback messages.
func (m *Matcher) Answer(ctx context.Context, input string) string {
	return m.Match(ctx, input).Answer
}

// Match resolves input against the catalog. It never panics; any fault is
// logged and reported as OutcomeError with MessageInternalError.
func (m *Matcher) Match(ctx context.Context, input string) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("faq match failed", "panic", r)
			result = Result{Answer: MessageInternalError, Outcome: OutcomeError}
		}
	}()

	entries := m.catalog.Entries(ctx)
	if len(entries) == 0 {
		return Result{Answer: MessageUnavailable, Outcome: OutcomeUnavailable}
	}

	idx, score, ok := bestMatch(normalizeText(input), entries)
	if !ok {
		return Result{Answer: MessageNotFound, Outcome: OutcomeNotFound}
	}
	entry := entries[idx]
	return Result{
		Answer:          entry.Answer,
		Outcome:         OutcomeMatched,
		MatchedQuestion: entry.Question,
		Score:           score,
	}
}

// bestMatch returns the index of the highest scoring entry at or above Cutoff.
// On equal scores the earliest entry wins.
func bestMatch(input string, entries []Entry) (int, float64, bool) {
	sc := newScorer(input, Cutoff)
	best := -1
	bestScore := 0.0
	for i, entry := range entries {
		question := normalizeText(entry.Question)
		if question == "" {
			continue
		}
		score, ok := sc.score(question)
		if !ok {
			continue
		}
		if best < 0 || score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	return best, bestScore, true
}
