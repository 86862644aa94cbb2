package faqcatalog

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

// PostgresSource reads the catalog from the faq_entries table.
type PostgresSource struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresSource constructs the source.
func NewPostgresSource(pool *pgxpool.Pool, logger *slog.Logger) *PostgresSource {
	return &PostgresSource{pool: pool, logger: logger.With("component", "faqcatalog.postgres")}
}

// Entries implements faq.CatalogSource. Order is position, then insertion order.
func (s *PostgresSource) Entries(ctx context.Context) []faq.Entry {
	rows, err := s.pool.Query(ctx, `
		SELECT question, answer
		FROM faq_entries
		ORDER BY position, id
	`)
	if err != nil {
		s.logger.Warn("faq catalog query failed", "error", err)
		return nil
	}
	defer rows.Close()

	var entries []faq.Entry
	for rows.Next() {
		var entry faq.Entry
		if err := rows.Scan(&entry.Question, &entry.Answer); err != nil {
			s.logger.Warn("faq catalog scan failed", "error", err)
			return nil
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		s.logger.Warn("faq catalog query failed", "error", err)
		return nil
	}
	return sanitize(entries, s.logger)
}

var _ faq.CatalogSource = (*PostgresSource)(nil)
