package historyrepo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/faq-chatbot/internal/domain/chat"
	"github.com/yanqian/faq-chatbot/internal/domain/feedback"
	"github.com/yanqian/faq-chatbot/pkg/util"
)

// PostgresStore persists chat turns and feedback using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs the store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// AppendMessage inserts a chat turn.
func (s *PostgresStore) AppendMessage(ctx context.Context, msg chat.Message) (chat.Message, error) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = util.NowUTC()
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO chat_messages (session_id, sender, message, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, msg.SessionID, string(msg.Sender), msg.Message, msg.Timestamp).Scan(&msg.ID)
	if err != nil {
		return chat.Message{}, fmt.Errorf("append message: %w", err)
	}
	return msg, nil
}

// ListSession returns a session's turns in chronological order.
func (s *PostgresStore) ListSession(ctx context.Context, sessionID string) ([]chat.Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, session_id, sender, message, timestamp
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list session: %w", err)
	}
	return scanMessages(rows)
}

// ListRecentMessages returns the newest turns across sessions.
func (s *PostgresStore) ListRecentMessages(ctx context.Context, limit int) ([]chat.Message, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, session_id, sender, message, timestamp
		FROM chat_messages
		ORDER BY id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent messages: %w", err)
	}
	return scanMessages(rows)
}

// CreateFeedback inserts a feedback row.
func (s *PostgresStore) CreateFeedback(ctx context.Context, fb feedback.Feedback) (feedback.Feedback, error) {
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = util.NowUTC()
	}
	row := s.pool.QueryRow(ctx, `
		INSERT INTO feedback (session_id, message_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, session_id, message_id, rating, comment, created_at
	`, fb.SessionID, nullableID(fb.MessageID), string(fb.Rating), fb.Comment, fb.CreatedAt)
	created, err := scanFeedback(row)
	if err != nil {
		return feedback.Feedback{}, fmt.Errorf("create feedback: %w", err)
	}
	return created, nil
}

// ListFeedback returns the newest feedback first.
func (s *PostgresStore) ListFeedback(ctx context.Context, limit int) ([]feedback.Feedback, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, session_id, message_id, rating, comment, created_at
		FROM feedback
		ORDER BY id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return scanFeedbackRows(rows)
}

var (
	_ chat.Repository     = (*PostgresStore)(nil)
	_ feedback.Repository = (*PostgresStore)(nil)
)
