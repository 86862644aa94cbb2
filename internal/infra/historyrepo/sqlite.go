package historyrepo

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/yanqian/faq-chatbot/internal/domain/chat"
	"github.com/yanqian/faq-chatbot/internal/domain/feedback"
	"github.com/yanqian/faq-chatbot/pkg/util"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore persists chat turns and feedback in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates or opens the database at path and applies the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	// SQLite allows a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// AppendMessage implements chat.Repository.
func (s *SQLiteStore) AppendMessage(ctx context.Context, msg chat.Message) (chat.Message, error) {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = util.NowUTC()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (session_id, sender, message, timestamp)
		VALUES (?, ?, ?, ?)
	`, msg.SessionID, string(msg.Sender), msg.Message, msg.Timestamp)
	if err != nil {
		return chat.Message{}, fmt.Errorf("append message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return chat.Message{}, fmt.Errorf("append message: %w", err)
	}
	msg.ID = id
	return msg, nil
}

// ListSession implements chat.Repository.
func (s *SQLiteStore) ListSession(ctx context.Context, sessionID string) ([]chat.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, sender, message, timestamp
		FROM chat_messages
		WHERE session_id = ?
		ORDER BY id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list session: %w", err)
	}
	return collectMessages(rows)
}

// ListRecentMessages implements chat.Repository.
func (s *SQLiteStore) ListRecentMessages(ctx context.Context, limit int) ([]chat.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, sender, message, timestamp
		FROM chat_messages
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent messages: %w", err)
	}
	return collectMessages(rows)
}

// CreateFeedback implements feedback.Repository.
func (s *SQLiteStore) CreateFeedback(ctx context.Context, fb feedback.Feedback) (feedback.Feedback, error) {
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = util.NowUTC()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (session_id, message_id, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, fb.SessionID, nullableID(fb.MessageID), string(fb.Rating), fb.Comment, fb.CreatedAt)
	if err != nil {
		return feedback.Feedback{}, fmt.Errorf("create feedback: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return feedback.Feedback{}, fmt.Errorf("create feedback: %w", err)
	}
	fb.ID = id
	return fb, nil
}

// ListFeedback implements feedback.Repository.
func (s *SQLiteStore) ListFeedback(ctx context.Context, limit int) ([]feedback.Feedback, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, message_id, rating, comment, created_at
		FROM feedback
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return collectFeedback(rows)
}

// sqlRows adapts *sql.Rows, whose Close returns an error, to rowsScanner.
type sqlRows struct {
	*sql.Rows
}

func (r sqlRows) Close() { _ = r.Rows.Close() }

func collectMessages(rows *sql.Rows) ([]chat.Message, error) {
	return scanMessages(sqlRows{rows})
}

func collectFeedback(rows *sql.Rows) ([]feedback.Feedback, error) {
	return scanFeedbackRows(sqlRows{rows})
}

var (
	_ chat.Repository     = (*SQLiteStore)(nil)
	_ feedback.Repository = (*SQLiteStore)(nil)
)
