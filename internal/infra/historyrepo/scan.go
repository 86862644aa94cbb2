package historyrepo

import (
	"database/sql"
	"time"

	"github.com/yanqian/faq-chatbot/internal/domain/chat"
	"github.com/yanqian/faq-chatbot/internal/domain/feedback"
)

type rowScanner interface {
	Scan(dest ...any) error
}

// rowsScanner is satisfied by pgx.Rows and by sqlRows.
type rowsScanner interface {
	rowScanner
	Next() bool
	Err() error
	Close()
}

func scanMessages(rows rowsScanner) ([]chat.Message, error) {
	defer rows.Close()
	out := make([]chat.Message, 0)
	for rows.Next() {
		var (
			msg    chat.Message
			sender string
			ts     time.Time
		)
		if err := rows.Scan(&msg.ID, &msg.SessionID, &sender, &msg.Message, &ts); err != nil {
			return nil, err
		}
		msg.Sender = chat.Sender(sender)
		msg.Timestamp = ts.UTC()
		out = append(out, msg)
	}
	return out, rows.Err()
}

func scanFeedbackRows(rows rowsScanner) ([]feedback.Feedback, error) {
	defer rows.Close()
	out := make([]feedback.Feedback, 0)
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}

func scanFeedback(row rowScanner) (feedback.Feedback, error) {
	var (
		fb        feedback.Feedback
		messageID sql.NullInt64
		rating    string
		created   time.Time
	)
	if err := row.Scan(&fb.ID, &fb.SessionID, &messageID, &rating, &fb.Comment, &created); err != nil {
		return feedback.Feedback{}, err
	}
	if messageID.Valid {
		id := messageID.Int64
		fb.MessageID = &id
	}
	fb.Rating = feedback.Rating(rating)
	fb.CreatedAt = created.UTC()
	return fb, nil
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
