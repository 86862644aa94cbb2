package chat

import "context"

// Repository persists chat turns.
type Repository interface {
	AppendMessage(ctx context.Context, msg Message) (Message, error)
	ListSession(ctx context.Context, sessionID string) ([]Message, error)
	ListRecentMessages(ctx context.Context, limit int) ([]Message, error)
}
