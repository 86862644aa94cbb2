package feedback

import "context"

// Repository persists feedback.
type Repository interface {
	CreateFeedback(ctx context.Context, fb Feedback) (Feedback, error)
	ListFeedback(ctx context.Context, limit int) ([]Feedback, error)
}
