package feedback

import "time"

// Rating is a thumbs up/down verdict on a bot reply.
type Rating string

const (
	RatingUp   Rating = "up"
	RatingDown Rating = "down"
)

const (
	maxCommentLength     = 1000
	defaultListLimit     = 500
	maxFeedbackSessionID = 64
)

// Feedback is one persisted rating.
type Feedback struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	MessageID *int64    `json:"message_id,omitempty"`
	Rating    Rating    `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Request captures the feedback payload.
type Request struct {
	SessionID string `json:"session_id" binding:"required"`
	MessageID *int64 `json:"message_id"`
	Rating    Rating `json:"rating" binding:"required,oneof=up down"`
	Comment   string `json:"comment" binding:"max=1000"`
}
