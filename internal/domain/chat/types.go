package chat

import (
	"time"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
)

// Sender identifies who produced a chat turn.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one persisted chat turn.
type Message struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Sender    Sender    `json:"sender"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Request carries a user utterance, which may be empty or blank. An empty
// SessionID starts a new session.
type Request struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

// Response is returned to the HTTP transport.
type Response struct {
	SessionID       string      `json:"session_id"`
	Response        string      `json:"response"`
	Outcome         faq.Outcome `json:"outcome"`
	MatchedQuestion string      `json:"matched_question,omitempty"`
	Timestamp       time.Time   `json:"timestamp"`
}
