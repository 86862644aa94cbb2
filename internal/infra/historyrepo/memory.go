package historyrepo

import (
	"context"
	"sync"

	"github.com/yanqian/faq-chatbot/internal/domain/chat"
	"github.com/yanqian/faq-chatbot/internal/domain/feedback"
	"github.com/yanqian/faq-chatbot/pkg/util"
)

// MemoryStore keeps chat turns and feedback in process memory for tests/dev.
type MemoryStore struct {
	mu        sync.RWMutex
	messages  []chat.Message
	feedback  []feedback.Feedback
	messageID int64
	feedID    int64
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// AppendMessage implements chat.Repository.
func (s *MemoryStore) AppendMessage(_ context.Context, msg chat.Message) (chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messageID++
	msg.ID = s.messageID
	if msg.Timestamp.IsZero() {
		msg.Timestamp = util.NowUTC()
	}
	s.messages = append(s.messages, msg)
	return msg, nil
}

// ListSession implements chat.Repository.
func (s *MemoryStore) ListSession(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]chat.Message, 0)
	for _, msg := range s.messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	return out, nil
}

// ListRecentMessages implements chat.Repository.
func (s *MemoryStore) ListRecentMessages(_ context.Context, limit int) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]chat.Message, 0, min(limit, len(s.messages)))
	for i := len(s.messages) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.messages[i])
	}
	return out, nil
}

// CreateFeedback implements feedback.Repository.
func (s *MemoryStore) CreateFeedback(_ context.Context, fb feedback.Feedback) (feedback.Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedID++
	fb.ID = s.feedID
	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = util.NowUTC()
	}
	s.feedback = append(s.feedback, fb)
	return fb, nil
}

// ListFeedback implements feedback.Repository.
func (s *MemoryStore) ListFeedback(_ context.Context, limit int) ([]feedback.Feedback, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]feedback.Feedback, 0, min(limit, len(s.feedback)))
	for i := len(s.feedback) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.feedback[i])
	}
	return out, nil
}

var (
	_ chat.Repository     = (*MemoryStore)(nil)
	_ feedback.Repository = (*MemoryStore)(nil)
)
