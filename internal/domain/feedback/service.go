package feedback

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	apperrors "github.com/yanqian/faq-chatbot/pkg/errors"
	"github.com/yanqian/faq-chatbot/pkg/util"
)

// Service captures and lists user feedback.
type Service interface {
	Submit(ctx context.Context, req Request) (Feedback, error)
	List(ctx context.Context, limit int) ([]Feedback, error)
}

type service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a Service instance.
func NewService(repo Repository, logger *slog.Logger) Service {
	return &service{repo: repo, logger: logger.With("component", "feedback.service")}
}

func (s *service) Submit(ctx context.Context, req Request) (Feedback, error) {
	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return Feedback{}, apperrors.Wrap("invalid_input", "session id cannot be empty", nil)
	}
	if len(sessionID) > maxFeedbackSessionID {
		return Feedback{}, apperrors.Wrap("invalid_input", "session id is too long", nil)
	}
	rating := Rating(strings.ToLower(strings.TrimSpace(string(req.Rating))))
	if rating != RatingUp && rating != RatingDown {
		return Feedback{}, apperrors.Wrap("invalid_input", "rating must be up or down", nil)
	}
	comment := strings.TrimSpace(req.Comment)
	if utf8.RuneCountInString(comment) > maxCommentLength {
		return Feedback{}, apperrors.Wrap("invalid_input", "comment is too long", nil)
	}

	fb, err := s.repo.CreateFeedback(ctx, Feedback{
		SessionID: sessionID,
		MessageID: req.MessageID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: util.NowUTC(),
	})
	if err != nil {
		return Feedback{}, apperrors.Wrap("feedback_error", "failed to save feedback", err)
	}
	s.logger.Info("feedback received", "session_id", sessionID, "rating", rating)
	return fb, nil
}

func (s *service) List(ctx context.Context, limit int) ([]Feedback, error) {
	items, err := s.repo.ListFeedback(ctx, util.ClampLimit(limit, defaultListLimit))
	if err != nil {
		return nil, apperrors.Wrap("feedback_error", "failed to load feedback", err)
	}
	return items, nil
}
