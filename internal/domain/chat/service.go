package chat

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/yanqian/faq-chatbot/internal/domain/faq"
	apperrors "github.com/yanqian/faq-chatbot/pkg/errors"
	"github.com/yanqian/faq-chatbot/pkg/util"
)

// Service exposes the chat workflows.
type Service interface {
	Send(ctx context.Context, req Request) (Response, error)
	History(ctx context.Context, sessionID string) ([]Message, error)
	Recent(ctx context.Context, limit int) ([]Message, error)
}

type service struct {
	cfg    Config
	faq    faq.Service
	repo   Repository
	logger *slog.Logger
}

// NewService wires up the chat domain.
func NewService(cfg Config, faqSvc faq.Service, repo Repository, logger *slog.Logger) Service {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaultHistoryLimit
	}
	return &service{
		cfg:    cfg,
		faq:    faqSvc,
		repo:   repo,
		logger: logger.With("component", "chat.service"),
	}
}

// Send answers the message and stores both turns. Storage failures are logged
// and never prevent the reply from being returned. Only an oversized session
// id is rejected.
func (s *service) Send(ctx context.Context, req Request) (Response, error) {
	sessionID, err := resolveSessionID(req.SessionID)
	if err != nil {
		return Response{}, err
	}

	// blank utterances still get an answer but leave no user turn behind
	text := strings.TrimSpace(req.Message)
	if text != "" {
		userTurn := Message{SessionID: sessionID, Sender: SenderUser, Message: text, Timestamp: util.NowUTC()}
		if _, err := s.repo.AppendMessage(ctx, userTurn); err != nil {
			s.logger.Error("persist user message failed", "session_id", sessionID, "error", err)
		}
	}

	result := s.faq.Match(ctx, text)

	botTurn := Message{SessionID: sessionID, Sender: SenderBot, Message: result.Answer, Timestamp: util.NowUTC()}
	if _, err := s.repo.AppendMessage(ctx, botTurn); err != nil {
		s.logger.Error("persist bot message failed", "session_id", sessionID, "error", err)
	}

	return Response{
		SessionID:       sessionID,
		Response:        result.Answer,
		Outcome:         result.Outcome,
		MatchedQuestion: result.MatchedQuestion,
		Timestamp:       botTurn.Timestamp,
	}, nil
}

func (s *service) History(ctx context.Context, sessionID string) ([]Message, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, apperrors.Wrap("invalid_input", "session id cannot be empty", nil)
	}
	msgs, err := s.repo.ListSession(ctx, sessionID)
	if err != nil {
		return nil, apperrors.Wrap("chat_error", "failed to load chat history", err)
	}
	return msgs, nil
}

// Recent lists the newest messages across all sessions, newest first.
func (s *service) Recent(ctx context.Context, limit int) ([]Message, error) {
	msgs, err := s.repo.ListRecentMessages(ctx, util.ClampLimit(limit, s.cfg.HistoryLimit))
	if err != nil {
		return nil, apperrors.Wrap("chat_error", "failed to load chat history", err)
	}
	return msgs, nil
}

func resolveSessionID(raw string) (string, error) {
	sessionID := strings.TrimSpace(raw)
	if sessionID == "" {
		return uuid.NewString(), nil
	}
	if len(sessionID) > maxSessionIDLength {
		return "", apperrors.Wrap("invalid_input", "session id is too long", nil)
	}
	return sessionID, nil
}
