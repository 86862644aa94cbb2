package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/yanqian/faq-chatbot/pkg/errors"
)

const minPasswordLength = 8

// Service is the placeholder account API. Only /api/auth/me checks tokens;
// the chat and admin surfaces stay open.
type Service interface {
	Register(ctx context.Context, creds Credentials) (UserView, error)
	Login(ctx context.Context, creds Credentials) (Session, error)
	ValidateToken(ctx context.Context, token string) (Claims, error)
	Profile(ctx context.Context, userID int64) (UserView, error)
	Logout(ctx context.Context, userID int64) error
}

type service struct {
	cfg    Config
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a Service instance.
func NewService(cfg Config, repo Repository, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		logger: logger.With("component", "auth.service"),
	}
}

func (s *service) Register(ctx context.Context, creds Credentials) (UserView, error) {
	email, err := parseEmail(creds.Email)
	if err != nil {
		return UserView{}, err
	}
	if len(creds.Password) < minPasswordLength {
		return UserView{}, apperrors.Wrap("invalid_input", "password must be at least 8 characters", nil)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserView{}, apperrors.Wrap("auth_error", "failed to hash password", err)
	}
	user, err := s.repo.Create(ctx, email, string(hashed))
	if errors.Is(err, ErrEmailExists) {
		return UserView{}, apperrors.Wrap("email_exists", "email already registered", err)
	}
	if err != nil {
		return UserView{}, apperrors.Wrap("auth_error", "failed to create account", err)
	}
	s.logger.Info("account registered", "user_id", user.ID)
	return toView(user), nil
}

// Login checks the password and issues an access token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *service) Login(ctx context.Context, creds Credentials) (Session, error) {
	email, err := parseEmail(creds.Email)
	if err != nil {
		return Session{}, err
	}
	user, found, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return Session{}, apperrors.Wrap("auth_error", "failed to load account", err)
	}
	if !found || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		return Session{}, apperrors.Wrap("invalid_credentials", "invalid email or password", nil)
	}
	return s.issueSession(user, s.cfg.TokenTTL)
}

func (s *service) ValidateToken(_ context.Context, token string) (Claims, error) {
	if strings.TrimSpace(token) == "" {
		return Claims{}, apperrors.Wrap("invalid_token", "token missing", nil)
	}
	return s.parseToken(token)
}

func (s *service) Profile(ctx context.Context, userID int64) (UserView, error) {
	user, found, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return UserView{}, apperrors.Wrap("auth_error", "failed to load account", err)
	}
	if !found {
		return UserView{}, apperrors.Wrap("user_not_found", "user not found", nil)
	}
	return toView(user), nil
}

// Logout is a no-op: tokens are stateless and simply expire.
func (s *service) Logout(_ context.Context, userID int64) error {
	s.logger.Info("account logged out", "user_id", userID)
	return nil
}

func toView(user User) UserView {
	return UserView{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt}
}

func parseEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apperrors.Wrap("invalid_input", "invalid email address", err)
	}
	return email, nil
}
