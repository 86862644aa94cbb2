package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/yanqian/faq-chatbot/pkg/errors"
)

const tokenIssuer = "faq-chatbot"

type tokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

func (s *service) issueSession(user User, ttl time.Duration) (Session, error) {
	now := time.Now()
	expires := now.Add(ttl)
	claims := tokenClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return Session{}, apperrors.Wrap("auth_error", "failed to sign token", err)
	}
	return Session{Token: signed, ExpiresAt: expires.UTC(), User: toView(user)}, nil
}

// parseToken accepts only HS256 tokens from this issuer that carry an expiry.
func (s *service) parseToken(token string) (Claims, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, apperrors.Wrap("invalid_token", "token validation failed", err)
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Claims{}, apperrors.Wrap("invalid_token", "token subject invalid", err)
	}
	return Claims{UserID: userID, Email: claims.Email, ExpiresAt: claims.ExpiresAt.Time}, nil
}
