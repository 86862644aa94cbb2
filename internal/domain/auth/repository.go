package auth

import (
	"context"
	"errors"
)

// ErrEmailExists is returned by Create when the email is already registered.
var ErrEmailExists = errors.New("email already exists")

// Repository abstracts account persistence. Emails are stored lowercased.
type Repository interface {
	Create(ctx context.Context, email, passwordHash string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	GetByID(ctx context.Context, id int64) (User, bool, error)
}
