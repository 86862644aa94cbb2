package auth

import "time"

// Config drives the placeholder authentication.
type Config struct {
	Secret   string
	TokenTTL time.Duration
}

// User represents a persisted account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Credentials is the register and login payload.
type Credentials struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Session is a signed access token for one account.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserView  `json:"user"`
}

// UserView is the public shape of an account.
type UserView struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Claims are extracted from a validated token.
type Claims struct {
	UserID    int64
	Email     string
	ExpiresAt time.Time
}
