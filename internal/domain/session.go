package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Errors returned when a refresh token cannot be renewed.
var (
	ErrSessionNotFound        = errors.New("session not found")
	ErrBlockedSession         = errors.New("blocked session")
	ErrInvalidUser            = errors.New("incorrect session user")
	ErrMismatchedRefreshToken = errors.New("mismatched session token")
	ErrExpiredSession         = errors.New("expired session")
)

// Session is a login of one account. Its refresh token renews access tokens
// until the session expires or gets blocked.
type Session struct {
	ID           uuid.UUID
	Username     string
	RefreshToken string
	UserAgent    string
	ClientIP     string
	IsBlocked    bool
	ExpiresAt    time.Time
	CreatedAt    time.Time
}

// CheckRenewal reports why refreshToken presented by account cannot renew an
// access token at now, or nil if it can.
func (s Session) CheckRenewal(account, refreshToken string, now time.Time) error {
	switch {
	case s.IsBlocked:
		return ErrBlockedSession
	case s.Username != account:
		return ErrInvalidUser
	case s.RefreshToken != refreshToken:
		return ErrMismatchedRefreshToken
	case now.After(s.ExpiresAt):
		return ErrExpiredSession
	}

	return nil
}

// CreateSessionParams holds data needed for Session creation.
type CreateSessionParams struct {
	ID           uuid.UUID
	Username     string
	RefreshToken string
	UserAgent    string
	ClientIP     string
	IsBlocked    bool
	ExpiresAt    time.Time
}
