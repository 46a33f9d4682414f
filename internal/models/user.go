package models

import "time"

// User is a teacher account. Either PasswordHash or OAuthSubject is
// set, depending on how the account was created.
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	OAuthSubject string
	IsAdmin      bool
	CreatedAt    time.Time
}

// AuthSession is a server-side login session for a teacher account.
type AuthSession struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the session is past its expiry time.
func (s *AuthSession) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
