package repository

import (
	"database/sql"
	"fmt"
	"time"

	"englisharcade/internal/database"
	"englisharcade/internal/models"
)

// UserRepository handles database operations for teacher accounts and
// their login sessions.
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user. The first user ever created becomes
// an admin.
func (r *UserRepository) CreateUser(email, passwordHash, name, oauthSubject string) (*models.User, error) {
	var userCount int
	countQuery := "SELECT COUNT(*) FROM users"
	err := r.db.QueryRow(countQuery).Scan(&userCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	isAdmin := userCount == 0

	query := `
		INSERT INTO users (email, password_hash, name, oauth_subject, is_admin)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, email, passwordHash, name, oauthSubject, isAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user := &models.User{
		ID:           id,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		OAuthSubject: oauthSubject,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now(),
	}

	return user, nil
}

// GetUserByEmail retrieves a user by email address
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, name, oauth_subject, is_admin, created_at
		FROM users
		WHERE email = ?
	`
	return r.scanUser(r.db.QueryRow(query, email))
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, name, oauth_subject, is_admin, created_at
		FROM users
		WHERE id = ?
	`
	return r.scanUser(r.db.QueryRow(query, id))
}

// GetUserByOAuthSubject retrieves a user by their Google subject claim.
func (r *UserRepository) GetUserByOAuthSubject(subject string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, name, oauth_subject, is_admin, created_at
		FROM users
		WHERE oauth_subject = ?
	`
	return r.scanUser(r.db.QueryRow(query, subject))
}

// SetOAuthSubject links an existing account to a Google subject.
func (r *UserRepository) SetOAuthSubject(userID int64, subject string) error {
	query := "UPDATE users SET oauth_subject = ? WHERE id = ?"
	_, err := r.db.Exec(query, subject, userID)
	if err != nil {
		return fmt.Errorf("failed to update oauth subject: %w", err)
	}
	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.OAuthSubject,
		&user.IsAdmin,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// CreateSession creates a new login session for a user
func (r *UserRepository) CreateSession(sessionID string, userID int64, expiresAt time.Time) (*models.AuthSession, error) {
	query := `
		INSERT INTO auth_sessions (id, user_id, expires_at)
		VALUES (?, ?, ?)
	`
	_, err := r.db.Exec(query, sessionID, userID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	session := &models.AuthSession{
		ID:        sessionID,
		UserID:    userID,
		CreatedAt: time.Now(),
		ExpiresAt: expiresAt,
	}

	return session, nil
}

// GetSession retrieves a login session by ID
func (r *UserRepository) GetSession(sessionID string) (*models.AuthSession, error) {
	query := `
		SELECT id, user_id, created_at, expires_at
		FROM auth_sessions
		WHERE id = ?
	`
	session := &models.AuthSession{}
	err := r.db.QueryRow(query, sessionID).Scan(
		&session.ID,
		&session.UserID,
		&session.CreatedAt,
		&session.ExpiresAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// DeleteSession removes a login session from the database
func (r *UserRepository) DeleteSession(sessionID string) error {
	query := "DELETE FROM auth_sessions WHERE id = ?"
	_, err := r.db.Exec(query, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all expired login sessions
func (r *UserRepository) DeleteExpiredSessions() error {
	query := "DELETE FROM auth_sessions WHERE expires_at < ?"
	_, err := r.db.Exec(query, time.Now())
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return nil
}
