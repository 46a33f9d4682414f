package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"englisharcade/internal/models"
	"englisharcade/internal/repository"
	"englisharcade/internal/security"
	"englisharcade/internal/utils"
)

var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionExpired     = errors.New("session expired")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo        *repository.UserRepository
	jwtSecret       []byte
	sessionDuration time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, sessionDuration time.Duration) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		jwtSecret:       []byte(jwtSecret),
		sessionDuration: sessionDuration,
	}
}

// Register creates a new teacher account
func (s *AuthService) Register(email, password, name string) (*models.User, error) {
	if err := utils.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, err
	}
	if err := utils.ValidateName(name); err != nil {
		return nil, err
	}

	existingUser, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.CreateUser(email, passwordHash, name, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and creates a session
func (s *AuthService) Login(email, password string) (*models.AuthSession, *models.User, error) {
	user, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}

	if user.PasswordHash == "" || !security.CheckPassword(password, user.PasswordHash) {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := s.createSession(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return session, user, nil
}

// GoogleLogin authenticates or creates a user from a verified Google
// identity. Accounts that registered with a password and share the
// email address get linked to the Google subject on first use.
func (s *AuthService) GoogleLogin(ctx context.Context, emailService *EmailService, subject, email, name string) (*models.AuthSession, *models.User, error) {
	if subject == "" {
		return nil, nil, errors.New("missing oauth subject")
	}
	if err := utils.ValidateEmail(email); err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.GetUserByOAuthSubject(subject)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to lookup oauth user: %w", err)
	}

	if user == nil {
		existingUser, err := s.userRepo.GetUserByEmail(email)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to check existing user: %w", err)
		}
		if existingUser != nil {
			if existingUser.OAuthSubject != "" && existingUser.OAuthSubject != subject {
				return nil, nil, ErrEmailTaken
			}
			if err := s.userRepo.SetOAuthSubject(existingUser.ID, subject); err != nil {
				return nil, nil, fmt.Errorf("failed to link oauth subject: %w", err)
			}
			existingUser.OAuthSubject = subject
			user = existingUser
		} else {
			if name == "" {
				name = strings.Split(email, "@")[0]
			}
			newUser, err := s.userRepo.CreateUser(email, "", name, subject)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to create oauth user: %w", err)
			}
			user = newUser

			if emailService != nil && emailService.IsEnabled() {
				if err := emailService.SendWelcomeEmail(ctx, user.Email, user.Name); err != nil {
					log.Printf("Warning: failed to send welcome email to %s: %v", user.Email, err)
				}
			}
		}
	}

	session, err := s.createSession(user.ID)
	if err != nil {
		return nil, nil, err
	}

	return session, user, nil
}

func (s *AuthService) createSession(userID int64) (*models.AuthSession, error) {
	sessionID := utils.GenerateSessionID()
	expiresAt := time.Now().Add(s.sessionDuration)

	session, err := s.userRepo.CreateSession(sessionID, userID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// ValidateSession checks if a session is valid and returns the associated user
func (s *AuthService) ValidateSession(sessionID string) (*models.User, error) {
	session, err := s.userRepo.GetSession(sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		_ = s.userRepo.DeleteSession(sessionID)
		return nil, ErrSessionExpired
	}

	user, err := s.userRepo.GetUserByID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrSessionNotFound
	}

	return user, nil
}

// Logout invalidates a session
func (s *AuthService) Logout(sessionID string) error {
	if err := s.userRepo.DeleteSession(sessionID); err != nil {
		return fmt.Errorf("failed to logout: %w", err)
	}
	return nil
}

// CleanupExpiredSessions removes expired sessions from the database
func (s *AuthService) CleanupExpiredSessions() error {
	if err := s.userRepo.DeleteExpiredSessions(); err != nil {
		return fmt.Errorf("failed to cleanup sessions: %w", err)
	}
	return nil
}

// apiClaims is the JWT payload issued for API clients.
type apiClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// IssueToken signs a JWT for a user so API clients can authenticate
// without a cookie session.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := apiClaims{
		Email: user.Email,
		Name:  user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses a JWT and returns the user it names.
func (s *AuthService) ValidateToken(tokenString string) (*models.User, error) {
	claims := &apiClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	var userID int64
	if _, err := fmt.Sscanf(claims.Subject, "%d", &userID); err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	return user, nil
}
