package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"englisharcade/internal/models"
	"englisharcade/internal/security"
	"englisharcade/internal/service"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const UserContextKey ContextKey = "user"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	authService *service.AuthService
	authLimiter *security.RateLimiter
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *service.AuthService) *Middleware {
	return &Middleware{
		authService: authService,
		authLimiter: security.NewRateLimiter(10, time.Minute),
	}
}

// RateLimit throttles requests per client IP. Used on the login and
// register endpoints to slow down credential stuffing.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.authLimiter.Allow(security.GetClientIP(r)) {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// RequireAuth is middleware that requires a valid session cookie or a
// Bearer token. Browser requests get redirected to the login page; API
// requests get a 401.
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := m.resolveUser(w, r)
		if user == nil {
			if wantsJSON(r) {
				http.Error(w, ErrUnauthorized, http.StatusUnauthorized)
			} else {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
			}
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// OptionalAuth attaches the user to the context when a valid session
// or token is present, and lets the request through either way.
func (m *Middleware) OptionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if user := m.resolveUser(w, r); user != nil {
			r = r.WithContext(context.WithValue(r.Context(), UserContextKey, user))
		}
		next(w, r)
	}
}

func (m *Middleware) resolveUser(w http.ResponseWriter, r *http.Request) *models.User {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		user, err := m.authService.ValidateToken(strings.TrimPrefix(auth, "Bearer "))
		if err == nil {
			return user
		}
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}

	user, err := m.authService.ValidateSession(cookie.Value)
	if err != nil {
		// Clear invalid cookie
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		return nil
	}

	return user
}

func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/functions/") || strings.HasPrefix(r.URL.Path, "/records/") {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetUserFromContext retrieves the user from the request context
func GetUserFromContext(ctx context.Context) *models.User {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	if !ok {
		return nil
	}
	return user
}
