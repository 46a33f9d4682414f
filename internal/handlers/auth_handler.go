package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"englisharcade/internal/security"
	"englisharcade/internal/service"
	"englisharcade/internal/utils"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// AuthHandler handles registration, login and the Google OAuth flow.
type AuthHandler struct {
	authService  *service.AuthService
	emailService *service.EmailService
	googleConfig *oauth2.Config
}

// NewAuthHandler creates a new auth handler. googleConfig may be nil
// when Google login is not configured.
func NewAuthHandler(authService *service.AuthService, emailService *service.EmailService, googleConfig *oauth2.Config) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		emailService: emailService,
		googleConfig: googleConfig,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// readCredentials accepts either a JSON body or a classic form post.
func readCredentials(r *http.Request) (credentialsRequest, error) {
	var req credentialsRequest
	if r.Header.Get("Content-Type") == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&req)
		return req, err
	}
	if err := r.ParseForm(); err != nil {
		return req, err
	}
	req.Email = r.FormValue("email")
	req.Password = r.FormValue("password")
	req.Name = r.FormValue("name")
	return req, nil
}

// Register creates a new teacher account and logs it in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req, err := readCredentials(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "register decode failed", err)
		return
	}

	user, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err == service.ErrEmailTaken {
		http.Error(w, "An account with that email already exists", http.StatusConflict)
		return
	}
	if err != nil {
		if _, ok := err.(utils.ValidationError); ok {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "Failed to create account", "register failed", err)
		return
	}

	if h.emailService != nil && h.emailService.IsEnabled() {
		go func(email, name string) {
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := h.emailService.SendWelcomeEmail(ctx, email, name); err != nil {
				log.Printf("Warning: failed to send welcome email to %s: %v", email, err)
			}
		}(user.Email, user.Name)
	}

	session, _, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to log in", "post-register login failed", err)
		return
	}

	h.finishLogin(w, r, session.ID, session.ExpiresAt, user.ID)
}

// Login authenticates with email and password.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := readCredentials(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "login decode failed", err)
		return
	}

	session, user, err := h.authService.Login(req.Email, req.Password)
	if err == service.ErrInvalidCredentials {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to log in", "login failed", err)
		return
	}

	h.finishLogin(w, r, session.ID, session.ExpiresAt, user.ID)
}

func (h *AuthHandler) finishLogin(w http.ResponseWriter, r *http.Request, sessionID string, expiresAt time.Time, userID int64) {
	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, sessionID, expiresAt))

	if wantsJSON(r) || r.Header.Get("Content-Type") == "application/json" {
		user, err := h.authService.ValidateSession(sessionID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "session validate failed", err)
			return
		}
		token, err := h.authService.IssueToken(user)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "token issue failed", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"user_id": userID,
			"token":   token,
		})
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout invalidates the current session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(cookie.Value); err != nil {
			log.Printf("logout failed: %v", err)
		}
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// StartGoogle begins the Google OAuth flow.
func (h *AuthHandler) StartGoogle(w http.ResponseWriter, r *http.Request) {
	if h.googleConfig == nil || h.googleConfig.ClientID == "" {
		http.Error(w, "Google login is not configured", http.StatusBadRequest)
		return
	}

	state := utils.GenerateSessionID()
	http.SetCookie(w, security.CreateSessionCookie(r, "oauth_state", state, time.Now().Add(10*time.Minute)))

	authURL := h.googleConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
	http.Redirect(w, r, authURL, http.StatusFound)
}

// GoogleCallback completes the Google OAuth flow.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.googleConfig == nil || h.googleConfig.ClientID == "" {
		http.Error(w, "Google login is not configured", http.StatusBadRequest)
		return
	}

	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Missing authorization code", http.StatusBadRequest)
		return
	}

	stateCookie, err := r.Cookie("oauth_state")
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, "oauth_state"))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	token, err := h.googleConfig.Exchange(ctx, code)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to exchange OAuth code", "oauth exchange failed", err)
		return
	}

	info, err := fetchGoogleUser(ctx, token)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to fetch Google profile", "google userinfo failed", err)
		return
	}

	session, _, err := h.authService.GoogleLogin(ctx, h.emailService, info.Subject, info.Email, info.Name)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Google login failed", "google login failed", err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type googleUserInfo struct {
	Subject string
	Email   string
	Name    string
}

func fetchGoogleUser(ctx context.Context, token *oauth2.Token) (googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return googleUserInfo{}, fmt.Errorf("failed to fetch Google user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return googleUserInfo{}, fmt.Errorf("google user info returned %d", resp.StatusCode)
	}

	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return googleUserInfo{}, fmt.Errorf("failed to parse Google user info: %w", err)
	}

	return googleUserInfo{Subject: payload.ID, Email: payload.Email, Name: payload.Name}, nil
}
