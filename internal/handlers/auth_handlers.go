package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/sereneapp/serene/internal/dtos"
	"github.com/sereneapp/serene/internal/middleware"
	"github.com/sereneapp/serene/internal/services/user_services"
)

const authCookieName = "auth_token"

// AuthHandler holds the dependencies for authentication handlers.
type AuthHandler struct {
	UserService *user_services.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *user_services.UserService) *AuthHandler {
	return &AuthHandler{UserService: service}
}

// Register handles new user registrations.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)

	user, err := h.UserService.Register(r.Context(), username, password)
	if err != nil {
		log.Printf("Registration error: %v", err)
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, dtos.FromDomain(*user))
}

// Login validates user credentials and sets the auth cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dtos.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		writeError(w, "Username and password are required.", http.StatusBadRequest)
		return
	}

	user, token, err := h.UserService.Login(r.Context(), username, password)
	if err != nil {
		log.Printf("Login error: %v", err)
		writeError(w, "Invalid username or password.", http.StatusUnauthorized)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    token,
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HttpOnly: true,
		Secure:   true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, dtos.FromDomain(*user))
}

// Logout clears the auth cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(uint)
	if !ok {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.UserService.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, "Could not retrieve user", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dtos.FromDomain(*user))
}
