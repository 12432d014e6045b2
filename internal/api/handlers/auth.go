package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/deepakUNO/Kindle-Server/internal/api/middleware"
	"github.com/deepakUNO/Kindle-Server/internal/config"
	"github.com/deepakUNO/Kindle-Server/internal/domain"
	"github.com/deepakUNO/Kindle-Server/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

type RegisterRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User      *domain.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.UserName == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "User name, email and password are required", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		UserName: req.UserName,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
		Address:  req.Address,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.setAuthCookie(w, result.Token, result.ExpiresIn)
	writeJSON(w, http.StatusCreated, AuthResponse{
		User:      result.User,
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	h.setAuthCookie(w, result.Token, result.ExpiresIn)
	writeJSON(w, http.StatusOK, AuthResponse{
		User:      result.User,
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), user.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	h.setAuthCookie(w, "", -1)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// setAuthCookie mirrors the token lifetime onto an HTTP-only cookie so
// browser clients stay in sync with token expiry.
func (h *AuthHandler) setAuthCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AuthCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
