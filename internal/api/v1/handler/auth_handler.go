package handler

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/ratelimit"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Passwords rejected regardless of length.
var weakPasswords = map[string]bool{
	"password": true,
	"123456":   true,
	"12345678": true,
	"qwerty":   true,
	"abc123":   true,
}

// AuthHandler handles signup and login
type AuthHandler struct {
	authService service.AuthService
	validate    *validator.Validate
	limiter     ratelimit.Limiter
	logger      zerolog.Logger
}

func NewAuthHandler(authService service.AuthService, validate *validator.Validate, limiter ratelimit.Limiter, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, validate: validate, limiter: limiter, logger: logger}
}

// RegisterRoutes mounts auth routes. No auth middleware here.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("/auth/signup", http.HandlerFunc(h.signup))
	mux.Handle("/auth/login", http.HandlerFunc(h.login))
}

// signup godoc
// @Summary Create an account
// @Description Creates a new account. Rate-limited per client IP.
// @Tags auth
// @Accept json
// @Produce json
// @Param signup body dto.SignupRequestDTO true "Signup request"
// @Success 201 {object} dto.UserResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 409 {string} string "Email already registered"
// @Failure 429 {string} string "Too many signup attempts"
// @Router /auth/signup [post]
func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	ip := clientIP(r)
	if !h.limiter.Allow(ip) {
		h.logger.Warn().Str("ip", ip).Msg("Signup rate limit exceeded")
		http.Error(w, "Too many signup attempts. Please try again later.", http.StatusTooManyRequests)
		return
	}

	var req dto.SignupRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	if weakPasswords[strings.ToLower(req.Password)] {
		http.Error(w, "Password is too weak. Please choose a stronger password.", http.StatusBadRequest)
		return
	}

	user, err := h.authService.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyRegistered):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, "Failed to create user: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	resp := dto.UserResponseDTO{
		UserID:    user.UserID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// login godoc
// @Summary Log in
// @Description Verifies credentials and returns a session token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequestDTO true "Login request"
// @Success 200 {object} dto.AuthResponseDTO
// @Failure 400 {string} string "Invalid JSON payload or validation failed"
// @Failure 401 {string} string "Invalid email or password"
// @Router /auth/login [post]
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			http.Error(w, err.Error(), http.StatusUnauthorized)
		default:
			http.Error(w, "Failed to log in: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	resp := dto.AuthResponseDTO{
		Token: token,
		User: dto.UserResponseDTO{
			UserID:    user.UserID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// clientIP prefers the first X-Forwarded-For hop, falling back to the
// connection's remote address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
