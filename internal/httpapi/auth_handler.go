package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mtz196822-maker/digistore-araby/internal/backend"
	"github.com/mtz196822-maker/digistore-araby/internal/domain"
)

// Auth is the credential slice of the backend.
type Auth interface {
	SignIn(ctx context.Context, email, password string) (*backend.Session, error)
	SignOut(ctx context.Context) error
}

// Sessions exposes the locally cached identity.
type Sessions interface {
	CurrentUser() *domain.User
	IsAuthenticated() bool
}

type AuthHandler struct {
	auth     Auth
	sessions Sessions
	timeout  time.Duration
	logger   zerolog.Logger
}

func NewAuthHandler(auth Auth, sessions Sessions, timeout time.Duration, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		timeout:  timeout,
		logger:   logger,
	}
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "missing_credentials", "email and password are required")
		return
	}

	session, err := h.auth.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.Warn().Err(err).Str("request_id", getRequestID(r.Context())).Msg("sign-in failed")
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user_id":    session.UserID,
		"expires_at": session.ExpiresAt,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.auth.SignOut(ctx); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me reports the cached profile, which may lag a just-completed
// sign-in while the profile fetch is still in flight.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := h.sessions.CurrentUser()
	if user == nil {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "no active session")
		return
	}
	respondJSON(w, http.StatusOK, user)
}
