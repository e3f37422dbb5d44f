package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/asmelnikov/docgen-backend/internal/service/auth"
	"github.com/asmelnikov/docgen-backend/internal/transport/middleware"
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
}

// AuthHandler serves auth REST endpoints.
type AuthHandler struct {
	svc authService
	log *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: logger.With("handler", "auth")}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	ExecutorID string `json:"executorId"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Surname    string `json:"surname"`
}

type authResponse struct {
	AccessToken string       `json:"accessToken"`
	User        userResponse `json:"user"`
}

type userResponse struct {
	ID          string `json:"id"`
	ExecutorID  string `json:"executorId"`
	Username    string `json:"username"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Surname     string `json:"surname,omitempty"`
	IsSuperuser bool   `json:"isSuperuser"`
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.svc.Login(r.Context(), auth.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(result))
}

// Register handles POST /auth/register. Superuser only.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := middleware.RequireSuperuser(r.Context()); err != nil {
		respondError(h.log, w, r, err)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	executorID, err := uuid.Parse(req.ExecutorID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid executorId")
		return
	}

	result, err := h.svc.Register(r.Context(), auth.RegisterInput{
		ExecutorID: executorID,
		Username:   req.Username,
		Password:   req.Password,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Surname:    req.Surname,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAuthResponse(result))
}

func toAuthResponse(result *auth.AuthResult) authResponse {
	return authResponse{
		AccessToken: result.AccessToken,
		User: userResponse{
			ID:          result.User.ID.String(),
			ExecutorID:  result.User.ExecutorID.String(),
			Username:    result.User.Username,
			FirstName:   result.User.FirstName,
			LastName:    result.User.LastName,
			Surname:     result.User.Surname,
			IsSuperuser: result.User.IsSuperuser,
		},
	}
}
