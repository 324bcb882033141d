package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/mcoot/eggbreaker/internal/api/middleware"
	"github.com/mcoot/eggbreaker/internal/api/request"
	"github.com/mcoot/eggbreaker/internal/api/response"
	"github.com/mcoot/eggbreaker/internal/model"
	"github.com/mcoot/eggbreaker/internal/services/auth"
	"github.com/mcoot/eggbreaker/internal/services/session"
)

// AuthHandler handles sign-in and session endpoints
type AuthHandler struct {
	authService *auth.Service
	sessions    *session.Registry
	cookieTTL   time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service, sessions *session.Registry, cookieTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		cookieTTL:   cookieTTL,
	}
}

// SignUp handles POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req request.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	client := auth.NewClient(h.authService)
	if _, err := client.SignUp(r.Context(), req.Email, req.Password, req.DisplayName); err != nil {
		WriteError(w, err)
		return
	}

	h.openSession(w, client, http.StatusCreated)
}

// SignIn handles POST /api/v1/auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req request.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Email == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	client := auth.NewClient(h.authService)
	if _, err := client.SignIn(r.Context(), req.Email, req.Password); err != nil {
		WriteError(w, err)
		return
	}

	h.openSession(w, client, http.StatusOK)
}

// Demo handles POST /api/v1/auth/demo
func (h *AuthHandler) Demo(w http.ResponseWriter, r *http.Request) {
	token, manager := h.sessions.Open(auth.NewClient(h.authService))
	manager.EnableDemoMode(r.Context())

	response.SetSessionCookie(w, middleware.SessionCookie, token, h.cookieTTL)
	response.JSON(w, http.StatusCreated, response.SessionFromState(token, manager.State()))
}

// SignOut handles POST /api/v1/auth/signout
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	manager := middleware.MustGetManager(r.Context())
	token := middleware.GetToken(r.Context())

	if err := manager.Logout(r.Context()); err != nil {
		WriteError(w, err)
		return
	}
	if err := h.sessions.Remove(r.Context(), token); err != nil && !errors.Is(err, model.ErrSessionNotFound) {
		WriteError(w, err)
		return
	}

	response.ClearSessionCookie(w, middleware.SessionCookie)
	response.NoContent(w)
}

// Me handles GET /api/v1/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	manager := middleware.MustGetManager(r.Context())
	response.JSON(w, http.StatusOK, response.SessionFromState("", manager.State()))
}

func (h *AuthHandler) openSession(w http.ResponseWriter, client *auth.Client, status int) {
	token, manager := h.sessions.Open(client)

	response.SetSessionCookie(w, middleware.SessionCookie, token, h.cookieTTL)
	response.JSON(w, status, response.SessionFromState(token, manager.State()))
}

// decodeOptional decodes a JSON body, treating an empty body as no input
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
