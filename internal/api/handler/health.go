package handler

import (
	"net/http"

	"github.com/mcoot/eggbreaker/internal/api/response"
	"github.com/mcoot/eggbreaker/internal/services/profile"
	"github.com/mcoot/eggbreaker/internal/services/session"
)

// HealthHandler reports server status
type HealthHandler struct {
	profiles *profile.Service
	sessions *session.Registry
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(profiles *profile.Service, sessions *session.Registry) *HealthHandler {
	return &HealthHandler{
		profiles: profiles,
		sessions: sessions,
	}
}

// Get handles GET /api/v1/health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{
		Status:         "ok",
		RemoteStore:    h.profiles.RemoteConfigured(),
		ActiveSessions: h.sessions.Len(),
	})
}
