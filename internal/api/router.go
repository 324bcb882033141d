package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/eggbreaker/internal/api/apierr"
	"github.com/mcoot/eggbreaker/internal/api/handler"
	"github.com/mcoot/eggbreaker/internal/api/middleware"
	httpmiddleware "github.com/mcoot/eggbreaker/internal/middleware"
	"github.com/mcoot/eggbreaker/internal/services/auth"
	"github.com/mcoot/eggbreaker/internal/services/leaderboard"
	"github.com/mcoot/eggbreaker/internal/services/profile"
	"github.com/mcoot/eggbreaker/internal/services/session"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	LeaderboardService *leaderboard.Service
	ProfileService     *profile.Service
	Sessions           *session.Registry
	// SessionDuration sets the session cookie lifetime
	SessionDuration time.Duration
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService, cfg.Sessions, cfg.SessionDuration)
	gameHandler := handler.NewGameHandler(cfg.LeaderboardService)
	healthHandler := handler.NewHealthHandler(cfg.ProfileService, cfg.Sessions)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.Sessions)
	loggingMiddleware := httpmiddleware.Logging(cfg.Logger)
	recoveryMiddleware := httpmiddleware.Recovery(cfg.Logger, apiPanicHandler)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(httpmiddleware.RequestID)
	api.Use(loggingMiddleware)
	api.Use(recoveryMiddleware)

	// Sign-in routes (no session required)
	api.HandleFunc("/auth/signup", authHandler.SignUp).Methods(http.MethodPost)
	api.HandleFunc("/auth/signin", authHandler.SignIn).Methods(http.MethodPost)
	api.HandleFunc("/auth/demo", authHandler.Demo).Methods(http.MethodPost)

	// Public game data
	api.HandleFunc("/leaderboard", gameHandler.Leaderboard).Methods(http.MethodGet)
	api.HandleFunc("/levels/{level}", gameHandler.Level).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler.Get).Methods(http.MethodGet)

	// Session routes
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/auth/signout", authHandler.SignOut).Methods(http.MethodPost)
	protected.HandleFunc("/me", authHandler.Me).Methods(http.MethodGet)
	protected.HandleFunc("/tap", gameHandler.Tap).Methods(http.MethodPost)

	return r
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
