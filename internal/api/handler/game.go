package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/eggbreaker/internal/api/middleware"
	"github.com/mcoot/eggbreaker/internal/api/request"
	"github.com/mcoot/eggbreaker/internal/api/response"
	"github.com/mcoot/eggbreaker/internal/services/leaderboard"
	"github.com/mcoot/eggbreaker/internal/services/level"
	"github.com/mcoot/eggbreaker/internal/services/progression"
)

// MaxTapsPerRequest caps the count accepted by POST /tap
const MaxTapsPerRequest = 1000

// GameHandler handles tapping, the leaderboard and level lookups
type GameHandler struct {
	leaderboard *leaderboard.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(leaderboardService *leaderboard.Service) *GameHandler {
	return &GameHandler{
		leaderboard: leaderboardService,
	}
}

// Tap handles POST /api/v1/tap
func (h *GameHandler) Tap(w http.ResponseWriter, r *http.Request) {
	manager := middleware.MustGetManager(r.Context())

	req := request.TapRequest{Count: 1}
	if err := decodeOptional(r, &req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Count < 1 || req.Count > MaxTapsPerRequest {
		WriteError(w, NewInvalidRequestError("count must be between 1 and "+strconv.Itoa(MaxTapsPerRequest)))
		return
	}

	var (
		last     progression.TapResult
		accepted int
		levelUps int
	)
	for i := 0; i < req.Count; i++ {
		result, err := manager.Tap()
		if err != nil {
			WriteError(w, err)
			return
		}
		last = result
		if !result.Accepted {
			break
		}
		accepted++
		if result.LeveledUp {
			levelUps++
		}
	}

	response.JSON(w, http.StatusOK, response.TapFromResult(accepted, levelUps, last))
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *GameHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := leaderboard.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > leaderboard.MaxLimit {
			WriteError(w, NewInvalidRequestError("limit must be between 1 and "+strconv.Itoa(leaderboard.MaxLimit)))
			return
		}
		limit = n
	}

	entries := h.leaderboard.TopPlayers(r.Context(), limit)
	response.JSON(w, http.StatusOK, response.LeaderboardFromProfiles(entries))
}

// Level handles GET /api/v1/levels/{level}
func (h *GameHandler) Level(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(mux.Vars(r)["level"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("level must be an integer"))
		return
	}

	cfg, err := level.Resolve(n)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.EggFromConfig(n, cfg, cfg.HP))
}
