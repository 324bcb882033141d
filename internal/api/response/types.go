package response

import (
	"time"

	"github.com/mcoot/eggbreaker/internal/model"
	"github.com/mcoot/eggbreaker/internal/services/progression"
	"github.com/mcoot/eggbreaker/internal/services/session"
)

// Identity represents the signed-in user
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name"`
}

// IdentityFromModel converts a model.Identity
func IdentityFromModel(i *model.Identity) *Identity {
	if i == nil {
		return nil
	}
	return &Identity{
		UID:         string(i.UID),
		Email:       i.Email,
		DisplayName: i.DisplayName,
	}
}

// Profile represents a player's progress
type Profile struct {
	UID         string    `json:"uid"`
	DisplayName string    `json:"display_name"`
	Level       int       `json:"level"`
	Clicks      int64     `json:"clicks"`
	TotalClicks int64     `json:"total_clicks"`
	LastLogin   time.Time `json:"last_login"`
}

// ProfileFromModel converts a model.UserProfile
func ProfileFromModel(p model.UserProfile) Profile {
	return Profile{
		UID:         string(p.UID),
		DisplayName: p.DisplayName,
		Level:       p.Level,
		Clicks:      p.Clicks,
		TotalClicks: p.TotalClicks,
		LastLogin:   p.LastLogin,
	}
}

// Egg describes the egg for a level
type Egg struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	Skin        string `json:"skin"`
	HP          int64  `json:"hp"`
	RemainingHP int64  `json:"remaining_hp"`
}

// EggFromConfig builds an Egg from a level config and remaining hp
func EggFromConfig(lvl int, cfg model.LevelConfig, remaining int64) Egg {
	return Egg{
		Level:       lvl,
		Name:        cfg.Name,
		Skin:        string(cfg.Skin),
		HP:          cfg.HP,
		RemainingHP: remaining,
	}
}

// Session is the response for session endpoints
type Session struct {
	SessionToken string    `json:"session_token,omitempty"`
	Identity     *Identity `json:"identity"`
	DemoMode     bool      `json:"demo_mode"`
	Profile      *Profile  `json:"profile"`
	Egg          *Egg      `json:"egg"`
	SavePending  bool      `json:"save_pending"`
}

// SessionFromState converts a session state
func SessionFromState(token string, s session.State) Session {
	resp := Session{
		SessionToken: token,
		Identity:     IdentityFromModel(s.Identity),
		DemoMode:     s.DemoMode,
	}
	if s.Progress != nil {
		p := ProfileFromModel(s.Progress.Profile)
		egg := EggFromConfig(s.Progress.Profile.Level, s.Progress.Config, s.Progress.RemainingHP)
		resp.Profile = &p
		resp.Egg = &egg
		resp.SavePending = s.Progress.SavePending
	}
	return resp
}

// Tap is the response after tapping
type Tap struct {
	Accepted int     `json:"accepted"`
	LevelUps int     `json:"level_ups"`
	Profile  Profile `json:"profile"`
	Egg      Egg     `json:"egg"`
}

// TapFromResult builds a Tap response from the final tap result
func TapFromResult(accepted, levelUps int, r progression.TapResult) Tap {
	return Tap{
		Accepted: accepted,
		LevelUps: levelUps,
		Profile:  ProfileFromModel(r.Profile),
		Egg:      EggFromConfig(r.Profile.Level, r.Config, r.RemainingHP),
	}
}

// LeaderboardEntry is one ranked player
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	UID         string `json:"uid"`
	DisplayName string `json:"display_name"`
	Level       int    `json:"level"`
	TotalClicks int64  `json:"total_clicks"`
}

// Leaderboard is the response for the leaderboard endpoint
type Leaderboard struct {
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromProfiles ranks profiles in the given order
func LeaderboardFromProfiles(profiles []model.UserProfile) Leaderboard {
	entries := make([]LeaderboardEntry, len(profiles))
	for i, p := range profiles {
		entries[i] = LeaderboardEntry{
			Rank:        i + 1,
			UID:         string(p.UID),
			DisplayName: p.DisplayName,
			Level:       p.Level,
			TotalClicks: p.TotalClicks,
		}
	}
	return Leaderboard{Entries: entries}
}

// Health is the response for the health endpoint
type Health struct {
	Status         string `json:"status"`
	RemoteStore    bool   `json:"remote_store"`
	ActiveSessions int    `json:"active_sessions"`
}
