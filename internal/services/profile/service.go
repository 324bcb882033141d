// Package profile loads and saves player profiles, preferring the remote
// store and falling back to local storage for demo mode or when no remote
// store is configured.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mcoot/eggbreaker/internal/dependencies/clock"
	"github.com/mcoot/eggbreaker/internal/model"
	"github.com/mcoot/eggbreaker/internal/storage"
	"github.com/mcoot/eggbreaker/internal/storage/local"
)

// LocalProfileKey is the fixed local storage key holding the profile
const LocalProfileKey = "egg_breaker_demo_user"

// Display name fallbacks used when the identity carries none
const (
	guestDisplayName   = "Guest Clicker"
	offlineDisplayName = "Offline User"
	remoteNamePrefix   = "User "
	remoteNameUIDChars = 5
)

// SaveOutcome reports where a save landed
type SaveOutcome int

const (
	SaveFailed SaveOutcome = iota
	SavedLocal
	SavedRemote
)

func (o SaveOutcome) String() string {
	switch o {
	case SavedLocal:
		return "saved_local"
	case SavedRemote:
		return "saved_remote"
	default:
		return "save_failed"
	}
}

// Service is the profile store adapter
type Service struct {
	remote storage.Storage // nil when no remote store is configured
	local  local.Storage
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a profile service. remote may be nil.
func New(remote storage.Storage, local local.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		remote: remote,
		local:  local,
		clock:  clock,
		logger: logger,
	}
}

// RemoteConfigured reports whether a remote store is in use
func (s *Service) RemoteConfigured() bool {
	return s.remote != nil
}

// Initialize returns the profile for an identity, creating it on first
// sight. Store failures never reach the caller: they are logged and a
// fresh default profile is returned instead.
func (s *Service) Initialize(ctx context.Context, identity model.Identity) *model.UserProfile {
	if identity.IsDemo() || s.remote == nil {
		return s.initializeLocal(ctx, identity)
	}

	profile, err := s.initializeRemote(ctx, identity)
	if err != nil {
		s.logger.Error("failed to access remote profile, using offline profile",
			slog.String("uid", string(identity.UID)),
			slog.String("error", err.Error()),
		)
		return s.newProfile(identity, offlineDisplayName)
	}
	return profile
}

// Save persists progress. Remote saves write level and click counters only;
// local saves overwrite the full record. Failures are logged, never retried.
func (s *Service) Save(ctx context.Context, profile model.UserProfile) SaveOutcome {
	if profile.UID == model.DemoUID || s.remote == nil {
		if err := s.writeLocal(ctx, &profile); err != nil {
			s.logger.Error("failed to save progress locally",
				slog.String("uid", string(profile.UID)),
				slog.String("error", err.Error()),
			)
			return SaveFailed
		}
		return SavedLocal
	}

	if err := s.remote.UpdateProfile(ctx, profile.UID, model.ProgressUpdate(profile)); err != nil {
		s.logger.Warn("failed to save progress to remote store",
			slog.String("uid", string(profile.UID)),
			slog.String("error", err.Error()),
		)
		return SaveFailed
	}

	s.logger.Debug("progress saved",
		slog.String("uid", string(profile.UID)),
		slog.Int("game_level", profile.Level),
		slog.Int64("total_clicks", profile.TotalClicks),
	)
	return SavedRemote
}

func (s *Service) initializeLocal(ctx context.Context, identity model.Identity) *model.UserProfile {
	if profile, ok := s.readLocal(ctx); ok {
		return profile
	}

	profile := s.newProfile(identity, guestDisplayName)
	if err := s.writeLocal(ctx, profile); err != nil {
		s.logger.Error("failed to store new local profile",
			slog.String("uid", string(identity.UID)),
			slog.String("error", err.Error()),
		)
	}
	return profile
}

func (s *Service) initializeRemote(ctx context.Context, identity model.Identity) (*model.UserProfile, error) {
	profile, err := s.remote.GetProfile(ctx, identity.UID)
	switch {
	case err == nil:
		now := s.clock.Now()
		if err := s.remote.UpdateProfile(ctx, identity.UID, model.LastLoginUpdate(now)); err != nil {
			return nil, err
		}
		profile.LastLogin = now
		return profile, nil

	case errors.Is(err, model.ErrProfileNotFound):
		profile = s.newProfile(identity, remoteDisplayName(identity.UID))
		if err := s.remote.SetProfile(ctx, profile); err != nil {
			return nil, err
		}
		s.logger.Info("profile created",
			slog.String("uid", string(identity.UID)),
			slog.String("display_name", profile.DisplayName),
		)
		return profile, nil

	default:
		return nil, err
	}
}

// readLocal returns the stored local profile, treating unreadable records as absent
func (s *Service) readLocal(ctx context.Context) (*model.UserProfile, bool) {
	raw, ok, err := s.local.ReadString(ctx, LocalProfileKey)
	if err != nil {
		s.logger.Warn("failed to read local profile",
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var profile model.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		s.logger.Warn("discarding corrupt local profile",
			slog.String("error", err.Error()),
		)
		return nil, false
	}
	return &profile, true
}

func (s *Service) writeLocal(ctx context.Context, profile *model.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.local.WriteString(ctx, LocalProfileKey, string(data))
}

func (s *Service) newProfile(identity model.Identity, fallbackName string) *model.UserProfile {
	name := identity.DisplayName
	if name == "" {
		name = fallbackName
	}
	return model.NewProfile(identity.UID, identity.Email, name, s.clock.Now())
}

// remoteDisplayName is the placeholder name for new remote profiles
func remoteDisplayName(uid model.UID) string {
	prefix := string(uid)
	if len(prefix) > remoteNameUIDChars {
		prefix = prefix[:remoteNameUIDChars]
	}
	return remoteNamePrefix + prefix
}
