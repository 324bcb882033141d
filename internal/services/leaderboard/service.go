package leaderboard

import (
	"context"
	"log/slog"

	"github.com/mcoot/eggbreaker/internal/model"
	"github.com/mcoot/eggbreaker/internal/storage"
)

// DefaultLimit is the number of entries shown on the leaderboard
const DefaultLimit = 10

// MaxLimit caps caller supplied limits
const MaxLimit = 100

// Service reads the highest level profiles from the remote store
type Service struct {
	remote storage.Storage // nil when no remote store is configured
	logger *slog.Logger
}

// New creates a leaderboard service. remote may be nil.
func New(remote storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		remote: remote,
		logger: logger,
	}
}

// TopPlayers returns up to n profiles ordered by level descending.
// Without a remote store, or on any read failure, the result is empty.
func (s *Service) TopPlayers(ctx context.Context, n int) []model.UserProfile {
	if s.remote == nil {
		return []model.UserProfile{}
	}
	if n <= 0 {
		n = DefaultLimit
	}
	if n > MaxLimit {
		n = MaxLimit
	}

	profiles, err := s.remote.TopProfiles(ctx, n)
	if err != nil {
		s.logger.Warn("failed to read leaderboard",
			slog.String("error", err.Error()),
		)
		return []model.UserProfile{}
	}

	entries := make([]model.UserProfile, 0, len(profiles))
	for _, p := range profiles {
		entries = append(entries, *p)
	}
	return entries
}
