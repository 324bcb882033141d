package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/eggbreaker/internal/dependencies/mocks"
	"github.com/mcoot/eggbreaker/internal/model"
	"github.com/mcoot/eggbreaker/internal/services/auth"
	"github.com/mcoot/eggbreaker/internal/services/profile"
	localmemory "github.com/mcoot/eggbreaker/internal/storage/local/memory"
	"github.com/mcoot/eggbreaker/internal/storage/memory"
	"github.com/mcoot/eggbreaker/internal/testutil"
)

type RegistrySuite struct {
	suite.Suite
	remote   *memory.Storage
	clock    *mocks.MockClock
	random   *mocks.MockRandom
	auth     *auth.Service
	registry *Registry
	ctx      context.Context
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.ctx = context.Background()
	s.remote = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	logger := testutil.NopLogger()

	profiles := profile.New(s.remote, localmemory.New(), s.clock, logger)
	s.auth = auth.New(s.remote, s.clock, auth.DefaultConfig(), logger)
	s.registry = NewRegistry(profiles, s.clock, s.random, DefaultConfig(), logger)
}

func (s *RegistrySuite) TestOpenIssuesPrefixedToken() {
	s.random.QueueString("abcdefghijklmnopqrstuvwxyz012345")

	token, manager := s.registry.Open(auth.NewClient(s.auth))
	s.Equal("sess_abcdefghijklmnopqrstuvwxyz012345", token)
	s.NotNil(manager)
	s.Equal(1, s.registry.Len())
}

func (s *RegistrySuite) TestTokensAreDistinct() {
	a, _ := s.registry.Open(auth.NewClient(s.auth))
	b, _ := s.registry.Open(auth.NewClient(s.auth))
	s.NotEqual(a, b)
	s.Len(a, len("sess_")+32)
}

func (s *RegistrySuite) TestGetReturnsManager() {
	token, manager := s.registry.Open(auth.NewClient(s.auth))

	got, err := s.registry.Get(s.ctx, token)
	s.Require().NoError(err)
	s.Same(manager, got)
}

func (s *RegistrySuite) TestGetUnknownToken() {
	_, err := s.registry.Get(s.ctx, "sess_nope")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *RegistrySuite) TestSessionExpires() {
	token, _ := s.registry.Open(auth.NewClient(s.auth))

	s.clock.Advance(24 * time.Hour)
	_, err := s.registry.Get(s.ctx, token)
	s.NoError(err)

	s.clock.Advance(time.Second)
	_, err = s.registry.Get(s.ctx, token)
	s.ErrorIs(err, model.ErrSessionNotFound)
	s.Equal(0, s.registry.Len())
}

func (s *RegistrySuite) TestRemoveFlushesProgress() {
	client := auth.NewClient(s.auth)
	token, manager := s.registry.Open(client)
	identity, err := client.SignUp(s.ctx, "alice@example.com", "password123", "Alice")
	s.Require().NoError(err)

	_, err = manager.Tap()
	s.Require().NoError(err)
	s.Require().NoError(s.registry.Remove(s.ctx, token))

	stored, err := s.remote.GetProfile(s.ctx, identity.UID)
	s.Require().NoError(err)
	s.Equal(int64(1), stored.TotalClicks)

	s.ErrorIs(s.registry.Remove(s.ctx, token), model.ErrSessionNotFound)
}

func (s *RegistrySuite) TestCleanExpired() {
	s.registry.Open(auth.NewClient(s.auth))
	s.clock.Advance(12 * time.Hour)
	fresh, _ := s.registry.Open(auth.NewClient(s.auth))

	s.clock.Advance(13 * time.Hour)
	s.Equal(1, s.registry.CleanExpired(s.ctx))
	s.Equal(1, s.registry.Len())

	_, err := s.registry.Get(s.ctx, fresh)
	s.NoError(err)
}

func (s *RegistrySuite) TestShutdownFlushesAll() {
	client := auth.NewClient(s.auth)
	_, manager := s.registry.Open(client)
	identity, err := client.SignUp(s.ctx, "alice@example.com", "password123", "Alice")
	s.Require().NoError(err)
	_, _ = manager.Tap()
	_, _ = manager.Tap()

	s.registry.Shutdown(s.ctx)

	s.Equal(0, s.registry.Len())
	stored, err := s.remote.GetProfile(s.ctx, identity.UID)
	s.Require().NoError(err)
	s.Equal(int64(2), stored.TotalClicks)
}

func (s *RegistrySuite) TestCustomDuration() {
	registry := NewRegistry(profile.New(nil, localmemory.New(), s.clock, testutil.NopLogger()),
		s.clock, s.random, Config{SessionDuration: time.Minute}, testutil.NopLogger())
	token, _ := registry.Open(auth.NewClient(s.auth))

	s.clock.Advance(2 * time.Minute)
	_, err := registry.Get(s.ctx, token)
	s.ErrorIs(err, model.ErrSessionNotFound)
}
