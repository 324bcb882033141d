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
	"github.com/mcoot/eggbreaker/internal/services/progression"
	localmemory "github.com/mcoot/eggbreaker/internal/storage/local/memory"
	"github.com/mcoot/eggbreaker/internal/storage/memory"
	"github.com/mcoot/eggbreaker/internal/testutil"
)

// The auth client is the identity provider sessions are opened with
var _ IdentityProvider = (*auth.Client)(nil)

type ManagerSuite struct {
	suite.Suite
	remote   *memory.Storage
	local    *localmemory.Storage
	clock    *mocks.MockClock
	profiles *profile.Service
	client   *auth.Client
	manager  *Manager
	ctx      context.Context
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.ctx = context.Background()
	s.remote = memory.New()
	s.local = localmemory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := testutil.NopLogger()

	s.profiles = profile.New(s.remote, s.local, s.clock, logger)
	s.client = auth.NewClient(auth.New(s.remote, s.clock, auth.DefaultConfig(), logger))
	s.manager = NewManager(s.client, s.profiles, s.clock, progression.DefaultSaveDelay, logger)
	s.manager.Start()
}

func (s *ManagerSuite) TearDownTest() {
	s.manager.Close(s.ctx)
}

func (s *ManagerSuite) signUp() *model.Identity {
	identity, err := s.client.SignUp(s.ctx, "alice@example.com", "password123", "Alice")
	s.Require().NoError(err)
	return identity
}

func (s *ManagerSuite) tap(n int) progression.TapResult {
	var r progression.TapResult
	for i := 0; i < n; i++ {
		var err error
		r, err = s.manager.Tap()
		s.Require().NoError(err)
	}
	return r
}

func (s *ManagerSuite) TestStartsWithoutProfile() {
	state := s.manager.State()
	s.Nil(state.Identity)
	s.Nil(state.Progress)
	s.False(state.DemoMode)

	_, err := s.manager.Profile()
	s.ErrorIs(err, model.ErrNoProfile)
}

func (s *ManagerSuite) TestTapWithoutProfile() {
	_, err := s.manager.Tap()
	s.ErrorIs(err, model.ErrNoProfile)
}

func (s *ManagerSuite) TestSignInLoadsProfile() {
	identity := s.signUp()

	p, err := s.manager.Profile()
	s.Require().NoError(err)
	s.Equal(identity.UID, p.UID)
	s.Equal("Alice", p.DisplayName)
	s.Equal(1, p.Level)

	stored, err := s.remote.GetProfile(s.ctx, identity.UID)
	s.Require().NoError(err)
	s.Equal(1, stored.Level)
}

func (s *ManagerSuite) TestTapsPersistAfterDebounce() {
	identity := s.signUp()

	r := s.tap(10)
	s.True(r.LeveledUp)
	s.clock.Advance(progression.DefaultSaveDelay)

	stored, err := s.remote.GetProfile(s.ctx, identity.UID)
	s.Require().NoError(err)
	s.Equal(2, stored.Level)
	s.Equal(int64(10), stored.TotalClicks)
}

func (s *ManagerSuite) TestProviderSignOutClearsProfile() {
	s.signUp()
	s.Require().NoError(s.client.SignOut(s.ctx))

	s.Nil(s.manager.Identity())
	_, err := s.manager.Profile()
	s.ErrorIs(err, model.ErrNoProfile)
}

func (s *ManagerSuite) TestProviderSignOutFlushesPendingSave() {
	identity := s.signUp()
	s.tap(3)
	s.Require().NoError(s.client.SignOut(s.ctx))

	stored, err := s.remote.GetProfile(s.ctx, identity.UID)
	s.Require().NoError(err)
	s.Equal(int64(3), stored.TotalClicks)
	s.Equal(0, s.clock.PendingTimers())
}

func (s *ManagerSuite) TestProgressSurvivesSignInAgain() {
	s.signUp()
	s.tap(15)
	s.Require().NoError(s.manager.Logout(s.ctx))

	_, err := s.client.SignIn(s.ctx, "alice@example.com", "password123")
	s.Require().NoError(err)

	p, err := s.manager.Profile()
	s.Require().NoError(err)
	s.Equal(2, p.Level)
	s.Equal(int64(15), p.TotalClicks)
}

// Demo mode tests

func (s *ManagerSuite) TestEnableDemoMode() {
	s.manager.EnableDemoMode(s.ctx)

	s.True(s.manager.DemoMode())
	identity := s.manager.Identity()
	s.Require().NotNil(identity)
	s.Equal(model.DemoUID, identity.UID)

	p, err := s.manager.Profile()
	s.Require().NoError(err)
	s.Equal(model.DemoDisplayName, p.DisplayName)
}

func (s *ManagerSuite) TestDemoModeSavesLocally() {
	s.manager.EnableDemoMode(s.ctx)
	s.tap(4)
	s.clock.Advance(progression.DefaultSaveDelay)

	raw, ok, err := s.local.ReadString(s.ctx, profile.LocalProfileKey)
	s.Require().NoError(err)
	s.True(ok)
	s.Contains(raw, `"totalClicks":4`)

	_, err = s.remote.GetProfile(s.ctx, model.DemoUID)
	s.ErrorIs(err, model.ErrProfileNotFound)
}

func (s *ManagerSuite) TestDemoModeIgnoresProviderEvents() {
	s.manager.EnableDemoMode(s.ctx)
	s.signUp()

	s.Equal(model.DemoUID, s.manager.Identity().UID)
}

func (s *ManagerSuite) TestDemoModeOverridesSignedInUser() {
	s.signUp()
	s.tap(2)
	s.manager.EnableDemoMode(s.ctx)

	s.Equal(model.DemoUID, s.manager.Identity().UID)
	p, err := s.manager.Profile()
	s.Require().NoError(err)
	s.Equal(int64(0), p.TotalClicks)
}

func (s *ManagerSuite) TestLogoutClearsDemoMode() {
	s.manager.EnableDemoMode(s.ctx)
	s.tap(2)

	s.Require().NoError(s.manager.Logout(s.ctx))

	s.False(s.manager.DemoMode())
	s.Nil(s.manager.Identity())

	raw, _, err := s.local.ReadString(s.ctx, profile.LocalProfileKey)
	s.Require().NoError(err)
	s.Contains(raw, `"totalClicks":2`)
}

func (s *ManagerSuite) TestDemoProgressRestored() {
	s.manager.EnableDemoMode(s.ctx)
	s.tap(11)
	s.Require().NoError(s.manager.Logout(s.ctx))

	s.manager.EnableDemoMode(s.ctx)
	p, err := s.manager.Profile()
	s.Require().NoError(err)
	s.Equal(2, p.Level)
	s.Equal(int64(11), p.TotalClicks)
}

func (s *ManagerSuite) TestProviderEventsResumeAfterLogout() {
	s.manager.EnableDemoMode(s.ctx)
	s.Require().NoError(s.manager.Logout(s.ctx))

	identity := s.signUp()
	s.Equal(identity.UID, s.manager.Identity().UID)
}

func (s *ManagerSuite) TestCloseStopsFollowingProvider() {
	s.manager.Close(s.ctx)
	s.signUp()

	s.Nil(s.manager.Identity())
}

func (s *ManagerSuite) TestStateReportsProgress() {
	s.signUp()
	s.tap(3)

	state := s.manager.State()
	s.Require().NotNil(state.Progress)
	s.Equal(int64(7), state.Progress.RemainingHP)
	s.True(state.Progress.SavePending)
	s.Equal(model.SkinStandard, state.Progress.Config.Skin)
}
