package leaderboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/eggbreaker/internal/model"
	"github.com/mcoot/eggbreaker/internal/storage/memory"
	"github.com/mcoot/eggbreaker/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	remote  *testutil.FaultyStorage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.remote = &testutil.FaultyStorage{Storage: memory.New()}
	s.service = New(s.remote, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) seed(levels ...int) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, level := range levels {
		p := model.NewProfile(model.UID(fmt.Sprintf("user-%02d", i)), "", fmt.Sprintf("Player %d", i), now)
		p.Level = level
		s.Require().NoError(s.remote.SetProfile(s.ctx, p))
	}
}

func (s *ServiceSuite) TestOrderedByLevelDescending() {
	s.seed(3, 9, 1, 5)

	entries := s.service.TopPlayers(s.ctx, DefaultLimit)
	s.Require().Len(entries, 4)

	levels := make([]int, len(entries))
	for i, e := range entries {
		levels[i] = e.Level
	}
	s.Equal([]int{9, 5, 3, 1}, levels)
}

func (s *ServiceSuite) TestLimitedToTen() {
	s.seed(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)

	entries := s.service.TopPlayers(s.ctx, DefaultLimit)
	s.Len(entries, 10)
	s.Equal(12, entries[0].Level)
	s.Equal(3, entries[9].Level)
}

func (s *ServiceSuite) TestNonPositiveLimitUsesDefault() {
	s.seed(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)

	s.Len(s.service.TopPlayers(s.ctx, 0), DefaultLimit)
	s.Len(s.service.TopPlayers(s.ctx, -3), DefaultLimit)
}

func (s *ServiceSuite) TestEmptyStore() {
	entries := s.service.TopPlayers(s.ctx, DefaultLimit)
	s.NotNil(entries)
	s.Empty(entries)
}

func (s *ServiceSuite) TestReadFailureYieldsEmpty() {
	s.seed(4)
	s.remote.FailTop = true

	entries := s.service.TopPlayers(s.ctx, DefaultLimit)
	s.NotNil(entries)
	s.Empty(entries)
}

func (s *ServiceSuite) TestNoRemoteStore() {
	service := New(nil, testutil.NopLogger())
	entries := service.TopPlayers(s.ctx, DefaultLimit)
	s.NotNil(entries)
	s.Empty(entries)
}
