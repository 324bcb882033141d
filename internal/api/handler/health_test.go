package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/eggbreaker/internal/api/handler"
	"github.com/mcoot/eggbreaker/internal/api/response"
	"github.com/mcoot/eggbreaker/internal/dependencies/mocks"
	"github.com/mcoot/eggbreaker/internal/services/profile"
	"github.com/mcoot/eggbreaker/internal/services/session"
	"github.com/mcoot/eggbreaker/internal/storage"
	localmemory "github.com/mcoot/eggbreaker/internal/storage/local/memory"
	"github.com/mcoot/eggbreaker/internal/storage/memory"
	"github.com/mcoot/eggbreaker/internal/testutil"
)

func healthFor(t *testing.T, remote storage.Storage) response.Health {
	t.Helper()

	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	profiles := profile.New(remote, localmemory.New(), clk, testutil.NopLogger())
	sessions := session.NewRegistry(profiles, clk, mocks.NewMockRandom(), session.DefaultConfig(), testutil.NopLogger())

	rr := httptest.NewRecorder()
	handler.NewHealthHandler(profiles, sessions).Get(rr, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var health response.Health
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&health))
	return health
}

func TestHealthReportsRemoteStoreFromProfiles(t *testing.T) {
	assert.True(t, healthFor(t, memory.New()).RemoteStore)
	assert.False(t, healthFor(t, nil).RemoteStore)
}
