package factory

import (
	"time"

	"github.com/mcoot/eggbreaker/internal/dependencies/mocks"
	"github.com/mcoot/eggbreaker/internal/services/auth"
	"github.com/mcoot/eggbreaker/internal/services/session"
	"github.com/mcoot/eggbreaker/internal/storage"
	localmemory "github.com/mcoot/eggbreaker/internal/storage/local/memory"
	"github.com/mcoot/eggbreaker/internal/storage/memory"
	"github.com/mcoot/eggbreaker/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App backed by in-memory stores with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithStorage(memory.New())
}

// NewTestAppWithStorage creates a test App over the given remote store, which may be nil
func NewTestAppWithStorage(store storage.Storage) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, localmemory.New(), mockClock, mockRandom,
		auth.DefaultConfig(), session.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
