package mocks

import (
	"strings"
	"sync"

	"github.com/mcoot/eggbreaker/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing.
// Queued strings are returned first; after that each call returns the
// requested length of a single alphabet character, advancing one character
// per call so results stay distinct.
type MockRandom struct {
	mu     sync.Mutex
	queued []string
	calls  int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// String returns the next queued result, or a deterministic filler
func (r *MockRandom) String(length int, alphabet string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.queued) > 0 {
		result := r.queued[0]
		r.queued = r.queued[1:]
		return result
	}
	if length <= 0 || alphabet == "" {
		return ""
	}
	c := alphabet[r.calls%len(alphabet)]
	r.calls++
	return strings.Repeat(string(c), length)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queued = append(r.queued, values...)
}
