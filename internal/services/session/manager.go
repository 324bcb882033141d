// Package session binds one client's identity to a loaded profile and a
// progression engine, and keeps the registry of live sessions for the server.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/eggbreaker/internal/dependencies/clock"
	"github.com/mcoot/eggbreaker/internal/model"
	"github.com/mcoot/eggbreaker/internal/services/profile"
	"github.com/mcoot/eggbreaker/internal/services/progression"
)

// IdentityProvider publishes sign-in state for one user
type IdentityProvider interface {
	SignOut(ctx context.Context) error
	// Subscribe delivers the current identity immediately and every change
	// after it. nil means signed out.
	Subscribe(fn func(identity *model.Identity)) func()
}

// ProfileStore loads and persists profiles
type ProfileStore interface {
	Initialize(ctx context.Context, identity model.Identity) *model.UserProfile
	Save(ctx context.Context, p model.UserProfile) profile.SaveOutcome
}

// State is a snapshot of a session
type State struct {
	Identity *model.Identity
	DemoMode bool
	Progress *progression.State // nil while no profile is loaded
}

// Manager is the identity and session manager for one client
type Manager struct {
	provider  IdentityProvider
	profiles  ProfileStore
	clock     clock.Clock
	saveDelay time.Duration
	logger    *slog.Logger

	mu          sync.Mutex
	unsubscribe func()
	demo        bool
	identity    *model.Identity
	engine      *progression.Engine
}

// NewManager creates a manager. Call Start to begin following the provider.
func NewManager(provider IdentityProvider, profiles ProfileStore, clock clock.Clock, saveDelay time.Duration, logger *slog.Logger) *Manager {
	return &Manager{
		provider:  provider,
		profiles:  profiles,
		clock:     clock,
		saveDelay: saveDelay,
		logger:    logger,
	}
}

// Start subscribes to the identity provider
func (m *Manager) Start() {
	unsubscribe := m.provider.Subscribe(m.onIdentity)

	m.mu.Lock()
	m.unsubscribe = unsubscribe
	m.mu.Unlock()
}

// Close unsubscribes from the provider and flushes any pending save
func (m *Manager) Close(ctx context.Context) {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	engine := m.engine
	m.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	if engine != nil {
		engine.Flush(ctx)
	}
}

// EnableDemoMode binds the session to the demo identity. Provider events are
// ignored while demo mode is on.
func (m *Manager) EnableDemoMode(ctx context.Context) {
	identity := model.DemoIdentity()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.demo = true
	m.bindLocked(ctx, &identity)

	m.logger.Info("demo mode enabled")
}

// Logout flushes pending progress, signs out of the provider and clears
// demo mode and the loaded profile
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	engine := m.engine
	m.demo = false
	m.identity = nil
	m.engine = nil
	m.mu.Unlock()

	if engine != nil {
		engine.Flush(ctx)
	}
	return m.provider.SignOut(ctx)
}

// Tap forwards a tap to the progression engine
func (m *Manager) Tap() (progression.TapResult, error) {
	m.mu.Lock()
	engine := m.engine
	m.mu.Unlock()

	if engine == nil {
		return progression.TapResult{}, model.ErrNoProfile
	}
	return engine.Tap(), nil
}

// Identity returns the bound identity, or nil
func (m *Manager) Identity() *model.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.identity == nil {
		return nil
	}
	identity := *m.identity
	return &identity
}

// DemoMode reports whether demo mode is on
func (m *Manager) DemoMode() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.demo
}

// Profile returns the loaded profile
func (m *Manager) Profile() (*model.UserProfile, error) {
	m.mu.Lock()
	engine := m.engine
	m.mu.Unlock()

	if engine == nil {
		return nil, model.ErrNoProfile
	}
	p := engine.State().Profile
	return &p, nil
}

// State returns a snapshot of the session
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := State{DemoMode: m.demo}
	if m.identity != nil {
		identity := *m.identity
		s.Identity = &identity
	}
	if m.engine != nil {
		progress := m.engine.State()
		s.Progress = &progress
	}
	return s
}

// Flush runs any pending save immediately
func (m *Manager) Flush(ctx context.Context) {
	m.mu.Lock()
	engine := m.engine
	m.mu.Unlock()

	if engine != nil {
		engine.Flush(ctx)
	}
}

func (m *Manager) onIdentity(identity *model.Identity) {
	ctx := context.Background()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.demo {
		return
	}
	m.bindLocked(ctx, identity)
}

// bindLocked replaces the bound identity, loading its profile and engine.
// A nil identity clears both.
func (m *Manager) bindLocked(ctx context.Context, identity *model.Identity) {
	if m.engine != nil {
		m.engine.Flush(ctx)
		m.engine = nil
	}
	m.identity = identity

	if identity == nil {
		return
	}

	p := m.profiles.Initialize(ctx, *identity)
	m.engine = progression.New(*p, m.profiles, m.clock, m.saveDelay, m.logger)

	m.logger.Info("profile loaded",
		slog.String("uid", string(p.UID)),
		slog.Int("game_level", p.Level),
		slog.Bool("demo", m.demo),
	)
}
