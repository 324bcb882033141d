package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/eggbreaker/internal/dependencies/clock"
	"github.com/mcoot/eggbreaker/internal/dependencies/random"
	"github.com/mcoot/eggbreaker/internal/model"
	"github.com/mcoot/eggbreaker/internal/services/progression"
)

const (
	tokenPrefix   = "sess_"
	tokenLength   = 32
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Config holds configuration for sessions
type Config struct {
	SaveDelay       time.Duration
	SessionDuration time.Duration
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		SaveDelay:       progression.DefaultSaveDelay,
		SessionDuration: 24 * time.Hour,
	}
}

type entry struct {
	manager   *Manager
	expiresAt time.Time
}

// Registry maps opaque tokens to live session managers
type Registry struct {
	profiles ProfileStore
	clock    clock.Clock
	random   random.Random
	cfg      Config
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewRegistry creates an empty registry
func NewRegistry(profiles ProfileStore, clock clock.Clock, random random.Random, cfg Config, logger *slog.Logger) *Registry {
	defaults := DefaultConfig()
	if cfg.SaveDelay <= 0 {
		cfg.SaveDelay = defaults.SaveDelay
	}
	if cfg.SessionDuration <= 0 {
		cfg.SessionDuration = defaults.SessionDuration
	}
	return &Registry{
		profiles: profiles,
		clock:    clock,
		random:   random,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*entry),
	}
}

// Open starts a manager following provider and returns its token
func (r *Registry) Open(provider IdentityProvider) (string, *Manager) {
	manager := NewManager(provider, r.profiles, r.clock, r.cfg.SaveDelay, r.logger)
	manager.Start()

	now := r.clock.Now()

	r.mu.Lock()
	token := tokenPrefix + r.random.String(tokenLength, tokenAlphabet)
	r.sessions[token] = &entry{
		manager:   manager,
		expiresAt: now.Add(r.cfg.SessionDuration),
	}
	r.mu.Unlock()

	r.logger.Debug("session opened",
		slog.Int("live_sessions", r.Len()),
	)
	return token, manager
}

// Get returns the manager for a token. Expired sessions are closed and
// reported as not found.
func (r *Registry) Get(ctx context.Context, token string) (*Manager, error) {
	r.mu.Lock()
	e, ok := r.sessions[token]
	if ok && r.clock.Now().After(e.expiresAt) {
		delete(r.sessions, token)
		r.mu.Unlock()
		e.manager.Close(ctx)
		return nil, model.ErrSessionNotFound
	}
	r.mu.Unlock()

	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return e.manager, nil
}

// Remove closes and forgets a session
func (r *Registry) Remove(ctx context.Context, token string) error {
	r.mu.Lock()
	e, ok := r.sessions[token]
	delete(r.sessions, token)
	r.mu.Unlock()

	if !ok {
		return model.ErrSessionNotFound
	}
	e.manager.Close(ctx)
	return nil
}

// CleanExpired closes expired sessions and returns how many were removed
func (r *Registry) CleanExpired(ctx context.Context) int {
	now := r.clock.Now()

	r.mu.Lock()
	var expired []*entry
	for token, e := range r.sessions {
		if now.After(e.expiresAt) {
			expired = append(expired, e)
			delete(r.sessions, token)
		}
	}
	r.mu.Unlock()

	for _, e := range expired {
		e.manager.Close(ctx)
	}
	if len(expired) > 0 {
		r.logger.Info("expired sessions removed",
			slog.Int("count", len(expired)),
		)
	}
	return len(expired)
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Shutdown closes every session, flushing pending saves
func (r *Registry) Shutdown(ctx context.Context) {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*entry)
	r.mu.Unlock()

	for _, e := range sessions {
		e.manager.Close(ctx)
	}
	r.logger.Info("sessions closed",
		slog.Int("count", len(sessions)),
	)
}
