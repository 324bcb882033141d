// Package progression implements the tap state machine: each tap damages the
// current egg, a broken egg advances the level, and progress is persisted
// through a debounced save.
package progression

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/eggbreaker/internal/dependencies/clock"
	"github.com/mcoot/eggbreaker/internal/model"
	"github.com/mcoot/eggbreaker/internal/services/level"
	"github.com/mcoot/eggbreaker/internal/services/profile"
)

// DefaultSaveDelay is the quiet period after the last tap before progress is saved
const DefaultSaveDelay = 1000 * time.Millisecond

// Saver persists a profile snapshot
type Saver interface {
	Save(ctx context.Context, p model.UserProfile) profile.SaveOutcome
}

// TapResult describes the effect of a single tap
type TapResult struct {
	Accepted    bool
	LeveledUp   bool
	Profile     model.UserProfile
	Config      model.LevelConfig
	RemainingHP int64
}

// State is a snapshot of the engine
type State struct {
	Profile     model.UserProfile
	Config      model.LevelConfig
	RemainingHP int64
	SavePending bool
}

type pendingSave struct {
	timer   clock.Timer
	profile model.UserProfile
}

// Engine holds one player's in-play progress
type Engine struct {
	mu          sync.Mutex
	profile     model.UserProfile
	config      *model.LevelConfig
	remainingHP int64
	pending     *pendingSave

	saver  Saver
	clock  clock.Clock
	delay  time.Duration
	logger *slog.Logger
}

// New creates an engine over a copy of p. A non-positive delay uses DefaultSaveDelay.
// If the profile's level cannot be resolved the engine holds no config and
// ignores taps.
func New(p model.UserProfile, saver Saver, clock clock.Clock, delay time.Duration, logger *slog.Logger) *Engine {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}

	e := &Engine{
		profile: p,
		saver:   saver,
		clock:   clock,
		delay:   delay,
		logger:  logger,
	}

	cfg, err := level.Resolve(p.Level)
	if err != nil {
		logger.Error("cannot resolve level for profile",
			slog.String("uid", string(p.UID)),
			slog.Int("game_level", p.Level),
			slog.String("error", err.Error()),
		)
		return e
	}
	e.config = &cfg
	e.remainingHP = cfg.HP
	return e
}

// Tap applies one unit of damage to the current egg
func (e *Engine) Tap() TapResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.config == nil || e.remainingHP <= 0 {
		return e.resultLocked(false, false)
	}

	e.remainingHP--
	e.profile.TotalClicks++

	leveledUp := false
	if e.remainingHP == 0 {
		next := e.profile.Level + 1
		cfg, err := level.Resolve(next)
		if err != nil {
			// unreachable for next >= 2, keep the egg broken
			e.logger.Error("cannot resolve next level",
				slog.Int("game_level", next),
				slog.String("error", err.Error()),
			)
		} else {
			e.profile.Level = next
			e.profile.Clicks = 0
			e.config = &cfg
			e.remainingHP = cfg.HP
			leveledUp = true

			e.logger.Debug("level up",
				slog.String("uid", string(e.profile.UID)),
				slog.Int("game_level", next),
				slog.String("skin", string(cfg.Skin)),
			)
		}
	}

	e.scheduleSaveLocked()
	return e.resultLocked(true, leveledUp)
}

// Flush runs a pending save immediately. It reports whether a save was run.
func (e *Engine) Flush(ctx context.Context) bool {
	e.mu.Lock()
	p := e.pending
	if p == nil {
		e.mu.Unlock()
		return false
	}
	p.timer.Stop()
	e.pending = nil
	e.mu.Unlock()

	e.saver.Save(ctx, p.profile)
	return true
}

// Stop cancels any pending save without running it
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pending != nil {
		e.pending.timer.Stop()
		e.pending = nil
	}
}

// State returns a snapshot of the engine
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := State{
		Profile:     e.profile,
		RemainingHP: e.remainingHP,
		SavePending: e.pending != nil,
	}
	if e.config != nil {
		s.Config = *e.config
	}
	return s
}

// scheduleSaveLocked replaces any pending save with one for the current state
func (e *Engine) scheduleSaveLocked() {
	if e.pending != nil {
		e.pending.timer.Stop()
	}

	p := &pendingSave{profile: e.profile}
	p.timer = e.clock.AfterFunc(e.delay, func() { e.fire(p) })
	e.pending = p
}

// fire runs a scheduled save unless it has been superseded or flushed
func (e *Engine) fire(p *pendingSave) {
	e.mu.Lock()
	if e.pending != p {
		e.mu.Unlock()
		return
	}
	e.pending = nil
	e.mu.Unlock()

	e.saver.Save(context.Background(), p.profile)
}

func (e *Engine) resultLocked(accepted, leveledUp bool) TapResult {
	r := TapResult{
		Accepted:    accepted,
		LeveledUp:   leveledUp,
		Profile:     e.profile,
		RemainingHP: e.remainingHP,
	}
	if e.config != nil {
		r.Config = *e.config
	}
	return r
}
