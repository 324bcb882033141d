package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/mcoot/eggbreaker/internal/model"
	"github.com/mcoot/eggbreaker/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Records are copied on the way in and out so callers never share state.
type Storage struct {
	mu sync.RWMutex

	profiles   map[model.UID]model.UserProfile
	accounts   map[model.UID]model.Account
	emailIndex map[string]model.UID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		profiles:   make(map[model.UID]model.UserProfile),
		accounts:   make(map[model.UID]model.Account),
		emailIndex: make(map[string]model.UID),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Profile operations

func (s *Storage) GetProfile(ctx context.Context, uid model.UID) (*model.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[uid]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return &p, nil
}

func (s *Storage) SetProfile(ctx context.Context, profile *model.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UID] = *profile
	return nil
}

func (s *Storage) UpdateProfile(ctx context.Context, uid model.UID, update model.ProfileUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[uid]
	if !ok {
		return model.ErrProfileNotFound
	}
	update.Apply(&p)
	s.profiles[uid] = p
	return nil
}

func (s *Storage) TopProfiles(ctx context.Context, n int) ([]*model.UserProfile, error) {
	if n <= 0 {
		return []*model.UserProfile{}, nil
	}

	s.mu.RLock()
	all := make([]model.UserProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		all = append(all, p)
	}
	s.mu.RUnlock()

	// Equal levels fall back to uid order so results are stable
	slices.SortFunc(all, func(a, b model.UserProfile) int {
		if c := cmp.Compare(b.Level, a.Level); c != 0 {
			return c
		}
		return cmp.Compare(a.UID, b.UID)
	})

	if len(all) > n {
		all = all[:n]
	}
	result := make([]*model.UserProfile, len(all))
	for i := range all {
		result[i] = &all[i]
	}
	return result, nil
}

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.UID] = *account
	s.emailIndex[account.Email] = account.UID
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, uid model.UID) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[uid]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return &a, nil
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	uid, ok := s.emailIndex[email]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return s.GetAccount(ctx, uid)
}
