package testutil

import (
	"context"
	"errors"

	"github.com/mcoot/eggbreaker/internal/model"
	"github.com/mcoot/eggbreaker/internal/storage"
)

// ErrInjected is returned by FaultyStorage for operations set to fail
var ErrInjected = errors.New("injected storage failure")

// FaultyStorage wraps a Storage and fails selected operations.
// With a nil Storage every operation fails.
type FaultyStorage struct {
	storage.Storage

	FailGet    bool
	FailSet    bool
	FailUpdate bool
	FailTop    bool

	Updates int // successful UpdateProfile calls
}

var _ storage.Storage = (*FaultyStorage)(nil)

// FailAll makes every profile operation fail
func (f *FaultyStorage) FailAll() {
	f.FailGet, f.FailSet, f.FailUpdate, f.FailTop = true, true, true, true
}

func (f *FaultyStorage) GetProfile(ctx context.Context, uid model.UID) (*model.UserProfile, error) {
	if f.FailGet || f.Storage == nil {
		return nil, ErrInjected
	}
	return f.Storage.GetProfile(ctx, uid)
}

func (f *FaultyStorage) SetProfile(ctx context.Context, p *model.UserProfile) error {
	if f.FailSet || f.Storage == nil {
		return ErrInjected
	}
	return f.Storage.SetProfile(ctx, p)
}

func (f *FaultyStorage) UpdateProfile(ctx context.Context, uid model.UID, u model.ProfileUpdate) error {
	if f.FailUpdate || f.Storage == nil {
		return ErrInjected
	}
	if err := f.Storage.UpdateProfile(ctx, uid, u); err != nil {
		return err
	}
	f.Updates++
	return nil
}

func (f *FaultyStorage) TopProfiles(ctx context.Context, n int) ([]*model.UserProfile, error) {
	if f.FailTop || f.Storage == nil {
		return nil, ErrInjected
	}
	return f.Storage.TopProfiles(ctx, n)
}
