package storage

import (
	"context"

	"github.com/mcoot/eggbreaker/internal/model"
)

// Storage is the remote document store holding profiles and accounts
type Storage interface {
	// Profile operations
	GetProfile(ctx context.Context, uid model.UID) (*model.UserProfile, error)
	SetProfile(ctx context.Context, profile *model.UserProfile) error
	// UpdateProfile applies a partial update and fails with
	// model.ErrProfileNotFound if no record exists.
	UpdateProfile(ctx context.Context, uid model.UID, update model.ProfileUpdate) error
	// TopProfiles returns up to n profiles ordered by level descending
	TopProfiles(ctx context.Context, n int) ([]*model.UserProfile, error)

	// Account operations
	SaveAccount(ctx context.Context, account *model.Account) error
	GetAccount(ctx context.Context, uid model.UID) (*model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
}
