// Package auth is the identity provider: email and password accounts with
// bcrypt hashed credentials, plus a per-user client that publishes sign-in
// state changes.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/eggbreaker/internal/dependencies/clock"
	"github.com/mcoot/eggbreaker/internal/model"
	"github.com/mcoot/eggbreaker/internal/storage"
)

var errInvalidEmail = errors.New("invalid email address")

// Config holds configuration for the auth service
type Config struct {
	MinPasswordLength int
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		MinPasswordLength: 6,
	}
}

// Service manages accounts
type Service struct {
	storage storage.Storage // nil when no account store is configured
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// New creates a new auth service. Without storage every operation fails
// with KindProviderNotEnabled.
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.MinPasswordLength == 0 {
		cfg.MinPasswordLength = DefaultConfig().MinPasswordLength
	}
	return &Service{
		storage: storage,
		clock:   clock,
		cfg:     cfg,
		logger:  logger,
	}
}

// Enabled reports whether accounts can be used
func (s *Service) Enabled() bool {
	return s.storage != nil
}

// SignUp creates an account and returns its identity
func (s *Service) SignUp(ctx context.Context, email, password, displayName string) (*model.Identity, error) {
	if s.storage == nil {
		return nil, newError(KindProviderNotEnabled, nil)
	}

	email, err := normalizeEmail(email)
	if err != nil {
		return nil, newError(KindUnknown, err)
	}
	if len(password) < s.cfg.MinPasswordLength {
		return nil, newError(KindWeakCredential, nil)
	}

	_, err = s.storage.GetAccountByEmail(ctx, email)
	if err == nil {
		return nil, newError(KindAlreadyExists, nil)
	}
	if !errors.Is(err, model.ErrAccountNotFound) {
		return nil, newError(KindUnknown, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, newError(KindUnknown, err)
	}

	now := s.clock.Now()
	account := &model.Account{
		UID:          model.UID(uuid.NewString()),
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.storage.SaveAccount(ctx, account); err != nil {
		return nil, newError(KindUnknown, err)
	}

	s.logger.Info("account created",
		slog.String("uid", string(account.UID)),
	)

	identity := account.Identity()
	return &identity, nil
}

// SignIn verifies credentials and returns the account's identity
func (s *Service) SignIn(ctx context.Context, email, password string) (*model.Identity, error) {
	if s.storage == nil {
		return nil, newError(KindProviderNotEnabled, nil)
	}

	email, err := normalizeEmail(email)
	if err != nil {
		return nil, newError(KindUnknown, err)
	}

	account, err := s.storage.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrAccountNotFound) {
			return nil, newError(KindNotFound, err)
		}
		return nil, newError(KindUnknown, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, newError(KindWrongCredential, nil)
	}

	identity := account.Identity()
	return &identity, nil
}

// normalizeEmail lower cases and trims an email, rejecting obviously malformed ones
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return "", errInvalidEmail
	}
	return email, nil
}
