package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/eggbreaker/internal/model"
	"github.com/mcoot/eggbreaker/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Profiles are HASHes so progress can be written as a partial update;
// a ZSET scored by level backs the leaderboard.
type Storage struct {
	client *redis.Client
	cfg    Config
	logger *slog.Logger
}

// New creates a new Redis storage instance
func New(cfg Config, logger *slog.Logger) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg, logger), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, logger *slog.Logger) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Profile operations

func (s *Storage) GetProfile(ctx context.Context, uid model.UID) (*model.UserProfile, error) {
	fields, err := s.client.HGetAll(ctx, profileKey(uid)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrProfileNotFound
	}
	return parseProfile(fields)
}

func (s *Storage) SetProfile(ctx context.Context, profile *model.UserProfile) error {
	key := profileKey(profile.UID)

	// Replace the whole record and its leaderboard entry together
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, profileFields(profile))
	pipe.ZAdd(ctx, leaderboardKey(), redis.Z{Score: float64(profile.Level), Member: string(profile.UID)})
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) UpdateProfile(ctx context.Context, uid model.UID, update model.ProfileUpdate) error {
	key := profileKey(uid)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrProfileNotFound
	}
	if update.IsEmpty() {
		return nil
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, updateFields(update))
	if update.Level != nil {
		pipe.ZAdd(ctx, leaderboardKey(), redis.Z{Score: float64(*update.Level), Member: string(uid)})
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) TopProfiles(ctx context.Context, n int) ([]*model.UserProfile, error) {
	if n <= 0 {
		return []*model.UserProfile{}, nil
	}

	uids, err := s.client.ZRevRange(ctx, leaderboardKey(), 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(uids) == 0 {
		return []*model.UserProfile{}, nil
	}

	// Fetch all profiles in one round trip
	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(uids))
	for i, uid := range uids {
		cmds[i] = pipe.HGetAll(ctx, profileKey(model.UID(uid)))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	profiles := make([]*model.UserProfile, 0, len(cmds))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue // Index entry without a record
		}
		p, err := parseProfile(fields)
		if err != nil {
			s.logger.Warn("skipping unreadable profile",
				slog.String("uid", uids[i]),
				slog.String("error", err.Error()),
			)
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// Account operations

func (s *Storage) SaveAccount(ctx context.Context, account *model.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, accountKey(account.UID), data, 0)
	pipe.Set(ctx, emailIndexKey(account.Email), string(account.UID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAccount(ctx context.Context, uid model.UID) (*model.Account, error) {
	data, err := s.client.Get(ctx, accountKey(uid)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	var account model.Account
	if err := json.Unmarshal(data, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	// Look up uid from email index
	uid, err := s.client.Get(ctx, emailIndexKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrAccountNotFound
		}
		return nil, err
	}

	return s.GetAccount(ctx, model.UID(uid))
}
