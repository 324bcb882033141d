package redis

import (
	"fmt"

	"github.com/mcoot/eggbreaker/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "eggbreaker"

// profileKey returns the Redis key for the HASH holding a profile
func profileKey(uid model.UID) string {
	return fmt.Sprintf("%s:profile:%s", keyPrefix, uid)
}

// leaderboardKey returns the Redis key for the ZSET of uid scored by level
func leaderboardKey() string {
	return fmt.Sprintf("%s:idx:leaderboard", keyPrefix)
}

// accountKey returns the Redis key for an Account
func accountKey(uid model.UID) string {
	return fmt.Sprintf("%s:account:%s", keyPrefix, uid)
}

// emailIndexKey returns the Redis key for the email -> uid index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}
