package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoked tokens live under this prefix so the keyspace stays
// shareable with other uses of the same Redis database.
const blacklistPrefix = "bl:"

// RedisTokenBlacklist is a Redis implementation of TokenBlacklist
type RedisTokenBlacklist struct {
	client *redis.Client
}

// NewTokenBlacklist creates a new TokenBlacklist
func NewTokenBlacklist(client *redis.Client) TokenBlacklist {
	return &RedisTokenBlacklist{client: client}
}

// Add stores the token with the remaining lifetime so the entry
// expires together with the token itself
func (r *RedisTokenBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	return r.client.SetEx(ctx, blacklistPrefix+token, "1", ttl).Err()
}

// Contains reports whether the token has been revoked
func (r *RedisTokenBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, blacklistPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
