package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mkravets/business-management-api/internal/config"
)

var RedisClient *redis.Client

// ConnectRedis opens the client backing the token revocation list.
func ConnectRedis(cfg *config.Config) error {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	RedisClient = client
	logrus.Info("Redis connection established")
	return nil
}

func GetRedis() *redis.Client {
	return RedisClient
}

// SetRedis sets the redis client (used for testing)
func SetRedis(client *redis.Client) {
	RedisClient = client
}
