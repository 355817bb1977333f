package config

import (
	"context"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Redis is the shared cache client. It stays nil when REDIS_ADDR is unset or
// the server is unreachable; callers treat a nil client as cache-off.
var Redis *redis.Client

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		logrus.Info("REDIS_ADDR not set, leaderboard caching disabled")
		return
	}

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       redisDB,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		logrus.Warnf("Redis unreachable, leaderboard caching disabled: %v", err)
		return
	}

	Redis = client
	logrus.Info("Redis connected successfully")
}
