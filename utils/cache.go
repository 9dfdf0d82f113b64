package utils

import (
	"context"
	"fmt"
	"time"

	"signup/config"

	"github.com/go-redis/redis/v8"
)

// NewSessionCacheClient connects a Redis client for session storage using the
// loaded configuration. The client is constructed once at startup and handed
// to the session store; closing the store closes the client.
func NewSessionCacheClient() (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("connect to Redis (sessions): %w", err)
	}
	return client, nil
}
