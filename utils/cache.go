package utils

import (
	"context"
	"time"

	"sessionsheet/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// QuotaCacheClient holds the per-actor generation counters.
var QuotaCacheClient *redis.Client

// InitQuotaCache connects the quota client. Without REDIS_ADDR, or when the
// server does not answer, the client stays nil and quotas are disabled.
func InitQuotaCache() {
	if config.AppConfig.RedisAddr == "" {
		GetLogger().Info("REDIS_ADDR not set, generation quota disabled")
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQuotaDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		GetLogger().Warn("Failed to connect to Redis (Quota), generation quota disabled", zap.Error(err))
		_ = client.Close()
		return
	}
	QuotaCacheClient = client
}

// GetQuotaCacheClient returns the quota client, nil when Redis is unavailable.
func GetQuotaCacheClient() *redis.Client {
	return QuotaCacheClient
}

// CloseCaches releases every Redis client.
func CloseCaches() {
	if QuotaCacheClient != nil {
		_ = QuotaCacheClient.Close()
	}
}
