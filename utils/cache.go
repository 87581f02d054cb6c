package utils

import (
	"context"
	"log"
	"time"

	"maitred/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client (session flags, rate data).
	CacheClient *redis.Client
	// AgentCtxCacheClient is the dedicated client for agent conversation context.
	AgentCtxCacheClient *redis.Client
)

// InitCache initializes the generic Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// InitAgentCtxCache initializes the Redis client for agent conversation context.
func InitAgentCtxCache() {
	AgentCtxCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAgentCtxDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := AgentCtxCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Agent Context): %v", err)
	}
}

// GetAgentCtxCacheClient returns the Redis client for agent conversation context.
func GetAgentCtxCacheClient() *redis.Client {
	if AgentCtxCacheClient == nil {
		InitAgentCtxCache()
	}
	return AgentCtxCacheClient
}
