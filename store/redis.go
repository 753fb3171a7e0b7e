package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore provides Redis-backed storage so the activity timestamp
// survives host restarts. Read and write failures degrade to "no persisted
// state" rather than surfacing errors, per the Store contract.
type RedisStore struct {
	client *redis.Client
	ctx    context.Context
	ttl    time.Duration // How long to keep entries in Redis
}

// Ensure RedisStore implements Store interface
var _ Store = (*RedisStore)(nil)

// RedisConfig for creating a Redis store
type RedisConfig struct {
	Addr     string        // Redis address (e.g., "localhost:6379")
	Password string        // Redis password (empty for no auth)
	DB       int           // Redis database number
	TTL      time.Duration // TTL for entries (default: 24 hours)
}

// NewRedisStore creates a new Redis-backed store
func NewRedisStore(config RedisConfig) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ttl := config.TTL
	if ttl == 0 {
		ttl = 24 * time.Hour // Default TTL
	}

	return &RedisStore{
		client: client,
		ctx:    context.Background(),
		ttl:    ttl,
	}
}

// Get retrieves the value for a given key
func (s *RedisStore) Get(key string) (string, bool) {
	val, err := s.client.Get(s.ctx, "sessiongate:"+key).Result()
	if err != nil {
		// Key doesn't exist or backend unavailable
		return "", false
	}
	return val, true
}

// Set stores the value for a given key
func (s *RedisStore) Set(key, value string) {
	s.client.Set(s.ctx, "sessiongate:"+key, value, s.ttl)
}

// Delete removes the value for a given key
func (s *RedisStore) Delete(key string) {
	s.client.Del(s.ctx, "sessiongate:"+key)
}

// Clear removes all sessiongate keys from Redis
func (s *RedisStore) Clear() {
	iter := s.client.Scan(s.ctx, 0, "sessiongate:*", 0).Iterator()
	for iter.Next(s.ctx) {
		s.client.Del(s.ctx, iter.Val())
	}
}

// Ping checks if Redis connection is alive
func (s *RedisStore) Ping() error {
	return s.client.Ping(s.ctx).Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
