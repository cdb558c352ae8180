package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"potlogic/engine"
)

// Config holds Redis configuration
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// EquityStore is a Redis-backed shared equity cache. Multiple analyzer
// instances pointed at the same Redis reuse each other's enumerations.
// All failures are soft: a miss or error just recomputes locally.
type EquityStore struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and returns the shared store.
func New(cfg Config) (*EquityStore, error) {
	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.Printf("[REDIS] Connecting to Redis at %s...", addr)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Printf("[REDIS] Connected to Redis at %s", addr)

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &EquityStore{client: client, ttl: ttl}, nil
}

// Get looks up a cached equity estimate.
func (s *EquityStore) Get(ctx context.Context, key string) (engine.EquityEstimate, bool) {
	raw, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("[REDIS] WARN: equity lookup failed: %v", err)
		}
		return engine.EquityEstimate{}, false
	}

	var est engine.EquityEstimate
	if err := json.Unmarshal(raw, &est); err != nil {
		log.Printf("[REDIS] WARN: corrupt equity entry for %s: %v", key, err)
		return engine.EquityEstimate{}, false
	}
	return est, true
}

// Set stores an equity estimate with the configured TTL.
func (s *EquityStore) Set(ctx context.Context, key string, est engine.EquityEstimate) {
	raw, err := json.Marshal(est)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, s.redisKey(key), raw, s.ttl).Err(); err != nil {
		log.Printf("[REDIS] WARN: equity store failed: %v", err)
	}
}

// Close closes the Redis connection.
func (s *EquityStore) Close() error {
	log.Println("[REDIS] Closing Redis connection...")
	return s.client.Close()
}

// HealthCheck pings Redis.
func (s *EquityStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *EquityStore) redisKey(key string) string {
	return "equity:" + key
}
