// Package submitlock is a short-lived Redis lock that drops duplicate submissions
// (double clicks, client retries) before they reach the database.
//
// It is an optimisation only. Slot exclusivity and balance safety are enforced by
// the store, so callers proceed when Redis is unreachable.
package submitlock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 10 * time.Second

const keyPrefix = "ofcoz:"

// releaseScript deletes the key only while it still holds this caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Logger interface {
	Warn(format string, v ...interface{})
}

type Lock struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

func New(client *redis.Client, ttl time.Duration, logger Logger) *Lock {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Lock{client: client, ttl: ttl, logger: logger}
}

// Acquire tries to take key for the lock's TTL. acquired is false when another
// holder has it. release frees the key early and is safe to call after expiry.
func (l *Lock) Acquire(ctx context.Context, key string) (bool, func(), error) {
	token := uuid.NewString()
	fullKey := keyPrefix + key

	ok, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
	if err != nil {
		return false, nil, fmt.Errorf("submitlock: SETNX %s: %w", fullKey, err)
	}
	if !ok {
		return false, nil, nil
	}

	release := func() {
		// The request context may already be cancelled.
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err(); err != nil && err != redis.Nil {
			l.logger.Warn("submitlock: release %s: %v", fullKey, err)
		}
	}
	return true, release, nil
}

// Noop always grants the lock. Used when Redis is disabled.
type Noop struct{}

func (Noop) Acquire(context.Context, string) (bool, func(), error) {
	return true, func() {}, nil
}

// NewClient builds a Redis client and checks it with PING.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("submitlock: ping %s: %w", addr, err)
	}
	return client, nil
}
