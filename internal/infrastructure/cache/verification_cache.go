package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "cert:verify:"

// RedisVerificationCache maps verification codes to certificate IDs in Redis
type RedisVerificationCache struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// NewRedisVerificationCache wraps an existing client. A zero ttl keeps
// entries until they are deleted.
func NewRedisVerificationCache(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *RedisVerificationCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisVerificationCache{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// Get returns the cached certificate ID for code
func (c *RedisVerificationCache) Get(ctx context.Context, code string) (uuid.UUID, bool, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+code).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to read verification cache: %w", err)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		// corrupt entry, treat as a miss and let the caller repopulate
		_ = c.client.Del(ctx, c.keyPrefix+code).Err()
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

// Set caches the certificate ID for code
func (c *RedisVerificationCache) Set(ctx context.Context, code string, id uuid.UUID) error {
	if err := c.client.Set(ctx, c.keyPrefix+code, id.String(), c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write verification cache: %w", err)
	}
	return nil
}

// Delete drops the entry for code
func (c *RedisVerificationCache) Delete(ctx context.Context, code string) error {
	if err := c.client.Del(ctx, c.keyPrefix+code).Err(); err != nil {
		return fmt.Errorf("failed to delete verification cache entry: %w", err)
	}
	return nil
}

type memEntry struct {
	id        uuid.UUID
	expiresAt time.Time
}

// InMemoryVerificationCache is a process-local VerificationCache. Expired
// entries are dropped lazily on read.
type InMemoryVerificationCache struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewInMemoryVerificationCache creates an empty cache. A zero ttl never expires.
func NewInMemoryVerificationCache(ttl time.Duration) *InMemoryVerificationCache {
	return &InMemoryVerificationCache{
		entries: make(map[string]memEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *InMemoryVerificationCache) Get(_ context.Context, code string) (uuid.UUID, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[code]
	c.mu.RUnlock()
	if !ok {
		return uuid.Nil, false, nil
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, code)
		c.mu.Unlock()
		return uuid.Nil, false, nil
	}
	return e.id, true, nil
}

func (c *InMemoryVerificationCache) Set(_ context.Context, code string, id uuid.UUID) error {
	e := memEntry{id: id}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[code] = e
	c.mu.Unlock()
	return nil
}

func (c *InMemoryVerificationCache) Delete(_ context.Context, code string) error {
	c.mu.Lock()
	delete(c.entries, code)
	c.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included
func (c *InMemoryVerificationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
