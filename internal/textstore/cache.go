package textstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/resilience"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "article:text:"

// KV is the subset of a Redis client the cache needs.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	FlushByPattern(ctx context.Context, pattern string) (int64, error)
}

// CacheObserver is notified of every cache lookup outcome.
type CacheObserver interface {
	Hit()
	Miss()
}

// CachedStore is a read-through Redis cache in front of another Store.
// Concurrent misses for the same article collapse into one backing read.
// Redis failures degrade to reading the backing store.
type CachedStore struct {
	backing  Store
	kv       KV
	isNil    func(error) bool
	ttl      time.Duration
	group    singleflight.Group
	observer CacheObserver
	breaker  *resilience.Breaker
	logger   *slog.Logger
	hits     atomic.Int64
	misses   atomic.Int64
}

// NewCachedStore wraps backing. isNil must recognise the client's
// key-not-found error.
func NewCachedStore(backing Store, kv KV, isNil func(error) bool, ttl time.Duration) *CachedStore {
	return &CachedStore{
		backing: backing,
		kv:      kv,
		isNil:   isNil,
		ttl:     ttl,
		logger:  logger.WithComponent("text-cache"),
	}
}

// WithObserver sets the hit/miss observer and returns c.
func (c *CachedStore) WithObserver(o CacheObserver) *CachedStore {
	c.observer = o
	return c
}

// WithBreaker stops calling Redis while it keeps failing; reads then go
// straight to the backing store.
func (c *CachedStore) WithBreaker(b *resilience.Breaker) *CachedStore {
	c.breaker = b
	return c
}

// Put writes through to the backing store and refreshes the cached copy.
func (c *CachedStore) Put(ctx context.Context, id int, text string) error {
	if err := c.backing.Put(ctx, id, text); err != nil {
		return err
	}
	c.set(ctx, id, text)
	return nil
}

func (c *CachedStore) Get(ctx context.Context, id int) (string, error) {
	if text, ok := c.lookup(ctx, id); ok {
		return text, nil
	}
	val, err, _ := c.group.Do(key(id), func() (any, error) {
		text, err := c.backing.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		c.set(ctx, id, text)
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return val.(string), nil
}

func (c *CachedStore) lookup(ctx context.Context, id int) (string, bool) {
	text, err := c.get(ctx, key(id))
	if err != nil {
		if !c.isNil(err) && !errors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.Error("cache get failed", "article_id", id, "error", err)
		}
		c.misses.Add(1)
		if c.observer != nil {
			c.observer.Miss()
		}
		return "", false
	}
	c.hits.Add(1)
	if c.observer != nil {
		c.observer.Hit()
	}
	return text, true
}

func (c *CachedStore) get(ctx context.Context, k string) (string, error) {
	if c.breaker == nil {
		return c.kv.Get(ctx, k)
	}
	var text string
	var getErr error
	err := c.breaker.Do(func() error {
		text, getErr = c.kv.Get(ctx, k)
		if getErr != nil && !c.isNil(getErr) {
			return getErr
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return text, getErr
}

func (c *CachedStore) set(ctx context.Context, id int, text string) {
	do := func(fn func() error) error { return fn() }
	if c.breaker != nil {
		do = c.breaker.Do
	}
	err := do(func() error { return c.kv.Set(ctx, key(id), text, c.ttl) })
	if err != nil && !errors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.Warn("cache set failed", "article_id", id, "error", err)
	}
}

// Flush forwards to the backing store when it buffers writes.
func (c *CachedStore) Flush(ctx context.Context) error {
	if f, ok := c.backing.(Flusher); ok {
		return f.Flush(ctx)
	}
	return nil
}

// Invalidate drops every cached article text.
func (c *CachedStore) Invalidate(ctx context.Context) error {
	deleted, err := c.kv.FlushByPattern(ctx, keyPrefix+"*")
	if err != nil {
		return fmt.Errorf("invalidating text cache: %w", err)
	}
	c.logger.Info("text cache invalidated", "keys_deleted", deleted)
	return nil
}

func (c *CachedStore) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func key(id int) string {
	return keyPrefix + strconv.Itoa(id)
}
