package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/attendly/attendly-go/kv"
)

// DefaultTTL is the freshness window when none is configured.
const DefaultTTL = 30 * time.Minute

const (
	payloadSuffix = ":payload"
	fetchedSuffix = ":fetched_at"
	scopeSuffix   = ":scope"
)

// TTL is a generic expiring cache for one fetched collection, partitioned
// by a scope key (for example an event ID) so a hit only applies to the
// same logical context that populated it.
type TTL[T any] struct {
	store  kv.Store
	prefix string
	ttl    time.Duration

	now func() time.Time
}

// NewTTL creates a cache persisting under prefix in store. A non-positive
// ttl defaults to [DefaultTTL].
func NewTTL[T any](store kv.Store, prefix string, ttl time.Duration) *TTL[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TTL[T]{
		store:  store,
		prefix: prefix,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Put serializes items and stores them alongside scopeKey and the current
// timestamp, replacing whatever was cached before.
func (c *TTL[T]) Put(ctx context.Context, items T, scopeKey string) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}

	if err := c.store.Set(ctx, c.prefix+payloadSuffix, string(payload)); err != nil {
		return err
	}
	if err := c.store.Set(ctx, c.prefix+fetchedSuffix, strconv.FormatInt(c.now().Unix(), 10)); err != nil {
		return err
	}
	return c.store.Set(ctx, c.prefix+scopeSuffix, scopeKey)
}

// Get returns the cached items when the stored scope matches scopeKey and
// the entry is within the TTL window. Any other outcome clears the cache
// and reports a miss.
func (c *TTL[T]) Get(ctx context.Context, scopeKey string) (T, bool) {
	var zero T

	storedScope, ok, err := c.store.Get(ctx, c.prefix+scopeSuffix)
	if err != nil || !ok || storedScope != scopeKey {
		c.clearQuietly(ctx)
		return zero, false
	}

	age, ok := c.age(ctx)
	if !ok || age >= c.ttl {
		c.clearQuietly(ctx)
		return zero, false
	}

	raw, ok, err := c.store.Get(ctx, c.prefix+payloadSuffix)
	if err != nil || !ok {
		c.clearQuietly(ctx)
		return zero, false
	}

	var items T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.clearQuietly(ctx)
		return zero, false
	}

	return items, true
}

// Valid reports whether the cache holds an entry within the TTL window.
// It has no side effects.
func (c *TTL[T]) Valid(ctx context.Context) bool {
	age, ok := c.age(ctx)
	return ok && age < c.ttl
}

// Age returns the elapsed time since the cache was populated. It has no
// side effects.
func (c *TTL[T]) Age(ctx context.Context) (time.Duration, bool) {
	return c.age(ctx)
}

// Clear unconditionally removes the payload, timestamp, and scope key.
func (c *TTL[T]) Clear(ctx context.Context) error {
	return c.store.Delete(ctx,
		c.prefix+payloadSuffix,
		c.prefix+fetchedSuffix,
		c.prefix+scopeSuffix,
	)
}

func (c *TTL[T]) age(ctx context.Context) (time.Duration, bool) {
	raw, ok, err := c.store.Get(ctx, c.prefix+fetchedSuffix)
	if err != nil || !ok {
		return 0, false
	}

	fetched, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}

	age := c.now().Sub(time.Unix(fetched, 0))
	if age < 0 {
		return 0, false
	}
	return age, true
}

func (c *TTL[T]) clearQuietly(ctx context.Context) {
	_ = c.Clear(ctx)
}
