package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// ImageLoader fetches raw image bytes for a URL. The production loader
// goes through the client's transport; tests substitute fakes.
type ImageLoader func(ctx context.Context, url string) ([]byte, error)

// ImageHooks are optional observation points for metrics. Nil hooks are
// skipped.
type ImageHooks struct {
	// OnFetch fires when a load actually reaches the loader.
	OnFetch func()
	// OnShared fires for each caller that joined an in-flight load
	// instead of issuing its own.
	OnShared func()
	// OnHit fires on a memory-cache hit.
	OnHit func()
}

// Images caches decoded image bytes in memory and collapses concurrent
// loads: while a load for URL K is in flight, further callers for K await
// the same result rather than issuing duplicate transport calls. A
// completed or failed load releases the in-flight marker, so a later call
// can retry.
type Images struct {
	loader ImageLoader
	hooks  ImageHooks

	group singleflight.Group

	mu   sync.RWMutex
	data map[string][]byte
}

// NewImages creates an image cache around loader.
func NewImages(loader ImageLoader, hooks ImageHooks) *Images {
	return &Images{
		loader: loader,
		hooks:  hooks,
		data:   make(map[string][]byte),
	}
}

// Load returns the image bytes for url, from memory when cached, otherwise
// via a (possibly shared) loader call. Failed loads are not cached. An
// abandoned caller does not cancel the underlying fetch — the load runs on
// a detached context so other waiters still get a result.
func (c *Images) Load(ctx context.Context, url string) ([]byte, error) {
	c.mu.RLock()
	cached, ok := c.data[url]
	c.mu.RUnlock()
	if ok {
		c.fire(c.hooks.OnHit)
		return cached, nil
	}

	result, err, shared := c.group.Do(url, func() (any, error) {
		c.fire(c.hooks.OnFetch)

		img, err := c.loader(context.WithoutCancel(ctx), url)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.data[url] = img
		c.mu.Unlock()

		return img, nil
	})
	if shared {
		c.fire(c.hooks.OnShared)
	}
	if err != nil {
		return nil, err
	}

	return result.([]byte), nil
}

// Forget drops the cached bytes for url, forcing the next Load to fetch.
func (c *Images) Forget(url string) {
	c.mu.Lock()
	delete(c.data, url)
	c.mu.Unlock()
}

// Clear drops every cached image.
func (c *Images) Clear() {
	c.mu.Lock()
	c.data = make(map[string][]byte)
	c.mu.Unlock()
}

func (c *Images) fire(hook func()) {
	if hook != nil {
		hook()
	}
}
