package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestImagesConcurrentLoadsShareOneFetch(t *testing.T) {
	var fetches atomic.Int64
	gate := make(chan struct{})

	loader := func(ctx context.Context, url string) ([]byte, error) {
		fetches.Add(1)
		<-gate
		return []byte("png-bytes:" + url), nil
	}

	c := NewImages(loader, ImageHooks{})

	const callers = 8
	results := make([][]byte, callers)
	errs := make([]error, callers)

	var started, done sync.WaitGroup
	for i := 0; i < callers; i++ {
		started.Add(1)
		done.Add(1)
		go func(i int) {
			defer done.Done()
			started.Done()
			results[i], errs[i] = c.Load(context.Background(), "https://cdn.example.com/a.png")
		}(i)
	}

	started.Wait()
	close(gate)
	done.Wait()

	require.EqualValues(t, 1, fetches.Load(), "concurrent loads for one URL must share a single fetch")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, []byte("png-bytes:https://cdn.example.com/a.png"), results[i])
	}
}

func TestImagesFailedLoadIsRetriable(t *testing.T) {
	var fetches atomic.Int64
	fail := true

	loader := func(ctx context.Context, url string) ([]byte, error) {
		fetches.Add(1)
		if fail {
			return nil, errors.New("connection reset")
		}
		return []byte("ok"), nil
	}

	c := NewImages(loader, ImageHooks{})
	ctx := context.Background()

	_, err := c.Load(ctx, "https://cdn.example.com/b.png")
	require.Error(t, err)

	// The failed load released the in-flight marker and cached nothing.
	fail = false
	img, err := c.Load(ctx, "https://cdn.example.com/b.png")
	require.NoError(t, err)
	require.Equal(t, []byte("ok"), img)
	require.EqualValues(t, 2, fetches.Load())
}

func TestImagesMemoryHitSkipsLoader(t *testing.T) {
	var fetches, hits atomic.Int64

	loader := func(ctx context.Context, url string) ([]byte, error) {
		fetches.Add(1)
		return []byte("ok"), nil
	}

	c := NewImages(loader, ImageHooks{OnHit: func() { hits.Add(1) }})
	ctx := context.Background()

	_, err := c.Load(ctx, "https://cdn.example.com/c.png")
	require.NoError(t, err)
	_, err = c.Load(ctx, "https://cdn.example.com/c.png")
	require.NoError(t, err)

	require.EqualValues(t, 1, fetches.Load())
	require.EqualValues(t, 1, hits.Load())

	c.Forget("https://cdn.example.com/c.png")
	_, err = c.Load(ctx, "https://cdn.example.com/c.png")
	require.NoError(t, err)
	require.EqualValues(t, 2, fetches.Load())
}

func TestImagesAbandonedCallerDoesNotCancelFetch(t *testing.T) {
	gate := make(chan struct{})
	var sawCancel atomic.Bool

	loader := func(ctx context.Context, url string) ([]byte, error) {
		<-gate
		if ctx.Err() != nil {
			sawCancel.Store(true)
		}
		return []byte("ok"), nil
	}

	c := NewImages(loader, ImageHooks{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Load(ctx, "https://cdn.example.com/d.png")
	}()

	cancel()
	close(gate)
	<-done

	require.False(t, sawCancel.Load(), "fetch runs on a detached context")
}
