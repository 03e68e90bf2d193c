package async_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authclient/pkg/async"
)

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns function result", func(t *testing.T) {
		t.Parallel()
		future := async.Async(context.Background(), 42, func(_ context.Context, num int) (string, error) {
			time.Sleep(10 * time.Millisecond)
			return fmt.Sprintf("Number: %d", num), nil
		})

		res, err := future.Await()
		require.NoError(t, err)
		assert.Equal(t, "Number: 42", res)
		assert.True(t, future.IsComplete())
	})

	t.Run("propagates function error", func(t *testing.T) {
		t.Parallel()
		expectedErr := errors.New("an error occurred in the async function")
		future := async.Async(context.Background(), 42, func(_ context.Context, _ int) (int, error) {
			return 0, expectedErr
		})

		res, err := future.Await()
		assert.ErrorIs(t, err, expectedErr)
		assert.Zero(t, res)
	})

	t.Run("pre-canceled context skips the function", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		future := async.Async(ctx, 1, func(_ context.Context, n int) (int, error) {
			called = true
			return n, nil
		})

		_, err := future.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})

	t.Run("deadline reaches the function", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		future := async.Async(ctx, 42, func(ctx context.Context, num int) (string, error) {
			select {
			case <-time.After(time.Second):
				return fmt.Sprintf("Number: %d", num), nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		})

		res, err := future.Await()
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Empty(t, res)
	})
}

func TestGo(t *testing.T) {
	t.Parallel()

	future := async.Go(context.Background(), func(_ context.Context) (bool, error) {
		return true, nil
	})

	res, err := future.Await()
	require.NoError(t, err)
	assert.True(t, res)
}

func TestResolved(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	future := async.Resolved("value", errBoom)

	assert.True(t, future.IsComplete())
	res, err := future.Await()
	assert.Equal(t, "value", res)
	assert.ErrorIs(t, err, errBoom)
}

func TestFuture_AwaitWithTimeout(t *testing.T) {
	t.Parallel()

	t.Run("times out on pending future", func(t *testing.T) {
		t.Parallel()
		p := async.NewPromise[int]()

		res, err := p.Future().AwaitWithTimeout(10 * time.Millisecond)
		assert.ErrorIs(t, err, async.ErrTimeout)
		assert.Zero(t, res)
		assert.False(t, p.Future().IsComplete())
	})

	t.Run("returns result when completed in time", func(t *testing.T) {
		t.Parallel()
		future := async.Resolved(7, nil)

		res, err := future.AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.Equal(t, 7, res)
	})
}

func TestFuture_AwaitContext(t *testing.T) {
	t.Parallel()

	p := async.NewPromise[string]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Future().AwaitContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	// The future itself is unaffected by the abandoned wait.
	p.Resolve("late", nil)
	res, err := p.Future().AwaitContext(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "late", res)
}

func TestPromise_ResolveOnce(t *testing.T) {
	t.Parallel()

	p := async.NewPromise[int]()

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := range 100 {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			if p.Resolve(v, nil) {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)

	first, err := p.Future().Await()
	require.NoError(t, err)
	second, _ := p.Future().Await()
	assert.Equal(t, first, second)

	select {
	case <-p.Future().Done():
	default:
		t.Fatal("done channel should be closed")
	}
}

func TestAsyncConcurrentIncrement(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	var mu sync.Mutex
	counter := 0

	futures := make([]*async.Future[int], 0, 1000)
	for range 1000 {
		futures = append(futures, async.Async(ctx, 1, func(_ context.Context, delta int) (int, error) {
			mu.Lock()
			defer mu.Unlock()
			counter += delta
			return counter, nil
		}))
	}

	for _, future := range futures {
		_, err := future.Await()
		require.NoError(t, err)
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1000, counter)
}
