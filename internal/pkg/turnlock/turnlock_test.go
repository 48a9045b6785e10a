package turnlock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockSerializesSameKey(t *testing.T) {
	r := NewRegistry(time.Minute)

	unlock, err := r.Lock(context.Background(), "conv-1")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = r.Lock(ctx, "conv-1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock()

	again, err := r.Lock(context.Background(), "conv-1")
	require.NoError(t, err)
	again()
}

func TestLockIndependentKeys(t *testing.T) {
	r := NewRegistry(time.Minute)

	first, err := r.Lock(context.Background(), "a")
	require.NoError(t, err)
	defer first()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	second, err := r.Lock(ctx, "b")
	require.NoError(t, err)
	second()

	assert.Equal(t, 2, r.Len())
}

func TestLockNoInterleaving(t *testing.T) {
	r := NewRegistry(time.Minute)

	var (
		wg       sync.WaitGroup
		inFlight atomic.Int32
		maxSeen  atomic.Int32
	)

	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock, err := r.Lock(context.Background(), "shared")
			if err != nil {
				return
			}
			defer unlock()

			n := inFlight.Add(1)
			if n > maxSeen.Load() {
				maxSeen.Store(n)
			}
			time.Sleep(time.Millisecond)
			inFlight.Add(-1)
		}()
	}

	wg.Wait()
	assert.Equal(t, int32(1), maxSeen.Load())
}
