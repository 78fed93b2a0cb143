package resource

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Memory(t *testing.T) {
	c := NewController(Config{MemoryLimitBytes: 100})

	require.True(t, c.TryAcquireMemory(50))
	require.True(t, c.TryAcquireMemory(40))
	assert.Equal(t, int64(90), c.MemoryUsage())

	assert.False(t, c.TryAcquireMemory(20), "over budget")
	assert.Equal(t, int64(90), c.MemoryUsage())

	c.ReleaseMemory(50)
	require.True(t, c.TryAcquireMemory(20))
	assert.Equal(t, int64(60), c.MemoryUsage())
	assert.Equal(t, int64(100), c.MemoryLimit())
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	require.True(t, c.TryAcquireMemory(1<<40))
	c.ReleaseMemory(1 << 39)
	assert.Equal(t, int64(1<<39), c.MemoryUsage())
	assert.Zero(t, c.MemoryLimit())
}

func TestController_Nil(t *testing.T) {
	var c *Controller
	assert.True(t, c.TryAcquireMemory(10))
	c.ReleaseMemory(10)
	assert.Zero(t, c.MemoryUsage())
	assert.Zero(t, c.MemoryLimit())
	require.NoError(t, c.AcquireFetch(context.Background()))
	c.ReleaseFetch()

	r := bytes.NewReader([]byte("ping"))
	assert.Same(t, r, c.Reader(context.Background(), r))
}

func TestController_FetchSlots(t *testing.T) {
	tests := []struct {
		name  string
		max   int64
		slots int
	}{
		{"Default", 0, 1},
		{"Two", 2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(Config{MaxConcurrentFetches: tt.max})
			for range tt.slots {
				require.NoError(t, c.AcquireFetch(t.Context()))
			}

			ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
			defer cancel()
			assert.ErrorIs(t, c.AcquireFetch(ctx), context.DeadlineExceeded)

			c.ReleaseFetch()
			require.NoError(t, c.AcquireFetch(t.Context()))
		})
	}
}

func TestReader(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	src := bytes.Repeat([]byte("sonar"), 1000)

	got, err := io.ReadAll(c.Reader(context.Background(), bytes.NewReader(src)))
	require.NoError(t, err)
	assert.Equal(t, src, got)
}

func TestReader_ShortensToBurst(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 64})
	r := c.Reader(context.Background(), bytes.NewReader(make([]byte, 256)))

	n, err := r.Read(make([]byte, 256))
	require.NoError(t, err)
	assert.Equal(t, 64, n)
}

func TestReader_Canceled(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 10})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Reader(ctx, bytes.NewReader(make([]byte, 100))).Read(make([]byte, 10))
	assert.Error(t, err)
}

func TestReader_Unlimited(t *testing.T) {
	r := bytes.NewReader(nil)
	assert.Same(t, r, NewController(Config{}).Reader(context.Background(), r))
}
