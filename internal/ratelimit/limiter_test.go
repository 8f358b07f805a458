package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestLimiterName(t *testing.T) {
	limiter := New("NDL", 1)
	assert.Equal(t, "NDL", limiter.Name())
}

func TestWaitAllowsBurst(t *testing.T) {
	limiter := New("test", 100)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 5; i++ {
		assert.NoError(t, limiter.Wait(ctx))
	}
}

func TestWaitCancelledContext(t *testing.T) {
	limiter := New("test", 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := limiter.Wait(ctx)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "test")
}
