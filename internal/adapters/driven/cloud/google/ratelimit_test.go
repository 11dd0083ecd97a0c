package google

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRateLimiter_Defaults(t *testing.T) {
	limiter := NewRateLimiter(0)

	assert.InDelta(t, DefaultRequestsPerSecond, float64(limiter.limiter.Limit()), 0.001)
	assert.Equal(t, int(DefaultRequestsPerSecond*2), limiter.limiter.Burst())
}

func TestNewRateLimiter_SlowRateKeepsBurstOfOne(t *testing.T) {
	limiter := NewRateLimiter(0.2)

	assert.Equal(t, 1, limiter.limiter.Burst())
	assert.True(t, limiter.Allow())
	assert.False(t, limiter.Allow())
}

func TestRateLimiter_Wait(t *testing.T) {
	limiter := NewRateLimiter(100)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, limiter.Wait(ctx))
}

func TestRateLimiter_RecordRateLimitError(t *testing.T) {
	limiter := NewRateLimiter(100)

	limiter.RecordRateLimitError(time.Hour)
	assert.False(t, limiter.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, limiter.Wait(ctx), context.DeadlineExceeded)
}

func TestRateLimiter_DefaultBackoff(t *testing.T) {
	limiter := NewRateLimiter(100)

	limiter.RecordRateLimitError(0)

	assert.WithinDuration(t, time.Now().Add(30*time.Second), limiter.retryAt, time.Second)
}
