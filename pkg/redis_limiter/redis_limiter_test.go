package redis_limiter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRedisLimiter_NilClientPassesThrough(t *testing.T) {
	limiter := NewRedisLimiter(nil, 4, "llm_concurrency", time.Minute)

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		assert.NoError(t, limiter.Acquire(ctx, "gpt-4o-mini"))
	}
	// 释放同样不会panic
	limiter.Release(ctx, "gpt-4o-mini")
}
