package redis_limiter

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisLimiter 基于Redis的并发限制器
// 用于约束对外部模型服务的同时在途调用数,多实例部署时共享槽位。
type RedisLimiter struct {
	client        *redis.Client
	maxConcurrent int
	keyPrefix     string
	ttl           time.Duration
}

// NewRedisLimiter 创建基于Redis的并发限制器
func NewRedisLimiter(client *redis.Client, maxConcurrent int, keyPrefix string, ttl time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:        client,
		maxConcurrent: maxConcurrent,
		keyPrefix:     keyPrefix,
		ttl:           ttl,
	}
}

// Acquire 获取并发槽位
// 未配置Redis客户端时直接放行。
func (rl *RedisLimiter) Acquire(ctx context.Context, key string) error {
	if rl.client == nil {
		return nil
	}

	redisKey := rl.keyPrefix + key

	// 使用Lua脚本确保原子性操作:
	// 未达上限则INCR并续期,达到上限则保持不变并返回失败
	script := redis.NewScript(
		`local current = redis.call('GET', KEYS[1])
		if current == false then
			current = 0
		else
			current = tonumber(current)
		end

		if current >= tonumber(ARGV[1]) then
			return current + 1
		end

		local newCount = redis.call('INCR', KEYS[1])
		redis.call('EXPIRE', KEYS[1], tonumber(ARGV[2]))
		return newCount`,
	)

	result, err := script.Run(ctx, rl.client, []string{redisKey}, rl.maxConcurrent, int(rl.ttl.Seconds())).Result()
	if err != nil {
		return fmt.Errorf("执行Lua脚本失败: %w", err)
	}

	newCount := int(result.(int64))
	if newCount > rl.maxConcurrent {
		log.Printf("[RedisLimiter] 槽位已满, key: %s, 当前: %d, 最大: %d", key, newCount-1, rl.maxConcurrent)
		return fmt.Errorf("模型服务并发已达上限: %d", rl.maxConcurrent)
	}

	return nil
}

// Release 释放并发槽位
func (rl *RedisLimiter) Release(ctx context.Context, key string) {
	if rl.client == nil {
		return
	}

	redisKey := rl.keyPrefix + key

	// DECR到0及以下时删除key,避免残留计数
	script := redis.NewScript(
		`local count = redis.call('DECR', KEYS[1])
		if tonumber(count) <= 0 then
			redis.call('DEL', KEYS[1])
			return 0
		end
		redis.call('EXPIRE', KEYS[1], tonumber(ARGV[1]))
		return count`,
	)

	if _, err := script.Run(ctx, rl.client, []string{redisKey}, int(rl.ttl.Seconds())).Result(); err != nil {
		log.Printf("[RedisLimiter] 释放槽位失败, key: %s, err: %v", key, err)
	}
}
