package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vietanh2810/shared-experiences-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/shared-experiences-api/internal/config"
)

var tokenBucket = redis.NewScript(`
	local key = KEYS[1]
	local now_ms = tonumber(ARGV[1])
	local capacity = tonumber(ARGV[2])
	local interval_ms = tonumber(ARGV[3])
	local ttl_seconds = tonumber(ARGV[4])

	local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
	local tokens = tonumber(state[1])
	local last_refill = tonumber(state[2])

	if tokens == nil or last_refill == nil then
		tokens = capacity
		last_refill = now_ms
	end

	if interval_ms > 0 then
		local elapsed = math.max(0, now_ms - last_refill)
		local intervals = math.floor(elapsed / interval_ms)
		if intervals > 0 then
			tokens = math.min(capacity, tokens + intervals)
			last_refill = last_refill + (intervals * interval_ms)
		end
	end

	local allowed = 0
	local retry_after_ms = 0
	if tokens > 0 then
		allowed = 1
		tokens = tokens - 1
	else
		retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
	end

	redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
	redis.call('EXPIRE', key, ttl_seconds)

	return { allowed, tokens, retry_after_ms }
`)

// RateLimit is a per-client-IP token bucket kept in redis. It lets every
// request through when disabled, when rdb is nil, or when redis errors.
func RateLimit(conf *config.RateLimitConfig, rdb *redis.Client) gin.HandlerFunc {
	if conf == nil || !conf.Enabled || rdb == nil {
		return func(ctx *gin.Context) { ctx.Next() }
	}

	ttl := int64(conf.RefillEvery.Seconds()*float64(conf.Capacity)) + 1

	return func(ctx *gin.Context) {
		key := conf.Prefix + ":" + ctx.FullPath() + ":" + ctx.ClientIP()
		args := []interface{}{
			time.Now().UnixMilli(),
			conf.Capacity,
			conf.RefillEvery.Milliseconds(),
			ttl,
		}

		vals, err := tokenBucket.Run(ctx.Request.Context(), rdb, []string{key}, args...).Int64Slice()
		if err != nil || len(vals) != 3 {
			zap.L().Warn("rate limit check failed, allowing request", zap.String("key", key), zap.Error(err))
			ctx.Next()
			return
		}

		ctx.Header("X-RateLimit-Limit", strconv.Itoa(conf.Capacity))
		ctx.Header("X-RateLimit-Remaining", strconv.FormatInt(vals[1], 10))

		if vals[0] != 1 {
			secs := int(math.Ceil(float64(vals[2]) / 1000.0))
			ctx.Header("Retry-After", strconv.Itoa(secs))
			response.RenderErr(ctx, response.ErrTooManyRequests(secs))
			return
		}

		ctx.Next()
	}
}
