package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vietanh2810/shared-experiences-api/internal/config"
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// captureWriter keeps a copy of the body while forwarding it to the client.
type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// ReportCache is a read-through cache for GET report responses. Entries are
// keyed by a generation counter that InvalidateReports bumps, so any write
// makes every cached table stale at once.
type ReportCache struct {
	rdb  *redis.Client
	conf *config.CacheConfig
}

func NewReportCache(rdb *redis.Client, conf *config.CacheConfig) *ReportCache {
	return &ReportCache{
		rdb:  rdb,
		conf: conf,
	}
}

func (c *ReportCache) enabled() bool {
	return c != nil && c.rdb != nil && c.conf != nil && c.conf.Enabled
}

func (c *ReportCache) generationKey() string {
	return c.conf.Prefix + ":gen"
}

func (c *ReportCache) key(ctx context.Context, r *http.Request) string {
	gen, err := c.rdb.Get(ctx, c.generationKey()).Int64()
	if err != nil && err != redis.Nil {
		zap.L().Warn("report cache generation lookup failed", zap.Error(err))
	}
	sum := sha1.Sum([]byte(r.Method + " " + r.URL.Path + "?" + r.URL.RawQuery))

	return fmt.Sprintf("%s:%d:%x", c.conf.Prefix, gen, sum[:])
}

// Serve answers from cache when possible and stores successful responses.
func (c *ReportCache) Serve() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !c.enabled() || ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		reqCtx := ctx.Request.Context()
		key := c.key(reqCtx, ctx.Request)

		if raw, err := c.rdb.Get(reqCtx, key).Bytes(); err == nil {
			var cached cachedResponse
			if err = json.Unmarshal(raw, &cached); err == nil {
				ctx.Header("X-Cache", "HIT")
				ctx.Data(cached.Status, cached.ContentType, cached.Body)
				ctx.Abort()
				return
			}
		}

		cw := &captureWriter{ResponseWriter: ctx.Writer}
		ctx.Writer = cw
		ctx.Header("X-Cache", "MISS")

		ctx.Next()

		if cw.Status() != http.StatusOK {
			return
		}
		payload, err := json.Marshal(cachedResponse{
			Status:      cw.Status(),
			ContentType: cw.Header().Get("Content-Type"),
			Body:        cw.buf.Bytes(),
		})
		if err != nil {
			return
		}
		ttl := c.conf.TTL
		if ttl <= 0 {
			ttl = 5 * time.Minute
		}
		if err = c.rdb.Set(context.Background(), key, payload, ttl).Err(); err != nil {
			zap.L().Warn("report cache store failed", zap.Error(err))
		}
	}
}

// InvalidateReports bumps the cache generation after a successful write.
func (c *ReportCache) InvalidateReports() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		if !c.enabled() || !isWrite(ctx.Request.Method) || ctx.Writer.Status() >= http.StatusBadRequest {
			return
		}
		if err := c.rdb.Incr(context.Background(), c.generationKey()).Err(); err != nil {
			zap.L().Warn("report cache invalidation failed", zap.Error(err))
		}
	}
}
