package middleware

import (
	"strconv"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/shared-experiences-api/internal/audit"
	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

const anonymousActor = "anonymous"

type AuditQueue interface {
	Enqueue(rec domain.AuditRecord) bool
}

// Audit records every write request once the handler has finished. A nil
// queue turns it into a no-op.
func Audit(q AuditQueue) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		if q == nil || !isWrite(ctx.Request.Method) {
			return
		}

		route := ctx.FullPath()
		if route == "" {
			route = ctx.Request.URL.Path
		}

		rec := domain.AuditRecord{
			Timestamp:   time.Now().UTC(),
			Method:      ctx.Request.Method,
			Path:        ctx.Request.URL.Path,
			Description: audit.Describe(ctx.Request.Method, route),
			ActorID:     anonymousActor,
			StatusCode:  ctx.Writer.Status(),
			RequestID:   requestid.Get(ctx),
		}
		if id, ok := UserIDFrom(ctx); ok {
			rec.ActorID = strconv.FormatUint(uint64(id), 10)
		}
		if role, ok := RoleFrom(ctx); ok {
			rec.ActorRole = string(role)
		}

		q.Enqueue(rec)
	}
}

func isWrite(method string) bool {
	for _, m := range domain.WriteMethods {
		if m == method {
			return true
		}
	}

	return false
}
