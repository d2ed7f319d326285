package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/shared-experiences-api/internal/config"
	"github.com/vietanh2810/shared-experiences-api/internal/domain"
	"github.com/vietanh2810/shared-experiences-api/internal/pkg/jwthelper"
)

const (
	testKey    = "0123456789abcdef0123456789abcdef"
	testIssuer = "tests"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func tokenFor(t *testing.T, id uint, role domain.Role) string {
	t.Helper()
	token, err := jwthelper.GenerateToken([]byte(testKey), testIssuer, time.Hour, domain.User{ID: id, Role: role})
	require.NoError(t, err)
	return token
}

func do(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyJWTAndRequireRoles(t *testing.T) {
	auth := NewAuthenticator(testKey, testIssuer)

	r := gin.New()
	r.GET("/any", auth.VerifyJWT(), func(ctx *gin.Context) {
		id, _ := UserIDFrom(ctx)
		ctx.JSON(http.StatusOK, gin.H{"id": id})
	})
	r.GET("/staff", auth.VerifyJWT(), RequireRoles(domain.RoleAdmin, domain.RoleManager), func(ctx *gin.Context) {
		ctx.Status(http.StatusNoContent)
	})

	tests := []struct {
		name  string
		path  string
		token string
		want  int
	}{
		{name: "no token", path: "/any", want: http.StatusUnauthorized},
		{name: "garbage token", path: "/any", token: "abc", want: http.StatusUnauthorized},
		{name: "guest on open route", path: "/any", token: tokenFor(t, 3, domain.RoleGuest), want: http.StatusOK},
		{name: "guest on staff route", path: "/staff", token: tokenFor(t, 3, domain.RoleGuest), want: http.StatusForbidden},
		{name: "manager on staff route", path: "/staff", token: tokenFor(t, 2, domain.RoleManager), want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, http.MethodGet, tt.path, tt.token)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireRoles_WithoutIdentity(t *testing.T) {
	r := gin.New()
	r.GET("/staff", RequireRoles(domain.RoleAdmin), func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	w := do(r, http.MethodGet, "/staff", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

type fakeQueue struct {
	mu   sync.Mutex
	recs []domain.AuditRecord
}

func (q *fakeQueue) Enqueue(rec domain.AuditRecord) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.recs = append(q.recs, rec)
	return true
}

func TestAudit(t *testing.T) {
	q := &fakeQueue{}
	auth := NewAuthenticator(testKey, testIssuer)

	r := gin.New()
	r.Use(auth.Identify(), Audit(q))
	r.POST("/api/providers", func(ctx *gin.Context) { ctx.Status(http.StatusCreated) })
	r.GET("/api/providers", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })
	r.DELETE("/api/providers/:id", func(ctx *gin.Context) { ctx.Status(http.StatusNotFound) })

	do(r, http.MethodPost, "/api/providers", tokenFor(t, 9, domain.RoleAdmin))
	do(r, http.MethodGet, "/api/providers", "")
	do(r, http.MethodDelete, "/api/providers/5", "")

	require.Len(t, q.recs, 2)

	assert.Equal(t, "Creating new provider", q.recs[0].Description)
	assert.Equal(t, "9", q.recs[0].ActorID)
	assert.Equal(t, "Admin", q.recs[0].ActorRole)
	assert.Equal(t, http.StatusCreated, q.recs[0].StatusCode)

	assert.Equal(t, "Deleting provider", q.recs[1].Description)
	assert.Equal(t, "/api/providers/5", q.recs[1].Path)
	assert.Equal(t, anonymousActor, q.recs[1].ActorID)
	assert.Equal(t, http.StatusNotFound, q.recs[1].StatusCode)
}

func TestRedisMiddlewares_PassThroughWithoutClient(t *testing.T) {
	cache := NewReportCache(nil, &config.CacheConfig{Enabled: true})

	r := gin.New()
	r.Use(RateLimit(&config.RateLimitConfig{Enabled: true, Capacity: 1}, nil), cache.InvalidateReports())
	r.GET("/api/reports/table2", cache.Serve(), func(ctx *gin.Context) { ctx.JSON(http.StatusOK, []string{}) })

	for i := 0; i < 3; i++ {
		w := do(r, http.MethodGet, "/api/reports/table2", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("X-Cache"))
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}
