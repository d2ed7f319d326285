package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/shared-experiences-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/shared-experiences-api/internal/domain"
	"github.com/vietanh2810/shared-experiences-api/internal/pkg/jwthelper"
)

// Keys set on the gin context for authenticated requests.
const (
	ContextUserID = "userID"
	ContextRole   = "userRole"
)

var errMissingToken = errors.New("missing bearer token")

type Authenticator struct {
	key    []byte
	issuer string
}

func NewAuthenticator(key, issuer string) *Authenticator {
	return &Authenticator{
		key:    []byte(key),
		issuer: issuer,
	}
}

// VerifyJWT rejects requests without a valid bearer token with 401.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := ctx.Get(ContextUserID); ok {
			ctx.Next()
			return
		}

		claims, err := a.parse(ctx)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthenticated(err))
			return
		}

		setIdentity(ctx, claims)
		ctx.Next()
	}
}

// Identify attaches the caller's identity when a valid token is present and
// lets anonymous requests through.
func (a *Authenticator) Identify() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if claims, err := a.parse(ctx); err == nil {
			setIdentity(ctx, claims)
		}
		ctx.Next()
	}
}

func (a *Authenticator) parse(ctx *gin.Context) (*jwthelper.Claims, error) {
	header := ctx.GetHeader("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return nil, errMissingToken
	}

	return jwthelper.ParseToken(a.key, a.issuer, strings.TrimSpace(token))
}

func setIdentity(ctx *gin.Context, claims *jwthelper.Claims) {
	id, _ := claims.UserID()
	ctx.Set(ContextUserID, id)
	ctx.Set(ContextRole, domain.Role(claims.Role))
}

// RequireRoles answers 403 unless the authenticated role is one of roles.
// It must run after VerifyJWT.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(ctx *gin.Context) {
		role, ok := RoleFrom(ctx)
		if !ok {
			response.RenderErr(ctx, response.ErrUnauthenticated(errMissingToken))
			return
		}
		if _, ok = allowed[role]; !ok {
			response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("role %s may not access this resource", role)))
			return
		}

		ctx.Next()
	}
}

func UserIDFrom(ctx *gin.Context) (uint, bool) {
	v, ok := ctx.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)

	return id, ok
}

func RoleFrom(ctx *gin.Context) (domain.Role, bool) {
	v, ok := ctx.Get(ContextRole)
	if !ok {
		return "", false
	}
	role, ok := v.(domain.Role)

	return role, ok
}
