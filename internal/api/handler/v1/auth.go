package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/shared-experiences-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/shared-experiences-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/shared-experiences-api/internal/api/middleware"
	"github.com/vietanh2810/shared-experiences-api/internal/config"
	"github.com/vietanh2810/shared-experiences-api/internal/domain"
	"github.com/vietanh2810/shared-experiences-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/shared-experiences-api/internal/service"
)

const (
	msgUserCreated        = "User created successfully!"
	msgUserExists         = "User already exists!"
	msgLoginSuccessful    = "Login successful"
	msgInvalidCredentials = "Invalid email or password."
)

type AuthService interface {
	Register(ctx context.Context, in service.RegisterInput) (domain.User, error)
	Login(ctx context.Context, email, password string) (domain.User, error)
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

type AuthHandler struct {
	conf *config.AuthConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.AuthConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleRegister godoc
// @Summary      Register a new account
// @Description  Provider and Guest accounts get a linked profile record. Unknown or privileged roles fall back to Guest.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.RegisterRequest  true  "request body"
// @Success      201      {object}  response.RegisterResponse
// @Failure      400      {object}  response.Err
// @Failure      429      {object}  response.Err
// @Router       /auth/register [post]
func (h *AuthHandler) HandleRegister(ctx *gin.Context) {
	var req request.RegisterRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := h.svc.Register(ctx.Request.Context(), service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Role:        req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserEmailExists):
			ctx.AbortWithStatusJSON(http.StatusBadRequest, response.RegisterResponse{Message: msgUserExists})
		case errors.Is(err, domain.ErrValidation):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		default:
			response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("v1.HandleRegister -> h.svc.Register -> %w", err)))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.RegisterResponse{
		Success: true,
		Message: msgUserCreated,
		Roles:   []string{string(user.Role)},
	})
}

// HandleLogin godoc
// @Summary      Login and receive a bearer token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      request.LoginRequest  true  "request body"
// @Success      200      {object}  response.LoginResponse
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.LoginResponse
// @Failure      429      {object}  response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	var req request.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := h.svc.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, response.LoginResponse{Message: msgInvalidCredentials})
			return
		}

		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)))
		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), h.conf.JWTIssuer, h.conf.TokenTTL, user)
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)))
		return
	}

	// The audit trail attributes the login to the account that just signed in.
	ctx.Set(middleware.ContextUserID, user.ID)
	ctx.Set(middleware.ContextRole, user.Role)

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Success:  true,
		Message:  msgLoginSuccessful,
		Token:    token,
		UserName: displayName(user),
		Roles:    []string{string(user.Role)},
	})
}

// HandleGetCurrentUser godoc
// @Summary      Get the signed-in account
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /auth/me [get]
// @Security BearerAuth
func (h *AuthHandler) HandleGetCurrentUser(ctx *gin.Context) {
	id, ok := middleware.UserIDFrom(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthenticated(domain.ErrUnauthenticated))
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetCurrentUser -> h.svc.GetUser", "user", id, err)
		return
	}

	ctx.JSON(http.StatusOK, user)
}

func displayName(user domain.User) string {
	if name := user.FullName(); name != "" {
		return name
	}

	return user.Email
}
