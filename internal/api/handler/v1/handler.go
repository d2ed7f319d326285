package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/shared-experiences-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

const basePath = "/api"

type validatable interface {
	Validate() error
}

// bindJSON decodes and validates the body, rendering 400 on failure.
func bindJSON(ctx *gin.Context, req validatable) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return false
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return false
	}

	return true
}

// pathID parses a positive numeric path parameter, rendering 400 otherwise.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("%s must be a positive integer", name)))
		return 0, false
	}

	return uint(id), true
}

// queryID parses a required positive numeric query parameter.
func queryID(ctx *gin.Context, name string) (uint, bool) {
	raw, ok := ctx.GetQuery(name)
	if !ok || raw == "" {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("%s is required", name)))
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("%s must be a positive integer", name)))
		return 0, false
	}

	return uint(id), true
}

// checkBodyID rejects a body id that disagrees with the path id.
func checkBodyID(ctx *gin.Context, pathID, bodyID uint) bool {
	if bodyID != 0 && bodyID != pathID {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("body id %d does not match path id %d", bodyID, pathID)))
		return false
	}

	return true
}

// renderServiceErr maps service errors onto HTTP responses.
func renderServiceErr(ctx *gin.Context, op, resource string, id interface{}, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.RenderErr(ctx, response.ErrNotFound(resource, "id", id))
	case errors.Is(err, domain.ErrValidation):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}

func created(ctx *gin.Context, resource string, id uint, body interface{}) {
	ctx.Header("Location", fmt.Sprintf("%s/%s/%d", basePath, resource, id))
	ctx.JSON(http.StatusCreated, body)
}

// HandleHealthcheck godoc
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.Health
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.Health{Status: "ok"})
}
