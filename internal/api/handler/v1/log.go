package v1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/shared-experiences-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/shared-experiences-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/shared-experiences-api/internal/domain"
	"github.com/vietanh2810/shared-experiences-api/internal/service"
)

type LogService interface {
	Search(ctx context.Context, in service.LogSearch) (domain.AuditPage, error)
	OperationTypes(ctx context.Context) ([]domain.OperationCount, error)
}

type LogHandler struct {
	svc LogService
}

func NewLogHandler(svc LogService) *LogHandler {
	return &LogHandler{
		svc: svc,
	}
}

// HandleSearchLogs godoc
// @Summary      Search audit records
// @Tags         logs
// @Produce      json
// @Param        actorId      query     string  false  "actor id (exact)"
// @Param        method       query     string  false  "POST, PUT or DELETE"
// @Param        description  query     string  false  "case-insensitive substring"
// @Param        startDate    query     string  false  "inclusive start"
// @Param        endDate      query     string  false  "inclusive end day"
// @Param        page         query     int     false  "page, default 1"
// @Param        pageSize     query     int     false  "page size, default 20, max 100"
// @Success      200          {object}  domain.AuditPage
// @Failure      400          {object}  response.Err
// @Failure      403          {object}  response.Err
// @Router       /logs/search [get]
// @Security BearerAuth
func (h *LogHandler) HandleSearchLogs(ctx *gin.Context) {
	var req request.LogSearchRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	start, end := req.Range()
	page, err := h.svc.Search(ctx.Request.Context(), service.LogSearch{
		ActorID:     req.ActorID,
		Method:      req.Method,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		Page:        req.Page,
		PageSize:    req.PageSize,
	})
	if err != nil {
		renderServiceErr(ctx, "v1.HandleSearchLogs -> h.svc.Search", "log", nil, err)
		return
	}

	ctx.Header("X-Total-Count", strconv.FormatInt(page.TotalCount, 10))
	ctx.JSON(http.StatusOK, page)
}

// HandleOperationTypes godoc
// @Summary      Count write operations by description
// @Tags         logs
// @Produce      json
// @Success      200  {array}   domain.OperationCount
// @Failure      403  {object}  response.Err
// @Router       /logs/operation-types [get]
// @Security BearerAuth
func (h *LogHandler) HandleOperationTypes(ctx *gin.Context) {
	counts, err := h.svc.OperationTypes(ctx.Request.Context())
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("v1.HandleOperationTypes -> h.svc.OperationTypes -> %w", err)))
		return
	}

	ctx.JSON(http.StatusOK, counts)
}
