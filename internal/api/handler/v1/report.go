package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/shared-experiences-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type ReportService interface {
	Table1(ctx context.Context) ([]domain.ProviderRow, error)
	Table2(ctx context.Context) ([]domain.ServiceRow, error)
	Table3(ctx context.Context) ([]domain.ExperienceRow, error)
	Table4(ctx context.Context, experienceID uint) ([]domain.GuestNameRow, error)
	Table5(ctx context.Context, experienceID uint) ([]domain.ServiceNameRow, error)
	Table6(ctx context.Context, serviceID uint) ([]domain.GuestServiceRow, error)
	Table7(ctx context.Context) (domain.PriceStats, error)
	Table8(ctx context.Context) ([]domain.ServiceSalesRow, error)
	Table9(ctx context.Context) ([]domain.GuestBillingRow, error)
}

type ReportHandler struct {
	svc ReportService
}

func NewReportHandler(svc ReportService) *ReportHandler {
	return &ReportHandler{
		svc: svc,
	}
}

func renderReport(ctx *gin.Context, table string, rows interface{}, err error) {
	if err != nil {
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("v1.%s -> %w", table, err)))
		return
	}

	ctx.JSON(http.StatusOK, rows)
}

// HandleTable1 godoc
// @Summary      Providers report
// @Tags         reports
// @Produce      json
// @Success      200  {array}   domain.ProviderRow
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Router       /sharedexperiences/Table1 [get]
// @Security BearerAuth
func (h *ReportHandler) HandleTable1(ctx *gin.Context) {
	rows, err := h.svc.Table1(ctx.Request.Context())
	renderReport(ctx, "Table1", rows, err)
}

// HandleTable2 godoc
// @Summary      Services report
// @Tags         reports
// @Produce      json
// @Success      200  {array}   domain.ServiceRow
// @Router       /sharedexperiences/Table2 [get]
func (h *ReportHandler) HandleTable2(ctx *gin.Context) {
	rows, err := h.svc.Table2(ctx.Request.Context())
	renderReport(ctx, "Table2", rows, err)
}

// HandleTable3 godoc
// @Summary      Shared experiences by date, newest first
// @Tags         reports
// @Produce      json
// @Success      200  {array}   domain.ExperienceRow
// @Router       /sharedexperiences/Table3 [get]
func (h *ReportHandler) HandleTable3(ctx *gin.Context) {
	rows, err := h.svc.Table3(ctx.Request.Context())
	renderReport(ctx, "Table3", rows, err)
}

// HandleTable4 godoc
// @Summary      Guests of a shared experience
// @Tags         reports
// @Produce      json
// @Param        sharedExperienceId  query     int  true  "shared experience id"
// @Success      200                 {array}   domain.GuestNameRow
// @Failure      400                 {object}  response.Err
// @Router       /sharedexperiences/Table4 [get]
// @Security BearerAuth
func (h *ReportHandler) HandleTable4(ctx *gin.Context) {
	id, ok := queryID(ctx, "sharedExperienceId")
	if !ok {
		return
	}

	rows, err := h.svc.Table4(ctx.Request.Context(), id)
	renderReport(ctx, "Table4", rows, err)
}

// HandleTable5 godoc
// @Summary      Services of a shared experience
// @Tags         reports
// @Produce      json
// @Param        sharedExperienceId  query     int  true  "shared experience id"
// @Success      200                 {array}   domain.ServiceNameRow
// @Failure      400                 {object}  response.Err
// @Router       /sharedexperiences/Table5 [get]
func (h *ReportHandler) HandleTable5(ctx *gin.Context) {
	id, ok := queryID(ctx, "sharedExperienceId")
	if !ok {
		return
	}

	rows, err := h.svc.Table5(ctx.Request.Context(), id)
	renderReport(ctx, "Table5", rows, err)
}

// HandleTable6 godoc
// @Summary      Guests reaching a service through shared experiences
// @Tags         reports
// @Produce      json
// @Param        serviceId  query     int  true  "service id"
// @Success      200        {array}   domain.GuestServiceRow
// @Failure      400        {object}  response.Err
// @Router       /sharedexperiences/Table6 [get]
// @Security BearerAuth
func (h *ReportHandler) HandleTable6(ctx *gin.Context) {
	id, ok := queryID(ctx, "serviceId")
	if !ok {
		return
	}

	rows, err := h.svc.Table6(ctx.Request.Context(), id)
	renderReport(ctx, "Table6", rows, err)
}

// HandleTable7 godoc
// @Summary      Service price statistics
// @Description  All values are zero when no services exist.
// @Tags         reports
// @Produce      json
// @Success      200  {object}  domain.PriceStats
// @Router       /sharedexperiences/Table7 [get]
// @Security BearerAuth
func (h *ReportHandler) HandleTable7(ctx *gin.Context) {
	stats, err := h.svc.Table7(ctx.Request.Context())
	renderReport(ctx, "Table7", stats, err)
}

// HandleTable8 godoc
// @Summary      Guest count and sales per service
// @Tags         reports
// @Produce      json
// @Success      200  {array}   domain.ServiceSalesRow
// @Router       /sharedexperiences/Table8 [get]
// @Security BearerAuth
func (h *ReportHandler) HandleTable8(ctx *gin.Context) {
	rows, err := h.svc.Table8(ctx.Request.Context())
	renderReport(ctx, "Table8", rows, err)
}

// HandleTable9 godoc
// @Summary      Billed total per guest
// @Tags         reports
// @Produce      json
// @Success      200  {array}   domain.GuestBillingRow
// @Router       /sharedexperiences/Table9 [get]
// @Security BearerAuth
func (h *ReportHandler) HandleTable9(ctx *gin.Context) {
	rows, err := h.svc.Table9(ctx.Request.Context())
	renderReport(ctx, "Table9", rows, err)
}
