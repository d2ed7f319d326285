package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/shared-experiences-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type BillingService interface {
	GetBillings(ctx context.Context) ([]domain.Billing, error)
	GetBilling(ctx context.Context, id uint) (domain.Billing, error)
	CreateBilling(ctx context.Context, billing domain.Billing, partySize int) (domain.Billing, error)
	UpdateBilling(ctx context.Context, billing domain.Billing) (domain.Billing, error)
	DeleteBilling(ctx context.Context, id uint) error
}

type BillingHandler struct {
	svc BillingService
}

func NewBillingHandler(svc BillingService) *BillingHandler {
	return &BillingHandler{
		svc: svc,
	}
}

// HandleGetBillings godoc
// @Summary      List billings
// @Tags         billings
// @Produce      json
// @Success      200  {array}   domain.Billing
// @Router       /billings [get]
// @Security BearerAuth
func (h *BillingHandler) HandleGetBillings(ctx *gin.Context) {
	billings, err := h.svc.GetBillings(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetBillings -> h.svc.GetBillings", "billing", nil, err)
		return
	}

	ctx.JSON(http.StatusOK, billings)
}

// HandleGetBilling godoc
// @Summary      Get a billing
// @Tags         billings
// @Produce      json
// @Param        id   path      int  true  "billing id"
// @Success      200  {object}  domain.Billing
// @Failure      404  {object}  response.Err
// @Router       /billings/{id} [get]
// @Security BearerAuth
func (h *BillingHandler) HandleGetBilling(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	billing, err := h.svc.GetBilling(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetBilling -> h.svc.GetBilling", "billing", id, err)
		return
	}

	ctx.JSON(http.StatusOK, billing)
}

// HandleCreateBilling godoc
// @Summary      Create a billing
// @Description  With serviceId set, the amount and provider are taken from the service and its discount.
// @Tags         billings
// @Accept       json
// @Produce      json
// @Param        request  body      request.BillingRequest  true  "billing"
// @Success      201      {object}  domain.Billing
// @Failure      400      {object}  response.Err
// @Router       /billings [post]
// @Security BearerAuth
func (h *BillingHandler) HandleCreateBilling(ctx *gin.Context) {
	var req request.BillingRequest
	if !bindJSON(ctx, &req) {
		return
	}

	billing, err := h.svc.CreateBilling(ctx.Request.Context(), req.ToDomain(0), req.PartySize)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateBilling -> h.svc.CreateBilling", "billing", nil, err)
		return
	}

	created(ctx, "billings", billing.ID, billing)
}

// HandleUpdateBilling godoc
// @Summary      Replace a billing
// @Tags         billings
// @Accept       json
// @Param        id       path  int                     true  "billing id"
// @Param        request  body  request.BillingRequest  true  "billing"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /billings/{id} [put]
// @Security BearerAuth
func (h *BillingHandler) HandleUpdateBilling(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req request.BillingRequest
	if !bindJSON(ctx, &req) || !checkBodyID(ctx, id, req.ID) {
		return
	}

	if _, err := h.svc.UpdateBilling(ctx.Request.Context(), req.ToDomain(id)); err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateBilling -> h.svc.UpdateBilling", "billing", id, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteBilling godoc
// @Summary      Delete a billing
// @Tags         billings
// @Param        id  path  int  true  "billing id"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /billings/{id} [delete]
// @Security BearerAuth
func (h *BillingHandler) HandleDeleteBilling(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteBilling(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteBilling -> h.svc.DeleteBilling", "billing", id, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
