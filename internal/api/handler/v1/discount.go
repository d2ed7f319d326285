package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/shared-experiences-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type DiscountService interface {
	GetDiscounts(ctx context.Context) ([]domain.Discount, error)
	GetDiscount(ctx context.Context, id uint) (domain.Discount, error)
	CreateDiscount(ctx context.Context, discount domain.Discount) (domain.Discount, error)
	UpdateDiscount(ctx context.Context, discount domain.Discount) (domain.Discount, error)
	DeleteDiscount(ctx context.Context, id uint) error
}

type DiscountHandler struct {
	svc DiscountService
}

func NewDiscountHandler(svc DiscountService) *DiscountHandler {
	return &DiscountHandler{
		svc: svc,
	}
}

// HandleGetDiscounts godoc
// @Summary      List discounts
// @Tags         discounts
// @Produce      json
// @Success      200  {array}   domain.Discount
// @Router       /discounts [get]
// @Security BearerAuth
func (h *DiscountHandler) HandleGetDiscounts(ctx *gin.Context) {
	discounts, err := h.svc.GetDiscounts(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetDiscounts -> h.svc.GetDiscounts", "discount", nil, err)
		return
	}

	ctx.JSON(http.StatusOK, discounts)
}

// HandleGetDiscount godoc
// @Summary      Get a discount
// @Tags         discounts
// @Produce      json
// @Param        id   path      int  true  "discount id"
// @Success      200  {object}  domain.Discount
// @Failure      404  {object}  response.Err
// @Router       /discounts/{id} [get]
// @Security BearerAuth
func (h *DiscountHandler) HandleGetDiscount(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	discount, err := h.svc.GetDiscount(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetDiscount -> h.svc.GetDiscount", "discount", id, err)
		return
	}

	ctx.JSON(http.StatusOK, discount)
}

// HandleCreateDiscount godoc
// @Summary      Create a discount
// @Tags         discounts
// @Accept       json
// @Produce      json
// @Param        request  body      request.DiscountRequest  true  "discount"
// @Success      201      {object}  domain.Discount
// @Failure      400      {object}  response.Err
// @Router       /discounts [post]
// @Security BearerAuth
func (h *DiscountHandler) HandleCreateDiscount(ctx *gin.Context) {
	var req request.DiscountRequest
	if !bindJSON(ctx, &req) {
		return
	}

	discount, err := h.svc.CreateDiscount(ctx.Request.Context(), req.ToDomain(0))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateDiscount -> h.svc.CreateDiscount", "discount", nil, err)
		return
	}

	created(ctx, "discounts", discount.ID, discount)
}

// HandleUpdateDiscount godoc
// @Summary      Replace a discount
// @Tags         discounts
// @Accept       json
// @Param        id       path  int                      true  "discount id"
// @Param        request  body  request.DiscountRequest  true  "discount"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /discounts/{id} [put]
// @Security BearerAuth
func (h *DiscountHandler) HandleUpdateDiscount(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req request.DiscountRequest
	if !bindJSON(ctx, &req) || !checkBodyID(ctx, id, req.ID) {
		return
	}

	if _, err := h.svc.UpdateDiscount(ctx.Request.Context(), req.ToDomain(id)); err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateDiscount -> h.svc.UpdateDiscount", "discount", id, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteDiscount godoc
// @Summary      Delete a discount
// @Tags         discounts
// @Param        id  path  int  true  "discount id"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /discounts/{id} [delete]
// @Security BearerAuth
func (h *DiscountHandler) HandleDeleteDiscount(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteDiscount(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteDiscount -> h.svc.DeleteDiscount", "discount", id, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
