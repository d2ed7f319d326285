package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/shared-experiences-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type GuestService interface {
	GetGuests(ctx context.Context) ([]domain.Guest, error)
	GetGuest(ctx context.Context, id uint) (domain.Guest, error)
	CreateGuest(ctx context.Context, guest domain.Guest) (domain.Guest, error)
	UpdateGuest(ctx context.Context, guest domain.Guest) (domain.Guest, error)
	DeleteGuest(ctx context.Context, id uint) error
}

type GuestHandler struct {
	svc GuestService
}

func NewGuestHandler(svc GuestService) *GuestHandler {
	return &GuestHandler{
		svc: svc,
	}
}

// HandleGetGuests godoc
// @Summary      List guests
// @Tags         guests
// @Produce      json
// @Success      200  {array}   domain.Guest
// @Router       /guests [get]
// @Security BearerAuth
func (h *GuestHandler) HandleGetGuests(ctx *gin.Context) {
	guests, err := h.svc.GetGuests(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetGuests -> h.svc.GetGuests", "guest", nil, err)
		return
	}

	ctx.JSON(http.StatusOK, guests)
}

// HandleGetGuest godoc
// @Summary      Get a guest
// @Tags         guests
// @Produce      json
// @Param        id   path      int  true  "guest id"
// @Success      200  {object}  domain.Guest
// @Failure      404  {object}  response.Err
// @Router       /guests/{id} [get]
// @Security BearerAuth
func (h *GuestHandler) HandleGetGuest(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	guest, err := h.svc.GetGuest(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetGuest -> h.svc.GetGuest", "guest", id, err)
		return
	}

	ctx.JSON(http.StatusOK, guest)
}

// HandleCreateGuest godoc
// @Summary      Create a guest
// @Tags         guests
// @Accept       json
// @Produce      json
// @Param        request  body      request.GuestRequest  true  "guest"
// @Success      201      {object}  domain.Guest
// @Failure      400      {object}  response.Err
// @Router       /guests [post]
// @Security BearerAuth
func (h *GuestHandler) HandleCreateGuest(ctx *gin.Context) {
	var req request.GuestRequest
	if !bindJSON(ctx, &req) {
		return
	}

	guest, err := h.svc.CreateGuest(ctx.Request.Context(), req.ToDomain(0))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateGuest -> h.svc.CreateGuest", "guest", nil, err)
		return
	}

	created(ctx, "guests", guest.ID, guest)
}

// HandleUpdateGuest godoc
// @Summary      Replace a guest
// @Tags         guests
// @Accept       json
// @Param        id       path  int                   true  "guest id"
// @Param        request  body  request.GuestRequest  true  "guest"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /guests/{id} [put]
// @Security BearerAuth
func (h *GuestHandler) HandleUpdateGuest(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req request.GuestRequest
	if !bindJSON(ctx, &req) || !checkBodyID(ctx, id, req.ID) {
		return
	}

	if _, err := h.svc.UpdateGuest(ctx.Request.Context(), req.ToDomain(id)); err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateGuest -> h.svc.UpdateGuest", "guest", id, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteGuest godoc
// @Summary      Delete a guest with their billings
// @Tags         guests
// @Param        id  path  int  true  "guest id"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /guests/{id} [delete]
// @Security BearerAuth
func (h *GuestHandler) HandleDeleteGuest(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteGuest(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteGuest -> h.svc.DeleteGuest", "guest", id, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
