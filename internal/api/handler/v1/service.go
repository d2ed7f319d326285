package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/shared-experiences-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type OfferingService interface {
	GetServices(ctx context.Context) ([]domain.Service, error)
	GetService(ctx context.Context, id uint) (domain.Service, error)
	CreateService(ctx context.Context, svc domain.Service) (domain.Service, error)
	UpdateService(ctx context.Context, svc domain.Service) (domain.Service, error)
	AddGuest(ctx context.Context, serviceID, guestID uint) error
	DeleteService(ctx context.Context, id uint) error
}

type ServiceHandler struct {
	svc OfferingService
}

func NewServiceHandler(svc OfferingService) *ServiceHandler {
	return &ServiceHandler{
		svc: svc,
	}
}

// HandleGetServices godoc
// @Summary      List services
// @Tags         services
// @Produce      json
// @Success      200  {array}   domain.Service
// @Router       /services [get]
func (h *ServiceHandler) HandleGetServices(ctx *gin.Context) {
	services, err := h.svc.GetServices(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetServices -> h.svc.GetServices", "service", nil, err)
		return
	}

	ctx.JSON(http.StatusOK, services)
}

// HandleGetService godoc
// @Summary      Get a service
// @Tags         services
// @Produce      json
// @Param        id   path      int  true  "service id"
// @Success      200  {object}  domain.Service
// @Failure      404  {object}  response.Err
// @Router       /services/{id} [get]
func (h *ServiceHandler) HandleGetService(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	svc, err := h.svc.GetService(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetService -> h.svc.GetService", "service", id, err)
		return
	}

	ctx.JSON(http.StatusOK, svc)
}

// HandleCreateService godoc
// @Summary      Create a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        request  body      request.ServiceRequest  true  "service"
// @Success      201      {object}  domain.Service
// @Failure      400      {object}  response.Err
// @Router       /services [post]
// @Security BearerAuth
func (h *ServiceHandler) HandleCreateService(ctx *gin.Context) {
	var req request.ServiceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	svc, err := h.svc.CreateService(ctx.Request.Context(), req.ToDomain(0))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateService -> h.svc.CreateService", "service", nil, err)
		return
	}

	created(ctx, "services", svc.ID, svc)
}

// HandleUpdateService godoc
// @Summary      Replace a service
// @Tags         services
// @Accept       json
// @Param        id       path  int                     true  "service id"
// @Param        request  body  request.ServiceRequest  true  "service"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /services/{id} [put]
// @Security BearerAuth
func (h *ServiceHandler) HandleUpdateService(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req request.ServiceRequest
	if !bindJSON(ctx, &req) || !checkBodyID(ctx, id, req.ID) {
		return
	}

	if _, err := h.svc.UpdateService(ctx.Request.Context(), req.ToDomain(id)); err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateService -> h.svc.UpdateService", "service", id, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAddServiceGuest godoc
// @Summary      Register a guest for a service
// @Tags         services
// @Param        id       path  int  true  "service id"
// @Param        guestId  path  int  true  "guest id"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /services/{id}/guests/{guestId} [post]
// @Security BearerAuth
func (h *ServiceHandler) HandleAddServiceGuest(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	guestID, ok := pathID(ctx, "guestId")
	if !ok {
		return
	}

	if err := h.svc.AddGuest(ctx.Request.Context(), id, guestID); err != nil {
		renderServiceErr(ctx, "v1.HandleAddServiceGuest -> h.svc.AddGuest", "service", id, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteService godoc
// @Summary      Delete a service with its discount and links
// @Tags         services
// @Param        id  path  int  true  "service id"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /services/{id} [delete]
// @Security BearerAuth
func (h *ServiceHandler) HandleDeleteService(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteService(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteService -> h.svc.DeleteService", "service", id, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
