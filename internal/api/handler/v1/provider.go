package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/shared-experiences-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type ProviderService interface {
	GetProviders(ctx context.Context) ([]domain.Provider, error)
	GetProvider(ctx context.Context, id uint) (domain.Provider, error)
	GetProviderServices(ctx context.Context, id uint) ([]domain.Service, error)
	CreateProvider(ctx context.Context, provider domain.Provider) (domain.Provider, error)
	UpdateProvider(ctx context.Context, provider domain.Provider) (domain.Provider, error)
	DeleteProvider(ctx context.Context, id uint) error
}

type ProviderHandler struct {
	svc ProviderService
}

func NewProviderHandler(svc ProviderService) *ProviderHandler {
	return &ProviderHandler{
		svc: svc,
	}
}

// HandleGetProviders godoc
// @Summary      List providers
// @Tags         providers
// @Produce      json
// @Success      200  {array}   domain.Provider
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Router       /providers [get]
// @Security BearerAuth
func (h *ProviderHandler) HandleGetProviders(ctx *gin.Context) {
	providers, err := h.svc.GetProviders(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetProviders -> h.svc.GetProviders", "provider", nil, err)
		return
	}

	ctx.JSON(http.StatusOK, providers)
}

// HandleGetProvider godoc
// @Summary      Get a provider
// @Tags         providers
// @Produce      json
// @Param        id   path      int  true  "provider id"
// @Success      200  {object}  domain.Provider
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /providers/{id} [get]
// @Security BearerAuth
func (h *ProviderHandler) HandleGetProvider(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	provider, err := h.svc.GetProvider(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetProvider -> h.svc.GetProvider", "provider", id, err)
		return
	}

	ctx.JSON(http.StatusOK, provider)
}

// HandleGetProviderServices godoc
// @Summary      List the services of a provider
// @Tags         providers
// @Produce      json
// @Param        id   path      int  true  "provider id"
// @Success      200  {array}   domain.Service
// @Failure      404  {object}  response.Err
// @Router       /providers/{id}/services [get]
// @Security BearerAuth
func (h *ProviderHandler) HandleGetProviderServices(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	services, err := h.svc.GetProviderServices(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetProviderServices -> h.svc.GetProviderServices", "provider", id, err)
		return
	}

	ctx.JSON(http.StatusOK, services)
}

// HandleCreateProvider godoc
// @Summary      Create a provider
// @Tags         providers
// @Accept       json
// @Produce      json
// @Param        request  body      request.ProviderRequest  true  "provider"
// @Success      201      {object}  domain.Provider
// @Failure      400      {object}  response.Err
// @Router       /providers [post]
// @Security BearerAuth
func (h *ProviderHandler) HandleCreateProvider(ctx *gin.Context) {
	var req request.ProviderRequest
	if !bindJSON(ctx, &req) {
		return
	}

	provider, err := h.svc.CreateProvider(ctx.Request.Context(), req.ToDomain(0))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateProvider -> h.svc.CreateProvider", "provider", nil, err)
		return
	}

	created(ctx, "providers", provider.ID, provider)
}

// HandleUpdateProvider godoc
// @Summary      Replace a provider
// @Tags         providers
// @Accept       json
// @Param        id       path  int                      true  "provider id"
// @Param        request  body  request.ProviderRequest  true  "provider"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /providers/{id} [put]
// @Security BearerAuth
func (h *ProviderHandler) HandleUpdateProvider(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req request.ProviderRequest
	if !bindJSON(ctx, &req) || !checkBodyID(ctx, id, req.ID) {
		return
	}

	if _, err := h.svc.UpdateProvider(ctx.Request.Context(), req.ToDomain(id)); err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateProvider -> h.svc.UpdateProvider", "provider", id, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteProvider godoc
// @Summary      Delete a provider with its services and billings
// @Tags         providers
// @Param        id  path  int  true  "provider id"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /providers/{id} [delete]
// @Security BearerAuth
func (h *ProviderHandler) HandleDeleteProvider(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteProvider(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteProvider -> h.svc.DeleteProvider", "provider", id, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
