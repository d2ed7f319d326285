package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/shared-experiences-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/shared-experiences-api/internal/domain"
)

type SharedExperienceService interface {
	GetSharedExperiences(ctx context.Context) ([]domain.SharedExperience, error)
	GetSharedExperience(ctx context.Context, id uint) (domain.SharedExperience, error)
	CreateSharedExperience(ctx context.Context, exp domain.SharedExperience) (domain.SharedExperience, error)
	UpdateSharedExperience(ctx context.Context, exp domain.SharedExperience) (domain.SharedExperience, error)
	AddGuest(ctx context.Context, expID, guestID uint) error
	AddService(ctx context.Context, expID, serviceID uint) error
	DeleteSharedExperience(ctx context.Context, id uint) error
}

type SharedExperienceHandler struct {
	svc SharedExperienceService
}

func NewSharedExperienceHandler(svc SharedExperienceService) *SharedExperienceHandler {
	return &SharedExperienceHandler{
		svc: svc,
	}
}

// HandleGetSharedExperiences godoc
// @Summary      List shared experiences
// @Tags         sharedexperiences
// @Produce      json
// @Success      200  {array}   domain.SharedExperience
// @Failure      401  {object}  response.Err
// @Router       /sharedexperiences [get]
// @Security BearerAuth
func (h *SharedExperienceHandler) HandleGetSharedExperiences(ctx *gin.Context) {
	exps, err := h.svc.GetSharedExperiences(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetSharedExperiences -> h.svc.GetSharedExperiences", "shared experience", nil, err)
		return
	}

	ctx.JSON(http.StatusOK, exps)
}

// HandleGetSharedExperience godoc
// @Summary      Get a shared experience
// @Tags         sharedexperiences
// @Produce      json
// @Param        id   path      int  true  "shared experience id"
// @Success      200  {object}  domain.SharedExperience
// @Failure      404  {object}  response.Err
// @Router       /sharedexperiences/{id} [get]
// @Security BearerAuth
func (h *SharedExperienceHandler) HandleGetSharedExperience(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	exp, err := h.svc.GetSharedExperience(ctx.Request.Context(), id)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetSharedExperience -> h.svc.GetSharedExperience", "shared experience", id, err)
		return
	}

	ctx.JSON(http.StatusOK, exp)
}

// HandleCreateSharedExperience godoc
// @Summary      Create a shared experience
// @Tags         sharedexperiences
// @Accept       json
// @Produce      json
// @Param        request  body      request.SharedExperienceRequest  true  "shared experience"
// @Success      201      {object}  domain.SharedExperience
// @Failure      400      {object}  response.Err
// @Router       /sharedexperiences [post]
// @Security BearerAuth
func (h *SharedExperienceHandler) HandleCreateSharedExperience(ctx *gin.Context) {
	var req request.SharedExperienceRequest
	if !bindJSON(ctx, &req) {
		return
	}

	exp, err := h.svc.CreateSharedExperience(ctx.Request.Context(), req.ToDomain(0))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateSharedExperience -> h.svc.CreateSharedExperience", "shared experience", nil, err)
		return
	}

	created(ctx, "sharedexperiences", exp.ID, exp)
}

// HandleUpdateSharedExperience godoc
// @Summary      Replace a shared experience and its links
// @Tags         sharedexperiences
// @Accept       json
// @Param        id       path  int                              true  "shared experience id"
// @Param        request  body  request.SharedExperienceRequest  true  "shared experience"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /sharedexperiences/{id} [put]
// @Security BearerAuth
func (h *SharedExperienceHandler) HandleUpdateSharedExperience(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req request.SharedExperienceRequest
	if !bindJSON(ctx, &req) || !checkBodyID(ctx, id, req.ID) {
		return
	}

	if _, err := h.svc.UpdateSharedExperience(ctx.Request.Context(), req.ToDomain(id)); err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateSharedExperience -> h.svc.UpdateSharedExperience", "shared experience", id, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAddExperienceGuest godoc
// @Summary      Add a guest to a shared experience
// @Tags         sharedexperiences
// @Param        id       path  int  true  "shared experience id"
// @Param        guestId  path  int  true  "guest id"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /sharedexperiences/{id}/guests/{guestId} [post]
// @Security BearerAuth
func (h *SharedExperienceHandler) HandleAddExperienceGuest(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	guestID, ok := pathID(ctx, "guestId")
	if !ok {
		return
	}

	if err := h.svc.AddGuest(ctx.Request.Context(), id, guestID); err != nil {
		renderServiceErr(ctx, "v1.HandleAddExperienceGuest -> h.svc.AddGuest", "shared experience", id, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAddExperienceService godoc
// @Summary      Add a service to a shared experience
// @Tags         sharedexperiences
// @Param        id         path  int  true  "shared experience id"
// @Param        serviceId  path  int  true  "service id"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Router       /sharedexperiences/{id}/services/{serviceId} [post]
// @Security BearerAuth
func (h *SharedExperienceHandler) HandleAddExperienceService(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	serviceID, ok := pathID(ctx, "serviceId")
	if !ok {
		return
	}

	if err := h.svc.AddService(ctx.Request.Context(), id, serviceID); err != nil {
		renderServiceErr(ctx, "v1.HandleAddExperienceService -> h.svc.AddService", "shared experience", id, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteSharedExperience godoc
// @Summary      Delete a shared experience
// @Tags         sharedexperiences
// @Param        id  path  int  true  "shared experience id"
// @Success      204
// @Failure      404  {object}  response.Err
// @Router       /sharedexperiences/{id} [delete]
// @Security BearerAuth
func (h *SharedExperienceHandler) HandleDeleteSharedExperience(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteSharedExperience(ctx.Request.Context(), id); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteSharedExperience -> h.svc.DeleteSharedExperience", "shared experience", id, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
