package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oaktheatre/boxoffice/internal/api/handler/v1/request"
	"github.com/oaktheatre/boxoffice/internal/api/handler/v1/response"
	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/service"
)

type ShowService interface {
	Create(ctx context.Context, show domain.Show) (domain.Show, error)
	FindByID(ctx context.Context, id uint) (domain.Show, error)
	FindPublishedBySlug(ctx context.Context, slug string) (domain.Show, error)
	FindPublished(ctx context.Context) ([]domain.Show, error)
	FindAll(ctx context.Context) ([]domain.Show, error)
	Update(ctx context.Context, show domain.Show) (domain.Show, error)
	Delete(ctx context.Context, id uint) error
	Publish(ctx context.Context, id uint) (domain.Show, error)
	Unpublish(ctx context.Context, id uint) (domain.Show, error)
}

type ShowHandler struct {
	svc ShowService
}

func NewShowHandler(svc ShowService) *ShowHandler {
	return &ShowHandler{
		svc: svc,
	}
}

// HandleListShows godoc
// @Summary      List published shows with upcoming performances
// @Tags         shows
// @Produce      json
// @Success      200  {array}   domain.Show
// @Failure      500  {object}  response.Err
// @Router       /shows [get]
func (h *ShowHandler) HandleListShows(ctx *gin.Context) {
	shows, err := h.svc.FindPublished(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListShows -> h.svc.FindPublished -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, shows)
}

// HandleGetShow godoc
// @Summary      Get a published show by slug
// @Tags         shows
// @Produce      json
// @Param        slug   path      string true "show slug"
// @Success      200  {object}  domain.Show
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /shows/{slug} [get]
func (h *ShowHandler) HandleGetShow(ctx *gin.Context) {
	slug := ctx.Param("slug")

	show, err := h.svc.FindPublishedBySlug(ctx.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrShowNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("show", "slug", slug))
			return
		}

		err = fmt.Errorf("v1.HandleGetShow -> h.svc.FindPublishedBySlug -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, show)
}

// HandleAdminListShows godoc
// @Summary      List all shows including drafts
// @Tags         admin-shows
// @Produce      json
// @Success      200  {array}   domain.Show
// @Failure      500  {object}  response.Err
// @Router       /admin/shows [get]
// @Security     BearerAuth
func (h *ShowHandler) HandleAdminListShows(ctx *gin.Context) {
	shows, err := h.svc.FindAll(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleAdminListShows -> h.svc.FindAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, shows)
}

// HandleAdminGetShow godoc
// @Summary      Get a show by ID regardless of status
// @Tags         admin-shows
// @Produce      json
// @Param        showID   path      integer true "show ID"
// @Success      200  {object}  domain.Show
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/shows/{showID} [get]
// @Security     BearerAuth
func (h *ShowHandler) HandleAdminGetShow(ctx *gin.Context) {
	showID, err := strconv.ParseUint(ctx.Param("showID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	show, err := h.svc.FindByID(ctx.Request.Context(), uint(showID))
	if err != nil {
		if errors.Is(err, service.ErrShowNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("show", "ID", showID))
			return
		}

		err = fmt.Errorf("v1.HandleAdminGetShow -> h.svc.FindByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, show)
}

// HandleCreateShow godoc
// @Summary      Create a show as a draft
// @Tags         admin-shows
// @Produce      json
// @Param        request   body      request.CreateShowRequest true "request body"
// @Success      201  {object}  domain.Show
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/shows [post]
// @Security     BearerAuth
func (h *ShowHandler) HandleCreateShow(ctx *gin.Context) {
	var req request.CreateShowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	show, err := h.svc.Create(ctx.Request.Context(), domain.Show{
		Title:          req.Title,
		Slug:           req.Slug,
		Description:    req.Description,
		ShowType:       domain.ShowType(req.ShowType),
		AgeRating:      req.AgeRating,
		PosterImageURL: req.PosterImageURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrShowSlugExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrShowSlugExists))
			return
		}

		err = fmt.Errorf("v1.HandleCreateShow -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, show)
}

// HandleUpdateShow godoc
// @Summary      Update a show
// @Tags         admin-shows
// @Produce      json
// @Param        showID    path      integer true "show ID"
// @Param        request   body      request.UpdateShowRequest true "request body"
// @Success      200  {object}  domain.Show
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/shows/{showID} [put]
// @Security     BearerAuth
func (h *ShowHandler) HandleUpdateShow(ctx *gin.Context) {
	showID, err := strconv.ParseUint(ctx.Param("showID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateShowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	show, err := h.svc.Update(ctx.Request.Context(), domain.Show{
		ID:             uint(showID),
		Title:          req.Title,
		Slug:           req.Slug,
		Description:    req.Description,
		ShowType:       domain.ShowType(req.ShowType),
		AgeRating:      req.AgeRating,
		PosterImageURL: req.PosterImageURL,
		IsActive:       isActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrShowNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("show", "ID", showID))
			return
		}
		if errors.Is(err, service.ErrShowSlugExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrShowSlugExists))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateShow -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, show)
}

// HandleDeleteShow godoc
// @Summary      Delete a show and its performances
// @Tags         admin-shows
// @Produce      json
// @Param        showID   path      integer true "show ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/shows/{showID} [delete]
// @Security     BearerAuth
func (h *ShowHandler) HandleDeleteShow(ctx *gin.Context) {
	showID, err := strconv.ParseUint(ctx.Param("showID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), uint(showID)); err != nil {
		if errors.Is(err, service.ErrShowNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("show", "ID", showID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteShow -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandlePublishShow godoc
// @Summary      Publish a show
// @Description  Requires a title, description, age rating, at least one upcoming performance and one active ticket price.
// @Tags         admin-shows
// @Produce      json
// @Param        showID   path      integer true "show ID"
// @Success      200  {object}  domain.Show
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/shows/{showID}/publish [post]
// @Security     BearerAuth
func (h *ShowHandler) HandlePublishShow(ctx *gin.Context) {
	showID, err := strconv.ParseUint(ctx.Param("showID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	show, err := h.svc.Publish(ctx.Request.Context(), uint(showID))
	if err != nil {
		if errors.Is(err, service.ErrShowNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("show", "ID", showID))
			return
		}
		if errors.Is(err, service.ErrShowNotPublishable) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandlePublishShow -> h.svc.Publish -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, show)
}

// HandleUnpublishShow godoc
// @Summary      Revert a show to draft
// @Tags         admin-shows
// @Produce      json
// @Param        showID   path      integer true "show ID"
// @Success      200  {object}  domain.Show
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/shows/{showID}/unpublish [post]
// @Security     BearerAuth
func (h *ShowHandler) HandleUnpublishShow(ctx *gin.Context) {
	showID, err := strconv.ParseUint(ctx.Param("showID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	show, err := h.svc.Unpublish(ctx.Request.Context(), uint(showID))
	if err != nil {
		if errors.Is(err, service.ErrShowNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("show", "ID", showID))
			return
		}
		if errors.Is(err, service.ErrShowHasUpcomingSchedule) {
			response.RenderErr(ctx, response.ErrConflict(err))
			return
		}

		err = fmt.Errorf("v1.HandleUnpublishShow -> h.svc.Unpublish -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, show)
}
