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

type VenueService interface {
	Create(ctx context.Context, venue domain.Venue) (domain.Venue, error)
	FindByID(ctx context.Context, id uint) (domain.Venue, error)
	FindAll(ctx context.Context) ([]domain.Venue, error)
	Update(ctx context.Context, venue domain.Venue) (domain.Venue, error)
	Delete(ctx context.Context, id uint) error
}

type VenueHandler struct {
	svc VenueService
}

func NewVenueHandler(svc VenueService) *VenueHandler {
	return &VenueHandler{
		svc: svc,
	}
}

// HandleListVenues godoc
// @Summary      List venues
// @Tags         admin-venues
// @Produce      json
// @Success      200  {array}   domain.Venue
// @Failure      500  {object}  response.Err
// @Router       /admin/venues [get]
// @Security     BearerAuth
func (h *VenueHandler) HandleListVenues(ctx *gin.Context) {
	venues, err := h.svc.FindAll(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListVenues -> h.svc.FindAll -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, venues)
}

// HandleGetVenue godoc
// @Summary      Get a venue by ID
// @Tags         admin-venues
// @Produce      json
// @Param        venueID   path      integer true "venue ID"
// @Success      200  {object}  domain.Venue
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/venues/{venueID} [get]
// @Security     BearerAuth
func (h *VenueHandler) HandleGetVenue(ctx *gin.Context) {
	venueID, err := strconv.ParseUint(ctx.Param("venueID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	venue, err := h.svc.FindByID(ctx.Request.Context(), uint(venueID))
	if err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("venue", "ID", venueID))
			return
		}

		err = fmt.Errorf("v1.HandleGetVenue -> h.svc.FindByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, venue)
}

// HandleCreateVenue godoc
// @Summary      Create a venue
// @Tags         admin-venues
// @Produce      json
// @Param        request   body      request.CreateVenueRequest true "request body"
// @Success      201  {object}  domain.Venue
// @Failure      400  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/venues [post]
// @Security     BearerAuth
func (h *VenueHandler) HandleCreateVenue(ctx *gin.Context) {
	var req request.CreateVenueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	venue, err := h.svc.Create(ctx.Request.Context(), domain.Venue{
		Name:     req.Name,
		Address:  req.Address,
		Capacity: req.Capacity,
		Notes:    req.Notes,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateVenue -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, venue)
}

// HandleUpdateVenue godoc
// @Summary      Update a venue
// @Tags         admin-venues
// @Produce      json
// @Param        venueID   path      integer true "venue ID"
// @Param        request   body      request.UpdateVenueRequest true "request body"
// @Success      200  {object}  domain.Venue
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/venues/{venueID} [put]
// @Security     BearerAuth
func (h *VenueHandler) HandleUpdateVenue(ctx *gin.Context) {
	venueID, err := strconv.ParseUint(ctx.Param("venueID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateVenueRequest
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

	venue, err := h.svc.Update(ctx.Request.Context(), domain.Venue{
		ID:       uint(venueID),
		Name:     req.Name,
		Address:  req.Address,
		Capacity: req.Capacity,
		Notes:    req.Notes,
		IsActive: isActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("venue", "ID", venueID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateVenue -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, venue)
}

// HandleDeleteVenue godoc
// @Summary      Delete a venue
// @Tags         admin-venues
// @Produce      json
// @Param        venueID   path      integer true "venue ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/venues/{venueID} [delete]
// @Security     BearerAuth
func (h *VenueHandler) HandleDeleteVenue(ctx *gin.Context) {
	venueID, err := strconv.ParseUint(ctx.Param("venueID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), uint(venueID)); err != nil {
		if errors.Is(err, service.ErrVenueNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("venue", "ID", venueID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteVenue -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
