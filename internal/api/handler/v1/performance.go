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

type PerformanceService interface {
	Create(ctx context.Context, performance domain.Performance) (domain.Performance, error)
	FindByID(ctx context.Context, id uint) (domain.Performance, error)
	FindPublicByID(ctx context.Context, id uint) (domain.Performance, error)
	FindByShowID(ctx context.Context, showID uint) ([]domain.Performance, error)
	Update(ctx context.Context, performance domain.Performance) (domain.Performance, error)
	Delete(ctx context.Context, id uint) error
}

type PricingService interface {
	ListPrices(ctx context.Context, performanceID, showID uint) ([]domain.ResolvedPrice, error)
}

type CapacityService interface {
	GetCapacity(ctx context.Context, performanceID uint) (domain.Capacity, error)
	CheckCapacity(ctx context.Context, performanceID uint, requested int) (domain.CapacityCheck, error)
}

type PerformanceHandler struct {
	svc      PerformanceService
	pricing  PricingService
	capacity CapacityService
}

func NewPerformanceHandler(svc PerformanceService, pricing PricingService, capacity CapacityService) *PerformanceHandler {
	return &PerformanceHandler{
		svc:      svc,
		pricing:  pricing,
		capacity: capacity,
	}
}

// HandleGetPerformance godoc
// @Summary      Get a performance of a published show
// @Tags         performances
// @Produce      json
// @Param        performanceID   path      integer true "performance ID"
// @Success      200  {object}  domain.Performance
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /performances/{performanceID} [get]
func (h *PerformanceHandler) HandleGetPerformance(ctx *gin.Context) {
	performanceID, err := strconv.ParseUint(ctx.Param("performanceID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	performance, err := h.svc.FindPublicByID(ctx.Request.Context(), uint(performanceID))
	if err != nil {
		if errors.Is(err, service.ErrPerformanceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("performance", "ID", performanceID))
			return
		}

		err = fmt.Errorf("v1.HandleGetPerformance -> h.svc.FindPublicByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, performance)
}

// HandleGetPricing godoc
// @Summary      List resolved prices for a performance
// @Description  Resolves each active ticket type through the performance, show and default price levels.
// @Tags         performances
// @Produce      json
// @Param        performanceID   path      integer true "performance ID"
// @Success      200  {array}   domain.ResolvedPrice
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /performances/{performanceID}/pricing [get]
func (h *PerformanceHandler) HandleGetPricing(ctx *gin.Context) {
	performanceID, err := strconv.ParseUint(ctx.Param("performanceID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	performance, err := h.svc.FindPublicByID(ctx.Request.Context(), uint(performanceID))
	if err != nil {
		if errors.Is(err, service.ErrPerformanceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("performance", "ID", performanceID))
			return
		}

		err = fmt.Errorf("v1.HandleGetPricing -> h.svc.FindPublicByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	prices, err := h.pricing.ListPrices(ctx.Request.Context(), performance.ID, performance.ShowID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetPricing -> h.pricing.ListPrices -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, prices)
}

// HandleGetCapacity godoc
// @Summary      Get live availability for a performance
// @Tags         performances
// @Produce      json
// @Param        performanceID   path      integer true "performance ID"
// @Success      200  {object}  domain.Capacity
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /performances/{performanceID}/capacity [get]
func (h *PerformanceHandler) HandleGetCapacity(ctx *gin.Context) {
	performanceID, err := strconv.ParseUint(ctx.Param("performanceID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	capacity, err := h.capacity.GetCapacity(ctx.Request.Context(), uint(performanceID))
	if err != nil {
		if errors.Is(err, service.ErrPerformanceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("performance", "ID", performanceID))
			return
		}

		err = fmt.Errorf("v1.HandleGetCapacity -> h.capacity.GetCapacity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, capacity)
}

// HandleCheckCapacity godoc
// @Summary      Check whether a ticket request would fit
// @Tags         performances
// @Produce      json
// @Param        performanceID   path      integer true "performance ID"
// @Param        request   body      request.CheckCapacityRequest true "request body"
// @Success      200  {object}  domain.CapacityCheck
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /performances/{performanceID}/capacity/check [post]
func (h *PerformanceHandler) HandleCheckCapacity(ctx *gin.Context) {
	performanceID, err := strconv.ParseUint(ctx.Param("performanceID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.CheckCapacityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	requested := 0
	for _, line := range req.Tickets {
		requested += line.Quantity
	}

	check, err := h.capacity.CheckCapacity(ctx.Request.Context(), uint(performanceID), requested)
	if err != nil {
		if errors.Is(err, service.ErrPerformanceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("performance", "ID", performanceID))
			return
		}

		err = fmt.Errorf("v1.HandleCheckCapacity -> h.capacity.CheckCapacity -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, check)
}

// HandleListShowPerformances godoc
// @Summary      List all performances of a show
// @Tags         admin-performances
// @Produce      json
// @Param        showID   path      integer true "show ID"
// @Success      200  {array}   domain.Performance
// @Failure      500  {object}  response.Err
// @Router       /admin/shows/{showID}/performances [get]
// @Security     BearerAuth
func (h *PerformanceHandler) HandleListShowPerformances(ctx *gin.Context) {
	showID, err := strconv.ParseUint(ctx.Param("showID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	performances, err := h.svc.FindByShowID(ctx.Request.Context(), uint(showID))
	if err != nil {
		err = fmt.Errorf("v1.HandleListShowPerformances -> h.svc.FindByShowID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, performances)
}

// HandleCreatePerformance godoc
// @Summary      Schedule a performance
// @Tags         admin-performances
// @Produce      json
// @Param        request   body      request.CreatePerformanceRequest true "request body"
// @Success      201  {object}  domain.Performance
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/performances [post]
// @Security     BearerAuth
func (h *PerformanceHandler) HandleCreatePerformance(ctx *gin.Context) {
	var req request.CreatePerformanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	maxCapacity := domain.UnlimitedCapacity
	if req.MaxCapacity != nil {
		maxCapacity = *req.MaxCapacity
	}
	reservationsOpen := true
	if req.ReservationsOpen != nil {
		reservationsOpen = *req.ReservationsOpen
	}

	performance, err := h.svc.Create(ctx.Request.Context(), domain.Performance{
		ShowID:              req.ShowID,
		VenueID:             req.VenueID,
		Title:               req.Title,
		StartDateTime:       req.StartDateTime,
		EndDateTime:         req.EndDateTime,
		Type:                domain.PerformanceType(req.Type),
		Status:              domain.PerformanceStatus(req.Status),
		Details:             req.Details,
		MaxCapacity:         maxCapacity,
		ReservationsOpen:    reservationsOpen,
		ExternalBookingLink: req.ExternalBookingLink,
	})
	if err != nil {
		if errors.Is(err, service.ErrShowNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("show", "ID", req.ShowID))
			return
		}
		if errors.Is(err, service.ErrEndsBeforeStart) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreatePerformance -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, performance)
}

// HandleUpdatePerformance godoc
// @Summary      Update a performance
// @Tags         admin-performances
// @Produce      json
// @Param        performanceID   path      integer true "performance ID"
// @Param        request   body      request.UpdatePerformanceRequest true "request body"
// @Success      200  {object}  domain.Performance
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/performances/{performanceID} [put]
// @Security     BearerAuth
func (h *PerformanceHandler) HandleUpdatePerformance(ctx *gin.Context) {
	performanceID, err := strconv.ParseUint(ctx.Param("performanceID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdatePerformanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	existing, err := h.svc.FindByID(ctx.Request.Context(), uint(performanceID))
	if err != nil {
		if errors.Is(err, service.ErrPerformanceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("performance", "ID", performanceID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdatePerformance -> h.svc.FindByID -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	maxCapacity := existing.MaxCapacity
	if req.MaxCapacity != nil {
		maxCapacity = *req.MaxCapacity
	}
	reservationsOpen := existing.ReservationsOpen
	if req.ReservationsOpen != nil {
		reservationsOpen = *req.ReservationsOpen
	}
	isActive := existing.IsActive
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	performance, err := h.svc.Update(ctx.Request.Context(), domain.Performance{
		ID:                  uint(performanceID),
		ShowID:              existing.ShowID,
		VenueID:             req.VenueID,
		Title:               req.Title,
		StartDateTime:       req.StartDateTime,
		EndDateTime:         req.EndDateTime,
		Type:                domain.PerformanceType(req.Type),
		Status:              domain.PerformanceStatus(req.Status),
		Details:             req.Details,
		MaxCapacity:         maxCapacity,
		ReservationsOpen:    reservationsOpen,
		ExternalBookingLink: req.ExternalBookingLink,
		IsActive:            isActive,
	})
	if err != nil {
		if errors.Is(err, service.ErrEndsBeforeStart) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleUpdatePerformance -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, performance)
}

// HandleDeletePerformance godoc
// @Summary      Delete a performance
// @Tags         admin-performances
// @Produce      json
// @Param        performanceID   path      integer true "performance ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/performances/{performanceID} [delete]
// @Security     BearerAuth
func (h *PerformanceHandler) HandleDeletePerformance(ctx *gin.Context) {
	performanceID, err := strconv.ParseUint(ctx.Param("performanceID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), uint(performanceID)); err != nil {
		if errors.Is(err, service.ErrPerformanceNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("performance", "ID", performanceID))
			return
		}

		err = fmt.Errorf("v1.HandleDeletePerformance -> h.svc.Delete -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
