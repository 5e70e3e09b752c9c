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

type TicketService interface {
	CreateType(ctx context.Context, ticketType domain.TicketType) (domain.TicketType, error)
	FindTypeByID(ctx context.Context, id uint) (domain.TicketType, error)
	FindTypes(ctx context.Context, activeOnly bool) ([]domain.TicketType, error)
	UpdateType(ctx context.Context, ticketType domain.TicketType) (domain.TicketType, error)
	CreateShowPrice(ctx context.Context, price domain.ShowTicketPrice) (domain.ShowTicketPrice, error)
	FindShowPrices(ctx context.Context, showID uint) ([]domain.ShowTicketPrice, error)
	UpdateShowPrice(ctx context.Context, price domain.ShowTicketPrice) (domain.ShowTicketPrice, error)
	DeleteShowPrice(ctx context.Context, id uint) error
	CreatePerformancePrice(ctx context.Context, price domain.PerformanceTicketPrice) (domain.PerformanceTicketPrice, error)
	FindPerformancePrices(ctx context.Context, performanceID uint) ([]domain.PerformanceTicketPrice, error)
	UpdatePerformancePrice(ctx context.Context, price domain.PerformanceTicketPrice) (domain.PerformanceTicketPrice, error)
	DeletePerformancePrice(ctx context.Context, id uint) error
}

type TicketHandler struct {
	svc TicketService
}

func NewTicketHandler(svc TicketService) *TicketHandler {
	return &TicketHandler{
		svc: svc,
	}
}

func renderTicketErr(ctx *gin.Context, err error) bool {
	switch {
	case errors.Is(err, service.ErrTicketTypeNotFound):
		response.RenderErr(ctx, response.ErrNotFound("ticket type", "ID", ctx.Param("ticketTypeID")))
	case errors.Is(err, service.ErrTicketPriceNotFound):
		response.RenderErr(ctx, response.ErrNotFound("ticket price", "ID", ctx.Param("priceID")))
	case errors.Is(err, service.ErrShowNotFound):
		response.RenderErr(ctx, response.ErrNotFound("show", "ID", ctx.Param("showID")))
	case errors.Is(err, service.ErrPerformanceNotFound):
		response.RenderErr(ctx, response.ErrNotFound("performance", "ID", ctx.Param("performanceID")))
	case errors.Is(err, service.ErrTicketTypeNameExists),
		errors.Is(err, service.ErrDuplicateTicketPrice):
		response.RenderErr(ctx, response.ErrConflict(err))
	default:
		return false
	}

	return true
}

// HandleListTicketTypes godoc
// @Summary      List ticket types
// @Tags         admin-tickets
// @Produce      json
// @Param        active_only   query      boolean false "only active types"
// @Success      200  {array}   domain.TicketType
// @Failure      500  {object}  response.Err
// @Router       /admin/ticket-types [get]
// @Security     BearerAuth
func (h *TicketHandler) HandleListTicketTypes(ctx *gin.Context) {
	activeOnly := ctx.Query("active_only") == "true"

	ticketTypes, err := h.svc.FindTypes(ctx.Request.Context(), activeOnly)
	if err != nil {
		err = fmt.Errorf("v1.HandleListTicketTypes -> h.svc.FindTypes -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, ticketTypes)
}

// HandleCreateTicketType godoc
// @Summary      Create a ticket type
// @Tags         admin-tickets
// @Produce      json
// @Param        request   body      request.CreateTicketTypeRequest true "request body"
// @Success      201  {object}  domain.TicketType
// @Failure      400  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/ticket-types [post]
// @Security     BearerAuth
func (h *TicketHandler) HandleCreateTicketType(ctx *gin.Context) {
	var req request.CreateTicketTypeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	ticketType, err := h.svc.CreateType(ctx.Request.Context(), domain.TicketType{
		Name:         req.Name,
		Description:  req.Description,
		DefaultPrice: req.DefaultPrice,
		SortOrder:    req.SortOrder,
	})
	if err != nil {
		if renderTicketErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleCreateTicketType -> h.svc.CreateType -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, ticketType)
}

// HandleUpdateTicketType godoc
// @Summary      Update a ticket type
// @Description  Changing the default price never touches existing reservations.
// @Tags         admin-tickets
// @Produce      json
// @Param        ticketTypeID   path      integer true "ticket type ID"
// @Param        request   body      request.UpdateTicketTypeRequest true "request body"
// @Success      200  {object}  domain.TicketType
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/ticket-types/{ticketTypeID} [put]
// @Security     BearerAuth
func (h *TicketHandler) HandleUpdateTicketType(ctx *gin.Context) {
	ticketTypeID, err := strconv.ParseUint(ctx.Param("ticketTypeID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateTicketTypeRequest
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

	ticketType, err := h.svc.UpdateType(ctx.Request.Context(), domain.TicketType{
		ID:           uint(ticketTypeID),
		Name:         req.Name,
		Description:  req.Description,
		DefaultPrice: req.DefaultPrice,
		SortOrder:    req.SortOrder,
		IsActive:     isActive,
	})
	if err != nil {
		if renderTicketErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleUpdateTicketType -> h.svc.UpdateType -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, ticketType)
}

// HandleListShowPrices godoc
// @Summary      List show level price overrides
// @Tags         admin-tickets
// @Produce      json
// @Param        showID   path      integer true "show ID"
// @Success      200  {array}   domain.ShowTicketPrice
// @Failure      500  {object}  response.Err
// @Router       /admin/shows/{showID}/ticket-prices [get]
// @Security     BearerAuth
func (h *TicketHandler) HandleListShowPrices(ctx *gin.Context) {
	showID, err := strconv.ParseUint(ctx.Param("showID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	prices, err := h.svc.FindShowPrices(ctx.Request.Context(), uint(showID))
	if err != nil {
		err = fmt.Errorf("v1.HandleListShowPrices -> h.svc.FindShowPrices -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, prices)
}

// HandleCreateShowPrice godoc
// @Summary      Set a show level price for a ticket type
// @Tags         admin-tickets
// @Produce      json
// @Param        showID    path      integer true "show ID"
// @Param        request   body      request.CreateTicketPriceRequest true "request body"
// @Success      201  {object}  domain.ShowTicketPrice
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/shows/{showID}/ticket-prices [post]
// @Security     BearerAuth
func (h *TicketHandler) HandleCreateShowPrice(ctx *gin.Context) {
	showID, err := strconv.ParseUint(ctx.Param("showID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.CreateTicketPriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	price, err := h.svc.CreateShowPrice(ctx.Request.Context(), domain.ShowTicketPrice{
		ShowID:       uint(showID),
		TicketTypeID: req.TicketTypeID,
		Price:        req.Price,
		Notes:        req.Notes,
	})
	if err != nil {
		if renderTicketErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleCreateShowPrice -> h.svc.CreateShowPrice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, price)
}

// HandleUpdateShowPrice godoc
// @Summary      Update a show level price
// @Tags         admin-tickets
// @Produce      json
// @Param        priceID   path      integer true "price ID"
// @Param        request   body      request.UpdateTicketPriceRequest true "request body"
// @Success      200  {object}  domain.ShowTicketPrice
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/ticket-prices/shows/{priceID} [put]
// @Security     BearerAuth
func (h *TicketHandler) HandleUpdateShowPrice(ctx *gin.Context) {
	priceID, err := strconv.ParseUint(ctx.Param("priceID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateTicketPriceRequest
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

	price, err := h.svc.UpdateShowPrice(ctx.Request.Context(), domain.ShowTicketPrice{
		ID:       uint(priceID),
		Price:    req.Price,
		Notes:    req.Notes,
		IsActive: isActive,
	})
	if err != nil {
		if renderTicketErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleUpdateShowPrice -> h.svc.UpdateShowPrice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, price)
}

// HandleDeleteShowPrice godoc
// @Summary      Remove a show level price
// @Tags         admin-tickets
// @Produce      json
// @Param        priceID   path      integer true "price ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/ticket-prices/shows/{priceID} [delete]
// @Security     BearerAuth
func (h *TicketHandler) HandleDeleteShowPrice(ctx *gin.Context) {
	priceID, err := strconv.ParseUint(ctx.Param("priceID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeleteShowPrice(ctx.Request.Context(), uint(priceID)); err != nil {
		if renderTicketErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleDeleteShowPrice -> h.svc.DeleteShowPrice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListPerformancePrices godoc
// @Summary      List performance level price overrides
// @Tags         admin-tickets
// @Produce      json
// @Param        performanceID   path      integer true "performance ID"
// @Success      200  {array}   domain.PerformanceTicketPrice
// @Failure      500  {object}  response.Err
// @Router       /admin/performances/{performanceID}/ticket-prices [get]
// @Security     BearerAuth
func (h *TicketHandler) HandleListPerformancePrices(ctx *gin.Context) {
	performanceID, err := strconv.ParseUint(ctx.Param("performanceID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	prices, err := h.svc.FindPerformancePrices(ctx.Request.Context(), uint(performanceID))
	if err != nil {
		err = fmt.Errorf("v1.HandleListPerformancePrices -> h.svc.FindPerformancePrices -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, prices)
}

// HandleCreatePerformancePrice godoc
// @Summary      Set a performance level price for a ticket type
// @Tags         admin-tickets
// @Produce      json
// @Param        performanceID   path      integer true "performance ID"
// @Param        request   body      request.CreateTicketPriceRequest true "request body"
// @Success      201  {object}  domain.PerformanceTicketPrice
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/performances/{performanceID}/ticket-prices [post]
// @Security     BearerAuth
func (h *TicketHandler) HandleCreatePerformancePrice(ctx *gin.Context) {
	performanceID, err := strconv.ParseUint(ctx.Param("performanceID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.CreateTicketPriceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	price, err := h.svc.CreatePerformancePrice(ctx.Request.Context(), domain.PerformanceTicketPrice{
		PerformanceID: uint(performanceID),
		TicketTypeID:  req.TicketTypeID,
		Price:         req.Price,
		Notes:         req.Notes,
	})
	if err != nil {
		if renderTicketErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleCreatePerformancePrice -> h.svc.CreatePerformancePrice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, price)
}

// HandleUpdatePerformancePrice godoc
// @Summary      Update a performance level price
// @Tags         admin-tickets
// @Produce      json
// @Param        priceID   path      integer true "price ID"
// @Param        request   body      request.UpdateTicketPriceRequest true "request body"
// @Success      200  {object}  domain.PerformanceTicketPrice
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/ticket-prices/performances/{priceID} [put]
// @Security     BearerAuth
func (h *TicketHandler) HandleUpdatePerformancePrice(ctx *gin.Context) {
	priceID, err := strconv.ParseUint(ctx.Param("priceID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.UpdateTicketPriceRequest
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

	price, err := h.svc.UpdatePerformancePrice(ctx.Request.Context(), domain.PerformanceTicketPrice{
		ID:       uint(priceID),
		Price:    req.Price,
		Notes:    req.Notes,
		IsActive: isActive,
	})
	if err != nil {
		if renderTicketErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleUpdatePerformancePrice -> h.svc.UpdatePerformancePrice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, price)
}

// HandleDeletePerformancePrice godoc
// @Summary      Remove a performance level price
// @Tags         admin-tickets
// @Produce      json
// @Param        priceID   path      integer true "price ID"
// @Success      204
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/ticket-prices/performances/{priceID} [delete]
// @Security     BearerAuth
func (h *TicketHandler) HandleDeletePerformancePrice(ctx *gin.Context) {
	priceID, err := strconv.ParseUint(ctx.Param("priceID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeletePerformancePrice(ctx.Request.Context(), uint(priceID)); err != nil {
		if renderTicketErr(ctx, err) {
			return
		}

		err = fmt.Errorf("v1.HandleDeletePerformancePrice -> h.svc.DeletePerformancePrice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
