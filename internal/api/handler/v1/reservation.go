package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oaktheatre/boxoffice/internal/api/handler/v1/request"
	"github.com/oaktheatre/boxoffice/internal/api/handler/v1/response"
	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/repository"
	"github.com/oaktheatre/boxoffice/internal/service"
)

type ReservationService interface {
	Create(ctx context.Context, input service.CreateReservationInput) (domain.Reservation, error)
	FindByCode(ctx context.Context, code string) (domain.Reservation, error)
	Find(ctx context.Context, filter repository.ReservationFilter) ([]domain.Reservation, error)
	Update(ctx context.Context, code string, input service.UpdateReservationInput) (domain.Reservation, error)
	Collect(ctx context.Context, code string) (domain.Reservation, error)
	CancelByCustomer(ctx context.Context, code, email string) (domain.Reservation, error)
	CancelByAdmin(ctx context.Context, code string, adminNotes *string) (domain.Reservation, error)
	Reinstate(ctx context.Context, code string) (domain.Reservation, error)
	MarkNoShow(ctx context.Context, code string) (domain.Reservation, error)
	ExpireOverdue(ctx context.Context) (int64, error)
	Summary(ctx context.Context, performanceID uint) (domain.PerformanceSummary, error)
}

type ReservationHandler struct {
	svc ReservationService
}

func NewReservationHandler(svc ReservationService) *ReservationHandler {
	return &ReservationHandler{
		svc: svc,
	}
}

func ticketLines(reqTickets []request.TicketLineRequest) []service.TicketLine {
	if reqTickets == nil {
		return nil
	}

	lines := make([]service.TicketLine, 0, len(reqTickets))
	for _, t := range reqTickets {
		lines = append(lines, service.TicketLine{
			TicketTypeID: t.TicketTypeID,
			Quantity:     t.Quantity,
		})
	}

	return lines
}

func renderReservationErr(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrReservationNotFound):
		response.RenderErr(ctx, response.ErrNotFound("reservation", "code", ctx.Param("code")))
	case errors.Is(err, service.ErrPerformanceNotFound):
		response.RenderErr(ctx, response.ErrBadRequest(service.ErrPerformanceNotFound))
	case errors.Is(err, service.ErrNotEnoughCapacity),
		errors.Is(err, service.ErrInvalidStatusTransition):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrReservationsClosed),
		errors.Is(err, service.ErrExternalBooking),
		errors.Is(err, service.ErrPerformanceStarted),
		errors.Is(err, service.ErrPerformanceNotStarted),
		errors.Is(err, service.ErrNoTicketsRequested),
		errors.Is(err, service.ErrNoPriceConfigured),
		errors.Is(err, service.ErrReservationNotEditable):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrNotReservationOwner):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

// HandleCreateReservation godoc
// @Summary      Reserve tickets for a performance
// @Description  Prices are snapshotted at reservation time. Returns the reservation with its collection code.
// @Tags         reservations
// @Produce      json
// @Param        request   body      request.CreateReservationRequest true "request body"
// @Success      201  {object}  domain.Reservation
// @Failure      400  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reservations [post]
func (h *ReservationHandler) HandleCreateReservation(ctx *gin.Context) {
	var req request.CreateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	input := service.CreateReservationInput{
		PerformanceID: req.PerformanceID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
		Tickets:       ticketLines(req.Tickets),
	}
	if user, ok := getUser(ctx); ok {
		input.UserID = &user.ID
	}

	reservation, err := h.svc.Create(ctx.Request.Context(), input)
	if err != nil {
		if isReservationDomainErr(err) {
			renderReservationErr(ctx, err)
			return
		}

		err = fmt.Errorf("v1.HandleCreateReservation -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, reservation)
}

// HandleGetReservation godoc
// @Summary      Look up a reservation by its code
// @Tags         reservations
// @Produce      json
// @Param        code   path      string true "reservation code"
// @Success      200  {object}  domain.Reservation
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reservations/{code} [get]
func (h *ReservationHandler) HandleGetReservation(ctx *gin.Context) {
	code := ctx.Param("code")

	reservation, err := h.svc.FindByCode(ctx.Request.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("reservation", "code", code))
			return
		}

		err = fmt.Errorf("v1.HandleGetReservation -> h.svc.FindByCode -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, reservation)
}

// HandleUpdateReservation godoc
// @Summary      Update a pending reservation
// @Description  Replaces all ticket lines when tickets are given; prices are re-resolved at update time.
// @Tags         reservations
// @Produce      json
// @Param        code      path      string true "reservation code"
// @Param        request   body      request.UpdateReservationRequest true "request body"
// @Success      200  {object}  domain.Reservation
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reservations/{code} [put]
func (h *ReservationHandler) HandleUpdateReservation(ctx *gin.Context) {
	code := ctx.Param("code")

	var req request.UpdateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reservation, err := h.svc.Update(ctx.Request.Context(), code, service.UpdateReservationInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
		Tickets:       ticketLines(req.Tickets),
	})
	if err != nil {
		if isReservationDomainErr(err) {
			renderReservationErr(ctx, err)
			return
		}

		err = fmt.Errorf("v1.HandleUpdateReservation -> h.svc.Update -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, reservation)
}

// HandleCancelReservation godoc
// @Summary      Cancel a reservation as the customer
// @Description  The email must match the one given at booking time. Closed once the performance starts.
// @Tags         reservations
// @Produce      json
// @Param        code      path      string true "reservation code"
// @Param        request   body      request.CancelReservationRequest true "request body"
// @Success      200  {object}  domain.Reservation
// @Failure      400  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reservations/{code}/cancel [put]
func (h *ReservationHandler) HandleCancelReservation(ctx *gin.Context) {
	code := ctx.Param("code")

	var req request.CancelReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	reservation, err := h.svc.CancelByCustomer(ctx.Request.Context(), code, req.CustomerEmail)
	if err != nil {
		if isReservationDomainErr(err) {
			renderReservationErr(ctx, err)
			return
		}

		err = fmt.Errorf("v1.HandleCancelReservation -> h.svc.CancelByCustomer -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, reservation)
}

func isReservationDomainErr(err error) bool {
	return errors.Is(err, service.ErrReservationNotFound) ||
		errors.Is(err, service.ErrPerformanceNotFound) ||
		errors.Is(err, service.ErrNotEnoughCapacity) ||
		errors.Is(err, service.ErrInvalidStatusTransition) ||
		errors.Is(err, service.ErrReservationsClosed) ||
		errors.Is(err, service.ErrExternalBooking) ||
		errors.Is(err, service.ErrPerformanceStarted) ||
		errors.Is(err, service.ErrPerformanceNotStarted) ||
		errors.Is(err, service.ErrNoTicketsRequested) ||
		errors.Is(err, service.ErrNoPriceConfigured) ||
		errors.Is(err, service.ErrReservationNotEditable) ||
		errors.Is(err, service.ErrNotReservationOwner)
}
