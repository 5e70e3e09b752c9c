package v1

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oaktheatre/boxoffice/internal/api/handler/v1/request"
	"github.com/oaktheatre/boxoffice/internal/api/handler/v1/response"
	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/repository"
	"github.com/oaktheatre/boxoffice/internal/service"
)

type FOHPerformanceService interface {
	FindUpcoming(ctx context.Context) ([]domain.Performance, error)
}

// FOHHandler serves the box office desk: collections, cancellations, door
// sales and the day's dashboard.
type FOHHandler struct {
	svc          ReservationService
	performances FOHPerformanceService
}

func NewFOHHandler(svc ReservationService, performances FOHPerformanceService) *FOHHandler {
	return &FOHHandler{
		svc:          svc,
		performances: performances,
	}
}

// PerformanceOverview pairs a performance with its reservation summary for
// the dashboard.
type PerformanceOverview struct {
	Performance domain.Performance        `json:"performance"`
	Summary     domain.PerformanceSummary `json:"summary"`
}

// HandleListReservations godoc
// @Summary      List reservations with optional filters
// @Tags         foh
// @Produce      json
// @Param        performance_id   query      integer false "filter by performance"
// @Param        status           query      string  false "filter by status"
// @Param        search           query      string  false "match against name, email or code"
// @Success      200  {array}   domain.Reservation
// @Failure      500  {object}  response.Err
// @Router       /foh/reservations [get]
// @Security     BearerAuth
func (h *FOHHandler) HandleListReservations(ctx *gin.Context) {
	filter := repository.ReservationFilter{
		Status:        domain.ReservationStatus(ctx.Query("status")),
		CustomerEmail: ctx.Query("customer_email"),
		Search:        ctx.Query("search"),
	}
	if raw := ctx.Query("performance_id"); raw != "" {
		performanceID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
		filter.PerformanceID = uint(performanceID)
	}

	reservations, err := h.svc.Find(ctx.Request.Context(), filter)
	if err != nil {
		err = fmt.Errorf("v1.HandleListReservations -> h.svc.Find -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, reservations)
}

// HandleWalkUpSale godoc
// @Summary      Record a door sale
// @Description  Creates a reservation already marked as purchased, bypassing the public availability gates.
// @Tags         foh
// @Produce      json
// @Param        request   body      request.WalkUpSaleRequest true "request body"
// @Success      201  {object}  domain.Reservation
// @Failure      400  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /foh/walk-up [post]
// @Security     BearerAuth
func (h *FOHHandler) HandleWalkUpSale(ctx *gin.Context) {
	var req request.WalkUpSaleRequest
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
		Tickets:       ticketLines(req.Tickets),
		WalkUp:        true,
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

		err = fmt.Errorf("v1.HandleWalkUpSale -> h.svc.Create -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, reservation)
}

// HandleCollectReservation godoc
// @Summary      Mark a reservation as collected
// @Tags         foh
// @Produce      json
// @Param        code   path      string true "reservation code"
// @Success      200  {object}  domain.Reservation
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /foh/reservations/{code}/collect [put]
// @Security     BearerAuth
func (h *FOHHandler) HandleCollectReservation(ctx *gin.Context) {
	h.renderTransition(ctx, h.svc.Collect)
}

// HandleAdminCancelReservation godoc
// @Summary      Cancel a reservation on the customer's behalf
// @Tags         foh
// @Produce      json
// @Param        code      path      string true "reservation code"
// @Param        request   body      request.AdminCancelRequest false "request body"
// @Success      200  {object}  domain.Reservation
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /foh/reservations/{code}/cancel [put]
// @Security     BearerAuth
func (h *FOHHandler) HandleAdminCancelReservation(ctx *gin.Context) {
	code := ctx.Param("code")

	var req request.AdminCancelRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}
	}

	reservation, err := h.svc.CancelByAdmin(ctx.Request.Context(), code, req.AdminNotes)
	if err != nil {
		if isReservationDomainErr(err) {
			renderReservationErr(ctx, err)
			return
		}

		err = fmt.Errorf("v1.HandleAdminCancelReservation -> h.svc.CancelByAdmin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, reservation)
}

// HandleReinstateReservation godoc
// @Summary      Undo an admin cancellation
// @Description  Fails when the seats have since been taken.
// @Tags         foh
// @Produce      json
// @Param        code   path      string true "reservation code"
// @Success      200  {object}  domain.Reservation
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /foh/reservations/{code}/reinstate [put]
// @Security     BearerAuth
func (h *FOHHandler) HandleReinstateReservation(ctx *gin.Context) {
	h.renderTransition(ctx, h.svc.Reinstate)
}

// HandleMarkNoShow godoc
// @Summary      Mark an uncollected reservation as a no-show
// @Tags         foh
// @Produce      json
// @Param        code   path      string true "reservation code"
// @Success      200  {object}  domain.Reservation
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /foh/reservations/{code}/no-show [put]
// @Security     BearerAuth
func (h *FOHHandler) HandleMarkNoShow(ctx *gin.Context) {
	h.renderTransition(ctx, h.svc.MarkNoShow)
}

// HandleExpireOverdue godoc
// @Summary      Expire pending reservations past their collection deadline
// @Tags         foh
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Failure      500  {object}  response.Err
// @Router       /foh/reservations/expire-overdue [post]
// @Security     BearerAuth
func (h *FOHHandler) HandleExpireOverdue(ctx *gin.Context) {
	expired, err := h.svc.ExpireOverdue(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleExpireOverdue -> h.svc.ExpireOverdue -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"expired": expired})
}

// HandlePerformanceSummary godoc
// @Summary      Summarise reservations for one performance
// @Tags         foh
// @Produce      json
// @Param        performanceID   path      integer true "performance ID"
// @Success      200  {object}  domain.PerformanceSummary
// @Failure      500  {object}  response.Err
// @Router       /foh/performances/{performanceID}/summary [get]
// @Security     BearerAuth
func (h *FOHHandler) HandlePerformanceSummary(ctx *gin.Context) {
	performanceID, err := strconv.ParseUint(ctx.Param("performanceID"), 10, 32)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	summary, err := h.svc.Summary(ctx.Request.Context(), uint(performanceID))
	if err != nil {
		err = fmt.Errorf("v1.HandlePerformanceSummary -> h.svc.Summary -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}

// HandleDashboard godoc
// @Summary      Upcoming performances with their reservation summaries
// @Tags         foh
// @Produce      json
// @Success      200  {array}   PerformanceOverview
// @Failure      500  {object}  response.Err
// @Router       /foh/dashboard [get]
// @Security     BearerAuth
func (h *FOHHandler) HandleDashboard(ctx *gin.Context) {
	performances, err := h.performances.FindUpcoming(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleDashboard -> h.performances.FindUpcoming -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	overviews := make([]PerformanceOverview, 0, len(performances))
	for _, performance := range performances {
		summary, err := h.svc.Summary(ctx.Request.Context(), performance.ID)
		if err != nil {
			err = fmt.Errorf("v1.HandleDashboard -> h.svc.Summary -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
			return
		}

		overviews = append(overviews, PerformanceOverview{
			Performance: performance,
			Summary:     summary,
		})
	}

	ctx.JSON(http.StatusOK, overviews)
}

func (h *FOHHandler) renderTransition(ctx *gin.Context, fn func(ctx context.Context, code string) (domain.Reservation, error)) {
	code := ctx.Param("code")

	reservation, err := fn(ctx.Request.Context(), code)
	if err != nil {
		if isReservationDomainErr(err) {
			renderReservationErr(ctx, err)
			return
		}

		err = fmt.Errorf("v1.FOHHandler -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, reservation)
}
