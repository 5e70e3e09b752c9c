package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/pkg/rescode"
	"github.com/oaktheatre/boxoffice/internal/repository"
)

var (
	ErrReservationNotFound     = repository.ErrReservationNotFound
	ErrNotEnoughCapacity       = repository.ErrNotEnoughCapacity
	ErrPerformanceNotFound     = repository.ErrPerformanceNotFound
	ErrReservationsClosed      = errors.New("reservations are not open for this performance")
	ErrExternalBooking         = errors.New("tickets for this performance are sold through an external site")
	ErrPerformanceStarted      = errors.New("performance has already started")
	ErrPerformanceNotStarted   = errors.New("performance has not started yet")
	ErrNoTicketsRequested      = errors.New("at least one ticket is required")
	ErrInvalidStatusTransition = errors.New("invalid reservation status transition")
	ErrNotReservationOwner     = errors.New("reservation does not belong to this customer")
	ErrReservationNotEditable  = errors.New("only pending reservations can be edited")
)

// codeAttempts bounds retries when a generated reservation code collides.
const codeAttempts = 3

type ReservationRepository interface {
	Create(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error)
	FindByID(ctx context.Context, id uint) (domain.Reservation, error)
	FindByCode(ctx context.Context, code string) (domain.Reservation, error)
	Find(ctx context.Context, filter repository.ReservationFilter) ([]domain.Reservation, error)
	Update(ctx context.Context, reservation domain.Reservation, tickets []domain.ReservedTicket) (domain.Reservation, error)
	UpdateStatus(ctx context.Context, id uint, status domain.ReservationStatus, adminNotes *string) (domain.Reservation, error)
	SumActiveQuantity(ctx context.Context, performanceID uint) (int64, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

type ReservationPerformanceRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Performance, error)
}

type PriceResolver interface {
	ResolvePrice(ctx context.Context, performanceID, showID, ticketTypeID uint) (domain.ResolvedPrice, error)
}

type ReservationMailer interface {
	SendConfirmation(reservation domain.Reservation) error
	SendCancellation(reservation domain.Reservation) error
}

// TicketLine is one requested line of a reservation before pricing.
type TicketLine struct {
	TicketTypeID uint
	Quantity     int
}

type CreateReservationInput struct {
	PerformanceID uint
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
	Tickets       []TicketLine
	UserID        *uint

	// WalkUp marks a door sale taken by front of house. Walk-ups skip the
	// public availability gates and are recorded as already paid.
	WalkUp bool
}

type UpdateReservationInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
	AdminNotes    *string

	// Tickets replaces the line items wholesale when non-nil. Prices are
	// re-resolved at update time.
	Tickets []TicketLine
}

type ReservationService struct {
	reservations  ReservationRepository
	performances  ReservationPerformanceRepository
	pricing       PriceResolver
	mailer        ReservationMailer
	deadlineHours int
}

func NewReservationService(
	reservations ReservationRepository,
	performances ReservationPerformanceRepository,
	pricing PriceResolver,
	mailer ReservationMailer,
	deadlineHours int,
) *ReservationService {
	return &ReservationService{
		reservations:  reservations,
		performances:  performances,
		pricing:       pricing,
		mailer:        mailer,
		deadlineHours: deadlineHours,
	}
}

func (s *ReservationService) Create(ctx context.Context, input CreateReservationInput) (domain.Reservation, error) {
	if len(input.Tickets) == 0 {
		return domain.Reservation{}, ErrNoTicketsRequested
	}
	requested := 0
	for _, line := range input.Tickets {
		if line.Quantity <= 0 {
			return domain.Reservation{}, ErrNoTicketsRequested
		}
		requested += line.Quantity
	}

	performance, err := s.performances.FindByID(ctx, input.PerformanceID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.performances.FindByID -> %w", err)
	}

	now := time.Now()
	if !input.WalkUp {
		if performance.ExternalBookingLink != "" {
			return domain.Reservation{}, ErrExternalBooking
		}
		if !performance.IsActive ||
			!performance.ReservationsOpen ||
			performance.Status == domain.PerformanceCancelled ||
			performance.Status == domain.PerformanceClosed ||
			(performance.Show != nil && performance.Show.Status != domain.ShowPublished) {
			return domain.Reservation{}, ErrReservationsClosed
		}
		if performance.HasStarted(now) {
			return domain.Reservation{}, ErrPerformanceStarted
		}
	}

	// Advisory check before pricing; the dao re-checks under the row lock.
	if performance.MaxCapacity >= 0 {
		reserved, err := s.reservations.SumActiveQuantity(ctx, input.PerformanceID)
		if err != nil {
			return domain.Reservation{}, fmt.Errorf("s.reservations.SumActiveQuantity -> %w", err)
		}
		if int64(requested) > int64(performance.MaxCapacity)-reserved {
			return domain.Reservation{}, ErrNotEnoughCapacity
		}
	}

	tickets, total, err := s.priceTickets(ctx, performance, input.Tickets)
	if err != nil {
		return domain.Reservation{}, err
	}

	status := domain.ReservationPendingCollection
	var deadline *time.Time
	if input.WalkUp {
		status = domain.ReservationPurchasedOnDoor
	} else {
		d := now.Add(time.Duration(s.deadlineHours) * time.Hour)
		if d.After(performance.StartDateTime) {
			d = performance.StartDateTime
		}
		deadline = &d
	}

	reservation := domain.Reservation{
		PerformanceID:      input.PerformanceID,
		CustomerName:       input.CustomerName,
		CustomerEmail:      input.CustomerEmail,
		CustomerPhone:      input.CustomerPhone,
		Status:             status,
		TotalPrice:         total,
		Notes:              input.Notes,
		CollectionDeadline: deadline,
		UserID:             input.UserID,
		ReservedTickets:    tickets,
	}

	var created domain.Reservation
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := rescode.Generate()
		if err != nil {
			return domain.Reservation{}, fmt.Errorf("rescode.Generate -> %w", err)
		}
		reservation.ReservationCode = code

		created, err = s.reservations.Create(ctx, reservation)
		if err != nil {
			if errors.Is(err, repository.ErrReservationCodeExists) && attempt < codeAttempts-1 {
				continue
			}
			return domain.Reservation{}, fmt.Errorf("s.reservations.Create -> %w", err)
		}
		break
	}

	if !input.WalkUp && s.mailer != nil {
		if err := s.mailer.SendConfirmation(created); err != nil {
			zap.L().Warn("failed to send confirmation email",
				zap.String("reservation_code", created.ReservationCode),
				zap.Error(err))
		}
	}

	return created, nil
}

func (s *ReservationService) FindByCode(ctx context.Context, code string) (domain.Reservation, error) {
	reservation, err := s.reservations.FindByCode(ctx, code)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.reservations.FindByCode -> %w", err)
	}

	return reservation, nil
}

func (s *ReservationService) Find(ctx context.Context, filter repository.ReservationFilter) ([]domain.Reservation, error) {
	reservations, err := s.reservations.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.reservations.Find -> %w", err)
	}

	return reservations, nil
}

// Update edits customer details and optionally replaces the ticket lines.
// Replacement re-resolves every line against current pricing; untouched
// reservations keep their original snapshots.
func (s *ReservationService) Update(ctx context.Context, code string, input UpdateReservationInput) (domain.Reservation, error) {
	reservation, err := s.reservations.FindByCode(ctx, code)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.reservations.FindByCode -> %w", err)
	}

	if input.Tickets != nil && reservation.Status != domain.ReservationPendingCollection {
		return domain.Reservation{}, ErrReservationNotEditable
	}

	if input.CustomerName != "" {
		reservation.CustomerName = input.CustomerName
	}
	if input.CustomerEmail != "" {
		reservation.CustomerEmail = input.CustomerEmail
	}
	reservation.CustomerPhone = input.CustomerPhone
	reservation.Notes = input.Notes
	if input.AdminNotes != nil {
		reservation.AdminNotes = *input.AdminNotes
	}

	var tickets []domain.ReservedTicket
	if input.Tickets != nil {
		if len(input.Tickets) == 0 {
			return domain.Reservation{}, ErrNoTicketsRequested
		}

		performance, err := s.performances.FindByID(ctx, reservation.PerformanceID)
		if err != nil {
			return domain.Reservation{}, fmt.Errorf("s.performances.FindByID -> %w", err)
		}

		var total float64
		tickets, total, err = s.priceTickets(ctx, performance, input.Tickets)
		if err != nil {
			return domain.Reservation{}, err
		}
		reservation.TotalPrice = total
	}

	updated, err := s.reservations.Update(ctx, reservation, tickets)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.reservations.Update -> %w", err)
	}

	return updated, nil
}

// Collect marks a pending reservation as picked up at the box office.
func (s *ReservationService) Collect(ctx context.Context, code string) (domain.Reservation, error) {
	return s.transitionByCode(ctx, code, domain.ReservationCollected, nil)
}

// CancelByCustomer cancels the customer's own reservation. The email has to
// match what was given at booking time, and cancellation closes once the
// performance starts.
func (s *ReservationService) CancelByCustomer(ctx context.Context, code, email string) (domain.Reservation, error) {
	reservation, err := s.reservations.FindByCode(ctx, code)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.reservations.FindByCode -> %w", err)
	}

	if !strings.EqualFold(reservation.CustomerEmail, email) {
		return domain.Reservation{}, ErrNotReservationOwner
	}

	performance, err := s.performances.FindByID(ctx, reservation.PerformanceID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.performances.FindByID -> %w", err)
	}
	if performance.HasStarted(time.Now()) {
		return domain.Reservation{}, ErrPerformanceStarted
	}

	cancelled, err := s.transition(ctx, reservation, domain.ReservationCancelledByCustomer, nil)
	if err != nil {
		return domain.Reservation{}, err
	}

	if s.mailer != nil {
		if err := s.mailer.SendCancellation(cancelled); err != nil {
			zap.L().Warn("failed to send cancellation email",
				zap.String("reservation_code", cancelled.ReservationCode),
				zap.Error(err))
		}
	}

	return cancelled, nil
}

// CancelByAdmin cancels a reservation from the front of house desk. Like
// customer cancellation it closes at curtain up; seats on a started
// performance are released with MarkNoShow instead.
func (s *ReservationService) CancelByAdmin(ctx context.Context, code string, adminNotes *string) (domain.Reservation, error) {
	reservation, err := s.reservations.FindByCode(ctx, code)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.reservations.FindByCode -> %w", err)
	}

	performance, err := s.performances.FindByID(ctx, reservation.PerformanceID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.performances.FindByID -> %w", err)
	}
	if performance.HasStarted(time.Now()) {
		return domain.Reservation{}, ErrPerformanceStarted
	}

	return s.transition(ctx, reservation, domain.ReservationCancelledByAdmin, adminNotes)
}

// Reinstate undoes an admin cancellation, subject to the seats still being
// available.
func (s *ReservationService) Reinstate(ctx context.Context, code string) (domain.Reservation, error) {
	reservation, err := s.reservations.FindByCode(ctx, code)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.reservations.FindByCode -> %w", err)
	}

	performance, err := s.performances.FindByID(ctx, reservation.PerformanceID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.performances.FindByID -> %w", err)
	}

	if performance.MaxCapacity >= 0 {
		reserved, err := s.reservations.SumActiveQuantity(ctx, reservation.PerformanceID)
		if err != nil {
			return domain.Reservation{}, fmt.Errorf("s.reservations.SumActiveQuantity -> %w", err)
		}
		if int64(reservation.TicketCount()) > int64(performance.MaxCapacity)-reserved {
			return domain.Reservation{}, ErrNotEnoughCapacity
		}
	}

	return s.transition(ctx, reservation, domain.ReservationPendingCollection, nil)
}

// MarkNoShow releases the seats of a pending reservation whose performance
// has started without the tickets being collected.
func (s *ReservationService) MarkNoShow(ctx context.Context, code string) (domain.Reservation, error) {
	reservation, err := s.reservations.FindByCode(ctx, code)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.reservations.FindByCode -> %w", err)
	}

	performance, err := s.performances.FindByID(ctx, reservation.PerformanceID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.performances.FindByID -> %w", err)
	}
	if !performance.HasStarted(time.Now()) {
		return domain.Reservation{}, ErrPerformanceNotStarted
	}

	return s.transition(ctx, reservation, domain.ReservationNoShow, nil)
}

// ExpireOverdue flips pending reservations past their collection deadline to
// EXPIRED and returns how many were affected.
func (s *ReservationService) ExpireOverdue(ctx context.Context) (int64, error) {
	expired, err := s.reservations.ExpireOverdue(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("s.reservations.ExpireOverdue -> %w", err)
	}

	return expired, nil
}

// Summary aggregates a performance's reservations for the front of house
// dashboard.
func (s *ReservationService) Summary(ctx context.Context, performanceID uint) (domain.PerformanceSummary, error) {
	reservations, err := s.reservations.Find(ctx, repository.ReservationFilter{PerformanceID: performanceID})
	if err != nil {
		return domain.PerformanceSummary{}, fmt.Errorf("s.reservations.Find -> %w", err)
	}

	var summary domain.PerformanceSummary
	for _, r := range reservations {
		count := r.TicketCount()
		summary.TotalReservations++
		summary.TotalTickets += count

		switch r.Status {
		case domain.ReservationCollected, domain.ReservationPurchasedOnDoor:
			summary.CollectedReservations++
			summary.CollectedTickets += count
			summary.Revenue += r.TotalPrice
		case domain.ReservationPendingCollection:
			summary.PendingReservations++
			summary.PendingTickets += count
			summary.PendingRevenue += r.TotalPrice
		default:
			summary.CancelledReservations++
			summary.CancelledTickets += count
		}
	}

	return summary, nil
}

func (s *ReservationService) transitionByCode(ctx context.Context, code string, next domain.ReservationStatus, adminNotes *string) (domain.Reservation, error) {
	reservation, err := s.reservations.FindByCode(ctx, code)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.reservations.FindByCode -> %w", err)
	}

	return s.transition(ctx, reservation, next, adminNotes)
}

func (s *ReservationService) transition(ctx context.Context, reservation domain.Reservation, next domain.ReservationStatus, adminNotes *string) (domain.Reservation, error) {
	if !reservation.Status.CanTransitionTo(next) {
		return domain.Reservation{}, fmt.Errorf("%w: %s to %s", ErrInvalidStatusTransition, reservation.Status, next)
	}

	updated, err := s.reservations.UpdateStatus(ctx, reservation.ID, next, adminNotes)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.reservations.UpdateStatus -> %w", err)
	}

	return updated, nil
}

func (s *ReservationService) priceTickets(ctx context.Context, performance domain.Performance, lines []TicketLine) ([]domain.ReservedTicket, float64, error) {
	tickets := make([]domain.ReservedTicket, 0, len(lines))
	var total float64

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, 0, ErrNoTicketsRequested
		}

		resolved, err := s.pricing.ResolvePrice(ctx, performance.ID, performance.ShowID, line.TicketTypeID)
		if err != nil {
			if errors.Is(err, ErrNoPriceConfigured) {
				return nil, 0, err
			}
			return nil, 0, fmt.Errorf("s.pricing.ResolvePrice -> %w", err)
		}

		tickets = append(tickets, domain.ReservedTicket{
			TicketTypeID:                line.TicketTypeID,
			Quantity:                    line.Quantity,
			PricePerItemAtReservation:   resolved.Price,
			TicketTypeNameAtReservation: resolved.TicketTypeName,
		})
		total += resolved.Price * float64(line.Quantity)
	}

	return tickets, total, nil
}
