package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/repository/dao"
)

var (
	ErrReservationNotFound   = dao.ErrReservationNotFound
	ErrReservationCodeExists = dao.ErrReservationCodeExists
	ErrNotEnoughCapacity     = dao.ErrNotEnoughCapacity
)

type ReservationDAO interface {
	Insert(ctx context.Context, reservation dao.Reservation) (dao.Reservation, error)
	FindByID(ctx context.Context, id uint) (dao.Reservation, error)
	FindByCode(ctx context.Context, code string) (dao.Reservation, error)
	Find(ctx context.Context, filter dao.ReservationFilter) ([]dao.Reservation, error)
	Update(ctx context.Context, reservation dao.Reservation, tickets []dao.ReservedTicket) (dao.Reservation, error)
	UpdateStatus(ctx context.Context, id uint, status string, adminNotes *string) (dao.Reservation, error)
	SumActiveQuantity(ctx context.Context, performanceID uint) (int64, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

// ReservationFilter narrows reservation listings. Zero values mean no filter.
type ReservationFilter struct {
	PerformanceID uint
	Status        domain.ReservationStatus
	CustomerEmail string
	Search        string
}

type ReservationRepository struct {
	dao ReservationDAO
}

func NewReservationRepository(dao ReservationDAO) *ReservationRepository {
	return &ReservationRepository{
		dao: dao,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, reservation domain.Reservation) (domain.Reservation, error) {
	tickets := make([]dao.ReservedTicket, 0, len(reservation.ReservedTickets))
	for _, t := range reservation.ReservedTickets {
		tickets = append(tickets, dao.ReservedTicket{
			TicketTypeID:                t.TicketTypeID,
			Quantity:                    t.Quantity,
			PricePerItemAtReservation:   t.PricePerItemAtReservation,
			TicketTypeNameAtReservation: t.TicketTypeNameAtReservation,
		})
	}

	created, err := r.dao.Insert(ctx, dao.Reservation{
		PerformanceID:      reservation.PerformanceID,
		ReservationCode:    reservation.ReservationCode,
		CustomerName:       reservation.CustomerName,
		CustomerEmail:      reservation.CustomerEmail,
		CustomerPhone:      reservation.CustomerPhone,
		Status:             string(reservation.Status),
		TotalPrice:         reservation.TotalPrice,
		Notes:              reservation.Notes,
		CollectionDeadline: reservation.CollectionDeadline,
		UserID:             reservation.UserID,
		ReservedTickets:    tickets,
	})
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return reservationDaoToDomain(created), nil
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uint) (domain.Reservation, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return reservationDaoToDomain(found), nil
}

func (r *ReservationRepository) FindByCode(ctx context.Context, code string) (domain.Reservation, error) {
	found, err := r.dao.FindByCode(ctx, code)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.FindByCode -> %w", err)
	}

	return reservationDaoToDomain(found), nil
}

func (r *ReservationRepository) Find(ctx context.Context, filter ReservationFilter) ([]domain.Reservation, error) {
	found, err := r.dao.Find(ctx, dao.ReservationFilter{
		PerformanceID: filter.PerformanceID,
		Status:        string(filter.Status),
		CustomerEmail: filter.CustomerEmail,
		Search:        filter.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.Find -> %w", err)
	}

	reservations := make([]domain.Reservation, 0, len(found))
	for _, res := range found {
		reservations = append(reservations, reservationDaoToDomain(res))
	}

	return reservations, nil
}

// Update saves customer fields and notes. When tickets is non-nil the line
// items are replaced wholesale under a capacity re-check.
func (r *ReservationRepository) Update(ctx context.Context, reservation domain.Reservation, tickets []domain.ReservedTicket) (domain.Reservation, error) {
	existing, err := r.dao.FindByID(ctx, reservation.ID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	existing.CustomerName = reservation.CustomerName
	existing.CustomerEmail = reservation.CustomerEmail
	existing.CustomerPhone = reservation.CustomerPhone
	existing.TotalPrice = reservation.TotalPrice
	existing.Notes = reservation.Notes
	existing.AdminNotes = reservation.AdminNotes
	existing.CollectionDeadline = reservation.CollectionDeadline
	existing.Performance = nil

	var daoTickets []dao.ReservedTicket
	if tickets != nil {
		daoTickets = make([]dao.ReservedTicket, 0, len(tickets))
		for _, t := range tickets {
			daoTickets = append(daoTickets, dao.ReservedTicket{
				TicketTypeID:                t.TicketTypeID,
				Quantity:                    t.Quantity,
				PricePerItemAtReservation:   t.PricePerItemAtReservation,
				TicketTypeNameAtReservation: t.TicketTypeNameAtReservation,
			})
		}
	}

	updated, err := r.dao.Update(ctx, existing, daoTickets)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return reservationDaoToDomain(updated), nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id uint, status domain.ReservationStatus, adminNotes *string) (domain.Reservation, error) {
	updated, err := r.dao.UpdateStatus(ctx, id, string(status), adminNotes)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return reservationDaoToDomain(updated), nil
}

func (r *ReservationRepository) SumActiveQuantity(ctx context.Context, performanceID uint) (int64, error) {
	reserved, err := r.dao.SumActiveQuantity(ctx, performanceID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumActiveQuantity -> %w", err)
	}

	return reserved, nil
}

func (r *ReservationRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	expired, err := r.dao.ExpireOverdue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("r.dao.ExpireOverdue -> %w", err)
	}

	return expired, nil
}

func reservationDaoToDomain(res dao.Reservation) domain.Reservation {
	reservation := domain.Reservation{
		ID:                 res.ID,
		PerformanceID:      res.PerformanceID,
		ReservationCode:    res.ReservationCode,
		CustomerName:       res.CustomerName,
		CustomerEmail:      res.CustomerEmail,
		CustomerPhone:      res.CustomerPhone,
		Status:             domain.ReservationStatus(res.Status),
		TotalPrice:         res.TotalPrice,
		Notes:              res.Notes,
		AdminNotes:         res.AdminNotes,
		CollectionDeadline: res.CollectionDeadline,
		UserID:             res.UserID,
		CreatedAt:          res.CreatedAt,
		UpdatedAt:          res.UpdatedAt,
	}
	if res.Performance != nil {
		performance := performanceDaoToDomain(*res.Performance)
		reservation.Performance = &performance
	}
	for _, t := range res.ReservedTickets {
		reservation.ReservedTickets = append(reservation.ReservedTickets, domain.ReservedTicket{
			ID:                          t.ID,
			ReservationID:               t.ReservationID,
			TicketTypeID:                t.TicketTypeID,
			Quantity:                    t.Quantity,
			PricePerItemAtReservation:   t.PricePerItemAtReservation,
			TicketTypeNameAtReservation: t.TicketTypeNameAtReservation,
		})
	}

	return reservation
}
