package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/repository/dao"
)

var ErrPerformanceNotFound = dao.ErrPerformanceNotFound

type PerformanceDAO interface {
	Insert(ctx context.Context, performance dao.Performance) (dao.Performance, error)
	FindByID(ctx context.Context, id uint) (dao.Performance, error)
	FindByShowID(ctx context.Context, showID uint) ([]dao.Performance, error)
	FindUpcoming(ctx context.Context, now time.Time) ([]dao.Performance, error)
	Update(ctx context.Context, performance dao.Performance) (dao.Performance, error)
	Delete(ctx context.Context, id uint) error
}

type PerformanceRepository struct {
	dao PerformanceDAO
}

func NewPerformanceRepository(dao PerformanceDAO) *PerformanceRepository {
	return &PerformanceRepository{
		dao: dao,
	}
}

func (r *PerformanceRepository) Create(ctx context.Context, performance domain.Performance) (domain.Performance, error) {
	created, err := r.dao.Insert(ctx, dao.Performance{
		ShowID:              performance.ShowID,
		VenueID:             performance.VenueID,
		Title:               performance.Title,
		StartDateTime:       performance.StartDateTime,
		EndDateTime:         performance.EndDateTime,
		Type:                string(performance.Type),
		Status:              string(performance.Status),
		Details:             performance.Details,
		MaxCapacity:         performance.MaxCapacity,
		ReservationsOpen:    performance.ReservationsOpen,
		ExternalBookingLink: performance.ExternalBookingLink,
		IsActive:            true,
	})
	if err != nil {
		return domain.Performance{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return performanceDaoToDomain(created), nil
}

func (r *PerformanceRepository) FindByID(ctx context.Context, id uint) (domain.Performance, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Performance{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return performanceDaoToDomain(found), nil
}

func (r *PerformanceRepository) FindByShowID(ctx context.Context, showID uint) ([]domain.Performance, error) {
	found, err := r.dao.FindByShowID(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByShowID -> %w", err)
	}

	performances := make([]domain.Performance, 0, len(found))
	for _, p := range found {
		performances = append(performances, performanceDaoToDomain(p))
	}

	return performances, nil
}

func (r *PerformanceRepository) FindUpcoming(ctx context.Context, now time.Time) ([]domain.Performance, error) {
	found, err := r.dao.FindUpcoming(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindUpcoming -> %w", err)
	}

	performances := make([]domain.Performance, 0, len(found))
	for _, p := range found {
		performances = append(performances, performanceDaoToDomain(p))
	}

	return performances, nil
}

func (r *PerformanceRepository) Update(ctx context.Context, performance domain.Performance) (domain.Performance, error) {
	existing, err := r.dao.FindByID(ctx, performance.ID)
	if err != nil {
		return domain.Performance{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	existing.VenueID = performance.VenueID
	existing.Title = performance.Title
	existing.StartDateTime = performance.StartDateTime
	existing.EndDateTime = performance.EndDateTime
	existing.Type = string(performance.Type)
	existing.Status = string(performance.Status)
	existing.Details = performance.Details
	existing.MaxCapacity = performance.MaxCapacity
	existing.ReservationsOpen = performance.ReservationsOpen
	existing.ExternalBookingLink = performance.ExternalBookingLink
	existing.IsActive = performance.IsActive
	existing.Show = nil
	existing.Venue = nil
	existing.TicketPrices = nil

	updated, err := r.dao.Update(ctx, existing)
	if err != nil {
		return domain.Performance{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return performanceDaoToDomain(updated), nil
}

func (r *PerformanceRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func performanceDaoToDomain(p dao.Performance) domain.Performance {
	performance := domain.Performance{
		ID:                  p.ID,
		ShowID:              p.ShowID,
		VenueID:             p.VenueID,
		Title:               p.Title,
		StartDateTime:       p.StartDateTime,
		EndDateTime:         p.EndDateTime,
		Type:                domain.PerformanceType(p.Type),
		Status:              domain.PerformanceStatus(p.Status),
		Details:             p.Details,
		MaxCapacity:         p.MaxCapacity,
		ReservationsOpen:    p.ReservationsOpen,
		ExternalBookingLink: p.ExternalBookingLink,
		IsActive:            p.IsActive,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
	if p.Show != nil {
		show := showDaoToDomain(*p.Show)
		performance.Show = &show
	}
	if p.Venue != nil {
		venue := venueDaoToDomain(*p.Venue)
		performance.Venue = &venue
	}
	for _, price := range p.TicketPrices {
		performance.TicketPrices = append(performance.TicketPrices, performancePriceDaoToDomain(price))
	}

	return performance
}
