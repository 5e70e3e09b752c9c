package repository

import (
	"context"
	"fmt"

	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/repository/dao"
)

var ErrVenueNotFound = dao.ErrVenueNotFound

type VenueDAO interface {
	Insert(ctx context.Context, venue dao.Venue) (dao.Venue, error)
	FindByID(ctx context.Context, id uint) (dao.Venue, error)
	FindAll(ctx context.Context) ([]dao.Venue, error)
	Update(ctx context.Context, venue dao.Venue) (dao.Venue, error)
	Delete(ctx context.Context, id uint) error
}

type VenueRepository struct {
	dao VenueDAO
}

func NewVenueRepository(dao VenueDAO) *VenueRepository {
	return &VenueRepository{
		dao: dao,
	}
}

func (r *VenueRepository) Create(ctx context.Context, venue domain.Venue) (domain.Venue, error) {
	created, err := r.dao.Insert(ctx, dao.Venue{
		Name:     venue.Name,
		Address:  venue.Address,
		Capacity: venue.Capacity,
		Notes:    venue.Notes,
		IsActive: true,
	})
	if err != nil {
		return domain.Venue{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return venueDaoToDomain(created), nil
}

func (r *VenueRepository) FindByID(ctx context.Context, id uint) (domain.Venue, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Venue{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return venueDaoToDomain(found), nil
}

func (r *VenueRepository) FindAll(ctx context.Context) ([]domain.Venue, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	venues := make([]domain.Venue, 0, len(found))
	for _, v := range found {
		venues = append(venues, venueDaoToDomain(v))
	}

	return venues, nil
}

func (r *VenueRepository) Update(ctx context.Context, venue domain.Venue) (domain.Venue, error) {
	existing, err := r.dao.FindByID(ctx, venue.ID)
	if err != nil {
		return domain.Venue{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	existing.Name = venue.Name
	existing.Address = venue.Address
	existing.Capacity = venue.Capacity
	existing.Notes = venue.Notes
	existing.IsActive = venue.IsActive

	updated, err := r.dao.Update(ctx, existing)
	if err != nil {
		return domain.Venue{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return venueDaoToDomain(updated), nil
}

func (r *VenueRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func venueDaoToDomain(v dao.Venue) domain.Venue {
	return domain.Venue{
		ID:        v.ID,
		Name:      v.Name,
		Address:   v.Address,
		Capacity:  v.Capacity,
		Notes:     v.Notes,
		IsActive:  v.IsActive,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
