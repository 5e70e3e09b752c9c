package repository

import (
	"context"
	"fmt"

	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/repository/dao"
)

var (
	ErrTicketTypeNotFound   = dao.ErrTicketTypeNotFound
	ErrTicketTypeNameExists = dao.ErrTicketTypeNameExists
	ErrTicketPriceNotFound  = dao.ErrTicketPriceNotFound
	ErrDuplicateTicketPrice = dao.ErrDuplicateTicketPrice
)

type TicketDAO interface {
	InsertType(ctx context.Context, ticketType dao.TicketType) (dao.TicketType, error)
	FindTypeByID(ctx context.Context, id uint) (dao.TicketType, error)
	FindTypes(ctx context.Context, activeOnly bool) ([]dao.TicketType, error)
	UpdateType(ctx context.Context, ticketType dao.TicketType) (dao.TicketType, error)
	InsertShowPrice(ctx context.Context, price dao.ShowTicketPrice) (dao.ShowTicketPrice, error)
	FindShowPriceByID(ctx context.Context, id uint) (dao.ShowTicketPrice, error)
	FindShowPrices(ctx context.Context, showID uint) ([]dao.ShowTicketPrice, error)
	UpdateShowPrice(ctx context.Context, price dao.ShowTicketPrice) (dao.ShowTicketPrice, error)
	DeleteShowPrice(ctx context.Context, id uint) error
	InsertPerformancePrice(ctx context.Context, price dao.PerformanceTicketPrice) (dao.PerformanceTicketPrice, error)
	FindPerformancePriceByID(ctx context.Context, id uint) (dao.PerformanceTicketPrice, error)
	FindPerformancePrices(ctx context.Context, performanceID uint) ([]dao.PerformanceTicketPrice, error)
	UpdatePerformancePrice(ctx context.Context, price dao.PerformanceTicketPrice) (dao.PerformanceTicketPrice, error)
	DeletePerformancePrice(ctx context.Context, id uint) error
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

func (r *TicketRepository) CreateType(ctx context.Context, ticketType domain.TicketType) (domain.TicketType, error) {
	created, err := r.dao.InsertType(ctx, dao.TicketType{
		Name:         ticketType.Name,
		Description:  ticketType.Description,
		DefaultPrice: ticketType.DefaultPrice,
		SortOrder:    ticketType.SortOrder,
		IsActive:     true,
	})
	if err != nil {
		return domain.TicketType{}, fmt.Errorf("r.dao.InsertType -> %w", err)
	}

	return ticketTypeDaoToDomain(created), nil
}

func (r *TicketRepository) FindTypeByID(ctx context.Context, id uint) (domain.TicketType, error) {
	found, err := r.dao.FindTypeByID(ctx, id)
	if err != nil {
		return domain.TicketType{}, fmt.Errorf("r.dao.FindTypeByID -> %w", err)
	}

	return ticketTypeDaoToDomain(found), nil
}

func (r *TicketRepository) FindTypes(ctx context.Context, activeOnly bool) ([]domain.TicketType, error) {
	found, err := r.dao.FindTypes(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindTypes -> %w", err)
	}

	ticketTypes := make([]domain.TicketType, 0, len(found))
	for _, t := range found {
		ticketTypes = append(ticketTypes, ticketTypeDaoToDomain(t))
	}

	return ticketTypes, nil
}

func (r *TicketRepository) UpdateType(ctx context.Context, ticketType domain.TicketType) (domain.TicketType, error) {
	existing, err := r.dao.FindTypeByID(ctx, ticketType.ID)
	if err != nil {
		return domain.TicketType{}, fmt.Errorf("r.dao.FindTypeByID -> %w", err)
	}

	existing.Name = ticketType.Name
	existing.Description = ticketType.Description
	existing.DefaultPrice = ticketType.DefaultPrice
	existing.SortOrder = ticketType.SortOrder
	existing.IsActive = ticketType.IsActive

	updated, err := r.dao.UpdateType(ctx, existing)
	if err != nil {
		return domain.TicketType{}, fmt.Errorf("r.dao.UpdateType -> %w", err)
	}

	return ticketTypeDaoToDomain(updated), nil
}

func (r *TicketRepository) CreateShowPrice(ctx context.Context, price domain.ShowTicketPrice) (domain.ShowTicketPrice, error) {
	created, err := r.dao.InsertShowPrice(ctx, dao.ShowTicketPrice{
		ShowID:       price.ShowID,
		TicketTypeID: price.TicketTypeID,
		Price:        price.Price,
		Notes:        price.Notes,
		IsActive:     true,
	})
	if err != nil {
		return domain.ShowTicketPrice{}, fmt.Errorf("r.dao.InsertShowPrice -> %w", err)
	}

	return showPriceDaoToDomain(created), nil
}

func (r *TicketRepository) FindShowPriceByID(ctx context.Context, id uint) (domain.ShowTicketPrice, error) {
	found, err := r.dao.FindShowPriceByID(ctx, id)
	if err != nil {
		return domain.ShowTicketPrice{}, fmt.Errorf("r.dao.FindShowPriceByID -> %w", err)
	}

	return showPriceDaoToDomain(found), nil
}

func (r *TicketRepository) FindShowPrices(ctx context.Context, showID uint) ([]domain.ShowTicketPrice, error) {
	found, err := r.dao.FindShowPrices(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindShowPrices -> %w", err)
	}

	prices := make([]domain.ShowTicketPrice, 0, len(found))
	for _, p := range found {
		prices = append(prices, showPriceDaoToDomain(p))
	}

	return prices, nil
}

func (r *TicketRepository) UpdateShowPrice(ctx context.Context, price domain.ShowTicketPrice) (domain.ShowTicketPrice, error) {
	existing, err := r.dao.FindShowPriceByID(ctx, price.ID)
	if err != nil {
		return domain.ShowTicketPrice{}, fmt.Errorf("r.dao.FindShowPriceByID -> %w", err)
	}

	existing.Price = price.Price
	existing.Notes = price.Notes
	existing.IsActive = price.IsActive
	existing.TicketType = nil

	updated, err := r.dao.UpdateShowPrice(ctx, existing)
	if err != nil {
		return domain.ShowTicketPrice{}, fmt.Errorf("r.dao.UpdateShowPrice -> %w", err)
	}

	return showPriceDaoToDomain(updated), nil
}

func (r *TicketRepository) DeleteShowPrice(ctx context.Context, id uint) error {
	if err := r.dao.DeleteShowPrice(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteShowPrice -> %w", err)
	}

	return nil
}

func (r *TicketRepository) CreatePerformancePrice(ctx context.Context, price domain.PerformanceTicketPrice) (domain.PerformanceTicketPrice, error) {
	created, err := r.dao.InsertPerformancePrice(ctx, dao.PerformanceTicketPrice{
		PerformanceID: price.PerformanceID,
		TicketTypeID:  price.TicketTypeID,
		Price:         price.Price,
		Notes:         price.Notes,
		IsActive:      true,
	})
	if err != nil {
		return domain.PerformanceTicketPrice{}, fmt.Errorf("r.dao.InsertPerformancePrice -> %w", err)
	}

	return performancePriceDaoToDomain(created), nil
}

func (r *TicketRepository) FindPerformancePriceByID(ctx context.Context, id uint) (domain.PerformanceTicketPrice, error) {
	found, err := r.dao.FindPerformancePriceByID(ctx, id)
	if err != nil {
		return domain.PerformanceTicketPrice{}, fmt.Errorf("r.dao.FindPerformancePriceByID -> %w", err)
	}

	return performancePriceDaoToDomain(found), nil
}

func (r *TicketRepository) FindPerformancePrices(ctx context.Context, performanceID uint) ([]domain.PerformanceTicketPrice, error) {
	found, err := r.dao.FindPerformancePrices(ctx, performanceID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPerformancePrices -> %w", err)
	}

	prices := make([]domain.PerformanceTicketPrice, 0, len(found))
	for _, p := range found {
		prices = append(prices, performancePriceDaoToDomain(p))
	}

	return prices, nil
}

func (r *TicketRepository) UpdatePerformancePrice(ctx context.Context, price domain.PerformanceTicketPrice) (domain.PerformanceTicketPrice, error) {
	existing, err := r.dao.FindPerformancePriceByID(ctx, price.ID)
	if err != nil {
		return domain.PerformanceTicketPrice{}, fmt.Errorf("r.dao.FindPerformancePriceByID -> %w", err)
	}

	existing.Price = price.Price
	existing.Notes = price.Notes
	existing.IsActive = price.IsActive
	existing.TicketType = nil

	updated, err := r.dao.UpdatePerformancePrice(ctx, existing)
	if err != nil {
		return domain.PerformanceTicketPrice{}, fmt.Errorf("r.dao.UpdatePerformancePrice -> %w", err)
	}

	return performancePriceDaoToDomain(updated), nil
}

func (r *TicketRepository) DeletePerformancePrice(ctx context.Context, id uint) error {
	if err := r.dao.DeletePerformancePrice(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeletePerformancePrice -> %w", err)
	}

	return nil
}

func ticketTypeDaoToDomain(t dao.TicketType) domain.TicketType {
	return domain.TicketType{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		DefaultPrice: t.DefaultPrice,
		SortOrder:    t.SortOrder,
		IsActive:     t.IsActive,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func showPriceDaoToDomain(p dao.ShowTicketPrice) domain.ShowTicketPrice {
	price := domain.ShowTicketPrice{
		ID:           p.ID,
		ShowID:       p.ShowID,
		TicketTypeID: p.TicketTypeID,
		Price:        p.Price,
		Notes:        p.Notes,
		IsActive:     p.IsActive,
	}
	if p.TicketType != nil {
		t := ticketTypeDaoToDomain(*p.TicketType)
		price.TicketType = &t
	}

	return price
}

func performancePriceDaoToDomain(p dao.PerformanceTicketPrice) domain.PerformanceTicketPrice {
	price := domain.PerformanceTicketPrice{
		ID:            p.ID,
		PerformanceID: p.PerformanceID,
		TicketTypeID:  p.TicketTypeID,
		Price:         p.Price,
		Notes:         p.Notes,
		IsActive:      p.IsActive,
	}
	if p.TicketType != nil {
		t := ticketTypeDaoToDomain(*p.TicketType)
		price.TicketType = &t
	}

	return price
}
