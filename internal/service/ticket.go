package service

import (
	"context"
	"fmt"

	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/repository"
)

var (
	ErrTicketTypeNotFound   = repository.ErrTicketTypeNotFound
	ErrTicketTypeNameExists = repository.ErrTicketTypeNameExists
	ErrTicketPriceNotFound  = repository.ErrTicketPriceNotFound
	ErrDuplicateTicketPrice = repository.ErrDuplicateTicketPrice
)

type TicketRepository interface {
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

type TicketShowRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Show, error)
}

type TicketPerformanceRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Performance, error)
}

type TicketService struct {
	repo         TicketRepository
	shows        TicketShowRepository
	performances TicketPerformanceRepository
}

func NewTicketService(repo TicketRepository, shows TicketShowRepository, performances TicketPerformanceRepository) *TicketService {
	return &TicketService{
		repo:         repo,
		shows:        shows,
		performances: performances,
	}
}

func (s *TicketService) CreateType(ctx context.Context, ticketType domain.TicketType) (domain.TicketType, error) {
	created, err := s.repo.CreateType(ctx, ticketType)
	if err != nil {
		return domain.TicketType{}, fmt.Errorf("s.repo.CreateType -> %w", err)
	}

	return created, nil
}

func (s *TicketService) FindTypeByID(ctx context.Context, id uint) (domain.TicketType, error) {
	ticketType, err := s.repo.FindTypeByID(ctx, id)
	if err != nil {
		return domain.TicketType{}, fmt.Errorf("s.repo.FindTypeByID -> %w", err)
	}

	return ticketType, nil
}

func (s *TicketService) FindTypes(ctx context.Context, activeOnly bool) ([]domain.TicketType, error) {
	ticketTypes, err := s.repo.FindTypes(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindTypes -> %w", err)
	}

	return ticketTypes, nil
}

func (s *TicketService) UpdateType(ctx context.Context, ticketType domain.TicketType) (domain.TicketType, error) {
	updated, err := s.repo.UpdateType(ctx, ticketType)
	if err != nil {
		return domain.TicketType{}, fmt.Errorf("s.repo.UpdateType -> %w", err)
	}

	return updated, nil
}

func (s *TicketService) CreateShowPrice(ctx context.Context, price domain.ShowTicketPrice) (domain.ShowTicketPrice, error) {
	if _, err := s.shows.FindByID(ctx, price.ShowID); err != nil {
		return domain.ShowTicketPrice{}, fmt.Errorf("s.shows.FindByID -> %w", err)
	}
	if _, err := s.repo.FindTypeByID(ctx, price.TicketTypeID); err != nil {
		return domain.ShowTicketPrice{}, fmt.Errorf("s.repo.FindTypeByID -> %w", err)
	}

	created, err := s.repo.CreateShowPrice(ctx, price)
	if err != nil {
		return domain.ShowTicketPrice{}, fmt.Errorf("s.repo.CreateShowPrice -> %w", err)
	}

	return created, nil
}

func (s *TicketService) FindShowPrices(ctx context.Context, showID uint) ([]domain.ShowTicketPrice, error) {
	prices, err := s.repo.FindShowPrices(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindShowPrices -> %w", err)
	}

	return prices, nil
}

func (s *TicketService) UpdateShowPrice(ctx context.Context, price domain.ShowTicketPrice) (domain.ShowTicketPrice, error) {
	updated, err := s.repo.UpdateShowPrice(ctx, price)
	if err != nil {
		return domain.ShowTicketPrice{}, fmt.Errorf("s.repo.UpdateShowPrice -> %w", err)
	}

	return updated, nil
}

func (s *TicketService) DeleteShowPrice(ctx context.Context, id uint) error {
	if err := s.repo.DeleteShowPrice(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteShowPrice -> %w", err)
	}

	return nil
}

func (s *TicketService) CreatePerformancePrice(ctx context.Context, price domain.PerformanceTicketPrice) (domain.PerformanceTicketPrice, error) {
	if _, err := s.performances.FindByID(ctx, price.PerformanceID); err != nil {
		return domain.PerformanceTicketPrice{}, fmt.Errorf("s.performances.FindByID -> %w", err)
	}
	if _, err := s.repo.FindTypeByID(ctx, price.TicketTypeID); err != nil {
		return domain.PerformanceTicketPrice{}, fmt.Errorf("s.repo.FindTypeByID -> %w", err)
	}

	created, err := s.repo.CreatePerformancePrice(ctx, price)
	if err != nil {
		return domain.PerformanceTicketPrice{}, fmt.Errorf("s.repo.CreatePerformancePrice -> %w", err)
	}

	return created, nil
}

func (s *TicketService) FindPerformancePrices(ctx context.Context, performanceID uint) ([]domain.PerformanceTicketPrice, error) {
	prices, err := s.repo.FindPerformancePrices(ctx, performanceID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindPerformancePrices -> %w", err)
	}

	return prices, nil
}

func (s *TicketService) UpdatePerformancePrice(ctx context.Context, price domain.PerformanceTicketPrice) (domain.PerformanceTicketPrice, error) {
	updated, err := s.repo.UpdatePerformancePrice(ctx, price)
	if err != nil {
		return domain.PerformanceTicketPrice{}, fmt.Errorf("s.repo.UpdatePerformancePrice -> %w", err)
	}

	return updated, nil
}

func (s *TicketService) DeletePerformancePrice(ctx context.Context, id uint) error {
	if err := s.repo.DeletePerformancePrice(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeletePerformancePrice -> %w", err)
	}

	return nil
}
