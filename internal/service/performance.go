package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oaktheatre/boxoffice/internal/domain"
)

var ErrEndsBeforeStart = errors.New("performance ends before it starts")

type PerformanceRepository interface {
	Create(ctx context.Context, performance domain.Performance) (domain.Performance, error)
	FindByID(ctx context.Context, id uint) (domain.Performance, error)
	FindByShowID(ctx context.Context, showID uint) ([]domain.Performance, error)
	FindUpcoming(ctx context.Context, now time.Time) ([]domain.Performance, error)
	Update(ctx context.Context, performance domain.Performance) (domain.Performance, error)
	Delete(ctx context.Context, id uint) error
}

type PerformanceShowRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Show, error)
}

type PerformanceService struct {
	repo  PerformanceRepository
	shows PerformanceShowRepository
}

func NewPerformanceService(repo PerformanceRepository, shows PerformanceShowRepository) *PerformanceService {
	return &PerformanceService{
		repo:  repo,
		shows: shows,
	}
}

func (s *PerformanceService) Create(ctx context.Context, performance domain.Performance) (domain.Performance, error) {
	if _, err := s.shows.FindByID(ctx, performance.ShowID); err != nil {
		return domain.Performance{}, fmt.Errorf("s.shows.FindByID -> %w", err)
	}

	if performance.EndDateTime != nil && performance.EndDateTime.Before(performance.StartDateTime) {
		return domain.Performance{}, ErrEndsBeforeStart
	}

	if performance.Type == "" {
		performance.Type = domain.PerformanceOrdinary
	}
	if performance.Status == "" {
		performance.Status = domain.PerformanceScheduled
	}

	created, err := s.repo.Create(ctx, performance)
	if err != nil {
		return domain.Performance{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *PerformanceService) FindByID(ctx context.Context, id uint) (domain.Performance, error) {
	performance, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Performance{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return performance, nil
}

// FindPublicByID serves the public performance page. Performances of
// unpublished shows are not found.
func (s *PerformanceService) FindPublicByID(ctx context.Context, id uint) (domain.Performance, error) {
	performance, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Performance{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !performance.IsActive ||
		performance.Show == nil ||
		performance.Show.Status != domain.ShowPublished ||
		!performance.Show.IsActive {
		return domain.Performance{}, ErrPerformanceNotFound
	}

	return performance, nil
}

func (s *PerformanceService) FindByShowID(ctx context.Context, showID uint) ([]domain.Performance, error) {
	performances, err := s.repo.FindByShowID(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByShowID -> %w", err)
	}

	return performances, nil
}

func (s *PerformanceService) FindUpcoming(ctx context.Context) ([]domain.Performance, error) {
	performances, err := s.repo.FindUpcoming(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindUpcoming -> %w", err)
	}

	return performances, nil
}

func (s *PerformanceService) Update(ctx context.Context, performance domain.Performance) (domain.Performance, error) {
	if performance.EndDateTime != nil && performance.EndDateTime.Before(performance.StartDateTime) {
		return domain.Performance{}, ErrEndsBeforeStart
	}

	updated, err := s.repo.Update(ctx, performance)
	if err != nil {
		return domain.Performance{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *PerformanceService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
