package service

import (
	"context"
	"fmt"

	"github.com/oaktheatre/boxoffice/internal/domain"
)

type CapacityPerformanceRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Performance, error)
}

type CapacityReservationRepository interface {
	SumActiveQuantity(ctx context.Context, performanceID uint) (int64, error)
}

// CapacityService answers availability questions for performances. Counts
// are derived on demand from reservations whose status still holds seats;
// nothing is stored or cached.
type CapacityService struct {
	performances CapacityPerformanceRepository
	reservations CapacityReservationRepository
}

func NewCapacityService(performances CapacityPerformanceRepository, reservations CapacityReservationRepository) *CapacityService {
	return &CapacityService{
		performances: performances,
		reservations: reservations,
	}
}

// GetCapacity reports the live capacity of one performance. For unlimited
// performances AvailableCount mirrors the unlimited sentinel.
func (s *CapacityService) GetCapacity(ctx context.Context, performanceID uint) (domain.Capacity, error) {
	performance, err := s.performances.FindByID(ctx, performanceID)
	if err != nil {
		return domain.Capacity{}, fmt.Errorf("s.performances.FindByID -> %w", err)
	}

	reserved, err := s.reservations.SumActiveQuantity(ctx, performanceID)
	if err != nil {
		return domain.Capacity{}, fmt.Errorf("s.reservations.SumActiveQuantity -> %w", err)
	}

	capacity := domain.Capacity{
		MaxCapacity:   performance.MaxCapacity,
		ReservedCount: int(reserved),
	}

	if performance.MaxCapacity < 0 {
		capacity.IsUnlimited = true
		capacity.AvailableCount = domain.UnlimitedCapacity
		return capacity, nil
	}

	available := performance.MaxCapacity - int(reserved)
	if available < 0 {
		available = 0
	}
	capacity.AvailableCount = available

	return capacity, nil
}

// CheckCapacity reports whether the requested quantity would still fit.
func (s *CapacityService) CheckCapacity(ctx context.Context, performanceID uint, requested int) (domain.CapacityCheck, error) {
	capacity, err := s.GetCapacity(ctx, performanceID)
	if err != nil {
		return domain.CapacityCheck{}, err
	}

	check := domain.CapacityCheck{
		TotalRequested: requested,
		AvailableCount: capacity.AvailableCount,
	}
	check.IsAvailable = capacity.IsUnlimited || requested <= capacity.AvailableCount

	return check, nil
}
