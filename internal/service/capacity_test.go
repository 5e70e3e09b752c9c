package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/repository"
)

type stubPerformanceRepo struct {
	performances map[uint]domain.Performance
}

func (s *stubPerformanceRepo) FindByID(_ context.Context, id uint) (domain.Performance, error) {
	p, ok := s.performances[id]
	if !ok {
		return domain.Performance{}, repository.ErrPerformanceNotFound
	}
	return p, nil
}

type stubCapacityCounts struct {
	reserved map[uint]int64
}

func (s *stubCapacityCounts) SumActiveQuantity(_ context.Context, performanceID uint) (int64, error) {
	return s.reserved[performanceID], nil
}

func newCapacityService() *CapacityService {
	performances := &stubPerformanceRepo{
		performances: map[uint]domain.Performance{
			1: {ID: 1, MaxCapacity: 100},
			2: {ID: 2, MaxCapacity: domain.UnlimitedCapacity},
			3: {ID: 3, MaxCapacity: 10},
		},
	}
	counts := &stubCapacityCounts{
		reserved: map[uint]int64{
			1: 60,
			2: 500,
			3: 12,
		},
	}

	return NewCapacityService(performances, counts)
}

func TestGetCapacity(t *testing.T) {
	svc := newCapacityService()

	capacity, err := svc.GetCapacity(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 100, capacity.MaxCapacity)
	assert.Equal(t, 60, capacity.ReservedCount)
	assert.Equal(t, 40, capacity.AvailableCount)
	assert.False(t, capacity.IsUnlimited)
}

func TestGetCapacityUnlimited(t *testing.T) {
	svc := newCapacityService()

	capacity, err := svc.GetCapacity(context.Background(), 2)

	require.NoError(t, err)
	assert.True(t, capacity.IsUnlimited)
	assert.Equal(t, domain.UnlimitedCapacity, capacity.AvailableCount)
	assert.Equal(t, 500, capacity.ReservedCount)
}

func TestGetCapacityNeverNegative(t *testing.T) {
	// Performance 3 is overbooked: capacity 10, 12 reserved.
	svc := newCapacityService()

	capacity, err := svc.GetCapacity(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, 0, capacity.AvailableCount)
	assert.Equal(t, 12, capacity.ReservedCount)
}

func TestCheckCapacity(t *testing.T) {
	svc := newCapacityService()
	ctx := context.Background()

	testCases := []struct {
		name          string
		performanceID uint
		requested     int
		wantAvailable bool
	}{
		{
			name:          "fits",
			performanceID: 1,
			requested:     40,
			wantAvailable: true,
		},
		{
			name:          "one too many",
			performanceID: 1,
			requested:     41,
			wantAvailable: false,
		},
		{
			name:          "unlimited always fits",
			performanceID: 2,
			requested:     100000,
			wantAvailable: true,
		},
		{
			name:          "overbooked rejects everything",
			performanceID: 3,
			requested:     1,
			wantAvailable: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			check, err := svc.CheckCapacity(ctx, tc.performanceID, tc.requested)

			require.NoError(t, err)
			assert.Equal(t, tc.wantAvailable, check.IsAvailable)
			assert.Equal(t, tc.requested, check.TotalRequested)
		})
	}
}
