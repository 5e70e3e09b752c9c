package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/repository"
)

type stubTicketRepo struct {
	types             []domain.TicketType
	showPrices        []domain.ShowTicketPrice
	performancePrices []domain.PerformanceTicketPrice
}

func (s *stubTicketRepo) FindTypes(_ context.Context, activeOnly bool) ([]domain.TicketType, error) {
	if !activeOnly {
		return s.types, nil
	}

	active := make([]domain.TicketType, 0, len(s.types))
	for _, t := range s.types {
		if t.IsActive {
			active = append(active, t)
		}
	}
	return active, nil
}

func (s *stubTicketRepo) FindTypeByID(_ context.Context, id uint) (domain.TicketType, error) {
	for _, t := range s.types {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.TicketType{}, repository.ErrTicketTypeNotFound
}

func (s *stubTicketRepo) FindShowPrices(_ context.Context, showID uint) ([]domain.ShowTicketPrice, error) {
	prices := make([]domain.ShowTicketPrice, 0)
	for _, p := range s.showPrices {
		if p.ShowID == showID {
			prices = append(prices, p)
		}
	}
	return prices, nil
}

func (s *stubTicketRepo) FindPerformancePrices(_ context.Context, performanceID uint) ([]domain.PerformanceTicketPrice, error) {
	prices := make([]domain.PerformanceTicketPrice, 0)
	for _, p := range s.performancePrices {
		if p.PerformanceID == performanceID {
			prices = append(prices, p)
		}
	}
	return prices, nil
}

func newPricingFixture() *stubTicketRepo {
	return &stubTicketRepo{
		types: []domain.TicketType{
			{ID: 1, Name: "Adult", DefaultPrice: 15, SortOrder: 1, IsActive: true},
			{ID: 2, Name: "Concession", DefaultPrice: 12, SortOrder: 2, IsActive: true},
			{ID: 3, Name: "Child", DefaultPrice: 8, SortOrder: 3, IsActive: true},
		},
		showPrices: []domain.ShowTicketPrice{
			{ID: 10, ShowID: 5, TicketTypeID: 1, Price: 18, IsActive: true},
			{ID: 11, ShowID: 5, TicketTypeID: 2, Price: 14, IsActive: false},
		},
		performancePrices: []domain.PerformanceTicketPrice{
			{ID: 20, PerformanceID: 7, TicketTypeID: 1, Price: 20, IsActive: true},
		},
	}
}

func TestResolvePrice(t *testing.T) {
	svc := NewPricingService(newPricingFixture())
	ctx := context.Background()

	testCases := []struct {
		name          string
		performanceID uint
		ticketTypeID  uint
		wantPrice     float64
		wantSource    domain.PriceSource
	}{
		{
			name:          "performance override wins",
			performanceID: 7,
			ticketTypeID:  1,
			wantPrice:     20,
			wantSource:    domain.PriceFromPerformance,
		},
		{
			name:          "falls back to show price",
			performanceID: 8,
			ticketTypeID:  1,
			wantPrice:     18,
			wantSource:    domain.PriceFromShow,
		},
		{
			name:          "inactive show override is skipped",
			performanceID: 8,
			ticketTypeID:  2,
			wantPrice:     12,
			wantSource:    domain.PriceFromDefault,
		},
		{
			name:          "falls back to type default",
			performanceID: 8,
			ticketTypeID:  3,
			wantPrice:     8,
			wantSource:    domain.PriceFromDefault,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resolved, err := svc.ResolvePrice(ctx, tc.performanceID, 5, tc.ticketTypeID)

			require.NoError(t, err)
			assert.Equal(t, tc.wantPrice, resolved.Price)
			assert.Equal(t, tc.wantSource, resolved.Source)
			assert.Equal(t, tc.ticketTypeID, resolved.TicketTypeID)
		})
	}
}

func TestResolvePriceNoPriceConfigured(t *testing.T) {
	repo := newPricingFixture()
	repo.types = append(repo.types, domain.TicketType{ID: 4, Name: "Retired", DefaultPrice: 5, IsActive: false})
	svc := NewPricingService(repo)

	_, err := svc.ResolvePrice(context.Background(), 8, 5, 4)
	assert.ErrorIs(t, err, ErrNoPriceConfigured)

	_, err = svc.ResolvePrice(context.Background(), 8, 5, 999)
	assert.ErrorIs(t, err, ErrNoPriceConfigured)
}

func TestListPrices(t *testing.T) {
	svc := NewPricingService(newPricingFixture())

	resolved, err := svc.ListPrices(context.Background(), 7, 5)

	require.NoError(t, err)
	require.Len(t, resolved, 3)

	assert.Equal(t, "Adult", resolved[0].TicketTypeName)
	assert.Equal(t, float64(20), resolved[0].Price)
	assert.Equal(t, domain.PriceFromPerformance, resolved[0].Source)

	assert.Equal(t, "Concession", resolved[1].TicketTypeName)
	assert.Equal(t, float64(12), resolved[1].Price)
	assert.Equal(t, domain.PriceFromDefault, resolved[1].Source)

	assert.Equal(t, "Child", resolved[2].TicketTypeName)
	assert.Equal(t, float64(8), resolved[2].Price)
	assert.Equal(t, domain.PriceFromDefault, resolved[2].Source)
}
