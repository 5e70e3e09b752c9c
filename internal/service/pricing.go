package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/repository"
)

var ErrNoPriceConfigured = errors.New("no price configured for ticket type")

type PricingTicketRepository interface {
	FindTypes(ctx context.Context, activeOnly bool) ([]domain.TicketType, error)
	FindTypeByID(ctx context.Context, id uint) (domain.TicketType, error)
	FindShowPrices(ctx context.Context, showID uint) ([]domain.ShowTicketPrice, error)
	FindPerformancePrices(ctx context.Context, performanceID uint) ([]domain.PerformanceTicketPrice, error)
}

// PricingService resolves the price of a ticket type for a performance by
// walking the override hierarchy: performance price, then show price, then
// the type's default. Inactive overrides never win. Resolution always reads
// current rows; resolved prices are never cached anywhere.
type PricingService struct {
	tickets PricingTicketRepository
}

func NewPricingService(tickets PricingTicketRepository) *PricingService {
	return &PricingService{
		tickets: tickets,
	}
}

// ResolvePrice resolves one ticket type for the given performance.
func (s *PricingService) ResolvePrice(ctx context.Context, performanceID, showID, ticketTypeID uint) (domain.ResolvedPrice, error) {
	performancePrices, err := s.tickets.FindPerformancePrices(ctx, performanceID)
	if err != nil {
		return domain.ResolvedPrice{}, fmt.Errorf("s.tickets.FindPerformancePrices -> %w", err)
	}

	for _, p := range performancePrices {
		if p.TicketTypeID == ticketTypeID && p.IsActive {
			name := ""
			if p.TicketType != nil {
				name = p.TicketType.Name
			}
			return domain.ResolvedPrice{
				TicketTypeID:   ticketTypeID,
				TicketTypeName: name,
				Price:          p.Price,
				Source:         domain.PriceFromPerformance,
				SourceID:       p.ID,
			}, nil
		}
	}

	showPrices, err := s.tickets.FindShowPrices(ctx, showID)
	if err != nil {
		return domain.ResolvedPrice{}, fmt.Errorf("s.tickets.FindShowPrices -> %w", err)
	}

	for _, p := range showPrices {
		if p.TicketTypeID == ticketTypeID && p.IsActive {
			name := ""
			if p.TicketType != nil {
				name = p.TicketType.Name
			}
			return domain.ResolvedPrice{
				TicketTypeID:   ticketTypeID,
				TicketTypeName: name,
				Price:          p.Price,
				Source:         domain.PriceFromShow,
				SourceID:       p.ID,
			}, nil
		}
	}

	ticketType, err := s.tickets.FindTypeByID(ctx, ticketTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrTicketTypeNotFound) {
			return domain.ResolvedPrice{}, ErrNoPriceConfigured
		}

		return domain.ResolvedPrice{}, fmt.Errorf("s.tickets.FindTypeByID -> %w", err)
	}

	if !ticketType.IsActive {
		return domain.ResolvedPrice{}, ErrNoPriceConfigured
	}

	return domain.ResolvedPrice{
		TicketTypeID:   ticketTypeID,
		TicketTypeName: ticketType.Name,
		Price:          ticketType.DefaultPrice,
		Source:         domain.PriceFromDefault,
	}, nil
}

// ListPrices resolves every active ticket type for the performance, in sort
// order. The result is what the booking form displays.
func (s *PricingService) ListPrices(ctx context.Context, performanceID, showID uint) ([]domain.ResolvedPrice, error) {
	ticketTypes, err := s.tickets.FindTypes(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("s.tickets.FindTypes -> %w", err)
	}

	performancePrices, err := s.tickets.FindPerformancePrices(ctx, performanceID)
	if err != nil {
		return nil, fmt.Errorf("s.tickets.FindPerformancePrices -> %w", err)
	}

	showPrices, err := s.tickets.FindShowPrices(ctx, showID)
	if err != nil {
		return nil, fmt.Errorf("s.tickets.FindShowPrices -> %w", err)
	}

	byPerformance := make(map[uint]domain.PerformanceTicketPrice, len(performancePrices))
	for _, p := range performancePrices {
		if p.IsActive {
			byPerformance[p.TicketTypeID] = p
		}
	}
	byShow := make(map[uint]domain.ShowTicketPrice, len(showPrices))
	for _, p := range showPrices {
		if p.IsActive {
			byShow[p.TicketTypeID] = p
		}
	}

	resolved := make([]domain.ResolvedPrice, 0, len(ticketTypes))
	for _, t := range ticketTypes {
		if p, ok := byPerformance[t.ID]; ok {
			resolved = append(resolved, domain.ResolvedPrice{
				TicketTypeID:   t.ID,
				TicketTypeName: t.Name,
				Price:          p.Price,
				Source:         domain.PriceFromPerformance,
				SourceID:       p.ID,
			})
			continue
		}
		if p, ok := byShow[t.ID]; ok {
			resolved = append(resolved, domain.ResolvedPrice{
				TicketTypeID:   t.ID,
				TicketTypeName: t.Name,
				Price:          p.Price,
				Source:         domain.PriceFromShow,
				SourceID:       p.ID,
			})
			continue
		}
		resolved = append(resolved, domain.ResolvedPrice{
			TicketTypeID:   t.ID,
			TicketTypeName: t.Name,
			Price:          t.DefaultPrice,
			Source:         domain.PriceFromDefault,
		})
	}

	return resolved, nil
}
