package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/repository/dao"
)

var (
	ErrShowNotFound   = dao.ErrShowNotFound
	ErrShowSlugExists = dao.ErrShowSlugExists
)

type ShowDAO interface {
	Insert(ctx context.Context, show dao.Show) (dao.Show, error)
	FindByID(ctx context.Context, id uint) (dao.Show, error)
	FindBySlug(ctx context.Context, slug string) (dao.Show, error)
	FindPublished(ctx context.Context, now time.Time) ([]dao.Show, error)
	FindAll(ctx context.Context) ([]dao.Show, error)
	Update(ctx context.Context, show dao.Show) (dao.Show, error)
	Delete(ctx context.Context, id uint) error
	CountUpcomingPerformances(ctx context.Context, showID uint, now time.Time) (int64, error)
	CountActivePrices(ctx context.Context, showID uint) (int64, error)
}

type ShowRepository struct {
	dao ShowDAO
}

func NewShowRepository(dao ShowDAO) *ShowRepository {
	return &ShowRepository{
		dao: dao,
	}
}

func (r *ShowRepository) Create(ctx context.Context, show domain.Show) (domain.Show, error) {
	created, err := r.dao.Insert(ctx, dao.Show{
		Title:          show.Title,
		Slug:           show.Slug,
		Description:    show.Description,
		Status:         string(show.Status),
		ShowType:       string(show.ShowType),
		AgeRating:      show.AgeRating,
		PosterImageURL: show.PosterImageURL,
		IsActive:       true,
	})
	if err != nil {
		return domain.Show{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return showDaoToDomain(created), nil
}

func (r *ShowRepository) FindByID(ctx context.Context, id uint) (domain.Show, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Show{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return showDaoToDomain(found), nil
}

func (r *ShowRepository) FindBySlug(ctx context.Context, slug string) (domain.Show, error) {
	found, err := r.dao.FindBySlug(ctx, slug)
	if err != nil {
		return domain.Show{}, fmt.Errorf("r.dao.FindBySlug -> %w", err)
	}

	return showDaoToDomain(found), nil
}

func (r *ShowRepository) FindPublished(ctx context.Context, now time.Time) ([]domain.Show, error) {
	found, err := r.dao.FindPublished(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPublished -> %w", err)
	}

	shows := make([]domain.Show, 0, len(found))
	for _, s := range found {
		shows = append(shows, showDaoToDomain(s))
	}

	return shows, nil
}

func (r *ShowRepository) FindAll(ctx context.Context) ([]domain.Show, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	shows := make([]domain.Show, 0, len(found))
	for _, s := range found {
		shows = append(shows, showDaoToDomain(s))
	}

	return shows, nil
}

func (r *ShowRepository) Update(ctx context.Context, show domain.Show) (domain.Show, error) {
	existing, err := r.dao.FindByID(ctx, show.ID)
	if err != nil {
		return domain.Show{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	existing.Title = show.Title
	existing.Slug = show.Slug
	existing.Description = show.Description
	existing.Status = string(show.Status)
	existing.ShowType = string(show.ShowType)
	existing.AgeRating = show.AgeRating
	existing.PosterImageURL = show.PosterImageURL
	existing.IsActive = show.IsActive
	existing.Performances = nil
	existing.TicketPrices = nil

	updated, err := r.dao.Update(ctx, existing)
	if err != nil {
		return domain.Show{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return showDaoToDomain(updated), nil
}

func (r *ShowRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ShowRepository) CountUpcomingPerformances(ctx context.Context, showID uint, now time.Time) (int64, error) {
	count, err := r.dao.CountUpcomingPerformances(ctx, showID, now)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountUpcomingPerformances -> %w", err)
	}

	return count, nil
}

func (r *ShowRepository) CountActivePrices(ctx context.Context, showID uint) (int64, error) {
	count, err := r.dao.CountActivePrices(ctx, showID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountActivePrices -> %w", err)
	}

	return count, nil
}

func showDaoToDomain(s dao.Show) domain.Show {
	show := domain.Show{
		ID:             s.ID,
		Title:          s.Title,
		Slug:           s.Slug,
		Description:    s.Description,
		Status:         domain.ShowStatus(s.Status),
		ShowType:       domain.ShowType(s.ShowType),
		AgeRating:      s.AgeRating,
		PosterImageURL: s.PosterImageURL,
		IsActive:       s.IsActive,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	for _, p := range s.Performances {
		show.Performances = append(show.Performances, performanceDaoToDomain(p))
	}
	for _, price := range s.TicketPrices {
		show.TicketPrices = append(show.TicketPrices, showPriceDaoToDomain(price))
	}

	return show
}
