package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/repository"
)

var (
	ErrShowNotFound            = repository.ErrShowNotFound
	ErrShowSlugExists          = repository.ErrShowSlugExists
	ErrShowNotPublishable      = errors.New("show cannot be published")
	ErrShowHasUpcomingSchedule = errors.New("show still has upcoming performances")
)

type ShowRepository interface {
	Create(ctx context.Context, show domain.Show) (domain.Show, error)
	FindByID(ctx context.Context, id uint) (domain.Show, error)
	FindBySlug(ctx context.Context, slug string) (domain.Show, error)
	FindPublished(ctx context.Context, now time.Time) ([]domain.Show, error)
	FindAll(ctx context.Context) ([]domain.Show, error)
	Update(ctx context.Context, show domain.Show) (domain.Show, error)
	Delete(ctx context.Context, id uint) error
	CountUpcomingPerformances(ctx context.Context, showID uint, now time.Time) (int64, error)
	CountActivePrices(ctx context.Context, showID uint) (int64, error)
}

type ShowService struct {
	repo ShowRepository
}

func NewShowService(repo ShowRepository) *ShowService {
	return &ShowService{
		repo: repo,
	}
}

func (s *ShowService) Create(ctx context.Context, show domain.Show) (domain.Show, error) {
	if show.Slug == "" {
		show.Slug = Slugify(show.Title)
	}
	show.Status = domain.ShowDraft

	created, err := s.repo.Create(ctx, show)
	if err != nil {
		return domain.Show{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ShowService) FindByID(ctx context.Context, id uint) (domain.Show, error) {
	show, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Show{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return show, nil
}

// FindPublishedBySlug serves the public show page. Drafts and cancelled
// shows look identical to missing ones from outside.
func (s *ShowService) FindPublishedBySlug(ctx context.Context, slug string) (domain.Show, error) {
	show, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return domain.Show{}, fmt.Errorf("s.repo.FindBySlug -> %w", err)
	}

	if show.Status != domain.ShowPublished || !show.IsActive {
		return domain.Show{}, ErrShowNotFound
	}

	return show, nil
}

func (s *ShowService) FindPublished(ctx context.Context) ([]domain.Show, error) {
	shows, err := s.repo.FindPublished(ctx, time.Now())
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindPublished -> %w", err)
	}

	return shows, nil
}

func (s *ShowService) FindAll(ctx context.Context) ([]domain.Show, error) {
	shows, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return shows, nil
}

func (s *ShowService) Update(ctx context.Context, show domain.Show) (domain.Show, error) {
	existing, err := s.repo.FindByID(ctx, show.ID)
	if err != nil {
		return domain.Show{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	// Status changes go through Publish and Unpublish, not plain updates.
	show.Status = existing.Status
	if show.Slug == "" {
		show.Slug = existing.Slug
	}

	updated, err := s.repo.Update(ctx, show)
	if err != nil {
		return domain.Show{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ShowService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// Publish makes a show visible to the public. A publishable show needs a
// title, a description, an age rating, at least one upcoming performance and
// at least one active show-level price.
func (s *ShowService) Publish(ctx context.Context, id uint) (domain.Show, error) {
	show, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Show{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	var missing []string
	if strings.TrimSpace(show.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(show.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(show.AgeRating) == "" {
		missing = append(missing, "age rating")
	}

	upcoming, err := s.repo.CountUpcomingPerformances(ctx, id, time.Now())
	if err != nil {
		return domain.Show{}, fmt.Errorf("s.repo.CountUpcomingPerformances -> %w", err)
	}
	if upcoming == 0 {
		missing = append(missing, "an upcoming performance")
	}

	prices, err := s.repo.CountActivePrices(ctx, id)
	if err != nil {
		return domain.Show{}, fmt.Errorf("s.repo.CountActivePrices -> %w", err)
	}
	if prices == 0 {
		missing = append(missing, "an active ticket price")
	}

	if len(missing) > 0 {
		return domain.Show{}, fmt.Errorf("%w: missing %s", ErrShowNotPublishable, strings.Join(missing, ", "))
	}

	show.Status = domain.ShowPublished
	show.Performances = nil
	show.TicketPrices = nil

	updated, err := s.repo.Update(ctx, show)
	if err != nil {
		return domain.Show{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Unpublish takes a show off sale. Blocked while upcoming performances exist
// so live listings never point at a hidden show.
func (s *ShowService) Unpublish(ctx context.Context, id uint) (domain.Show, error) {
	show, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Show{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	upcoming, err := s.repo.CountUpcomingPerformances(ctx, id, time.Now())
	if err != nil {
		return domain.Show{}, fmt.Errorf("s.repo.CountUpcomingPerformances -> %w", err)
	}
	if upcoming > 0 {
		return domain.Show{}, ErrShowHasUpcomingSchedule
	}

	show.Status = domain.ShowDraft
	show.Performances = nil
	show.TicketPrices = nil

	updated, err := s.repo.Update(ctx, show)
	if err != nil {
		return domain.Show{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugPattern.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}
