package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/repository"
)

type stubShowRepo struct {
	shows    map[uint]domain.Show
	upcoming map[uint]int64
	prices   map[uint]int64
}

func newStubShowRepo() *stubShowRepo {
	return &stubShowRepo{
		shows:    make(map[uint]domain.Show),
		upcoming: make(map[uint]int64),
		prices:   make(map[uint]int64),
	}
}

func (s *stubShowRepo) Create(_ context.Context, show domain.Show) (domain.Show, error) {
	show.ID = uint(len(s.shows) + 1)
	s.shows[show.ID] = show
	return show, nil
}

func (s *stubShowRepo) FindByID(_ context.Context, id uint) (domain.Show, error) {
	show, ok := s.shows[id]
	if !ok {
		return domain.Show{}, repository.ErrShowNotFound
	}
	return show, nil
}

func (s *stubShowRepo) FindBySlug(_ context.Context, slug string) (domain.Show, error) {
	for _, show := range s.shows {
		if show.Slug == slug {
			return show, nil
		}
	}
	return domain.Show{}, repository.ErrShowNotFound
}

func (s *stubShowRepo) FindPublished(_ context.Context, _ time.Time) ([]domain.Show, error) {
	published := make([]domain.Show, 0)
	for _, show := range s.shows {
		if show.Status == domain.ShowPublished && show.IsActive {
			published = append(published, show)
		}
	}
	return published, nil
}

func (s *stubShowRepo) FindAll(_ context.Context) ([]domain.Show, error) {
	all := make([]domain.Show, 0, len(s.shows))
	for _, show := range s.shows {
		all = append(all, show)
	}
	return all, nil
}

func (s *stubShowRepo) Update(_ context.Context, show domain.Show) (domain.Show, error) {
	if _, ok := s.shows[show.ID]; !ok {
		return domain.Show{}, repository.ErrShowNotFound
	}
	s.shows[show.ID] = show
	return show, nil
}

func (s *stubShowRepo) Delete(_ context.Context, id uint) error {
	if _, ok := s.shows[id]; !ok {
		return repository.ErrShowNotFound
	}
	delete(s.shows, id)
	return nil
}

func (s *stubShowRepo) CountUpcomingPerformances(_ context.Context, showID uint, _ time.Time) (int64, error) {
	return s.upcoming[showID], nil
}

func (s *stubShowRepo) CountActivePrices(_ context.Context, showID uint) (int64, error) {
	return s.prices[showID], nil
}

func TestSlugify(t *testing.T) {
	testCases := []struct {
		title string
		want  string
	}{
		{title: "A Midsummer Night's Dream", want: "a-midsummer-night-s-dream"},
		{title: "  The Tempest  ", want: "the-tempest"},
		{title: "Romeo & Juliet", want: "romeo-juliet"},
		{title: "Henry V!", want: "henry-v"},
		{title: "2024 Gala", want: "2024-gala"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, Slugify(tc.title))
	}
}

func TestCreateShowDefaults(t *testing.T) {
	repo := newStubShowRepo()
	svc := NewShowService(repo)

	created, err := svc.Create(context.Background(), domain.Show{
		Title:    "The Cherry Orchard",
		Status:   domain.ShowPublished, // must be ignored
		IsActive: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "the-cherry-orchard", created.Slug)
	assert.Equal(t, domain.ShowDraft, created.Status)
}

func TestFindPublishedBySlug(t *testing.T) {
	repo := newStubShowRepo()
	repo.shows[1] = domain.Show{ID: 1, Slug: "hamlet", Status: domain.ShowPublished, IsActive: true}
	repo.shows[2] = domain.Show{ID: 2, Slug: "draft-show", Status: domain.ShowDraft, IsActive: true}
	repo.shows[3] = domain.Show{ID: 3, Slug: "retired", Status: domain.ShowPublished, IsActive: false}
	svc := NewShowService(repo)

	found, err := svc.FindPublishedBySlug(context.Background(), "hamlet")
	require.NoError(t, err)
	assert.Equal(t, uint(1), found.ID)

	_, err = svc.FindPublishedBySlug(context.Background(), "draft-show")
	assert.ErrorIs(t, err, ErrShowNotFound)

	_, err = svc.FindPublishedBySlug(context.Background(), "retired")
	assert.ErrorIs(t, err, ErrShowNotFound)
}

func TestPublish(t *testing.T) {
	repo := newStubShowRepo()
	repo.shows[1] = domain.Show{
		ID:          1,
		Title:       "Hamlet",
		Slug:        "hamlet",
		Description: "The Prince of Denmark.",
		AgeRating:   "12+",
		Status:      domain.ShowDraft,
		IsActive:    true,
	}
	repo.upcoming[1] = 2
	repo.prices[1] = 1
	svc := NewShowService(repo)

	published, err := svc.Publish(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, domain.ShowPublished, published.Status)
}

func TestPublishMissingRequirements(t *testing.T) {
	repo := newStubShowRepo()
	repo.shows[1] = domain.Show{ID: 1, Title: "Untitled", Slug: "untitled", Status: domain.ShowDraft, IsActive: true}
	svc := NewShowService(repo)

	_, err := svc.Publish(context.Background(), 1)

	require.ErrorIs(t, err, ErrShowNotPublishable)
	assert.Contains(t, err.Error(), "description")
	assert.Contains(t, err.Error(), "age rating")
	assert.Contains(t, err.Error(), "an upcoming performance")
	assert.Contains(t, err.Error(), "an active ticket price")
}

func TestUnpublish(t *testing.T) {
	repo := newStubShowRepo()
	repo.shows[1] = domain.Show{ID: 1, Title: "Hamlet", Slug: "hamlet", Status: domain.ShowPublished, IsActive: true}
	svc := NewShowService(repo)

	repo.upcoming[1] = 3
	_, err := svc.Unpublish(context.Background(), 1)
	assert.ErrorIs(t, err, ErrShowHasUpcomingSchedule)

	repo.upcoming[1] = 0
	unpublished, err := svc.Unpublish(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.ShowDraft, unpublished.Status)
}

func TestUpdateShowKeepsStatus(t *testing.T) {
	repo := newStubShowRepo()
	repo.shows[1] = domain.Show{ID: 1, Title: "Hamlet", Slug: "hamlet", Status: domain.ShowPublished, IsActive: true}
	svc := NewShowService(repo)

	updated, err := svc.Update(context.Background(), domain.Show{
		ID:       1,
		Title:    "Hamlet, Prince of Denmark",
		Status:   domain.ShowDraft, // must be ignored
		IsActive: true,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ShowPublished, updated.Status)
	assert.Equal(t, "hamlet", updated.Slug)
}
