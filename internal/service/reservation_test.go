package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oaktheatre/boxoffice/internal/domain"
	"github.com/oaktheatre/boxoffice/internal/pkg/rescode"
	"github.com/oaktheatre/boxoffice/internal/repository"
)

type stubReservationRepo struct {
	reservations map[uint]domain.Reservation
	nextID       uint

	// codeCollisions makes the next N Create calls fail with a duplicate
	// code error.
	codeCollisions int
}

func newStubReservationRepo() *stubReservationRepo {
	return &stubReservationRepo{
		reservations: make(map[uint]domain.Reservation),
		nextID:       1,
	}
}

func (s *stubReservationRepo) sumActive(performanceID uint) int64 {
	var total int64
	for _, r := range s.reservations {
		if r.PerformanceID == performanceID && r.Status.CountsAgainstCapacity() {
			total += int64(r.TicketCount())
		}
	}
	return total
}

func (s *stubReservationRepo) Create(_ context.Context, reservation domain.Reservation) (domain.Reservation, error) {
	if s.codeCollisions > 0 {
		s.codeCollisions--
		return domain.Reservation{}, repository.ErrReservationCodeExists
	}

	reservation.ID = s.nextID
	s.nextID++
	s.reservations[reservation.ID] = reservation

	return reservation, nil
}

func (s *stubReservationRepo) FindByID(_ context.Context, id uint) (domain.Reservation, error) {
	r, ok := s.reservations[id]
	if !ok {
		return domain.Reservation{}, repository.ErrReservationNotFound
	}
	return r, nil
}

func (s *stubReservationRepo) FindByCode(_ context.Context, code string) (domain.Reservation, error) {
	for _, r := range s.reservations {
		if r.ReservationCode == code {
			return r, nil
		}
	}
	return domain.Reservation{}, repository.ErrReservationNotFound
}

func (s *stubReservationRepo) Find(_ context.Context, filter repository.ReservationFilter) ([]domain.Reservation, error) {
	found := make([]domain.Reservation, 0)
	for _, r := range s.reservations {
		if filter.PerformanceID != 0 && r.PerformanceID != filter.PerformanceID {
			continue
		}
		if filter.Status != "" && r.Status != filter.Status {
			continue
		}
		found = append(found, r)
	}
	return found, nil
}

func (s *stubReservationRepo) Update(_ context.Context, reservation domain.Reservation, tickets []domain.ReservedTicket) (domain.Reservation, error) {
	if tickets != nil {
		reservation.ReservedTickets = tickets
	}
	s.reservations[reservation.ID] = reservation
	return reservation, nil
}

func (s *stubReservationRepo) UpdateStatus(_ context.Context, id uint, status domain.ReservationStatus, adminNotes *string) (domain.Reservation, error) {
	r, ok := s.reservations[id]
	if !ok {
		return domain.Reservation{}, repository.ErrReservationNotFound
	}

	r.Status = status
	if adminNotes != nil {
		r.AdminNotes = *adminNotes
	}
	s.reservations[id] = r

	return r, nil
}

func (s *stubReservationRepo) SumActiveQuantity(_ context.Context, performanceID uint) (int64, error) {
	return s.sumActive(performanceID), nil
}

func (s *stubReservationRepo) ExpireOverdue(_ context.Context, now time.Time) (int64, error) {
	var expired int64
	for id, r := range s.reservations {
		if r.Status == domain.ReservationPendingCollection &&
			r.CollectionDeadline != nil &&
			r.CollectionDeadline.Before(now) {
			r.Status = domain.ReservationExpired
			s.reservations[id] = r
			expired++
		}
	}
	return expired, nil
}

type stubPriceResolver struct {
	prices map[uint]domain.ResolvedPrice
}

func (s *stubPriceResolver) ResolvePrice(_ context.Context, _, _, ticketTypeID uint) (domain.ResolvedPrice, error) {
	p, ok := s.prices[ticketTypeID]
	if !ok {
		return domain.ResolvedPrice{}, ErrNoPriceConfigured
	}
	return p, nil
}

type stubMailer struct {
	confirmations []string
	cancellations []string
	err           error
}

func (s *stubMailer) SendConfirmation(reservation domain.Reservation) error {
	s.confirmations = append(s.confirmations, reservation.ReservationCode)
	return s.err
}

func (s *stubMailer) SendCancellation(reservation domain.Reservation) error {
	s.cancellations = append(s.cancellations, reservation.ReservationCode)
	return s.err
}

type reservationFixture struct {
	svc          *ReservationService
	reservations *stubReservationRepo
	performances *stubPerformanceRepo
	mailer       *stubMailer
}

func newReservationFixture(t *testing.T) *reservationFixture {
	t.Helper()

	reservations := newStubReservationRepo()
	performances := &stubPerformanceRepo{
		performances: map[uint]domain.Performance{
			1: {
				ID:               1,
				ShowID:           5,
				StartDateTime:    time.Now().Add(72 * time.Hour),
				Status:           domain.PerformanceOnSale,
				MaxCapacity:      10,
				ReservationsOpen: true,
				IsActive:         true,
				Show:             &domain.Show{ID: 5, Status: domain.ShowPublished},
			},
			2: {
				ID:               2,
				ShowID:           5,
				StartDateTime:    time.Now().Add(-time.Hour),
				Status:           domain.PerformanceOnSale,
				MaxCapacity:      10,
				ReservationsOpen: true,
				IsActive:         true,
				Show:             &domain.Show{ID: 5, Status: domain.ShowPublished},
			},
			3: {
				ID:               3,
				ShowID:           5,
				StartDateTime:    time.Now().Add(2 * time.Hour),
				Status:           domain.PerformanceOnSale,
				MaxCapacity:      domain.UnlimitedCapacity,
				ReservationsOpen: true,
				IsActive:         true,
				Show:             &domain.Show{ID: 5, Status: domain.ShowPublished},
			},
		},
	}
	pricing := &stubPriceResolver{
		prices: map[uint]domain.ResolvedPrice{
			1: {TicketTypeID: 1, TicketTypeName: "Adult", Price: 15, Source: domain.PriceFromDefault},
			2: {TicketTypeID: 2, TicketTypeName: "Child", Price: 8, Source: domain.PriceFromShow, SourceID: 11},
		},
	}
	mailer := &stubMailer{}

	return &reservationFixture{
		svc:          NewReservationService(reservations, performances, pricing, mailer, 48),
		reservations: reservations,
		performances: performances,
		mailer:       mailer,
	}
}

func (f *reservationFixture) create(t *testing.T, input CreateReservationInput) domain.Reservation {
	t.Helper()

	created, err := f.svc.Create(context.Background(), input)
	require.NoError(t, err)

	return created
}

func TestCreateReservation(t *testing.T) {
	f := newReservationFixture(t)

	created := f.create(t, CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Tickets: []TicketLine{
			{TicketTypeID: 1, Quantity: 2},
			{TicketTypeID: 2, Quantity: 1},
		},
	})

	assert.Equal(t, domain.ReservationPendingCollection, created.Status)
	assert.Equal(t, float64(38), created.TotalPrice)
	assert.Len(t, created.ReservationCode, rescode.Length)
	require.Len(t, created.ReservedTickets, 2)
	assert.Equal(t, float64(15), created.ReservedTickets[0].PricePerItemAtReservation)
	assert.Equal(t, "Adult", created.ReservedTickets[0].TicketTypeNameAtReservation)
	require.NotNil(t, created.CollectionDeadline)
	assert.Equal(t, []string{created.ReservationCode}, f.mailer.confirmations)
}

func TestCreateReservationDeadlineCappedAtCurtain(t *testing.T) {
	// Performance 3 starts in two hours, well inside the 48 hour window.
	f := newReservationFixture(t)

	created := f.create(t, CreateReservationInput{
		PerformanceID: 3,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 1}},
	})

	require.NotNil(t, created.CollectionDeadline)
	start := f.performances.performances[3].StartDateTime
	assert.True(t, created.CollectionDeadline.Equal(start))
}

func TestCreateReservationGates(t *testing.T) {
	f := newReservationFixture(t)
	base := f.performances.performances[1]

	testCases := []struct {
		name    string
		modify  func(p domain.Performance) domain.Performance
		wantErr error
	}{
		{
			name: "inactive performance",
			modify: func(p domain.Performance) domain.Performance {
				p.IsActive = false
				return p
			},
			wantErr: ErrReservationsClosed,
		},
		{
			name: "reservations switched off",
			modify: func(p domain.Performance) domain.Performance {
				p.ReservationsOpen = false
				return p
			},
			wantErr: ErrReservationsClosed,
		},
		{
			name: "cancelled performance",
			modify: func(p domain.Performance) domain.Performance {
				p.Status = domain.PerformanceCancelled
				return p
			},
			wantErr: ErrReservationsClosed,
		},
		{
			name: "closed performance",
			modify: func(p domain.Performance) domain.Performance {
				p.Status = domain.PerformanceClosed
				return p
			},
			wantErr: ErrReservationsClosed,
		},
		{
			name: "unpublished show",
			modify: func(p domain.Performance) domain.Performance {
				p.Show = &domain.Show{ID: 5, Status: domain.ShowDraft}
				return p
			},
			wantErr: ErrReservationsClosed,
		},
		{
			name: "performance already started",
			modify: func(p domain.Performance) domain.Performance {
				p.StartDateTime = time.Now().Add(-time.Minute)
				return p
			},
			wantErr: ErrPerformanceStarted,
		},
		{
			name: "tickets sold on an external site",
			modify: func(p domain.Performance) domain.Performance {
				p.ExternalBookingLink = "https://tickets.example.com/hire"
				return p
			},
			wantErr: ErrExternalBooking,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f.performances.performances[1] = tc.modify(base)

			_, err := f.svc.Create(context.Background(), CreateReservationInput{
				PerformanceID: 1,
				CustomerName:  "Ada Lovelace",
				CustomerEmail: "ada@example.com",
				Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 1}},
			})

			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestCreateReservationNoTickets(t *testing.T) {
	f := newReservationFixture(t)

	_, err := f.svc.Create(context.Background(), CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
	})
	assert.ErrorIs(t, err, ErrNoTicketsRequested)

	_, err = f.svc.Create(context.Background(), CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrNoTicketsRequested)
}

func TestCreateReservationWhenFull(t *testing.T) {
	f := newReservationFixture(t)
	f.create(t, CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 10}},
	})

	// The capacity check runs before pricing, so a full performance wins
	// even when the requested ticket type has no price.
	_, err := f.svc.Create(context.Background(), CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Grace Hopper",
		CustomerEmail: "grace@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 99, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrNotEnoughCapacity)
}

func TestCreateReservationRetriesOnCodeCollision(t *testing.T) {
	f := newReservationFixture(t)
	f.reservations.codeCollisions = 2

	created := f.create(t, CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 1}},
	})

	assert.NotEmpty(t, created.ReservationCode)
}

func TestCreateReservationGivesUpAfterRepeatedCollisions(t *testing.T) {
	f := newReservationFixture(t)
	f.reservations.codeCollisions = codeAttempts

	_, err := f.svc.Create(context.Background(), CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 1}},
	})

	assert.ErrorIs(t, err, repository.ErrReservationCodeExists)
}

func TestCreateWalkUpSale(t *testing.T) {
	f := newReservationFixture(t)

	// Walk-ups go through even after curtain up.
	created := f.create(t, CreateReservationInput{
		PerformanceID: 2,
		CustomerName:  "Door Sale",
		CustomerEmail: "door@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 2}},
		WalkUp:        true,
	})

	assert.Equal(t, domain.ReservationPurchasedOnDoor, created.Status)
	assert.Nil(t, created.CollectionDeadline)
	assert.Empty(t, f.mailer.confirmations)
}

func TestCollect(t *testing.T) {
	f := newReservationFixture(t)
	created := f.create(t, CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 1}},
	})

	collected, err := f.svc.Collect(context.Background(), created.ReservationCode)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCollected, collected.Status)

	_, err = f.svc.Collect(context.Background(), created.ReservationCode)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestCancelByCustomer(t *testing.T) {
	f := newReservationFixture(t)
	created := f.create(t, CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "Ada@Example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 1}},
	})

	_, err := f.svc.CancelByCustomer(context.Background(), created.ReservationCode, "someone@else.com")
	assert.ErrorIs(t, err, ErrNotReservationOwner)

	// Email matching ignores case.
	cancelled, err := f.svc.CancelByCustomer(context.Background(), created.ReservationCode, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelledByCustomer, cancelled.Status)
	assert.Equal(t, []string{created.ReservationCode}, f.mailer.cancellations)
}

func TestCancelByCustomerAfterCurtain(t *testing.T) {
	f := newReservationFixture(t)
	created := f.create(t, CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 1}},
	})

	p := f.performances.performances[1]
	p.StartDateTime = time.Now().Add(-time.Minute)
	f.performances.performances[1] = p

	_, err := f.svc.CancelByCustomer(context.Background(), created.ReservationCode, "ada@example.com")
	assert.ErrorIs(t, err, ErrPerformanceStarted)
}

func TestCancelByAdminAfterCurtain(t *testing.T) {
	f := newReservationFixture(t)
	created := f.create(t, CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 1}},
	})

	p := f.performances.performances[1]
	p.StartDateTime = time.Now().Add(-time.Hour)
	f.performances.performances[1] = p

	_, err := f.svc.CancelByAdmin(context.Background(), created.ReservationCode, nil)
	assert.ErrorIs(t, err, ErrPerformanceStarted)

	// Uncollected seats on a started performance are released as no-shows.
	marked, err := f.svc.MarkNoShow(context.Background(), created.ReservationCode)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationNoShow, marked.Status)
}

func TestReinstate(t *testing.T) {
	f := newReservationFixture(t)
	created := f.create(t, CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 4}},
	})

	_, err := f.svc.CancelByAdmin(context.Background(), created.ReservationCode, nil)
	require.NoError(t, err)

	reinstated, err := f.svc.Reinstate(context.Background(), created.ReservationCode)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationPendingCollection, reinstated.Status)
}

func TestReinstateBlockedWhenFull(t *testing.T) {
	f := newReservationFixture(t)
	created := f.create(t, CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 4}},
	})

	_, err := f.svc.CancelByAdmin(context.Background(), created.ReservationCode, nil)
	require.NoError(t, err)

	// Someone else takes the released seats.
	f.create(t, CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Grace Hopper",
		CustomerEmail: "grace@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 8}},
	})

	_, err = f.svc.Reinstate(context.Background(), created.ReservationCode)
	assert.ErrorIs(t, err, ErrNotEnoughCapacity)
}

func TestMarkNoShow(t *testing.T) {
	f := newReservationFixture(t)
	created := f.create(t, CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 1}},
	})

	_, err := f.svc.MarkNoShow(context.Background(), created.ReservationCode)
	assert.ErrorIs(t, err, ErrPerformanceNotStarted)

	p := f.performances.performances[1]
	p.StartDateTime = time.Now().Add(-time.Minute)
	f.performances.performances[1] = p

	marked, err := f.svc.MarkNoShow(context.Background(), created.ReservationCode)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationNoShow, marked.Status)
}

func TestUpdateReservation(t *testing.T) {
	f := newReservationFixture(t)
	created := f.create(t, CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 1}},
	})

	updated, err := f.svc.Update(context.Background(), created.ReservationCode, UpdateReservationInput{
		CustomerName:  "Ada King",
		CustomerEmail: "ada@example.com",
		Tickets: []TicketLine{
			{TicketTypeID: 2, Quantity: 3},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "Ada King", updated.CustomerName)
	assert.Equal(t, float64(24), updated.TotalPrice)
	require.Len(t, updated.ReservedTickets, 1)
	assert.Equal(t, "Child", updated.ReservedTickets[0].TicketTypeNameAtReservation)
}

func TestUpdateReservationTicketsOnlyWhilePending(t *testing.T) {
	f := newReservationFixture(t)
	created := f.create(t, CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 1}},
	})

	_, err := f.svc.Collect(context.Background(), created.ReservationCode)
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), created.ReservationCode, UpdateReservationInput{
		Tickets: []TicketLine{{TicketTypeID: 1, Quantity: 2}},
	})
	assert.ErrorIs(t, err, ErrReservationNotEditable)
}

func TestExpireOverdue(t *testing.T) {
	f := newReservationFixture(t)
	created := f.create(t, CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 1}},
	})

	past := time.Now().Add(-time.Hour)
	stored := f.reservations.reservations[created.ID]
	stored.CollectionDeadline = &past
	f.reservations.reservations[created.ID] = stored

	expired, err := f.svc.ExpireOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	after, err := f.svc.FindByCode(context.Background(), created.ReservationCode)
	require.NoError(t, err)
	assert.Equal(t, domain.ReservationExpired, after.Status)
}

func TestSummary(t *testing.T) {
	f := newReservationFixture(t)

	collected := f.create(t, CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 2}},
	})
	_, err := f.svc.Collect(context.Background(), collected.ReservationCode)
	require.NoError(t, err)

	f.create(t, CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Grace Hopper",
		CustomerEmail: "grace@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 2, Quantity: 3}},
	})

	cancelled := f.create(t, CreateReservationInput{
		PerformanceID: 1,
		CustomerName:  "Alan Turing",
		CustomerEmail: "alan@example.com",
		Tickets:       []TicketLine{{TicketTypeID: 1, Quantity: 1}},
	})
	_, err = f.svc.CancelByAdmin(context.Background(), cancelled.ReservationCode, nil)
	require.NoError(t, err)

	summary, err := f.svc.Summary(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalReservations)
	assert.Equal(t, 6, summary.TotalTickets)
	assert.Equal(t, 1, summary.CollectedReservations)
	assert.Equal(t, 2, summary.CollectedTickets)
	assert.Equal(t, float64(30), summary.Revenue)
	assert.Equal(t, 1, summary.PendingReservations)
	assert.Equal(t, 3, summary.PendingTickets)
	assert.Equal(t, float64(24), summary.PendingRevenue)
	assert.Equal(t, 1, summary.CancelledReservations)
	assert.Equal(t, 1, summary.CancelledTickets)
}
