package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	testCases := []struct {
		name    string
		from    ReservationStatus
		to      ReservationStatus
		allowed bool
	}{
		{
			name:    "pending to collected",
			from:    ReservationPendingCollection,
			to:      ReservationCollected,
			allowed: true,
		},
		{
			name:    "pending to cancelled by admin",
			from:    ReservationPendingCollection,
			to:      ReservationCancelledByAdmin,
			allowed: true,
		},
		{
			name:    "pending to cancelled by customer",
			from:    ReservationPendingCollection,
			to:      ReservationCancelledByCustomer,
			allowed: true,
		},
		{
			name:    "pending to no-show",
			from:    ReservationPendingCollection,
			to:      ReservationNoShow,
			allowed: true,
		},
		{
			name:    "pending to expired",
			from:    ReservationPendingCollection,
			to:      ReservationExpired,
			allowed: true,
		},
		{
			name:    "admin cancellation can be reinstated",
			from:    ReservationCancelledByAdmin,
			to:      ReservationPendingCollection,
			allowed: true,
		},
		{
			name:    "customer cancellation is terminal",
			from:    ReservationCancelledByCustomer,
			to:      ReservationPendingCollection,
			allowed: false,
		},
		{
			name:    "collected is terminal",
			from:    ReservationCollected,
			to:      ReservationPendingCollection,
			allowed: false,
		},
		{
			name:    "collected cannot be cancelled",
			from:    ReservationCollected,
			to:      ReservationCancelledByAdmin,
			allowed: false,
		},
		{
			name:    "door purchase is terminal",
			from:    ReservationPurchasedOnDoor,
			to:      ReservationCancelledByAdmin,
			allowed: false,
		},
		{
			name:    "expired cannot be collected",
			from:    ReservationExpired,
			to:      ReservationCollected,
			allowed: false,
		},
		{
			name:    "pending to door purchase is not a transition",
			from:    ReservationPendingCollection,
			to:      ReservationPurchasedOnDoor,
			allowed: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to))
		})
	}
}

func TestCountsAgainstCapacity(t *testing.T) {
	holding := []ReservationStatus{
		ReservationPendingCollection,
		ReservationCollected,
		ReservationPurchasedOnDoor,
	}
	for _, status := range holding {
		assert.True(t, status.CountsAgainstCapacity(), "%s should hold seats", status)
	}

	released := ReleasedStatuses()
	assert.Len(t, released, 4)
	for _, status := range released {
		assert.False(t, status.CountsAgainstCapacity(), "%s should release seats", status)
	}
}

func TestIsCancelled(t *testing.T) {
	assert.True(t, ReservationCancelledByAdmin.IsCancelled())
	assert.True(t, ReservationCancelledByCustomer.IsCancelled())
	assert.False(t, ReservationNoShow.IsCancelled())
	assert.False(t, ReservationExpired.IsCancelled())
	assert.False(t, ReservationPendingCollection.IsCancelled())
}

func TestTicketCount(t *testing.T) {
	reservation := Reservation{
		ReservedTickets: []ReservedTicket{
			{Quantity: 2},
			{Quantity: 1},
			{Quantity: 3},
		},
	}

	assert.Equal(t, 6, reservation.TicketCount())
	assert.Equal(t, 0, Reservation{}.TicketCount())
}
