package domain

import "time"

type ReservationStatus string

const (
	ReservationPendingCollection   ReservationStatus = "PENDING_COLLECTION"
	ReservationCollected           ReservationStatus = "COLLECTED"
	ReservationPurchasedOnDoor     ReservationStatus = "PURCHASED_ON_DOOR"
	ReservationCancelledByCustomer ReservationStatus = "CANCELLED_BY_CUSTOMER"
	ReservationCancelledByAdmin    ReservationStatus = "CANCELLED_BY_ADMIN"
	ReservationNoShow              ReservationStatus = "NO_SHOW"
	ReservationExpired             ReservationStatus = "EXPIRED"
)

// releasedStatuses is the canonical set of statuses whose tickets no longer
// count against performance capacity. Applied uniformly by every aggregation.
var releasedStatuses = map[ReservationStatus]bool{
	ReservationCancelledByCustomer: true,
	ReservationCancelledByAdmin:    true,
	ReservationNoShow:              true,
	ReservationExpired:             true,
}

// ReleasedStatuses returns the statuses excluded from capacity accounting,
// in a stable order suitable for SQL NOT IN clauses.
func ReleasedStatuses() []ReservationStatus {
	return []ReservationStatus{
		ReservationCancelledByCustomer,
		ReservationCancelledByAdmin,
		ReservationNoShow,
		ReservationExpired,
	}
}

// CountsAgainstCapacity reports whether tickets held under this status still
// occupy seats.
func (s ReservationStatus) CountsAgainstCapacity() bool {
	return !releasedStatuses[s]
}

// allowedTransitions is the full transition table. PENDING_COLLECTION is the
// only non-terminal state apart from the CANCELLED_BY_ADMIN undo path.
var allowedTransitions = map[ReservationStatus]map[ReservationStatus]bool{
	ReservationPendingCollection: {
		ReservationCollected:           true,
		ReservationCancelledByAdmin:    true,
		ReservationCancelledByCustomer: true,
		ReservationNoShow:              true,
		ReservationExpired:             true,
	},
	ReservationCancelledByAdmin: {
		ReservationPendingCollection: true,
	},
}

// CanTransitionTo reports whether the status transition s -> next is legal.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	return allowedTransitions[s][next]
}

func (s ReservationStatus) IsCancelled() bool {
	return s == ReservationCancelledByCustomer || s == ReservationCancelledByAdmin
}

type Reservation struct {
	ID                 uint              `json:"id"`
	PerformanceID      uint              `json:"performance_id"`
	ReservationCode    string            `json:"reservation_code"`
	CustomerName       string            `json:"customer_name"`
	CustomerEmail      string            `json:"customer_email"`
	CustomerPhone      string            `json:"customer_phone,omitempty"`
	Status             ReservationStatus `json:"status"`
	TotalPrice         float64           `json:"total_price"`
	Notes              string            `json:"notes,omitempty"`
	AdminNotes         string            `json:"admin_notes,omitempty"`
	CollectionDeadline *time.Time        `json:"collection_deadline,omitempty"`
	UserID             *uint             `json:"user_id,omitempty"`
	Performance        *Performance      `json:"performance,omitempty"`
	ReservedTickets    []ReservedTicket  `json:"reserved_tickets"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// TicketCount is the total quantity across all line items.
func (r Reservation) TicketCount() int {
	total := 0
	for _, t := range r.ReservedTickets {
		total += t.Quantity
	}
	return total
}

// PerformanceSummary aggregates a performance's reservations by status class
// for the FOH views.
type PerformanceSummary struct {
	TotalReservations     int     `json:"total_reservations"`
	TotalTickets          int     `json:"total_tickets"`
	CollectedReservations int     `json:"collected_reservations"`
	CollectedTickets      int     `json:"collected_tickets"`
	PendingReservations   int     `json:"pending_reservations"`
	PendingTickets        int     `json:"pending_tickets"`
	CancelledReservations int     `json:"cancelled_reservations"`
	CancelledTickets      int     `json:"cancelled_tickets"`
	Revenue               float64 `json:"revenue"`
	PendingRevenue        float64 `json:"pending_revenue"`
}
