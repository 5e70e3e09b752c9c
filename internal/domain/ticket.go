package domain

import "time"

type TicketType struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	DefaultPrice float64   `json:"default_price"`
	SortOrder    int       `json:"sort_order"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ShowTicketPrice overrides a ticket type's price for every performance of
// one show.
type ShowTicketPrice struct {
	ID           uint        `json:"id"`
	ShowID       uint        `json:"show_id"`
	TicketTypeID uint        `json:"ticket_type_id"`
	Price        float64     `json:"price"`
	Notes        string      `json:"notes,omitempty"`
	IsActive     bool        `json:"is_active"`
	TicketType   *TicketType `json:"ticket_type,omitempty"`
}

// PerformanceTicketPrice overrides a ticket type's price for one performance
// only. It wins over both the show price and the default.
type PerformanceTicketPrice struct {
	ID            uint        `json:"id"`
	PerformanceID uint        `json:"performance_id"`
	TicketTypeID  uint        `json:"ticket_type_id"`
	Price         float64     `json:"price"`
	Notes         string      `json:"notes,omitempty"`
	IsActive      bool        `json:"is_active"`
	TicketType    *TicketType `json:"ticket_type,omitempty"`
}

type PriceSource string

const (
	PriceFromPerformance PriceSource = "performance"
	PriceFromShow        PriceSource = "show"
	PriceFromDefault     PriceSource = "default"
)

// ResolvedPrice is the outcome of walking the override hierarchy for one
// (performance, ticket type) pair. SourceID is the override row's ID when
// Source is not "default".
type ResolvedPrice struct {
	TicketTypeID   uint        `json:"ticket_type_id"`
	TicketTypeName string      `json:"ticket_type_name"`
	Price          float64     `json:"price"`
	Source         PriceSource `json:"source"`
	SourceID       uint        `json:"source_id,omitempty"`
}

// ReservedTicket is one line of a reservation. Price and name are snapshots
// taken at booking time so later admin edits never rewrite history.
type ReservedTicket struct {
	ID                          uint    `json:"id"`
	ReservationID               uint    `json:"reservation_id"`
	TicketTypeID                uint    `json:"ticket_type_id"`
	Quantity                    int     `json:"quantity"`
	PricePerItemAtReservation   float64 `json:"price_per_item_at_reservation"`
	TicketTypeNameAtReservation string  `json:"ticket_type_name_at_reservation"`
}
