package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var errNoTickets = errors.New("at least one ticket with a positive quantity is required")

type TicketLineRequest struct {
	TicketTypeID uint `json:"ticket_type_id"`
	Quantity     int  `json:"quantity"`
}

func (req TicketLineRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.TicketTypeID, validation.Required),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1)),
	)
}

func validateTicketLines(lines []TicketLineRequest) error {
	if len(lines) == 0 {
		return errNoTickets
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	return nil
}

type CreateReservationRequest struct {
	PerformanceID uint                `json:"performance_id"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
	CustomerPhone string              `json:"customer_phone"`
	Notes         string              `json:"notes"`
	Tickets       []TicketLineRequest `json:"tickets"`
}

func (req *CreateReservationRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.PerformanceID, validation.Required),
		validation.Field(&req.CustomerName, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.CustomerEmail, validation.Required, is.Email),
	)
	if err != nil {
		return err
	}

	return validateTicketLines(req.Tickets)
}

type UpdateReservationRequest struct {
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone string  `json:"customer_phone"`
	Notes         string  `json:"notes"`
	AdminNotes    *string `json:"admin_notes"`

	// Tickets replaces all line items when present.
	Tickets []TicketLineRequest `json:"tickets"`
}

func (req *UpdateReservationRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.CustomerEmail, is.Email),
	)
	if err != nil {
		return err
	}

	if req.Tickets != nil {
		return validateTicketLines(req.Tickets)
	}

	return nil
}

type CancelReservationRequest struct {
	CustomerEmail string `json:"customer_email"`
}

func (req *CancelReservationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CustomerEmail, validation.Required, is.Email),
	)
}

type WalkUpSaleRequest struct {
	PerformanceID uint                `json:"performance_id"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
	Tickets       []TicketLineRequest `json:"tickets"`
}

func (req *WalkUpSaleRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.PerformanceID, validation.Required),
		validation.Field(&req.CustomerName, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.CustomerEmail, is.Email),
	)
	if err != nil {
		return err
	}

	return validateTicketLines(req.Tickets)
}

type AdminCancelRequest struct {
	AdminNotes *string `json:"admin_notes"`
}

func (req *AdminCancelRequest) Validate() error {
	return nil
}
