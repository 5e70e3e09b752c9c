package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateTicketTypeRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	DefaultPrice float64 `json:"default_price"`
	SortOrder    int     `json:"sort_order"`
}

func (req *CreateTicketTypeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.DefaultPrice, validation.Min(0.0)),
	)
}

type UpdateTicketTypeRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	DefaultPrice float64 `json:"default_price"`
	SortOrder    int     `json:"sort_order"`
	IsActive     *bool   `json:"is_active"`
}

func (req *UpdateTicketTypeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.DefaultPrice, validation.Min(0.0)),
	)
}

type CreateTicketPriceRequest struct {
	TicketTypeID uint    `json:"ticket_type_id"`
	Price        float64 `json:"price"`
	Notes        string  `json:"notes"`
}

func (req *CreateTicketPriceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.TicketTypeID, validation.Required),
		validation.Field(&req.Price, validation.Min(0.0)),
	)
}

type UpdateTicketPriceRequest struct {
	Price    float64 `json:"price"`
	Notes    string  `json:"notes"`
	IsActive *bool   `json:"is_active"`
}

func (req *UpdateTicketPriceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Price, validation.Min(0.0)),
	)
}
