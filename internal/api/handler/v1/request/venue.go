package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateVenueRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
	Notes    string `json:"notes"`
}

func (req *CreateVenueRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Capacity, validation.Min(0)),
	)
}

type UpdateVenueRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
	Notes    string `json:"notes"`
	IsActive *bool  `json:"is_active"`
}

func (req *UpdateVenueRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Capacity, validation.Min(0)),
	)
}
