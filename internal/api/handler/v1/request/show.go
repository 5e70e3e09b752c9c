package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateShowRequest struct {
	Title          string `json:"title"`
	Slug           string `json:"slug"`
	Description    string `json:"description"`
	ShowType       string `json:"show_type"`
	AgeRating      string `json:"age_rating"`
	PosterImageURL string `json:"poster_image_url"`
}

func (req *CreateShowRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Slug, validation.Length(0, 200), is.DNSName),
		validation.Field(&req.ShowType, validation.Required, validation.In(
			"IN_HOUSE", "STUDIO", "FESTIVAL", "EXTERNAL_HIRE", "WORKSHOP", "OTHER",
		)),
		validation.Field(&req.PosterImageURL, is.URL),
	)
}

type UpdateShowRequest struct {
	Title          string `json:"title"`
	Slug           string `json:"slug"`
	Description    string `json:"description"`
	ShowType       string `json:"show_type"`
	AgeRating      string `json:"age_rating"`
	PosterImageURL string `json:"poster_image_url"`
	IsActive       *bool  `json:"is_active"`
}

func (req *UpdateShowRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Slug, validation.Length(0, 200), is.DNSName),
		validation.Field(&req.ShowType, validation.Required, validation.In(
			"IN_HOUSE", "STUDIO", "FESTIVAL", "EXTERNAL_HIRE", "WORKSHOP", "OTHER",
		)),
		validation.Field(&req.PosterImageURL, is.URL),
	)
}
