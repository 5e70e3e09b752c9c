package domain

import "time"

type ShowStatus string

const (
	ShowDraft     ShowStatus = "DRAFT"
	ShowPublished ShowStatus = "PUBLISHED"
	ShowCancelled ShowStatus = "CANCELLED"
)

type ShowType string

const (
	ShowInHouse      ShowType = "IN_HOUSE"
	ShowStudio       ShowType = "STUDIO"
	ShowFestival     ShowType = "FESTIVAL"
	ShowExternalHire ShowType = "EXTERNAL_HIRE"
	ShowWorkshop     ShowType = "WORKSHOP"
	ShowOther        ShowType = "OTHER"
)

type Show struct {
	ID             uint          `json:"id"`
	Title          string        `json:"title"`
	Slug           string        `json:"slug"`
	Description    string        `json:"description"`
	Status         ShowStatus    `json:"status"`
	ShowType       ShowType      `json:"show_type"`
	AgeRating      string        `json:"age_rating"`
	PosterImageURL string        `json:"poster_image_url,omitempty"`
	IsActive       bool          `json:"is_active"`
	Performances   []Performance `json:"performances,omitempty"`
	TicketPrices   []ShowTicketPrice `json:"ticket_prices,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
