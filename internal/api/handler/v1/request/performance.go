package request

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var (
	errEndsBeforeStart    = errors.New("end_date_time must be after start_date_time")
	errInvalidMaxCapacity = errors.New("max_capacity must be -1 (unlimited) or a positive number")
)

var performanceTypes = []interface{}{
	"PERFORMANCE", "RELAXED_PERFORMANCE", "SIGNED_PERFORMANCE",
	"AUDIO_DESCRIBED_PERFORMANCE", "CAPTIONED_PERFORMANCE",
	"DRESS_REHEARSAL", "TECHNICAL_RUN", "PREVIEW", "EVENT", "WORKSHOP",
}

var performanceStatuses = []interface{}{
	"SCHEDULED", "ON_SALE", "RESTRICTED", "CLOSED", "SOLD_OUT", "CANCELLED", "PAST",
}

type CreatePerformanceRequest struct {
	ShowID              uint       `json:"show_id"`
	VenueID             *uint      `json:"venue_id"`
	Title               string     `json:"title"`
	StartDateTime       time.Time  `json:"start_date_time"`
	EndDateTime         *time.Time `json:"end_date_time"`
	Type                string     `json:"type"`
	Status              string     `json:"status"`
	Details             string     `json:"details"`
	MaxCapacity         *int       `json:"max_capacity"`
	ReservationsOpen    *bool      `json:"reservations_open"`
	ExternalBookingLink string     `json:"external_booking_link"`
}

func (req *CreatePerformanceRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.ShowID, validation.Required),
		validation.Field(&req.StartDateTime, validation.Required),
		validation.Field(&req.Type, validation.In(performanceTypes...)),
		validation.Field(&req.Status, validation.In(performanceStatuses...)),
		validation.Field(&req.ExternalBookingLink, is.URL),
	)
	if err != nil {
		return err
	}

	return validateScheduleAndCapacity(req.StartDateTime, req.EndDateTime, req.MaxCapacity)
}

type UpdatePerformanceRequest struct {
	VenueID             *uint      `json:"venue_id"`
	Title               string     `json:"title"`
	StartDateTime       time.Time  `json:"start_date_time"`
	EndDateTime         *time.Time `json:"end_date_time"`
	Type                string     `json:"type"`
	Status              string     `json:"status"`
	Details             string     `json:"details"`
	MaxCapacity         *int       `json:"max_capacity"`
	ReservationsOpen    *bool      `json:"reservations_open"`
	ExternalBookingLink string     `json:"external_booking_link"`
	IsActive            *bool      `json:"is_active"`
}

func (req *UpdatePerformanceRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.StartDateTime, validation.Required),
		validation.Field(&req.Type, validation.In(performanceTypes...)),
		validation.Field(&req.Status, validation.In(performanceStatuses...)),
		validation.Field(&req.ExternalBookingLink, is.URL),
	)
	if err != nil {
		return err
	}

	return validateScheduleAndCapacity(req.StartDateTime, req.EndDateTime, req.MaxCapacity)
}

func validateScheduleAndCapacity(start time.Time, end *time.Time, maxCapacity *int) error {
	if end != nil && end.Before(start) {
		return errEndsBeforeStart
	}
	if maxCapacity != nil && (*maxCapacity < -1 || *maxCapacity == 0) {
		return errInvalidMaxCapacity
	}

	return nil
}

type CheckCapacityRequest struct {
	Tickets []TicketLineRequest `json:"tickets"`
}

func (req *CheckCapacityRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Tickets, validation.Required, validation.Length(1, 0)),
	)
}
