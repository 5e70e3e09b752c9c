package domain

import "time"

type PerformanceType string

const (
	PerformanceOrdinary       PerformanceType = "PERFORMANCE"
	PerformanceRelaxed        PerformanceType = "RELAXED_PERFORMANCE"
	PerformanceSigned         PerformanceType = "SIGNED_PERFORMANCE"
	PerformanceAudioDescribed PerformanceType = "AUDIO_DESCRIBED_PERFORMANCE"
	PerformanceCaptioned      PerformanceType = "CAPTIONED_PERFORMANCE"
	PerformanceDressRehearsal PerformanceType = "DRESS_REHEARSAL"
	PerformanceTechnicalRun   PerformanceType = "TECHNICAL_RUN"
	PerformancePreview        PerformanceType = "PREVIEW"
	PerformanceEvent          PerformanceType = "EVENT"
	PerformanceWorkshop       PerformanceType = "WORKSHOP"
)

type PerformanceStatus string

const (
	PerformanceScheduled  PerformanceStatus = "SCHEDULED"
	PerformanceOnSale     PerformanceStatus = "ON_SALE"
	PerformanceRestricted PerformanceStatus = "RESTRICTED"
	PerformanceClosed     PerformanceStatus = "CLOSED"
	PerformanceSoldOut    PerformanceStatus = "SOLD_OUT"
	PerformanceCancelled  PerformanceStatus = "CANCELLED"
	PerformancePast       PerformanceStatus = "PAST"
)

// UnlimitedCapacity is the maxCapacity sentinel meaning no capacity limit.
const UnlimitedCapacity = -1

type Performance struct {
	ID                  uint                     `json:"id"`
	ShowID              uint                     `json:"show_id"`
	VenueID             *uint                    `json:"venue_id,omitempty"`
	Title               string                   `json:"title"`
	StartDateTime       time.Time                `json:"start_date_time"`
	EndDateTime         *time.Time               `json:"end_date_time,omitempty"`
	Type                PerformanceType          `json:"type"`
	Status              PerformanceStatus        `json:"status"`
	Details             string                   `json:"details,omitempty"`
	MaxCapacity         int                      `json:"max_capacity"`
	ReservationsOpen    bool                     `json:"reservations_open"`
	ExternalBookingLink string                   `json:"external_booking_link,omitempty"`
	IsActive            bool                     `json:"is_active"`
	Show                *Show                    `json:"show,omitempty"`
	Venue               *Venue                   `json:"venue,omitempty"`
	TicketPrices        []PerformanceTicketPrice `json:"ticket_prices,omitempty"`
	CreatedAt           time.Time                `json:"created_at"`
	UpdatedAt           time.Time                `json:"updated_at"`
}

// HasStarted reports whether the performance has begun relative to now.
func (p Performance) HasStarted(now time.Time) bool {
	return !p.StartDateTime.After(now)
}

// Capacity describes the live availability of one performance. Counts are
// always derived from active reservations, never from stored counters.
type Capacity struct {
	MaxCapacity    int  `json:"max_capacity"`
	ReservedCount  int  `json:"reserved_count"`
	AvailableCount int  `json:"available_count"`
	IsUnlimited    bool `json:"is_unlimited"`
}

// CapacityCheck is the answer to "would this many tickets still fit".
type CapacityCheck struct {
	IsAvailable    bool `json:"is_available"`
	TotalRequested int  `json:"total_requested"`
	AvailableCount int  `json:"available_count"`
}
