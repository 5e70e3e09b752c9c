package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrReservationNotFound    = errors.New("reservation not found")
	ErrReservationCodeExists  = errors.New("reservation code already exists")
	ErrNotEnoughCapacity      = errors.New("not enough capacity")
	ErrReservationHasNoTicket = errors.New("reservation has no tickets")
)

// releasedStatuses no longer hold seats; every capacity aggregation excludes
// them.
var releasedStatuses = []string{
	"CANCELLED_BY_CUSTOMER",
	"CANCELLED_BY_ADMIN",
	"NO_SHOW",
	"EXPIRED",
}

type Reservation struct {
	ID uint `gorm:"primaryKey"`

	PerformanceID   uint   `gorm:"not null;index"`
	ReservationCode string `gorm:"unique;not null"`

	CustomerName  string `gorm:"not null"`
	CustomerEmail string `gorm:"not null;index"`
	CustomerPhone string

	Status     string  `gorm:"not null;default:PENDING_COLLECTION;index"`
	TotalPrice float64 `gorm:"not null"`

	Notes              string
	AdminNotes         string
	CollectionDeadline *time.Time
	UserID             *uint

	Performance     *Performance
	ReservedTickets []ReservedTicket `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ReservedTicket struct {
	ID uint `gorm:"primaryKey"`

	ReservationID uint `gorm:"not null;index"`
	TicketTypeID  uint `gorm:"not null"`

	Quantity int `gorm:"not null"`

	// Snapshots taken when the reservation is made. Later price or name
	// changes never touch existing reservations.
	PricePerItemAtReservation   float64 `gorm:"not null"`
	TicketTypeNameAtReservation string  `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ReservationDAO struct {
	db *gorm.DB
}

func NewReservationDAO(db *gorm.DB) *ReservationDAO {
	return &ReservationDAO{
		db: db,
	}
}

func isReservationCodeViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		strings.Contains(pgErr.Message, `unique constraint "uni_reservations_reservation_code"`)
}

// Insert creates a reservation with its tickets after re-checking capacity
// under a row lock on the performance. The lock serialises concurrent
// reservations for the same performance so the capacity check and the insert
// are atomic.
func (d *ReservationDAO) Insert(ctx context.Context, reservation Reservation) (Reservation, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var performance Performance
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&performance, reservation.PerformanceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPerformanceNotFound
			}
			return err
		}

		if performance.MaxCapacity >= 0 {
			requested := 0
			for _, t := range reservation.ReservedTickets {
				requested += t.Quantity
			}

			reserved, err := sumActiveQuantity(tx, reservation.PerformanceID)
			if err != nil {
				return err
			}

			if int64(requested) > int64(performance.MaxCapacity)-reserved {
				return ErrNotEnoughCapacity
			}
		}

		if err := tx.Create(&reservation).Error; err != nil {
			if isReservationCodeViolation(err) {
				return ErrReservationCodeExists
			}
			return err
		}

		return nil
	})
	if err != nil {
		return Reservation{}, err
	}

	return d.FindByID(ctx, reservation.ID)
}

func sumActiveQuantity(tx *gorm.DB, performanceID uint) (int64, error) {
	var reserved int64

	err := tx.Model(&ReservedTicket{}).
		Joins("JOIN reservations ON reservations.id = reserved_tickets.reservation_id").
		Where("reservations.performance_id = ?", performanceID).
		Where("reservations.status NOT IN ?", releasedStatuses).
		Select("COALESCE(SUM(reserved_tickets.quantity), 0)").
		Scan(&reserved).Error
	if err != nil {
		return 0, err
	}

	return reserved, nil
}

// SumActiveQuantity totals the ticket quantities still counting against the
// performance's capacity.
func (d *ReservationDAO) SumActiveQuantity(ctx context.Context, performanceID uint) (int64, error) {
	return sumActiveQuantity(d.db.WithContext(ctx), performanceID)
}

func (d *ReservationDAO) FindByID(ctx context.Context, id uint) (Reservation, error) {
	var reservation Reservation

	result := d.db.WithContext(ctx).
		Preload("Performance.Show").
		Preload("Performance.Venue").
		Preload("ReservedTickets").
		First(&reservation, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Reservation{}, ErrReservationNotFound
		}

		return Reservation{}, result.Error
	}

	return reservation, nil
}

func (d *ReservationDAO) FindByCode(ctx context.Context, code string) (Reservation, error) {
	var reservation Reservation

	result := d.db.WithContext(ctx).
		Preload("Performance.Show").
		Preload("Performance.Venue").
		Preload("ReservedTickets").
		First(&reservation, "reservation_code = ?", code)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Reservation{}, ErrReservationNotFound
		}

		return Reservation{}, result.Error
	}

	return reservation, nil
}

// ReservationFilter narrows reservation listings. Zero values mean no filter.
type ReservationFilter struct {
	PerformanceID uint
	Status        string
	CustomerEmail string
	Search        string
}

func (d *ReservationDAO) Find(ctx context.Context, filter ReservationFilter) ([]Reservation, error) {
	var reservations []Reservation

	query := d.db.WithContext(ctx).
		Preload("Performance.Show").
		Preload("ReservedTickets").
		Order("created_at DESC")

	if filter.PerformanceID != 0 {
		query = query.Where("performance_id = ?", filter.PerformanceID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerEmail != "" {
		query = query.Where("LOWER(customer_email) = LOWER(?)", filter.CustomerEmail)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"customer_name ILIKE ? OR customer_email ILIKE ? OR reservation_code ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	result := query.Find(&reservations)
	if result.Error != nil {
		return nil, result.Error
	}

	return reservations, nil
}

// Update saves reservation fields and, when tickets is non-nil, replaces the
// line items wholesale. The replacement re-checks capacity under the same
// performance row lock used on insert, counting the reservation's own current
// tickets as released.
func (d *ReservationDAO) Update(ctx context.Context, reservation Reservation, tickets []ReservedTicket) (Reservation, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tickets != nil {
			var performance Performance
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&performance, reservation.PerformanceID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrPerformanceNotFound
				}
				return err
			}

			if performance.MaxCapacity >= 0 {
				requested := 0
				for _, t := range tickets {
					requested += t.Quantity
				}

				reserved, err := sumActiveQuantity(tx, reservation.PerformanceID)
				if err != nil {
					return err
				}

				var own int64
				if err := tx.Model(&ReservedTicket{}).
					Where("reservation_id = ?", reservation.ID).
					Select("COALESCE(SUM(quantity), 0)").
					Scan(&own).Error; err != nil {
					return err
				}

				if int64(requested) > int64(performance.MaxCapacity)-(reserved-own) {
					return ErrNotEnoughCapacity
				}
			}

			if err := tx.Where("reservation_id = ?", reservation.ID).
				Delete(&ReservedTicket{}).Error; err != nil {
				return err
			}

			for i := range tickets {
				tickets[i].ID = 0
				tickets[i].ReservationID = reservation.ID
			}
			if err := tx.Create(&tickets).Error; err != nil {
				return err
			}
		}

		reservation.ReservedTickets = nil
		if err := tx.Omit("ReservedTickets", "Performance").Save(&reservation).Error; err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return Reservation{}, err
	}

	return d.FindByID(ctx, reservation.ID)
}

// UpdateStatus changes only the status and admin notes of a reservation.
func (d *ReservationDAO) UpdateStatus(ctx context.Context, id uint, status string, adminNotes *string) (Reservation, error) {
	updates := map[string]any{"status": status}
	if adminNotes != nil {
		updates["admin_notes"] = *adminNotes
	}

	result := d.db.WithContext(ctx).Model(&Reservation{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return Reservation{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Reservation{}, ErrReservationNotFound
	}

	return d.FindByID(ctx, id)
}

// ExpireOverdue flips pending reservations whose collection deadline has
// passed to EXPIRED and returns how many rows changed.
func (d *ReservationDAO) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	result := d.db.WithContext(ctx).Model(&Reservation{}).
		Where("status = ?", "PENDING_COLLECTION").
		Where("collection_deadline IS NOT NULL AND collection_deadline < ?", now).
		Update("status", "EXPIRED")
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
