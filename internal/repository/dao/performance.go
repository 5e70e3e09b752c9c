package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrPerformanceNotFound = errors.New("performance not found")

type Performance struct {
	ID uint `gorm:"primaryKey"`

	ShowID  uint `gorm:"not null;index"`
	VenueID *uint

	Title         string
	StartDateTime time.Time `gorm:"not null;index"`
	EndDateTime   *time.Time
	Type          string `gorm:"not null;default:PERFORMANCE"`
	Status        string `gorm:"not null;default:SCHEDULED"`
	Details       string

	// -1 means unlimited.
	MaxCapacity         int  `gorm:"not null;default:-1"`
	ReservationsOpen    bool `gorm:"not null;default:true"`
	ExternalBookingLink string
	IsActive            bool `gorm:"not null;default:true"`

	Show         *Show
	Venue        *Venue
	TicketPrices []PerformanceTicketPrice `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PerformanceDAO struct {
	db *gorm.DB
}

func NewPerformanceDAO(db *gorm.DB) *PerformanceDAO {
	return &PerformanceDAO{
		db: db,
	}
}

func (d *PerformanceDAO) Insert(ctx context.Context, performance Performance) (Performance, error) {
	result := d.db.WithContext(ctx).Create(&performance)
	if result.Error != nil {
		return Performance{}, result.Error
	}

	return performance, nil
}

func (d *PerformanceDAO) FindByID(ctx context.Context, id uint) (Performance, error) {
	var performance Performance

	result := d.db.WithContext(ctx).
		Preload("Show").
		Preload("Venue").
		Preload("TicketPrices.TicketType").
		First(&performance, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Performance{}, ErrPerformanceNotFound
		}

		return Performance{}, result.Error
	}

	return performance, nil
}

func (d *PerformanceDAO) FindByShowID(ctx context.Context, showID uint) ([]Performance, error) {
	var performances []Performance

	result := d.db.WithContext(ctx).
		Where("show_id = ?", showID).
		Preload("Venue").
		Order("start_date_time").
		Find(&performances)
	if result.Error != nil {
		return nil, result.Error
	}

	return performances, nil
}

// FindUpcoming lists active upcoming performances across all shows, soonest
// first, for the FOH day view.
func (d *PerformanceDAO) FindUpcoming(ctx context.Context, now time.Time) ([]Performance, error) {
	var performances []Performance

	result := d.db.WithContext(ctx).
		Where("is_active = ? AND start_date_time > ?", true, now).
		Preload("Show").
		Preload("Venue").
		Order("start_date_time").
		Find(&performances)
	if result.Error != nil {
		return nil, result.Error
	}

	return performances, nil
}

func (d *PerformanceDAO) Update(ctx context.Context, performance Performance) (Performance, error) {
	result := d.db.WithContext(ctx).Save(&performance)
	if result.Error != nil {
		return Performance{}, result.Error
	}

	return performance, nil
}

func (d *PerformanceDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Select("TicketPrices").Delete(&Performance{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPerformanceNotFound
	}

	return nil
}
