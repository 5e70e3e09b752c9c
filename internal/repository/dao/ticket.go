package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrTicketTypeNotFound   = errors.New("ticket type not found")
	ErrTicketTypeNameExists = errors.New("ticket type name already exists")
	ErrTicketPriceNotFound  = errors.New("ticket price not found")
	ErrDuplicateTicketPrice = errors.New("ticket price already exists for this ticket type")
)

type TicketType struct {
	ID uint `gorm:"primaryKey"`

	Name         string `gorm:"unique;not null"`
	Description  string
	DefaultPrice float64 `gorm:"not null"`
	SortOrder    int     `gorm:"not null;default:0"`
	IsActive     bool    `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ShowTicketPrice struct {
	ID uint `gorm:"primaryKey"`

	ShowID       uint `gorm:"not null;uniqueIndex:idx_show_ticket_type"`
	TicketTypeID uint `gorm:"not null;uniqueIndex:idx_show_ticket_type"`

	Price    float64 `gorm:"not null"`
	Notes    string
	IsActive bool `gorm:"not null;default:true"`

	TicketType *TicketType

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PerformanceTicketPrice struct {
	ID uint `gorm:"primaryKey"`

	PerformanceID uint `gorm:"not null;uniqueIndex:idx_performance_ticket_type"`
	TicketTypeID  uint `gorm:"not null;uniqueIndex:idx_performance_ticket_type"`

	Price    float64 `gorm:"not null"`
	Notes    string
	IsActive bool `gorm:"not null;default:true"`

	TicketType *TicketType

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

func (d *TicketDAO) InsertType(ctx context.Context, ticketType TicketType) (TicketType, error) {
	result := d.db.WithContext(ctx).Create(&ticketType)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_ticket_types_name"`) {
			return TicketType{}, ErrTicketTypeNameExists
		}

		return TicketType{}, result.Error
	}

	return ticketType, nil
}

func (d *TicketDAO) FindTypeByID(ctx context.Context, id uint) (TicketType, error) {
	var ticketType TicketType

	result := d.db.WithContext(ctx).First(&ticketType, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return TicketType{}, ErrTicketTypeNotFound
		}

		return TicketType{}, result.Error
	}

	return ticketType, nil
}

func (d *TicketDAO) FindTypes(ctx context.Context, activeOnly bool) ([]TicketType, error) {
	var ticketTypes []TicketType

	query := d.db.WithContext(ctx).Order("sort_order, name")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	result := query.Find(&ticketTypes)
	if result.Error != nil {
		return nil, result.Error
	}

	return ticketTypes, nil
}

func (d *TicketDAO) UpdateType(ctx context.Context, ticketType TicketType) (TicketType, error) {
	result := d.db.WithContext(ctx).Save(&ticketType)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_ticket_types_name"`) {
			return TicketType{}, ErrTicketTypeNameExists
		}

		return TicketType{}, result.Error
	}

	return ticketType, nil
}

func (d *TicketDAO) InsertShowPrice(ctx context.Context, price ShowTicketPrice) (ShowTicketPrice, error) {
	result := d.db.WithContext(ctx).Create(&price)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "idx_show_ticket_type") {
			return ShowTicketPrice{}, ErrDuplicateTicketPrice
		}

		return ShowTicketPrice{}, result.Error
	}

	return price, nil
}

func (d *TicketDAO) FindShowPriceByID(ctx context.Context, id uint) (ShowTicketPrice, error) {
	var price ShowTicketPrice

	result := d.db.WithContext(ctx).Preload("TicketType").First(&price, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ShowTicketPrice{}, ErrTicketPriceNotFound
		}

		return ShowTicketPrice{}, result.Error
	}

	return price, nil
}

func (d *TicketDAO) FindShowPrices(ctx context.Context, showID uint) ([]ShowTicketPrice, error) {
	var prices []ShowTicketPrice

	result := d.db.WithContext(ctx).
		Where("show_id = ?", showID).
		Preload("TicketType").
		Find(&prices)
	if result.Error != nil {
		return nil, result.Error
	}

	return prices, nil
}

func (d *TicketDAO) UpdateShowPrice(ctx context.Context, price ShowTicketPrice) (ShowTicketPrice, error) {
	result := d.db.WithContext(ctx).Save(&price)
	if result.Error != nil {
		return ShowTicketPrice{}, result.Error
	}

	return price, nil
}

func (d *TicketDAO) DeleteShowPrice(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&ShowTicketPrice{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketPriceNotFound
	}

	return nil
}

func (d *TicketDAO) InsertPerformancePrice(ctx context.Context, price PerformanceTicketPrice) (PerformanceTicketPrice, error) {
	result := d.db.WithContext(ctx).Create(&price)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "idx_performance_ticket_type") {
			return PerformanceTicketPrice{}, ErrDuplicateTicketPrice
		}

		return PerformanceTicketPrice{}, result.Error
	}

	return price, nil
}

func (d *TicketDAO) FindPerformancePriceByID(ctx context.Context, id uint) (PerformanceTicketPrice, error) {
	var price PerformanceTicketPrice

	result := d.db.WithContext(ctx).Preload("TicketType").First(&price, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PerformanceTicketPrice{}, ErrTicketPriceNotFound
		}

		return PerformanceTicketPrice{}, result.Error
	}

	return price, nil
}

func (d *TicketDAO) FindPerformancePrices(ctx context.Context, performanceID uint) ([]PerformanceTicketPrice, error) {
	var prices []PerformanceTicketPrice

	result := d.db.WithContext(ctx).
		Where("performance_id = ?", performanceID).
		Preload("TicketType").
		Find(&prices)
	if result.Error != nil {
		return nil, result.Error
	}

	return prices, nil
}

func (d *TicketDAO) UpdatePerformancePrice(ctx context.Context, price PerformanceTicketPrice) (PerformanceTicketPrice, error) {
	result := d.db.WithContext(ctx).Save(&price)
	if result.Error != nil {
		return PerformanceTicketPrice{}, result.Error
	}

	return price, nil
}

func (d *TicketDAO) DeletePerformancePrice(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&PerformanceTicketPrice{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketPriceNotFound
	}

	return nil
}
