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
	ErrShowNotFound   = errors.New("show not found")
	ErrShowSlugExists = errors.New("show slug already exists")
)

type Show struct {
	ID uint `gorm:"primaryKey"`

	Title          string `gorm:"not null"`
	Slug           string `gorm:"unique;not null"`
	Description    string
	Status         string `gorm:"not null;default:DRAFT"` // "DRAFT", "PUBLISHED", or "CANCELLED"
	ShowType       string `gorm:"not null"`
	AgeRating      string
	PosterImageURL string
	IsActive       bool `gorm:"not null;default:true"`

	Performances []Performance     `gorm:"constraint:OnDelete:CASCADE"`
	TicketPrices []ShowTicketPrice `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ShowDAO struct {
	db *gorm.DB
}

func NewShowDAO(db *gorm.DB) *ShowDAO {
	return &ShowDAO{
		db: db,
	}
}

func (d *ShowDAO) Insert(ctx context.Context, show Show) (Show, error) {
	result := d.db.WithContext(ctx).Create(&show)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_shows_slug"`) {
			return Show{}, ErrShowSlugExists
		}

		return Show{}, result.Error
	}

	return show, nil
}

func (d *ShowDAO) FindByID(ctx context.Context, id uint) (Show, error) {
	var show Show

	result := d.db.WithContext(ctx).
		Preload("Performances", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date_time")
		}).
		Preload("Performances.Venue").
		Preload("TicketPrices.TicketType").
		First(&show, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Show{}, ErrShowNotFound
		}

		return Show{}, result.Error
	}

	return show, nil
}

func (d *ShowDAO) FindBySlug(ctx context.Context, slug string) (Show, error) {
	var show Show

	result := d.db.WithContext(ctx).
		Preload("Performances", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("start_date_time")
		}).
		Preload("Performances.Venue").
		Preload("TicketPrices", "is_active = ?", true).
		Preload("TicketPrices.TicketType").
		First(&show, "slug = ?", slug)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Show{}, ErrShowNotFound
		}

		return Show{}, result.Error
	}

	return show, nil
}

// FindPublished lists published active shows that still have an upcoming
// active performance, for the public catalogue.
func (d *ShowDAO) FindPublished(ctx context.Context, now time.Time) ([]Show, error) {
	var shows []Show

	result := d.db.WithContext(ctx).
		Where("status = ? AND is_active = ?", "PUBLISHED", true).
		Where("id IN (?)", d.db.Model(&Performance{}).
			Select("show_id").
			Where("is_active = ? AND start_date_time > ?", true, now)).
		Preload("Performances", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ? AND start_date_time > ?", true, now).
				Order("start_date_time")
		}).
		Preload("Performances.Venue").
		Order("title").
		Find(&shows)
	if result.Error != nil {
		return nil, result.Error
	}

	return shows, nil
}

func (d *ShowDAO) FindAll(ctx context.Context) ([]Show, error) {
	var shows []Show

	result := d.db.WithContext(ctx).
		Preload("Performances", func(db *gorm.DB) *gorm.DB {
			return db.Order("start_date_time")
		}).
		Order("title").
		Find(&shows)
	if result.Error != nil {
		return nil, result.Error
	}

	return shows, nil
}

func (d *ShowDAO) Update(ctx context.Context, show Show) (Show, error) {
	result := d.db.WithContext(ctx).Save(&show)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_shows_slug"`) {
			return Show{}, ErrShowSlugExists
		}

		return Show{}, result.Error
	}

	return show, nil
}

func (d *ShowDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Select("Performances", "TicketPrices").Delete(&Show{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShowNotFound
	}

	return nil
}

// CountUpcomingPerformances counts active performances of the show that start
// after now.
func (d *ShowDAO) CountUpcomingPerformances(ctx context.Context, showID uint, now time.Time) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Performance{}).
		Where("show_id = ? AND is_active = ? AND start_date_time > ?", showID, true, now).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// CountActivePrices counts active show-level ticket prices.
func (d *ShowDAO) CountActivePrices(ctx context.Context, showID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&ShowTicketPrice{}).
		Where("show_id = ? AND is_active = ?", showID, true).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
