package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ServiceStatusActive       = "active"
	ServiceStatusInactive     = "inactive"
	ServiceStatusPromotional  = "promotional"
	ServiceStatusDiscontinued = "discontinued"
)

const (
	DurationUnitMinutes = "minutos"
	DurationUnitHours   = "horas"
	DurationUnitDays    = "dias"
)

type ServiceCategory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Color       string `gorm:"size:7;default:'#007bff'" json:"color"`
	SortOrder   int    `gorm:"default:0" json:"sort_order"`

	Timestamps
	SoftDelete
}

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name             string `gorm:"size:100;not null" json:"name"`
	Description      string `gorm:"type:text" json:"description"`
	ShortDescription string `gorm:"size:200" json:"short_description"`

	CategoryID uint            `gorm:"index" json:"category_id"`
	Category   ServiceCategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`

	Price          decimal.Decimal  `gorm:"type:numeric(10,2)" json:"price"`
	PromoPrice     *decimal.Decimal `gorm:"type:numeric(10,2)" json:"promo_price"`
	PromoStartDate *time.Time       `json:"promo_start_date"`
	PromoEndDate   *time.Time       `json:"promo_end_date"`

	Duration     int    `json:"duration"`
	DurationUnit string `gorm:"size:10;default:'minutos'" json:"duration_unit"`
	BufferAfter  int    `gorm:"default:0" json:"buffer_after"`

	Status          string `gorm:"size:20;default:'active';index" json:"status"`
	OnlineBookable  bool   `gorm:"default:true" json:"online_bookable"`
	Featured        bool   `gorm:"default:false" json:"featured"`
	SortOrder       int    `gorm:"default:0" json:"sort_order"`
	MaxPerDay       *int   `json:"max_per_day"`
	Restrictions    string `gorm:"type:text" json:"restrictions"`
	PreparationNote string `gorm:"type:text" json:"preparation_note"`

	ImageURL string `gorm:"size:255" json:"image_url"`

	Timestamps
	SoftDelete
}

// PromotionActive diz se o preço promocional vale hoje.
// Sem datas configuradas, vale o status "promotional".
func (s *Service) PromotionActive(now time.Time) bool {
	if s.PromoPrice == nil {
		return false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case s.PromoStartDate != nil && s.PromoEndDate != nil:
		return !today.Before(dateOnly(*s.PromoStartDate)) && !today.After(dateOnly(*s.PromoEndDate))
	case s.PromoStartDate != nil:
		return !today.Before(dateOnly(*s.PromoStartDate))
	case s.PromoEndDate != nil:
		return !today.After(dateOnly(*s.PromoEndDate))
	default:
		return s.Status == ServiceStatusPromotional
	}
}

// CurrentPrice retorna o promocional quando ativo, senão o preço base.
func (s *Service) CurrentPrice(now time.Time) decimal.Decimal {
	if s.PromotionActive(now) {
		return *s.PromoPrice
	}
	return s.Price
}

// DiscountPercent retorna o desconto da promoção em %, 0 quando inativa.
func (s *Service) DiscountPercent(now time.Time) decimal.Decimal {
	if !s.PromotionActive(now) || s.Price.IsZero() {
		return decimal.Zero
	}
	return s.Price.Sub(*s.PromoPrice).
		Div(s.Price).
		Mul(decimal.NewFromInt(100))
}

// DurationInMinutes normaliza a duração para minutos.
func (s *Service) DurationInMinutes() int {
	switch s.DurationUnit {
	case DurationUnitHours:
		return s.Duration * 60
	case DurationUnitDays:
		return s.Duration * 24 * 60
	default:
		return s.Duration
	}
}

func (s *Service) FormattedDuration() string {
	switch s.DurationUnit {
	case DurationUnitMinutes:
		if s.Duration < 60 {
			return fmt.Sprintf("%d min", s.Duration)
		}
		hours := s.Duration / 60
		minutes := s.Duration % 60
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dmin", hours, minutes)
	case DurationUnitHours:
		return fmt.Sprintf("%dh", s.Duration)
	case DurationUnitDays:
		return fmt.Sprintf("%d dia(s)", s.Duration)
	}
	return fmt.Sprintf("%d %s", s.Duration, s.DurationUnit)
}

func (s *Service) IsBookable() bool {
	return s.IsActive &&
		(s.Status == ServiceStatusActive || s.Status == ServiceStatusPromotional)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
