package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func promoService(price, promo string, start, end *time.Time) Service {
	promoPrice := decimal.RequireFromString(promo)
	return Service{
		Name:           "Corte",
		Price:          decimal.RequireFromString(price),
		PromoPrice:     &promoPrice,
		PromoStartDate: start,
		PromoEndDate:   end,
		Status:         ServiceStatusActive,
	}
}

func TestServicePromotionWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	svc := promoService("100.00", "50.00", &yesterday, &tomorrow)

	assert.True(t, svc.PromotionActive(now))
	assert.True(t, svc.CurrentPrice(now).Equal(decimal.RequireFromString("50.00")))
	assert.True(t, svc.DiscountPercent(now).Equal(decimal.NewFromInt(50)))
}

func TestServicePromotionExpired(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	start := now.AddDate(0, 0, -10)
	end := now.AddDate(0, 0, -5)

	svc := promoService("100.00", "50.00", &start, &end)

	assert.False(t, svc.PromotionActive(now))
	assert.True(t, svc.CurrentPrice(now).Equal(decimal.RequireFromString("100.00")))
	assert.True(t, svc.DiscountPercent(now).IsZero())
}

func TestServicePromotionOpenEnded(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	// Só data de início: vale de lá em diante.
	svc := promoService("80.00", "60.00", &yesterday, nil)
	assert.True(t, svc.PromotionActive(now))

	svc = promoService("80.00", "60.00", &tomorrow, nil)
	assert.False(t, svc.PromotionActive(now))

	// Só data de fim: vale até lá.
	svc = promoService("80.00", "60.00", nil, &tomorrow)
	assert.True(t, svc.PromotionActive(now))

	svc = promoService("80.00", "60.00", nil, &yesterday)
	assert.False(t, svc.PromotionActive(now))
}

func TestServicePromotionBoundaryDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 30, 0, 0, time.UTC)
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	// Início e fim no próprio dia ainda contam (comparação por data).
	svc := promoService("100.00", "70.00", &today, &today)
	assert.True(t, svc.PromotionActive(now))
}

func TestServicePromotionWithoutDatesUsesStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	svc := promoService("100.00", "50.00", nil, nil)
	assert.False(t, svc.PromotionActive(now))

	svc.Status = ServiceStatusPromotional
	assert.True(t, svc.PromotionActive(now))
}

func TestServicePromotionRequiresPromoPrice(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	svc := Service{
		Price:  decimal.RequireFromString("100.00"),
		Status: ServiceStatusPromotional,
	}

	assert.False(t, svc.PromotionActive(now))
	assert.True(t, svc.CurrentPrice(now).Equal(decimal.RequireFromString("100.00")))
}

func TestServiceDurationInMinutes(t *testing.T) {
	cases := []struct {
		duration int
		unit     string
		want     int
	}{
		{90, DurationUnitMinutes, 90},
		{2, DurationUnitHours, 120},
		{1, DurationUnitDays, 1440},
	}

	for _, tc := range cases {
		svc := Service{Duration: tc.duration, DurationUnit: tc.unit}
		assert.Equal(t, tc.want, svc.DurationInMinutes())
	}
}

func TestServiceFormattedDuration(t *testing.T) {
	svc := Service{Duration: 45, DurationUnit: DurationUnitMinutes}
	assert.Equal(t, "45 min", svc.FormattedDuration())

	svc = Service{Duration: 90, DurationUnit: DurationUnitMinutes}
	assert.Equal(t, "1h30min", svc.FormattedDuration())

	svc = Service{Duration: 120, DurationUnit: DurationUnitMinutes}
	assert.Equal(t, "2h", svc.FormattedDuration())
}

func TestServiceIsBookable(t *testing.T) {
	svc := Service{Status: ServiceStatusActive}
	svc.IsActive = true
	assert.True(t, svc.IsBookable())

	svc.Status = ServiceStatusPromotional
	assert.True(t, svc.IsBookable())

	svc.Status = ServiceStatusDiscontinued
	assert.False(t, svc.IsBookable())

	svc.Status = ServiceStatusActive
	svc.IsActive = false
	assert.False(t, svc.IsBookable())
}
