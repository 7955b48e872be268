package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeBackfillsEndTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	ap := Appointment{
		StartTime:         now,
		PredictedDuration: 45,
		BasePrice:         decimal.RequireFromString("100.00"),
	}

	ap.Normalize(nil, now)

	assert.NotNil(t, ap.EndTime)
	assert.Equal(t, now.Add(45*time.Minute), *ap.EndTime)
}

func TestNormalizeSnapshotsServicePriceAndDuration(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	svc := Service{
		Price:        decimal.RequireFromString("80.00"),
		Duration:     2,
		DurationUnit: DurationUnitHours,
	}

	ap := Appointment{StartTime: now, Status: StatusScheduled}
	ap.Normalize(&svc, now)

	assert.True(t, ap.BasePrice.Equal(decimal.RequireFromString("80.00")))
	assert.Equal(t, 120, ap.PredictedDuration)
	assert.True(t, ap.FinalPrice.Equal(decimal.RequireFromString("80.00")))
}

func TestNormalizeFinalPriceIsBaseMinusDiscount(t *testing.T) {
	now := time.Now()
	ap := Appointment{
		BasePrice: decimal.RequireFromString("100.00"),
		Discount:  decimal.RequireFromString("15.00"),
	}

	ap.Normalize(nil, now)
	assert.True(t, ap.FinalPrice.Equal(decimal.RequireFromString("85.00")))

	// Recalcula em todo save, mesmo se já preenchido.
	ap.Discount = decimal.RequireFromString("30.00")
	ap.Normalize(nil, now)
	assert.True(t, ap.FinalPrice.Equal(decimal.RequireFromString("70.00")))
}

func TestNormalizeBackfillsStatusTimestampsOnce(t *testing.T) {
	first := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	later := first.Add(2 * time.Hour)

	ap := Appointment{Status: StatusConfirmed}
	ap.Normalize(nil, first)
	assert.Equal(t, first, *ap.ConfirmedAt)

	// Segundo save não sobrescreve o carimbo.
	ap.Normalize(nil, later)
	assert.Equal(t, first, *ap.ConfirmedAt)
}

func TestNormalizeCompletedDerivesActualDuration(t *testing.T) {
	started := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	ended := started.Add(50 * time.Minute)

	ap := Appointment{
		Status:           StatusCompleted,
		ServiceStartedAt: &started,
	}
	ap.Normalize(nil, ended)

	assert.NotNil(t, ap.ActualDuration)
	assert.Equal(t, 50, *ap.ActualDuration)
}

func TestNormalizeCompletedWithoutStartSkipsDuration(t *testing.T) {
	now := time.Now()
	ap := Appointment{Status: StatusCompleted}
	ap.Normalize(nil, now)

	assert.NotNil(t, ap.ServiceEndedAt)
	assert.Nil(t, ap.ActualDuration)
}

func TestAppointmentPredicates(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	future := Appointment{Status: StatusScheduled, StartTime: now.Add(time.Hour)}
	assert.True(t, future.CanBeConfirmed(now))
	assert.True(t, future.CanBeCancelled(now))
	assert.True(t, future.CanBeStarted(now))

	past := Appointment{Status: StatusScheduled, StartTime: now.Add(-time.Hour)}
	assert.False(t, past.CanBeConfirmed(now))
	assert.False(t, past.CanBeCancelled(now))
	// Passado mas ainda hoje: pode iniciar.
	assert.True(t, past.CanBeStarted(now))

	otherDay := Appointment{Status: StatusConfirmed, StartTime: now.AddDate(0, 0, 1)}
	assert.False(t, otherDay.CanBeStarted(now))

	inProgress := Appointment{Status: StatusInProgress}
	assert.True(t, inProgress.CanBeCompleted())

	scheduled := Appointment{Status: StatusScheduled}
	assert.False(t, scheduled.CanBeCompleted())
}

func TestAppliedDiscountPercent(t *testing.T) {
	ap := Appointment{
		BasePrice: decimal.RequireFromString("200.00"),
		Discount:  decimal.RequireFromString("50.00"),
	}
	assert.True(t, ap.AppliedDiscountPercent().Equal(decimal.NewFromInt(25)))

	zero := Appointment{Discount: decimal.RequireFromString("10.00")}
	assert.True(t, zero.AppliedDiscountPercent().IsZero())
}

func TestTimeUntil(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	ap := Appointment{StartTime: now.Add(30 * time.Minute)}
	d := ap.TimeUntil(now)
	assert.NotNil(t, d)
	assert.Equal(t, 30*time.Minute, *d)

	past := Appointment{StartTime: now.Add(-time.Minute)}
	assert.Nil(t, past.TimeUntil(now))
}
