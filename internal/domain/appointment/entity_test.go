package appointment

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtsistemas/agenda-api/internal/httperr"
	"github.com/jtsistemas/agenda-api/internal/models"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func scheduledAppointment() *models.Appointment {
	return &models.Appointment{
		ID:        10,
		Status:    models.StatusScheduled,
		StartTime: testNow.Add(2 * time.Hour),
		BasePrice: decimal.RequireFromString("100.00"),
	}
}

func TestConfirmScheduledFuture(t *testing.T) {
	ap := scheduledAppointment()
	user := &models.User{ID: 3}

	err := Confirm(ap, user, testNow)

	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, ap.Status)
	assert.Equal(t, testNow, *ap.ConfirmedAt)
	assert.Equal(t, uint(3), *ap.ConfirmedByID)
}

func TestConfirmRejectsPastAndWrongStatus(t *testing.T) {
	past := scheduledAppointment()
	past.StartTime = testNow.Add(-time.Hour)
	err := Confirm(past, nil, testNow)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	done := scheduledAppointment()
	done.Status = models.StatusCompleted
	err = Confirm(done, nil, testNow)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelKeepsReason(t *testing.T) {
	ap := scheduledAppointment()
	user := &models.User{ID: 7}

	err := Cancel(ap, "cliente desistiu", user, testNow)

	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, ap.Status)
	assert.Equal(t, "cliente desistiu", ap.CancelReason)
	assert.Equal(t, uint(7), *ap.CancelledByID)
}

func TestCancelRejectsInProgress(t *testing.T) {
	ap := scheduledAppointment()
	ap.Status = models.StatusInProgress

	err := Cancel(ap, "x", nil, testNow)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestStartOnlyToday(t *testing.T) {
	ap := scheduledAppointment()
	require.NoError(t, Start(ap, testNow))
	assert.Equal(t, models.StatusInProgress, ap.Status)
	assert.Equal(t, testNow, *ap.ServiceStartedAt)

	tomorrow := scheduledAppointment()
	tomorrow.StartTime = testNow.AddDate(0, 0, 1)
	err := Start(tomorrow, testNow)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCompleteDerivesActualDuration(t *testing.T) {
	ap := scheduledAppointment()
	ap.Status = models.StatusInProgress
	started := testNow.Add(-40 * time.Minute)
	ap.ServiceStartedAt = &started

	err := Complete(ap, "tudo certo", testNow)

	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, ap.Status)
	assert.Equal(t, "tudo certo", ap.EmployeeNotes)
	require.NotNil(t, ap.ActualDuration)
	assert.Equal(t, 40, *ap.ActualDuration)
}

func TestCompleteRequiresInProgress(t *testing.T) {
	ap := scheduledAppointment()
	err := Complete(ap, "", testNow)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestRescheduleClonesIntoNewAppointment(t *testing.T) {
	ap := scheduledAppointment()
	ap.PredictedDuration = 60
	ap.Discount = decimal.RequireFromString("10.00")
	user := &models.User{ID: 5}

	newStart := testNow.AddDate(0, 0, 3)
	next, err := Reschedule(ap, newStart, "cliente pediu", user, testNow)

	require.NoError(t, err)

	// O original vira "rescheduled" e guarda o motivo.
	assert.Equal(t, models.StatusRescheduled, ap.Status)
	assert.Equal(t, "Reagendado: cliente pediu", ap.CancelReason)

	// O novo volta ao início do ciclo apontando para a origem.
	assert.Equal(t, models.StatusScheduled, next.Status)
	assert.Equal(t, newStart, next.StartTime)
	assert.Equal(t, ap.ID, *next.OriginalAppointmentID)
	assert.Equal(t, 1, next.RescheduleCount)
	assert.True(t, next.BasePrice.Equal(ap.BasePrice))
	assert.True(t, next.Discount.Equal(ap.Discount))
	assert.Equal(t, 60, next.PredictedDuration)
	assert.Equal(t, uint(5), *next.BookedByID)
}

func TestRescheduleChainPointsToFirstOrigin(t *testing.T) {
	origin := uint(4)
	ap := scheduledAppointment()
	ap.OriginalAppointmentID = &origin
	ap.RescheduleCount = 2

	next, err := Reschedule(ap, testNow.AddDate(0, 0, 1), "de novo", nil, testNow)

	require.NoError(t, err)
	assert.Equal(t, origin, *next.OriginalAppointmentID)
	assert.Equal(t, 3, next.RescheduleCount)
}

func TestRescheduleRejectsCompleted(t *testing.T) {
	ap := scheduledAppointment()
	ap.Status = models.StatusCompleted

	_, err := Reschedule(ap, testNow.AddDate(0, 0, 1), "x", nil, testNow)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestRateOnlyCompletedWithValidScore(t *testing.T) {
	ap := scheduledAppointment()
	ap.Status = models.StatusCompleted

	err := Rate(ap, 5, "ótimo", testNow)
	require.NoError(t, err)
	assert.Equal(t, 5, *ap.Rating)
	assert.Equal(t, "ótimo", ap.RatingComment)
	assert.Equal(t, testNow, *ap.RatedAt)

	err = Rate(ap, 6, "", testNow)
	assert.True(t, httperr.IsBusiness(err, "invalid_rating"))

	err = Rate(ap, 0, "", testNow)
	assert.True(t, httperr.IsBusiness(err, "invalid_rating"))

	pending := scheduledAppointment()
	err = Rate(pending, 4, "", testNow)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestMarkPaidIsUnconditional(t *testing.T) {
	ap := scheduledAppointment()
	ap.Status = models.StatusCancelled

	MarkPaid(ap, models.PaymentPix, testNow)

	assert.True(t, ap.Paid)
	assert.Equal(t, testNow, *ap.PaidAt)
	assert.Equal(t, models.PaymentPix, ap.PaymentMethod)

	// Sem método informado, mantém o atual.
	ap2 := scheduledAppointment()
	ap2.PaymentMethod = models.PaymentCash
	MarkPaid(ap2, "", testNow)
	assert.Equal(t, models.PaymentCash, ap2.PaymentMethod)
}
