package appointment

import (
	"time"

	"github.com/jtsistemas/agenda-api/internal/httperr"
	"github.com/jtsistemas/agenda-api/internal/models"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled   Status = models.StatusScheduled
	StatusConfirmed   Status = models.StatusConfirmed
	StatusInProgress  Status = models.StatusInProgress
	StatusCompleted   Status = models.StatusCompleted
	StatusCancelled   Status = models.StatusCancelled
	StatusNoShow      Status = models.StatusNoShow
	StatusRescheduled Status = models.StatusRescheduled
)

func InitialStatus() Status {
	return StatusScheduled
}

// ===============================
// Guards
// ===============================

// CanConfirm: só agendamentos "scheduled" com horário futuro.
func CanConfirm(ap *models.Appointment, now time.Time) error {
	if !ap.CanBeConfirmed(now) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel: "scheduled" ou "confirmed", horário ainda no futuro.
func CanCancel(ap *models.Appointment, now time.Time) error {
	if !ap.CanBeCancelled(now) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanStart: "scheduled" ou "confirmed" e a data é hoje.
func CanStart(ap *models.Appointment, now time.Time) error {
	if !ap.CanBeStarted(now) {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete: apenas a partir de "in_progress".
func CanComplete(ap *models.Appointment) error {
	if !ap.CanBeCompleted() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanRate: avaliação só com atendimento concluído.
func CanRate(ap *models.Appointment) error {
	if ap.Status != models.StatusCompleted {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}
