package appointment

import (
	"time"

	"github.com/jtsistemas/agenda-api/internal/httperr"
	"github.com/jtsistemas/agenda-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================
//
// Cada ação valida a guarda e muta o agendamento em memória.
// Falha de guarda vem como httperr.BusinessError; persistir é
// responsabilidade do use case.

func Confirm(ap *models.Appointment, user *models.User, now time.Time) error {
	if err := CanConfirm(ap, now); err != nil {
		return err
	}

	ap.Status = models.StatusConfirmed
	ap.ConfirmedAt = &now
	if user != nil {
		ap.ConfirmedByID = &user.ID
	}
	return nil
}

func Cancel(ap *models.Appointment, reason string, user *models.User, now time.Time) error {
	if err := CanCancel(ap, now); err != nil {
		return err
	}

	ap.Status = models.StatusCancelled
	ap.CancelledAt = &now
	ap.CancelReason = reason
	if user != nil {
		ap.CancelledByID = &user.ID
	}
	return nil
}

func Start(ap *models.Appointment, now time.Time) error {
	if err := CanStart(ap, now); err != nil {
		return err
	}

	ap.Status = models.StatusInProgress
	ap.ServiceStartedAt = &now
	return nil
}

func Complete(ap *models.Appointment, employeeNotes string, now time.Time) error {
	if err := CanComplete(ap); err != nil {
		return err
	}

	ap.Status = models.StatusCompleted
	ap.ServiceEndedAt = &now
	if employeeNotes != "" {
		ap.EmployeeNotes = employeeNotes
	}

	if ap.ServiceStartedAt != nil {
		minutes := int(now.Sub(*ap.ServiceStartedAt).Minutes())
		ap.ActualDuration = &minutes
	}
	return nil
}

// Reschedule cria um novo agendamento clonando o atual para o novo
// horário e marca o atual como reagendado. O novo aponta para a
// origem da cadeia (ou para o atual, quando ele é a origem).
func Reschedule(
	ap *models.Appointment,
	newStart time.Time,
	reason string,
	user *models.User,
	now time.Time,
) (*models.Appointment, error) {

	if err := CanCancel(ap, now); err != nil {
		return nil, err
	}

	chainOrigin := ap.OriginalAppointmentID
	if chainOrigin == nil {
		chainOrigin = &ap.ID
	}

	next := &models.Appointment{
		ClientID:         ap.ClientID,
		EmployeeID:       ap.EmployeeID,
		ServiceID:        ap.ServiceID,
		ServicePackageID: ap.ServicePackageID,

		StartTime:         newStart,
		PredictedDuration: ap.PredictedDuration,

		Status: string(InitialStatus()),
		Origin: ap.Origin,

		BasePrice:     ap.BasePrice,
		Discount:      ap.Discount,
		PaymentMethod: ap.PaymentMethod,

		Notes:       ap.Notes,
		ClientNotes: ap.ClientNotes,

		OriginalAppointmentID: chainOrigin,
		RescheduleCount:       ap.RescheduleCount + 1,
	}
	if user != nil {
		next.BookedByID = &user.ID
	}

	ap.Status = models.StatusRescheduled
	ap.CancelReason = "Reagendado: " + reason
	if user != nil {
		ap.CancelledByID = &user.ID
	}

	return next, nil
}

func Rate(ap *models.Appointment, score int, comment string, now time.Time) error {
	if err := CanRate(ap); err != nil {
		return err
	}
	if score < 1 || score > 5 {
		return httperr.ErrBusiness("invalid_rating")
	}

	ap.Rating = &score
	ap.RatingComment = comment
	ap.RatedAt = &now
	return nil
}

// MarkPaid é incondicional: registra o pagamento em qualquer estado.
func MarkPaid(ap *models.Appointment, paymentMethod string, now time.Time) {
	ap.Paid = true
	ap.PaidAt = &now
	if paymentMethod != "" {
		ap.PaymentMethod = paymentMethod
	}
}
