package appointment

import (
	"context"

	"github.com/jtsistemas/agenda-api/internal/audit"
	domain "github.com/jtsistemas/agenda-api/internal/domain/appointment"
	"github.com/jtsistemas/agenda-api/internal/httperr"
	"github.com/jtsistemas/agenda-api/internal/models"
	"github.com/jtsistemas/agenda-api/internal/timezone"
)

type CompleteAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	history *audit.HistoryRecorder
}

func NewCompleteAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	history *audit.HistoryRecorder,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:    repo,
		audit:   auditDisp,
		history: history,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	employeeNotes string,
	userID uint,
) (*models.Appointment, error) {

	company, err := uc.repo.GetCompany(ctx)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	previous := ap.Status
	now := timezone.NowIn(company.Timezone)
	if err := domain.Complete(ap, employeeNotes, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// Concluir atendimento atualiza o "último atendimento" do cliente.
	if err := uc.repo.TouchClientLastService(ctx, ap.ClientID, now); err != nil {
		return nil, err
	}

	uc.history.Record(ctx, ap.ID, previous, ap.Status, &userID, "")

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
