package appointment

import (
	"context"

	"github.com/jtsistemas/agenda-api/internal/audit"
	domain "github.com/jtsistemas/agenda-api/internal/domain/appointment"
	"github.com/jtsistemas/agenda-api/internal/httperr"
	"github.com/jtsistemas/agenda-api/internal/models"
	"github.com/jtsistemas/agenda-api/internal/timezone"
)

type ConfirmAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	history *audit.HistoryRecorder
}

func NewConfirmAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	history *audit.HistoryRecorder,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:    repo,
		audit:   auditDisp,
		history: history,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
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

	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	previous := ap.Status
	now := timezone.NowIn(company.Timezone)
	if err := domain.Confirm(ap, user, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.history.Record(ctx, ap.ID, previous, ap.Status, &userID, "")

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_confirmed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
