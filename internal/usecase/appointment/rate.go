package appointment

import (
	"context"

	"github.com/jtsistemas/agenda-api/internal/audit"
	domain "github.com/jtsistemas/agenda-api/internal/domain/appointment"
	"github.com/jtsistemas/agenda-api/internal/httperr"
	"github.com/jtsistemas/agenda-api/internal/models"
	"github.com/jtsistemas/agenda-api/internal/timezone"
)

type RateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRateAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
) *RateAppointment {
	return &RateAppointment{
		repo:  repo,
		audit: auditDisp,
	}
}

func (uc *RateAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	score int,
	comment string,
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

	now := timezone.NowIn(company.Timezone)
	if err := domain.Rate(ap, score, comment, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_rated",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"rating": score},
	})

	return ap, nil
}
