package appointment

import (
	"context"

	"github.com/jtsistemas/agenda-api/internal/audit"
	domain "github.com/jtsistemas/agenda-api/internal/domain/appointment"
	"github.com/jtsistemas/agenda-api/internal/httperr"
	"github.com/jtsistemas/agenda-api/internal/models"
	"github.com/jtsistemas/agenda-api/internal/timezone"
)

type MarkAppointmentPaid struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewMarkAppointmentPaid(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
) *MarkAppointmentPaid {
	return &MarkAppointmentPaid{
		repo:  repo,
		audit: auditDisp,
	}
}

func (uc *MarkAppointmentPaid) Execute(
	ctx context.Context,
	appointmentID uint,
	paymentMethod string,
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
	domain.MarkPaid(ap, paymentMethod, now)

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_paid",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"payment_method": ap.PaymentMethod},
	})

	return ap, nil
}
