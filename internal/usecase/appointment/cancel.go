package appointment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jtsistemas/agenda-api/internal/audit"
	domain "github.com/jtsistemas/agenda-api/internal/domain/appointment"
	"github.com/jtsistemas/agenda-api/internal/httperr"
	"github.com/jtsistemas/agenda-api/internal/models"
	"github.com/jtsistemas/agenda-api/internal/timezone"
)

type CancelAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	history *audit.HistoryRecorder
	log     zerolog.Logger
}

func NewCancelAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	history *audit.HistoryRecorder,
	log zerolog.Logger,
) *CancelAppointment {
	return &CancelAppointment{
		repo:    repo,
		audit:   auditDisp,
		history: history,
		log:     log,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	reason string,
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
	if err := domain.Cancel(ap, reason, user, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.history.Record(ctx, ap.ID, previous, ap.Status, &userID, reason)

	// Aviso de cancelamento para o cliente, quando há e-mail.
	if client, err := uc.repo.GetClient(ctx, ap.ClientID); err == nil && client.Email != "" {
		notifErr := uc.repo.CreateNotification(ctx, &models.Notification{
			AppointmentID: ap.ID,
			ClientID:      client.ID,
			Type:          models.NotificationTypeCancellation,
			Channel:       models.ChannelEmail,
			Recipient:     client.Email,
			Subject:       "Agendamento cancelado",
			Message: fmt.Sprintf(
				"Olá %s, seu agendamento de %s foi cancelado.",
				client.Name, ap.StartTime.In(timezone.Location(company.Timezone)).Format("02/01/2006 15:04"),
			),
			ScheduledFor: now,
		})
		if notifErr != nil {
			uc.log.Warn().Err(notifErr).Uint("appointment_id", ap.ID).
				Msg("falha ao enfileirar notificação de cancelamento")
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{"reason": reason},
	})

	return ap, nil
}
