package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jtsistemas/agenda-api/internal/audit"
	domain "github.com/jtsistemas/agenda-api/internal/domain/appointment"
	"github.com/jtsistemas/agenda-api/internal/httperr"
	"github.com/jtsistemas/agenda-api/internal/models"
	"github.com/jtsistemas/agenda-api/internal/timezone"
)

type RescheduleAppointmentInput struct {
	AppointmentID uint
	Date          string
	Time          string
	Reason        string
	UserID        uint
}

type RescheduleAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	history *audit.HistoryRecorder
	log     zerolog.Logger
}

func NewRescheduleAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	history *audit.HistoryRecorder,
	log zerolog.Logger,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:    repo,
		audit:   auditDisp,
		history: history,
		log:     log,
	}
}

// Execute cria o novo agendamento e marca o atual como reagendado,
// na mesma transação. Retorna o novo agendamento.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	company, err := uc.repo.GetCompany(ctx)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(company.Timezone)
	newStart, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	user, err := uc.repo.GetUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	previous := ap.Status
	now := timezone.NowIn(company.Timezone)

	next, err := domain.Reschedule(ap, newStart, in.Reason, user, now)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.RescheduleAppointment(ctx, ap, next); err != nil {
		return nil, err
	}

	uc.history.Record(ctx, ap.ID, previous, ap.Status, &in.UserID, in.Reason)
	uc.history.Record(ctx, next.ID, "", next.Status, &in.UserID, "")

	// Aviso de reagendamento para o cliente.
	if client, err := uc.repo.GetClient(ctx, ap.ClientID); err == nil && client.Email != "" {
		notifErr := uc.repo.CreateNotification(ctx, &models.Notification{
			AppointmentID: next.ID,
			ClientID:      client.ID,
			Type:          models.NotificationTypeReschedule,
			Channel:       models.ChannelEmail,
			Recipient:     client.Email,
			Subject:       "Agendamento remarcado",
			Message: fmt.Sprintf(
				"Olá %s, seu agendamento foi remarcado para %s.",
				client.Name, newStart.Format("02/01/2006 15:04"),
			),
			ScheduledFor: now,
		})
		if notifErr != nil {
			uc.log.Warn().Err(notifErr).Uint("appointment_id", next.ID).
				Msg("falha ao enfileirar notificação de reagendamento")
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"new_appointment_id": next.ID,
			"reason":             in.Reason,
		},
	})

	return next, nil
}
