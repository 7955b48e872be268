package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jtsistemas/agenda-api/internal/audit"
	domain "github.com/jtsistemas/agenda-api/internal/domain/appointment"
	"github.com/jtsistemas/agenda-api/internal/httperr"
	"github.com/jtsistemas/agenda-api/internal/models"
	"github.com/jtsistemas/agenda-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID   uint
	EmployeeID uint
	ServiceID  uint
	PackageID  *uint

	Date string
	Time string

	Origin        string
	Discount      decimal.Decimal
	PaymentMethod string
	Notes         string
	ClientNotes   string

	UserID uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	history *audit.HistoryRecorder
	log     zerolog.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	history *audit.HistoryRecorder,
	log zerolog.Logger,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		audit:   auditDisp,
		history: history,
		log:     log,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Empresa (timezone + antecedência mínima)
	// --------------------------------------------------
	company, err := uc.repo.GetCompany(ctx)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(company.Timezone)
	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := company.MinAdvanceMinutes
	if minAdvance < 0 {
		minAdvance = 0
	}

	now := timezone.NowIn(company.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 2. Referências: cliente, funcionário, serviço, pacote
	// --------------------------------------------------
	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, httperr.ErrBusiness("client_not_found")
	}
	if !client.CanBeBooked() {
		return nil, httperr.ErrBusiness("client_blocked")
	}

	employee, err := uc.repo.GetEmployee(ctx, in.EmployeeID)
	if err != nil {
		return nil, httperr.ErrBusiness("employee_not_found")
	}
	if !employee.IsAvailable() {
		return nil, httperr.ErrBusiness("employee_unavailable")
	}

	service, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if !service.IsBookable() {
		return nil, httperr.ErrBusiness("service_unavailable")
	}

	if in.PackageID != nil {
		if _, err := uc.repo.GetPackage(ctx, *in.PackageID); err != nil {
			return nil, httperr.ErrBusiness("package_not_found")
		}
	}

	// --------------------------------------------------
	// 3. Snapshot de preço e duração do serviço
	// --------------------------------------------------
	duration := service.DurationInMinutes()
	end := start.Add(time.Duration(duration) * time.Minute)

	origin := in.Origin
	if origin == "" {
		origin = models.OriginWalkIn
	}
	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentUndefined
	}

	ap := &models.Appointment{
		ClientID:         client.ID,
		EmployeeID:       employee.ID,
		ServiceID:        service.ID,
		ServicePackageID: in.PackageID,

		StartTime:         start,
		EndTime:           &end,
		PredictedDuration: duration,

		Status: string(domain.InitialStatus()),
		Origin: origin,

		BasePrice:     service.CurrentPrice(now),
		Discount:      in.Discount,
		PaymentMethod: paymentMethod,

		Notes:       in.Notes,
		ClientNotes: in.ClientNotes,

		BookedByID: &in.UserID,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Histórico, notificação de confirmação e auditoria
	// --------------------------------------------------
	uc.history.Record(ctx, ap.ID, "", ap.Status, &in.UserID, "")

	if client.Email != "" {
		err := uc.repo.CreateNotification(ctx, &models.Notification{
			AppointmentID: ap.ID,
			ClientID:      client.ID,
			Type:          models.NotificationTypeConfirmation,
			Channel:       models.ChannelEmail,
			Recipient:     client.Email,
			Subject:       "Agendamento recebido",
			Message: fmt.Sprintf(
				"Olá %s, seu agendamento de %s foi registrado para %s.",
				client.Name, service.Name, start.Format("02/01/2006 15:04"),
			),
			ScheduledFor: now,
		})
		if err != nil {
			uc.log.Warn().Err(err).Uint("appointment_id", ap.ID).
				Msg("falha ao enfileirar notificação de confirmação")
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
