package audit

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/jtsistemas/agenda-api/internal/models"
)

// HistoryRecorder grava o histórico de status do agendamento.
// Diferente do audit log, a gravação é síncrona: o histórico faz
// parte da mesma unidade de trabalho da transição.
type HistoryRecorder struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewHistoryRecorder(db *gorm.DB, log zerolog.Logger) *HistoryRecorder {
	return &HistoryRecorder{db: db, log: log}
}

// Record persiste a mudança de status. A transição já foi gravada
// quando Record roda, então uma falha aqui não a desfaz: ela é
// registrada em log para reconciliação.
func (h *HistoryRecorder) Record(
	ctx context.Context,
	appointmentID uint,
	previous string,
	next string,
	userID *uint,
	notes string,
) {

	change := models.StatusChange{
		AppointmentID:  appointmentID,
		PreviousStatus: previous,
		NewStatus:      next,
		UserID:         userID,
		Notes:          notes,
	}

	if err := h.db.WithContext(ctx).Create(&change).Error; err != nil {
		h.log.Error().
			Err(err).
			Uint("appointment_id", appointmentID).
			Str("previous_status", previous).
			Str("new_status", next).
			Msg("falha ao gravar histórico de status")
	}
}
