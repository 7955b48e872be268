package notification

import (
	"time"

	"github.com/jtsistemas/agenda-api/internal/models"
)

// ===============================
// Notification Pipeline
// ===============================
//
// pending → sent → delivered → read, com "error" alcançável de
// qualquer ponto. Erro incrementa o contador de tentativas; não há
// corte por máximo nem backoff.

func MarkSent(n *models.Notification, now time.Time) {
	n.Status = models.NotificationSent
	n.SentAt = &now
}

func MarkDelivered(n *models.Notification, now time.Time) {
	n.Status = models.NotificationDelivered
	n.DeliveredAt = &now
}

func MarkRead(n *models.Notification, now time.Time) {
	n.Status = models.NotificationRead
	n.ReadAt = &now
}

func MarkError(n *models.Notification, detail string) {
	n.Status = models.NotificationError
	n.ErrorDetail = detail
	n.Attempts++
}
