package notifier

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"

	"github.com/jtsistemas/agenda-api/internal/config"
	notifdomain "github.com/jtsistemas/agenda-api/internal/domain/notification"
	"github.com/jtsistemas/agenda-api/internal/models"
)

// EmailNotifier envia notificações pendentes do canal e-mail e move
// o pipeline de status. Outros canais ficam só registrados.
type EmailNotifier struct {
	db     *gorm.DB
	dialer *gomail.Dialer
	from   string
	log    zerolog.Logger
}

func NewEmailNotifier(db *gorm.DB, cfg *config.Config, log zerolog.Logger) *EmailNotifier {
	return &EmailNotifier{
		db:     db,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
		log:    log,
	}
}

// Run processa a fila em intervalos fixos até o contexto encerrar.
func (n *EmailNotifier) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.SendPending(ctx)
		}
	}
}

// SendPending envia tudo que está pendente e já venceu.
func (n *EmailNotifier) SendPending(ctx context.Context) {
	var pending []models.Notification
	err := n.db.WithContext(ctx).
		Where(
			"status = ? AND channel = ? AND scheduled_for <= ? AND is_active = ?",
			models.NotificationPending, models.ChannelEmail, time.Now(), true,
		).
		Order("scheduled_for ASC").
		Limit(50).
		Find(&pending).Error
	if err != nil {
		n.log.Error().Err(err).Msg("load pending notifications failed")
		return
	}

	for i := range pending {
		n.send(ctx, &pending[i])
	}
}

func (n *EmailNotifier) send(ctx context.Context, notif *models.Notification) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", notif.Recipient)
	msg.SetHeader("Subject", notif.Subject)
	msg.SetBody("text/plain", notif.Message)

	now := time.Now()
	if err := n.dialer.DialAndSend(msg); err != nil {
		notifdomain.MarkError(notif, err.Error())
		n.log.Warn().
			Err(err).
			Uint("notification_id", notif.ID).
			Int("attempts", notif.Attempts).
			Msg("notification send failed")
	} else {
		notifdomain.MarkSent(notif, now)
	}

	if err := n.db.WithContext(ctx).Save(notif).Error; err != nil {
		n.log.Error().Err(err).Uint("notification_id", notif.ID).Msg("notification update failed")
	}
}
