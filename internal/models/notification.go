package models

import "time"

const (
	NotificationTypeReminder      = "lembrete"
	NotificationTypeConfirmation  = "confirmacao"
	NotificationTypeCancellation  = "cancelamento"
	NotificationTypeReschedule    = "reagendamento"
	NotificationTypeRatingRequest = "avaliacao"
	NotificationTypePromotion     = "promocao"
)

const (
	ChannelWhatsApp = "whatsapp"
	ChannelSMS      = "sms"
	ChannelEmail    = "email"
	ChannelPush     = "push"
)

const (
	NotificationPending   = "pending"
	NotificationSent      = "sent"
	NotificationDelivered = "delivered"
	NotificationRead      = "read"
	NotificationError     = "error"
)

// Notification é uma mensagem ao cliente ligada a um agendamento.
type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index;not null" json:"appointment_id"`

	ClientID uint   `gorm:"index;not null" json:"client_id"`
	Client   Client `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	Type    string `gorm:"size:20;not null" json:"type"`
	Channel string `gorm:"size:20;not null" json:"channel"`

	Recipient string `gorm:"size:100;not null" json:"recipient"`
	Subject   string `gorm:"size:200" json:"subject"`
	Message   string `gorm:"type:text;not null" json:"message"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`

	ScheduledFor time.Time  `gorm:"index" json:"scheduled_for"`
	SentAt       *time.Time `json:"sent_at"`
	DeliveredAt  *time.Time `json:"delivered_at"`
	ReadAt       *time.Time `json:"read_at"`

	ErrorDetail string `gorm:"type:text" json:"error_detail"`
	// Contador informativo; não existe corte por máximo de tentativas.
	Attempts int `gorm:"default:0" json:"attempts"`

	Timestamps
	SoftDelete
}
