package models

import "time"

// StatusChange é o histórico imutável de transições de um agendamento.
type StatusChange struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index;not null" json:"appointment_id"`

	PreviousStatus string `gorm:"size:20" json:"previous_status"`
	NewStatus      string `gorm:"size:20;not null" json:"new_status"`

	UserID *uint `json:"user_id"`
	User   *User `gorm:"constraint:OnDelete:SET NULL;" json:"-"`

	Notes     string    `gorm:"type:text" json:"notes"`
	ChangedAt time.Time `gorm:"autoCreateTime;index" json:"changed_at"`
}
