package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	EmployeeStatusActive    = "active"
	EmployeeStatusInactive  = "inactive"
	EmployeeStatusVacation  = "vacation"
	EmployeeStatusLeave     = "leave"
	EmployeeStatusDismissed = "dismissed"
)

// Position é o cargo do funcionário (recepcionista, cabeleireiro...).
type Position struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Level       int    `gorm:"default:1" json:"level"`

	Timestamps
	SoftDelete
}

type Employee struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string `gorm:"size:100;not null" json:"name"`
	Email    string `gorm:"size:100" json:"email"`
	Phone    string `gorm:"size:20;not null" json:"phone"`
	WhatsApp string `gorm:"size:20" json:"whatsapp"`

	CPF       string    `gorm:"size:14;uniqueIndex;not null" json:"cpf"`
	BirthDate time.Time `json:"birth_date"`

	Street  string `gorm:"size:200" json:"street"`
	City    string `gorm:"size:100" json:"city"`
	State   string `gorm:"size:2" json:"state"`
	ZipCode string `gorm:"size:9" json:"zip_code"`

	PositionID uint     `gorm:"index" json:"position_id"`
	Position   Position `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"position"`

	Registration  string     `gorm:"size:20;uniqueIndex" json:"registration"`
	AdmissionDate time.Time  `json:"admission_date"`
	DismissalDate *time.Time `json:"dismissal_date"`

	Status string `gorm:"size:20;default:'active';index" json:"status"`
	Shift  string `gorm:"size:20;default:'integral'" json:"shift"`

	Specialties string `gorm:"type:text" json:"specialties"`
	Notes       string `gorm:"type:text" json:"notes"`

	PhotoURL string `gorm:"size:255" json:"photo_url"`

	Timestamps
	SoftDelete
}

// NextRegistration gera a próxima matrícula <prefixo><sequencial de
// 4 dígitos> a partir da última matrícula do mesmo prefixo. Com
// última vazia ou malformada a sequência recomeça em 1.
func NextRegistration(prefix, last string) string {
	next := 1
	if strings.HasPrefix(last, prefix) {
		var seq int
		if _, err := fmt.Sscanf(last[len(prefix):], "%d", &seq); err == nil && seq > 0 {
			next = seq + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, next)
}

// BeforeCreate gera a matrícula do ano corrente quando não informada.
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.Registration != "" {
		return nil
	}

	prefix := fmt.Sprintf("%d", time.Now().Year())

	var last Employee
	err := tx.
		Where("registration LIKE ?", prefix+"%").
		Order("registration DESC").
		First(&last).Error
	if err != nil {
		last.Registration = ""
	}

	e.Registration = NextRegistration(prefix, last.Registration)
	return nil
}

func (e *Employee) FullAddress() string {
	var parts []string
	for _, p := range []string{e.Street, e.City, e.State, e.ZipCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

func (e *Employee) IsAvailable() bool {
	return e.IsActive && e.Status == EmployeeStatusActive
}

// TenureDays é o tempo de casa em dias.
func (e *Employee) TenureDays(now time.Time) int {
	if e.AdmissionDate.IsZero() {
		return 0
	}
	end := now
	if e.DismissalDate != nil {
		end = *e.DismissalDate
	}
	return int(end.Sub(e.AdmissionDate).Hours() / 24)
}
