package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ===============================
// Status / Origem / Pagamento
// ===============================

const (
	StatusScheduled   = "scheduled"
	StatusConfirmed   = "confirmed"
	StatusInProgress  = "in_progress"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusNoShow      = "no_show"
	StatusRescheduled = "rescheduled"
)

const (
	OriginWalkIn   = "presencial"
	OriginPhone    = "telefone"
	OriginWhatsApp = "whatsapp"
	OriginOnline   = "online"
	OriginReferral = "indicacao"
)

const (
	PaymentCash       = "dinheiro"
	PaymentCredit     = "cartao_credito"
	PaymentDebit      = "cartao_debito"
	PaymentPix        = "pix"
	PaymentTransfer   = "transferencia"
	PaymentBoleto     = "boleto"
	PaymentUndefined  = "nao_definido"
)

type Appointment struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	PublicCode string `gorm:"size:36;uniqueIndex" json:"public_code"`

	ClientID uint   `gorm:"index" json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client"`

	EmployeeID uint     `gorm:"index" json:"employee_id"`
	Employee   Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"employee"`

	ServiceID uint    `gorm:"index" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	ServicePackageID *uint           `json:"service_package_id"`
	ServicePackage   *ServicePackage `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service_package,omitempty"`

	StartTime time.Time  `gorm:"index;index:idx_start_status" json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	// Durações em minutos. A prevista é copiada do serviço no
	// momento do agendamento, a real é derivada ao concluir.
	PredictedDuration int  `json:"predicted_duration"`
	ActualDuration    *int `json:"actual_duration"`

	Status string `gorm:"size:20;default:'scheduled';index;index:idx_start_status" json:"status"`

	ConfirmedAt      *time.Time `json:"confirmed_at"`
	ServiceStartedAt *time.Time `json:"service_started_at"`
	ServiceEndedAt   *time.Time `json:"service_ended_at"`
	CancelledAt      *time.Time `json:"cancelled_at"`
	CancelReason     string     `gorm:"type:text" json:"cancel_reason"`

	Origin string `gorm:"size:20;default:'presencial'" json:"origin"`

	BookedByID    *uint `json:"booked_by_id"`
	BookedBy      *User `gorm:"foreignKey:BookedByID;constraint:OnDelete:SET NULL;" json:"-"`
	ConfirmedByID *uint `json:"confirmed_by_id"`
	ConfirmedBy   *User `gorm:"foreignKey:ConfirmedByID;constraint:OnDelete:SET NULL;" json:"-"`
	CancelledByID *uint `json:"cancelled_by_id"`
	CancelledBy   *User `gorm:"foreignKey:CancelledByID;constraint:OnDelete:SET NULL;" json:"-"`

	// Valores congelados no momento do agendamento; mudanças
	// posteriores de preço do serviço não afetam este registro.
	BasePrice  decimal.Decimal `gorm:"type:numeric(10,2)" json:"base_price"`
	Discount   decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"discount"`
	FinalPrice decimal.Decimal `gorm:"type:numeric(10,2)" json:"final_price"`

	PaymentMethod string     `gorm:"size:20;default:'nao_definido'" json:"payment_method"`
	Paid          bool       `gorm:"default:false" json:"paid"`
	PaidAt        *time.Time `json:"paid_at"`

	Notes         string `gorm:"type:text" json:"notes"`
	ClientNotes   string `gorm:"type:text" json:"client_notes"`
	EmployeeNotes string `gorm:"type:text" json:"employee_notes"`

	Rating        *int       `json:"rating"`
	RatingComment string     `gorm:"type:text" json:"rating_comment"`
	RatedAt       *time.Time `json:"rated_at"`

	ReminderSent     bool       `gorm:"default:false" json:"reminder_sent"`
	ReminderAt       *time.Time `json:"reminder_at"`
	ConfirmationSent bool       `gorm:"default:false" json:"confirmation_sent"`

	// Cadeia de reagendamento: aponta para o agendamento de origem,
	// nunca um grafo em memória.
	OriginalAppointmentID *uint `gorm:"index" json:"original_appointment_id"`
	RescheduleCount       int   `gorm:"default:0" json:"reschedule_count"`

	StatusHistory []StatusChange `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Notifications []Notification `gorm:"constraint:OnDelete:CASCADE;" json:"-"`

	Timestamps
	SoftDelete
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.PublicCode == "" {
		a.PublicCode = uuid.NewString()
	}
	return nil
}

// BeforeSave aplica a recomputação de persistência em todo Save,
// carregando o serviço quando preço ou duração ainda não foram
// congelados.
func (a *Appointment) BeforeSave(tx *gorm.DB) error {
	var svc *Service
	if (a.BasePrice.IsZero() || a.PredictedDuration == 0) && a.ServiceID != 0 && tx != nil {
		var s Service
		if err := tx.First(&s, a.ServiceID).Error; err == nil {
			svc = &s
		}
	}

	a.Normalize(svc, time.Now())
	return nil
}

// Normalize é a recomputação pura feita a cada persistência:
// término, snapshot de preço/duração, valor final e os carimbos
// de data preenchidos uma única vez quando o status bate.
func (a *Appointment) Normalize(svc *Service, now time.Time) {
	if a.EndTime == nil && !a.StartTime.IsZero() && a.PredictedDuration > 0 {
		end := a.StartTime.Add(time.Duration(a.PredictedDuration) * time.Minute)
		a.EndTime = &end
	}

	if a.BasePrice.IsZero() && svc != nil {
		a.BasePrice = svc.CurrentPrice(now)
	}

	if a.PredictedDuration == 0 && svc != nil {
		a.PredictedDuration = svc.DurationInMinutes()
	}

	a.FinalPrice = a.BasePrice.Sub(a.Discount)

	if a.Status == StatusConfirmed && a.ConfirmedAt == nil {
		a.ConfirmedAt = &now
	}

	if a.Status == StatusCancelled && a.CancelledAt == nil {
		a.CancelledAt = &now
	}

	if a.Status == StatusInProgress && a.ServiceStartedAt == nil {
		a.ServiceStartedAt = &now
	}

	if a.Status == StatusCompleted && a.ServiceEndedAt == nil {
		a.ServiceEndedAt = &now
		if a.ServiceStartedAt != nil {
			minutes := int(a.ServiceEndedAt.Sub(*a.ServiceStartedAt).Minutes())
			a.ActualDuration = &minutes
		}
	}
}

// ===============================
// Predicados derivados
// ===============================

func (a *Appointment) IsToday(now time.Time) bool {
	y1, m1, d1 := a.StartTime.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func (a *Appointment) IsPast(now time.Time) bool {
	return a.StartTime.Before(now)
}

func (a *Appointment) IsFuture(now time.Time) bool {
	return a.StartTime.After(now)
}

func (a *Appointment) CanBeConfirmed(now time.Time) bool {
	return a.Status == StatusScheduled && !a.IsPast(now)
}

func (a *Appointment) CanBeCancelled(now time.Time) bool {
	return (a.Status == StatusScheduled || a.Status == StatusConfirmed) && !a.IsPast(now)
}

func (a *Appointment) CanBeStarted(now time.Time) bool {
	return (a.Status == StatusScheduled || a.Status == StatusConfirmed) && a.IsToday(now)
}

func (a *Appointment) CanBeCompleted() bool {
	return a.Status == StatusInProgress
}

// TimeUntil retorna quanto falta para o horário, nil se já passou.
func (a *Appointment) TimeUntil(now time.Time) *time.Duration {
	if !a.IsFuture(now) {
		return nil
	}
	d := a.StartTime.Sub(now)
	return &d
}

func (a *Appointment) TimeSinceBooking(now time.Time) time.Duration {
	return now.Sub(a.CreatedAt)
}

// AppliedDiscountPercent é o desconto aplicado em %, 0 quando o
// valor do serviço é 0.
func (a *Appointment) AppliedDiscountPercent() decimal.Decimal {
	if !a.BasePrice.IsPositive() {
		return decimal.Zero
	}
	return a.Discount.Div(a.BasePrice).Mul(decimal.NewFromInt(100))
}
