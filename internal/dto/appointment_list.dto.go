package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jtsistemas/agenda-api/internal/models"
)

type AppointmentListDTO struct {
	ID           uint            `json:"id"`
	PublicCode   string          `json:"public_code"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      *time.Time      `json:"end_time"`
	Status       string          `json:"status"`
	ClientName   string          `json:"client_name"`
	EmployeeName string          `json:"employee_name"`
	ServiceName  string          `json:"service_name"`
	FinalPrice   decimal.Decimal `json:"final_price"`
	Paid         bool            `json:"paid"`
}

func FromAppointment(ap *models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:           ap.ID,
		PublicCode:   ap.PublicCode,
		StartTime:    ap.StartTime,
		EndTime:      ap.EndTime,
		Status:       ap.Status,
		ClientName:   ap.Client.DisplayName(),
		EmployeeName: ap.Employee.Name,
		ServiceName:  ap.Service.Name,
		FinalPrice:   ap.FinalPrice,
		Paid:         ap.Paid,
	}
}

func FromAppointments(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for i := range aps {
		out = append(out, FromAppointment(&aps[i]))
	}
	return out
}
