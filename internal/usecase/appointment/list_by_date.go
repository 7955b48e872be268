package appointment

import (
	"context"
	"time"

	domain "github.com/jtsistemas/agenda-api/internal/domain/appointment"
	"github.com/jtsistemas/agenda-api/internal/httperr"
	"github.com/jtsistemas/agenda-api/internal/models"
	"github.com/jtsistemas/agenda-api/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(repo domain.Repository) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{repo: repo}
}

// Execute lista os agendamentos de um dia no fuso da empresa.
// employeeID opcional filtra a agenda de um funcionário.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	dateStr string,
	employeeID *uint,
) ([]models.Appointment, error) {

	company, err := uc.repo.GetCompany(ctx)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(company.Timezone)

	date := time.Now().In(loc)
	if dateStr != "" {
		date, err = time.ParseInLocation("2006-01-02", dateStr, loc)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
	}

	start := timezone.StartOfDay(date)
	end := start.Add(24 * time.Hour)

	if employeeID != nil {
		return uc.repo.ListByEmployee(ctx, *employeeID, start, end)
	}
	return uc.repo.ListForPeriod(ctx, start, end)
}
