package appointment

import (
	"context"
	"time"

	"github.com/jtsistemas/agenda-api/internal/models"
)

type Repository interface {
	// -------- Company --------
	GetCompany(ctx context.Context) (*models.CompanyProfile, error)

	// -------- Reference data --------
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	GetEmployee(ctx context.Context, id uint) (*models.Employee, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetPackage(ctx context.Context, id uint) (*models.ServicePackage, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)

	// -------- Appointment --------
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	// RescheduleAppointment persiste a troca numa única transação:
	// atualiza o antigo e cria o novo.
	RescheduleAppointment(ctx context.Context, old *models.Appointment, next *models.Appointment) error

	// -------- Side effects --------
	TouchClientLastService(ctx context.Context, clientID uint, when time.Time) error
	CreateNotification(ctx context.Context, n *models.Notification) error

	// -------- Listagens --------
	ListForPeriod(ctx context.Context, start time.Time, end time.Time) ([]models.Appointment, error)
	ListByEmployee(ctx context.Context, employeeID uint, start time.Time, end time.Time) ([]models.Appointment, error)
}
