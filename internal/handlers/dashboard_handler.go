package handlers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jtsistemas/agenda-api/internal/cache"
	"github.com/jtsistemas/agenda-api/internal/httperr"
	"github.com/jtsistemas/agenda-api/internal/httpresp"
	"github.com/jtsistemas/agenda-api/internal/models"
	"github.com/jtsistemas/agenda-api/internal/timezone"
)

const dashboardCacheTTL = 5 * time.Minute

type DashboardHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewDashboardHandler(db *gorm.DB, c *cache.Cache) *DashboardHandler {
	return &DashboardHandler{db: db, cache: c}
}

// --------- Payload ---------

type dashboardCounts struct {
	Clients      int64 `json:"clients"`
	Employees    int64 `json:"employees"`
	Services     int64 `json:"services"`
	Appointments int64 `json:"appointments"`
}

type dashboardToday struct {
	Total      int64           `json:"total"`
	Scheduled  int64           `json:"scheduled"`
	Confirmed  int64           `json:"confirmed"`
	InProgress int64           `json:"in_progress"`
	Completed  int64           `json:"completed"`
	Cancelled  int64           `json:"cancelled"`
	Revenue    decimal.Decimal `json:"revenue"`
}

type statusSlice struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type topService struct {
	ServiceID uint   `json:"service_id"`
	Name      string `json:"name"`
	Count     int64  `json:"count"`
}

type employeePerformance struct {
	EmployeeID uint            `json:"employee_id"`
	Name       string          `json:"name"`
	Completed  int64           `json:"completed"`
	Revenue    decimal.Decimal `json:"revenue"`
	AvgRating  *float64        `json:"avg_rating"`
}

type dashboardPayload struct {
	Counts       dashboardCounts       `json:"counts"`
	Today        dashboardToday        `json:"today"`
	MonthRevenue decimal.Decimal       `json:"month_revenue"`
	Last30Days   []statusSlice         `json:"last_30_days"`
	TopServices  []topService          `json:"top_services"`
	Employees    []employeePerformance `json:"employees"`
	GeneratedAt  time.Time             `json:"generated_at"`
}

// --------- Handler ---------

func (h *DashboardHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	var company models.CompanyProfile
	tz := timezone.DefaultTimezone
	if err := h.db.First(&company).Error; err == nil && company.Timezone != "" {
		tz = company.Timezone
	}

	loc := timezone.Location(tz)
	now := time.Now().In(loc)
	today := timezone.StartOfDay(now)

	key := fmt.Sprintf("dashboard:%s", today.Format("2006-01-02"))

	var payload dashboardPayload
	if h.cache != nil && h.cache.GetJSON(ctx, key, &payload) {
		httpresp.OK(c, payload)
		return
	}

	payload, err := h.build(now, today)
	if err != nil {
		httperr.Internal(c, "failed_to_build_dashboard", err.Error())
		return
	}

	if h.cache != nil {
		h.cache.SetJSON(ctx, key, payload, dashboardCacheTTL)
	}

	httpresp.OK(c, payload)
}

func (h *DashboardHandler) build(now, today time.Time) (dashboardPayload, error) {
	payload := dashboardPayload{GeneratedAt: now}
	tomorrow := today.Add(24 * time.Hour)

	// ------------- Contagens gerais -------------

	h.db.Model(&models.Client{}).Where("is_active = ?", true).Count(&payload.Counts.Clients)
	h.db.Model(&models.Employee{}).Where("is_active = ?", true).Count(&payload.Counts.Employees)
	h.db.Model(&models.Service{}).Where("is_active = ?", true).Count(&payload.Counts.Services)
	h.db.Model(&models.Appointment{}).Where("is_active = ?", true).Count(&payload.Counts.Appointments)

	// ------------- Hoje -------------

	base := h.db.Model(&models.Appointment{}).
		Where("is_active = ? AND start_time >= ? AND start_time < ?", true, today, tomorrow)

	base.Session(&gorm.Session{}).Count(&payload.Today.Total)
	for status, dest := range map[string]*int64{
		models.StatusScheduled:  &payload.Today.Scheduled,
		models.StatusConfirmed:  &payload.Today.Confirmed,
		models.StatusInProgress: &payload.Today.InProgress,
		models.StatusCompleted:  &payload.Today.Completed,
		models.StatusCancelled:  &payload.Today.Cancelled,
	} {
		base.Session(&gorm.Session{}).Where("status = ?", status).Count(dest)
	}

	// ------------- Receita (hoje e mês) -------------

	var todayRevenue struct {
		Total decimal.Decimal
	}
	err := h.db.Model(&models.Appointment{}).
		Select("COALESCE(SUM(final_price), 0) AS total").
		Where("is_active = ? AND status = ? AND start_time >= ? AND start_time < ?",
			true, models.StatusCompleted, today, tomorrow).
		Scan(&todayRevenue).Error
	if err != nil {
		return payload, err
	}
	payload.Today.Revenue = todayRevenue.Total

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var revenue struct {
		Total decimal.Decimal
	}
	err = h.db.Model(&models.Appointment{}).
		Select("COALESCE(SUM(final_price), 0) AS total").
		Where("is_active = ? AND status = ? AND start_time >= ?",
			true, models.StatusCompleted, monthStart).
		Scan(&revenue).Error
	if err != nil {
		return payload, err
	}
	payload.MonthRevenue = revenue.Total

	// ------------- Últimos 30 dias por status -------------

	since := today.AddDate(0, 0, -30)
	err = h.db.Model(&models.Appointment{}).
		Select("status, COUNT(*) AS count").
		Where("is_active = ? AND start_time >= ?", true, since).
		Group("status").
		Order("count DESC").
		Scan(&payload.Last30Days).Error
	if err != nil {
		return payload, err
	}

	// ------------- Serviços mais agendados -------------

	err = h.db.Model(&models.Appointment{}).
		Select("appointments.service_id, services.name, COUNT(*) AS count").
		Joins("JOIN services ON services.id = appointments.service_id").
		Where("appointments.is_active = ? AND appointments.start_time >= ?", true, since).
		Group("appointments.service_id, services.name").
		Order("count DESC").
		Limit(5).
		Scan(&payload.TopServices).Error
	if err != nil {
		return payload, err
	}

	// ------------- Desempenho por funcionário -------------

	err = h.db.Model(&models.Appointment{}).
		Select(`appointments.employee_id,
			employees.name,
			COUNT(*) AS completed,
			COALESCE(SUM(appointments.final_price), 0) AS revenue,
			AVG(appointments.rating) AS avg_rating`).
		Joins("JOIN employees ON employees.id = appointments.employee_id").
		Where("appointments.is_active = ? AND appointments.status = ? AND appointments.start_time >= ?",
			true, models.StatusCompleted, since).
		Group("appointments.employee_id, employees.name").
		Order("revenue DESC").
		Scan(&payload.Employees).Error

	return payload, err
}
