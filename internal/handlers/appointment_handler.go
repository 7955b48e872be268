package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jtsistemas/agenda-api/internal/dto"
	"github.com/jtsistemas/agenda-api/internal/httperr"
	"github.com/jtsistemas/agenda-api/internal/httpresp"
	"github.com/jtsistemas/agenda-api/internal/middleware"
	"github.com/jtsistemas/agenda-api/internal/models"
	usecase "github.com/jtsistemas/agenda-api/internal/usecase/appointment"
)

// AppointmentHandler traduz HTTP para os casos de uso do agendamento.
type AppointmentHandler struct {
	db *gorm.DB

	create     *usecase.CreateAppointment
	confirm    *usecase.ConfirmAppointment
	cancel     *usecase.CancelAppointment
	start      *usecase.StartAppointment
	complete   *usecase.CompleteAppointment
	reschedule *usecase.RescheduleAppointment
	rate       *usecase.RateAppointment
	markPaid   *usecase.MarkAppointmentPaid
	listByDate *usecase.ListAppointmentsByDate
	listMonth  *usecase.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	db *gorm.DB,
	create *usecase.CreateAppointment,
	confirm *usecase.ConfirmAppointment,
	cancel *usecase.CancelAppointment,
	start *usecase.StartAppointment,
	complete *usecase.CompleteAppointment,
	reschedule *usecase.RescheduleAppointment,
	rate *usecase.RateAppointment,
	markPaid *usecase.MarkAppointmentPaid,
	listByDate *usecase.ListAppointmentsByDate,
	listMonth *usecase.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:         db,
		create:     create,
		confirm:    confirm,
		cancel:     cancel,
		start:      start,
		complete:   complete,
		reschedule: reschedule,
		rate:       rate,
		markPaid:   markPaid,
		listByDate: listByDate,
		listMonth:  listMonth,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	ClientID   uint  `json:"client_id" binding:"required"`
	EmployeeID uint  `json:"employee_id" binding:"required"`
	ServiceID  uint  `json:"service_id" binding:"required"`
	PackageID  *uint `json:"package_id"`

	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`

	Origin        string          `json:"origin"`
	Discount      decimal.Decimal `json:"discount"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes"`
	ClientNotes   string          `json:"client_notes"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CompleteAppointmentRequest struct {
	EmployeeNotes string `json:"employee_notes"`
}

type RescheduleAppointmentRequest struct {
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Reason string `json:"reason"`
}

type RateAppointmentRequest struct {
	Score   int    `json:"score" binding:"required"`
	Comment string `json:"comment"`
}

type MarkPaidRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// --------- Lifecycle ---------

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), usecase.CreateAppointmentInput{
		ClientID:      req.ClientID,
		EmployeeID:    req.EmployeeID,
		ServiceID:     req.ServiceID,
		PackageID:     req.PackageID,
		Date:          req.Date,
		Time:          req.Time,
		Origin:        req.Origin,
		Discount:      req.Discount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		ClientNotes:   req.ClientNotes,
		UserID:        c.GetUint(middleware.ContextUserID),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	ap, err := h.confirm.Execute(c.Request.Context(), id, c.GetUint(middleware.ContextUserID))
	if err != nil {
		h.writeError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), id, req.Reason, c.GetUint(middleware.ContextUserID))
	if err != nil {
		h.writeError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Start(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	ap, err := h.start.Execute(c.Request.Context(), id, c.GetUint(middleware.ContextUserID))
	if err != nil {
		h.writeError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req CompleteAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", err.Error())
			return
		}
	}

	ap, err := h.complete.Execute(c.Request.Context(), id, req.EmployeeNotes, c.GetUint(middleware.ContextUserID))
	if err != nil {
		h.writeError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), usecase.RescheduleAppointmentInput{
		AppointmentID: id,
		Date:          req.Date,
		Time:          req.Time,
		Reason:        req.Reason,
		UserID:        c.GetUint(middleware.ContextUserID),
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Rate(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req RateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ap, err := h.rate.Execute(c.Request.Context(), id, req.Score, req.Comment, c.GetUint(middleware.ContextUserID))
	if err != nil {
		h.writeError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) MarkPaid(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var req MarkPaidRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", err.Error())
			return
		}
	}

	ap, err := h.markPaid.Execute(c.Request.Context(), id, req.PaymentMethod, c.GetUint(middleware.ContextUserID))
	if err != nil {
		h.writeError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// --------- Queries ---------

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var ap models.Appointment
	err := h.db.
		Preload("Client").
		Preload("Employee").
		Preload("Service").
		Preload("StatusHistory").
		Where("is_active = ?", true).
		First(&ap, id).Error
	if err != nil {
		httperr.NotFound(c, "appointment_not_found", "agendamento não encontrado")
		return
	}

	httpresp.OK(c, ap)
}

// ListByDate usa ?date=YYYY-MM-DD (padrão: hoje) e ?employee_id opcional.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")

	var employeeID *uint
	if raw := c.Query("employee_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httperr.BadRequest(c, "invalid_employee_id", "employee_id deve ser numérico")
			return
		}
		id := uint(parsed)
		employeeID = &id
	}

	appointments, err := h.listByDate.Execute(c.Request.Context(), date, employeeID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(appointments))
}

// ListByMonth usa ?year= e ?month= obrigatórios.
func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "year deve ser numérico")
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "month deve ser numérico")
		return
	}

	var employeeID *uint
	if raw := c.Query("employee_id"); raw != "" {
		parsed, parseErr := strconv.ParseUint(raw, 10, 32)
		if parseErr != nil {
			httperr.BadRequest(c, "invalid_employee_id", "employee_id deve ser numérico")
			return
		}
		id := uint(parsed)
		employeeID = &id
	}

	appointments, err := h.listMonth.Execute(c.Request.Context(), year, month, employeeID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	httpresp.List(c, dto.FromAppointments(appointments))
}

func (h *AppointmentHandler) History(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var changes []models.StatusChange
	err := h.db.Where("appointment_id = ?", id).
		Order("changed_at ASC").
		Find(&changes).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_history", err.Error())
		return
	}

	httpresp.List(c, changes)
}

// --------- Helpers ---------

func (h *AppointmentHandler) paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id deve ser numérico")
		return 0, false
	}
	return uint(id), true
}

// writeError mapeia BusinessError para 4xx; o resto é 500.
func (h *AppointmentHandler) writeError(c *gin.Context, err error) {
	if code, ok := httperr.AsBusiness(err); ok {
		status := http.StatusBadRequest
		switch code {
		case "appointment_not_found", "client_not_found",
			"employee_not_found", "service_not_found", "package_not_found":
			status = http.StatusNotFound
		case "invalid_state":
			status = http.StatusConflict
		}
		httperr.Write(c, status, code, err.Error())
		return
	}
	httperr.Internal(c, "internal_error", err.Error())
}
