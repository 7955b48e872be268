package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	notif "github.com/jtsistemas/agenda-api/internal/domain/notification"
	"github.com/jtsistemas/agenda-api/internal/httperr"
	"github.com/jtsistemas/agenda-api/internal/httpresp"
	"github.com/jtsistemas/agenda-api/internal/models"
)

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

type CreateNotificationRequest struct {
	AppointmentID uint       `json:"appointment_id" binding:"required"`
	Type          string     `json:"type" binding:"required"`
	Channel       string     `json:"channel" binding:"required"`
	Recipient     string     `json:"recipient" binding:"required"`
	Subject       string     `json:"subject"`
	Message       string     `json:"message" binding:"required"`
	ScheduledFor  *time.Time `json:"scheduled_for"`
}

type NotificationErrorRequest struct {
	Detail string `json:"detail" binding:"required"`
}

func (h *NotificationHandler) List(c *gin.Context) {
	query := h.db.Model(&models.Notification{}).Where("is_active = ?", true)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if channel := c.Query("channel"); channel != "" {
		query = query.Where("channel = ?", channel)
	}
	if appointmentID := c.Query("appointment_id"); appointmentID != "" {
		query = query.Where("appointment_id = ?", appointmentID)
	}

	var notifications []models.Notification
	if err := query.Order("scheduled_for DESC").Limit(200).Find(&notifications).Error; err != nil {
		httperr.Internal(c, "failed_to_list_notifications", err.Error())
		return
	}

	httpresp.List(c, notifications)
}

func (h *NotificationHandler) Create(c *gin.Context) {
	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var ap models.Appointment
	if err := h.db.Where("is_active = ?", true).First(&ap, req.AppointmentID).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "agendamento não encontrado")
		return
	}

	scheduledFor := time.Now()
	if req.ScheduledFor != nil {
		scheduledFor = *req.ScheduledFor
	}

	notification := models.Notification{
		AppointmentID: ap.ID,
		ClientID:      ap.ClientID,
		Type:          req.Type,
		Channel:       req.Channel,
		Recipient:     req.Recipient,
		Subject:       req.Subject,
		Message:       req.Message,
		Status:        models.NotificationPending,
		ScheduledFor:  scheduledFor,
	}

	if err := h.db.Create(&notification).Error; err != nil {
		httperr.Internal(c, "failed_to_create_notification", err.Error())
		return
	}

	httpresp.Created(c, notification)
}

func (h *NotificationHandler) MarkSent(c *gin.Context) {
	h.transition(c, func(n *models.Notification) {
		notif.MarkSent(n, time.Now())
	})
}

func (h *NotificationHandler) MarkDelivered(c *gin.Context) {
	h.transition(c, func(n *models.Notification) {
		notif.MarkDelivered(n, time.Now())
	})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	h.transition(c, func(n *models.Notification) {
		notif.MarkRead(n, time.Now())
	})
}

func (h *NotificationHandler) MarkError(c *gin.Context) {
	var req NotificationErrorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	h.transition(c, func(n *models.Notification) {
		notif.MarkError(n, req.Detail)
	})
}

func (h *NotificationHandler) transition(c *gin.Context, apply func(*models.Notification)) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id deve ser numérico")
		return
	}

	var notification models.Notification
	if err := h.db.Where("is_active = ?", true).First(&notification, id).Error; err != nil {
		httperr.NotFound(c, "notification_not_found", "notificação não encontrada")
		return
	}

	apply(&notification)

	if err := h.db.Save(&notification).Error; err != nil {
		httperr.Internal(c, "failed_to_update_notification", err.Error())
		return
	}

	httpresp.OK(c, notification)
}
