package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jtsistemas/agenda-api/internal/audit"
	"github.com/jtsistemas/agenda-api/internal/httperr"
	"github.com/jtsistemas/agenda-api/internal/httpresp"
	"github.com/jtsistemas/agenda-api/internal/models"
	"github.com/jtsistemas/agenda-api/internal/storage"
	"github.com/jtsistemas/agenda-api/internal/validators"
)

type EmployeeHandler struct {
	db     *gorm.DB
	photos *storage.PhotoStorage
	audit  *audit.Dispatcher
}

func NewEmployeeHandler(db *gorm.DB, photos *storage.PhotoStorage, auditDisp *audit.Dispatcher) *EmployeeHandler {
	return &EmployeeHandler{db: db, photos: photos, audit: auditDisp}
}

// --------- Requests ---------

type employeePayload struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone" binding:"required"`
	WhatsApp string `json:"whatsapp"`

	CPF       string    `json:"cpf" binding:"required"`
	BirthDate time.Time `json:"birth_date" binding:"required"`

	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`

	PositionID    uint       `json:"position_id" binding:"required"`
	Registration  string     `json:"registration"`
	AdmissionDate time.Time  `json:"admission_date" binding:"required"`
	DismissalDate *time.Time `json:"dismissal_date"`

	Status      string `json:"status"`
	Shift       string `json:"shift"`
	Specialties string `json:"specialties"`
	Notes       string `json:"notes"`
}

func (p *employeePayload) validate() (string, string) {
	if !validators.IsCPFValid(p.CPF) {
		return "invalid_cpf", "CPF deve estar no formato 000.000.000-00"
	}
	if p.Phone != "" && !validators.IsPhoneValid(p.Phone) {
		return "invalid_phone", "telefone fora do formato esperado"
	}
	if p.ZipCode != "" && !validators.IsZipCodeValid(p.ZipCode) {
		return "invalid_zip_code", "CEP deve estar no formato 00000-000"
	}
	return "", ""
}

func (p *employeePayload) apply(e *models.Employee) {
	e.Name = p.Name
	e.Email = p.Email
	e.Phone = p.Phone
	e.WhatsApp = p.WhatsApp
	e.CPF = p.CPF
	e.BirthDate = p.BirthDate
	e.Street = p.Street
	e.City = p.City
	e.State = p.State
	e.ZipCode = p.ZipCode
	e.PositionID = p.PositionID
	e.AdmissionDate = p.AdmissionDate
	e.DismissalDate = p.DismissalDate
	e.Specialties = p.Specialties
	e.Notes = p.Notes

	if p.Registration != "" {
		e.Registration = p.Registration
	}
	if p.Status != "" {
		e.Status = p.Status
	}
	if p.Shift != "" {
		e.Shift = p.Shift
	}
}

// --------- Employees ---------

func (h *EmployeeHandler) List(c *gin.Context) {
	query := h.db.Model(&models.Employee{}).
		Preload("Position").
		Where("is_active = ?", true)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if positionID := c.Query("position_id"); positionID != "" {
		query = query.Where("position_id = ?", positionID)
	}

	var employees []models.Employee
	if err := query.Order("name ASC").Find(&employees).Error; err != nil {
		httperr.Internal(c, "failed_to_list_employees", err.Error())
		return
	}

	httpresp.List(c, employees)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	employee, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, employee)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req employeePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if code, msg := req.validate(); code != "" {
		httperr.BadRequest(c, code, msg)
		return
	}

	var position models.Position
	if err := h.db.Where("is_active = ?", true).First(&position, req.PositionID).Error; err != nil {
		httperr.BadRequest(c, "position_not_found", "cargo inexistente")
		return
	}

	employee := models.Employee{Status: models.EmployeeStatusActive}
	req.apply(&employee)

	if err := h.db.Create(&employee).Error; err != nil {
		httperr.Internal(c, "failed_to_create_employee", err.Error())
		return
	}

	employee.Position = position
	dispatchAudit(h.audit, c, "employee_created", "employee", employee.ID)
	httpresp.Created(c, employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	employee, ok := h.find(c)
	if !ok {
		return
	}

	var req employeePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if code, msg := req.validate(); code != "" {
		httperr.BadRequest(c, code, msg)
		return
	}

	req.apply(&employee)

	if err := h.db.Save(&employee).Error; err != nil {
		httperr.Internal(c, "failed_to_update_employee", err.Error())
		return
	}

	dispatchAudit(h.audit, c, "employee_updated", "employee", employee.ID)
	httpresp.OK(c, employee)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	employee, ok := h.find(c)
	if !ok {
		return
	}

	employee.Remove(time.Now())
	if err := h.db.Save(&employee).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_employee", err.Error())
		return
	}

	dispatchAudit(h.audit, c, "employee_removed", "employee", employee.ID)
	c.Status(204)
}

func (h *EmployeeHandler) UploadPhoto(c *gin.Context) {
	if h.photos == nil {
		httperr.BadRequest(c, "storage_disabled", "armazenamento de fotos não configurado")
		return
	}

	employee, ok := h.find(c)
	if !ok {
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "envie o arquivo no campo 'photo'")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_photo", err.Error())
		return
	}
	defer src.Close()

	url, err := h.photos.Upload(c.Request.Context(), src, "employees")
	if err != nil {
		httperr.Internal(c, "failed_to_upload_photo", err.Error())
		return
	}

	employee.PhotoURL = url
	if err := h.db.Save(&employee).Error; err != nil {
		httperr.Internal(c, "failed_to_update_employee", err.Error())
		return
	}

	httpresp.OK(c, gin.H{"photo_url": url})
}

func (h *EmployeeHandler) find(c *gin.Context) (models.Employee, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id deve ser numérico")
		return models.Employee{}, false
	}

	var employee models.Employee
	err = h.db.Preload("Position").
		Where("is_active = ?", true).
		First(&employee, id).Error
	if err != nil {
		httperr.NotFound(c, "employee_not_found", "funcionário não encontrado")
		return models.Employee{}, false
	}
	return employee, true
}

// --------- Positions ---------

type PositionHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewPositionHandler(db *gorm.DB, auditDisp *audit.Dispatcher) *PositionHandler {
	return &PositionHandler{db: db, audit: auditDisp}
}

type positionPayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Level       int    `json:"level"`
}

func (h *PositionHandler) List(c *gin.Context) {
	var positions []models.Position
	err := h.db.Where("is_active = ?", true).
		Order("level DESC, name ASC").
		Find(&positions).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_positions", err.Error())
		return
	}
	httpresp.List(c, positions)
}

func (h *PositionHandler) Create(c *gin.Context) {
	var req positionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	position := models.Position{
		Name:        req.Name,
		Description: req.Description,
		Level:       req.Level,
	}
	if position.Level == 0 {
		position.Level = 1
	}

	if err := h.db.Create(&position).Error; err != nil {
		httperr.Internal(c, "failed_to_create_position", err.Error())
		return
	}

	dispatchAudit(h.audit, c, "position_created", "position", position.ID)
	httpresp.Created(c, position)
}

func (h *PositionHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id deve ser numérico")
		return
	}

	var position models.Position
	if err := h.db.Where("is_active = ?", true).First(&position, id).Error; err != nil {
		httperr.NotFound(c, "position_not_found", "cargo não encontrado")
		return
	}

	var req positionPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	position.Name = req.Name
	position.Description = req.Description
	if req.Level != 0 {
		position.Level = req.Level
	}

	if err := h.db.Save(&position).Error; err != nil {
		httperr.Internal(c, "failed_to_update_position", err.Error())
		return
	}

	dispatchAudit(h.audit, c, "position_updated", "position", position.ID)
	httpresp.OK(c, position)
}

func (h *PositionHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id deve ser numérico")
		return
	}

	var position models.Position
	if err := h.db.Where("is_active = ?", true).First(&position, id).Error; err != nil {
		httperr.NotFound(c, "position_not_found", "cargo não encontrado")
		return
	}

	var used int64
	h.db.Model(&models.Employee{}).
		Where("position_id = ? AND is_active = ?", position.ID, true).
		Count(&used)
	if used > 0 {
		httperr.Conflict(c, "position_in_use", "há funcionários ativos neste cargo")
		return
	}

	position.Remove(time.Now())
	if err := h.db.Save(&position).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_position", err.Error())
		return
	}

	dispatchAudit(h.audit, c, "position_removed", "position", position.ID)
	c.Status(204)
}
