package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jtsistemas/agenda-api/internal/audit"
	"github.com/jtsistemas/agenda-api/internal/httperr"
	"github.com/jtsistemas/agenda-api/internal/httpresp"
	"github.com/jtsistemas/agenda-api/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, auditDisp *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: auditDisp}
}

// --------- Requests ---------

type servicePayload struct {
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	ShortDescription string `json:"short_description"`
	CategoryID       uint   `json:"category_id" binding:"required"`

	Price          decimal.Decimal  `json:"price" binding:"required"`
	PromoPrice     *decimal.Decimal `json:"promo_price"`
	PromoStartDate *time.Time       `json:"promo_start_date"`
	PromoEndDate   *time.Time       `json:"promo_end_date"`

	Duration     int    `json:"duration" binding:"required,min=1"`
	DurationUnit string `json:"duration_unit"`
	BufferAfter  int    `json:"buffer_after"`

	Status          string `json:"status"`
	OnlineBookable  *bool  `json:"online_bookable"`
	Featured        *bool  `json:"featured"`
	SortOrder       int    `json:"sort_order"`
	MaxPerDay       *int   `json:"max_per_day"`
	Restrictions    string `json:"restrictions"`
	PreparationNote string `json:"preparation_note"`
}

func (p *servicePayload) validate() (string, string) {
	if p.Price.IsNegative() {
		return "invalid_price", "preço não pode ser negativo"
	}
	if p.PromoPrice != nil {
		if p.PromoPrice.IsNegative() {
			return "invalid_promo_price", "preço promocional não pode ser negativo"
		}
		if p.PromoPrice.GreaterThanOrEqual(p.Price) {
			return "invalid_promo_price", "preço promocional deve ser menor que o preço base"
		}
	}
	if p.PromoStartDate != nil && p.PromoEndDate != nil &&
		p.PromoEndDate.Before(*p.PromoStartDate) {
		return "invalid_promo_window", "fim da promoção antes do início"
	}
	switch p.DurationUnit {
	case "", models.DurationUnitMinutes, models.DurationUnitHours, models.DurationUnitDays:
	default:
		return "invalid_duration_unit", "unidade de duração desconhecida"
	}
	return "", ""
}

func (p *servicePayload) apply(s *models.Service) {
	s.Name = p.Name
	s.Description = p.Description
	s.ShortDescription = p.ShortDescription
	s.CategoryID = p.CategoryID
	s.Price = p.Price
	s.PromoPrice = p.PromoPrice
	s.PromoStartDate = p.PromoStartDate
	s.PromoEndDate = p.PromoEndDate
	s.Duration = p.Duration
	s.BufferAfter = p.BufferAfter
	s.SortOrder = p.SortOrder
	s.MaxPerDay = p.MaxPerDay
	s.Restrictions = p.Restrictions
	s.PreparationNote = p.PreparationNote

	if p.DurationUnit != "" {
		s.DurationUnit = p.DurationUnit
	}
	if p.Status != "" {
		s.Status = p.Status
	}
	if p.OnlineBookable != nil {
		s.OnlineBookable = *p.OnlineBookable
	}
	if p.Featured != nil {
		s.Featured = *p.Featured
	}
}

// serviceView acrescenta os campos derivados do preço vigente.
type serviceView struct {
	models.Service
	CurrentPrice    decimal.Decimal `json:"current_price"`
	PromotionActive bool            `json:"promotion_active"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

func newServiceView(s models.Service, now time.Time) serviceView {
	return serviceView{
		Service:         s,
		CurrentPrice:    s.CurrentPrice(now),
		PromotionActive: s.PromotionActive(now),
		DiscountPercent: s.DiscountPercent(now),
	}
}

// --------- Services ---------

func (h *ServiceHandler) List(c *gin.Context) {
	query := h.db.Model(&models.Service{}).
		Preload("Category").
		Where("is_active = ?", true)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if c.Query("featured") == "true" {
		query = query.Where("featured = ?", true)
	}

	var services []models.Service
	if err := query.Order("sort_order ASC, name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", err.Error())
		return
	}

	now := time.Now()
	views := make([]serviceView, 0, len(services))
	for _, s := range services {
		views = append(views, newServiceView(s, now))
	}

	httpresp.List(c, views)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	service, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, newServiceView(service, time.Now()))
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req servicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if code, msg := req.validate(); code != "" {
		httperr.BadRequest(c, code, msg)
		return
	}

	var category models.ServiceCategory
	if err := h.db.Where("is_active = ?", true).First(&category, req.CategoryID).Error; err != nil {
		httperr.BadRequest(c, "category_not_found", "categoria inexistente")
		return
	}

	service := models.Service{
		DurationUnit: models.DurationUnitMinutes,
		Status:       models.ServiceStatusActive,
	}
	req.apply(&service)

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", err.Error())
		return
	}

	service.Category = category
	dispatchAudit(h.audit, c, "service_created", "service", service.ID)
	httpresp.Created(c, newServiceView(service, time.Now()))
}

func (h *ServiceHandler) Update(c *gin.Context) {
	service, ok := h.find(c)
	if !ok {
		return
	}

	var req servicePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if code, msg := req.validate(); code != "" {
		httperr.BadRequest(c, code, msg)
		return
	}

	req.apply(&service)

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", err.Error())
		return
	}

	dispatchAudit(h.audit, c, "service_updated", "service", service.ID)
	httpresp.OK(c, newServiceView(service, time.Now()))
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	service, ok := h.find(c)
	if !ok {
		return
	}

	service.Remove(time.Now())
	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", err.Error())
		return
	}

	dispatchAudit(h.audit, c, "service_removed", "service", service.ID)
	c.Status(204)
}

func (h *ServiceHandler) find(c *gin.Context) (models.Service, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id deve ser numérico")
		return models.Service{}, false
	}

	var service models.Service
	err = h.db.Preload("Category").
		Where("is_active = ?", true).
		First(&service, id).Error
	if err != nil {
		httperr.NotFound(c, "service_not_found", "serviço não encontrado")
		return models.Service{}, false
	}
	return service, true
}

// --------- Categories ---------

type ServiceCategoryHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceCategoryHandler(db *gorm.DB, auditDisp *audit.Dispatcher) *ServiceCategoryHandler {
	return &ServiceCategoryHandler{db: db, audit: auditDisp}
}

type categoryPayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Color       string `json:"color"`
	SortOrder   int    `json:"sort_order"`
}

func (h *ServiceCategoryHandler) List(c *gin.Context) {
	var categories []models.ServiceCategory
	err := h.db.Where("is_active = ?", true).
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_categories", err.Error())
		return
	}
	httpresp.List(c, categories)
}

func (h *ServiceCategoryHandler) Create(c *gin.Context) {
	var req categoryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	category := models.ServiceCategory{
		Name:        req.Name,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	}
	if req.Color != "" {
		category.Color = req.Color
	}

	if err := h.db.Create(&category).Error; err != nil {
		httperr.Internal(c, "failed_to_create_category", err.Error())
		return
	}

	dispatchAudit(h.audit, c, "category_created", "service_category", category.ID)
	httpresp.Created(c, category)
}

func (h *ServiceCategoryHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id deve ser numérico")
		return
	}

	var category models.ServiceCategory
	if err := h.db.Where("is_active = ?", true).First(&category, id).Error; err != nil {
		httperr.NotFound(c, "category_not_found", "categoria não encontrada")
		return
	}

	var req categoryPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	category.Name = req.Name
	category.Description = req.Description
	category.SortOrder = req.SortOrder
	if req.Color != "" {
		category.Color = req.Color
	}

	if err := h.db.Save(&category).Error; err != nil {
		httperr.Internal(c, "failed_to_update_category", err.Error())
		return
	}

	dispatchAudit(h.audit, c, "category_updated", "service_category", category.ID)
	httpresp.OK(c, category)
}

func (h *ServiceCategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id deve ser numérico")
		return
	}

	var category models.ServiceCategory
	if err := h.db.Where("is_active = ?", true).First(&category, id).Error; err != nil {
		httperr.NotFound(c, "category_not_found", "categoria não encontrada")
		return
	}

	var used int64
	h.db.Model(&models.Service{}).
		Where("category_id = ? AND is_active = ?", category.ID, true).
		Count(&used)
	if used > 0 {
		httperr.Conflict(c, "category_in_use", "há serviços ativos nesta categoria")
		return
	}

	category.Remove(time.Now())
	if err := h.db.Save(&category).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_category", err.Error())
		return
	}

	dispatchAudit(h.audit, c, "category_removed", "service_category", category.ID)
	c.Status(204)
}
