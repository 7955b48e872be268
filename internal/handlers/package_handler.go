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

type PackageHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewPackageHandler(db *gorm.DB, auditDisp *audit.Dispatcher) *PackageHandler {
	return &PackageHandler{db: db, audit: auditDisp}
}

// --------- Requests ---------

type packageItemPayload struct {
	ServiceID uint `json:"service_id" binding:"required"`
	Quantity  int  `json:"quantity"`
	SortOrder int  `json:"sort_order"`
}

type packagePayload struct {
	Name         string               `json:"name" binding:"required"`
	Description  string               `json:"description"`
	TotalPrice   decimal.Decimal      `json:"total_price" binding:"required"`
	ValidityDays int                  `json:"validity_days"`
	Items        []packageItemPayload `json:"items" binding:"required,min=1,dive"`
}

// packageView expõe o desconto derivado junto com o pacote.
type packageView struct {
	models.ServicePackage
	IndividualTotal     decimal.Decimal `json:"individual_total"`
	DiscountAmount      decimal.Decimal `json:"discount_amount"`
	RealDiscountPercent decimal.Decimal `json:"real_discount_percent"`
	EstimatedDuration   int             `json:"estimated_duration_minutes"`
}

func newPackageView(p models.ServicePackage, now time.Time) packageView {
	return packageView{
		ServicePackage:      p,
		IndividualTotal:     p.IndividualTotal(now),
		DiscountAmount:      p.DiscountAmount(now),
		RealDiscountPercent: p.RealDiscountPercent(now),
		EstimatedDuration:   p.EstimatedDurationMinutes(),
	}
}

// --------- Handlers ---------

func (h *PackageHandler) List(c *gin.Context) {
	var packages []models.ServicePackage
	err := h.db.Preload("Items.Service").
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&packages).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_packages", err.Error())
		return
	}

	now := time.Now()
	views := make([]packageView, 0, len(packages))
	for _, p := range packages {
		views = append(views, newPackageView(p, now))
	}

	httpresp.List(c, views)
}

func (h *PackageHandler) Get(c *gin.Context) {
	pkg, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, newPackageView(pkg, time.Now()))
}

func (h *PackageHandler) Create(c *gin.Context) {
	var req packagePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.TotalPrice.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "preço não pode ser negativo")
		return
	}

	items, code, msg := h.buildItems(req.Items)
	if code != "" {
		httperr.BadRequest(c, code, msg)
		return
	}

	pkg := models.ServicePackage{
		Name:         req.Name,
		Description:  req.Description,
		TotalPrice:   req.TotalPrice,
		ValidityDays: req.ValidityDays,
		Items:        items,
	}
	if pkg.ValidityDays == 0 {
		pkg.ValidityDays = 365
	}

	if err := h.db.Create(&pkg).Error; err != nil {
		httperr.Internal(c, "failed_to_create_package", err.Error())
		return
	}

	if err := h.db.Preload("Items.Service").First(&pkg, pkg.ID).Error; err != nil {
		httperr.Internal(c, "failed_to_load_package", err.Error())
		return
	}

	dispatchAudit(h.audit, c, "package_created", "service_package", pkg.ID)
	httpresp.Created(c, newPackageView(pkg, time.Now()))
}

func (h *PackageHandler) Update(c *gin.Context) {
	pkg, ok := h.find(c)
	if !ok {
		return
	}

	var req packagePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if req.TotalPrice.IsNegative() {
		httperr.BadRequest(c, "invalid_price", "preço não pode ser negativo")
		return
	}

	items, code, msg := h.buildItems(req.Items)
	if code != "" {
		httperr.BadRequest(c, code, msg)
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		pkg.Name = req.Name
		pkg.Description = req.Description
		pkg.TotalPrice = req.TotalPrice
		if req.ValidityDays > 0 {
			pkg.ValidityDays = req.ValidityDays
		}

		if err := tx.Where("service_package_id = ?", pkg.ID).
			Delete(&models.PackageItem{}).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].ServicePackageID = pkg.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		pkg.Items = nil
		return tx.Save(&pkg).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_package", err.Error())
		return
	}

	if err := h.db.Preload("Items.Service").First(&pkg, pkg.ID).Error; err != nil {
		httperr.Internal(c, "failed_to_load_package", err.Error())
		return
	}

	dispatchAudit(h.audit, c, "package_updated", "service_package", pkg.ID)
	httpresp.OK(c, newPackageView(pkg, time.Now()))
}

func (h *PackageHandler) Delete(c *gin.Context) {
	pkg, ok := h.find(c)
	if !ok {
		return
	}

	pkg.Remove(time.Now())
	pkg.Items = nil
	if err := h.db.Save(&pkg).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_package", err.Error())
		return
	}

	dispatchAudit(h.audit, c, "package_removed", "service_package", pkg.ID)
	c.Status(204)
}

func (h *PackageHandler) buildItems(payload []packageItemPayload) ([]models.PackageItem, string, string) {
	items := make([]models.PackageItem, 0, len(payload))
	seen := make(map[uint]bool, len(payload))

	for _, item := range payload {
		if seen[item.ServiceID] {
			return nil, "duplicated_service", "serviço repetido no pacote"
		}
		seen[item.ServiceID] = true

		var service models.Service
		if err := h.db.Where("is_active = ?", true).First(&service, item.ServiceID).Error; err != nil {
			return nil, "service_not_found", "serviço inexistente no pacote"
		}

		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		items = append(items, models.PackageItem{
			ServiceID: item.ServiceID,
			Quantity:  quantity,
			SortOrder: item.SortOrder,
		})
	}

	return items, "", ""
}

func (h *PackageHandler) find(c *gin.Context) (models.ServicePackage, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id deve ser numérico")
		return models.ServicePackage{}, false
	}

	var pkg models.ServicePackage
	err = h.db.Preload("Items.Service").
		Where("is_active = ?", true).
		First(&pkg, id).Error
	if err != nil {
		httperr.NotFound(c, "package_not_found", "pacote não encontrado")
		return models.ServicePackage{}, false
	}
	return pkg, true
}
