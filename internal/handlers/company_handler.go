package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jtsistemas/agenda-api/internal/audit"
	"github.com/jtsistemas/agenda-api/internal/httperr"
	"github.com/jtsistemas/agenda-api/internal/httpresp"
	"github.com/jtsistemas/agenda-api/internal/models"
	"github.com/jtsistemas/agenda-api/internal/timezone"
)

type CompanyHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCompanyHandler(db *gorm.DB, auditDisp *audit.Dispatcher) *CompanyHandler {
	return &CompanyHandler{db: db, audit: auditDisp}
}

type UpdateCompanyRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

func (h *CompanyHandler) Get(c *gin.Context) {
	var company models.CompanyProfile
	if err := h.db.First(&company).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "perfil da empresa não cadastrado")
		return
	}
	httpresp.OK(c, company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	var req UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var company models.CompanyProfile
	if err := h.db.First(&company).Error; err != nil {
		httperr.NotFound(c, "company_not_found", "perfil da empresa não cadastrado")
		return
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "fuso horário desconhecido")
			return
		}
		company.Timezone = *req.Timezone
	}
	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "antecedência mínima não pode ser negativa")
			return
		}
		company.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&company).Error; err != nil {
		httperr.Internal(c, "failed_to_update_company", err.Error())
		return
	}

	dispatchAudit(h.audit, c, "company_updated", "company_profile", company.ID)
	httpresp.OK(c, company)
}
