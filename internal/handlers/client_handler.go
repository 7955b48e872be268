package handlers

import (
	"strconv"
	"strings"
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

type ClientHandler struct {
	db     *gorm.DB
	photos *storage.PhotoStorage
	audit  *audit.Dispatcher
}

func NewClientHandler(db *gorm.DB, photos *storage.PhotoStorage, auditDisp *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{db: db, photos: photos, audit: auditDisp}
}

// --------- Requests ---------

type clientPayload struct {
	ClientType string `json:"client_type"`
	Name       string `json:"name" binding:"required"`
	TradeName  string `json:"trade_name"`

	Email          string `json:"email"`
	Phone          string `json:"phone" binding:"required"`
	WhatsApp       string `json:"whatsapp"`
	SecondaryPhone string `json:"secondary_phone"`

	CPF  string `json:"cpf"`
	CNPJ string `json:"cnpj"`

	BirthDate *time.Time `json:"birth_date"`
	Gender    string     `json:"gender"`

	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`

	Status         string `json:"status"`
	Notes          string `json:"notes"`
	Preferences    string `json:"preferences"`
	ReferralSource string `json:"referral_source"`

	AcceptsMarketing *bool `json:"accepts_marketing"`
	AcceptsWhatsApp  *bool `json:"accepts_whatsapp"`
}

func (p *clientPayload) validate() (string, string) {
	if p.Phone != "" && !validators.IsPhoneValid(p.Phone) {
		return "invalid_phone", "telefone fora do formato esperado"
	}
	if p.WhatsApp != "" && !validators.IsPhoneValid(p.WhatsApp) {
		return "invalid_whatsapp", "whatsapp fora do formato esperado"
	}
	if p.CPF != "" && !validators.IsCPFValid(p.CPF) {
		return "invalid_cpf", "CPF deve estar no formato 000.000.000-00"
	}
	if p.CNPJ != "" && !validators.IsCNPJValid(p.CNPJ) {
		return "invalid_cnpj", "CNPJ deve estar no formato 00.000.000/0000-00"
	}
	if p.ZipCode != "" && !validators.IsZipCodeValid(p.ZipCode) {
		return "invalid_zip_code", "CEP deve estar no formato 00000-000"
	}
	return "", ""
}

func (p *clientPayload) apply(client *models.Client) {
	client.Name = p.Name
	client.TradeName = p.TradeName
	client.Email = strings.ToLower(strings.TrimSpace(p.Email))
	client.Phone = p.Phone
	client.WhatsApp = p.WhatsApp
	client.SecondaryPhone = p.SecondaryPhone
	client.CPF = p.CPF
	client.CNPJ = p.CNPJ
	client.BirthDate = p.BirthDate
	client.Gender = p.Gender
	client.Street = p.Street
	client.Number = p.Number
	client.Complement = p.Complement
	client.Neighborhood = p.Neighborhood
	client.City = p.City
	client.State = p.State
	client.ZipCode = p.ZipCode
	client.Notes = p.Notes
	client.Preferences = p.Preferences
	client.ReferralSource = p.ReferralSource

	if p.ClientType != "" {
		client.ClientType = p.ClientType
	}
	if p.Status != "" {
		client.Status = p.Status
	}
	if p.AcceptsMarketing != nil {
		client.AcceptsMarketing = *p.AcceptsMarketing
	}
	if p.AcceptsWhatsApp != nil {
		client.AcceptsWhatsApp = *p.AcceptsWhatsApp
	}
}

// --------- Handlers ---------

func (h *ClientHandler) List(c *gin.Context) {
	query := h.db.Model(&models.Client{}).Where("is_active = ?", true)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if clientType := c.Query("client_type"); clientType != "" {
		query = query.Where("client_type = ?", clientType)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"name ILIKE ? OR trade_name ILIKE ? OR phone LIKE ? OR cpf LIKE ? OR cnpj LIKE ?",
			like, like, like, like, like,
		)
	}

	var clients []models.Client
	if err := query.Order("name ASC").Find(&clients).Error; err != nil {
		httperr.Internal(c, "failed_to_list_clients", err.Error())
		return
	}

	httpresp.List(c, clients)
}

func (h *ClientHandler) Get(c *gin.Context) {
	client, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, client)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req clientPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if code, msg := req.validate(); code != "" {
		httperr.BadRequest(c, code, msg)
		return
	}

	client := models.Client{
		ClientType: models.ClientTypePerson,
		Status:     models.ClientStatusActive,
	}
	req.apply(&client)

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", err.Error())
		return
	}

	dispatchAudit(h.audit, c, "client_created", "client", client.ID)
	httpresp.Created(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	client, ok := h.find(c)
	if !ok {
		return
	}

	var req clientPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}
	if code, msg := req.validate(); code != "" {
		httperr.BadRequest(c, code, msg)
		return
	}

	req.apply(&client)

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", err.Error())
		return
	}

	dispatchAudit(h.audit, c, "client_updated", "client", client.ID)
	httpresp.OK(c, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	client, ok := h.find(c)
	if !ok {
		return
	}

	client.Remove(time.Now())
	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_client", err.Error())
		return
	}

	dispatchAudit(h.audit, c, "client_removed", "client", client.ID)
	c.Status(204)
}

// UploadPhoto recebe multipart/form-data com o campo "photo".
func (h *ClientHandler) UploadPhoto(c *gin.Context) {
	if h.photos == nil {
		httperr.BadRequest(c, "storage_disabled", "armazenamento de fotos não configurado")
		return
	}

	client, ok := h.find(c)
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

	url, err := h.photos.Upload(c.Request.Context(), src, "clients")
	if err != nil {
		httperr.Internal(c, "failed_to_upload_photo", err.Error())
		return
	}

	client.PhotoURL = url
	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", err.Error())
		return
	}

	httpresp.OK(c, gin.H{"photo_url": url})
}

func (h *ClientHandler) find(c *gin.Context) (models.Client, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "id deve ser numérico")
		return models.Client{}, false
	}

	var client models.Client
	if err := h.db.Where("is_active = ?", true).First(&client, id).Error; err != nil {
		httperr.NotFound(c, "client_not_found", "cliente não encontrado")
		return models.Client{}, false
	}
	return client, true
}
