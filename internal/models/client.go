package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	ClientTypePerson  = "pessoa_fisica"
	ClientTypeCompany = "pessoa_juridica"
)

const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
	ClientStatusBlocked  = "blocked"
	ClientStatusVIP      = "vip"
)

type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name       string `gorm:"size:100;not null" json:"name"`
	TradeName  string `gorm:"size:100" json:"trade_name"`
	ClientType string `gorm:"size:20;default:'pessoa_fisica'" json:"client_type"`

	Email          string `gorm:"size:100;index" json:"email"`
	Phone          string `gorm:"size:20;index" json:"phone"`
	WhatsApp       string `gorm:"size:20" json:"whatsapp"`
	SecondaryPhone string `gorm:"size:20" json:"secondary_phone"`

	CPF       string     `gorm:"size:14;index" json:"cpf"`
	CNPJ      string     `gorm:"size:18;index" json:"cnpj"`
	BirthDate *time.Time `json:"birth_date"`
	Gender    string     `gorm:"size:1" json:"gender"`

	Street       string `gorm:"size:200" json:"street"`
	Number       string `gorm:"size:10" json:"number"`
	Complement   string `gorm:"size:100" json:"complement"`
	Neighborhood string `gorm:"size:100" json:"neighborhood"`
	City         string `gorm:"size:100" json:"city"`
	State        string `gorm:"size:2" json:"state"`
	ZipCode      string `gorm:"size:9" json:"zip_code"`

	Status         string     `gorm:"size:20;default:'active';index" json:"status"`
	FirstServiceAt *time.Time `json:"first_service_at"`
	LastServiceAt  *time.Time `json:"last_service_at"`

	Notes            string `gorm:"type:text" json:"notes"`
	Preferences      string `gorm:"type:text" json:"preferences"`
	ReferralSource   string `gorm:"size:100" json:"referral_source"`
	AcceptsMarketing bool   `gorm:"default:true" json:"accepts_marketing"`
	AcceptsWhatsApp  bool   `gorm:"default:true" json:"accepts_whatsapp"`

	PhotoURL string `gorm:"size:255" json:"photo_url"`

	Timestamps
	SoftDelete
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.FirstServiceAt == nil {
		now := time.Now()
		c.FirstServiceAt = &now
	}
	return nil
}

// DisplayName prefere o nome fantasia para pessoa jurídica.
func (c *Client) DisplayName() string {
	if c.TradeName != "" && c.ClientType == ClientTypeCompany {
		return c.TradeName + " (" + c.Name + ")"
	}
	return c.Name
}

// MainDocument retorna CPF ou CNPJ conforme o tipo de cliente.
func (c *Client) MainDocument() string {
	if c.ClientType == ClientTypePerson {
		return c.CPF
	}
	return c.CNPJ
}

func (c *Client) FullAddress() string {
	var parts []string

	if c.Street != "" {
		base := c.Street
		if c.Number != "" {
			base += ", " + c.Number
		}
		if c.Complement != "" {
			base += ", " + c.Complement
		}
		parts = append(parts, base)
	}

	for _, p := range []string{c.Neighborhood, c.City, c.State, c.ZipCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return strings.Join(parts, " - ")
}

func (c *Client) Age(now time.Time) int {
	if c.BirthDate == nil {
		return 0
	}

	years := now.Year() - c.BirthDate.Year()
	if now.Month() < c.BirthDate.Month() ||
		(now.Month() == c.BirthDate.Month() && now.Day() < c.BirthDate.Day()) {
		years--
	}
	return years
}

func (c *Client) IsVIP() bool {
	return c.Status == ClientStatusVIP
}

func (c *Client) CanBeBooked() bool {
	return c.IsActive && c.Status != ClientStatusBlocked
}
