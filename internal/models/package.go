package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServicePackage agrupa serviços com preço fechado.
type ServicePackage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	TotalPrice   decimal.Decimal `gorm:"type:numeric(10,2)" json:"total_price"`
	ValidityDays int             `gorm:"default:365" json:"validity_days"`

	Items []PackageItem `gorm:"constraint:OnDelete:CASCADE;" json:"items"`

	Timestamps
	SoftDelete
}

type PackageItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServicePackageID uint `gorm:"index:idx_package_service,unique" json:"service_package_id"`

	ServiceID uint    `gorm:"index:idx_package_service,unique" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	Quantity  int `gorm:"default:1" json:"quantity"`
	SortOrder int `gorm:"default:0" json:"sort_order"`
}

// IndividualTotal soma os serviços do pacote a preço de tabela.
// Exige Items com Service pré-carregado.
func (p *ServicePackage) IndividualTotal(now time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		price := item.Service.CurrentPrice(now)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// DiscountAmount é quanto o pacote economiza sobre o preço avulso.
func (p *ServicePackage) DiscountAmount(now time.Time) decimal.Decimal {
	return p.IndividualTotal(now).Sub(p.TotalPrice)
}

// RealDiscountPercent é o desconto efetivo do pacote em %.
func (p *ServicePackage) RealDiscountPercent(now time.Time) decimal.Decimal {
	individual := p.IndividualTotal(now)
	if !individual.IsPositive() {
		return decimal.Zero
	}
	return individual.Sub(p.TotalPrice).
		Div(individual).
		Mul(decimal.NewFromInt(100))
}

// EstimatedDurationMinutes soma a duração de todos os itens.
func (p *ServicePackage) EstimatedDurationMinutes() int {
	total := 0
	for _, item := range p.Items {
		total += item.Service.DurationInMinutes() * item.Quantity
	}
	return total
}
