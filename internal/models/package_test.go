package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testPackage() ServicePackage {
	return ServicePackage{
		Name:       "Dia da noiva",
		TotalPrice: decimal.RequireFromString("150.00"),
		Items: []PackageItem{
			{
				Quantity: 1,
				Service: Service{
					Price:        decimal.RequireFromString("100.00"),
					Duration:     60,
					DurationUnit: DurationUnitMinutes,
				},
			},
			{
				Quantity: 2,
				Service: Service{
					Price:        decimal.RequireFromString("50.00"),
					Duration:     30,
					DurationUnit: DurationUnitMinutes,
				},
			},
		},
	}
}

func TestPackageDerivedDiscount(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	pkg := testPackage()

	// 100 + 2x50 = 200 avulso; pacote a 150 economiza 50 (25%).
	assert.True(t, pkg.IndividualTotal(now).Equal(decimal.RequireFromString("200.00")))
	assert.True(t, pkg.DiscountAmount(now).Equal(decimal.RequireFromString("50.00")))
	assert.True(t, pkg.RealDiscountPercent(now).Equal(decimal.NewFromInt(25)))
}

func TestPackageDiscountUsesPromoPrices(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	pkg := testPackage()

	promo := decimal.RequireFromString("60.00")
	yesterday := now.AddDate(0, 0, -1)
	pkg.Items[0].Service.PromoPrice = &promo
	pkg.Items[0].Service.PromoStartDate = &yesterday

	// 60 + 2x50 = 160 avulso com a promoção vigente.
	assert.True(t, pkg.IndividualTotal(now).Equal(decimal.RequireFromString("160.00")))
	assert.True(t, pkg.DiscountAmount(now).Equal(decimal.RequireFromString("10.00")))
}

func TestPackageDiscountEmptyItems(t *testing.T) {
	now := time.Now()
	pkg := ServicePackage{TotalPrice: decimal.RequireFromString("100.00")}

	assert.True(t, pkg.IndividualTotal(now).IsZero())
	assert.True(t, pkg.RealDiscountPercent(now).IsZero())
}

func TestPackageEstimatedDuration(t *testing.T) {
	pkg := testPackage()
	assert.Equal(t, 120, pkg.EstimatedDurationMinutes())
}
