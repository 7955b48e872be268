package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmployeeIsAvailable(t *testing.T) {
	e := Employee{Status: EmployeeStatusActive}
	e.IsActive = true
	assert.True(t, e.IsAvailable())

	e.Status = EmployeeStatusVacation
	assert.False(t, e.IsAvailable())

	e.Status = EmployeeStatusActive
	e.IsActive = false
	assert.False(t, e.IsAvailable())
}

func TestNextRegistration(t *testing.T) {
	// primeira matrícula do ano
	assert.Equal(t, "20250001", NextRegistration("2025", ""))

	// incrementa a última do mesmo prefixo
	assert.Equal(t, "20250002", NextRegistration("2025", "20250001"))
	assert.Equal(t, "20250100", NextRegistration("2025", "20250099"))

	// última de outro ano ou malformada recomeça a sequência
	assert.Equal(t, "20250001", NextRegistration("2025", "20249999"))
	assert.Equal(t, "20250001", NextRegistration("2025", "2025abcd"))
	assert.Equal(t, "20250001", NextRegistration("2025", "2025"))
}

func TestEmployeeTenureDays(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	e := Employee{AdmissionDate: now.AddDate(0, 0, -100)}
	assert.Equal(t, 100, e.TenureDays(now))

	dismissed := now.AddDate(0, 0, -10)
	e.DismissalDate = &dismissed
	assert.Equal(t, 90, e.TenureDays(now))

	assert.Equal(t, 0, (&Employee{}).TenureDays(now))
}
