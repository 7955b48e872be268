package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClientDisplayName(t *testing.T) {
	person := Client{Name: "Maria Silva", ClientType: ClientTypePerson}
	assert.Equal(t, "Maria Silva", person.DisplayName())

	company := Client{
		Name:       "Empresa LTDA",
		TradeName:  "Salão da Ana",
		ClientType: ClientTypeCompany,
	}
	assert.Equal(t, "Salão da Ana (Empresa LTDA)", company.DisplayName())
}

func TestClientMainDocument(t *testing.T) {
	person := Client{ClientType: ClientTypePerson, CPF: "123.456.789-09", CNPJ: "x"}
	assert.Equal(t, "123.456.789-09", person.MainDocument())

	company := Client{ClientType: ClientTypeCompany, CNPJ: "12.345.678/0001-95"}
	assert.Equal(t, "12.345.678/0001-95", company.MainDocument())
}

func TestClientAge(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	birth := time.Date(1990, 6, 16, 0, 0, 0, 0, time.UTC)
	c := Client{BirthDate: &birth}
	// Aniversário ainda não chegou este ano.
	assert.Equal(t, 34, c.Age(now))

	birth2 := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	c2 := Client{BirthDate: &birth2}
	assert.Equal(t, 35, c2.Age(now))

	assert.Equal(t, 0, (&Client{}).Age(now))
}

func TestClientCanBeBooked(t *testing.T) {
	c := Client{Status: ClientStatusActive}
	c.IsActive = true
	assert.True(t, c.CanBeBooked())

	c.Status = ClientStatusVIP
	assert.True(t, c.CanBeBooked())

	c.Status = ClientStatusBlocked
	assert.False(t, c.CanBeBooked())

	c.Status = ClientStatusActive
	c.IsActive = false
	assert.False(t, c.CanBeBooked())
}

func TestClientFullAddress(t *testing.T) {
	c := Client{
		Street:       "Rua das Flores",
		Number:       "123",
		Neighborhood: "Centro",
		City:         "São Paulo",
		State:        "SP",
	}
	assert.Equal(t, "Rua das Flores, 123 - Centro - São Paulo - SP", c.FullAddress())
}
