package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPhoneValid(t *testing.T) {
	assert.True(t, IsPhoneValid("+5511999998888"))
	assert.True(t, IsPhoneValid("11999998888"))
	assert.False(t, IsPhoneValid("12345"))
	assert.False(t, IsPhoneValid("(11) 99999-8888"))
}

func TestIsCPFValid(t *testing.T) {
	assert.True(t, IsCPFValid("123.456.789-09"))
	assert.False(t, IsCPFValid("12345678909"))
	assert.False(t, IsCPFValid("123.456.789-0"))
}

func TestIsCNPJValid(t *testing.T) {
	assert.True(t, IsCNPJValid("12.345.678/0001-95"))
	assert.False(t, IsCNPJValid("12345678000195"))
}

func TestIsZipCodeValid(t *testing.T) {
	assert.True(t, IsZipCodeValid("01310-100"))
	assert.False(t, IsZipCodeValid("01310100"))
}
