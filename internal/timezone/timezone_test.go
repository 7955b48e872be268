package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("America/Sao_Paulo"))
	assert.True(t, IsValid("UTC"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Marte/Cratera"))
}

func TestLocationFallsBackToDefault(t *testing.T) {
	loc := Location("nope")
	assert.Equal(t, DefaultTimezone, loc.String())

	loc = Location("America/Recife")
	assert.Equal(t, "America/Recife", loc.String())
}

func TestStartOfDay(t *testing.T) {
	loc := Location("America/Sao_Paulo")
	instant := time.Date(2025, 6, 15, 18, 45, 12, 99, loc)

	day := StartOfDay(instant)

	assert.Equal(t, 0, day.Hour())
	assert.Equal(t, 0, day.Minute())
	assert.Equal(t, instant.Day(), day.Day())
	assert.Equal(t, loc, day.Location())
}
