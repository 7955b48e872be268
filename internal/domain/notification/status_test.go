package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jtsistemas/agenda-api/internal/models"
)

func TestPipelineHappyPath(t *testing.T) {
	now := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	n := &models.Notification{Status: models.NotificationPending}

	MarkSent(n, now)
	assert.Equal(t, models.NotificationSent, n.Status)
	assert.Equal(t, now, *n.SentAt)

	later := now.Add(time.Minute)
	MarkDelivered(n, later)
	assert.Equal(t, models.NotificationDelivered, n.Status)
	assert.Equal(t, later, *n.DeliveredAt)

	read := later.Add(time.Hour)
	MarkRead(n, read)
	assert.Equal(t, models.NotificationRead, n.Status)
	assert.Equal(t, read, *n.ReadAt)
}

func TestMarkErrorIncrementsAttempts(t *testing.T) {
	n := &models.Notification{Status: models.NotificationPending}

	MarkError(n, "smtp timeout")
	assert.Equal(t, models.NotificationError, n.Status)
	assert.Equal(t, "smtp timeout", n.ErrorDetail)
	assert.Equal(t, 1, n.Attempts)

	MarkError(n, "smtp refused")
	assert.Equal(t, "smtp refused", n.ErrorDetail)
	assert.Equal(t, 2, n.Attempts)
}

func TestErrorReachableAfterSent(t *testing.T) {
	now := time.Now()
	n := &models.Notification{Status: models.NotificationPending}

	MarkSent(n, now)
	MarkError(n, "bounce")

	assert.Equal(t, models.NotificationError, n.Status)
	assert.NotNil(t, n.SentAt)
}
