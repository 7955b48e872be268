package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jtsistemas/agenda-api/internal/audit"
	"github.com/jtsistemas/agenda-api/internal/middleware"
)

// dispatchAudit registra uma escrita de cadastro no audit log,
// atribuída ao usuário autenticado.
func dispatchAudit(d *audit.Dispatcher, c *gin.Context, action, entity string, entityID uint) {
	if d == nil {
		return
	}

	userID := c.GetUint(middleware.ContextUserID)
	d.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   action,
		Entity:   entity,
		EntityID: &entityID,
	})
}
