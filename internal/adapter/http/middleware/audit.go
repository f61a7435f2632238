package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type auditRoute struct {
	action       domain.AuditAction
	resourceType string
	param        string
}

// auditRoutes maps admin route templates to audit actions.
var auditRoutes = map[string]auditRoute{
	http.MethodPost + " /api/v1/admin/transactions/:uuid/revert":       {domain.AuditActionRevert, "transaction", "uuid"},
	http.MethodPost + " /api/v1/admin/transactions/:uuid/check-status": {domain.AuditActionStatusCheck, "transaction", "uuid"},
	http.MethodPost + " /api/v1/admin/wallets/:id/adjustments":         {domain.AuditActionManualAdjustment, "currency_wallet", "id"},
	http.MethodPost + " /api/v1/admin/limits":                          {domain.AuditActionLimitCreate, "limit", ""},
	http.MethodPut + " /api/v1/admin/limits/:id":                       {domain.AuditActionLimitUpdate, "limit", "id"},
	http.MethodDelete + " /api/v1/admin/limits/:id":                    {domain.AuditActionLimitDeactivate, "limit", "id"},
	http.MethodPost + " /api/v1/admin/alerts/:id/ack":                  {domain.AuditActionAlertAck, "limit_alert", "id"},
}

// AuditLog records successful admin write operations after the handler ran.
// Handlers may attach extra details under CtxAuditDetails.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		route, ok := auditRoutes[c.Request.Method+" "+c.FullPath()]
		if !ok {
			return
		}

		details := map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		}
		if extra, ok := c.Get(CtxAuditDetails); ok {
			details["request"] = extra
		}
		raw, _ := json.Marshal(details)

		resourceID := ""
		if route.param != "" {
			resourceID = c.Param(route.param)
		}
		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			Actor:        Subject(c),
			Action:       route.action,
			ResourceType: route.resourceType,
			ResourceID:   resourceID,
			IPAddress:    c.ClientIP(),
			Details:      string(raw),
			CreatedAt:    time.Now(),
		})
	}
}
