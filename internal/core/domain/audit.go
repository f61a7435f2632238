package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited operator action.
type AuditAction string

const (
	AuditActionRevert           AuditAction = "REVERT"
	AuditActionStatusCheck      AuditAction = "STATUS_CHECK"
	AuditActionManualAdjustment AuditAction = "MANUAL_ADJUSTMENT"
	AuditActionLimitCreate      AuditAction = "LIMIT_CREATE"
	AuditActionLimitUpdate      AuditAction = "LIMIT_UPDATE"
	AuditActionLimitDeactivate  AuditAction = "LIMIT_DEACTIVATE"
	AuditActionAlertAck         AuditAction = "ALERT_ACK"
)

// AuditLog records a single audited action.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	Actor        string      `json:"actor"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
