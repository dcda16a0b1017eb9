package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionRegister           AuditAction = "REGISTER"
	AuditActionLogin              AuditAction = "LOGIN"
	AuditActionAddPayoutMethod    AuditAction = "ADD_PAYOUT_METHOD"
	AuditActionUpdatePayoutMethod AuditAction = "UPDATE_PAYOUT_METHOD"
	AuditActionDeletePayoutMethod AuditAction = "DELETE_PAYOUT_METHOD"
	AuditActionVerifyPayoutMethod AuditAction = "VERIFY_PAYOUT_METHOD"
)

// AuditLog records a single audited action in the system.
// Details must never contain payout secrets, masked or otherwise.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	SellerID     *uuid.UUID  `json:"seller_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
