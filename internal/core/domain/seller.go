package domain

import (
	"time"

	"github.com/google/uuid"
)

// SellerStatus represents the state of a seller account.
type SellerStatus string

const (
	SellerStatusActive    SellerStatus = "ACTIVE"
	SellerStatusSuspended SellerStatus = "SUSPENDED"
)

// Seller is the identity record the security gate re-authenticates against.
// Payout methods hang off this aggregate; mutations for one seller are
// serialized by locking this row.
type Seller struct {
	ID           uuid.UUID    `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Never expose
	StoreName    string       `json:"store_name"`
	Status       SellerStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// IsActive returns true if the seller account is active.
func (s *Seller) IsActive() bool {
	return s.Status == SellerStatusActive
}
