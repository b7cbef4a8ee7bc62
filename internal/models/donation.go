package models

import (
	"time"

	"github.com/google/uuid"
)

// Donation is an append-mostly ledger entry. Recurring is a static
// attribute; no scheduling or re-charging happens server side.
type Donation struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Amount         float64   `gorm:"not null" json:"amount"`
	Date           time.Time `gorm:"not null" json:"date"`
	Recurring      bool      `gorm:"not null;default:false" json:"recurring"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
}
