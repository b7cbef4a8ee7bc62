package dto

import "github.com/google/uuid"

type CreateDonationRequest struct {
	OrganizationID uuid.UUID `json:"organization_id"`
	Amount         float64   `json:"amount"`
	Recurring      bool      `json:"recurring"`
}
