package models

import (
	"time"

	"github.com/google/uuid"
)

// Story is an organization-scoped impact report. ImageURL points into
// the asset store; raw image bytes are never persisted here.
type Story struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string    `gorm:"size:200;not null" json:"title"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	ImageURL       string    `gorm:"size:500" json:"image_url,omitempty"`
	DatePosted     time.Time `gorm:"not null;index" json:"date_posted"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index" json:"organization_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
