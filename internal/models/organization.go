package models

import (
	"time"

	"github.com/google/uuid"
)

// Organization is a listed recipient of donations. Only approved
// organizations may receive donations or host stories; approval is a
// one-way admin action.
type Organization struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Approved    bool      `gorm:"not null;default:false" json:"approved"`
	CreatedAt   time.Time `json:"created_at"`

	Donations []Donation `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
	Stories   []Story    `gorm:"foreignKey:OrganizationID;constraint:OnDelete:CASCADE" json:"-"`
}
