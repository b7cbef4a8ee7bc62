package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazingira/donations-backend/internal/apperr"
	"github.com/mazingira/donations-backend/internal/dto"
	"github.com/mazingira/donations-backend/internal/identity"
	"github.com/mazingira/donations-backend/internal/models"
	"github.com/mazingira/donations-backend/internal/policy"
)

type DonationService struct {
	db *gorm.DB
}

func NewDonationService(db *gorm.DB) *DonationService {
	return &DonationService{db: db}
}

// Create records a donation against an approved organization. The
// approval check and the insert run in one transaction; approval is not
// re-checked after creation.
func (s *DonationService) Create(id identity.Identity, req *dto.CreateDonationRequest) (*models.Donation, error) {
	if req.Amount <= 0 {
		return nil, apperr.Validation("amount must be a positive number")
	}
	if req.OrganizationID == uuid.Nil {
		return nil, apperr.Validation("organization_id is required")
	}

	donation := models.Donation{
		ID:             uuid.New(),
		Amount:         req.Amount,
		Date:           time.Now().UTC(),
		Recurring:      req.Recurring,
		UserID:         id.UserID,
		OrganizationID: req.OrganizationID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var org models.Organization
		if err := tx.First(&org, "id = ?", req.OrganizationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("organization not found or not approved")
			}
			return apperr.Storage("failed to load organization", err)
		}
		if err := policy.Authorize(id, policy.CreateDonation, policy.Resource{OrgApproved: org.Approved}); err != nil {
			return err
		}
		if err := tx.Create(&donation).Error; err != nil {
			return apperr.Storage("failed to create donation", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

// ListMine returns only the caller's donations, newest first.
func (s *DonationService) ListMine(id identity.Identity) ([]models.Donation, error) {
	var donations []models.Donation
	if err := s.db.Where("user_id = ?", id.UserID).Order("date DESC").Find(&donations).Error; err != nil {
		return nil, apperr.Storage("failed to list donations", err)
	}
	return donations, nil
}

// Delete removes a donation; only its owning user may do so.
func (s *DonationService) Delete(id identity.Identity, donationID uuid.UUID) error {
	var donation models.Donation
	if err := s.db.First(&donation, "id = ?", donationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("donation not found")
		}
		return apperr.Storage("failed to load donation", err)
	}

	if err := policy.Authorize(id, policy.DeleteDonation, policy.Resource{OwnerID: donation.UserID}); err != nil {
		return err
	}

	if err := s.db.Delete(&donation).Error; err != nil {
		return apperr.Storage("failed to delete donation", err)
	}
	return nil
}
