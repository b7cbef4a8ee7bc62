package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazingira/donations-backend/internal/apperr"
	"github.com/mazingira/donations-backend/internal/dto"
	"github.com/mazingira/donations-backend/internal/identity"
	"github.com/mazingira/donations-backend/internal/models"
	"github.com/mazingira/donations-backend/internal/policy"
)

type OrganizationService struct {
	db *gorm.DB
}

func NewOrganizationService(db *gorm.DB) *OrganizationService {
	return &OrganizationService{db: db}
}

// Apply registers a new organization awaiting admin approval. Names are
// globally unique; the database constraint backstops the pre-check under
// concurrent applications.
func (s *OrganizationService) Apply(id identity.Identity, req *dto.ApplyOrganizationRequest) (*models.Organization, error) {
	if req.Name == "" || req.Description == "" {
		return nil, apperr.Validation("name and description are required")
	}

	org := models.Organization{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Approved:    false,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Organization
		if err := tx.Where("name = ?", req.Name).First(&existing).Error; err == nil {
			return apperr.Conflict("organization name already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Storage("failed to check existing organization", err)
		}
		if err := tx.Create(&org).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("organization name already registered")
			}
			return apperr.Storage("failed to create organization", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &org, nil
}

// Approve flips approved to true. Approval is one-way and idempotent:
// approving an already-approved organization succeeds without side
// effects.
func (s *OrganizationService) Approve(id identity.Identity, orgID uuid.UUID) error {
	if err := policy.Authorize(id, policy.ApproveOrganization, policy.Resource{}); err != nil {
		return err
	}

	var org models.Organization
	if err := s.db.First(&org, "id = ?", orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("organization not found")
		}
		return apperr.Storage("failed to load organization", err)
	}

	if org.Approved {
		return nil
	}

	if err := s.db.Model(&org).Update("approved", true).Error; err != nil {
		return apperr.Storage("failed to approve organization", err)
	}
	return nil
}

// Delete removes the organization together with its donations and
// stories in one transaction, leaving unrelated records untouched.
func (s *OrganizationService) Delete(id identity.Identity, orgID uuid.UUID) error {
	if err := policy.Authorize(id, policy.DeleteOrganization, policy.Resource{}); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var org models.Organization
		if err := tx.First(&org, "id = ?", orgID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("organization not found")
			}
			return apperr.Storage("failed to load organization", err)
		}
		if err := tx.Where("organization_id = ?", orgID).Delete(&models.Donation{}).Error; err != nil {
			return apperr.Storage("failed to delete donations", err)
		}
		if err := tx.Where("organization_id = ?", orgID).Delete(&models.Story{}).Error; err != nil {
			return apperr.Storage("failed to delete stories", err)
		}
		if err := tx.Delete(&org).Error; err != nil {
			return apperr.Storage("failed to delete organization", err)
		}
		return nil
	})
	return err
}

// List returns every organization regardless of approval state; callers
// filter as needed.
func (s *OrganizationService) List() ([]models.Organization, error) {
	var orgs []models.Organization
	if err := s.db.Order("created_at DESC").Find(&orgs).Error; err != nil {
		return nil, apperr.Storage("failed to list organizations", err)
	}
	return orgs, nil
}
