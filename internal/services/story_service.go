package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mazingira/donations-backend/internal/apperr"
	"github.com/mazingira/donations-backend/internal/dto"
	"github.com/mazingira/donations-backend/internal/identity"
	"github.com/mazingira/donations-backend/internal/models"
	"github.com/mazingira/donations-backend/internal/policy"
	"github.com/mazingira/donations-backend/internal/storage"
)

// ImageUpload is an in-memory image received from the transport layer.
// It is handed to the asset store before the story row is written; only
// the returned URL is persisted.
type ImageUpload struct {
	Filename string
	Data     []byte
}

type StoryService struct {
	db     *gorm.DB
	assets storage.AssetStore
}

func NewStoryService(db *gorm.DB, assets storage.AssetStore) *StoryService {
	return &StoryService{db: db, assets: assets}
}

// Create posts a story on behalf of an approved organization. The image,
// if supplied, goes to the asset store first so a failed upload never
// leaves a story pointing at nothing.
func (s *StoryService) Create(ctx context.Context, id identity.Identity, orgID uuid.UUID, req *dto.CreateStoryRequest, image *ImageUpload) (*models.Story, error) {
	if req.Title == "" || req.Content == "" {
		return nil, apperr.Validation("title and content are required")
	}

	var org models.Organization
	if err := s.db.First(&org, "id = ?", orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("organization not found or not approved")
		}
		return nil, apperr.Storage("failed to load organization", err)
	}
	if err := policy.Authorize(id, policy.CreateStory, policy.Resource{OrgApproved: org.Approved}); err != nil {
		return nil, err
	}

	var imageURL string
	if image != nil {
		url, err := s.assets.Save(ctx, image.Filename, image.Data)
		if err != nil {
			return nil, apperr.Storage("failed to upload image", err)
		}
		imageURL = url
	}

	story := models.Story{
		ID:             uuid.New(),
		Title:          req.Title,
		Content:        req.Content,
		ImageURL:       imageURL,
		DatePosted:     time.Now().UTC(),
		OrganizationID: org.ID,
	}

	if err := s.db.Create(&story).Error; err != nil {
		return nil, apperr.Storage("failed to create story", err)
	}
	return &story, nil
}

// List returns an approved organization's stories, newest first.
func (s *StoryService) List(orgID uuid.UUID) ([]models.Story, error) {
	var org models.Organization
	if err := s.db.First(&org, "id = ?", orgID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("organization not found or not approved")
		}
		return nil, apperr.Storage("failed to load organization", err)
	}
	if !org.Approved {
		return nil, apperr.NotFound("organization not found or not approved")
	}

	var stories []models.Story
	if err := s.db.Where("organization_id = ?", orgID).Order("date_posted DESC").Find(&stories).Error; err != nil {
		return nil, apperr.Storage("failed to list stories", err)
	}
	return stories, nil
}

// Update edits a story's admin-editable fields.
func (s *StoryService) Update(id identity.Identity, storyID uuid.UUID, req *dto.UpdateStoryRequest) (*models.Story, error) {
	if err := policy.Authorize(id, policy.UpdateStory, policy.Resource{}); err != nil {
		return nil, err
	}

	var story models.Story
	if err := s.db.First(&story, "id = ?", storyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("story not found")
		}
		return nil, apperr.Storage("failed to load story", err)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if *req.Title == "" {
			return nil, apperr.Validation("title cannot be empty")
		}
		updates["title"] = *req.Title
		story.Title = *req.Title
	}
	if req.Content != nil {
		if *req.Content == "" {
			return nil, apperr.Validation("content cannot be empty")
		}
		updates["content"] = *req.Content
		story.Content = *req.Content
	}
	if len(updates) == 0 {
		return &story, nil
	}

	if err := s.db.Model(&story).Updates(updates).Error; err != nil {
		return nil, apperr.Storage("failed to update story", err)
	}
	return &story, nil
}

// Delete removes a story.
func (s *StoryService) Delete(id identity.Identity, storyID uuid.UUID) error {
	if err := policy.Authorize(id, policy.DeleteStory, policy.Resource{}); err != nil {
		return err
	}

	var story models.Story
	if err := s.db.First(&story, "id = ?", storyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("story not found")
		}
		return apperr.Storage("failed to load story", err)
	}

	if err := s.db.Delete(&story).Error; err != nil {
		return apperr.Storage("failed to delete story", err)
	}
	return nil
}
