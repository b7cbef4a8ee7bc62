package handlers

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mazingira/donations-backend/internal/apperr"
	"github.com/mazingira/donations-backend/internal/dto"
	"github.com/mazingira/donations-backend/internal/identity"
	"github.com/mazingira/donations-backend/internal/services"
)

type StoryHandler struct {
	storyService *services.StoryService
}

func NewStoryHandler(storyService *services.StoryService) *StoryHandler {
	return &StoryHandler{storyService: storyService}
}

// Create accepts either a JSON body or a multipart form with an optional
// "image" file part.
func (h *StoryHandler) Create(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return fail(c, err)
	}

	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return fail(c, apperr.Validation("invalid organization ID"))
	}

	var req dto.CreateStoryRequest
	var image *services.ImageUpload

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		req.Title = c.FormValue("title")
		req.Content = c.FormValue("content")

		if fh, ferr := c.FormFile("image"); ferr == nil && fh != nil {
			f, oerr := fh.Open()
			if oerr != nil {
				return fail(c, apperr.Validation("unreadable image upload"))
			}
			data, rerr := io.ReadAll(f)
			f.Close()
			if rerr != nil {
				return fail(c, apperr.Validation("unreadable image upload"))
			}
			image = &services.ImageUpload{Filename: fh.Filename, Data: data}
		}
	} else if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.Validation("invalid request body"))
	}

	story, err := h.storyService.Create(c.UserContext(), id, orgID, &req, image)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(story)
}

func (h *StoryHandler) ListByOrganization(c *fiber.Ctx) error {
	orgID, err := uuid.Parse(c.Params("org_id"))
	if err != nil {
		return fail(c, apperr.Validation("invalid organization ID"))
	}

	stories, err := h.storyService.List(orgID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"stories": stories})
}

func (h *StoryHandler) Update(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return fail(c, err)
	}

	storyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, apperr.Validation("invalid story ID"))
	}

	var req dto.UpdateStoryRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.Validation("invalid request body"))
	}

	story, err := h.storyService.Update(id, storyID, &req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(story)
}

func (h *StoryHandler) Delete(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return fail(c, err)
	}

	storyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, apperr.Validation("invalid story ID"))
	}

	if err := h.storyService.Delete(id, storyID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Story deleted successfully"})
}
