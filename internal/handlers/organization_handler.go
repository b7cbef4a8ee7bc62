package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mazingira/donations-backend/internal/apperr"
	"github.com/mazingira/donations-backend/internal/dto"
	"github.com/mazingira/donations-backend/internal/identity"
	"github.com/mazingira/donations-backend/internal/services"
)

type OrganizationHandler struct {
	orgService *services.OrganizationService
}

func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{orgService: orgService}
}

func (h *OrganizationHandler) Apply(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return fail(c, err)
	}

	var req dto.ApplyOrganizationRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.Validation("invalid request body"))
	}

	org, err := h.orgService.Apply(id, &req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(org)
}

func (h *OrganizationHandler) List(c *fiber.Ctx) error {
	orgs, err := h.orgService.List()
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"organizations": orgs})
}

func (h *OrganizationHandler) Approve(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return fail(c, err)
	}

	orgID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, apperr.Validation("invalid organization ID"))
	}

	if err := h.orgService.Approve(id, orgID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Organization approved successfully"})
}

func (h *OrganizationHandler) Delete(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return fail(c, err)
	}

	orgID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, apperr.Validation("invalid organization ID"))
	}

	if err := h.orgService.Delete(id, orgID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Organization deleted successfully"})
}
