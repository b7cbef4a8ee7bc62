package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mazingira/donations-backend/internal/apperr"
	"github.com/mazingira/donations-backend/internal/dto"
	"github.com/mazingira/donations-backend/internal/identity"
	"github.com/mazingira/donations-backend/internal/services"
)

type DonationHandler struct {
	donationService *services.DonationService
}

func NewDonationHandler(donationService *services.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

func (h *DonationHandler) Create(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return fail(c, err)
	}

	var req dto.CreateDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, apperr.Validation("invalid request body"))
	}

	donation, err := h.donationService.Create(id, &req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(donation)
}

func (h *DonationHandler) ListMine(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return fail(c, err)
	}

	donations, err := h.donationService.ListMine(id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"donations": donations})
}

func (h *DonationHandler) Delete(c *fiber.Ctx) error {
	id, err := identity.FromContext(c)
	if err != nil {
		return fail(c, err)
	}

	donationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, apperr.Validation("invalid donation ID"))
	}

	if err := h.donationService.Delete(id, donationID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Donation deleted successfully"})
}
