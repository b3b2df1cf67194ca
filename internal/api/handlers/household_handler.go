package handlers

import (
	"errors"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/internal/api/presenters"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/household"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	HouseholdHandler interface {
		GetMyHousehold(c *fiber.Ctx) error
		JoinHousehold(c *fiber.Ctx) error
		RotateInviteCode(c *fiber.Ctx) error
	}

	householdHandler struct {
		householdService household.HouseholdService
		validator        *validator.Validate
	}
)

func NewHouseholdHandler(householdService household.HouseholdService, validator *validator.Validate) HouseholdHandler {
	return &householdHandler{
		householdService: householdService,
		validator:        validator,
	}
}

func (h *householdHandler) GetMyHousehold(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.householdService.GetMyHousehold(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoMembership) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetHousehold, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetHousehold, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetHousehold)
}

func (h *householdHandler) JoinHousehold(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.JoinHouseholdRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedJoinHousehold, err)
	}

	res, err := h.householdService.JoinByInviteCode(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyMember) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedJoinHousehold, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedJoinHousehold, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessJoinHousehold)
}

func (h *householdHandler) RotateInviteCode(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.householdService.RotateInviteCode(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorizedAccess) {
			return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageFailedRotateInviteCode, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRotateInviteCode, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRotateInviteCode)
}
