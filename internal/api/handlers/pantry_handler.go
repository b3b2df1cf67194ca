package handlers

import (
	"errors"
	"strconv"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/internal/api/presenters"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/pantry"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PantryHandler interface {
		GetPantryItems(c *fiber.Ctx) error
		GetPantryItemDetails(c *fiber.Ctx) error
		UpdatePantryItem(c *fiber.Ctx) error
		DeletePantryItem(c *fiber.Ctx) error
		MarkPantryItem(c *fiber.Ctx) error
		GetDashboardStats(c *fiber.Ctx) error
	}

	pantryHandler struct {
		pantryService pantry.PantryService
		validator     *validator.Validate
	}
)

func NewPantryHandler(pantryService pantry.PantryService, validator *validator.Validate) PantryHandler {
	return &pantryHandler{
		pantryService: pantryService,
		validator:     validator,
	}
}

func (h *pantryHandler) GetPantryItems(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	status := c.Query("status", "all")

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	items, count, err := h.pantryService.GetPantryItems(c.Context(), userID, status, page, limit)
	if err != nil {
		if errors.Is(err, domain.ErrNoMembership) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetPantryItems, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPantryItems, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"items": items,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetPantryItems)
}

func (h *pantryHandler) GetPantryItemDetails(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	item, err := h.pantryService.GetPantryItemByID(c.Context(), itemID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrPantryItemNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetPantryItems, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPantryItems, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusOK, domain.MessageSuccessGetPantryItems)
}

func (h *pantryHandler) UpdatePantryItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")
	req := new(domain.UpdatePantryItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePantryItem, err)
	}

	if err := h.pantryService.UpdatePantryItem(c.Context(), itemID, *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePantryItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdatePantryItem)
}

func (h *pantryHandler) DeletePantryItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	itemID := c.Params("id")

	if err := h.pantryService.DeletePantryItem(c.Context(), itemID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeletePantryItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeletePantryItem)
}

func (h *pantryHandler) MarkPantryItem(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.MarkPantryItemRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkPantryItem, err)
	}

	if err := h.pantryService.MarkPantryItem(c.Context(), *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkPantryItem, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkPantryItem)
}

func (h *pantryHandler) GetDashboardStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	stats, err := h.pantryService.GetDashboardStats(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoMembership) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetDashboardStats, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboardStats, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetDashboardStats)
}
