package handlers

import (
	"errors"

	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/internal/api/presenters"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/scan"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ScanHandler interface {
		CreateScan(c *fiber.Ctx) error
		GetScan(c *fiber.Ctx) error
		ToggleSelection(c *fiber.Ctx) error
		CancelScan(c *fiber.Ctx) error
		CommitScan(c *fiber.Ctx) error
	}

	scanHandler struct {
		scanService scan.ScanService
		validator   *validator.Validate
	}
)

func NewScanHandler(scanService scan.ScanService, validator *validator.Validate) ScanHandler {
	return &scanHandler{
		scanService: scanService,
		validator:   validator,
	}
}

func (h *scanHandler) CreateScan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.scanService.CreateScan(c.Context(), scan.NewUploadDevice(file), userID)
	if err != nil {
		if errors.Is(err, domain.ErrScanInProgress) {
			return presenters.ErrorResponse(c, fiber.StatusConflict, domain.MessageFailedCreateScan, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateScan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusAccepted, domain.MessageSuccessCreateScan)
}

func (h *scanHandler) GetScan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	scanID := c.Params("id")

	res, err := h.scanService.GetScan(c.Context(), scanID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrScanNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetScan, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetScan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetScan)
}

func (h *scanHandler) ToggleSelection(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	scanID := c.Params("id")
	req := new(domain.ToggleSelectionRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedToggleSelection, err)
	}

	res, err := h.scanService.ToggleSelection(c.Context(), scanID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedToggleSelection, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleSelection)
}

func (h *scanHandler) CancelScan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	scanID := c.Params("id")

	if err := h.scanService.CancelScan(c.Context(), scanID, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCancelScan, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelScan)
}

func (h *scanHandler) CommitScan(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	scanID := c.Params("id")
	req := new(domain.CommitScanRequest)

	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}

		if err := h.validator.Struct(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCommitScan, err)
		}
	}

	res, err := h.scanService.CommitScan(c.Context(), scanID, *req, userID)
	if err != nil {
		var commitErr *domain.CommitError
		if errors.As(err, &commitErr) {
			// Items inserted before the failure are still in the store; the
			// partial result goes back so the user can retry knowingly.
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success":        false,
				"message":        domain.MessageFailedCommitScan,
				"error":          commitErr.Error(),
				"failed_item":    commitErr.ItemName,
				"partial_result": res,
			})
		}
		if errors.Is(err, domain.ErrTenantProvisioning) {
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedProvisionHousehold, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCommitScan, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCommitScan)
}
