package handlers

import (
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/domain"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/internal/api/presenters"
	"github.com/AlexBuildsLTS/PantryAppAI-sub000/pkg/credential"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CredentialHandler interface {
		StoreCredential(c *fiber.Ctx) error
		DeleteCredential(c *fiber.Ctx) error
	}

	credentialHandler struct {
		credentialService credential.CredentialService
		validator         *validator.Validate
	}
)

func NewCredentialHandler(credentialService credential.CredentialService, validator *validator.Validate) CredentialHandler {
	return &credentialHandler{
		credentialService: credentialService,
		validator:         validator,
	}
}

func (h *credentialHandler) StoreCredential(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpsertCredentialRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedStoreCredential, err)
	}

	if err := h.credentialService.StoreSecret(c.Context(), *req, userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedStoreCredential, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessStoreCredential)
}

func (h *credentialHandler) DeleteCredential(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.credentialService.DeleteSecret(c.Context(), userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteCredential, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteCredential)
}
