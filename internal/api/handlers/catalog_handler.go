package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/pkg/catalog"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type (
	CatalogHandler interface {
		GetTags(c *fiber.Ctx) error
		GetTagDetail(c *fiber.Ctx) error
		GetIngredients(c *fiber.Ctx) error
		GetIngredientDetail(c *fiber.Ctx) error
	}

	catalogHandler struct {
		catalogService catalog.CatalogService
	}
)

func NewCatalogHandler(catalogService catalog.CatalogService) CatalogHandler {
	return &catalogHandler{catalogService: catalogService}
}

func (h *catalogHandler) GetTags(c *fiber.Ctx) error {
	res, err := h.catalogService.GetTags(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedGetTags, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTags)
}

func (h *catalogHandler) GetTagDetail(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetTags, domain.ErrTagNotFound)
	}

	res, err := h.catalogService.GetTagByID(c.Context(), uint(id))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedGetTags, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetTags)
}

func (h *catalogHandler) GetIngredients(c *fiber.Ctx) error {
	res, err := h.catalogService.SearchIngredients(c.Context(), c.Query("name"))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedGetIngredients, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *catalogHandler) GetIngredientDetail(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetIngredients, domain.ErrIngredientNotFound)
	}

	res, err := h.catalogService.GetIngredientByID(c.Context(), uint(id))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedGetIngredients, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}
