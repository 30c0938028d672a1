package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/internal/utils"
	"Foodgram-Backend/pkg/recipe"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		GetRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		AddFavorite(c *fiber.Ctx) error
		RemoveFavorite(c *fiber.Ctx) error
		AddToShoppingCart(c *fiber.Ctx) error
		RemoveFromShoppingCart(c *fiber.Ctx) error
		DownloadShoppingCart(c *fiber.Ctx) error
	}

	// recipeHandler carries no validator: recipe payload rules live in the
	// domain rule set applied by the service, not in struct tags.
	recipeHandler struct {
		recipeService recipe.RecipeService
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
	}
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	userID := callerID(c)

	filter := domain.RecipeFilter{
		Author: c.Query("author"),
		Page:   pageParam(c),
		Limit:  limitParam(c),
	}
	if v := c.Query("is_favorited"); v != "" {
		b := parseBoolParam(v)
		filter.IsFavorited = &b
	}
	if v := c.Query("is_in_shopping_cart"); v != "" {
		b := parseBoolParam(v)
		filter.IsInShoppingCart = &b
	}
	for _, slug := range c.Context().QueryArgs().PeekMulti("tags") {
		filter.Tags = append(filter.Tags, string(slug))
	}

	recipes, count, err := h.recipeService.GetRecipes(c.Context(), filter, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"count":   count,
		"page":    filter.Page,
		"limit":   filter.Limit,
		"results": recipes,
	}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	userID := callerID(c)
	recipeID := c.Params("id")

	res, err := h.recipeService.GetRecipeDetail(c.Context(), recipeID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedGetRecipeDetail, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SaveRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedSaveRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessSaveRecipe)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")
	req := new(domain.SaveRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), recipeID, *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedSaveRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSaveRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if err := h.recipeService.DeleteRecipe(c.Context(), recipeID, userID); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedDeleteRecipe, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *recipeHandler) AddFavorite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	res, err := h.recipeService.AddFavorite(c.Context(), recipeID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedFavorite, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSaveRecipe)
}

func (h *recipeHandler) RemoveFavorite(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if err := h.recipeService.RemoveFavorite(c.Context(), recipeID, userID); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedFavorite, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *recipeHandler) AddToShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	res, err := h.recipeService.AddToShoppingCart(c.Context(), recipeID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedShoppingCart, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSaveRecipe)
}

func (h *recipeHandler) RemoveFromShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if err := h.recipeService.RemoveFromShoppingCart(c.Context(), recipeID, userID); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedShoppingCart, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *recipeHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	report, err := h.recipeService.DownloadShoppingList(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedShoppingList, err)
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+domain.ShoppingListFilename+`"`)
	return c.Status(fiber.StatusOK).Send(report)
}

// callerID returns the authenticated user id or "" for anonymous callers
// on optional-auth routes.
func callerID(c *fiber.Ctx) string {
	if v, ok := c.Locals("user_id").(string); ok {
		return v
	}
	return ""
}

func pageParam(c *fiber.Ctx) int {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return page
}

func limitParam(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit", ""))
	if err != nil || limit < 1 {
		limit = utils.DefaultPageSize()
	}
	return limit
}

func parseBoolParam(v string) bool {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return v == "1" || v == "true"
	}
	return b
}
