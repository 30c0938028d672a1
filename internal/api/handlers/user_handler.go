package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/pkg/user"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const defaultRecipesLimit = 3

type (
	UserHandler interface {
		Register(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
		SetPassword(c *fiber.Ctx) error
		ForgotPassword(c *fiber.Ctx) error
		ResetPassword(c *fiber.Ctx) error
		Subscribe(c *fiber.Ctx) error
		Unsubscribe(c *fiber.Ctx) error
		GetSubscriptions(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *userHandler) Register(c *fiber.Ctx) error {
	req := new(domain.RegisterRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegister, err)
	}

	res, err := h.userService.Register(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedRegister, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRegister)
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogin, err)
	}

	res, err := h.userService.Login(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogin, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLogin)
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.userService.Me(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedGetMe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetMe)
}

func (h *userHandler) SetPassword(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.UpdatePasswordRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePassword, err)
	}

	if err := h.userService.UpdatePassword(c.Context(), *req, userID); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedUpdatePassword, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *userHandler) ForgotPassword(c *fiber.Ctx) error {
	req := new(domain.ForgotPasswordRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSendMail, err)
	}

	if err := h.userService.ForgotPassword(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedSendMail, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSendMail)
}

func (h *userHandler) ResetPassword(c *fiber.Ctx) error {
	req := new(domain.ResetPasswordRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePassword, err)
	}

	if err := h.userService.ResetPassword(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedUpdatePassword, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdatePassword)
}

func (h *userHandler) Subscribe(c *fiber.Ctx) error {
	subscriberID := c.Locals("user_id").(string)
	authorID := c.Params("id")

	res, err := h.userService.Subscribe(c.Context(), authorID, subscriberID, recipesLimitParam(c))
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedSubscribe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSubscribe)
}

func (h *userHandler) Unsubscribe(c *fiber.Ctx) error {
	subscriberID := c.Locals("user_id").(string)
	authorID := c.Params("id")

	if err := h.userService.Unsubscribe(c.Context(), authorID, subscriberID); err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedUnsubscribe, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *userHandler) GetSubscriptions(c *fiber.Ctx) error {
	subscriberID := c.Locals("user_id").(string)

	subscriptions, count, err := h.userService.GetSubscriptions(
		c.Context(),
		subscriberID,
		pageParam(c),
		limitParam(c),
		recipesLimitParam(c),
	)
	if err != nil {
		return presenters.ErrorResponse(c, presenters.StatusForError(err), domain.MessageFailedGetSubscriptions, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"count":   count,
		"results": subscriptions,
	}, fiber.StatusOK, domain.MessageSuccessGetSubscriptions)
}

func recipesLimitParam(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("recipes_limit", ""))
	if err != nil || limit < 1 {
		return defaultRecipesLimit
	}
	return limit
}
