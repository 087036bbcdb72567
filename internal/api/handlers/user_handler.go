package handlers

import (
	"Moon-Trade-Backend/domain"
	"Moon-Trade-Backend/internal/api/presenters"
	"Moon-Trade-Backend/pkg/user"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		UpsertProfile(c *fiber.Ctx) error
		GetUserData(c *fiber.Ctx) error
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

func (h *userHandler) UpsertProfile(c *fiber.Ctx) error {
	req := new(domain.UpsertProfileRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpsertProfile, err)
	}

	profile, err := h.userService.UpsertProfile(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpsertProfile, err)
	}

	return presenters.SuccessResponse(c, profile, fiber.StatusOK, domain.MessageSuccessUpsertProfile)
}

func (h *userHandler) GetUserData(c *fiber.Ctx) error {
	email := c.Query("email")
	id := c.Query("id")

	data, err := h.userService.GetUserData(c.Context(), email, id)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetUserData, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetUserData, err)
	}

	return presenters.SuccessResponse(c, data, fiber.StatusOK, domain.MessageSuccessGetUserData)
}
