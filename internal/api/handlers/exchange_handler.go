package handlers

import (
	"Moon-Trade-Backend/domain"
	"Moon-Trade-Backend/internal/api/presenters"
	"Moon-Trade-Backend/pkg/exchange"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ExchangeHandler interface {
		Exchange(c *fiber.Ctx) error
		Trade(c *fiber.Ctx) error
	}

	exchangeHandler struct {
		exchangeService exchange.ExchangeService
		validator       *validator.Validate
	}
)

func NewExchangeHandler(exchangeService exchange.ExchangeService, validator *validator.Validate) ExchangeHandler {
	return &exchangeHandler{
		exchangeService: exchangeService,
		validator:       validator,
	}
}

func (h *exchangeHandler) Exchange(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	req := new(domain.ExchangeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.UserID = userID

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExchange, err)
	}

	res, err := h.exchangeService.Exchange(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrPriceUnavailable) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedExchange, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedExchange, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessExchange)
}

func (h *exchangeHandler) Trade(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	req := new(domain.TradeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.UserID = userID

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedTrade, err)
	}

	res, err := h.exchangeService.Trade(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrPriceUnavailable) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedTrade, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedTrade, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessTrade)
}
