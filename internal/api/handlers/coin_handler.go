package handlers

import (
	"Moon-Trade-Backend/domain"
	"Moon-Trade-Backend/internal/api/presenters"
	"Moon-Trade-Backend/pkg/coin"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CoinHandler interface {
		GetCoins(c *fiber.Ctx) error
		UpdatePrice(c *fiber.Ctx) error
	}

	coinHandler struct {
		coinService coin.CoinService
		validator   *validator.Validate
	}
)

func NewCoinHandler(coinService coin.CoinService, validator *validator.Validate) CoinHandler {
	return &coinHandler{
		coinService: coinService,
		validator:   validator,
	}
}

func (h *coinHandler) GetCoins(c *fiber.Ctx) error {
	coins, err := h.coinService.GetCoins(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetCoins, err)
	}

	return presenters.SuccessResponse(c, coins, fiber.StatusOK, domain.MessageSuccessGetCoins)
}

func (h *coinHandler) UpdatePrice(c *fiber.Ctx) error {
	symbol := c.Params("symbol")

	req := new(domain.UpdatePriceRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.coinService.UpdatePrice(c.Context(), symbol, *req); err != nil {
		if errors.Is(err, domain.ErrCoinNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedUpdatePrice, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdatePrice, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdatePrice)
}
