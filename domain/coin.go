package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGetCoins     = "coins retrieved successfully"
	MessageSuccessUpdatePrice  = "coin price updated successfully"
	MessageFailedGetCoins      = "failed to retrieve coins"
	MessageFailedUpdatePrice   = "failed to update coin price"

	ErrCoinNotFound = errors.New("coin not found")
)

type UpdatePriceRequest struct {
	Price     decimal.Decimal  `json:"price"`
	Change24h *decimal.Decimal `json:"change_24h,omitempty"`
	Note      string           `json:"note,omitempty"`
}
