package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessGetBalances = "balances retrieved successfully"
	MessageFailedGetBalances  = "failed to retrieve balances"

	ErrInsufficientBalance = errors.New("insufficient balance")
)

type BalanceSnapshot struct {
	CoinSymbol    string          `json:"coin_symbol"`
	Balance       decimal.Decimal `json:"balance"`
	LockedBalance decimal.Decimal `json:"locked_balance"`
}
