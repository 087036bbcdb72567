package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

const (
	TradeSideBuy  = "buy"
	TradeSideSell = "sell"

	// QuoteSymbol is the asset trades are quoted against.
	QuoteSymbol = "USDT"
)

// FeeRate is the flat 0.1% fee taken on exchanges and trades.
var FeeRate = decimal.NewFromFloat(0.001)

var (
	MessageSuccessExchange = "exchange completed successfully"
	MessageSuccessTrade    = "trade completed successfully"
	MessageFailedExchange  = "failed to exchange"
	MessageFailedTrade     = "failed to trade"

	ErrSameAsset        = errors.New("cannot exchange an asset for itself")
	ErrPriceUnavailable = errors.New("price not available")
)

type (
	ExchangeRequest struct {
		UserID     string          `json:"user_id" validate:"required,uuid"`
		FromSymbol string          `json:"from_symbol" validate:"required"`
		ToSymbol   string          `json:"to_symbol" validate:"required"`
		Amount     decimal.Decimal `json:"amount"`
	}

	ExchangeResponse struct {
		TransactionID string          `json:"transaction_id"`
		ToAmount      decimal.Decimal `json:"to_amount"`
		FeeUSD        decimal.Decimal `json:"fee_usd"`
	}

	ExchangeDetails struct {
		From     string          `json:"from"`
		To       string          `json:"to"`
		ToAmount decimal.Decimal `json:"to_amount"`
		FeeUSD   decimal.Decimal `json:"fee_usd"`
	}

	TradeRequest struct {
		UserID     string          `json:"user_id" validate:"required,uuid"`
		CoinSymbol string          `json:"coin_symbol" validate:"required"`
		Side       string          `json:"side" validate:"required,oneof=buy sell"`
		Amount     decimal.Decimal `json:"amount"`
	}

	TradeResponse struct {
		TransactionID string          `json:"transaction_id"`
		Price         decimal.Decimal `json:"price"`
		TotalUSD      decimal.Decimal `json:"total_usd"`
		FeeUSD        decimal.Decimal `json:"fee_usd"`
	}

	TradeDetails struct {
		Side     string          `json:"side"`
		Price    decimal.Decimal `json:"price"`
		TotalUSD decimal.Decimal `json:"total_usd"`
		FeeUSD   decimal.Decimal `json:"fee_usd"`
	}
)
