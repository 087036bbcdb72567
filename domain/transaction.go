package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessCreateDeposit    = "deposit request created successfully"
	MessageSuccessCreateWithdraw   = "withdrawal request created successfully"
	MessageSuccessApproveDeposit   = "deposit approved successfully"
	MessageSuccessRejectDeposit    = "deposit rejected successfully"
	MessageSuccessApproveWithdraw  = "withdrawal approved successfully"
	MessageSuccessRejectWithdraw   = "withdrawal rejected successfully"
	MessageSuccessGetTransactions  = "transactions retrieved successfully"
	MessageTransactionAlreadyDone  = "transaction already processed"
	MessageFailedCreateDeposit     = "failed to create deposit request"
	MessageFailedCreateWithdraw    = "failed to create withdrawal request"
	MessageFailedApproveDeposit    = "failed to approve deposit"
	MessageFailedRejectDeposit     = "failed to reject deposit"
	MessageFailedApproveWithdraw   = "failed to approve withdrawal"
	MessageFailedRejectWithdraw    = "failed to reject withdrawal"
	MessageFailedGetTransactions   = "failed to retrieve transactions"

	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrAlreadyProcessed     = errors.New("transaction already processed")
	ErrWrongTransactionType = errors.New("wrong transaction type")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidSymbol        = errors.New("invalid coin symbol")
	ErrAddressRequired      = errors.New("address and network required")
)

type (
	DepositDetails struct {
		Network string `json:"network,omitempty"`
		TxHash  string `json:"tx_hash,omitempty"`
	}

	WithdrawDetails struct {
		Address string `json:"address"`
		Network string `json:"network"`
		Memo    string `json:"memo,omitempty"`
	}

	CreateDepositRequest struct {
		UserID     string          `json:"user_id" validate:"required,uuid"`
		CoinSymbol string          `json:"coin_symbol" validate:"required"`
		Amount     decimal.Decimal `json:"amount"`
		Details    DepositDetails  `json:"details"`
	}

	CreateWithdrawRequest struct {
		UserID     string          `json:"user_id" validate:"required,uuid"`
		CoinSymbol string          `json:"coin_symbol" validate:"required"`
		Amount     decimal.Decimal `json:"amount"`
		Details    WithdrawDetails `json:"details"`
	}
)
