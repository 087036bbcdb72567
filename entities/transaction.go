package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TransactionTypeDeposit  = "deposit"
	TransactionTypeWithdraw = "withdraw"
	TransactionTypeTrade    = "trade"
	TransactionTypeExchange = "exchange"

	TransactionStatusPending   = "pending"
	TransactionStatusApproved  = "approved"
	TransactionStatusRejected  = "rejected"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
)

type Transaction struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	Type       string          `gorm:"index" json:"type"`
	CoinSymbol string          `json:"coin_symbol"`
	Amount     decimal.Decimal `gorm:"type:numeric(32,8)" json:"amount"`
	Status     string          `gorm:"index" json:"status"`
	Details    string          `gorm:"type:jsonb" json:"details"`

	Timestamp
}

func (Transaction) TableName() string {
	return "transactions"
}
