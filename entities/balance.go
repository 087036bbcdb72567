package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Balance keeps the available/locked pair for one (user, coin). Rows are
// created lazily on first credit or lock; both columns stay non-negative.
type Balance struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_user_coin" json:"user_id"`
	CoinSymbol    string          `gorm:"uniqueIndex:idx_user_coin" json:"coin_symbol"`
	Balance       decimal.Decimal `gorm:"type:numeric(32,8)" json:"balance"`
	LockedBalance decimal.Decimal `gorm:"type:numeric(32,8)" json:"locked_balance"`

	Timestamp
}

func (Balance) TableName() string {
	return "user_balances"
}
