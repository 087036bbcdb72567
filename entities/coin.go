package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Coin struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Symbol    string          `gorm:"uniqueIndex" json:"symbol"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `gorm:"type:numeric(32,8)" json:"price"`
	Change24h decimal.Decimal `gorm:"column:change_24h;type:numeric(16,8)" json:"change_24h"`
	Volume    decimal.Decimal `gorm:"type:numeric(32,8)" json:"volume"`
	MarketCap decimal.Decimal `gorm:"type:numeric(32,8)" json:"market_cap"`
	IsCustom  bool            `json:"is_custom"`
	IsActive  bool            `json:"is_active"`

	Timestamp
}

func (Coin) TableName() string {
	return "coins"
}

type PriceHistory struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CoinSymbol string          `gorm:"index" json:"coin_symbol"`
	Price      decimal.Decimal `gorm:"type:numeric(32,8)" json:"price"`
	Source     string          `json:"source"` // "planner", "manual"
	Note       string          `json:"note"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (PriceHistory) TableName() string {
	return "price_history"
}
