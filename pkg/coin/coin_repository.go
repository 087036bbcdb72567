package coin

import (
	"Moon-Trade-Backend/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	CoinRepository interface {
		GetBySymbol(ctx context.Context, symbol string) (*entities.Coin, error)
		ListActive(ctx context.Context) ([]entities.Coin, error)
		Count(ctx context.Context) (int64, error)
		CreateBatch(ctx context.Context, coins []entities.Coin) error
		// UpdatePrice sets the price, and the 24h change when changePct is
		// non-nil. It does not touch price history; callers decide that.
		UpdatePrice(ctx context.Context, symbol string, price decimal.Decimal, changePct *decimal.Decimal) error
		AddPriceHistory(ctx context.Context, entry *entities.PriceHistory) error
	}

	coinRepository struct {
		db *gorm.DB
	}
)

func NewCoinRepository(db *gorm.DB) CoinRepository {
	return &coinRepository{
		db: db,
	}
}

func (r *coinRepository) GetBySymbol(ctx context.Context, symbol string) (*entities.Coin, error) {
	var c entities.Coin
	if err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *coinRepository) ListActive(ctx context.Context) ([]entities.Coin, error) {
	var coins []entities.Coin
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("market_cap DESC").
		Find(&coins).Error; err != nil {
		return nil, err
	}
	return coins, nil
}

func (r *coinRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Coin{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *coinRepository) CreateBatch(ctx context.Context, coins []entities.Coin) error {
	return r.db.WithContext(ctx).Create(&coins).Error
}

func (r *coinRepository) UpdatePrice(ctx context.Context, symbol string, price decimal.Decimal, changePct *decimal.Decimal) error {
	updates := map[string]interface{}{
		"price":      price,
		"updated_at": time.Now(),
	}
	if changePct != nil {
		updates["change_24h"] = *changePct
	}

	res := r.db.WithContext(ctx).
		Model(&entities.Coin{}).
		Where("symbol = ?", symbol).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *coinRepository) AddPriceHistory(ctx context.Context, entry *entities.PriceHistory) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}
