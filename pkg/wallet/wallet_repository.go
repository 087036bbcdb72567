package wallet

import (
	"Moon-Trade-Backend/domain"
	"Moon-Trade-Backend/entities"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// WalletRepository is the balance store. Every mutation is a single
	// conditional UPDATE so the store serializes conflicting writes; a
	// guard that matches zero rows reports ErrInsufficientBalance instead
	// of racing a prior read.
	WalletRepository interface {
		Ensure(ctx context.Context, userID uuid.UUID, symbol string) error
		Credit(ctx context.Context, userID uuid.UUID, symbol string, amount decimal.Decimal) error
		Debit(ctx context.Context, userID uuid.UUID, symbol string, amount decimal.Decimal) error
		Lock(ctx context.Context, userID uuid.UUID, symbol string, amount decimal.Decimal) error
		DebitLocked(ctx context.Context, userID uuid.UUID, symbol string, amount decimal.Decimal) error
		GetBalance(ctx context.Context, userID uuid.UUID, symbol string) (*entities.Balance, error)
		ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Balance, error)
	}

	walletRepository struct {
		db *gorm.DB
	}
)

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{
		db: db,
	}
}

var balanceConflictColumns = []clause.Column{{Name: "user_id"}, {Name: "coin_symbol"}}

// Ensure lazily creates the zero-balance row for (user, coin).
func (r *walletRepository) Ensure(ctx context.Context, userID uuid.UUID, symbol string) error {
	now := time.Now()
	row := &entities.Balance{
		ID:            uuid.New(),
		UserID:        userID,
		CoinSymbol:    symbol,
		Balance:       decimal.Zero,
		LockedBalance: decimal.Zero,
		Timestamp:     entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: balanceConflictColumns, DoNothing: true}).
		Create(row).Error
}

// Credit adds to the available balance, creating the row when missing.
func (r *walletRepository) Credit(ctx context.Context, userID uuid.UUID, symbol string, amount decimal.Decimal) error {
	now := time.Now()
	row := &entities.Balance{
		ID:            uuid.New(),
		UserID:        userID,
		CoinSymbol:    symbol,
		Balance:       amount,
		LockedBalance: decimal.Zero,
		Timestamp:     entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: balanceConflictColumns,
			DoUpdates: clause.Assignments(map[string]interface{}{
				"balance":    gorm.Expr("user_balances.balance + excluded.balance"),
				"updated_at": now,
			}),
		}).
		Create(row).Error
}

// Debit decreases the available balance only when the result stays
// non-negative; zero rows affected means insufficient funds.
func (r *walletRepository) Debit(ctx context.Context, userID uuid.UUID, symbol string, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Balance{}).
		Where("user_id = ? AND coin_symbol = ? AND balance >= ?", userID, symbol, amount).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}

// Lock moves funds from available to locked in one statement.
func (r *walletRepository) Lock(ctx context.Context, userID uuid.UUID, symbol string, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Balance{}).
		Where("user_id = ? AND coin_symbol = ? AND balance >= ?", userID, symbol, amount).
		Updates(map[string]interface{}{
			"balance":        gorm.Expr("balance - ?", amount),
			"locked_balance": gorm.Expr("locked_balance + ?", amount),
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}

// DebitLocked burns previously locked funds; unlock-then-debit collapsed
// into one decrease of the locked column.
func (r *walletRepository) DebitLocked(ctx context.Context, userID uuid.UUID, symbol string, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Balance{}).
		Where("user_id = ? AND coin_symbol = ? AND locked_balance >= ?", userID, symbol, amount).
		Updates(map[string]interface{}{
			"locked_balance": gorm.Expr("locked_balance - ?", amount),
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrInsufficientBalance
	}
	return nil
}

func (r *walletRepository) GetBalance(ctx context.Context, userID uuid.UUID, symbol string) (*entities.Balance, error) {
	var balance entities.Balance
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND coin_symbol = ?", userID, symbol).
		First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &entities.Balance{
				UserID:        userID,
				CoinSymbol:    symbol,
				Balance:       decimal.Zero,
				LockedBalance: decimal.Zero,
			}, nil
		}
		return nil, err
	}
	return &balance, nil
}

func (r *walletRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Balance, error) {
	var balances []entities.Balance
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("coin_symbol ASC").
		Find(&balances).Error; err != nil {
		return nil, err
	}
	return balances, nil
}
