package transaction

import (
	"Moon-Trade-Backend/entities"
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const listLimit = 200

type (
	// TransactionRepository is the append-and-transition transaction log.
	TransactionRepository interface {
		Create(ctx context.Context, tx *entities.Transaction) error
		GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error)
		// Transition flips a pending transaction to the given status. The
		// pending guard lives in the statement itself, so a second call
		// reports false instead of double-applying.
		Transition(ctx context.Context, id uuid.UUID, toStatus string) (bool, error)
		List(ctx context.Context, txType, status string) ([]entities.Transaction, error)
		ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Transaction, error)
	}

	transactionRepository struct {
		db *gorm.DB
	}
)

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

func (r *transactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	var tx entities.Transaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&tx).Error; err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *transactionRepository) Transition(ctx context.Context, id uuid.UUID, toStatus string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Transaction{}).
		Where("id = ? AND status = ?", id, entities.TransactionStatusPending).
		Updates(map[string]interface{}{
			"status":     toStatus,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *transactionRepository) List(ctx context.Context, txType, status string) ([]entities.Transaction, error) {
	query := r.db.WithContext(ctx).Model(&entities.Transaction{})
	if txType != "" {
		query = query.Where("type = ?", txType)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var transactions []entities.Transaction
	if err := query.
		Order("created_at DESC").
		Limit(listLimit).
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Transaction, error) {
	var transactions []entities.Transaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(listLimit).
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}
