package transaction

import (
	"Moon-Trade-Backend/domain"
	"Moon-Trade-Backend/entities"
	"Moon-Trade-Backend/pkg/wallet"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	TransactionService interface {
		CreateDeposit(ctx context.Context, req domain.CreateDepositRequest) (*entities.Transaction, error)
		ApproveDeposit(ctx context.Context, id uuid.UUID) error
		RejectDeposit(ctx context.Context, id uuid.UUID) error
		CreateWithdraw(ctx context.Context, req domain.CreateWithdrawRequest) (*entities.Transaction, error)
		ApproveWithdraw(ctx context.Context, id uuid.UUID) error
		RejectWithdraw(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, txType, status string) ([]entities.Transaction, error)
	}

	// ProfileGetter resolves the recipient for status notices.
	ProfileGetter interface {
		GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error)
	}

	Mailer interface {
		Send(toEmail string, subject string, body string) error
	}

	transactionService struct {
		db                    *gorm.DB
		transactionRepository TransactionRepository
		walletRepository      wallet.WalletRepository
		profiles              ProfileGetter
		mailer                Mailer
	}
)

func NewTransactionService(
	db *gorm.DB,
	transactionRepository TransactionRepository,
	walletRepository wallet.WalletRepository,
	profiles ProfileGetter,
	mailer Mailer,
) TransactionService {
	return &transactionService{
		db:                    db,
		transactionRepository: transactionRepository,
		walletRepository:      walletRepository,
		profiles:              profiles,
		mailer:                mailer,
	}
}

func (s *transactionService) CreateDeposit(ctx context.Context, req domain.CreateDepositRequest) (*entities.Transaction, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if req.CoinSymbol == "" {
		return nil, domain.ErrInvalidSymbol
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	details, err := json.Marshal(req.Details)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tx := &entities.Transaction{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       entities.TransactionTypeDeposit,
		CoinSymbol: req.CoinSymbol,
		Amount:     req.Amount,
		Status:     entities.TransactionStatusPending,
		Details:    string(details),
		Timestamp:  entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.transactionRepository.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// ApproveDeposit credits the available balance and completes the
// transaction in one committed unit. The pending-guarded transition runs
// first, so a concurrent approval sees zero rows and never credits twice.
func (s *transactionService) ApproveDeposit(ctx context.Context, id uuid.UUID) error {
	tx, err := s.getPending(ctx, id, entities.TransactionTypeDeposit)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		flipped, err := NewTransactionRepository(dbtx).Transition(ctx, id, entities.TransactionStatusCompleted)
		if err != nil {
			return err
		}
		if !flipped {
			return domain.ErrAlreadyProcessed
		}
		return wallet.NewWalletRepository(dbtx).Credit(ctx, tx.UserID, tx.CoinSymbol, tx.Amount)
	})
	if err != nil {
		return err
	}

	s.notify(ctx, tx, "approved")
	return nil
}

func (s *transactionService) RejectDeposit(ctx context.Context, id uuid.UUID) error {
	tx, err := s.getPending(ctx, id, entities.TransactionTypeDeposit)
	if err != nil {
		return err
	}

	flipped, err := s.transactionRepository.Transition(ctx, id, entities.TransactionStatusRejected)
	if err != nil {
		return err
	}
	if !flipped {
		return domain.ErrAlreadyProcessed
	}

	s.notify(ctx, tx, "rejected")
	return nil
}

// CreateWithdraw locks the requested amount eagerly; when the lock matches
// zero rows the request fails synchronously and no transaction is written.
// Lock and pending row commit together, so a failed insert can never leave
// funds locked without a withdrawal an operator could reject.
func (s *transactionService) CreateWithdraw(ctx context.Context, req domain.CreateWithdrawRequest) (*entities.Transaction, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	if req.CoinSymbol == "" {
		return nil, domain.ErrInvalidSymbol
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if req.Details.Address == "" || req.Details.Network == "" {
		return nil, domain.ErrAddressRequired
	}

	details, err := json.Marshal(req.Details)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tx := &entities.Transaction{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       entities.TransactionTypeWithdraw,
		CoinSymbol: req.CoinSymbol,
		Amount:     req.Amount,
		Status:     entities.TransactionStatusPending,
		Details:    string(details),
		Timestamp:  entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}

	err = s.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		walletRepository := wallet.NewWalletRepository(dbtx)
		if err := walletRepository.Ensure(ctx, userID, req.CoinSymbol); err != nil {
			return err
		}
		if err := walletRepository.Lock(ctx, userID, req.CoinSymbol, req.Amount); err != nil {
			return err
		}
		return NewTransactionRepository(dbtx).Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// ApproveWithdraw burns the locked amount, falling back to the available
// balance for rows created before locking existed. Transition and debit
// commit together; an insufficient-funds debit rolls the transition back
// so the transaction stays pending for operator retry.
func (s *transactionService) ApproveWithdraw(ctx context.Context, id uuid.UUID) error {
	tx, err := s.getPending(ctx, id, entities.TransactionTypeWithdraw)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		flipped, err := NewTransactionRepository(dbtx).Transition(ctx, id, entities.TransactionStatusCompleted)
		if err != nil {
			return err
		}
		if !flipped {
			return domain.ErrAlreadyProcessed
		}

		walletRepository := wallet.NewWalletRepository(dbtx)
		balance, err := walletRepository.GetBalance(ctx, tx.UserID, tx.CoinSymbol)
		if err != nil {
			return err
		}
		if balance.LockedBalance.GreaterThanOrEqual(tx.Amount) {
			return walletRepository.DebitLocked(ctx, tx.UserID, tx.CoinSymbol, tx.Amount)
		}
		return walletRepository.Debit(ctx, tx.UserID, tx.CoinSymbol, tx.Amount)
	})
	if err != nil {
		return err
	}

	s.notify(ctx, tx, "approved")
	return nil
}

// RejectWithdraw refunds the full amount into the available balance. The
// refund is always a credit, never an unlock, so it is safe regardless of
// how far a prior approval attempt got; the pending-guarded transition
// runs first and is what prevents a repeat call from over-crediting.
func (s *transactionService) RejectWithdraw(ctx context.Context, id uuid.UUID) error {
	tx, err := s.getPending(ctx, id, entities.TransactionTypeWithdraw)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		flipped, err := NewTransactionRepository(dbtx).Transition(ctx, id, entities.TransactionStatusRejected)
		if err != nil {
			return err
		}
		if !flipped {
			return domain.ErrAlreadyProcessed
		}

		walletRepository := wallet.NewWalletRepository(dbtx)
		// drain the lock if it still holds this amount, then restore it
		// to available either way
		if lockErr := walletRepository.DebitLocked(ctx, tx.UserID, tx.CoinSymbol, tx.Amount); lockErr != nil &&
			!errors.Is(lockErr, domain.ErrInsufficientBalance) {
			return lockErr
		}
		return walletRepository.Credit(ctx, tx.UserID, tx.CoinSymbol, tx.Amount)
	})
	if err != nil {
		return err
	}

	s.notify(ctx, tx, "rejected")
	return nil
}

func (s *transactionService) List(ctx context.Context, txType, status string) ([]entities.Transaction, error) {
	return s.transactionRepository.List(ctx, txType, status)
}

func (s *transactionService) getPending(ctx context.Context, id uuid.UUID, txType string) (*entities.Transaction, error) {
	tx, err := s.transactionRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	if tx.Type != txType {
		return nil, domain.ErrWrongTransactionType
	}
	if tx.Status != entities.TransactionStatusPending {
		return nil, domain.ErrAlreadyProcessed
	}
	return tx, nil
}

// notify sends a best-effort status mail; failures are logged and never
// affect the workflow outcome.
func (s *transactionService) notify(ctx context.Context, tx *entities.Transaction, action string) {
	if s.mailer == nil || s.profiles == nil {
		return
	}
	profile, err := s.profiles.GetByID(ctx, tx.UserID)
	if err != nil {
		log.Warnf("notify: profile lookup failed for %s: %v", tx.UserID, err)
		return
	}

	subject := fmt.Sprintf("Your %s was %s", tx.Type, action)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your %s of %s %s has been %s.</p>",
		profile.Name, tx.Type, tx.Amount.String(), tx.CoinSymbol, action,
	)
	if err := s.mailer.Send(profile.Email, subject, body); err != nil {
		log.Warnf("notify: send mail to %s failed: %v", profile.Email, err)
	}
}
