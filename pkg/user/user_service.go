package user

import (
	"Moon-Trade-Backend/domain"
	"Moon-Trade-Backend/entities"
	"Moon-Trade-Backend/pkg/transaction"
	"Moon-Trade-Backend/pkg/wallet"
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserService interface {
		UpsertProfile(ctx context.Context, req domain.UpsertProfileRequest) (*entities.Profile, error)
		// GetUserData resolves a profile by email or id and bundles its
		// balance snapshot and recent transactions.
		GetUserData(ctx context.Context, email, id string) (*domain.UserDataResponse, error)
	}

	userService struct {
		userRepository        UserRepository
		walletRepository      wallet.WalletRepository
		transactionRepository transaction.TransactionRepository
	}
)

func NewUserService(
	userRepository UserRepository,
	walletRepository wallet.WalletRepository,
	transactionRepository transaction.TransactionRepository,
) UserService {
	return &userService{
		userRepository:        userRepository,
		walletRepository:      walletRepository,
		transactionRepository: transactionRepository,
	}
}

func (s *userService) UpsertProfile(ctx context.Context, req domain.UpsertProfileRequest) (*entities.Profile, error) {
	profile := &entities.Profile{
		Email:   req.Email,
		Name:    req.Name,
		IsAdmin: req.IsAdmin,
	}
	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		profile.ID = id
	}

	if err := s.userRepository.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return s.userRepository.GetByEmail(ctx, profile.Email)
}

func (s *userService) GetUserData(ctx context.Context, email, id string) (*domain.UserDataResponse, error) {
	profile, err := s.resolveProfile(ctx, email, id)
	if err != nil {
		return nil, err
	}

	balances, err := s.walletRepository.ListByUser(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	snapshots := make([]domain.BalanceSnapshot, 0, len(balances))
	for _, b := range balances {
		snapshots = append(snapshots, domain.BalanceSnapshot{
			CoinSymbol:    b.CoinSymbol,
			Balance:       b.Balance,
			LockedBalance: b.LockedBalance,
		})
	}

	transactions, err := s.transactionRepository.ListByUser(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	return &domain.UserDataResponse{
		Profile:      profile,
		Balances:     snapshots,
		Transactions: transactions,
	}, nil
}

func (s *userService) resolveProfile(ctx context.Context, email, id string) (*entities.Profile, error) {
	switch {
	case email != "":
		profile, err := s.userRepository.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrProfileNotFound
			}
			return nil, err
		}
		return profile, nil
	case id != "":
		userID, err := uuid.Parse(id)
		if err != nil {
			return nil, domain.ErrParseUUID
		}
		profile, err := s.userRepository.GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrProfileNotFound
			}
			return nil, err
		}
		return profile, nil
	default:
		return nil, domain.ErrMissingLookup
	}
}
