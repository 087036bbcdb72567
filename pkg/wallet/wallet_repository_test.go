package wallet

import (
	"Moon-Trade-Backend/domain"
	"Moon-Trade-Backend/entities"
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&entities.Balance{}))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCreditCreatesRow(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Credit(ctx, userID, "BTC", dec("1.5")))

	balance, err := repo.GetBalance(ctx, userID, "BTC")
	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(dec("1.5")))
	assert.True(t, balance.LockedBalance.IsZero())
}

func TestCreditAccumulates(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Credit(ctx, userID, "BTC", dec("1")))
	require.NoError(t, repo.Credit(ctx, userID, "BTC", dec("0.25")))

	balance, err := repo.GetBalance(ctx, userID, "BTC")
	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(dec("1.25")))
}

func TestDebitInsufficientLeavesBalanceUntouched(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Credit(ctx, userID, "ETH", dec("2")))

	err := repo.Debit(ctx, userID, "ETH", dec("3"))
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	balance, err := repo.GetBalance(ctx, userID, "ETH")
	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(dec("2")))
}

func TestDebitMissingRowIsInsufficient(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))

	err := repo.Debit(context.Background(), uuid.New(), "BTC", dec("1"))
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
}

func TestLockMovesFunds(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Credit(ctx, userID, "BTC", dec("10")))
	require.NoError(t, repo.Lock(ctx, userID, "BTC", dec("4")))

	balance, err := repo.GetBalance(ctx, userID, "BTC")
	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(dec("6")))
	assert.True(t, balance.LockedBalance.Equal(dec("4")))
}

func TestLockRejectsMoreThanAvailable(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Credit(ctx, userID, "BTC", dec("10")))
	require.NoError(t, repo.Lock(ctx, userID, "BTC", dec("7")))

	err := repo.Lock(ctx, userID, "BTC", dec("4"))
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	balance, err := repo.GetBalance(ctx, userID, "BTC")
	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(dec("3")))
	assert.True(t, balance.LockedBalance.Equal(dec("7")))
}

func TestDebitLockedBurnsLockOnly(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Credit(ctx, userID, "BTC", dec("10")))
	require.NoError(t, repo.Lock(ctx, userID, "BTC", dec("4")))
	require.NoError(t, repo.DebitLocked(ctx, userID, "BTC", dec("4")))

	balance, err := repo.GetBalance(ctx, userID, "BTC")
	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(dec("6")))
	assert.True(t, balance.LockedBalance.IsZero())
}

func TestEnsureIsIdempotent(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Ensure(ctx, userID, "USDT"))
	require.NoError(t, repo.Credit(ctx, userID, "USDT", dec("100")))
	require.NoError(t, repo.Ensure(ctx, userID, "USDT"))

	balance, err := repo.GetBalance(ctx, userID, "USDT")
	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(dec("100")))
}

func TestGetBalanceMissingRowIsZero(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))

	balance, err := repo.GetBalance(context.Background(), uuid.New(), "BTC")
	require.NoError(t, err)
	assert.True(t, balance.Balance.IsZero())
	assert.True(t, balance.LockedBalance.IsZero())
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Credit(ctx, userID, "BTC", dec("50")))

	var wg sync.WaitGroup
	var succeeded int64
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := repo.Debit(ctx, userID, "BTC", dec("10")); err == nil {
				atomic.AddInt64(&succeeded, 1)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 5, succeeded)

	balance, err := repo.GetBalance(ctx, userID, "BTC")
	require.NoError(t, err)
	assert.True(t, balance.Balance.IsZero(), "got %s", balance.Balance)
}

func TestConcurrentDebitsAndLocksConserveFunds(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Credit(ctx, userID, "BTC", dec("50")))

	var wg sync.WaitGroup
	var debited, locked int64
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := repo.Debit(ctx, userID, "BTC", dec("10")); err == nil {
				atomic.AddInt64(&debited, 1)
			}
		}()
		go func() {
			defer wg.Done()
			if err := repo.Lock(ctx, userID, "BTC", dec("10")); err == nil {
				atomic.AddInt64(&locked, 1)
			}
		}()
	}
	wg.Wait()

	// exactly five guarded updates can win over a balance of 50
	assert.EqualValues(t, 5, debited+locked)

	balance, err := repo.GetBalance(ctx, userID, "BTC")
	require.NoError(t, err)
	assert.False(t, balance.Balance.IsNegative())
	assert.False(t, balance.LockedBalance.IsNegative())
	assert.True(t, balance.LockedBalance.Equal(decimal.NewFromInt(locked*10)))

	total := balance.Balance.Add(balance.LockedBalance).Add(decimal.NewFromInt(debited * 10))
	assert.True(t, total.Equal(dec("50")), "funds not conserved: %s", total)
}

func TestListByUser(t *testing.T) {
	repo := NewWalletRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, repo.Credit(ctx, userID, "BTC", dec("1")))
	require.NoError(t, repo.Credit(ctx, userID, "ETH", dec("2")))
	require.NoError(t, repo.Credit(ctx, uuid.New(), "BTC", dec("9")))

	balances, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, balances, 2)
}
