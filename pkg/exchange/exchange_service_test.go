package exchange

import (
	"Moon-Trade-Backend/domain"
	"Moon-Trade-Backend/entities"
	"Moon-Trade-Backend/pkg/coin"
	"Moon-Trade-Backend/pkg/wallet"
	"context"
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
	require.NoError(t, db.AutoMigrate(&entities.Coin{}, &entities.Balance{}, &entities.Transaction{}))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedCoin(t *testing.T, db *gorm.DB, symbol, price string) {
	t.Helper()
	require.NoError(t, db.Create(&entities.Coin{
		ID:       uuid.New(),
		Symbol:   symbol,
		Name:     symbol,
		Price:    dec(price),
		IsActive: true,
	}).Error)
}

func newTestService(t *testing.T) (ExchangeService, wallet.WalletRepository, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	service := NewExchangeService(db, coin.NewCoinRepository(db))
	return service, wallet.NewWalletRepository(db), db
}

func TestExchangeConversionAndFee(t *testing.T) {
	service, walletRepository, db := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	seedCoin(t, db, "AAA", "2")
	seedCoin(t, db, "BBB", "5")
	require.NoError(t, walletRepository.Credit(ctx, userID, "AAA", dec("10")))

	// 10 AAA at $2 = $20; fee 0.1% = $0.02; ($20 - $0.02) / $5 = 3.996 BBB
	res, err := service.Exchange(ctx, domain.ExchangeRequest{
		UserID:     userID.String(),
		FromSymbol: "AAA",
		ToSymbol:   "BBB",
		Amount:     dec("10"),
	})
	require.NoError(t, err)
	assert.True(t, res.ToAmount.Equal(dec("3.996")), "got %s", res.ToAmount)
	assert.True(t, res.FeeUSD.Equal(dec("0.02")), "got %s", res.FeeUSD)

	from, err := walletRepository.GetBalance(ctx, userID, "AAA")
	require.NoError(t, err)
	assert.True(t, from.Balance.IsZero())

	to, err := walletRepository.GetBalance(ctx, userID, "BBB")
	require.NoError(t, err)
	assert.True(t, to.Balance.Equal(dec("3.996")))

	var count int64
	require.NoError(t, db.Model(&entities.Transaction{}).
		Where("type = ? AND status = ?", entities.TransactionTypeExchange, entities.TransactionStatusCompleted).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestExchangeInsufficientWritesNothing(t *testing.T) {
	service, walletRepository, db := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	seedCoin(t, db, "AAA", "2")
	seedCoin(t, db, "BBB", "5")
	require.NoError(t, walletRepository.Credit(ctx, userID, "AAA", dec("1")))

	_, err := service.Exchange(ctx, domain.ExchangeRequest{
		UserID:     userID.String(),
		FromSymbol: "AAA",
		ToSymbol:   "BBB",
		Amount:     dec("10"),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

	balance, err := walletRepository.GetBalance(ctx, userID, "AAA")
	require.NoError(t, err)
	assert.True(t, balance.Balance.Equal(dec("1")))

	var count int64
	require.NoError(t, db.Model(&entities.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestExchangeSameAsset(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Exchange(context.Background(), domain.ExchangeRequest{
		UserID:     uuid.New().String(),
		FromSymbol: "btc",
		ToSymbol:   "BTC",
		Amount:     dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrSameAsset)
}

func TestExchangeUnknownCoin(t *testing.T) {
	service, _, db := newTestService(t)

	seedCoin(t, db, "AAA", "2")

	_, err := service.Exchange(context.Background(), domain.ExchangeRequest{
		UserID:     uuid.New().String(),
		FromSymbol: "AAA",
		ToSymbol:   "NOPE",
		Amount:     dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrPriceUnavailable)
}

func TestTradeBuy(t *testing.T) {
	service, walletRepository, db := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	seedCoin(t, db, "MOON", "2")
	require.NoError(t, walletRepository.Credit(ctx, userID, "USDT", dec("100")))

	// buying 10 MOON at $2 costs $20 plus $0.02 fee
	res, err := service.Trade(ctx, domain.TradeRequest{
		UserID:     userID.String(),
		CoinSymbol: "MOON",
		Side:       domain.TradeSideBuy,
		Amount:     dec("10"),
	})
	require.NoError(t, err)
	assert.True(t, res.TotalUSD.Equal(dec("20")))
	assert.True(t, res.FeeUSD.Equal(dec("0.02")))

	quote, err := walletRepository.GetBalance(ctx, userID, "USDT")
	require.NoError(t, err)
	assert.True(t, quote.Balance.Equal(dec("79.98")))

	base, err := walletRepository.GetBalance(ctx, userID, "MOON")
	require.NoError(t, err)
	assert.True(t, base.Balance.Equal(dec("10")))
}

func TestTradeSell(t *testing.T) {
	service, walletRepository, db := newTestService(t)
	ctx := context.Background()
	userID := uuid.New()

	seedCoin(t, db, "MOON", "2")
	require.NoError(t, walletRepository.Credit(ctx, userID, "MOON", dec("10")))

	res, err := service.Trade(ctx, domain.TradeRequest{
		UserID:     userID.String(),
		CoinSymbol: "MOON",
		Side:       domain.TradeSideSell,
		Amount:     dec("10"),
	})
	require.NoError(t, err)
	assert.True(t, res.TotalUSD.Equal(dec("20")))

	quote, err := walletRepository.GetBalance(ctx, userID, "USDT")
	require.NoError(t, err)
	assert.True(t, quote.Balance.Equal(dec("19.98")))

	base, err := walletRepository.GetBalance(ctx, userID, "MOON")
	require.NoError(t, err)
	assert.True(t, base.Balance.IsZero())
}

func TestTradeRejectsQuoteSymbol(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.Trade(context.Background(), domain.TradeRequest{
		UserID:     uuid.New().String(),
		CoinSymbol: "USDT",
		Side:       domain.TradeSideBuy,
		Amount:     dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSymbol)
}
