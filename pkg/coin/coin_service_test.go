package coin

import (
	"Moon-Trade-Backend/domain"
	"Moon-Trade-Backend/entities"
	"context"
	"testing"

	"github.com/glebarez/sqlite"
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
	require.NoError(t, db.AutoMigrate(&entities.Coin{}, &entities.PriceHistory{}))
	return db
}

func newTestService(t *testing.T) (CoinService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewCoinService(NewCoinRepository(db)), db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSeedPopulatesEmptyTableOnce(t *testing.T) {
	service, db := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.Seed(ctx))

	var count int64
	require.NoError(t, db.Model(&entities.Coin{}).Count(&count).Error)
	assert.EqualValues(t, 10, count)

	// a second seed must not duplicate
	require.NoError(t, service.Seed(ctx))
	require.NoError(t, db.Model(&entities.Coin{}).Count(&count).Error)
	assert.EqualValues(t, 10, count)

	var managed entities.Coin
	require.NoError(t, db.Where("symbol = ?", domain.ManagedSymbol).First(&managed).Error)
	assert.True(t, managed.IsCustom)
	assert.True(t, managed.Price.Equal(dec("0.0125")))
}

func TestGetCoinsReturnsActiveOnly(t *testing.T) {
	service, db := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.Seed(ctx))
	require.NoError(t, db.Model(&entities.Coin{}).
		Where("symbol = ?", "ADA").
		Update("is_active", false).Error)

	coins, err := service.GetCoins(ctx)
	require.NoError(t, err)
	assert.Len(t, coins, 9)
}

func TestUpdatePriceWritesHistory(t *testing.T) {
	service, db := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.Seed(ctx))

	change := dec("4.2")
	require.NoError(t, service.UpdatePrice(ctx, "moon", domain.UpdatePriceRequest{
		Price:     dec("0.05"),
		Change24h: &change,
		Note:      "listing bump",
	}))

	var managed entities.Coin
	require.NoError(t, db.Where("symbol = ?", domain.ManagedSymbol).First(&managed).Error)
	assert.True(t, managed.Price.Equal(dec("0.05")))
	assert.True(t, managed.Change24h.Equal(dec("4.2")))

	var history entities.PriceHistory
	require.NoError(t, db.Where("coin_symbol = ? AND source = ?", domain.ManagedSymbol, "manual").First(&history).Error)
	assert.Equal(t, "listing bump", history.Note)
}

func TestUpdatePriceUnknownCoin(t *testing.T) {
	service, _ := newTestService(t)

	err := service.UpdatePrice(context.Background(), "NOPE", domain.UpdatePriceRequest{
		Price: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrCoinNotFound)
}

func TestUpdatePriceRejectsNonPositive(t *testing.T) {
	service, _ := newTestService(t)

	err := service.UpdatePrice(context.Background(), "BTC", domain.UpdatePriceRequest{
		Price: dec("0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}
