package plan

import (
	"Moon-Trade-Backend/domain"
	"Moon-Trade-Backend/entities"
	"Moon-Trade-Backend/pkg/coin"
	"context"
	"testing"
	"time"

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
	require.NoError(t, db.AutoMigrate(
		&entities.Coin{}, &entities.Plan{}, &entities.PlanRun{}, &entities.PriceHistory{},
	))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

const testDay = "2024-03-15"

func newTestService(t *testing.T) (PlanService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	service := NewPlanService(NewPlanRepository(db), coin.NewCoinRepository(db), time.UTC)
	service.(*planService).now = func() time.Time { return testNow }
	return service, db
}

func seedManagedCoin(t *testing.T, db *gorm.DB, price string) {
	t.Helper()
	require.NoError(t, db.Create(&entities.Coin{
		ID:       uuid.New(),
		Symbol:   domain.ManagedSymbol,
		Name:     "MoonCoin",
		Price:    dec(price),
		IsCustom: true,
		IsActive: true,
	}).Error)
}

func TestApplyMovesPriceByTargetPct(t *testing.T) {
	service, db := newTestService(t)
	ctx := context.Background()

	seedManagedCoin(t, db, "1.00")
	require.NoError(t, service.Upsert(ctx, domain.UpsertPlanRequest{
		Day:       testDay,
		TargetPct: dec("20"),
		Note:      "pump day",
	}))

	result, err := service.Apply(ctx)
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, testDay, result.Day)
	assert.True(t, result.NewPrice.Equal(dec("1.2")), "got %s", result.NewPrice)

	var managed entities.Coin
	require.NoError(t, db.Where("symbol = ?", domain.ManagedSymbol).First(&managed).Error)
	assert.True(t, managed.Price.Equal(dec("1.2")))
	assert.True(t, managed.Change24h.Equal(dec("20")))

	var run entities.PlanRun
	require.NoError(t, db.Where("day = ?", testDay).First(&run).Error)
	assert.True(t, run.Pct.Equal(dec("20")))

	var history int64
	require.NoError(t, db.Model(&entities.PriceHistory{}).
		Where("coin_symbol = ? AND source = ?", domain.ManagedSymbol, "planner").
		Count(&history).Error)
	assert.EqualValues(t, 1, history)
}

func TestApplyTwiceIsNoOp(t *testing.T) {
	service, db := newTestService(t)
	ctx := context.Background()

	seedManagedCoin(t, db, "1.00")
	require.NoError(t, service.Upsert(ctx, domain.UpsertPlanRequest{
		Day:       testDay,
		TargetPct: dec("20"),
	}))

	first, err := service.Apply(ctx)
	require.NoError(t, err)
	require.True(t, first.Applied)

	second, err := service.Apply(ctx)
	require.NoError(t, err)
	assert.False(t, second.Applied)

	var managed entities.Coin
	require.NoError(t, db.Where("symbol = ?", domain.ManagedSymbol).First(&managed).Error)
	assert.True(t, managed.Price.Equal(dec("1.2")), "price applied twice: %s", managed.Price)
}

func TestApplyWithoutPlanIsNoOp(t *testing.T) {
	service, db := newTestService(t)

	seedManagedCoin(t, db, "1.00")

	result, err := service.Apply(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Applied)

	var runs int64
	require.NoError(t, db.Model(&entities.PlanRun{}).Count(&runs).Error)
	assert.Zero(t, runs)
}

func TestApplyNegativePct(t *testing.T) {
	service, db := newTestService(t)
	ctx := context.Background()

	seedManagedCoin(t, db, "2.00")
	require.NoError(t, service.Upsert(ctx, domain.UpsertPlanRequest{
		Day:       testDay,
		TargetPct: dec("-50"),
	}))

	result, err := service.Apply(ctx)
	require.NoError(t, err)
	assert.True(t, result.NewPrice.Equal(dec("1")), "got %s", result.NewPrice)
}

func TestApplyMissingManagedCoin(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.Upsert(ctx, domain.UpsertPlanRequest{
		Day:       testDay,
		TargetPct: dec("20"),
	}))

	_, err := service.Apply(ctx)
	assert.ErrorIs(t, err, domain.ErrCoinNotFound)
}

func TestUpsertRejectsBadDay(t *testing.T) {
	service, _ := newTestService(t)

	err := service.Upsert(context.Background(), domain.UpsertPlanRequest{
		Day:       "15-03-2024",
		TargetPct: dec("5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDay)
}

func TestUpsertOverwritesExistingDay(t *testing.T) {
	service, db := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.Upsert(ctx, domain.UpsertPlanRequest{Day: testDay, TargetPct: dec("5")}))
	require.NoError(t, service.Upsert(ctx, domain.UpsertPlanRequest{Day: testDay, TargetPct: dec("7"), Note: "revised"}))

	var plan entities.Plan
	require.NoError(t, db.Where("day = ?", testDay).First(&plan).Error)
	assert.True(t, plan.TargetPct.Equal(dec("7")))
	assert.Equal(t, "revised", plan.Note)
}

func TestListDefaultsToWindowAroundToday(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.Upsert(ctx, domain.UpsertPlanRequest{Day: "2024-03-10", TargetPct: dec("1")}))
	require.NoError(t, service.Upsert(ctx, domain.UpsertPlanRequest{Day: "2024-03-20", TargetPct: dec("2")}))
	require.NoError(t, service.Upsert(ctx, domain.UpsertPlanRequest{Day: "2024-05-01", TargetPct: dec("3")}))

	plans, err := service.List(ctx, "", "")
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "2024-03-10", plans[0].Day)
	assert.Equal(t, "2024-03-20", plans[1].Day)
}

func TestDeletePlan(t *testing.T) {
	service, db := newTestService(t)
	ctx := context.Background()

	require.NoError(t, service.Upsert(ctx, domain.UpsertPlanRequest{Day: testDay, TargetPct: dec("5")}))
	require.NoError(t, service.Delete(ctx, testDay))

	var count int64
	require.NoError(t, db.Model(&entities.Plan{}).Count(&count).Error)
	assert.Zero(t, count)
}
