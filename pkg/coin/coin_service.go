package coin

import (
	"Moon-Trade-Backend/domain"
	"Moon-Trade-Backend/entities"
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	CoinService interface {
		GetCoins(ctx context.Context) ([]entities.Coin, error)
		UpdatePrice(ctx context.Context, symbol string, req domain.UpdatePriceRequest) error
		Seed(ctx context.Context) error
	}

	coinService struct {
		coinRepository CoinRepository
	}
)

func NewCoinService(coinRepository CoinRepository) CoinService {
	return &coinService{
		coinRepository: coinRepository,
	}
}

func (s *coinService) GetCoins(ctx context.Context) ([]entities.Coin, error) {
	return s.coinRepository.ListActive(ctx)
}

// UpdatePrice is the manual admin price edit. Unlike the plan applier it
// records the history entry unconditionally.
func (s *coinService) UpdatePrice(ctx context.Context, symbol string, req domain.UpdatePriceRequest) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return domain.ErrInvalidSymbol
	}
	if req.Price.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidAmount
	}

	if err := s.coinRepository.UpdatePrice(ctx, symbol, req.Price, req.Change24h); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCoinNotFound
		}
		return err
	}

	return s.coinRepository.AddPriceHistory(ctx, &entities.PriceHistory{
		CoinSymbol: symbol,
		Price:      req.Price,
		Source:     "manual",
		Note:       req.Note,
	})
}

// Seed inserts the default asset list when the table is empty.
func (s *coinService) Seed(ctx context.Context) error {
	count, err := s.coinRepository.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.coinRepository.CreateBatch(ctx, defaultCoins())
}

func defaultCoins() []entities.Coin {
	now := time.Now()
	seed := []struct {
		symbol    string
		name      string
		price     string
		change    string
		volume    string
		marketCap string
	}{
		{"BTC", "Bitcoin", "43250.00", "2.45", "28500000000", "847000000000"},
		{"ETH", "Ethereum", "2650.00", "1.85", "15200000000", "318000000000"},
		{"BNB", "BNB", "315.50", "0.95", "1800000000", "47200000000"},
		{"USDT", "Tether", "1.00", "0.01", "45000000000", "95000000000"},
		{"SOL", "Solana", "98.75", "3.25", "2100000000", "42800000000"},
		{"ADA", "Cardano", "0.485", "-1.25", "580000000", "17200000000"},
		{"AVAX", "Avalanche", "36.80", "2.15", "420000000", "13500000000"},
		{"DOT", "Polkadot", "7.25", "-0.85", "180000000", "9200000000"},
		{"MATIC", "Polygon", "0.825", "1.45", "320000000", "7800000000"},
		{"MOON", "Moon Token", "0.0125", "5.75", "15000000", "125000000"},
	}

	coins := make([]entities.Coin, 0, len(seed))
	for _, c := range seed {
		coins = append(coins, entities.Coin{
			ID:        uuid.New(),
			Symbol:    c.symbol,
			Name:      c.name,
			Price:     decimal.RequireFromString(c.price),
			Change24h: decimal.RequireFromString(c.change),
			Volume:    decimal.RequireFromString(c.volume),
			MarketCap: decimal.RequireFromString(c.marketCap),
			IsCustom:  c.symbol == domain.ManagedSymbol,
			IsActive:  true,
			Timestamp: entities.Timestamp{CreatedAt: now, UpdatedAt: now},
		})
	}
	return coins
}
