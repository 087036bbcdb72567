package exchange

import (
	"Moon-Trade-Backend/domain"
	"Moon-Trade-Backend/entities"
	"Moon-Trade-Backend/pkg/coin"
	"Moon-Trade-Backend/pkg/transaction"
	"Moon-Trade-Backend/pkg/wallet"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type (
	ExchangeService interface {
		Exchange(ctx context.Context, req domain.ExchangeRequest) (*domain.ExchangeResponse, error)
		Trade(ctx context.Context, req domain.TradeRequest) (*domain.TradeResponse, error)
	}

	exchangeService struct {
		db             *gorm.DB
		coinRepository coin.CoinRepository
	}
)

func NewExchangeService(db *gorm.DB, coinRepository coin.CoinRepository) ExchangeService {
	return &exchangeService{
		db:             db,
		coinRepository: coinRepository,
	}
}

// Exchange converts amount of one asset into another at current prices
// minus the flat fee. The conditional debit of the source balance is the
// sole concurrency guard; debit, credit and the transaction record commit
// as one unit so partial application cannot persist.
func (s *exchangeService) Exchange(ctx context.Context, req domain.ExchangeRequest) (*domain.ExchangeResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	fromSymbol := strings.ToUpper(strings.TrimSpace(req.FromSymbol))
	toSymbol := strings.ToUpper(strings.TrimSpace(req.ToSymbol))
	if fromSymbol == "" || toSymbol == "" {
		return nil, domain.ErrInvalidSymbol
	}
	if fromSymbol == toSymbol {
		return nil, domain.ErrSameAsset
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	fromPrice, err := s.price(ctx, fromSymbol)
	if err != nil {
		return nil, err
	}
	toPrice, err := s.price(ctx, toSymbol)
	if err != nil {
		return nil, err
	}

	valueUSD := req.Amount.Mul(fromPrice)
	feeUSD := valueUSD.Mul(domain.FeeRate)
	toAmount := valueUSD.Sub(feeUSD).Div(toPrice)

	details, err := json.Marshal(domain.ExchangeDetails{
		From:     fromSymbol,
		To:       toSymbol,
		ToAmount: toAmount,
		FeeUSD:   feeUSD,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tx := &entities.Transaction{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       entities.TransactionTypeExchange,
		CoinSymbol: fromSymbol,
		Amount:     req.Amount,
		Status:     entities.TransactionStatusCompleted,
		Details:    string(details),
		Timestamp:  entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}

	err = s.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		walletRepository := wallet.NewWalletRepository(dbtx)
		if err := walletRepository.Ensure(ctx, userID, toSymbol); err != nil {
			return err
		}
		if err := walletRepository.Debit(ctx, userID, fromSymbol, req.Amount); err != nil {
			return err
		}
		if err := walletRepository.Credit(ctx, userID, toSymbol, toAmount); err != nil {
			return err
		}
		return transaction.NewTransactionRepository(dbtx).Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	return &domain.ExchangeResponse{
		TransactionID: tx.ID.String(),
		ToAmount:      toAmount,
		FeeUSD:        feeUSD,
	}, nil
}

// Trade buys or sells an asset against the quote currency at spot price,
// with the same fee taken in the quote leg.
func (s *exchangeService) Trade(ctx context.Context, req domain.TradeRequest) (*domain.TradeResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	symbol := strings.ToUpper(strings.TrimSpace(req.CoinSymbol))
	if symbol == "" || symbol == domain.QuoteSymbol {
		return nil, domain.ErrInvalidSymbol
	}
	if req.Side != domain.TradeSideBuy && req.Side != domain.TradeSideSell {
		return nil, domain.ErrInvalidSymbol
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	price, err := s.price(ctx, symbol)
	if err != nil {
		return nil, err
	}

	totalUSD := req.Amount.Mul(price)
	feeUSD := totalUSD.Mul(domain.FeeRate)

	details, err := json.Marshal(domain.TradeDetails{
		Side:     req.Side,
		Price:    price,
		TotalUSD: totalUSD,
		FeeUSD:   feeUSD,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	tx := &entities.Transaction{
		ID:         uuid.New(),
		UserID:     userID,
		Type:       entities.TransactionTypeTrade,
		CoinSymbol: symbol,
		Amount:     req.Amount,
		Status:     entities.TransactionStatusCompleted,
		Details:    string(details),
		Timestamp:  entities.Timestamp{CreatedAt: now, UpdatedAt: now},
	}

	err = s.db.WithContext(ctx).Transaction(func(dbtx *gorm.DB) error {
		walletRepository := wallet.NewWalletRepository(dbtx)
		if req.Side == domain.TradeSideBuy {
			if err := walletRepository.Ensure(ctx, userID, symbol); err != nil {
				return err
			}
			if err := walletRepository.Debit(ctx, userID, domain.QuoteSymbol, totalUSD.Add(feeUSD)); err != nil {
				return err
			}
			if err := walletRepository.Credit(ctx, userID, symbol, req.Amount); err != nil {
				return err
			}
		} else {
			if err := walletRepository.Ensure(ctx, userID, domain.QuoteSymbol); err != nil {
				return err
			}
			if err := walletRepository.Debit(ctx, userID, symbol, req.Amount); err != nil {
				return err
			}
			if err := walletRepository.Credit(ctx, userID, domain.QuoteSymbol, totalUSD.Sub(feeUSD)); err != nil {
				return err
			}
		}
		return transaction.NewTransactionRepository(dbtx).Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	return &domain.TradeResponse{
		TransactionID: tx.ID.String(),
		Price:         price,
		TotalUSD:      totalUSD,
		FeeUSD:        feeUSD,
	}, nil
}

func (s *exchangeService) price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	c, err := s.coinRepository.GetBySymbol(ctx, symbol)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, domain.ErrPriceUnavailable
		}
		return decimal.Zero, err
	}
	if c.Price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, domain.ErrPriceUnavailable
	}
	return c.Price, nil
}
