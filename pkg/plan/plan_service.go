package plan

import (
	"Moon-Trade-Backend/domain"
	"Moon-Trade-Backend/entities"
	"Moon-Trade-Backend/pkg/coin"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dayFormat = "2006-01-02"

// pricePrecision is the decimal precision the managed price is rounded to
// after applying a plan.
const pricePrecision = 8

type (
	PlanService interface {
		Upsert(ctx context.Context, req domain.UpsertPlanRequest) error
		List(ctx context.Context, from, to string) ([]entities.Plan, error)
		Delete(ctx context.Context, day string) error
		// Apply runs the daily price plan for "today" in the reference
		// timezone. It is safe to call any number of times per day.
		Apply(ctx context.Context) (*domain.ApplyResult, error)
	}

	planService struct {
		planRepository PlanRepository
		coinRepository coin.CoinRepository
		location       *time.Location
		now            func() time.Time
	}
)

func NewPlanService(planRepository PlanRepository, coinRepository coin.CoinRepository, location *time.Location) PlanService {
	if location == nil {
		location = time.UTC
	}
	return &planService{
		planRepository: planRepository,
		coinRepository: coinRepository,
		location:       location,
		now:            time.Now,
	}
}

func (s *planService) Upsert(ctx context.Context, req domain.UpsertPlanRequest) error {
	if _, err := time.Parse(dayFormat, req.Day); err != nil {
		return domain.ErrInvalidDay
	}
	return s.planRepository.Upsert(ctx, &entities.Plan{
		Day:       req.Day,
		TargetPct: req.TargetPct,
		Note:      req.Note,
	})
}

// List defaults to a window of ten days either side of today.
func (s *planService) List(ctx context.Context, from, to string) ([]entities.Plan, error) {
	today := s.now().In(s.location)
	if from == "" {
		from = today.AddDate(0, 0, -10).Format(dayFormat)
	}
	if to == "" {
		to = today.AddDate(0, 0, 10).Format(dayFormat)
	}
	return s.planRepository.ListRange(ctx, from, to)
}

func (s *planService) Delete(ctx context.Context, day string) error {
	if _, err := time.Parse(dayFormat, day); err != nil {
		return domain.ErrInvalidDay
	}
	return s.planRepository.Delete(ctx, day)
}

func (s *planService) Apply(ctx context.Context) (*domain.ApplyResult, error) {
	day := s.now().In(s.location).Format(dayFormat)

	// the PlanRun ledger, not the price table, decides whether the day
	// was already handled
	if _, err := s.planRepository.GetRun(ctx, day); err == nil {
		return &domain.ApplyResult{
			Applied: false,
			Day:     day,
			Message: fmt.Sprintf("already applied for %s", day),
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	todayPlan, err := s.planRepository.GetByDay(ctx, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &domain.ApplyResult{
				Applied: false,
				Day:     day,
				Message: fmt.Sprintf("no plan for %s", day),
			}, nil
		}
		return nil, err
	}

	managed, err := s.coinRepository.GetBySymbol(ctx, domain.ManagedSymbol)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCoinNotFound
		}
		return nil, err
	}

	pct := todayPlan.TargetPct
	hundred := decimal.NewFromInt(100)
	next := managed.Price.Mul(decimal.NewFromInt(1).Add(pct.Div(hundred))).Round(pricePrecision)

	if err := s.coinRepository.UpdatePrice(ctx, domain.ManagedSymbol, next, &pct); err != nil {
		return nil, err
	}

	if _, err := s.planRepository.CreateRun(ctx, &entities.PlanRun{
		Day:  day,
		Pct:  pct,
		Note: todayPlan.Note,
	}); err != nil {
		return nil, err
	}

	// best-effort history note; never rolls back the applied run
	note := fmt.Sprintf("Applied %s%% for %s", pct.String(), day)
	if todayPlan.Note != "" {
		note += " - " + todayPlan.Note
	}
	if err := s.coinRepository.AddPriceHistory(ctx, &entities.PriceHistory{
		CoinSymbol: domain.ManagedSymbol,
		Price:      next,
		Source:     "planner",
		Note:       note,
	}); err != nil {
		log.Warnf("plan applier: price history append failed: %v", err)
	}

	return &domain.ApplyResult{
		Applied:  true,
		Day:      day,
		Message:  fmt.Sprintf("applied %s%% for %s", pct.String(), day),
		Pct:      pct,
		OldPrice: managed.Price,
		NewPrice: next,
	}, nil
}
