package plan

import (
	"Moon-Trade-Backend/entities"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	PlanRepository interface {
		Upsert(ctx context.Context, plan *entities.Plan) error
		GetByDay(ctx context.Context, day string) (*entities.Plan, error)
		ListRange(ctx context.Context, from, to string) ([]entities.Plan, error)
		Delete(ctx context.Context, day string) error

		GetRun(ctx context.Context, day string) (*entities.PlanRun, error)
		// CreateRun inserts the idempotency marker with insert-ignore
		// semantics; false means another run already owns the day.
		CreateRun(ctx context.Context, run *entities.PlanRun) (bool, error)
	}

	planRepository struct {
		db *gorm.DB
	}
)

func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{
		db: db,
	}
}

func (r *planRepository) Upsert(ctx context.Context, plan *entities.Plan) error {
	now := time.Now()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "day"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"target_pct": plan.TargetPct,
				"note":       plan.Note,
				"updated_at": now,
			}),
		}).
		Create(plan).Error
}

func (r *planRepository) GetByDay(ctx context.Context, day string) (*entities.Plan, error) {
	var plan entities.Plan
	if err := r.db.WithContext(ctx).
		Where("day = ?", day).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) ListRange(ctx context.Context, from, to string) ([]entities.Plan, error) {
	var plans []entities.Plan
	if err := r.db.WithContext(ctx).
		Where("day BETWEEN ? AND ?", from, to).
		Order("day ASC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *planRepository) Delete(ctx context.Context, day string) error {
	return r.db.WithContext(ctx).
		Where("day = ?", day).
		Delete(&entities.Plan{}).Error
}

func (r *planRepository) GetRun(ctx context.Context, day string) (*entities.PlanRun, error) {
	var run entities.PlanRun
	if err := r.db.WithContext(ctx).
		Where("day = ?", day).
		First(&run).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *planRepository) CreateRun(ctx context.Context, run *entities.PlanRun) (bool, error) {
	if run.AppliedAt.IsZero() {
		run.AppliedAt = time.Now()
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "day"}},
			DoNothing: true,
		}).
		Create(run)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
