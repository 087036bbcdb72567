package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan is the admin-authored price target for the managed coin on one
// calendar day.
type Plan struct {
	Day       string          `gorm:"primaryKey;size:10" json:"day"`
	TargetPct decimal.Decimal `gorm:"type:numeric(16,8)" json:"target_pct"`
	Note      string          `json:"note"`

	Timestamp
}

func (Plan) TableName() string {
	return "moon_plans"
}

// PlanRun is the idempotency ledger of the plan applier. Row presence for a
// day is the sole signal that the day was already handled.
type PlanRun struct {
	Day       string          `gorm:"primaryKey;size:10" json:"day"`
	Pct       decimal.Decimal `gorm:"type:numeric(16,8)" json:"pct"`
	Note      string          `json:"note"`
	AppliedAt time.Time       `json:"applied_at"`
}

func (PlanRun) TableName() string {
	return "planner_runs"
}
