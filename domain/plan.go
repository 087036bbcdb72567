package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ManagedSymbol is the coin whose price follows the daily plan schedule
// instead of an external feed.
const ManagedSymbol = "MOON"

var (
	MessageSuccessUpsertPlan = "plan saved successfully"
	MessageSuccessDeletePlan = "plan deleted successfully"
	MessageSuccessGetPlans   = "plans retrieved successfully"
	MessageSuccessApplyPlan  = "plan applier finished"
	MessageFailedUpsertPlan  = "failed to save plan"
	MessageFailedDeletePlan  = "failed to delete plan"
	MessageFailedGetPlans    = "failed to retrieve plans"
	MessageFailedApplyPlan   = "failed to run plan applier"
	MessageForbidden         = "forbidden"

	ErrInvalidDay = errors.New("day must be formatted as YYYY-MM-DD")
)

type (
	UpsertPlanRequest struct {
		Day       string          `json:"day" validate:"required"`
		TargetPct decimal.Decimal `json:"target_pct"`
		Note      string          `json:"note"`
	}

	// ApplyResult reports what one applier invocation did. Applied is false
	// for the benign no-op outcomes (already applied, no plan today).
	ApplyResult struct {
		Applied  bool            `json:"applied"`
		Day      string          `json:"day"`
		Message  string          `json:"message"`
		Pct      decimal.Decimal `json:"pct,omitempty"`
		OldPrice decimal.Decimal `json:"old_price,omitempty"`
		NewPrice decimal.Decimal `json:"new_price,omitempty"`
	}
)
