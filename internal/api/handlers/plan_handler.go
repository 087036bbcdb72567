package handlers

import (
	"Moon-Trade-Backend/domain"
	"Moon-Trade-Backend/internal/api/presenters"
	"Moon-Trade-Backend/internal/utils"
	"Moon-Trade-Backend/pkg/plan"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PlanHandler interface {
		GetPlans(c *fiber.Ctx) error
		UpsertPlan(c *fiber.Ctx) error
		DeletePlan(c *fiber.Ctx) error
		ApplyPlan(c *fiber.Ctx) error
	}

	planHandler struct {
		planService plan.PlanService
		validator   *validator.Validate
	}
)

func NewPlanHandler(planService plan.PlanService, validator *validator.Validate) PlanHandler {
	return &planHandler{
		planService: planService,
		validator:   validator,
	}
}

func (h *planHandler) GetPlans(c *fiber.Ctx) error {
	from := c.Query("from")
	to := c.Query("to")

	plans, err := h.planService.List(c.Context(), from, to)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetPlans, err)
	}

	return presenters.SuccessResponse(c, plans, fiber.StatusOK, domain.MessageSuccessGetPlans)
}

func (h *planHandler) UpsertPlan(c *fiber.Ctx) error {
	req := new(domain.UpsertPlanRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpsertPlan, err)
	}

	if err := h.planService.Upsert(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpsertPlan, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpsertPlan)
}

func (h *planHandler) DeletePlan(c *fiber.Ctx) error {
	day := c.Params("day")

	if err := h.planService.Delete(c.Context(), day); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeletePlan, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeletePlan)
}

// ApplyPlan is the manual trigger for the daily applier. It is exposed
// without auth for external schedulers, guarded by a shared secret passed
// as the key query parameter.
func (h *planHandler) ApplyPlan(c *fiber.Ctx) error {
	secret := utils.GetConfig("PLAN_CRON_SECRET")
	if secret == "" || c.Query("key") != secret {
		return presenters.ErrorResponse(c, fiber.StatusForbidden, domain.MessageForbidden, domain.ErrUserNotAllowed)
	}

	result, err := h.planService.Apply(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedApplyPlan, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessApplyPlan)
}
