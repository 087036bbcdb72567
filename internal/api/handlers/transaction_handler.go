package handlers

import (
	"Moon-Trade-Backend/domain"
	"Moon-Trade-Backend/internal/api/presenters"
	"Moon-Trade-Backend/pkg/transaction"
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type (
	TransactionHandler interface {
		CreateDeposit(c *fiber.Ctx) error
		CreateWithdraw(c *fiber.Ctx) error
		ApproveDeposit(c *fiber.Ctx) error
		RejectDeposit(c *fiber.Ctx) error
		ApproveWithdraw(c *fiber.Ctx) error
		RejectWithdraw(c *fiber.Ctx) error
		ListTransactions(c *fiber.Ctx) error
	}

	transactionHandler struct {
		transactionService transaction.TransactionService
		validator          *validator.Validate
	}
)

func NewTransactionHandler(transactionService transaction.TransactionService, validator *validator.Validate) TransactionHandler {
	return &transactionHandler{
		transactionService: transactionService,
		validator:          validator,
	}
}

func (h *transactionHandler) CreateDeposit(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	req := new(domain.CreateDepositRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.UserID = userID

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDeposit, err)
	}

	tx, err := h.transactionService.CreateDeposit(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDeposit, err)
	}

	return presenters.SuccessResponse(c, tx, fiber.StatusOK, domain.MessageSuccessCreateDeposit)
}

func (h *transactionHandler) CreateWithdraw(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	req := new(domain.CreateWithdrawRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	req.UserID = userID

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateWithdraw, err)
	}

	tx, err := h.transactionService.CreateWithdraw(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateWithdraw, err)
	}

	return presenters.SuccessResponse(c, tx, fiber.StatusOK, domain.MessageSuccessCreateWithdraw)
}

func (h *transactionHandler) ApproveDeposit(c *fiber.Ctx) error {
	return h.resolve(c, h.transactionService.ApproveDeposit, domain.MessageSuccessApproveDeposit, domain.MessageFailedApproveDeposit)
}

func (h *transactionHandler) RejectDeposit(c *fiber.Ctx) error {
	return h.resolve(c, h.transactionService.RejectDeposit, domain.MessageSuccessRejectDeposit, domain.MessageFailedRejectDeposit)
}

func (h *transactionHandler) ApproveWithdraw(c *fiber.Ctx) error {
	return h.resolve(c, h.transactionService.ApproveWithdraw, domain.MessageSuccessApproveWithdraw, domain.MessageFailedApproveWithdraw)
}

func (h *transactionHandler) RejectWithdraw(c *fiber.Ctx) error {
	return h.resolve(c, h.transactionService.RejectWithdraw, domain.MessageSuccessRejectWithdraw, domain.MessageFailedRejectWithdraw)
}

func (h *transactionHandler) ListTransactions(c *fiber.Ctx) error {
	txType := c.Query("type")
	status := c.Query("status")

	transactions, err := h.transactionService.List(c.Context(), txType, status)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetTransactions, err)
	}

	return presenters.SuccessResponse(c, transactions, fiber.StatusOK, domain.MessageSuccessGetTransactions)
}

// resolve runs an approval/rejection action against the :id path param.
// A repeat call on an already-settled transaction is reported as a no-op
// instead of a hard failure so operators can retry safely.
func (h *transactionHandler) resolve(
	c *fiber.Ctx,
	action func(ctx context.Context, id uuid.UUID) error,
	successMessage, failMessage string,
) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, failMessage, domain.ErrParseUUID)
	}

	if err := action(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyProcessed):
			return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageTransactionAlreadyDone)
		case errors.Is(err, domain.ErrTransactionNotFound):
			return presenters.ErrorResponse(c, fiber.StatusNotFound, failMessage, err)
		case errors.Is(err, domain.ErrWrongTransactionType):
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, failMessage, err)
		default:
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, failMessage, err)
		}
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, successMessage)
}
