package handlers

import (
	"errors"

	"paycore/internal/services/withdraw"
	"paycore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type WithdrawHandler struct {
	withdrawService withdraw.Service
}

func NewWithdrawHandler(withdrawSvc withdraw.Service) *WithdrawHandler {
	return &WithdrawHandler{withdrawService: withdrawSvc}
}

type withdrawRequest struct {
	MerchantID    uint            `json:"merchant_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	Note          string          `json:"note"`
	Message       string          `json:"message"`
}

func (h *WithdrawHandler) CreateWithdraw(c *fiber.Ctx) error {
	var req withdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	r, err := h.withdrawService.Create(c.Context(), withdraw.CreateInput{
		MerchantID:    req.MerchantID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, withdraw.ErrInvalidAmount):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, withdraw.ErrMerchantNotFound):
			return response.NotFound(c, "Merchant not found")
		case errors.Is(err, withdraw.ErrInsufficientBalance):
			return response.UnprocessableEntity(c, err.Error())
		default:
			return response.ServerError(c, "Failed to create withdraw request")
		}
	}
	return response.Created(c, r)
}

func (h *WithdrawHandler) GetWithdraw(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid withdraw id")
	}
	r, err := h.withdrawService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, withdraw.ErrRequestNotFound) {
			return response.NotFound(c, "Withdraw request not found")
		}
		return response.ServerError(c, "Failed to fetch withdraw request")
	}
	return response.Success(c, r)
}

func (h *WithdrawHandler) ListWithdraws(c *fiber.Ctx) error {
	merchantID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid merchant id")
	}
	requests, err := h.withdrawService.List(c.Context(), merchantID, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return response.ServerError(c, "Failed to fetch withdraw requests")
	}
	return response.Success(c, requests)
}

func (h *WithdrawHandler) ConfirmWithdraw(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid withdraw id")
	}
	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	r, err := h.withdrawService.Confirm(c.Context(), id, req.TrxID)
	if err != nil {
		switch {
		case errors.Is(err, withdraw.ErrRequestNotFound):
			return response.NotFound(c, "Withdraw request not found")
		case errors.Is(err, withdraw.ErrMissingTrxID):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, withdraw.ErrRequestFinalized):
			return response.Conflict(c, err.Error())
		default:
			return response.ServerError(c, "Failed to confirm withdraw request")
		}
	}
	return response.Success(c, r)
}

func (h *WithdrawHandler) RejectWithdraw(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid withdraw id")
	}
	var req withdrawRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	r, err := h.withdrawService.Reject(c.Context(), id, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, withdraw.ErrRequestNotFound):
			return response.NotFound(c, "Withdraw request not found")
		case errors.Is(err, withdraw.ErrRequestFinalized):
			return response.Conflict(c, err.Error())
		default:
			return response.ServerError(c, "Failed to reject withdraw request")
		}
	}
	return response.Success(c, r)
}
