package handlers

import (
	"errors"

	"paycore/internal/models"
	"paycore/internal/services/payout"
	"paycore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type PayoutHandler struct {
	payoutService payout.Service
}

func NewPayoutHandler(payoutSvc payout.Service) *PayoutHandler {
	return &PayoutHandler{payoutService: payoutSvc}
}

type payoutRequest struct {
	MerchantID     uint            `json:"merchant_id"`
	ReceiverName   string          `json:"receiver_name"`
	ReceiverNumber string          `json:"receiver_number"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentMethod  string          `json:"payment_method"`
	PaymentDetails models.JSON     `json:"payment_details"`
	TrxID          string          `json:"trx_id"`
	Note           string          `json:"note"`
}

func (h *PayoutHandler) CreatePayout(c *fiber.Ctx) error {
	var req payoutRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	p, err := h.payoutService.Create(c.Context(), payout.CreateInput{
		MerchantID:     req.MerchantID,
		ReceiverName:   req.ReceiverName,
		ReceiverNumber: req.ReceiverNumber,
		Amount:         req.Amount,
		PaymentMethod:  req.PaymentMethod,
		PaymentDetails: req.PaymentDetails,
		TrxID:          req.TrxID,
		Note:           req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, payout.ErrInvalidAmount), errors.Is(err, payout.ErrInvalidMethod):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, payout.ErrMerchantNotFound):
			return response.NotFound(c, "Merchant not found")
		case errors.Is(err, payout.ErrInsufficientBalance):
			return response.UnprocessableEntity(c, err.Error())
		default:
			return response.ServerError(c, "Failed to create payout")
		}
	}
	return response.Created(c, p)
}

func (h *PayoutHandler) GetPayout(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid payout id")
	}
	p, err := h.payoutService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, payout.ErrPayoutNotFound) {
			return response.NotFound(c, "Payout not found")
		}
		return response.ServerError(c, "Failed to fetch payout")
	}
	return response.Success(c, p)
}

func (h *PayoutHandler) ListPayouts(c *fiber.Ctx) error {
	merchantID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid merchant id")
	}
	payouts, err := h.payoutService.List(c.Context(), merchantID, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return response.ServerError(c, "Failed to fetch payouts")
	}
	return response.Success(c, payouts)
}

func (h *PayoutHandler) ConfirmPayout(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid payout id")
	}
	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	p, err := h.payoutService.Confirm(c.Context(), id, req.TrxID)
	if err != nil {
		switch {
		case errors.Is(err, payout.ErrPayoutNotFound):
			return response.NotFound(c, "Payout not found")
		case errors.Is(err, payout.ErrMissingTrxID):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, payout.ErrPayoutFinalized):
			return response.Conflict(c, err.Error())
		default:
			return response.ServerError(c, "Failed to confirm payout")
		}
	}
	return response.Success(c, p)
}

func (h *PayoutHandler) RejectPayout(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid payout id")
	}
	var req payoutRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	p, err := h.payoutService.Reject(c.Context(), id, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, payout.ErrPayoutNotFound):
			return response.NotFound(c, "Payout not found")
		case errors.Is(err, payout.ErrPayoutFinalized):
			return response.Conflict(c, err.Error())
		default:
			return response.ServerError(c, "Failed to reject payout")
		}
	}
	return response.Success(c, p)
}
