package handlers

import (
	"errors"
	"strconv"

	"paycore/internal/services/merchant"
	"paycore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type MerchantHandler struct {
	merchantService merchant.Service
}

func NewMerchantHandler(merchantSvc merchant.Service) *MerchantHandler {
	return &MerchantHandler{merchantService: merchantSvc}
}

type merchantRequest struct {
	BrandName      string           `json:"brand_name"`
	WhatsappNumber string           `json:"whatsapp_number"`
	DomainName     string           `json:"domain_name"`
	FeesType       string           `json:"fees_type"`
	DepositFees    *decimal.Decimal `json:"deposit_fees"`
	PayoutFees     *decimal.Decimal `json:"payout_fees"`
	WithdrawFees   *decimal.Decimal `json:"withdraw_fees"`
}

func (h *MerchantHandler) CreateMerchant(c *fiber.Ctx) error {
	var req merchantRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	m, err := h.merchantService.Create(c.Context(), merchant.CreateInput{
		BrandName:      req.BrandName,
		WhatsappNumber: req.WhatsappNumber,
		DomainName:     req.DomainName,
		FeesType:       req.FeesType,
		DepositFees:    req.DepositFees,
		PayoutFees:     req.PayoutFees,
		WithdrawFees:   req.WithdrawFees,
	})
	if err != nil {
		switch {
		case errors.Is(err, merchant.ErrInvalidBrandName), errors.Is(err, merchant.ErrInvalidFeeType):
			return response.BadRequest(c, err.Error())
		default:
			return response.ServerError(c, "Failed to create merchant")
		}
	}
	return response.Created(c, m)
}

func (h *MerchantHandler) GetMerchant(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid merchant id")
	}
	m, err := h.merchantService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, merchant.ErrMerchantNotFound) {
			return response.NotFound(c, "Merchant not found")
		}
		return response.ServerError(c, "Failed to fetch merchant")
	}
	return response.Success(c, m)
}

func (h *MerchantHandler) GetMerchantByCode(c *fiber.Ctx) error {
	m, err := h.merchantService.GetByCode(c.Context(), c.Params("code"))
	if err != nil {
		if errors.Is(err, merchant.ErrMerchantNotFound) {
			return response.NotFound(c, "Merchant not found")
		}
		return response.ServerError(c, "Failed to fetch merchant")
	}
	return response.Success(c, m)
}

func (h *MerchantHandler) UpdateFees(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid merchant id")
	}
	var req merchantRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	m, err := h.merchantService.UpdateFees(c.Context(), id, merchant.FeesInput{
		FeesType:     req.FeesType,
		DepositFees:  req.DepositFees,
		PayoutFees:   req.PayoutFees,
		WithdrawFees: req.WithdrawFees,
	})
	if err != nil {
		switch {
		case errors.Is(err, merchant.ErrMerchantNotFound):
			return response.NotFound(c, "Merchant not found")
		case errors.Is(err, merchant.ErrInvalidFeeType):
			return response.BadRequest(c, err.Error())
		default:
			return response.ServerError(c, "Failed to update fees")
		}
	}
	return response.Success(c, m)
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}
