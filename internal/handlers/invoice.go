package handlers

import (
	"errors"

	"paycore/internal/services/invoice"
	"paycore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type InvoiceHandler struct {
	invoiceService invoice.Service
}

func NewInvoiceHandler(invoiceSvc invoice.Service) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceSvc}
}

type invoiceRequest struct {
	MerchantID          uint            `json:"merchant_id"`
	CallbackURL         string          `json:"callback_url"`
	CustomerOrderID     string          `json:"customer_order_id"`
	CustomerName        string          `json:"customer_name"`
	CustomerNumber      string          `json:"customer_number"`
	CustomerAmount      decimal.Decimal `json:"customer_amount"`
	CustomerEmail       string          `json:"customer_email"`
	CustomerAddress     string          `json:"customer_address"`
	CustomerDescription string          `json:"customer_description"`
	Note                string          `json:"note"`
}

type paymentRequest struct {
	TrxID  string `json:"trx_id"`
	Method string `json:"method"`
}

func (h *InvoiceHandler) CreateInvoice(c *fiber.Ctx) error {
	var req invoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	inv, err := h.invoiceService.Create(c.Context(), invoice.CreateInput{
		MerchantID:          req.MerchantID,
		CallbackURL:         req.CallbackURL,
		CustomerOrderID:     req.CustomerOrderID,
		CustomerName:        req.CustomerName,
		CustomerNumber:      req.CustomerNumber,
		CustomerAmount:      req.CustomerAmount,
		CustomerEmail:       req.CustomerEmail,
		CustomerAddress:     req.CustomerAddress,
		CustomerDescription: req.CustomerDescription,
		Note:                req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, invoice.ErrInvalidAmount):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, invoice.ErrMerchantNotFound):
			return response.NotFound(c, "Merchant not found")
		default:
			return response.ServerError(c, "Failed to create invoice")
		}
	}
	return response.Created(c, inv)
}

func (h *InvoiceHandler) GetInvoice(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid invoice id")
	}
	inv, err := h.invoiceService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrInvoiceNotFound) {
			return response.NotFound(c, "Invoice not found")
		}
		return response.ServerError(c, "Failed to fetch invoice")
	}
	return response.Success(c, inv)
}

func (h *InvoiceHandler) GetInvoiceByPaymentID(c *fiber.Ctx) error {
	inv, err := h.invoiceService.GetByPaymentID(c.Context(), c.Params("paymentID"))
	if err != nil {
		if errors.Is(err, invoice.ErrInvoiceNotFound) {
			return response.NotFound(c, "Invoice not found")
		}
		return response.ServerError(c, "Failed to fetch invoice")
	}
	return response.Success(c, inv)
}

func (h *InvoiceHandler) ListInvoices(c *fiber.Ctx) error {
	merchantID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid merchant id")
	}
	invoices, err := h.invoiceService.List(c.Context(), merchantID, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return response.ServerError(c, "Failed to fetch invoices")
	}
	return response.Success(c, invoices)
}

func (h *InvoiceHandler) PayInvoice(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid invoice id")
	}
	var req paymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	inv, err := h.invoiceService.MarkPaid(c.Context(), id, req.TrxID, req.Method)
	if err != nil {
		switch {
		case errors.Is(err, invoice.ErrInvoiceNotFound):
			return response.NotFound(c, "Invoice not found")
		case errors.Is(err, invoice.ErrMissingTrxID):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, invoice.ErrAlreadyPaid), errors.Is(err, invoice.ErrInvoiceInactive):
			return response.Conflict(c, err.Error())
		default:
			return response.ServerError(c, "Failed to settle invoice")
		}
	}
	return response.Success(c, inv)
}

func (h *InvoiceHandler) CancelInvoice(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid invoice id")
	}
	inv, err := h.invoiceService.Cancel(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, invoice.ErrInvoiceNotFound):
			return response.NotFound(c, "Invoice not found")
		case errors.Is(err, invoice.ErrAlreadyPaid), errors.Is(err, invoice.ErrInvoiceInactive):
			return response.Conflict(c, err.Error())
		default:
			return response.ServerError(c, "Failed to cancel invoice")
		}
	}
	return response.Success(c, inv)
}

func (h *InvoiceHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid invoice id")
	}
	var req invoiceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	inv, err := h.invoiceService.UpdateCustomer(c.Context(), id, invoice.CustomerUpdate{
		CustomerName:    req.CustomerName,
		CustomerNumber:  req.CustomerNumber,
		CustomerAddress: req.CustomerAddress,
	})
	if err != nil {
		switch {
		case errors.Is(err, invoice.ErrInvoiceNotFound):
			return response.NotFound(c, "Invoice not found")
		case errors.Is(err, invoice.ErrInvoiceInactive):
			return response.Conflict(c, err.Error())
		default:
			return response.ServerError(c, "Failed to update invoice")
		}
	}
	return response.Success(c, inv)
}
