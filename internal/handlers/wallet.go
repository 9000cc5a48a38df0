package handlers

import (
	"errors"
	"time"

	"paycore/internal/models"
	"paycore/internal/repositories"
	"paycore/internal/services/ledger"
	"paycore/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// WalletHandler exposes the read side of the ledger: wallet snapshots and
// the entry history behind them.
type WalletHandler struct {
	ledgerService ledger.Service
}

func NewWalletHandler(ledgerSvc ledger.Service) *WalletHandler {
	return &WalletHandler{ledgerService: ledgerSvc}
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	merchantID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid merchant id")
	}
	snap, err := h.ledgerService.GetWalletSnapshot(c.Context(), merchantID)
	if err != nil {
		if errors.Is(err, ledger.ErrWalletNotFound) {
			return response.NotFound(c, "Wallet not found")
		}
		return response.ServerError(c, "Failed to fetch wallet")
	}
	return response.Success(c, snap)
}

func (h *WalletHandler) ListEntries(c *fiber.Ctx) error {
	merchantID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid merchant id")
	}

	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return response.BadRequest(c, "Invalid from date")
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return response.BadRequest(c, "Invalid to date")
	}

	filter := repositories.EntryFilter{
		Status:   models.EntryStatus(c.Query("status")),
		TranType: models.TranType(c.Query("tran_type")),
		From:     from,
		To:       to,
		Limit:    c.QueryInt("limit"),
		Offset:   c.QueryInt("offset"),
	}
	entries, err := h.ledgerService.ListEntries(c.Context(), merchantID, filter)
	if err != nil {
		return response.ServerError(c, "Failed to fetch ledger entries")
	}
	return response.Success(c, entries)
}

// parseTimeQuery accepts RFC 3339 timestamps or bare dates (2006-01-02).
// An absent parameter yields the zero time, meaning no bound.
func parseTimeQuery(c *fiber.Ctx, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, nil
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", raw)
}

func (h *WalletHandler) GetEntryBySource(c *fiber.Ctx) error {
	kind := models.SourceKind(c.Params("kind"))
	switch kind {
	case models.SourceInvoice, models.SourcePayout, models.SourceWithdrawal:
	default:
		return response.BadRequest(c, "Invalid source kind")
	}
	sourceID, err := parseID(c, "sourceID")
	if err != nil {
		return response.BadRequest(c, "Invalid source id")
	}

	entry, err := h.ledgerService.GetEntryBySource(c.Context(), models.SourceRef{Kind: kind, ID: sourceID})
	if err != nil {
		if errors.Is(err, ledger.ErrEntryNotFound) {
			return response.NotFound(c, "Ledger entry not found")
		}
		return response.ServerError(c, "Failed to fetch ledger entry")
	}
	return response.Success(c, entry)
}
