// Package routes defines the API routing configuration. It wires
// repositories into services and services into handlers, then registers
// every HTTP route.
package routes

import (
	"paycore/internal/handlers"
	"paycore/internal/repositories"
	"paycore/internal/services/invoice"
	"paycore/internal/services/ledger"
	"paycore/internal/services/merchant"
	"paycore/internal/services/payout"
	"paycore/internal/services/withdraw"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	ledgerRepo := repositories.NewLedgerRepository(db)
	merchantRepo := repositories.NewMerchantRepository(db)
	invoiceRepo := repositories.NewInvoiceRepository(db)
	payoutRepo := repositories.NewPayoutRepository(db)
	withdrawRepo := repositories.NewWithdrawRepository(db)

	// The snapshot cache is optional; the ledger works without redis.
	var snapshotCache ledger.SnapshotCache
	if repositories.Cache != nil {
		snapshotCache = repositories.Cache
	}

	// Services
	ledgerService := ledger.NewService(ledgerRepo, merchantRepo, snapshotCache, ledger.NoopMetricsCollector{})
	merchantService := merchant.NewService(merchantRepo)
	invoiceService := invoice.NewService(invoiceRepo, merchantRepo, ledgerService)
	payoutService := payout.NewService(payoutRepo, ledgerService)
	withdrawService := withdraw.NewService(withdrawRepo, ledgerService)

	// Handlers
	merchantHandler := handlers.NewMerchantHandler(merchantService)
	walletHandler := handlers.NewWalletHandler(ledgerService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	payoutHandler := handlers.NewPayoutHandler(payoutService)
	withdrawHandler := handlers.NewWithdrawHandler(withdrawService)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to Paycore API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	api := app.Group("/api")

	// Merchants and their wallet
	merchants := api.Group("/merchants")
	merchants.Post("/", merchantHandler.CreateMerchant)
	merchants.Get("/code/:code", merchantHandler.GetMerchantByCode)
	merchants.Get("/:id", merchantHandler.GetMerchant)
	merchants.Put("/:id/fees", merchantHandler.UpdateFees)
	merchants.Get("/:id/wallet", walletHandler.GetWallet)
	merchants.Get("/:id/ledger", walletHandler.ListEntries)
	merchants.Get("/:id/invoices", invoiceHandler.ListInvoices)
	merchants.Get("/:id/payouts", payoutHandler.ListPayouts)
	merchants.Get("/:id/withdraws", withdrawHandler.ListWithdraws)

	// Ledger entry lookup by source
	api.Get("/ledger/:kind/:sourceID", walletHandler.GetEntryBySource)

	// Invoices (deposits)
	invoices := api.Group("/invoices")
	invoices.Post("/", invoiceHandler.CreateInvoice)
	invoices.Get("/payment/:paymentID", invoiceHandler.GetInvoiceByPaymentID)
	invoices.Get("/:id", invoiceHandler.GetInvoice)
	invoices.Post("/:id/pay", invoiceHandler.PayInvoice)
	invoices.Post("/:id/cancel", invoiceHandler.CancelInvoice)
	invoices.Put("/:id/customer", invoiceHandler.UpdateCustomer)

	// Payouts (customer cash-outs)
	payouts := api.Group("/payouts")
	payouts.Post("/", payoutHandler.CreatePayout)
	payouts.Get("/:id", payoutHandler.GetPayout)
	payouts.Post("/:id/confirm", payoutHandler.ConfirmPayout)
	payouts.Post("/:id/reject", payoutHandler.RejectPayout)

	// Withdrawals (merchant cash-outs)
	withdraws := api.Group("/withdraws")
	withdraws.Post("/", withdrawHandler.CreateWithdraw)
	withdraws.Get("/:id", withdrawHandler.GetWithdraw)
	withdraws.Post("/:id/confirm", withdrawHandler.ConfirmWithdraw)
	withdraws.Post("/:id/reject", withdrawHandler.RejectWithdraw)
}
