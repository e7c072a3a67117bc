package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/dto"
	"github.com/SscSPs/wallet_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler handles platform-initiated ledger operations.
type adminHandler struct {
	walletService portssvc.WalletSvcFacade
}

func newAdminHandler(ws portssvc.WalletSvcFacade) *adminHandler {
	return &adminHandler{walletService: ws}
}

// registerAdminRoutes registers the /admin routes. Callers must hold the admin role.
func registerAdminRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newAdminHandler(walletService)

	admin := rg.Group("/admin", middleware.RequireRole(middleware.RoleAdmin))
	{
		admin.POST("/investments/:investmentID/settle", h.settleInvestment)
		admin.POST("/dividends/:dividendID/pay", h.payDividend)
		admin.POST("/entries/:entryID/reverse", h.reverseEntry)
		admin.PUT("/accounts/:accountID/status", h.updateAccountStatus)
		admin.GET("/accounts/:accountID/replay", h.replayAccount)
	}
}

// settleInvestment godoc
// @Summary Settle an approved investment
// @Description Debits the investor wallet and credits the developer wallet. The investment ID makes the settlement idempotent.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   investmentID path string true "Investment ID"
// @Param   settlement body dto.SettleInvestmentRequest true "Settlement details"
// @Success 201 {object} dto.SettlementResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 403 {object} ErrorResponse "Forbidden or account suspended"
// @Failure 409 {object} ErrorResponse "Settlement in progress or already rolled back"
// @Failure 422 {object} ErrorResponse "Invalid amount or insufficient balance"
// @Failure 503 {object} ErrorResponse "Account busy, retry"
// @Security BearerAuth
// @Router /admin/investments/{investmentID}/settle [post]
func (h *adminHandler) settleInvestment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	investmentID := c.Param("investmentID")

	var req dto.SettleInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "request format", err)
		return
	}

	logger = logger.With(slog.String("investment_id", investmentID))
	logger.Info("Received settlement", slog.String("amount", req.Amount.String()))

	settlement, err := h.walletService.SettleInvestment(c.Request.Context(), investmentID, req)
	if err != nil {
		writeError(c, logger, err, "Failed to settle investment")
		return
	}

	c.JSON(http.StatusCreated, dto.ToSettlementResponse(settlement))
}

// payDividend godoc
// @Summary Pay a dividend
// @Description Credits the investor wallet with the amount computed by the dividend policy. The dividend ID makes the payout idempotent.
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   dividendID path string true "Dividend ID"
// @Param   dividend body dto.PayDividendRequest true "Dividend details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 422 {object} ErrorResponse "Invalid amount"
// @Failure 423 {object} ErrorResponse "Account locked"
// @Failure 503 {object} ErrorResponse "Account busy, retry"
// @Security BearerAuth
// @Router /admin/dividends/{dividendID}/pay [post]
func (h *adminHandler) payDividend(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	dividendID := c.Param("dividendID")

	var req dto.PayDividendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "request format", err)
		return
	}

	logger = logger.With(slog.String("dividend_id", dividendID))

	entry, err := h.walletService.PayDividend(c.Request.Context(), dividendID, req)
	if err != nil {
		writeError(c, logger, err, "Failed to pay dividend")
		return
	}

	logger.Info("Dividend paid", slog.String("entry_id", entry.EntryID), slog.String("amount", entry.Amount.String()))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a ledger entry
// @Description Posts a compensating adjustment for a completed entry and marks it reversed
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   reversal body dto.ReverseEntryRequest true "Reason for the reversal"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 404 {object} ErrorResponse "Entry not found"
// @Failure 409 {object} ErrorResponse "Entry not reversible"
// @Failure 422 {object} ErrorResponse "Insufficient balance"
// @Failure 503 {object} ErrorResponse "Account busy, retry"
// @Security BearerAuth
// @Router /admin/entries/{entryID}/reverse [post]
func (h *adminHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "request format", err)
		return
	}

	logger = logger.With(slog.String("entry_id", entryID))

	entry, err := h.walletService.ReverseEntry(c.Request.Context(), entryID, req)
	if err != nil {
		writeError(c, logger, err, "Failed to reverse entry")
		return
	}

	logger.Info("Entry reversed", slog.String("reversal_entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// updateAccountStatus godoc
// @Summary Change an account's status
// @Description Suspends, locks or reactivates an account
// @Tags admin
// @Accept  json
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   status body dto.UpdateAccountStatusRequest true "New status"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 503 {object} ErrorResponse "Account busy, retry"
// @Security BearerAuth
// @Router /admin/accounts/{accountID}/status [put]
func (h *adminHandler) updateAccountStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var req dto.UpdateAccountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "request format", err)
		return
	}

	logger = logger.With(slog.String("account_id", accountID))

	acc, err := h.walletService.UpdateAccountStatus(c.Request.Context(), accountID, req)
	if err != nil {
		writeError(c, logger, err, "Failed to update account status")
		return
	}

	logger.Info("Account status updated", slog.String("status", string(acc.Status)))
	c.JSON(http.StatusOK, dto.ToAccountResponse(acc))
}

// replayAccount godoc
// @Summary Audit an account's balance
// @Description Recomputes the balance from posted entries and compares it with the stored balance
// @Tags admin
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.ReplayResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Failure 500 {object} ErrorResponse "Failed to replay account"
// @Security BearerAuth
// @Router /admin/accounts/{accountID}/replay [get]
func (h *adminHandler) replayAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	result, err := h.walletService.ReplayAccount(c.Request.Context(), accountID)
	if err != nil {
		writeError(c, logger.With(slog.String("account_id", accountID)), err, "Failed to replay account")
		return
	}

	c.JSON(http.StatusOK, dto.ToReplayResponse(result))
}
