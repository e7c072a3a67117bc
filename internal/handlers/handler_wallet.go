package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/wallet_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_ledger/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger/internal/dto"
	"github.com/SscSPs/wallet_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// walletHandler handles owner-facing wallet requests.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws}
}

// registerWalletRoutes registers the /wallets routes. limit guards the
// routes that move money; it may be nil.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade, limit gin.HandlerFunc) {
	h := newWalletHandler(walletService)

	wallets := rg.Group("/wallets")
	wallets.GET("/:walletType", h.getWallet)
	wallets.GET("/:walletType/entries", h.listEntries)

	mutating := wallets.Group("")
	if limit != nil {
		mutating.Use(limit)
	}
	mutating.PUT("/developer/pin", h.setPIN)

	movements := mutating.Group("", middleware.RequireIdempotencyKey())
	{
		movements.POST("/investor/deposit", h.deposit)
		movements.POST("/:walletType/withdraw", h.withdraw)
	}
}

// getWallet godoc
// @Summary Get a wallet
// @Description Returns the logged-in user's wallet of the given type, creating it on first access
// @Tags wallets
// @Produce  json
// @Param   walletType path string true "Wallet type" Enums(investor, developer)
// @Success 200 {object} dto.WalletResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 422 {object} ErrorResponse "Unknown wallet type"
// @Failure 500 {object} ErrorResponse "Failed to retrieve wallet"
// @Security BearerAuth
// @Router /wallets/{walletType} [get]
func (h *walletHandler) getWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}
	walletType := domain.WalletType(c.Param("walletType"))

	wallet, err := h.walletService.GetWallet(c.Request.Context(), userID, walletType)
	if err != nil {
		writeError(c, logger, err, "Failed to retrieve wallet")
		return
	}

	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet, time.Now()))
}

// listEntries godoc
// @Summary List wallet entries
// @Description Lists the wallet's ledger entries, newest first
// @Tags wallets
// @Produce  json
// @Param   walletType path string true "Wallet type" Enums(investor, developer)
// @Param   kind query []string false "Filter by entry kind" collectionFormat(multi)
// @Param   status query []string false "Filter by entry status" collectionFormat(multi)
// @Param   from query string false "Entries created at or after (RFC3339)"
// @Param   to query string false "Entries created before (RFC3339)"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 422 {object} ErrorResponse "Invalid filter"
// @Failure 500 {object} ErrorResponse "Failed to list entries"
// @Security BearerAuth
// @Router /wallets/{walletType}/entries [get]
func (h *walletHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, logger, "query parameters", err)
		return
	}
	walletType := domain.WalletType(c.Param("walletType"))

	resp, err := h.walletService.ListWalletEntries(c.Request.Context(), userID, walletType, params)
	if err != nil {
		writeError(c, logger, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// deposit godoc
// @Summary Deposit into the investor wallet
// @Description Credits funds confirmed by a payment provider. Repeating a request with the same Idempotency-Key returns the original entry.
// @Tags wallets
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string true "Client-chosen key for this deposit"
// @Param   deposit body dto.DepositRequest true "Deposit details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Operation with this key in progress"
// @Failure 422 {object} ErrorResponse "Invalid amount or key reused"
// @Failure 423 {object} ErrorResponse "Account locked"
// @Failure 503 {object} ErrorResponse "Account busy, retry"
// @Security BearerAuth
// @Router /wallets/investor/deposit [post]
func (h *walletHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "request format", err)
		return
	}
	req.IdempotencyKey, _ = middleware.GetIdempotencyKey(c)

	logger.Info("Received deposit", slog.String("amount", req.Amount.String()), slog.String("payment_method", req.PaymentMethod))

	entry, err := h.walletService.Deposit(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, logger, err, "Failed to process deposit")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// withdraw godoc
// @Summary Withdraw from a wallet
// @Description Debits the wallet towards an external account. Developer wallets require the transaction PIN.
// @Tags wallets
// @Accept  json
// @Produce  json
// @Param   walletType path string true "Wallet type" Enums(investor, developer)
// @Param   Idempotency-Key header string true "Client-chosen key for this withdrawal"
// @Param   withdrawal body dto.WithdrawRequest true "Withdrawal details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 401 {object} ErrorResponse "Invalid transaction PIN"
// @Failure 403 {object} ErrorResponse "Account suspended"
// @Failure 409 {object} ErrorResponse "Operation with this key in progress"
// @Failure 422 {object} ErrorResponse "Invalid amount or insufficient balance"
// @Failure 423 {object} ErrorResponse "Account locked"
// @Failure 503 {object} ErrorResponse "Account busy, retry"
// @Security BearerAuth
// @Router /wallets/{walletType}/withdraw [post]
func (h *walletHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "request format", err)
		return
	}
	req.IdempotencyKey, _ = middleware.GetIdempotencyKey(c)
	walletType := domain.WalletType(c.Param("walletType"))

	logger.Info("Received withdrawal", slog.String("wallet_type", string(walletType)), slog.String("amount", req.Amount.String()))

	entry, err := h.walletService.Withdraw(c.Request.Context(), userID, walletType, req)
	if err != nil {
		writeError(c, logger, err, "Failed to process withdrawal")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// setPIN godoc
// @Summary Set the transaction PIN
// @Description Sets or replaces the developer wallet's 4-digit transaction PIN
// @Tags wallets
// @Accept  json
// @Param   pin body dto.SetPINRequest true "New PIN"
// @Success 204 "PIN set"
// @Failure 400 {object} ErrorResponse "Invalid input format"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to set PIN"
// @Security BearerAuth
// @Router /wallets/developer/pin [put]
func (h *walletHandler) setPIN(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.SetPINRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, logger, "request format", err)
		return
	}

	if err := h.walletService.SetPIN(c.Request.Context(), userID, req); err != nil {
		writeError(c, logger, err, "Failed to set PIN")
		return
	}

	logger.Info("Transaction PIN set")
	c.Status(http.StatusNoContent)
}
