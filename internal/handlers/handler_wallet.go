package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
	"github.com/SscSPs/wallet_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// walletHandler handles HTTP requests related to the caller's wallet.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

// newWalletHandler creates a new walletHandler.
func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{
		walletService: ws,
	}
}

// RegisterWalletRoutes registers routes related to wallets.
func RegisterWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	registerValidators()
	h := newWalletHandler(walletService)

	wallet := rg.Group("/wallet")
	{
		wallet.POST("", h.createWallet)
		wallet.GET("", h.getWallet)
	}
}

// createWallet godoc
// @Summary Open the caller's wallet
// @Description Creates the caller's wallet with a zero balance. Each owner has exactly one wallet.
// @Tags wallet
// @Accept  json
// @Produce  json
// @Param   wallet body dto.CreateWalletRequest false "Wallet currency, USD when omitted"
// @Success 201 {object} dto.WalletResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Wallet already exists"
// @Failure 500 {object} ErrorResponse "Failed to create wallet"
// @Security BearerAuth
// @Router /wallet [post]
func (h *walletHandler) createWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context for createWallet")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateWalletRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for createWallet", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error(), Kind: apperrors.KindValidation})
			return
		}
	}

	wallet, err := h.walletService.CreateWallet(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create wallet")
		return
	}

	logger.Info("Wallet created", slog.String("wallet_id", wallet.WalletID))
	c.JSON(http.StatusCreated, dto.ToWalletResponse(wallet))
}

// getWallet godoc
// @Summary Get the caller's wallet
// @Description Returns the caller's wallet and its current balance.
// @Tags wallet
// @Produce  json
// @Success 200 {object} dto.WalletResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Wallet not found"
// @Failure 500 {object} ErrorResponse "Failed to get wallet"
// @Security BearerAuth
// @Router /wallet [get]
func (h *walletHandler) getWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context for getWallet")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	wallet, err := h.walletService.GetWalletByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to get wallet")
		return
	}
	c.JSON(http.StatusOK, dto.ToWalletResponse(wallet))
}
