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

// transactionHandler handles HTTP requests that read the journal.
type transactionHandler struct {
	transactionService portssvc.TransactionReaderSvc
}

// newTransactionHandler creates a new transactionHandler.
func newTransactionHandler(ts portssvc.TransactionReaderSvc) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
	}
}

// RegisterTransactionRoutes registers routes related to journal records.
func RegisterTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionReaderSvc) {
	h := newTransactionHandler(transactionService)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.GET("/:reference", h.getTransactionByReference)
	}
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the caller's journal records, most recent first. Use nextToken from a previous response to fetch the following page.
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Page size" minimum(1) maximum(100)
// @Param   page query int false "Page number, ignored when nextToken is set" minimum(1)
// @Param   nextToken query string false "Token for the next page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context for listTransactions")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error(), Kind: apperrors.KindValidation})
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), ownerID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getTransactionByReference godoc
// @Summary Get a transaction by reference
// @Description Returns the journal record for an operation reference, for example to check the outcome of a request that timed out.
// @Tags transactions
// @Produce  json
// @Param   reference path string true "Operation reference"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Transaction not found"
// @Failure 500 {object} ErrorResponse "Failed to get transaction"
// @Security BearerAuth
// @Router /transactions/{reference} [get]
func (h *transactionHandler) getTransactionByReference(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reference := c.Param("reference")

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context for getTransactionByReference")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	record, err := h.transactionService.GetTransactionByReference(c.Request.Context(), ownerID, reference)
	if err != nil {
		respondWithError(c, logger.With(slog.String("reference", reference)), err, "Failed to get transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(record))
}
