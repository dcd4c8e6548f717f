package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
	"github.com/SscSPs/wallet_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// billHandler handles HTTP requests related to bills.
type billHandler struct {
	billService portssvc.BillSvcFacade
}

// newBillHandler creates a new billHandler.
func newBillHandler(bs portssvc.BillSvcFacade) *billHandler {
	return &billHandler{
		billService: bs,
	}
}

// RegisterBillRoutes registers routes related to bills. Bills are paid via /operations.
func RegisterBillRoutes(rg *gin.RouterGroup, billService portssvc.BillSvcFacade) {
	registerValidators()
	h := newBillHandler(billService)

	bills := rg.Group("/bills")
	{
		bills.POST("", h.createBill)
		bills.GET("", h.listBills)
	}
}

// createBill godoc
// @Summary Create a bill
// @Description Registers a bill owed by the caller. Recurring bills get a new occurrence each time they are paid.
// @Tags bills
// @Accept  json
// @Produce  json
// @Param   bill body dto.CreateBillRequest true "Bill details"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to create bill"
// @Security BearerAuth
// @Router /bills [post]
func (h *billHandler) createBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context for createBill")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error(), Kind: apperrors.KindValidation})
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), ownerID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create bill")
		return
	}
	c.JSON(http.StatusCreated, dto.ToBillResponse(bill, time.Now().UTC()))
}

// listBills godoc
// @Summary List bills
// @Description Lists the caller's bills ordered by due date. Unpaid bills past their due date are reported as OVERDUE.
// @Tags bills
// @Produce  json
// @Param   limit query int false "Page size" minimum(1) maximum(100)
// @Param   offset query int false "Offset" minimum(0)
// @Success 200 {object} dto.ListBillsResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list bills"
// @Security BearerAuth
// @Router /bills [get]
func (h *billHandler) listBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context for listBills")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListBillsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listBills", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error(), Kind: apperrors.KindValidation})
		return
	}

	resp, err := h.billService.ListBills(c.Request.Context(), ownerID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list bills")
		return
	}
	c.JSON(http.StatusOK, resp)
}
