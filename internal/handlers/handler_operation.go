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

// operationHandler handles HTTP requests that move money.
type operationHandler struct {
	operationService portssvc.OperationSvc
}

// OperationFailureResponse is returned when an operation was journaled and then failed.
type OperationFailureResponse struct {
	dto.OperationResponse
	Error string `json:"error"`
}

// newOperationHandler creates a new operationHandler.
func newOperationHandler(svc portssvc.OperationSvc) *operationHandler {
	return &operationHandler{
		operationService: svc,
	}
}

// RegisterOperationRoutes registers the operation endpoint on an authenticated group.
func RegisterOperationRoutes(rg *gin.RouterGroup, operationService portssvc.OperationSvc, extra ...gin.HandlerFunc) {
	registerValidators()
	h := newOperationHandler(operationService)

	chain := append([]gin.HandlerFunc{middleware.IdempotencyKey()}, extra...)
	operations := rg.Group("/operations", chain...)
	{
		operations.POST("", h.executeOperation)
	}
}

// executeOperation godoc
// @Summary Execute a transfer, bill payment, deposit or withdrawal
// @Description Runs the operation all-or-nothing. Repeating a reference returns the first result without moving money again. The reference may be sent in the Idempotency-Key header instead of the body.
// @Tags operations
// @Accept  json
// @Produce  json
// @Param   Idempotency-Key header string false "Operation reference"
// @Param   operation body dto.ExecuteOperationRequest true "Operation details"
// @Success 201 {object} dto.OperationResponse "Operation committed"
// @Success 200 {object} dto.OperationResponse "Replayed result of an earlier request"
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} OperationFailureResponse "Wallet or bill not found"
// @Failure 409 {object} OperationFailureResponse "Bill already paid, reference in use or operation in progress"
// @Failure 422 {object} OperationFailureResponse "Insufficient funds, currency mismatch or self transfer"
// @Failure 429 {object} ErrorResponse "Too many requests"
// @Failure 503 {object} OperationFailureResponse "Store unavailable"
// @Security BearerAuth
// @Router /operations [post]
func (h *operationHandler) executeOperation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ownerID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Owner ID not found in context for executeOperation")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.ExecuteOperationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for executeOperation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error(), Kind: apperrors.KindValidation})
		return
	}

	if key, ok := middleware.GetIdempotencyKeyFromContext(c); ok {
		switch {
		case req.Reference == "":
			req.Reference = key
		case req.Reference != key:
			logger.Warn("Reference does not match Idempotency-Key header", slog.String("reference", req.Reference))
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "reference does not match the Idempotency-Key header", Kind: apperrors.KindValidation})
			return
		}
	}

	opReq, err := req.ToDomain()
	if err != nil {
		respondWithError(c, logger, err, "Invalid operation request")
		return
	}

	logger = logger.With(slog.String("reference", opReq.Reference), slog.String("operation", string(opReq.Kind)))
	result, err := h.operationService.Execute(c.Request.Context(), ownerID, opReq)
	if err != nil {
		if result == nil {
			respondWithError(c, logger, err, "Operation failed")
			return
		}
		status := apperrors.HTTPStatus(err)
		logger.Warn("Operation failed", slog.String("error", err.Error()), slog.String("kind", string(result.ErrorKind)), slog.Bool("replayed", result.Replayed))
		message := "operation failed: " + string(result.ErrorKind)
		if status < http.StatusInternalServerError {
			message = err.Error()
		}
		c.JSON(status, OperationFailureResponse{
			OperationResponse: dto.ToOperationResponse(result),
			Error:             message,
		})
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	c.JSON(status, dto.ToOperationResponse(result))
}
