package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
	"github.com/SscSPs/wallet_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// authHandler issues development tokens. Production deployments take tokens from an
// external identity provider and never register these routes.
type authHandler struct {
	tokenService portssvc.TokenSvcFacade
}

// newAuthHandler creates a new authHandler.
func newAuthHandler(ts portssvc.TokenSvcFacade) *authHandler {
	return &authHandler{
		tokenService: ts,
	}
}

// RegisterAuthRoutes sets up the public token route, limited to 5 requests per minute per IP.
func RegisterAuthRoutes(r gin.IRouter, tokenService portssvc.TokenSvcFacade) {
	h := newAuthHandler(tokenService)

	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/auth")
	{
		auth.POST("/token", limitMiddleware, h.issueToken)
	}
}

// issueToken godoc
// @Summary Issue a development token
// @Description Returns a signed JWT whose subject is the given owner id. Only available when dev tokens are enabled.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.IssueTokenRequest true "Owner to issue the token for"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/token [post]
func (h *authHandler) issueToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for issueToken", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error(), Kind: apperrors.KindValidation})
		return
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), req.OwnerID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to issue token")
		return
	}

	logger.Info("Development token issued", slog.String("owner_id", req.OwnerID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}
