package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the error body returned by every handler.
type ErrorResponse struct {
	Error string         `json:"error"`
	Kind  apperrors.Kind `json:"kind,omitempty"`
}

// respondWithError writes err using its mapped status. Server side failures are logged at
// error level and their cause is not exposed to the client.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, msg string) {
	status := apperrors.HTTPStatus(err)
	kind := apperrors.KindOf(err)

	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error(msg, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: msg, Kind: apperrors.KindInternal})
		return
	}

	logger.Warn(msg, slog.String("error", err.Error()), slog.String("kind", string(kind)))
	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}
	c.JSON(status, ErrorResponse{Error: message, Kind: kind})
}
