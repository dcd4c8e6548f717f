package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/platform/config"
	"github.com/SscSPs/wallet_ledger_app/internal/utils"
)

// tokenService issues the JWTs the auth middleware accepts.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateAccessToken creates a new JWT access token for the given owner.
func (s *tokenService) GenerateAccessToken(ctx context.Context, ownerID string) (string, time.Time, error) {
	if ownerID == "" {
		return "", time.Time{}, fmt.Errorf("%w: owner id is required", apperrors.ErrValidation)
	}
	return utils.GenerateOwnerToken(ownerID, s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.JWTExpiryDuration, time.Now())
}
