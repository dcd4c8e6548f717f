package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
)

// walletService handles onboarding and reads of wallets.
type walletService struct {
	BaseService
	walletRepo portsrepo.WalletRepository
}

// NewWalletService creates a new wallet service.
func NewWalletService(walletRepo portsrepo.WalletRepository) portssvc.WalletSvcFacade {
	return &walletService{
		BaseService: newBaseService(),
		walletRepo:  walletRepo,
	}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// CreateWallet opens the owner's wallet with a zero balance. An owner has at most one.
func (s *walletService) CreateWallet(ctx context.Context, ownerID string, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	now := s.Now()
	wallet := domain.Wallet{
		WalletID: s.NewID(),
		OwnerID:  ownerID,
		Balance:  domain.Zero(currency),
		Version:  1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}
	if err := s.walletRepo.CreateWallet(ctx, wallet); err != nil {
		s.LogError(ctx, err, "Failed to create wallet", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	s.LogInfo(ctx, "Wallet created", slog.String("wallet_id", wallet.WalletID), slog.String("currency", currency))
	return &wallet, nil
}

// GetWalletByOwner returns the owner's wallet.
func (s *walletService) GetWalletByOwner(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	return s.walletRepo.FindWalletByOwner(ctx, ownerID)
}
