package services

import (
	"context"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
)

// WalletReaderSvc defines read operations for wallets.
type WalletReaderSvc interface {
	GetWalletByOwner(ctx context.Context, ownerID string) (*domain.Wallet, error)
}

// WalletWriterSvc defines onboarding of wallets.
type WalletWriterSvc interface {
	CreateWallet(ctx context.Context, ownerID string, req dto.CreateWalletRequest) (*domain.Wallet, error)
}

// WalletSvcFacade combines all wallet service interfaces.
type WalletSvcFacade interface {
	WalletReaderSvc
	WalletWriterSvc
}
