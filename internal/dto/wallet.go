package dto

import (
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
)

// CreateWalletRequest onboards the caller's wallet.
type CreateWalletRequest struct {
	Currency string `json:"currency" binding:"omitempty,iso4217"`
}

// WalletResponse defines data returned for a wallet.
type WalletResponse struct {
	WalletID      string        `json:"walletID"`
	OwnerID       string        `json:"ownerID"`
	Balance       MoneyResponse `json:"balance"`
	CreatedAt     time.Time     `json:"createdAt"`
	LastUpdatedAt time.Time     `json:"lastUpdatedAt"`
}

// ToWalletResponse converts domain.Wallet to DTO.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:      w.WalletID,
		OwnerID:       w.OwnerID,
		Balance:       ToMoneyResponse(w.Balance),
		CreatedAt:     w.CreatedAt,
		LastUpdatedAt: w.LastUpdatedAt,
	}
}
