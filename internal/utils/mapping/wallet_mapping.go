package mapping

import (
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/models"
)

// ToModelWallet converts a domain Wallet to a model Wallet
func ToModelWallet(d domain.Wallet) models.Wallet {
	return models.Wallet{
		WalletID:     d.WalletID,
		OwnerID:      d.OwnerID,
		BalanceMinor: d.Balance.MinorUnits,
		CurrencyCode: d.Balance.Currency,
		Version:      d.Version,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainWallet converts a model Wallet to a domain Wallet
func ToDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		WalletID:    m.WalletID,
		OwnerID:     m.OwnerID,
		Balance:     domain.NewMoney(m.BalanceMinor, m.CurrencyCode),
		Version:     m.Version,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
