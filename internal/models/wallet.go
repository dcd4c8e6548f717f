package models

// Wallet is the wallets row. Balances are stored in minor units.
type Wallet struct {
	WalletID     string `db:"wallet_id"`
	OwnerID      string `db:"owner_id"`
	BalanceMinor int64  `db:"balance_minor"`
	CurrencyCode string `db:"currency_code"`
	Version      int64  `db:"version"`
	AuditFields
}
