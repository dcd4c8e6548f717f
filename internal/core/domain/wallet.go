package domain

// Wallet holds a user's balance. Balance is never negative in committed state.
type Wallet struct {
	WalletID string `json:"walletID"`
	OwnerID  string `json:"ownerID"`
	Balance  Money  `json:"balance"`
	// Version increases by one on every committed write.
	Version int64 `json:"version"`
	AuditFields
}
