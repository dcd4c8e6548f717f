package models

import (
	"database/sql"
	"time"
)

// TransactionRecord is the transaction_records row. Optional columns are nullable.
type TransactionRecord struct {
	TransactionID  string         `db:"transaction_id"`
	Reference      string         `db:"reference"`
	WalletID       string         `db:"wallet_id"`
	OwnerID        string         `db:"owner_id"`
	Kind           string         `db:"kind"`
	AmountMinor    int64          `db:"amount_minor"`
	CurrencyCode   string         `db:"currency_code"`
	CounterpartyID sql.NullString `db:"counterparty_id"`
	Status         string         `db:"status"`
	Category       sql.NullString `db:"category"`
	Description    sql.NullString `db:"description"`
	BillID         sql.NullString `db:"bill_id"`
	ErrorKind      sql.NullString `db:"error_kind"`
	CreatedAt      time.Time      `db:"created_at"`
	FinalizedAt    sql.NullTime   `db:"finalized_at"`
}
