package models

import (
	"database/sql"
	"time"
)

// Bill is the bills row.
type Bill struct {
	BillID       string       `db:"bill_id"`
	OwnerID      string       `db:"owner_id"`
	Name         string       `db:"name"`
	Category     string       `db:"category"`
	AmountMinor  int64        `db:"amount_minor"`
	CurrencyCode string       `db:"currency_code"`
	DueDate      time.Time    `db:"due_date"`
	Status       string       `db:"status"`
	IsRecurring  bool         `db:"is_recurring"`
	Description  string       `db:"description"`
	PaidAt       sql.NullTime `db:"paid_at"`
	Version      int64        `db:"version"`
	AuditFields
}
