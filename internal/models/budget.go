package models

import "time"

// Budget is the budgets row. Limit and spent share the budget currency.
type Budget struct {
	BudgetID     string    `db:"budget_id"`
	OwnerID      string    `db:"owner_id"`
	Category     string    `db:"category"`
	PeriodStart  time.Time `db:"period_start"`
	PeriodEnd    time.Time `db:"period_end"`
	LimitMinor   int64     `db:"limit_minor"`
	SpentMinor   int64     `db:"spent_minor"`
	CurrencyCode string    `db:"currency_code"`
	Version      int64     `db:"version"`
	AuditFields
}
