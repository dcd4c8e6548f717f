package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period is the half-open interval [Start, End).
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies within the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Budget caps spending in one category for a period. Spent is a cache of the journal.
type Budget struct {
	BudgetID string `json:"budgetID"`
	OwnerID  string `json:"ownerID"`
	Category string `json:"category"`
	Period   Period `json:"period"`
	Limit    Money  `json:"limit"`
	Spent    Money  `json:"spent"`
	Version  int64  `json:"version"`
	AuditFields
}

// Remaining is Limit minus Spent; it goes negative once the budget is exceeded.
func (b Budget) Remaining() Money {
	return Money{MinorUnits: b.Limit.MinorUnits - b.Spent.MinorUnits, Currency: b.Limit.Currency}
}

// PercentUsed is Spent as a percentage of Limit, rounded to two places.
func (b Budget) PercentUsed() decimal.Decimal {
	if b.Limit.MinorUnits <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(b.Spent.MinorUnits).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(b.Limit.MinorUnits)).
		Round(2)
}
