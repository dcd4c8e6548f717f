package dto

import (
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines data for creating a budget over [PeriodStart, PeriodEnd).
type CreateBudgetRequest struct {
	Category    string          `json:"category" binding:"required,max=64"`
	Limit       decimal.Decimal `json:"limit" binding:"required,gt=0"`
	Currency    string          `json:"currency" binding:"omitempty,iso4217"`
	PeriodStart time.Time       `json:"periodStart" binding:"required"`
	PeriodEnd   time.Time       `json:"periodEnd" binding:"required,gtfield=PeriodStart"`
}

// BudgetResponse defines data returned for a budget.
type BudgetResponse struct {
	BudgetID    string          `json:"budgetID"`
	Category    string          `json:"category"`
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	Limit       MoneyResponse   `json:"limit"`
	Spent       MoneyResponse   `json:"spent"`
	Remaining   MoneyResponse   `json:"remaining"`
	PercentUsed decimal.Decimal `json:"percentUsed"`
}

// ToBudgetResponse converts domain.Budget to DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:    b.BudgetID,
		Category:    b.Category,
		PeriodStart: b.Period.Start,
		PeriodEnd:   b.Period.End,
		Limit:       ToMoneyResponse(b.Limit),
		Spent:       ToMoneyResponse(b.Spent),
		Remaining:   ToMoneyResponse(b.Remaining()),
		PercentUsed: b.PercentUsed(),
	}
}

// ToBudgetResponses converts a slice of budgets.
func ToBudgetResponses(budgets []domain.Budget) []BudgetResponse {
	out := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		out[i] = ToBudgetResponse(&budgets[i])
	}
	return out
}
