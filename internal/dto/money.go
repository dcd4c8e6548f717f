package dto

import (
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyResponse renders Money in major units alongside the exact minor units.
type MoneyResponse struct {
	Amount     decimal.Decimal `json:"amount"`
	MinorUnits int64           `json:"minorUnits"`
	Currency   string          `json:"currency"`
	Formatted  string          `json:"formatted"`
}

// ToMoneyResponse converts domain.Money to its response.
func ToMoneyResponse(m domain.Money) MoneyResponse {
	return MoneyResponse{
		Amount:     m.Decimal(),
		MinorUnits: m.MinorUnits,
		Currency:   m.Currency,
		Formatted:  m.Format(),
	}
}
