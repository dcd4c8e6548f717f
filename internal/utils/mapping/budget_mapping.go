package mapping

import (
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:     d.BudgetID,
		OwnerID:      d.OwnerID,
		Category:     d.Category,
		PeriodStart:  d.Period.Start,
		PeriodEnd:    d.Period.End,
		LimitMinor:   d.Limit.MinorUnits,
		SpentMinor:   d.Spent.MinorUnits,
		CurrencyCode: d.Limit.Currency,
		Version:      d.Version,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:    m.BudgetID,
		OwnerID:     m.OwnerID,
		Category:    m.Category,
		Period:      domain.Period{Start: m.PeriodStart.UTC(), End: m.PeriodEnd.UTC()},
		Limit:       domain.NewMoney(m.LimitMinor, m.CurrencyCode),
		Spent:       domain.NewMoney(m.SpentMinor, m.CurrencyCode),
		Version:     m.Version,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBudgetSlice converts a slice of model Budgets to a slice of domain Budgets
func ToDomainBudgetSlice(ms []models.Budget) []domain.Budget {
	ds := make([]domain.Budget, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudget(m)
	}
	return ds
}
