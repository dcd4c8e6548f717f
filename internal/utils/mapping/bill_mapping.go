package mapping

import (
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/models"
)

// ToModelBill converts a domain Bill to a model Bill
func ToModelBill(d domain.Bill) models.Bill {
	return models.Bill{
		BillID:       d.BillID,
		OwnerID:      d.OwnerID,
		Name:         d.Name,
		Category:     d.Category,
		AmountMinor:  d.Amount.MinorUnits,
		CurrencyCode: d.Amount.Currency,
		DueDate:      d.DueDate,
		Status:       string(d.Status),
		IsRecurring:  d.Recurring,
		Description:  d.Description,
		PaidAt:       nullTime(d.PaidAt),
		Version:      d.Version,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBill converts a model Bill to a domain Bill
func ToDomainBill(m models.Bill) domain.Bill {
	return domain.Bill{
		BillID:      m.BillID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Category:    m.Category,
		Amount:      domain.NewMoney(m.AmountMinor, m.CurrencyCode),
		DueDate:     m.DueDate,
		Status:      domain.BillStatus(m.Status),
		Recurring:   m.IsRecurring,
		Description: m.Description,
		PaidAt:      timePtr(m.PaidAt),
		Version:     m.Version,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBillSlice converts a slice of model Bills to a slice of domain Bills
func ToDomainBillSlice(ms []models.Bill) []domain.Bill {
	ds := make([]domain.Bill, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBill(m)
	}
	return ds
}
