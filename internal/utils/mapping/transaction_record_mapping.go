package mapping

import (
	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/models"
)

// ToModelTransactionRecord converts a domain TransactionRecord to a model TransactionRecord
func ToModelTransactionRecord(d domain.TransactionRecord) models.TransactionRecord {
	return models.TransactionRecord{
		TransactionID:  d.TransactionID,
		Reference:      d.Reference,
		WalletID:       d.WalletID,
		OwnerID:        d.OwnerID,
		Kind:           string(d.Kind),
		AmountMinor:    d.Amount.MinorUnits,
		CurrencyCode:   d.Amount.Currency,
		CounterpartyID: nullString(d.CounterpartyID),
		Status:         string(d.Status),
		Category:       nullString(d.Category),
		Description:    nullString(d.Description),
		BillID:         nullString(d.BillID),
		ErrorKind:      nullString(string(d.ErrorKind)),
		CreatedAt:      d.CreatedAt,
		FinalizedAt:    nullTime(d.FinalizedAt),
	}
}

// ToDomainTransactionRecord converts a model TransactionRecord to a domain TransactionRecord
func ToDomainTransactionRecord(m models.TransactionRecord) domain.TransactionRecord {
	return domain.TransactionRecord{
		TransactionID:  m.TransactionID,
		Reference:      m.Reference,
		WalletID:       m.WalletID,
		OwnerID:        m.OwnerID,
		Kind:           domain.TransactionKind(m.Kind),
		Amount:         domain.NewMoney(m.AmountMinor, m.CurrencyCode),
		CounterpartyID: m.CounterpartyID.String,
		Status:         domain.TransactionStatus(m.Status),
		Category:       m.Category.String,
		Description:    m.Description.String,
		BillID:         m.BillID.String,
		ErrorKind:      apperrors.Kind(m.ErrorKind.String),
		CreatedAt:      m.CreatedAt.UTC(),
		FinalizedAt:    timePtr(m.FinalizedAt),
	}
}

// ToDomainTransactionRecordSlice converts a slice of model records to domain records
func ToDomainTransactionRecordSlice(ms []models.TransactionRecord) []domain.TransactionRecord {
	ds := make([]domain.TransactionRecord, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransactionRecord(m)
	}
	return ds
}
