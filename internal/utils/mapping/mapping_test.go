package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTransactionRecord_OptionalColumnsAreNull(t *testing.T) {
	rec := domain.TransactionRecord{
		TransactionID: "t1",
		Reference:     "r1",
		Kind:          domain.KindDeposit,
		Amount:        domain.NewMoney(100, "USD"),
		Status:        domain.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	m := ToModelTransactionRecord(rec)

	assert.False(t, m.CounterpartyID.Valid)
	assert.False(t, m.Category.Valid)
	assert.False(t, m.BillID.Valid)
	assert.False(t, m.ErrorKind.Valid)
	assert.False(t, m.FinalizedAt.Valid)
	assert.Equal(t, rec, ToDomainTransactionRecord(m))
}

func TestTransactionRecord_FailedRecordKeepsErrorKind(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := domain.TransactionRecord{
		TransactionID: "t1",
		Reference:     "r1",
		Status:        domain.StatusFailed,
		Amount:        domain.NewMoney(100, "USD"),
		ErrorKind:     apperrors.KindInsufficientFunds,
		FinalizedAt:   &at,
	}

	back := ToDomainTransactionRecord(ToModelTransactionRecord(rec))

	assert.Equal(t, apperrors.KindInsufficientFunds, back.ErrorKind)
	assert.Equal(t, at, *back.FinalizedAt)
}

func TestBudget_SharesCurrencyBetweenLimitAndSpent(t *testing.T) {
	b := domain.Budget{
		BudgetID: "b1",
		Limit:    domain.NewMoney(50000, "EUR"),
		Spent:    domain.NewMoney(1200, "EUR"),
		Period:   domain.Period{Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	m := ToModelBudget(b)

	assert.Equal(t, "EUR", m.CurrencyCode)
	assert.Equal(t, int64(1200), m.SpentMinor)
	assert.Equal(t, b, ToDomainBudget(m))
}
