package pgsql

import (
	"context"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/models"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	walletColumns = `wallet_id, owner_id, balance_minor, currency_code, version,
		created_at, created_by, last_updated_at, last_updated_by`
	billColumns = `bill_id, owner_id, name, category, amount_minor, currency_code, due_date, status,
		is_recurring, description, paid_at, version, created_at, created_by, last_updated_at, last_updated_by`
	budgetColumns = `budget_id, owner_id, category, period_start, period_end, limit_minor, spent_minor,
		currency_code, version, created_at, created_by, last_updated_at, last_updated_by`
	recordColumns = `transaction_id, reference, wallet_id, owner_id, kind, amount_minor, currency_code,
		counterparty_id, status, category, description, bill_id, error_kind, created_at, finalized_at`
)

func scanWallet(row pgx.Row) (domain.Wallet, error) {
	var m models.Wallet
	err := row.Scan(
		&m.WalletID,
		&m.OwnerID,
		&m.BalanceMinor,
		&m.CurrencyCode,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Wallet{}, err
	}
	return mapping.ToDomainWallet(m), nil
}

func scanBill(row pgx.Row) (domain.Bill, error) {
	var m models.Bill
	err := row.Scan(
		&m.BillID,
		&m.OwnerID,
		&m.Name,
		&m.Category,
		&m.AmountMinor,
		&m.CurrencyCode,
		&m.DueDate,
		&m.Status,
		&m.IsRecurring,
		&m.Description,
		&m.PaidAt,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Bill{}, err
	}
	return mapping.ToDomainBill(m), nil
}

func scanBudget(row pgx.Row) (domain.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.OwnerID,
		&m.Category,
		&m.PeriodStart,
		&m.PeriodEnd,
		&m.LimitMinor,
		&m.SpentMinor,
		&m.CurrencyCode,
		&m.Version,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Budget{}, err
	}
	return mapping.ToDomainBudget(m), nil
}

func scanRecord(row pgx.Row) (domain.TransactionRecord, error) {
	var m models.TransactionRecord
	err := row.Scan(
		&m.TransactionID,
		&m.Reference,
		&m.WalletID,
		&m.OwnerID,
		&m.Kind,
		&m.AmountMinor,
		&m.CurrencyCode,
		&m.CounterpartyID,
		&m.Status,
		&m.Category,
		&m.Description,
		&m.BillID,
		&m.ErrorKind,
		&m.CreatedAt,
		&m.FinalizedAt,
	)
	if err != nil {
		return domain.TransactionRecord{}, err
	}
	return mapping.ToDomainTransactionRecord(m), nil
}

// collect scans every row with scan and closes rows.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (T, error)) ([]T, error) {
	defer rows.Close()
	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}
