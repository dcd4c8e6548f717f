package pgsql

import (
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/retry"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every PostgreSQL repository over dbPool. Commits of the
// ledger store are retried with policy.
func NewRepositoryProvider(dbPool *pgxpool.Pool, policy retry.Policy) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerStore: newPgxLedgerStore(dbPool, policy),
		Journal:     newPgxJournalRepository(dbPool),
		WalletRepo:  newPgxWalletRepository(dbPool),
		BillRepo:    newPgxBillRepository(dbPool),
		BudgetRepo:  newPgxBudgetRepository(dbPool),
	}
}
