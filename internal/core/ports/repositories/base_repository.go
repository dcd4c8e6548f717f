package repositories

import (
	"context"
	"sort"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
)

// EntityKey identifies a lockable entity.
type EntityKey struct {
	Type domain.EntityType
	ID   string
}

// Less orders keys canonically: by entity type rank, then by id.
func (k EntityKey) Less(other EntityKey) bool {
	if k.Type.Rank() != other.Type.Rank() {
		return k.Type.Rank() < other.Type.Rank()
	}
	return k.ID < other.ID
}

// SortKeys returns the distinct keys in canonical acquisition order.
// Every unit of work acquires its entities in this order so that overlapping
// operations cannot deadlock.
func SortKeys(keys []EntityKey) []EntityKey {
	seen := make(map[EntityKey]struct{}, len(keys))
	out := make([]EntityKey, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// LedgerStore opens units of work over wallets, bills, budgets and the journal.
type LedgerStore interface {
	Begin(ctx context.Context) (UnitOfWork, error)
}

// UnitOfWork holds exclusive access to the entities it has acquired until Commit or Abort.
// Staged changes are invisible to everyone else until Commit succeeds.
type UnitOfWork interface {
	// WalletForUpdate acquires the wallet exclusively and returns its current state.
	WalletForUpdate(ctx context.Context, walletID string) (*domain.Wallet, error)
	// BillForUpdate acquires the bill exclusively and returns its current state.
	BillForUpdate(ctx context.Context, billID string) (*domain.Bill, error)
	// BudgetForUpdate acquires the budget exclusively and returns its current state.
	BudgetForUpdate(ctx context.Context, budgetID string) (*domain.Budget, error)

	// StageWallet, StageBill and StageBudget replace an acquired entity's state.
	// The Version field must still hold the version that was read.
	StageWallet(wallet domain.Wallet) error
	StageBill(bill domain.Bill) error
	StageBudget(budget domain.Budget) error
	// StageNewBill inserts a bill on commit.
	StageNewBill(bill domain.Bill) error
	// StageRecord inserts an already completed journal record on commit.
	StageRecord(record domain.TransactionRecord) error
	// StageFinalize moves the PENDING record for reference to COMPLETED on commit.
	StageFinalize(reference string) error

	// Commit persists every staged change atomically and releases the unit of work.
	Commit(ctx context.Context) error
	// Abort releases the unit of work without persisting. It is safe to call after Commit.
	Abort(ctx context.Context) error
}
