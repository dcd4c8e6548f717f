package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/mapping"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/retry"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerStore implements portsrepo.LedgerStore on row locks. Entities are locked with
// SELECT ... FOR UPDATE in the unit of work's transaction; writes are version checked.
type PgxLedgerStore struct {
	BaseRepository
	policy retry.Policy
	now    func() time.Time
}

func newPgxLedgerStore(pool *pgxpool.Pool, policy retry.Policy) *PgxLedgerStore {
	return &PgxLedgerStore{
		BaseRepository: BaseRepository{Pool: pool},
		policy:         policy,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

var _ portsrepo.LedgerStore = (*PgxLedgerStore)(nil)

// Begin opens a database transaction for the unit of work.
func (s *PgxLedgerStore) Begin(ctx context.Context) (portsrepo.UnitOfWork, error) {
	tx, err := s.BaseRepository.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxUnitOfWork{
		store:   s,
		tx:      tx,
		held:    make(map[portsrepo.EntityKey]struct{}),
		wallets: make(map[string]domain.Wallet),
		bills:   make(map[string]domain.Bill),
		budgets: make(map[string]domain.Budget),
	}, nil
}

type pgxUnitOfWork struct {
	store *PgxLedgerStore
	// tx holds the row locks. It is nil once committed, rolled back or lost.
	tx   pgx.Tx
	last *portsrepo.EntityKey
	held map[portsrepo.EntityKey]struct{}
	done bool

	wallets    map[string]domain.Wallet
	bills      map[string]domain.Bill
	budgets    map[string]domain.Budget
	newBills   []domain.Bill
	newRecords []domain.TransactionRecord
	finalize   []string
}

func (u *pgxUnitOfWork) acquire(key portsrepo.EntityKey) error {
	if u.done {
		return fmt.Errorf("unit of work already finished")
	}
	if _, ok := u.held[key]; ok {
		return nil
	}
	if u.last != nil && key.Less(*u.last) {
		return fmt.Errorf("lock order violation: %s %s after %s %s", key.Type, key.ID, u.last.Type, u.last.ID)
	}
	u.held[key] = struct{}{}
	u.last = &key
	return nil
}

func (u *pgxUnitOfWork) holds(t domain.EntityType, id string) bool {
	_, ok := u.held[portsrepo.EntityKey{Type: t, ID: id}]
	return ok
}

func (u *pgxUnitOfWork) WalletForUpdate(ctx context.Context, walletID string) (*domain.Wallet, error) {
	if err := u.acquire(portsrepo.EntityKey{Type: domain.EntityWallet, ID: walletID}); err != nil {
		return nil, err
	}
	w, err := scanWallet(u.tx.QueryRow(ctx, `SELECT `+walletColumns+` FROM wallets WHERE wallet_id = $1 FOR UPDATE`, walletID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("wallet " + walletID)
		}
		return nil, classify(ctx, err, "failed to lock wallet "+walletID)
	}
	return &w, nil
}

func (u *pgxUnitOfWork) BillForUpdate(ctx context.Context, billID string) (*domain.Bill, error) {
	if err := u.acquire(portsrepo.EntityKey{Type: domain.EntityBill, ID: billID}); err != nil {
		return nil, err
	}
	b, err := scanBill(u.tx.QueryRow(ctx, `SELECT `+billColumns+` FROM bills WHERE bill_id = $1 FOR UPDATE`, billID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("bill " + billID)
		}
		return nil, classify(ctx, err, "failed to lock bill "+billID)
	}
	return &b, nil
}

func (u *pgxUnitOfWork) BudgetForUpdate(ctx context.Context, budgetID string) (*domain.Budget, error) {
	if err := u.acquire(portsrepo.EntityKey{Type: domain.EntityBudget, ID: budgetID}); err != nil {
		return nil, err
	}
	b, err := scanBudget(u.tx.QueryRow(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE budget_id = $1 FOR UPDATE`, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("budget " + budgetID)
		}
		return nil, classify(ctx, err, "failed to lock budget "+budgetID)
	}
	return &b, nil
}

func (u *pgxUnitOfWork) StageWallet(wallet domain.Wallet) error {
	if !u.holds(domain.EntityWallet, wallet.WalletID) {
		return fmt.Errorf("wallet %s was not acquired", wallet.WalletID)
	}
	u.wallets[wallet.WalletID] = wallet
	return nil
}

func (u *pgxUnitOfWork) StageBill(bill domain.Bill) error {
	if !u.holds(domain.EntityBill, bill.BillID) {
		return fmt.Errorf("bill %s was not acquired", bill.BillID)
	}
	u.bills[bill.BillID] = bill
	return nil
}

func (u *pgxUnitOfWork) StageBudget(budget domain.Budget) error {
	if !u.holds(domain.EntityBudget, budget.BudgetID) {
		return fmt.Errorf("budget %s was not acquired", budget.BudgetID)
	}
	u.budgets[budget.BudgetID] = budget
	return nil
}

func (u *pgxUnitOfWork) StageNewBill(bill domain.Bill) error {
	u.newBills = append(u.newBills, bill)
	return nil
}

func (u *pgxUnitOfWork) StageRecord(record domain.TransactionRecord) error {
	u.newRecords = append(u.newRecords, record)
	return nil
}

func (u *pgxUnitOfWork) StageFinalize(reference string) error {
	u.finalize = append(u.finalize, reference)
	return nil
}

// Commit writes every staged change and commits. The first attempt runs in the locking
// transaction; a retry after a transient failure runs in a fresh one, where the version
// checks take the place of the lost row locks.
func (u *pgxUnitOfWork) Commit(ctx context.Context) error {
	if u.done {
		return fmt.Errorf("unit of work already finished")
	}
	defer u.finish(ctx)

	return u.store.policy.Do(ctx, "pgsql commit", func(ctx context.Context) error {
		tx := u.tx
		u.tx = nil
		if tx == nil {
			var err error
			if tx, err = u.store.BaseRepository.Begin(ctx); err != nil {
				return err
			}
		}
		if err := u.apply(ctx, tx); err != nil {
			_ = u.store.Rollback(context.WithoutCancel(ctx), tx)
			return err
		}
		return u.store.BaseRepository.Commit(ctx, tx)
	})
}

func (u *pgxUnitOfWork) Abort(ctx context.Context) error {
	return u.finish(ctx)
}

func (u *pgxUnitOfWork) finish(ctx context.Context) error {
	if u.done {
		return nil
	}
	u.done = true
	if u.tx == nil {
		return nil
	}
	tx := u.tx
	u.tx = nil
	return u.store.Rollback(context.WithoutCancel(ctx), tx)
}

func (u *pgxUnitOfWork) apply(ctx context.Context, tx pgx.Tx) error {
	now := u.store.now()

	for id, w := range u.wallets {
		if !w.Balance.IsNonNegative() {
			return fmt.Errorf("%w: wallet %s", apperrors.ErrInsufficientFunds, id)
		}
		m := mapping.ToModelWallet(w)
		tag, err := tx.Exec(ctx, `
			UPDATE wallets
			SET balance_minor = $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
			WHERE wallet_id = $4 AND version = $5`,
			m.BalanceMinor, now, m.LastUpdatedBy, m.WalletID, m.Version)
		if err != nil {
			return classify(ctx, err, "failed to update wallet "+id)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: wallet %s", apperrors.ErrConflict, id)
		}
	}

	for id, b := range u.bills {
		m := mapping.ToModelBill(b)
		tag, err := tx.Exec(ctx, `
			UPDATE bills
			SET status = $1, paid_at = $2, version = version + 1, last_updated_at = $3, last_updated_by = $4
			WHERE bill_id = $5 AND version = $6`,
			m.Status, m.PaidAt, now, m.LastUpdatedBy, m.BillID, m.Version)
		if err != nil {
			return classify(ctx, err, "failed to update bill "+id)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: bill %s", apperrors.ErrConflict, id)
		}
	}

	for id, b := range u.budgets {
		m := mapping.ToModelBudget(b)
		tag, err := tx.Exec(ctx, `
			UPDATE budgets
			SET spent_minor = $1, version = version + 1, last_updated_at = $2, last_updated_by = $3
			WHERE budget_id = $4 AND version = $5`,
			m.SpentMinor, now, m.LastUpdatedBy, m.BudgetID, m.Version)
		if err != nil {
			return classify(ctx, err, "failed to update budget "+id)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: budget %s", apperrors.ErrConflict, id)
		}
	}

	for _, b := range u.newBills {
		b.Version = 1
		if err := insertBill(ctx, tx, b); err != nil {
			return err
		}
	}

	for _, r := range u.newRecords {
		if err := insertRecord(ctx, tx, r); err != nil {
			return err
		}
	}

	for _, ref := range u.finalize {
		tag, err := tx.Exec(ctx, `
			UPDATE transaction_records
			SET status = $1, finalized_at = $2
			WHERE reference = $3 AND status = $4`,
			string(domain.StatusCompleted), now, ref, string(domain.StatusPending))
		if err != nil {
			return classify(ctx, err, "failed to finalize record "+ref)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s is no longer pending", apperrors.ErrInvalidStatusChange, ref)
		}
	}
	return nil
}
