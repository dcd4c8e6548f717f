// Package memory is an in-process implementation of the ledger store and journal.
// It backs local development without PostgreSQL and serves as the test double
// for the service layer.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/retry"
)

// Store keeps wallets, bills, budgets and journal records in maps guarded by one
// RWMutex. Per-entity exclusivity for units of work is provided by a keyed locker.
type Store struct {
	mu      sync.RWMutex
	wallets map[string]domain.Wallet
	bills   map[string]domain.Bill
	budgets map[string]domain.Budget
	records map[string]*domain.TransactionRecord

	locks  *keyedLocker
	policy retry.Policy
	now    func() time.Time

	faultMu      sync.Mutex
	commitFaults int
	commitErr    error
}

// Option configures a Store.
type Option func(*Store)

// WithRetryPolicy sets the policy used to retry commits.
func WithRetryPolicy(p retry.Policy) Option {
	return func(s *Store) { s.policy = p }
}

// WithClock overrides the clock used for audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		wallets: make(map[string]domain.Wallet),
		bills:   make(map[string]domain.Bill),
		budgets: make(map[string]domain.Budget),
		records: make(map[string]*domain.TransactionRecord),
		locks:   newKeyedLocker(),
		policy:  retry.DefaultPolicy,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ repositories.LedgerStore      = (*Store)(nil)
	_ repositories.Journal          = (*Store)(nil)
	_ repositories.WalletRepository = (*Store)(nil)
	_ repositories.BillRepository   = (*Store)(nil)
	_ repositories.BudgetRepository = (*Store)(nil)
)

// Provider exposes the store through every repository port.
func (s *Store) Provider() repositories.RepositoryProvider {
	return repositories.RepositoryProvider{
		LedgerStore: s,
		Journal:     s,
		WalletRepo:  s,
		BillRepo:    s,
		BudgetRepo:  s,
	}
}

// InjectCommitFaults makes the next n commit attempts fail with err before anything is
// written. A nil err defaults to apperrors.ErrStoreUnavailable.
func (s *Store) InjectCommitFaults(n int, err error) {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	if err == nil {
		err = fmt.Errorf("%w: injected fault", apperrors.ErrStoreUnavailable)
	}
	s.commitFaults = n
	s.commitErr = err
}

func (s *Store) takeFault() error {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	if s.commitFaults <= 0 {
		return nil
	}
	s.commitFaults--
	return s.commitErr
}

// Begin opens a unit of work.
func (s *Store) Begin(ctx context.Context) (repositories.UnitOfWork, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrCancelled, err)
	}
	return &unitOfWork{
		store:   s,
		held:    make(map[repositories.EntityKey]struct{}),
		wallets: make(map[string]domain.Wallet),
		bills:   make(map[string]domain.Bill),
		budgets: make(map[string]domain.Budget),
	}, nil
}

type unitOfWork struct {
	store *Store

	held  map[repositories.EntityKey]struct{}
	order []repositories.EntityKey
	done  bool

	wallets    map[string]domain.Wallet
	bills      map[string]domain.Bill
	budgets    map[string]domain.Budget
	newBills   []domain.Bill
	newRecords []domain.TransactionRecord
	finalize   []string
}

var _ repositories.UnitOfWork = (*unitOfWork)(nil)

func (u *unitOfWork) acquire(ctx context.Context, key repositories.EntityKey) error {
	if u.done {
		return fmt.Errorf("unit of work already finished")
	}
	if _, ok := u.held[key]; ok {
		return nil
	}
	if n := len(u.order); n > 0 && !u.order[n-1].Less(key) {
		return fmt.Errorf("lock order violation: %s %s acquired after %s %s",
			key.Type, key.ID, u.order[n-1].Type, u.order[n-1].ID)
	}
	if err := u.store.locks.Lock(ctx, key); err != nil {
		return err
	}
	u.held[key] = struct{}{}
	u.order = append(u.order, key)
	return nil
}

func (u *unitOfWork) holds(t domain.EntityType, id string) bool {
	_, ok := u.held[repositories.EntityKey{Type: t, ID: id}]
	return ok
}

func (u *unitOfWork) WalletForUpdate(ctx context.Context, walletID string) (*domain.Wallet, error) {
	if err := u.acquire(ctx, repositories.EntityKey{Type: domain.EntityWallet, ID: walletID}); err != nil {
		return nil, err
	}
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	w, ok := u.store.wallets[walletID]
	if !ok {
		return nil, apperrors.NewNotFoundError("wallet " + walletID)
	}
	return &w, nil
}

func (u *unitOfWork) BillForUpdate(ctx context.Context, billID string) (*domain.Bill, error) {
	if err := u.acquire(ctx, repositories.EntityKey{Type: domain.EntityBill, ID: billID}); err != nil {
		return nil, err
	}
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	b, ok := u.store.bills[billID]
	if !ok {
		return nil, apperrors.NewNotFoundError("bill " + billID)
	}
	return &b, nil
}

func (u *unitOfWork) BudgetForUpdate(ctx context.Context, budgetID string) (*domain.Budget, error) {
	if err := u.acquire(ctx, repositories.EntityKey{Type: domain.EntityBudget, ID: budgetID}); err != nil {
		return nil, err
	}
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	b, ok := u.store.budgets[budgetID]
	if !ok {
		return nil, apperrors.NewNotFoundError("budget " + budgetID)
	}
	return &b, nil
}

func (u *unitOfWork) StageWallet(wallet domain.Wallet) error {
	if !u.holds(domain.EntityWallet, wallet.WalletID) {
		return fmt.Errorf("wallet %s staged without being acquired", wallet.WalletID)
	}
	u.wallets[wallet.WalletID] = wallet
	return nil
}

func (u *unitOfWork) StageBill(bill domain.Bill) error {
	if !u.holds(domain.EntityBill, bill.BillID) {
		return fmt.Errorf("bill %s staged without being acquired", bill.BillID)
	}
	u.bills[bill.BillID] = bill
	return nil
}

func (u *unitOfWork) StageBudget(budget domain.Budget) error {
	if !u.holds(domain.EntityBudget, budget.BudgetID) {
		return fmt.Errorf("budget %s staged without being acquired", budget.BudgetID)
	}
	u.budgets[budget.BudgetID] = budget
	return nil
}

func (u *unitOfWork) StageNewBill(bill domain.Bill) error {
	u.newBills = append(u.newBills, bill)
	return nil
}

func (u *unitOfWork) StageRecord(record domain.TransactionRecord) error {
	u.newRecords = append(u.newRecords, record)
	return nil
}

func (u *unitOfWork) StageFinalize(reference string) error {
	u.finalize = append(u.finalize, reference)
	return nil
}

// Commit validates every staged change against the current state and applies all of
// them, or none. Transient faults are retried; each attempt re-checks versions.
func (u *unitOfWork) Commit(ctx context.Context) error {
	if u.done {
		return fmt.Errorf("unit of work already finished")
	}
	defer u.release()
	return u.store.policy.Do(ctx, "memory commit", func(ctx context.Context) error {
		if err := u.store.takeFault(); err != nil {
			return err
		}
		return u.store.apply(u)
	})
}

func (u *unitOfWork) Abort(ctx context.Context) error {
	u.release()
	return nil
}

func (u *unitOfWork) release() {
	if u.done {
		return
	}
	u.done = true
	for i := len(u.order) - 1; i >= 0; i-- {
		u.store.locks.Unlock(u.order[i])
	}
}

func (s *Store) apply(u *unitOfWork) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, w := range u.wallets {
		if cur, ok := s.wallets[id]; !ok || cur.Version != w.Version {
			return fmt.Errorf("%w: wallet %s", apperrors.ErrConflict, id)
		}
		if !w.Balance.IsNonNegative() {
			return fmt.Errorf("%w: wallet %s", apperrors.ErrInsufficientFunds, id)
		}
	}
	for id, b := range u.bills {
		if cur, ok := s.bills[id]; !ok || cur.Version != b.Version {
			return fmt.Errorf("%w: bill %s", apperrors.ErrConflict, id)
		}
	}
	for id, b := range u.budgets {
		if cur, ok := s.budgets[id]; !ok || cur.Version != b.Version {
			return fmt.Errorf("%w: budget %s", apperrors.ErrConflict, id)
		}
	}
	for _, b := range u.newBills {
		if _, ok := s.bills[b.BillID]; ok {
			return fmt.Errorf("%w: bill %s", apperrors.ErrDuplicate, b.BillID)
		}
	}
	for _, r := range u.newRecords {
		if _, ok := s.records[r.Reference]; ok {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateReference, r.Reference)
		}
	}
	for _, ref := range u.finalize {
		rec, ok := s.records[ref]
		if !ok {
			return apperrors.NewNotFoundError("transaction record " + ref)
		}
		if rec.Status != domain.StatusPending {
			return fmt.Errorf("%w: %s is %s", apperrors.ErrInvalidStatusChange, ref, rec.Status)
		}
	}

	now := s.now()
	for id, w := range u.wallets {
		w.Version++
		w.LastUpdatedAt = now
		s.wallets[id] = w
	}
	for id, b := range u.bills {
		b.Version++
		b.LastUpdatedAt = now
		s.bills[id] = b
	}
	for id, b := range u.budgets {
		b.Version++
		b.LastUpdatedAt = now
		s.budgets[id] = b
	}
	for _, b := range u.newBills {
		b.Version = 1
		s.bills[b.BillID] = b
	}
	for _, r := range u.newRecords {
		rec := r
		s.records[rec.Reference] = &rec
	}
	for _, ref := range u.finalize {
		rec := *s.records[ref]
		rec.Status = domain.StatusCompleted
		rec.ErrorKind = ""
		rec.FinalizedAt = &now
		s.records[ref] = &rec
	}
	return nil
}
