package memory

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPolicy = retry.Policy{MaxRetries: 2, InitialInterval: time.Millisecond, MaxInterval: time.Millisecond}

func usd(minor int64) domain.Money { return domain.NewMoney(minor, "USD") }

func seedWallet(t *testing.T, s *Store, id, owner string, balance int64) {
	t.Helper()
	require.NoError(t, s.CreateWallet(context.Background(), domain.Wallet{WalletID: id, OwnerID: owner, Balance: usd(balance)}))
}

func TestUnitOfWork_CommitAppliesStagedState(t *testing.T) {
	ctx := context.Background()
	s := NewStore(WithRetryPolicy(testPolicy))
	seedWallet(t, s, "w1", "u1", 10000)
	require.NoError(t, s.Append(ctx, domain.TransactionRecord{TransactionID: "t1", OwnerID: "u1", Reference: "r1", CreatedAt: time.Now()}))

	uow, err := s.Begin(ctx)
	require.NoError(t, err)
	w, err := uow.WalletForUpdate(ctx, "w1")
	require.NoError(t, err)
	w.Balance = usd(6000)
	require.NoError(t, uow.StageWallet(*w))
	require.NoError(t, uow.StageFinalize("r1"))

	stored, _ := s.FindWalletByID(ctx, "w1")
	assert.Equal(t, usd(10000), stored.Balance, "staged state is invisible before commit")

	require.NoError(t, uow.Commit(ctx))

	stored, _ = s.FindWalletByID(ctx, "w1")
	assert.Equal(t, usd(6000), stored.Balance)
	assert.Equal(t, int64(2), stored.Version)
	rec, _ := s.FindByReference(ctx, "r1")
	assert.Equal(t, domain.StatusCompleted, rec.Status)
	assert.NotNil(t, rec.FinalizedAt)

	assert.NoError(t, uow.Abort(ctx), "abort after commit is a no-op")
}

func TestUnitOfWork_AbortDiscards(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedWallet(t, s, "w1", "u1", 10000)

	uow, _ := s.Begin(ctx)
	w, _ := uow.WalletForUpdate(ctx, "w1")
	w.Balance = usd(0)
	require.NoError(t, uow.StageWallet(*w))
	require.NoError(t, uow.Abort(ctx))

	stored, _ := s.FindWalletByID(ctx, "w1")
	assert.Equal(t, usd(10000), stored.Balance)

	// The lock was released.
	uow2, _ := s.Begin(ctx)
	_, err := uow2.WalletForUpdate(ctx, "w1")
	assert.NoError(t, err)
	_ = uow2.Abort(ctx)
}

func TestUnitOfWork_ExclusiveAccess(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedWallet(t, s, "w1", "u1", 100)

	first, _ := s.Begin(ctx)
	_, err := first.WalletForUpdate(ctx, "w1")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		second, _ := s.Begin(ctx)
		_, _ = second.WalletForUpdate(ctx, "w1")
		close(acquired)
		_ = second.Abort(ctx)
	}()

	select {
	case <-acquired:
		t.Fatal("second unit of work acquired a held wallet")
	case <-time.After(30 * time.Millisecond):
	}

	require.NoError(t, first.Abort(ctx))
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second unit of work never acquired the released wallet")
	}
}

func TestUnitOfWork_CancelWhileWaiting(t *testing.T) {
	s := NewStore()
	seedWallet(t, s, "w1", "u1", 100)

	holder, _ := s.Begin(context.Background())
	_, _ = holder.WalletForUpdate(context.Background(), "w1")
	defer holder.Abort(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	waiter, _ := s.Begin(context.Background())
	_, err := waiter.WalletForUpdate(ctx, "w1")

	assert.ErrorIs(t, err, apperrors.ErrCancelled)
	assert.Equal(t, apperrors.KindCancelled, apperrors.KindOf(err))
}

func TestUnitOfWork_RejectsOutOfOrderAcquisition(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedWallet(t, s, "w1", "u1", 100)
	seedWallet(t, s, "w2", "u2", 100)
	require.NoError(t, s.CreateBill(ctx, domain.Bill{BillID: "b1", OwnerID: "u1", Amount: usd(10), Status: domain.BillPending}))

	uow, _ := s.Begin(ctx)
	defer uow.Abort(ctx)
	_, err := uow.WalletForUpdate(ctx, "w2")
	require.NoError(t, err)
	_, err = uow.WalletForUpdate(ctx, "w1")
	assert.ErrorContains(t, err, "lock order violation")

	uow2, _ := s.Begin(ctx)
	defer uow2.Abort(ctx)
	_, err = uow2.BillForUpdate(ctx, "b1")
	require.NoError(t, err)
	_, err = uow2.WalletForUpdate(ctx, "w1")
	assert.ErrorContains(t, err, "lock order violation")
}

func TestUnitOfWork_StageRequiresAcquisition(t *testing.T) {
	s := NewStore()
	uow, _ := s.Begin(context.Background())
	defer uow.Abort(context.Background())

	assert.Error(t, uow.StageWallet(domain.Wallet{WalletID: "w1"}))
	assert.Error(t, uow.StageBill(domain.Bill{BillID: "b1"}))
	assert.Error(t, uow.StageBudget(domain.Budget{BudgetID: "g1"}))
}

func TestUnitOfWork_CommitRetriesTransientFaults(t *testing.T) {
	ctx := context.Background()
	s := NewStore(WithRetryPolicy(testPolicy))
	seedWallet(t, s, "w1", "u1", 100)
	s.InjectCommitFaults(2, nil)

	uow, _ := s.Begin(ctx)
	w, _ := uow.WalletForUpdate(ctx, "w1")
	w.Balance = usd(50)
	require.NoError(t, uow.StageWallet(*w))

	require.NoError(t, uow.Commit(ctx))
	stored, _ := s.FindWalletByID(ctx, "w1")
	assert.Equal(t, usd(50), stored.Balance)
}

func TestUnitOfWork_CommitExhaustion(t *testing.T) {
	ctx := context.Background()
	s := NewStore(WithRetryPolicy(testPolicy))
	seedWallet(t, s, "w1", "u1", 100)
	s.InjectCommitFaults(10, nil)

	uow, _ := s.Begin(ctx)
	w, _ := uow.WalletForUpdate(ctx, "w1")
	w.Balance = usd(50)
	require.NoError(t, uow.StageWallet(*w))

	err := uow.Commit(ctx)
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	stored, _ := s.FindWalletByID(ctx, "w1")
	assert.Equal(t, usd(100), stored.Balance)
}

func TestUnitOfWork_VersionConflict(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedWallet(t, s, "w1", "u1", 100)

	uow, _ := s.Begin(ctx)
	w, _ := uow.WalletForUpdate(ctx, "w1")
	w.Version = 99
	w.Balance = usd(1)
	require.NoError(t, uow.StageWallet(*w))

	assert.ErrorIs(t, uow.Commit(ctx), apperrors.ErrConflict)
}

func TestUnitOfWork_NegativeBalanceNeverCommits(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedWallet(t, s, "w1", "u1", 100)

	uow, _ := s.Begin(ctx)
	w, _ := uow.WalletForUpdate(ctx, "w1")
	w.Balance = usd(-1)
	require.NoError(t, uow.StageWallet(*w))

	assert.ErrorIs(t, uow.Commit(ctx), apperrors.ErrInsufficientFunds)
}

func TestJournal_AppendAndMarkFailed(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	rec := domain.TransactionRecord{TransactionID: "t1", OwnerID: "u1", Reference: "r1", Kind: domain.KindSend, Amount: usd(10), CreatedAt: time.Now()}

	require.NoError(t, s.Append(ctx, rec))
	assert.ErrorIs(t, s.Append(ctx, rec), apperrors.ErrDuplicateReference)

	now := time.Now()
	require.NoError(t, s.MarkFailed(ctx, "r1", apperrors.KindInsufficientFunds, now))
	got, err := s.FindByReference(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, got.Status)
	assert.Equal(t, apperrors.KindInsufficientFunds, got.ErrorKind)

	assert.ErrorIs(t, s.MarkFailed(ctx, "r1", apperrors.KindConflict, now), apperrors.ErrInvalidStatusChange)
	assert.ErrorIs(t, s.MarkFailed(ctx, "missing", apperrors.KindConflict, now), apperrors.ErrNotFound)

	_, err = s.FindByReference(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestJournal_FailStalePending(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now()
	require.NoError(t, s.Append(ctx, domain.TransactionRecord{TransactionID: "t1", Reference: "old", CreatedAt: now.Add(-time.Hour)}))
	require.NoError(t, s.Append(ctx, domain.TransactionRecord{TransactionID: "t2", Reference: "new", CreatedAt: now}))

	n, err := s.FailStalePending(ctx, now.Add(-time.Minute), now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	old, _ := s.FindByReference(ctx, "old")
	assert.Equal(t, domain.StatusFailed, old.Status)
	assert.Equal(t, apperrors.KindStoreUnavailable, old.ErrorKind)
	fresh, _ := s.FindByReference(ctx, "new")
	assert.Equal(t, domain.StatusPending, fresh.Status)
}

func TestJournal_ListByOwnerPagination(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, ref := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, s.Append(ctx, domain.TransactionRecord{
			TransactionID: "t" + ref, OwnerID: "u1", Reference: ref, CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, s.Append(ctx, domain.TransactionRecord{TransactionID: "tx", OwnerID: "u2", Reference: "x", CreatedAt: base}))

	page1, token, err := s.ListByOwner(ctx, "u1", domain.ListParams{Limit: 2})
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, []string{"e", "d"}, refs(page1))

	page2, token, err := s.ListByOwner(ctx, "u1", domain.ListParams{Limit: 2, NextToken: *token})
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, []string{"c", "b"}, refs(page2))

	page3, token, err := s.ListByOwner(ctx, "u1", domain.ListParams{Limit: 2, NextToken: *token})
	require.NoError(t, err)
	assert.Nil(t, token)
	assert.Equal(t, []string{"a"}, refs(page3))

	byPage, _, err := s.ListByOwner(ctx, "u1", domain.ListParams{Limit: 2, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, refs(byPage))

	_, _, err = s.ListByOwner(ctx, "u1", domain.ListParams{Limit: 2, NextToken: "garbage!"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestBills_ListOrderedByDueDate(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"b3", "b1", "b2"} {
		require.NoError(t, s.CreateBill(ctx, domain.Bill{BillID: id, OwnerID: "u1", DueDate: base.AddDate(0, 0, 3-i)}))
	}

	bills, more, err := s.ListBillsByOwner(ctx, "u1", 2, 0)
	require.NoError(t, err)
	assert.True(t, more)
	assert.Equal(t, "b2", bills[0].BillID)
	assert.Equal(t, "b1", bills[1].BillID)

	bills, more, err = s.ListBillsByOwner(ctx, "u1", 2, 2)
	require.NoError(t, err)
	assert.False(t, more)
	assert.Len(t, bills, 1)
}

func TestWallets_OnePerOwner(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedWallet(t, s, "w1", "u1", 0)

	err := s.CreateWallet(ctx, domain.Wallet{WalletID: "w2", OwnerID: "u1", Balance: usd(0)})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	w, err := s.FindWalletByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "w1", w.WalletID)
}

func refs(records []domain.TransactionRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Reference
	}
	return out
}
