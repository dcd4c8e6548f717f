package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/core/services"
	"github.com/SscSPs/wallet_ledger_app/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendPending(t *testing.T, store *memory.Store, ref, owner string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, store.Append(context.Background(), domain.TransactionRecord{
		TransactionID: "tx-" + ref,
		WalletID:      "w-" + owner,
		OwnerID:       owner,
		Kind:          domain.KindWithdrawal,
		Amount:        usd(100),
		Reference:     ref,
		CreatedAt:     createdAt,
	}))
}

func TestTransactionService_SweepStalePending(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := services.NewTransactionService(store)
	now := time.Now().UTC()

	appendPending(t, store, "stale", "u1", now.Add(-10*time.Minute))
	appendPending(t, store, "fresh", "u1", now)
	appendPending(t, store, "done", "u1", now.Add(-10*time.Minute))
	require.NoError(t, store.MarkFailed(ctx, "done", apperrors.KindInsufficientFunds, now))

	n, err := svc.SweepStalePending(ctx, 5*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stale, err := store.FindByReference(ctx, "stale")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFailed, stale.Status)
	assert.Equal(t, apperrors.KindStoreUnavailable, stale.ErrorKind)
	assert.NotNil(t, stale.FinalizedAt)

	fresh, err := store.FindByReference(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, fresh.Status)

	done, err := store.FindByReference(ctx, "done")
	require.NoError(t, err)
	assert.Equal(t, apperrors.KindInsufficientFunds, done.ErrorKind, "terminal records are left alone")

	n, err = svc.SweepStalePending(ctx, 5*time.Minute)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestTransactionService_SweptOperationCannotCommit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(memory.WithRetryPolicy(fastPolicy))
	svc := services.NewTransactionService(store)
	require.NoError(t, store.CreateWallet(ctx, domain.Wallet{WalletID: "w1", OwnerID: "u1", Balance: usd(1000)}))
	appendPending(t, store, "slow", "u1", time.Now().UTC().Add(-time.Hour))

	uow, err := store.Begin(ctx)
	require.NoError(t, err)
	w, err := uow.WalletForUpdate(ctx, "w1")
	require.NoError(t, err)
	w.Balance = usd(900)
	require.NoError(t, uow.StageWallet(*w))
	require.NoError(t, uow.StageFinalize("slow"))

	n, err := svc.SweepStalePending(ctx, time.Minute)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	assert.ErrorIs(t, uow.Commit(ctx), apperrors.ErrInvalidStatusChange)
	stored, err := store.FindWalletByID(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, usd(1000), stored.Balance)
}

func TestTransactionService_GetByReferenceHidesOtherOwners(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := services.NewTransactionService(store)
	appendPending(t, store, "ref-1", "u1", time.Now().UTC())

	rec, err := svc.GetTransactionByReference(ctx, "u1", "ref-1")
	require.NoError(t, err)
	assert.Equal(t, "tx-ref-1", rec.TransactionID)

	_, err = svc.GetTransactionByReference(ctx, "u2", "ref-1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
