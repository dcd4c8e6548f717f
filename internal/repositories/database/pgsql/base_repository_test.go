package pgsql

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation}, apperrors.ErrDuplicate},
		{"check violation", &pgconn.PgError{Code: pgCheckViolation}, apperrors.ErrValidation},
		{"serialization failure", &pgconn.PgError{Code: pgSerializationFailure}, apperrors.ErrStoreUnavailable},
		{"deadlock", &pgconn.PgError{Code: pgDeadlockDetected}, apperrors.ErrStoreUnavailable},
		{"connection failure", &pgconn.PgError{Code: "08006"}, apperrors.ErrStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(ctx, tt.err, "op"), tt.want)
		})
	}
}

func TestClassify_UnknownErrorIsInternal(t *testing.T) {
	err := classify(context.Background(), &pgconn.PgError{Code: "42601"}, "op")

	var appErr *apperrors.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, 500, appErr.Code)
	assert.NotErrorIs(t, err, apperrors.ErrStoreUnavailable)
}

func TestClassify_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := classify(ctx, context.Canceled, "op")

	assert.ErrorIs(t, err, apperrors.ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, classify(context.Background(), nil, "op"))
}
