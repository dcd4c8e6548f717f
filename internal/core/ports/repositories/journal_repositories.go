package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
)

// JournalReader defines read operations for transaction records.
type JournalReader interface {
	// FindByReference returns the record keyed by reference or apperrors.ErrNotFound.
	FindByReference(ctx context.Context, reference string) (*domain.TransactionRecord, error)

	// ListByOwner returns the owner's records, most recent first. The returned token is
	// non-nil when more records follow.
	ListByOwner(ctx context.Context, ownerID string, params domain.ListParams) ([]domain.TransactionRecord, *string, error)

	// ListOutgoing returns completed outgoing records of the owner in category and currency
	// created within period.
	ListOutgoing(ctx context.Context, ownerID, category, currency string, period domain.Period) ([]domain.TransactionRecord, error)
}

// JournalWriter defines the write primitives of the journal.
type JournalWriter interface {
	// Append inserts a PENDING record. A reused reference yields apperrors.ErrDuplicateReference.
	Append(ctx context.Context, record domain.TransactionRecord) error

	// MarkFailed moves a PENDING record to FAILED. A record that is already terminal yields
	// apperrors.ErrInvalidStatusChange and is left untouched.
	MarkFailed(ctx context.Context, reference string, kind apperrors.Kind, at time.Time) error

	// FailStalePending marks every record still PENDING since before olderThan as FAILED
	// and returns how many were changed.
	FailStalePending(ctx context.Context, olderThan time.Time, at time.Time) (int, error)
}

// Journal combines all journal operations.
type Journal interface {
	JournalReader
	JournalWriter
}
