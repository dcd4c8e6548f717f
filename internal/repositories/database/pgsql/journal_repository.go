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
	"github.com/SscSPs/wallet_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for transaction records.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.Journal {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxJournalRepository implements portsrepo.Journal
var _ portsrepo.Journal = (*PgxJournalRepository)(nil)

func insertRecord(ctx context.Context, db execer, record domain.TransactionRecord) error {
	m := mapping.ToModelTransactionRecord(record)
	_, err := db.Exec(ctx, `
		INSERT INTO transaction_records (`+recordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		m.TransactionID,
		m.Reference,
		m.WalletID,
		m.OwnerID,
		m.Kind,
		m.AmountMinor,
		m.CurrencyCode,
		m.CounterpartyID,
		m.Status,
		m.Category,
		m.Description,
		m.BillID,
		m.ErrorKind,
		m.CreatedAt,
		m.FinalizedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateReference, record.Reference)
		}
		return classify(ctx, err, "failed to insert transaction record "+record.Reference)
	}
	return nil
}

// Append inserts a PENDING record; the unique reference column rejects duplicates.
func (r *PgxJournalRepository) Append(ctx context.Context, record domain.TransactionRecord) error {
	return insertRecord(ctx, r.Pool, record)
}

func (r *PgxJournalRepository) FindByReference(ctx context.Context, reference string) (*domain.TransactionRecord, error) {
	rec, err := scanRecord(r.Pool.QueryRow(ctx, `SELECT `+recordColumns+` FROM transaction_records WHERE reference = $1`, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction record " + reference)
		}
		return nil, classify(ctx, err, "failed to find transaction record "+reference)
	}
	return &rec, nil
}

// MarkFailed finalizes a PENDING record as FAILED. A record that is already terminal
// yields ErrInvalidStatusChange.
func (r *PgxJournalRepository) MarkFailed(ctx context.Context, reference string, kind apperrors.Kind, at time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE transaction_records
		SET status = $1, error_kind = $2, finalized_at = $3
		WHERE reference = $4 AND status = $5`,
		string(domain.StatusFailed), string(kind), at, reference, string(domain.StatusPending))
	if err != nil {
		return classify(ctx, err, "failed to mark record "+reference+" failed")
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if _, err := r.FindByReference(ctx, reference); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s is no longer pending", apperrors.ErrInvalidStatusChange, reference)
}

func (r *PgxJournalRepository) FailStalePending(ctx context.Context, olderThan time.Time, at time.Time) (int, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE transaction_records
		SET status = $1, error_kind = $2, finalized_at = $3
		WHERE status = $4 AND created_at < $5`,
		string(domain.StatusFailed), string(apperrors.KindStoreUnavailable), at, string(domain.StatusPending), olderThan)
	if err != nil {
		return 0, classify(ctx, err, "failed to sweep stale pending records")
	}
	return int(tag.RowsAffected()), nil
}

// ListByOwner returns the owner's records newest first. A next token continues after the
// last record of the previous page; otherwise Page selects an offset page.
func (r *PgxJournalRepository) ListByOwner(ctx context.Context, ownerID string, params domain.ListParams) ([]domain.TransactionRecord, *string, error) {
	limit := params.Limit
	var (
		rows pgx.Rows
		err  error
	)
	if params.NextToken != "" {
		cursorAt, cursorID, decodeErr := pagination.DecodeToken(params.NextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, decodeErr)
		}
		rows, err = r.Pool.Query(ctx, `
			SELECT `+recordColumns+`
			FROM transaction_records
			WHERE owner_id = $1 AND (created_at, transaction_id) < ($2, $3)
			ORDER BY created_at DESC, transaction_id DESC
			LIMIT $4`,
			ownerID, cursorAt, cursorID, limit+1)
	} else {
		offset := 0
		if params.Page > 1 {
			offset = (params.Page - 1) * limit
		}
		rows, err = r.Pool.Query(ctx, `
			SELECT `+recordColumns+`
			FROM transaction_records
			WHERE owner_id = $1
			ORDER BY created_at DESC, transaction_id DESC
			LIMIT $2 OFFSET $3`,
			ownerID, limit+1, offset)
	}
	if err != nil {
		return nil, nil, classify(ctx, err, "failed to list transaction records")
	}

	records, err := collect(rows, scanRecord)
	if err != nil {
		return nil, nil, classify(ctx, err, "failed to scan transaction records")
	}
	if len(records) <= limit {
		return records, nil, nil
	}
	records = records[:limit]
	last := records[len(records)-1]
	token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
	return records, &token, nil
}

func (r *PgxJournalRepository) ListOutgoing(ctx context.Context, ownerID, category, currency string, period domain.Period) ([]domain.TransactionRecord, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+recordColumns+`
		FROM transaction_records
		WHERE owner_id = $1 AND category = $2 AND currency_code = $3 AND status = $4
			AND kind = ANY($5) AND created_at >= $6 AND created_at < $7
		ORDER BY created_at DESC, transaction_id DESC`,
		ownerID, category, currency, string(domain.StatusCompleted),
		[]string{string(domain.KindWithdrawal), string(domain.KindSend), string(domain.KindBillPayment)},
		period.Start, period.End)
	if err != nil {
		return nil, classify(ctx, err, "failed to list outgoing records")
	}
	records, err := collect(rows, scanRecord)
	if err != nil {
		return nil, classify(ctx, err, "failed to scan outgoing records")
	}
	return records, nil
}
