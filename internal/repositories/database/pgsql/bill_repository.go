package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/wallet_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBillRepository struct {
	BaseRepository
}

func newPgxBillRepository(pool *pgxpool.Pool) portsrepo.BillRepository {
	return &PgxBillRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BillRepository = (*PgxBillRepository)(nil)

func insertBill(ctx context.Context, db execer, bill domain.Bill) error {
	m := mapping.ToModelBill(bill)
	if m.Version == 0 {
		m.Version = 1
	}
	_, err := db.Exec(ctx, `
		INSERT INTO bills (`+billColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		m.BillID,
		m.OwnerID,
		m.Name,
		m.Category,
		m.AmountMinor,
		m.CurrencyCode,
		m.DueDate,
		m.Status,
		m.IsRecurring,
		m.Description,
		m.PaidAt,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: bill %s", apperrors.ErrDuplicate, m.BillID)
		}
		return classify(ctx, err, "failed to save bill "+m.BillID)
	}
	return nil
}

func (r *PgxBillRepository) CreateBill(ctx context.Context, bill domain.Bill) error {
	return insertBill(ctx, r.Pool, bill)
}

func (r *PgxBillRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	b, err := scanBill(r.Pool.QueryRow(ctx, `SELECT `+billColumns+` FROM bills WHERE bill_id = $1`, billID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("bill " + billID)
		}
		return nil, classify(ctx, err, "failed to find bill "+billID)
	}
	return &b, nil
}

func (r *PgxBillRepository) ListBillsByOwner(ctx context.Context, ownerID string, limit, offset int) ([]domain.Bill, bool, error) {
	if offset < 0 {
		offset = 0
	}
	rows, err := r.Pool.Query(ctx, `
		SELECT `+billColumns+`
		FROM bills
		WHERE owner_id = $1
		ORDER BY due_date ASC, bill_id ASC
		LIMIT $2 OFFSET $3`,
		ownerID, limit+1, offset)
	if err != nil {
		return nil, false, classify(ctx, err, "failed to list bills for owner "+ownerID)
	}
	bills, err := collect(rows, scanBill)
	if err != nil {
		return nil, false, classify(ctx, err, "failed to scan bills")
	}
	if len(bills) > limit {
		return bills[:limit], true, nil
	}
	return bills, false, nil
}
