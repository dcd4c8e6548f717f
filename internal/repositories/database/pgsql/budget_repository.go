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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepository {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepository = (*PgxBudgetRepository)(nil)

func (r *PgxBudgetRepository) CreateBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	if m.Version == 0 {
		m.Version = 1
	}
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO budgets (`+budgetColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		m.BudgetID,
		m.OwnerID,
		m.Category,
		m.PeriodStart,
		m.PeriodEnd,
		m.LimitMinor,
		m.SpentMinor,
		m.CurrencyCode,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: budget %s", apperrors.ErrDuplicate, m.BudgetID)
		}
		return classify(ctx, err, "failed to save budget "+m.BudgetID)
	}
	return nil
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	b, err := scanBudget(r.Pool.QueryRow(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE budget_id = $1`, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("budget " + budgetID)
		}
		return nil, classify(ctx, err, "failed to find budget "+budgetID)
	}
	return &b, nil
}

func (r *PgxBudgetRepository) ListBudgetsByOwner(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+budgetColumns+`
		FROM budgets
		WHERE owner_id = $1
		ORDER BY period_start DESC, budget_id ASC`, ownerID)
	if err != nil {
		return nil, classify(ctx, err, "failed to list budgets for owner "+ownerID)
	}
	budgets, err := collect(rows, scanBudget)
	if err != nil {
		return nil, classify(ctx, err, "failed to scan budgets")
	}
	return budgets, nil
}

func (r *PgxBudgetRepository) FindMatchingBudgets(ctx context.Context, ownerID, category, currency string, at time.Time) ([]domain.Budget, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+budgetColumns+`
		FROM budgets
		WHERE owner_id = $1 AND category = $2 AND currency_code = $3
			AND period_start <= $4 AND period_end > $4
		ORDER BY budget_id ASC`,
		ownerID, category, currency, at)
	if err != nil {
		return nil, classify(ctx, err, "failed to find matching budgets")
	}
	budgets, err := collect(rows, scanBudget)
	if err != nil {
		return nil, classify(ctx, err, "failed to scan budgets")
	}
	return budgets, nil
}
