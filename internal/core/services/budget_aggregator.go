package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
)

// BudgetAggregator keeps budget spent amounts in step with the journal.
// Apply runs inside an operation's unit of work; Replay and Recompute rebuild
// spent from the journal alone.
type BudgetAggregator struct {
	BaseService
	store   portsrepo.LedgerStore
	journal portsrepo.JournalReader
}

// NewBudgetAggregator creates a BudgetAggregator.
func NewBudgetAggregator(store portsrepo.LedgerStore, journal portsrepo.JournalReader) *BudgetAggregator {
	return &BudgetAggregator{
		BaseService: newBaseService(),
		store:       store,
		journal:     journal,
	}
}

// Apply adds the record's amount to every budget it counts towards and returns the
// budgets that changed. Budgets in another currency are skipped.
func (a *BudgetAggregator) Apply(record domain.TransactionRecord, budgets []domain.Budget) ([]domain.Budget, error) {
	changed := make([]domain.Budget, 0, len(budgets))
	for _, b := range budgets {
		if !record.CountsTowards(b) {
			continue
		}
		spent, err := b.Spent.Add(record.Amount)
		if err != nil {
			return nil, fmt.Errorf("updating budget %s: %w", b.BudgetID, err)
		}
		b.Spent = spent
		changed = append(changed, b)
	}
	return changed, nil
}

// Replay sums the completed journal records that count towards budget.
func (a *BudgetAggregator) Replay(ctx context.Context, budget domain.Budget) (domain.Money, error) {
	records, err := a.journal.ListOutgoing(ctx, budget.OwnerID, budget.Category, budget.Limit.Currency, budget.Period)
	if err != nil {
		return domain.Money{}, fmt.Errorf("listing outgoing records for budget %s: %w", budget.BudgetID, err)
	}
	total := domain.Zero(budget.Limit.Currency)
	for _, r := range records {
		if r.Status != domain.StatusCompleted || !r.CountsTowards(budget) {
			continue
		}
		if total, err = total.Add(r.Amount); err != nil {
			return domain.Money{}, err
		}
	}
	return total, nil
}

// Recompute replaces the stored spent amount with the journal replay. The budget is held
// exclusively while replaying, so no operation can change it in between.
func (a *BudgetAggregator) Recompute(ctx context.Context, ownerID, budgetID string) (*domain.Budget, error) {
	uow, err := a.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = uow.Abort(ctx) }()
	return a.recomputeIn(ctx, uow, ownerID, budgetID)
}

// recomputeIn acquires budgetID on uow, replays it and commits uow if spent changed.
// Entities acquired on uow beforehand stay held until then.
func (a *BudgetAggregator) recomputeIn(ctx context.Context, uow portsrepo.UnitOfWork, ownerID, budgetID string) (*domain.Budget, error) {
	budget, err := uow.BudgetForUpdate(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.OwnerID != ownerID {
		return nil, apperrors.NewNotFoundError("budget " + budgetID)
	}

	spent, err := a.Replay(ctx, *budget)
	if err != nil {
		return nil, err
	}
	if spent == budget.Spent {
		return budget, nil
	}

	a.LogInfo(ctx, "Budget spent drifted from journal, correcting",
		slog.String("budget_id", budgetID),
		slog.Int64("cached_minor_units", budget.Spent.MinorUnits),
		slog.Int64("replayed_minor_units", spent.MinorUnits))

	updated := *budget
	updated.Spent = spent
	updated.Touch(ownerID, a.Now())
	if err := uow.StageBudget(updated); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	updated.Version++
	return &updated, nil
}
