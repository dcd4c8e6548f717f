package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
)

type budgetService struct {
	BaseService
	store      portsrepo.LedgerStore
	walletRepo portsrepo.WalletRepository
	budgetRepo portsrepo.BudgetRepository
	aggregator *BudgetAggregator
}

// NewBudgetService creates a new budget service.
func NewBudgetService(repos portsrepo.RepositoryProvider, aggregator *BudgetAggregator) portssvc.BudgetSvcFacade {
	return &budgetService{
		BaseService: newBaseService(),
		store:       repos.LedgerStore,
		walletRepo:  repos.WalletRepo,
		budgetRepo:  repos.BudgetRepo,
		aggregator:  aggregator,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// CreateBudget stores the budget and seeds its spent amount from the journal, so
// operations committed before the budget existed are counted too.
func (s *budgetService) CreateBudget(ctx context.Context, ownerID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	currency := req.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	limit, err := domain.MoneyFromDecimal(req.Limit, currency)
	if err != nil {
		return nil, err
	}
	period := domain.Period{Start: req.PeriodStart.UTC(), End: req.PeriodEnd.UTC()}
	if !period.End.After(period.Start) {
		return nil, fmt.Errorf("%w: period end must be after period start", apperrors.ErrValidation)
	}

	now := s.Now()
	budget := domain.Budget{
		BudgetID: s.NewID(),
		OwnerID:  ownerID,
		Category: req.Category,
		Period:   period,
		Limit:    limit,
		Spent:    domain.Zero(currency),
		Version:  1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	uow, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = uow.Abort(context.WithoutCancel(ctx)) }()
	// Seeding waits for any operation in flight on the owner's wallet.
	if err := s.holdOwnerWallet(ctx, uow, ownerID); err != nil {
		return nil, err
	}

	if err := s.budgetRepo.CreateBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to create budget", slog.String("category", req.Category))
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	seeded, err := s.aggregator.recomputeIn(ctx, uow, ownerID, budget.BudgetID)
	if err != nil {
		// The budget exists with spent zero; a later recompute corrects it.
		s.LogError(ctx, err, "Failed to seed budget spent from journal", slog.String("budget_id", budget.BudgetID))
		return &budget, nil
	}
	return seeded, nil
}

// holdOwnerWallet acquires the owner's wallet on uow. An owner without a wallet has
// nothing in flight.
func (s *budgetService) holdOwnerWallet(ctx context.Context, uow portsrepo.UnitOfWork, ownerID string) error {
	wallet, err := s.walletRepo.FindWalletByOwner(ctx, ownerID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = uow.WalletForUpdate(ctx, wallet.WalletID)
	return err
}

func (s *budgetService) ListBudgets(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgetsByOwner(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets")
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

func (s *budgetService) RecomputeBudget(ctx context.Context, ownerID, budgetID string) (*domain.Budget, error) {
	return s.aggregator.Recompute(ctx, ownerID, budgetID)
}
