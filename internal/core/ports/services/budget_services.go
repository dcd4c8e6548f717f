package services

import (
	"context"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
)

// BudgetReaderSvc defines read operations for budgets.
type BudgetReaderSvc interface {
	ListBudgets(ctx context.Context, ownerID string) ([]domain.Budget, error)
}

// BudgetWriterSvc defines budget creation and maintenance.
type BudgetWriterSvc interface {
	CreateBudget(ctx context.Context, ownerID string, req dto.CreateBudgetRequest) (*domain.Budget, error)
	// RecomputeBudget replaces the budget's spent amount with the journal replay.
	RecomputeBudget(ctx context.Context, ownerID, budgetID string) (*domain.Budget, error)
}

// BudgetSvcFacade combines all budget service interfaces.
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
