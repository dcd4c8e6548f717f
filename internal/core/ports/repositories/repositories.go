package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
)

// WalletRepository covers wallet onboarding and reads. Balance changes go through a UnitOfWork.
type WalletRepository interface {
	// CreateWallet inserts a wallet; an owner that already has one yields apperrors.ErrDuplicate.
	CreateWallet(ctx context.Context, wallet domain.Wallet) error
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)
	FindWalletByOwner(ctx context.Context, ownerID string) (*domain.Wallet, error)
}

// BillRepository covers bill creation and reads. Payment goes through a UnitOfWork.
type BillRepository interface {
	CreateBill(ctx context.Context, bill domain.Bill) error
	FindBillByID(ctx context.Context, billID string) (*domain.Bill, error)
	// ListBillsByOwner returns bills ordered by due date ascending and whether more follow.
	ListBillsByOwner(ctx context.Context, ownerID string, limit, offset int) ([]domain.Bill, bool, error)
}

// BudgetRepository covers budget creation and reads. Spent changes go through a UnitOfWork.
type BudgetRepository interface {
	CreateBudget(ctx context.Context, budget domain.Budget) error
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgetsByOwner(ctx context.Context, ownerID string) ([]domain.Budget, error)
	// FindMatchingBudgets returns budgets of the owner in category and currency whose
	// period contains at.
	FindMatchingBudgets(ctx context.Context, ownerID, category, currency string, at time.Time) ([]domain.Budget, error)
}

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	LedgerStore LedgerStore
	Journal     Journal
	WalletRepo  WalletRepository
	BillRepo    BillRepository
	BudgetRepo  BudgetRepository
}
