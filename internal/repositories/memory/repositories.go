package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
)

func (s *Store) CreateWallet(ctx context.Context, wallet domain.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.wallets[wallet.WalletID]; ok {
		return fmt.Errorf("%w: wallet %s", apperrors.ErrDuplicate, wallet.WalletID)
	}
	for _, w := range s.wallets {
		if w.OwnerID == wallet.OwnerID {
			return fmt.Errorf("%w: owner %s already has a wallet", apperrors.ErrDuplicate, wallet.OwnerID)
		}
	}
	if wallet.Version == 0 {
		wallet.Version = 1
	}
	s.wallets[wallet.WalletID] = wallet
	return nil
}

func (s *Store) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[walletID]
	if !ok {
		return nil, apperrors.NewNotFoundError("wallet " + walletID)
	}
	return &w, nil
}

func (s *Store) FindWalletByOwner(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.wallets {
		if w.OwnerID == ownerID {
			out := w
			return &out, nil
		}
	}
	return nil, apperrors.NewNotFoundError("wallet for owner " + ownerID)
}

func (s *Store) CreateBill(ctx context.Context, bill domain.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bills[bill.BillID]; ok {
		return fmt.Errorf("%w: bill %s", apperrors.ErrDuplicate, bill.BillID)
	}
	if bill.Version == 0 {
		bill.Version = 1
	}
	s.bills[bill.BillID] = bill
	return nil
}

func (s *Store) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bills[billID]
	if !ok {
		return nil, apperrors.NewNotFoundError("bill " + billID)
	}
	return &b, nil
}

func (s *Store) ListBillsByOwner(ctx context.Context, ownerID string, limit, offset int) ([]domain.Bill, bool, error) {
	s.mu.RLock()
	bills := make([]domain.Bill, 0)
	for _, b := range s.bills {
		if b.OwnerID == ownerID {
			bills = append(bills, b)
		}
	}
	s.mu.RUnlock()

	sort.Slice(bills, func(i, j int) bool {
		if bills[i].DueDate.Equal(bills[j].DueDate) {
			return bills[i].BillID < bills[j].BillID
		}
		return bills[i].DueDate.Before(bills[j].DueDate)
	})
	if offset >= len(bills) {
		return []domain.Bill{}, false, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(bills) {
		end = len(bills)
	}
	return bills[offset:end], end < len(bills), nil
}

func (s *Store) CreateBudget(ctx context.Context, budget domain.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.budgets[budget.BudgetID]; ok {
		return fmt.Errorf("%w: budget %s", apperrors.ErrDuplicate, budget.BudgetID)
	}
	if budget.Version == 0 {
		budget.Version = 1
	}
	s.budgets[budget.BudgetID] = budget
	return nil
}

func (s *Store) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.budgets[budgetID]
	if !ok {
		return nil, apperrors.NewNotFoundError("budget " + budgetID)
	}
	return &b, nil
}

func (s *Store) ListBudgetsByOwner(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Budget, 0)
	for _, b := range s.budgets {
		if b.OwnerID == ownerID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Period.Start.Equal(out[j].Period.Start) {
			return out[i].BudgetID < out[j].BudgetID
		}
		return out[i].Period.Start.After(out[j].Period.Start)
	})
	return out, nil
}

func (s *Store) FindMatchingBudgets(ctx context.Context, ownerID, category, currency string, at time.Time) ([]domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Budget, 0)
	for _, b := range s.budgets {
		if b.OwnerID == ownerID && b.Category == category && b.Limit.Currency == currency && b.Period.Contains(at) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BudgetID < out[j].BudgetID })
	return out, nil
}
