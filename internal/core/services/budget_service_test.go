package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/wallet_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/core/services"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
	"github.com/SscSPs/wallet_ledger_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// hookedBudgets runs after once, right after the first budget lookup returns.
type hookedBudgets struct {
	portsrepo.BudgetRepository
	once  sync.Once
	after func()
}

func (h *hookedBudgets) FindMatchingBudgets(ctx context.Context, ownerID, category, currency string, at time.Time) ([]domain.Budget, error) {
	budgets, err := h.BudgetRepository.FindMatchingBudgets(ctx, ownerID, category, currency, at)
	h.once.Do(h.after)
	return budgets, err
}

type BudgetServiceTestSuite struct {
	suite.Suite
	ctx        context.Context
	store      *memory.Store
	aggregator *services.BudgetAggregator
	engine     portssvc.OperationSvc
	budgets    portssvc.BudgetSvcFacade
	now        time.Time
}

func (s *BudgetServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Now().UTC()
	s.store = memory.NewStore(memory.WithRetryPolicy(fastPolicy))
	repos := s.store.Provider()
	s.aggregator = services.NewBudgetAggregator(repos.LedgerStore, repos.Journal)
	s.engine = services.NewOperationEngine(repos,
		services.WithBudgetAggregator(s.aggregator),
		services.WithFinalizeRetryPolicy(fastPolicy),
	)
	s.budgets = services.NewBudgetService(repos, s.aggregator)
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}

func (s *BudgetServiceTestSuite) foodBudget() dto.CreateBudgetRequest {
	return dto.CreateBudgetRequest{
		Category:    "FOOD",
		Limit:       decimal.NewFromInt(500),
		Currency:    "USD",
		PeriodStart: s.now.Add(-24 * time.Hour),
		PeriodEnd:   s.now.Add(24 * time.Hour),
	}
}

func (s *BudgetServiceTestSuite) withdraw(ref, category string, amount int64) error {
	_, err := s.engine.Execute(s.ctx, "alice", domain.OperationRequest{
		Reference:      ref,
		Kind:           domain.OperationWithdrawal,
		SourceWalletID: "wa",
		Amount:         usd(amount),
		Category:       category,
	})
	return err
}

func (s *BudgetServiceTestSuite) TestCreateBudget_SeedsSpentFromJournal() {
	s.Require().NoError(s.store.CreateWallet(s.ctx, domain.Wallet{WalletID: "wa", OwnerID: "alice", Balance: usd(10000)}))
	s.Require().NoError(s.withdraw("food-1", "FOOD", 1250))
	s.Require().NoError(s.withdraw("food-2", "FOOD", 830))
	s.Require().NoError(s.withdraw("fun-1", "FUN", 500))
	s.Require().ErrorIs(s.withdraw("food-3", "FOOD", 90000), apperrors.ErrInsufficientFunds)

	budget, err := s.budgets.CreateBudget(s.ctx, "alice", s.foodBudget())

	s.Require().NoError(err)
	s.Equal(usd(2080), budget.Spent)
	s.Equal(usd(50000), budget.Limit)
	stored, err := s.store.FindBudgetByID(s.ctx, budget.BudgetID)
	s.Require().NoError(err)
	s.Equal(usd(2080), stored.Spent)
	s.Equal(stored.Version, budget.Version)

	// Later operations keep adding to it.
	s.Require().NoError(s.withdraw("food-4", "FOOD", 170))
	stored, err = s.store.FindBudgetByID(s.ctx, budget.BudgetID)
	s.Require().NoError(err)
	s.Equal(usd(2250), stored.Spent)
}

func (s *BudgetServiceTestSuite) TestCreateBudget_WhileOperationInFlight() {
	s.Require().NoError(s.store.CreateWallet(s.ctx, domain.Wallet{WalletID: "wa", OwnerID: "alice", Balance: usd(10000)}))

	var (
		created   *domain.Budget
		createErr error
	)
	done := make(chan struct{})
	repos := s.store.Provider()
	repos.BudgetRepo = &hookedBudgets{BudgetRepository: s.store, after: func() {
		go func() {
			defer close(done)
			created, createErr = s.budgets.CreateBudget(s.ctx, "alice", s.foodBudget())
		}()
		// Let the budget be created while the withdrawal is between lookup and commit.
		time.Sleep(20 * time.Millisecond)
	}}
	engine := services.NewOperationEngine(repos,
		services.WithBudgetAggregator(s.aggregator),
		services.WithFinalizeRetryPolicy(fastPolicy),
	)

	_, err := engine.Execute(s.ctx, "alice", domain.OperationRequest{
		Reference: "food-1", Kind: domain.OperationWithdrawal, SourceWalletID: "wa", Amount: usd(4000), Category: "FOOD",
	})
	s.Require().NoError(err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.FailNow("budget creation did not finish")
	}
	s.Require().NoError(createErr)

	stored, err := s.store.FindBudgetByID(s.ctx, created.BudgetID)
	s.Require().NoError(err)
	replayed, err := s.aggregator.Replay(s.ctx, *stored)
	s.Require().NoError(err)
	s.Equal(usd(4000), stored.Spent)
	s.Equal(stored.Spent, replayed)
	s.Equal(usd(4000), created.Spent)
}

func (s *BudgetServiceTestSuite) TestCreateBudget_OwnerWithoutWallet() {
	req := s.foodBudget()
	req.Currency = ""

	budget, err := s.budgets.CreateBudget(s.ctx, "carol", req)

	s.Require().NoError(err)
	s.Equal(domain.Zero(domain.DefaultCurrency), budget.Spent)
	s.Equal(domain.DefaultCurrency, budget.Limit.Currency)
	s.Equal("carol", budget.CreatedBy)
}

func (s *BudgetServiceTestSuite) TestCreateBudget_RejectsInvertedPeriod() {
	req := s.foodBudget()
	req.PeriodStart, req.PeriodEnd = req.PeriodEnd, req.PeriodStart

	_, err := s.budgets.CreateBudget(s.ctx, "alice", req)

	s.ErrorIs(err, apperrors.ErrValidation)
	list, err := s.budgets.ListBudgets(s.ctx, "alice")
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *BudgetServiceTestSuite) TestRecomputeBudget_CorrectsDrift() {
	s.Require().NoError(s.store.CreateWallet(s.ctx, domain.Wallet{WalletID: "wa", OwnerID: "alice", Balance: usd(10000)}))
	s.Require().NoError(s.withdraw("food-1", "FOOD", 1250))
	s.Require().NoError(s.store.CreateBudget(s.ctx, domain.Budget{
		BudgetID: "budget-1",
		OwnerID:  "alice",
		Category: "FOOD",
		Period:   domain.Period{Start: s.now.Add(-time.Hour), End: s.now.Add(time.Hour)},
		Limit:    usd(50000),
		Spent:    usd(9999),
	}))

	budget, err := s.budgets.RecomputeBudget(s.ctx, "alice", "budget-1")

	s.Require().NoError(err)
	s.Equal(usd(1250), budget.Spent)
	stored, err := s.store.FindBudgetByID(s.ctx, "budget-1")
	s.Require().NoError(err)
	s.Equal(usd(1250), stored.Spent)
	s.Equal(int64(2), stored.Version)
}

func (s *BudgetServiceTestSuite) TestRecomputeBudget_ForeignBudgetIsNotFound() {
	s.Require().NoError(s.store.CreateBudget(s.ctx, domain.Budget{
		BudgetID: "budget-1",
		OwnerID:  "bob",
		Category: "FOOD",
		Period:   domain.Period{Start: s.now.Add(-time.Hour), End: s.now.Add(time.Hour)},
		Limit:    usd(50000),
		Spent:    usd(0),
	}))

	_, err := s.budgets.RecomputeBudget(s.ctx, "alice", "budget-1")

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *BudgetServiceTestSuite) TestListBudgets_OnlyOwn() {
	_, err := s.budgets.CreateBudget(s.ctx, "alice", s.foodBudget())
	s.Require().NoError(err)
	_, err = s.budgets.CreateBudget(s.ctx, "bob", s.foodBudget())
	s.Require().NoError(err)

	list, err := s.budgets.ListBudgets(s.ctx, "alice")

	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal("alice", list[0].OwnerID)
}
