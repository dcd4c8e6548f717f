package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
	"github.com/SscSPs/wallet_ledger_app/internal/handlers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) ListBudgets(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetService) CreateBudget(ctx context.Context, ownerID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetService) RecomputeBudget(ctx context.Context, ownerID, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, ownerID, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

func utilitiesBudget(spent int64) *domain.Budget {
	return &domain.Budget{
		BudgetID: "budget-1",
		OwnerID:  "owner-1",
		Category: "utilities",
		Period: domain.Period{
			Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		},
		Limit: domain.Money{MinorUnits: 50000, Currency: "USD"},
		Spent: domain.Money{MinorUnits: spent, Currency: "USD"},
	}
}

func TestBudgetHandler_CreateBudget(t *testing.T) {
	r, v1 := newAuthedRouter()
	svc := new(MockBudgetService)
	handlers.RegisterBudgetRoutes(v1, svc)

	svc.On("CreateBudget", mock.Anything, "owner-1", mock.MatchedBy(func(req dto.CreateBudgetRequest) bool {
		return req.Category == "utilities" && req.Limit.Equal(decimal.NewFromInt(500))
	})).Return(utilitiesBudget(20000), nil).Once()

	body := `{"category":"utilities","limit":"500","currency":"USD","periodStart":"2026-03-01T00:00:00Z","periodEnd":"2026-04-01T00:00:00Z"}`
	w := doRequest(t, r, http.MethodPost, "/api/v1/budgets", body, "owner-1")

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.BudgetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(20000), resp.Spent.MinorUnits)
	assert.Equal(t, int64(30000), resp.Remaining.MinorUnits)
	svc.AssertExpectations(t)
}

func TestBudgetHandler_CreateBudgetRejectsInvertedPeriod(t *testing.T) {
	r, v1 := newAuthedRouter()
	svc := new(MockBudgetService)
	handlers.RegisterBudgetRoutes(v1, svc)

	body := `{"category":"utilities","limit":"500","periodStart":"2026-04-01T00:00:00Z","periodEnd":"2026-03-01T00:00:00Z"}`
	w := doRequest(t, r, http.MethodPost, "/api/v1/budgets", body, "owner-1")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateBudget", mock.Anything, mock.Anything, mock.Anything)
}

func TestBudgetHandler_CreateBudgetRejectsZeroLimit(t *testing.T) {
	r, v1 := newAuthedRouter()
	svc := new(MockBudgetService)
	handlers.RegisterBudgetRoutes(v1, svc)

	body := `{"category":"utilities","limit":"0","periodStart":"2026-03-01T00:00:00Z","periodEnd":"2026-04-01T00:00:00Z"}`
	w := doRequest(t, r, http.MethodPost, "/api/v1/budgets", body, "owner-1")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBudgetHandler_Recompute(t *testing.T) {
	r, v1 := newAuthedRouter()
	svc := new(MockBudgetService)
	handlers.RegisterBudgetRoutes(v1, svc)

	svc.On("RecomputeBudget", mock.Anything, "owner-1", "budget-1").Return(utilitiesBudget(28500), nil).Once()

	w := doRequest(t, r, http.MethodPost, "/api/v1/budgets/budget-1/recompute", "", "owner-1")

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.BudgetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(28500), resp.Spent.MinorUnits)
}

func TestBudgetHandler_RecomputeStoreUnavailable(t *testing.T) {
	r, v1 := newAuthedRouter()
	svc := new(MockBudgetService)
	handlers.RegisterBudgetRoutes(v1, svc)

	svc.On("RecomputeBudget", mock.Anything, "owner-1", "budget-1").Return(nil, apperrors.ErrStoreUnavailable).Once()

	w := doRequest(t, r, http.MethodPost, "/api/v1/budgets/budget-1/recompute", "", "owner-1")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestBudgetHandler_List(t *testing.T) {
	r, v1 := newAuthedRouter()
	svc := new(MockBudgetService)
	handlers.RegisterBudgetRoutes(v1, svc)

	svc.On("ListBudgets", mock.Anything, "owner-1").Return([]domain.Budget{*utilitiesBudget(0)}, nil).Once()

	w := doRequest(t, r, http.MethodGet, "/api/v1/budgets", "", "owner-1")

	require.Equal(t, http.StatusOK, w.Code)
	var resp []dto.BudgetResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
}
