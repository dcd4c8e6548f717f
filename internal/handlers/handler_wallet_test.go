package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/wallet_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/wallet_ledger_app/internal/dto"
	"github.com/SscSPs/wallet_ledger_app/internal/handlers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) GetWalletByOwner(ctx context.Context, ownerID string) (*domain.Wallet, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletService) CreateWallet(ctx context.Context, ownerID string, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

var _ portssvc.WalletSvcFacade = (*MockWalletService)(nil)

func doRequest(t *testing.T, r http.Handler, method, url, body, ownerID string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, url, nil)
	} else {
		req, _ = http.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+generateTestToken(t, ownerID))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestWalletHandler_CreateWallet(t *testing.T) {
	r, v1 := newAuthedRouter()
	svc := new(MockWalletService)
	handlers.RegisterWalletRoutes(v1, svc)

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	wallet := &domain.Wallet{
		WalletID: "w-1",
		OwnerID:  "owner-1",
		Balance:  domain.Zero("EUR"),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	svc.On("CreateWallet", mock.Anything, "owner-1", dto.CreateWalletRequest{Currency: "EUR"}).Return(wallet, nil).Once()

	w := doRequest(t, r, http.MethodPost, "/api/v1/wallet", `{"currency":"EUR"}`, "owner-1")

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.WalletResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "w-1", resp.WalletID)
	assert.Equal(t, "EUR", resp.Balance.Currency)
	assert.Equal(t, int64(0), resp.Balance.MinorUnits)
	svc.AssertExpectations(t)
}

func TestWalletHandler_CreateWalletWithoutBody(t *testing.T) {
	r, v1 := newAuthedRouter()
	svc := new(MockWalletService)
	handlers.RegisterWalletRoutes(v1, svc)

	svc.On("CreateWallet", mock.Anything, "owner-1", dto.CreateWalletRequest{}).
		Return(&domain.Wallet{WalletID: "w-1", OwnerID: "owner-1", Balance: domain.Zero("USD")}, nil).Once()

	w := doRequest(t, r, http.MethodPost, "/api/v1/wallet", "", "owner-1")

	assert.Equal(t, http.StatusCreated, w.Code)
	svc.AssertExpectations(t)
}

func TestWalletHandler_CreateWalletTwice(t *testing.T) {
	r, v1 := newAuthedRouter()
	svc := new(MockWalletService)
	handlers.RegisterWalletRoutes(v1, svc)

	svc.On("CreateWallet", mock.Anything, "owner-1", mock.Anything).Return(nil, apperrors.ErrDuplicate).Once()

	w := doRequest(t, r, http.MethodPost, "/api/v1/wallet", `{}`, "owner-1")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWalletHandler_InvalidCurrency(t *testing.T) {
	r, v1 := newAuthedRouter()
	svc := new(MockWalletService)
	handlers.RegisterWalletRoutes(v1, svc)

	w := doRequest(t, r, http.MethodPost, "/api/v1/wallet", `{"currency":"dollars"}`, "owner-1")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateWallet", mock.Anything, mock.Anything, mock.Anything)
}

func TestWalletHandler_GetWalletNotFound(t *testing.T) {
	r, v1 := newAuthedRouter()
	svc := new(MockWalletService)
	handlers.RegisterWalletRoutes(v1, svc)

	svc.On("GetWalletByOwner", mock.Anything, "owner-2").Return(nil, apperrors.NewNotFoundError("wallet for owner owner-2")).Once()

	w := doRequest(t, r, http.MethodGet, "/api/v1/wallet", "", "owner-2")

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.KindNotFound, resp.Kind)
}

func TestWalletHandler_InternalErrorHidesCause(t *testing.T) {
	r, v1 := newAuthedRouter()
	svc := new(MockWalletService)
	handlers.RegisterWalletRoutes(v1, svc)

	svc.On("GetWalletByOwner", mock.Anything, "owner-1").Return(nil, assert.AnError).Once()

	w := doRequest(t, r, http.MethodGet, "/api/v1/wallet", "", "owner-1")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
