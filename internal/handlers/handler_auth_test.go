package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/wallet_ledger_app/internal/dto"
	"github.com/SscSPs/wallet_ledger_app/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, ownerID string) (string, time.Time, error) {
	args := m.Called(ctx, ownerID)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func issueToken(r http.Handler, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_IssueToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := new(MockTokenService)
	handlers.RegisterAuthRoutes(r, svc)

	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	svc.On("GenerateAccessToken", mock.Anything, "owner-1").Return("signed-token", expires, nil).Once()

	w := issueToken(r, `{"ownerId":"owner-1"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
	assert.True(t, expires.Equal(resp.ExpiresAt))
}

func TestAuthHandler_IssueTokenRequiresOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := new(MockTokenService)
	handlers.RegisterAuthRoutes(r, svc)

	w := issueToken(r, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GenerateAccessToken", mock.Anything, mock.Anything)
}

func TestAuthHandler_RateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := new(MockTokenService)
	handlers.RegisterAuthRoutes(r, svc)

	svc.On("GenerateAccessToken", mock.Anything, "owner-1").Return("signed-token", time.Now().Add(time.Hour), nil)

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, issueToken(r, `{"ownerId":"owner-1"}`).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, issueToken(r, `{"ownerId":"owner-1"}`).Code)
}
