package domain_test

import (
	"math"
	"testing"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/SscSPs/wallet_ledger_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(minor int64) domain.Money { return domain.NewMoney(minor, "USD") }

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency string
		want     domain.Money
		wantErr  bool
	}{
		{name: "two decimals", amount: "120.50", currency: "USD", want: usd(12050)},
		{name: "integer", amount: "85", currency: "usd", want: usd(8500)},
		{name: "yen has no minor unit", amount: "1500", currency: "JPY", want: domain.NewMoney(1500, "JPY")},
		{name: "dinar has three", amount: "1.234", currency: "KWD", want: domain.NewMoney(1234, "KWD")},
		{name: "too precise", amount: "10.005", currency: "USD", wantErr: true},
		{name: "not a number", amount: "ten", currency: "USD", wantErr: true},
		{name: "bad currency", amount: "1.00", currency: "US", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseMoney(tt.amount, tt.currency)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	sum, err := usd(10000).Add(usd(4000))
	require.NoError(t, err)
	assert.Equal(t, usd(14000), sum)

	diff, err := usd(10000).Subtract(usd(15000))
	require.NoError(t, err)
	assert.Equal(t, usd(-5000), diff)
	assert.False(t, diff.IsNonNegative())

	cmp, err := usd(1).Compare(usd(2))
	require.NoError(t, err)
	assert.Equal(t, -1, cmp)

	_, err = usd(1).Add(domain.NewMoney(1, "EUR"))
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)
	_, err = usd(1).Compare(domain.NewMoney(1, "EUR"))
	assert.ErrorIs(t, err, apperrors.ErrCurrencyMismatch)

	_, err = usd(math.MaxInt64).Add(usd(1))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	_, err = usd(math.MinInt64).Subtract(usd(1))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestMoney_Format(t *testing.T) {
	assert.Equal(t, "USD 2540.50", usd(254050).Format())
	assert.Equal(t, "USD -0.05", usd(-5).Format())
	assert.Equal(t, "JPY 1500", domain.NewMoney(1500, "JPY").Format())
	assert.Equal(t, "85.00", usd(8500).Decimal().StringFixed(2))
}
