package domain

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/SscSPs/wallet_ledger_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when a wallet or request does not name one.
const DefaultCurrency = "USD"

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// minorUnitExponents lists currencies whose minor unit is not a hundredth.
var minorUnitExponents = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"BHD": 3,
	"KWD": 3,
	"JOD": 3,
}

// Money is an exact amount in the smallest unit of its currency.
type Money struct {
	MinorUnits int64  `json:"minorUnits"`
	Currency   string `json:"currency"`
}

// NewMoney builds Money from minor units.
func NewMoney(minorUnits int64, currency string) Money {
	return Money{MinorUnits: minorUnits, Currency: currency}
}

// Zero returns a zero amount in currency.
func Zero(currency string) Money {
	return Money{Currency: currency}
}

// IsValidCurrency reports whether code looks like an ISO 4217 alphabetic code.
func IsValidCurrency(code string) bool {
	return currencyCodePattern.MatchString(code)
}

// CurrencyExponent returns the number of decimal places of the currency's minor unit.
func CurrencyExponent(currency string) int32 {
	if exp, ok := minorUnitExponents[currency]; ok {
		return exp
	}
	return 2
}

// ParseMoney converts a decimal string such as "120.50" into Money.
// Amounts with more precision than the currency allows are rejected, not rounded.
func ParseMoney(amount, currency string) (Money, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !IsValidCurrency(currency) {
		return Money{}, fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, currency)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return Money{}, fmt.Errorf("%w: invalid amount %q", apperrors.ErrValidation, amount)
	}
	return MoneyFromDecimal(d, currency)
}

// MoneyFromDecimal converts a decimal major-unit amount into Money.
func MoneyFromDecimal(d decimal.Decimal, currency string) (Money, error) {
	exp := CurrencyExponent(currency)
	scaled := d.Shift(exp)
	if !scaled.Equal(scaled.Truncate(0)) {
		return Money{}, fmt.Errorf("%w: amount %s has more than %d decimal places for %s", apperrors.ErrValidation, d.String(), exp, currency)
	}
	if scaled.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || scaled.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return Money{}, fmt.Errorf("%w: amount %s out of range", apperrors.ErrValidation, d.String())
	}
	return Money{MinorUnits: scaled.IntPart(), Currency: currency}, nil
}

func (m Money) sameCurrency(other Money) error {
	if m.Currency != other.Currency {
		return fmt.Errorf("%w: %s vs %s", apperrors.ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return nil
}

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	sum := m.MinorUnits + other.MinorUnits
	if (other.MinorUnits > 0 && sum < m.MinorUnits) || (other.MinorUnits < 0 && sum > m.MinorUnits) {
		return Money{}, fmt.Errorf("%w: amount overflow", apperrors.ErrValidation)
	}
	return Money{MinorUnits: sum, Currency: m.Currency}, nil
}

// Subtract returns m - other. The result may be negative; callers check sufficiency.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	diff := m.MinorUnits - other.MinorUnits
	if (other.MinorUnits > 0 && diff > m.MinorUnits) || (other.MinorUnits < 0 && diff < m.MinorUnits) {
		return Money{}, fmt.Errorf("%w: amount overflow", apperrors.ErrValidation)
	}
	return Money{MinorUnits: diff, Currency: m.Currency}, nil
}

// Compare returns -1, 0 or 1.
func (m Money) Compare(other Money) (int, error) {
	if err := m.sameCurrency(other); err != nil {
		return 0, err
	}
	switch {
	case m.MinorUnits < other.MinorUnits:
		return -1, nil
	case m.MinorUnits > other.MinorUnits:
		return 1, nil
	default:
		return 0, nil
	}
}

func (m Money) IsNonNegative() bool { return m.MinorUnits >= 0 }

func (m Money) IsPositive() bool { return m.MinorUnits > 0 }

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.MinorUnits, -CurrencyExponent(m.Currency))
}

// Format renders the amount for display, e.g. "USD 2540.50".
func (m Money) Format() string {
	return fmt.Sprintf("%s %s", m.Currency, m.Decimal().StringFixed(CurrencyExponent(m.Currency)))
}

func (m Money) String() string {
	return m.Format()
}
