package lifecycle

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Monetary amount with currency (decimal-backed, no float drift)
// =============================================================================

// DefaultCurrency is the currency assumed when none is given.
const DefaultCurrency = "ZAR"

type Money struct {
	Amount   decimal.Decimal
	Currency string
}

func NewMoney(amount float64, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Amount: decimal.NewFromFloat(amount), Currency: currency}
}

func NewMoneyFromInt(amount int64, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Amount: decimal.NewFromInt(amount), Currency: currency}
}

func ZeroMoney(currency string) Money { return NewMoneyFromInt(0, currency) }

// MustParseDecimal parses s, returning zero on malformed input.
func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount.Add(o.Amount), Currency: m.Currency}
}

func (m Money) Sub(o Money) Money {
	return Money{Amount: m.Amount.Sub(o.Amount), Currency: m.Currency}
}

func (m Money) MulInt(n int64) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(n)), Currency: m.Currency}
}

func (m Money) Mul(d decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(d), Currency: m.Currency}
}

// Percent returns pct% of m (e.g. Percent(15) for VAT).
func (m Money) Percent(pct decimal.Decimal) Money {
	return Money{
		Amount:   m.Amount.Mul(pct).Div(decimal.NewFromInt(100)),
		Currency: m.Currency,
	}
}

func (m Money) IsZero() bool     { return m.Amount.IsZero() }
func (m Money) IsNegative() bool { return m.Amount.IsNegative() }
func (m Money) IsPositive() bool { return m.Amount.IsPositive() }

func (m Money) GreaterThan(o Money) bool { return m.Amount.GreaterThan(o.Amount) }
func (m Money) LessThan(o Money) bool    { return m.Amount.LessThan(o.Amount) }
func (m Money) Equal(o Money) bool       { return m.Amount.Equal(o.Amount) }

// Float64 is for KPI ratios and JSON responses only; entity arithmetic
// stays in decimal.
func (m Money) Float64() float64 {
	f, _ := m.Amount.Float64()
	return f
}
