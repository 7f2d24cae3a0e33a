package drip

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M builds a Money from any numeric value.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Units is a whole number of units of a security.
type Units int64

// Decimal returns the units as a decimal, for arithmetic with prices.
func (u Units) Decimal() decimal.Decimal { return decimal.NewFromInt(int64(u)) }

// currency returns the money's currency
func (m Money) currency() *money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, using the currency fraction digits.
func (m Money) String() string {
	if m.cur == "" {
		return m.value.StringFixed(2)
	}
	return m.Format(int32(m.currency().Fraction))
}

// Format returns the money with its currency symbol and exactly places fraction digits.
func (m Money) Format(places int32) string {
	if m.cur == "" {
		return m.value.StringFixed(places)
	}
	cur := m.currency()
	f := money.NewFormatter(int(places), cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
	return f.Format(m.value.Shift(places).Round(0).IntPart())
}

// Simple wrapper around decimal.Decimal

func (m Money) Currency() string             { return m.cur }
func (m Money) Decimal() decimal.Decimal     { return m.value }
func (m Money) Equal(n Money) bool           { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                 { return m.value.IsZero() }
func (m Money) IsPositive() bool             { return m.value.IsPositive() }
func (m Money) IsNegative() bool             { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool        { return m.value.LessThan(n.value) }
func (m Money) LessThanOrEqual(n Money) bool { return m.value.LessThanOrEqual(n.value) }
func (m Money) GreaterThan(n Money) bool     { return m.value.GreaterThan(n.value) }

// Times returns the value of u units priced at m.
func (m Money) Times(u Units) Money { return Money{value: m.value.Mul(u.Decimal()), cur: m.cur} }

// Mul scales the money by a rate.
func (m Money) Mul(rate decimal.Decimal) Money { return Money{value: m.value.Mul(rate), cur: m.cur} }

// Ratio returns m/n as a plain decimal.
func (m Money) Ratio(n Money) decimal.Decimal { return m.value.Div(n.value) }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}
