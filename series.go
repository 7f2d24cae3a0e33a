package drip

import (
	"fmt"

	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

// Series is a chronological mapping from calendar day to a decimal value.
//
// PriceSeries maps days to unit prices, DividendSeries maps pay days to per-unit payouts.
// Both are fully loaded before a simulation and never mutated by it.
type Series struct {
	date.History[decimal.Decimal]
}

// PriceSeries is the daily unit price of a security. Days without quotes are absent.
type PriceSeries = Series

// DividendSeries is the per-unit cash distribution of a security, keyed by pay date.
type DividendSeries = Series

// NewSeries returns an empty series.
func NewSeries() *Series { return new(Series) }

// Add records value on day, replacing any previous value for that day.
func (s *Series) Add(on date.Date, value decimal.Decimal) *Series {
	s.Append(on, value)
	return s
}

// ValidatePrices checks that every price is strictly positive.
func (s *Series) ValidatePrices() error {
	for on, v := range s.Values() {
		if !v.IsPositive() {
			return fmt.Errorf("%w: price %s on %s is not positive", ErrInvalidSeries, v, on)
		}
	}
	return nil
}

// ValidateDividends checks that every payout is non negative.
func (s *Series) ValidateDividends() error {
	for on, v := range s.Values() {
		if v.IsNegative() {
			return fmt.Errorf("%w: dividend %s on %s is negative", ErrInvalidSeries, v, on)
		}
	}
	return nil
}
