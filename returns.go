package drip

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Annualize returns the geometric average of yearly growth ratios over years, as a percentage.
//
// The product of the ratios is exact, only the 1/years root is computed in floating point.
func Annualize(ratios []decimal.Decimal, years int) (Percent, error) {
	if years <= 0 {
		return 0, fmt.Errorf("cannot annualize a return over %d years", years)
	}
	product := decimal.NewFromInt(1)
	for _, r := range ratios {
		product = product.Mul(r)
	}
	if product.IsNegative() {
		return 0, fmt.Errorf("cannot annualize a negative growth %s", product)
	}
	return Percent((math.Pow(product.InexactFloat64(), 1/float64(years)) - 1) * 100), nil
}

// Ratios returns the growth ratios of annual returns, in order.
func Ratios(returns []AnnualReturn) []decimal.Decimal {
	ratios := make([]decimal.Decimal, len(returns))
	for i, r := range returns {
		ratios[i] = r.Ratio
	}
	return ratios
}
