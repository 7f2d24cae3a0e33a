package drip

import "github.com/shopspring/decimal"

// Schedule is a brokerage commission schedule for buy orders.
//
// The defaults follow Interactive Brokers' fixed pricing for stocks, ETFs and warrants.
type Schedule struct {
	PerUnit     decimal.Decimal `yaml:"per_unit"`     // fee per unit traded
	Minimum     decimal.Decimal `yaml:"minimum"`      // floor of the fee per order
	MaximumRate decimal.Decimal `yaml:"maximum_rate"` // cap of the fee as a fraction of the notional traded
}

// DefaultSchedule returns the default commission schedule: 0.005 per unit, at least 1, at most 1% of the trade.
func DefaultSchedule() Schedule {
	return Schedule{
		PerUnit:     decimal.RequireFromString("0.005"),
		Minimum:     decimal.NewFromInt(1),
		MaximumRate: decimal.RequireFromString("0.01"),
	}
}

// Commission returns the fee to buy units at price.
//
// A raw fee equal to the minimum is charged the minimum, a raw fee equal to the cap is charged the cap.
// The minimum is tested first, so it wins when the cap is below it.
// units must be positive, callers skip zero unit orders.
func (s Schedule) Commission(units Units, price Money) Money {
	minimum := Money{value: s.Minimum, cur: price.cur}
	maximum := price.Times(units).Mul(s.MaximumRate)
	fee := Money{value: units.Decimal().Mul(s.PerUnit), cur: price.cur}
	if fee.LessThanOrEqual(minimum) {
		return minimum
	}
	if fee.GreaterThan(maximum) {
		return maximum
	}
	return fee
}

// Cost returns the total cash needed to buy units at price, commission included.
// Zero units cost nothing.
func (s Schedule) Cost(units Units, price Money) Money {
	if units <= 0 {
		return Money{cur: price.cur}
	}
	return price.Times(units).Add(s.Commission(units, price))
}
