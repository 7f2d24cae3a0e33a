package drip

import (
	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

// Rules are the account rules applied on every simulated day.
type Rules struct {
	Commission     Schedule
	MonthlyFee     Money           // flat fee charged per month, net of that month's commissions
	WithholdingTax decimal.Decimal // fraction of gross dividends withheld
	Precision      Precision
}

// AnnualReturn is the growth of the held units' market value over a calendar year.
type AnnualReturn struct {
	Year       int
	Start, End Money
	Ratio      decimal.Decimal // End / Start
}

// State is the account between two simulated days.
//
// A State is a value: Step never modifies the State it receives.
type State struct {
	Units          Units
	Cash           Money     // uninvested cash awaiting reinvestment
	FeeAccrued     Money     // fee due at the end of the month, net of its commissions, negative is a credit
	YearStartTotal Money     // market value at the first priced day of Year
	Year           int       // calendar year being tracked
	Month          date.Date // first day of the month being tracked
	Price          Money     // last known unit price
	AnnualReturns  []AnnualReturn
}

// Value returns the market value of the held units at the last known price, plus the cash buffer.
func (s State) Value() Money { return s.Price.Times(s.Units).Add(s.Cash) }

// Day is the input of a single step: a calendar day, and its price and dividend if any.
type Day struct {
	On          date.Date
	Price       Money
	Priced      bool
	Dividend    Money // payout per unit
	HasDividend bool
}

// Transition is what a step emits besides the next State.
type Transition struct {
	Events []Event
	Point  *ChartPoint // nil on unpriced days
}

// Seed returns the State after buying as many units as investment allows on day at price.
// The commission of this purchase is offset against the month's fee.
func (r Rules) Seed(on date.Date, price, investment Money) (State, Event) {
	units := r.Commission.MaxUnits(investment, price)
	cost := price.Times(units)
	commission := Money{cur: price.cur}
	if units > 0 {
		commission = r.Commission.Commission(units, price)
	}
	s := State{
		Units:          units,
		Cash:           r.Precision.Round(investment.Sub(cost).Sub(commission)),
		FeeAccrued:     r.MonthlyFee.Sub(commission),
		YearStartTotal: cost,
		Year:           on.Year(),
		Month:          on.StartOf(date.Monthly),
		Price:          price,
	}
	return s, Event{
		Kind:       Purchase,
		On:         on,
		Units:      units,
		Price:      price,
		Amount:     cost,
		Commission: commission,
		Cash:       s.Cash,
	}
}

// Step applies one calendar day to s.
//
// Unpriced days leave the State untouched and emit nothing. On a priced day, in order:
// the previous year is closed if the day opens a new one, the dividend is credited and
// reinvested, the monthly fee is charged if the next day opens a new month, and a chart
// point is emitted.
func (r Rules) Step(s State, d Day) (State, Transition) {
	var t Transition
	if !d.Priced {
		return s, t
	}

	if d.On.Year() != s.Year {
		// close the previous year with the last price it had.
		end := s.Price.Times(s.Units)
		ar := AnnualReturn{Year: s.Year, Start: s.YearStartTotal, End: end, Ratio: end.Ratio(s.YearStartTotal)}
		// full slice expression: never write into the caller's backing array.
		s.AnnualReturns = append(s.AnnualReturns[:len(s.AnnualReturns):len(s.AnnualReturns)], ar)
		t.Events = append(t.Events, Event{Kind: YearClosed, On: d.On, Year: ar.Year, Start: ar.Start, End: ar.End, Ratio: ar.Ratio})
		s.Year = d.On.Year()
		s.YearStartTotal = d.Price.Times(s.Units)
	}
	s.Price = d.Price

	if d.HasDividend {
		gross := d.Dividend.Times(s.Units)
		tax := r.Precision.Round(gross.Mul(r.WithholdingTax))
		s.Cash = r.Precision.Round(s.Cash.Add(gross).Sub(tax))
		t.Events = append(t.Events, Event{
			Kind:    Dividend,
			On:      d.On,
			Units:   s.Units,
			Price:   d.Price,
			PerUnit: d.Dividend,
			Amount:  gross,
			Tax:     tax,
			Cash:    s.Cash,
		})

		if units := r.Commission.MaxUnits(s.Cash, d.Price); units > 0 {
			cost := d.Price.Times(units)
			commission := r.Commission.Commission(units, d.Price)
			s.Units += units
			s.Cash = r.Precision.Round(s.Cash.Sub(cost).Sub(commission))
			s.FeeAccrued = s.FeeAccrued.Sub(commission)
			t.Events = append(t.Events, Event{
				Kind:       Reinvest,
				On:         d.On,
				Units:      units,
				Price:      d.Price,
				Amount:     cost,
				Commission: commission,
				Cash:       s.Cash,
			})
		}
	}

	// The month ends when the next day belongs to another month than the tracked one.
	// Unpriced month ends are caught up on the next priced day.
	if next := d.On.Add(1).StartOf(date.Monthly); next != s.Month {
		// commissions above the flat fee are credited back.
		fee := r.Precision.Round(s.FeeAccrued)
		s.Cash = r.Precision.Round(s.Cash.Sub(fee))
		t.Events = append(t.Events, Event{Kind: MonthlyFee, On: d.On, Amount: fee, Cash: s.Cash})
		s.FeeAccrued = r.MonthlyFee
		s.Month = next
	}

	t.Point = &ChartPoint{On: d.On, Value: s.Value()}
	return s, t
}
