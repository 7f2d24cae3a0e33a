package drip

import (
	"fmt"

	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

// EventKind identifies what happened to the account.
type EventKind int

const (
	// Purchase is the initial lump sum purchase.
	Purchase EventKind = iota
	// Dividend is a cash distribution credited to the cash buffer, net of tax.
	Dividend
	// Reinvest is a purchase paid from the cash buffer after a dividend.
	Reinvest
	// MonthlyFee is the account fee deducted at the end of a month.
	MonthlyFee
	// YearClosed records the return of a completed calendar year.
	YearClosed
)

func (k EventKind) String() string {
	switch k {
	case Purchase:
		return "purchase"
	case Dividend:
		return "dividend"
	case Reinvest:
		return "reinvest"
	case MonthlyFee:
		return "fee"
	case YearClosed:
		return "year"
	default:
		return "unknown"
	}
}

// Event is an audit record of a decision taken by the simulation.
//
// Fields that do not apply to the event kind are left zero.
type Event struct {
	Kind       EventKind
	On         date.Date
	Units      Units           // units bought, or units holding the dividend
	Price      Money           // unit price of the day
	PerUnit    Money           // payout per unit of a dividend
	Amount     Money           // cost of a purchase, gross dividend, or net fee charged (negative is a credit)
	Tax        Money           // withholding tax of a dividend
	Commission Money           // commission of a purchase
	Cash       Money           // cash buffer after the event
	Year       int             // closed year
	Start, End Money           // market values bounding a closed year
	Ratio      decimal.Decimal // end/start of a closed year
}

// String returns the human-readable log line of the event.
func (e Event) String() string {
	switch e.Kind {
	case Purchase:
		return fmt.Sprintf("%s bought %d securities for %s (commission: %s, remainder: %s)",
			e.On, e.Units, e.Amount.Format(4), e.Commission.Format(4), e.Cash.Format(4))
	case Dividend:
		return fmt.Sprintf("%s dividend payout: %s * %d = %s at security price %s, tax %s, after tax remainder: %s",
			e.On, e.PerUnit.Format(4), e.Units, e.Amount.Format(4), e.Price.Format(4), e.Tax.Format(4), e.Cash.Format(4))
	case Reinvest:
		return fmt.Sprintf("%s buy %d securities for %s (commission: %s), new remainder: %s",
			e.On, e.Units, e.Amount.Format(4), e.Commission.Format(4), e.Cash.Format(4))
	case MonthlyFee:
		return fmt.Sprintf("%s monthly fee: %s, new remainder: %s", e.On, e.Amount.Format(4), e.Cash.Format(4))
	case YearClosed:
		return fmt.Sprintf("%d annual return: %s (%s - %s)", e.Year, e.Return(), e.Start.Format(2), e.End.Format(2))
	default:
		return fmt.Sprintf("%s unknown event", e.On)
	}
}

// Return is the percentage return of a closed year.
func (e Event) Return() Percent {
	return Percent(e.Ratio.Sub(decimal.NewFromInt(1)).InexactFloat64() * 100)
}
