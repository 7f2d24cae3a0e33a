package drip

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/etnz/drip/date"
)

// ErrInsufficientInvestment is returned when the investment cannot buy a single unit on the first day.
var ErrInsufficientInvestment = errors.New("investment cannot buy a single unit")

// Result is the outcome of a simulation run.
type Result struct {
	Window     date.Range
	Years      int
	Investment Money

	StartUnits, EndUnits Units
	StartPrice, EndPrice Money
	StartTotal, EndTotal Money // market value of the units held

	CapitalAppreciation Money   // EndTotal - StartTotal
	CapitalGains        Money   // CapitalAppreciation + Cash
	CapitalGainsPercent Percent // CapitalGains / StartTotal
	AnnualizedReturn    Percent // geometric average of AnnualReturns
	Cash                Money   // final cash buffer

	AnnualReturns []AnnualReturn
	Chart         ChartSeries
	Events        []Event
}

// Simulator runs buy-and-hold simulations for a configuration.
type Simulator struct {
	Config Config
	Logger *slog.Logger // nil discards the log
}

// NewSimulator returns a Simulator for cfg that does not log.
func NewSimulator(cfg Config) *Simulator { return &Simulator{Config: cfg} }

// Simulate is a shortcut for NewSimulator(cfg).Run(prices, dividends).
func Simulate(cfg Config, prices *PriceSeries, dividends *DividendSeries) (*Result, error) {
	return NewSimulator(cfg).Run(prices, dividends)
}

// Window returns the simulation window for prices: from the first priced day of the
// start year to the first priced day of the end year.
func (c Config) Window(prices *PriceSeries) (date.Range, error) {
	if prices.Len() == 0 {
		return date.Range{}, &MissingPriceDataError{Year: c.StartYear}
	}
	inception, _ := prices.First()
	last, _ := prices.Latest()
	startYear, endYear := c.StartYear, c.EndYear
	if startYear == 0 {
		startYear = inception.Year() + 1
	}
	if endYear == 0 {
		endYear = last.Year()
	}

	start, ok := prices.FirstInYear(startYear)
	if !ok {
		return date.Range{}, &MissingPriceDataError{Year: startYear}
	}
	end, ok := prices.FirstInYear(endYear)
	if !ok {
		return date.Range{}, &MissingPriceDataError{Year: endYear}
	}
	w := date.Range{From: start, To: end}
	switch {
	case end.Before(start):
		return w, &InvalidWindowError{Start: start, End: end, Reason: "end is before start"}
	case endYear-startYear < 1:
		return w, &InvalidWindowError{Start: start, End: end, Reason: "less than one full year"}
	case w.Len() > c.MaxDays:
		return w, &InvalidWindowError{Start: start, End: end, Reason: fmt.Sprintf("more than %d days", c.MaxDays)}
	}
	return w, nil
}

// Run simulates the investment over prices, reinvesting dividends.
//
// All errors are returned before the first purchase: once the window is known, stepping cannot fail.
func (sim *Simulator) Run(prices *PriceSeries, dividends *DividendSeries) (*Result, error) {
	log := sim.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	cfg := sim.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if prices == nil {
		prices = NewSeries()
	}
	if dividends == nil {
		dividends = NewSeries()
	}
	if err := prices.ValidatePrices(); err != nil {
		return nil, err
	}
	if err := dividends.ValidateDividends(); err != nil {
		return nil, err
	}
	window, err := cfg.Window(prices)
	if err != nil {
		return nil, err
	}

	rules := cfg.Rules()
	investment := rules.Precision.Round(M(cfg.Investment, cfg.Currency))
	startPrice := priceOn(prices, window.From, cfg.Currency)
	if rules.Commission.MaxUnits(investment, startPrice) == 0 {
		return nil, fmt.Errorf("%w: %s at %s on %s", ErrInsufficientInvestment, investment, startPrice, window.From)
	}
	log.Info("calculate total returns", "from", window.From, "to", window.To)

	res := &Result{
		Window:     window,
		Years:      window.To.Year() - window.From.Year(),
		Investment: investment,
		StartPrice: startPrice,
	}

	state, purchase := rules.Seed(window.From, startPrice, investment)
	res.StartUnits, res.StartTotal = state.Units, state.YearStartTotal
	res.Events = append(res.Events, purchase)
	log.Info(purchase.String())

	for on := range window.Days() {
		d := Day{On: on}
		if p, ok := prices.Get(on); ok {
			d.Price, d.Priced = M(p, cfg.Currency), true
		}
		if v, ok := dividends.Get(on); ok {
			d.Dividend, d.HasDividend = M(v, cfg.Currency), true
		}
		var t Transition
		state, t = rules.Step(state, d)
		for _, e := range t.Events {
			log.Info(e.String())
		}
		res.Events = append(res.Events, t.Events...)
		if t.Point != nil {
			res.Chart.Add(*t.Point)
		}
	}

	res.EndUnits = state.Units
	res.EndPrice = priceOn(prices, window.To, cfg.Currency)
	res.EndTotal = res.EndPrice.Times(res.EndUnits)
	res.Cash = state.Cash
	res.AnnualReturns = state.AnnualReturns
	res.CapitalAppreciation = res.EndTotal.Sub(res.StartTotal)
	res.CapitalGains = res.CapitalAppreciation.Add(res.Cash)
	res.CapitalGainsPercent = Percent(res.CapitalGains.Ratio(res.StartTotal).InexactFloat64() * 100)
	// the window spans at least one year, Annualize cannot fail.
	res.AnnualizedReturn, _ = Annualize(Ratios(res.AnnualReturns), res.Years)

	log.Info("simulation done",
		"was", res.StartUnits, "now", res.EndUnits,
		"appreciation", res.CapitalAppreciation, "remainder", res.Cash,
		"gains", res.CapitalGains, "gains_percent", res.CapitalGainsPercent,
		"annualized", res.AnnualizedReturn)
	return res, nil
}

// priceOn reads the price of a day that must exist.
func priceOn(prices *PriceSeries, on date.Date, currency string) Money {
	p, _ := prices.Get(on)
	return M(p, currency)
}
