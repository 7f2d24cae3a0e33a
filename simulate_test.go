package drip

import (
	"errors"
	"testing"
	"time"

	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateNoDividends(t *testing.T) {
	prices := series(map[string]string{
		"2020-01-02": "50",
		"2021-01-04": "55",
		"2022-01-03": "60",
	})
	cfg := DefaultConfig()
	cfg.MonthlyFee = decimal.Zero

	res, err := Simulate(cfg, prices, nil)
	require.NoError(t, err)

	assert.Equal(t, date.Range{From: date.New(2021, 1, 4), To: date.New(2022, 1, 3)}, res.Window)
	assert.Equal(t, 1, res.Years)
	assert.Equal(t, Units(181), res.StartUnits)
	assert.Equal(t, Units(181), res.EndUnits)
	assert.True(t, res.StartTotal.Decimal().Equal(dec("9955")))
	assert.True(t, res.EndTotal.Decimal().Equal(dec("10860")))
	assert.True(t, res.CapitalAppreciation.Decimal().Equal(dec("905")), "181*(60-55)")
	// the initial commission is credited back by the net fee: 0 - 1.
	assert.True(t, res.Cash.Decimal().Equal(dec("45")), "cash = %v", res.Cash.Decimal())
	assert.True(t, res.CapitalGains.Decimal().Equal(dec("950")))
	assert.InDelta(t, 9.5430, float64(res.CapitalGainsPercent), 0.001)

	// the year is closed at the last 2021 price.
	require.Len(t, res.AnnualReturns, 1)
	assert.True(t, res.AnnualReturns[0].Ratio.Equal(decimal.NewFromInt(1)))
	assert.InDelta(t, 0, float64(res.AnnualizedReturn), 1e-9)

	points := res.Chart.Points()
	require.Len(t, points, 2)
	assert.Equal(t, date.New(2021, 1, 4), points[0].On)
	assert.True(t, points[0].Value.Decimal().Equal(dec("9999")))
	assert.True(t, points[1].Value.Decimal().Equal(dec("10905")))

	kinds := make([]EventKind, len(res.Events))
	for i, e := range res.Events {
		kinds[i] = e.Kind
	}
	assert.Equal(t, []EventKind{Purchase, YearClosed, MonthlyFee}, kinds)
}

func TestSimulateWithDividend(t *testing.T) {
	prices := series(map[string]string{
		"2020-06-01": "10",
		"2021-01-04": "10",
		"2021-03-15": "10",
		"2022-01-03": "12",
	})
	dividends := series(map[string]string{
		"2020-06-01": "7", // before the window
		"2021-03-15": "0.5",
	})
	cfg := DefaultConfig()
	cfg.Investment = decimal.NewFromInt(1000)

	res, err := Simulate(cfg, prices, dividends)
	require.NoError(t, err)

	assert.Equal(t, Units(99), res.StartUnits)
	assert.Equal(t, Units(104), res.EndUnits)
	assert.True(t, res.StartTotal.Decimal().Equal(dec("990")))
	assert.True(t, res.EndTotal.Decimal().Equal(dec("1248")))
	// 9 + 49.5 - 4.95 - 51, minus 8 (fee net of both commissions, caught up on 2021-03-15) and 10 (2022-01-03)
	assert.True(t, res.Cash.Decimal().Equal(dec("-15.45")), "cash = %v", res.Cash.Decimal())
	assert.True(t, res.CapitalAppreciation.Decimal().Equal(dec("258")))
	assert.True(t, res.CapitalGains.Decimal().Equal(dec("242.55")))

	require.Len(t, res.AnnualReturns, 1)
	assert.True(t, res.AnnualReturns[0].End.Decimal().Equal(dec("1040")))
	assert.InDelta(t, 5.0505, float64(res.AnnualizedReturn), 0.001)

	var reinvested []Event
	for _, e := range res.Events {
		if e.Kind == Reinvest {
			reinvested = append(reinvested, e)
		}
	}
	require.Len(t, reinvested, 1)
	assert.Equal(t, Units(5), reinvested[0].Units)
	assert.Equal(t, date.New(2021, 3, 15), reinvested[0].On)
	assert.Equal(t, 3, res.Chart.Len())
}

func TestSimulateIsDeterministic(t *testing.T) {
	prices := NewSeries()
	dividends := NewSeries()
	price := dec("40")
	for d := date.New(2018, 3, 1); d.Before(date.New(2023, 2, 1)); d = d.Add(1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		price = price.Add(dec("0.013"))
		prices.Add(d, price)
		if d.Day() == 15 && d.Month()%3 == 0 {
			dividends.Add(d, dec("0.4321"))
		}
	}
	cfg := DefaultConfig()

	r1, err := Simulate(cfg, prices, dividends)
	require.NoError(t, err)
	r2, err := Simulate(cfg, prices, dividends)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, 4, r1.Years)
	assert.Len(t, r1.AnnualReturns, 4)
	assert.Greater(t, r1.EndUnits, r1.StartUnits)
	assert.Equal(t, countPriced(prices, r1.Window), r1.Chart.Len())
}

func countPriced(s *Series, w date.Range) (n int) {
	for on := range s.Values() {
		if w.Contains(on) {
			n++
		}
	}
	return
}

func TestSimulateErrors(t *testing.T) {
	t.Run("missing start year", func(t *testing.T) {
		prices := series(map[string]string{"2020-01-02": "50", "2022-01-03": "60"})
		_, err := Simulate(DefaultConfig(), prices, nil)
		var missing *MissingPriceDataError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, 2021, missing.Year)
	})
	t.Run("missing overridden end year", func(t *testing.T) {
		prices := series(map[string]string{"2020-01-02": "50", "2021-01-04": "55", "2022-01-03": "60"})
		cfg := DefaultConfig()
		cfg.EndYear = 2025
		_, err := Simulate(cfg, prices, nil)
		var missing *MissingPriceDataError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, 2025, missing.Year)
	})
	t.Run("empty prices", func(t *testing.T) {
		_, err := Simulate(DefaultConfig(), NewSeries(), nil)
		var missing *MissingPriceDataError
		assert.ErrorAs(t, err, &missing)
	})
	t.Run("less than a year", func(t *testing.T) {
		prices := series(map[string]string{"2020-01-02": "50", "2021-01-04": "55", "2021-12-31": "60"})
		_, err := Simulate(DefaultConfig(), prices, nil)
		var invalid *InvalidWindowError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, date.New(2021, 1, 4), invalid.Start)
	})
	t.Run("window too long", func(t *testing.T) {
		prices := series(map[string]string{"2020-01-02": "50", "2021-01-04": "55", "2022-01-03": "60"})
		cfg := DefaultConfig()
		cfg.MaxDays = 100
		_, err := Simulate(cfg, prices, nil)
		var invalid *InvalidWindowError
		assert.ErrorAs(t, err, &invalid)
	})
	t.Run("insufficient investment", func(t *testing.T) {
		prices := series(map[string]string{"2020-01-02": "50", "2021-01-04": "55", "2022-01-03": "60"})
		cfg := DefaultConfig()
		cfg.Investment = decimal.NewFromInt(55)
		_, err := Simulate(cfg, prices, nil)
		assert.ErrorIs(t, err, ErrInsufficientInvestment)
	})
	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.WithholdingTax = dec("1.5")
		_, err := Simulate(cfg, NewSeries(), nil)
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
	t.Run("negative price", func(t *testing.T) {
		prices := series(map[string]string{"2020-01-02": "-50"})
		_, err := Simulate(DefaultConfig(), prices, nil)
		assert.True(t, errors.Is(err, ErrInvalidSeries))
	})
}

func TestAnnualize(t *testing.T) {
	got, err := Annualize([]decimal.Decimal{dec("1.10"), dec("1.05"), dec("0.95")}, 3)
	require.NoError(t, err)
	assert.InDelta(t, 3.14, float64(got), 0.01)
	assert.Equal(t, "3.14%", got.String())

	_, err = Annualize(nil, 0)
	assert.Error(t, err)
}
