package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simulate(t *testing.T) *drip.Result {
	t.Helper()
	prices := drip.NewSeries()
	prices.Add(date.New(2020, 1, 2), decimal.NewFromInt(50))
	prices.Add(date.New(2021, 1, 4), decimal.NewFromInt(55))
	prices.Add(date.New(2021, 2, 1), decimal.NewFromInt(56))
	prices.Add(date.New(2022, 1, 3), decimal.NewFromInt(60))
	cfg := drip.DefaultConfig()
	cfg.MonthlyFee = decimal.Zero
	res, err := drip.Simulate(cfg, prices, nil)
	require.NoError(t, err)
	return res
}

func TestNewReport(t *testing.T) {
	rep := NewReport("VTI", simulate(t), date.Monthly)

	assert.Equal(t, "2021-01-04", rep.From)
	assert.Equal(t, "2022-01-03", rep.To)
	assert.Equal(t, "181 ($9,955.00)", rep.Was)
	assert.Equal(t, "181 ($10,860.00)", rep.Now)
	assert.Equal(t, "$905.00", rep.CapitalAppreciation)
	assert.Equal(t, "$45.00", rep.Remainder)
	assert.Equal(t, "$950.00", rep.CapitalGains)
	assert.Equal(t, "9.54%", rep.CapitalGainsPercent)
	assert.Equal(t, []YearRow{{Year: 2021, Start: "$9,955.00", End: "$10,136.00", Return: "+1.82%"}}, rep.AnnualReturns)
	assert.Equal(t, []ChartRow{
		{Date: "2021-01-04", Value: "$9,999.00"},
		{Date: "2021-02-01", Value: "$10,181.00"},
		{Date: "2022-01-03", Value: "$10,905.00"},
	}, rep.Chart)
}

func TestRenderResult(t *testing.T) {
	res := simulate(t)

	out := RenderResult("VTI", res, RenderOptions{})
	assert.True(t, strings.HasPrefix(out, "# Total Return of VTI from 2021-01-04 to 2022-01-03\n"), out)
	assert.Contains(t, out, "| Capital gains | $950.00 (9.54%) |")
	assert.Contains(t, out, "| 2021 | $9,955.00 | $10,136.00 | +1.82% |")
	assert.Contains(t, out, "## Events\n\n- 2021-01-04 bought 181 securities")
	assert.Contains(t, out, "| 2021-02-01 | $10,181.00 |")
	assert.NotContains(t, out, "error")

	out = RenderResult("VTI", res, RenderOptions{SkipEvents: true, SkipChart: true})
	assert.NotContains(t, out, "## Events")
	assert.NotContains(t, out, "## Chart")
	assert.Contains(t, out, "## Annual Returns")
}

func TestNewReportYearlyChart(t *testing.T) {
	rep := NewReport("VTI", simulate(t), date.Yearly)
	assert.Equal(t, []ChartRow{
		{Date: "2021-02-01", Value: "$10,181.00"},
		{Date: "2022-01-03", Value: "$10,905.00"},
	}, rep.Chart)
}
