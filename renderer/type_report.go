package renderer

import (
	"fmt"

	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
)

// Report is the printable view of a simulation result: every amount is already formatted.
type Report struct {
	Name     string
	From, To string
	Years    int

	Investment          string
	Was, Now            string
	CapitalAppreciation string
	Remainder           string
	CapitalGains        string
	CapitalGainsPercent string
	AnnualizedReturn    string

	AnnualReturns []YearRow
	Events        []string
	Chart         []ChartRow
}

// YearRow is a line of the annual returns table.
type YearRow struct {
	Year       int
	Start, End string
	Return     string
}

// ChartRow is a line of the chart table.
type ChartRow struct {
	Date  string
	Value string
}

// NewReport builds the Report of r. The chart keeps the last point of each chart period.
func NewReport(name string, r *drip.Result, chart date.Period) *Report {
	rep := &Report{
		Name:                name,
		From:                r.Window.From.String(),
		To:                  r.Window.To.String(),
		Years:               r.Years,
		Investment:          r.Investment.Format(2),
		Was:                 fmt.Sprintf("%d (%s)", r.StartUnits, r.StartTotal.Format(2)),
		Now:                 fmt.Sprintf("%d (%s)", r.EndUnits, r.EndTotal.Format(2)),
		CapitalAppreciation: r.CapitalAppreciation.Format(2),
		Remainder:           r.Cash.Format(2),
		CapitalGains:        r.CapitalGains.Format(2),
		CapitalGainsPercent: r.CapitalGainsPercent.String(),
		AnnualizedReturn:    r.AnnualizedReturn.String(),
	}
	for _, ar := range r.AnnualReturns {
		rep.AnnualReturns = append(rep.AnnualReturns, YearRow{
			Year:   ar.Year,
			Start:  ar.Start.Format(2),
			End:    ar.End.Format(2),
			Return: drip.Event{Ratio: ar.Ratio}.Return().SignedString(),
		})
	}
	for _, e := range r.Events {
		rep.Events = append(rep.Events, e.String())
	}
	points := r.Chart.Points()
	for i, p := range points {
		if i+1 < len(points) && points[i+1].On.StartOf(chart) == p.On.StartOf(chart) {
			continue
		}
		rep.Chart = append(rep.Chart, ChartRow{Date: p.On.String(), Value: p.Value.Format(2)})
	}
	return rep
}
