package drip

import (
	"encoding/csv"
	"io"

	"github.com/etnz/drip/date"
)

// ChartPoint is the total account value on a day: market value of the units plus the cash buffer.
type ChartPoint struct {
	On    date.Date
	Value Money
}

// ChartSeries is an append-only, chronological list of ChartPoint.
type ChartSeries struct {
	points []ChartPoint
}

// Add appends a point. Points must be added in chronological order.
func (c *ChartSeries) Add(p ChartPoint) {
	if n := len(c.points); n > 0 && !c.points[n-1].On.Before(p.On) {
		panic("chart point " + p.On.String() + " is not after " + c.points[n-1].On.String())
	}
	c.points = append(c.points, p)
}

// Len returns the number of points.
func (c *ChartSeries) Len() int { return len(c.points) }

// Points returns a copy of the points.
func (c *ChartSeries) Points() []ChartPoint { return append([]ChartPoint(nil), c.points...) }

// Last returns the latest point, or false if the series is empty.
func (c *ChartSeries) Last() (ChartPoint, bool) {
	if len(c.points) == 0 {
		return ChartPoint{}, false
	}
	return c.points[len(c.points)-1], true
}

// WriteCSV writes the series as a two columns "date,value" CSV.
func (c *ChartSeries) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "value"}); err != nil {
		return err
	}
	for _, p := range c.points {
		if err := cw.Write([]string{p.On.String(), p.Value.Decimal().String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
