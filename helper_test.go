package drip

import (
	"github.com/etnz/drip/date"
	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// dec parses a decimal constant.
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// series builds a series from "date" -> "value" pairs.
func series(points map[string]string) *Series {
	s := NewSeries()
	for on, v := range points {
		s.Add(date.MustParse(on), dec(v))
	}
	return s
}
