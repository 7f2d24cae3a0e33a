// Package journal keeps simulation runs, in a SQLite database or in CSV files.
package journal

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/drip"
)

// Run is the summary of a recorded simulation.
type Run struct {
	ID        string
	Symbol    string
	CreatedAt time.Time

	From, To         string // window boundaries, ISO dates
	Years            int
	Investment       string
	StartUnits       int64
	EndUnits         int64
	StartTotal       string
	EndTotal         string
	Cash             string
	CapitalGains     string
	AnnualizedReturn float64 // percent
}

// NewRun summarizes r as a run of symbol created at.
func NewRun(symbol string, at time.Time, r *drip.Result) Run {
	return Run{
		ID:               NewID(at),
		Symbol:           symbol,
		CreatedAt:        at.UTC(),
		From:             r.Window.From.String(),
		To:               r.Window.To.String(),
		Years:            r.Years,
		Investment:       r.Investment.Decimal().String(),
		StartUnits:       int64(r.StartUnits),
		EndUnits:         int64(r.EndUnits),
		StartTotal:       r.StartTotal.Decimal().String(),
		EndTotal:         r.EndTotal.Decimal().String(),
		Cash:             r.Cash.Decimal().String(),
		CapitalGains:     r.CapitalGains.Decimal().String(),
		AnnualizedReturn: float64(r.AnnualizedReturn),
	}
}

// Journal records simulation runs with their chart and events.
type Journal interface {
	Record(run Run, r *drip.Result) error
	Close() error
}

// Open returns a SQLite journal when path ends with ".db" or ".sqlite",
// and a CSV journal in the directory path otherwise.
func Open(path string) (Journal, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite":
		return NewSQLite(path)
	default:
		return NewCSV(path)
	}
}
