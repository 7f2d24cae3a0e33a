package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/etnz/drip"
)

var (
	runsHeader   = []string{"run_id", "symbol", "created_at", "start_date", "end_date", "years", "investment", "start_units", "end_units", "start_total", "end_total", "cash", "capital_gains", "annualized_return"}
	chartHeader  = []string{"run_id", "date", "value"}
	eventsHeader = []string{"run_id", "seq", "date", "kind", "units", "amount", "cash", "message"}
)

// CSVJournal is a Journal made of three CSV files in a directory: runs.csv, chart.csv and events.csv.
// Runs are appended to existing files.
type CSVJournal struct {
	runs, chart, events *csv.Writer
	files               []*os.File
}

var _ Journal = (*CSVJournal)(nil)

// NewCSV opens the CSV files in dir, creating dir and the files as needed.
func NewCSV(dir string) (*CSVJournal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	j := new(CSVJournal)
	var err error
	if j.runs, err = j.open(filepath.Join(dir, "runs.csv"), runsHeader); err != nil {
		return nil, errors.Join(err, j.closeFiles())
	}
	if j.chart, err = j.open(filepath.Join(dir, "chart.csv"), chartHeader); err != nil {
		return nil, errors.Join(err, j.closeFiles())
	}
	if j.events, err = j.open(filepath.Join(dir, "events.csv"), eventsHeader); err != nil {
		return nil, errors.Join(err, j.closeFiles())
	}
	return j, nil
}

// open opens name for appending, and writes header if the file is empty.
func (j *CSVJournal) open(name string, header []string) (*csv.Writer, error) {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	j.files = append(j.files, f)
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("write header of %q: %w", name, err)
		}
	}
	return w, nil
}

// Record appends the run, its chart and its events.
func (j *CSVJournal) Record(run Run, r *drip.Result) error {
	j.runs.Write([]string{
		run.ID,
		run.Symbol,
		run.CreatedAt.Format(time.RFC3339),
		run.From,
		run.To,
		strconv.Itoa(run.Years),
		run.Investment,
		strconv.FormatInt(run.StartUnits, 10),
		strconv.FormatInt(run.EndUnits, 10),
		run.StartTotal,
		run.EndTotal,
		run.Cash,
		run.CapitalGains,
		strconv.FormatFloat(run.AnnualizedReturn, 'f', 6, 64),
	})
	for _, p := range r.Chart.Points() {
		j.chart.Write([]string{run.ID, p.On.String(), p.Value.Decimal().String()})
	}
	for i, e := range r.Events {
		j.events.Write([]string{
			run.ID,
			strconv.Itoa(i),
			e.On.String(),
			e.Kind.String(),
			strconv.FormatInt(int64(e.Units), 10),
			e.Amount.Decimal().String(),
			e.Cash.Decimal().String(),
			e.String(),
		})
	}
	return j.flush()
}

func (j *CSVJournal) flush() error {
	for _, w := range []*csv.Writer{j.runs, j.chart, j.events} {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes and closes the files.
func (j *CSVJournal) Close() error {
	return errors.Join(j.flush(), j.closeFiles())
}

func (j *CSVJournal) closeFiles() error {
	var errs []error
	for _, f := range j.files {
		errs = append(errs, f.Close())
	}
	j.files = nil
	return errors.Join(errs...)
}
