package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/etnz/drip"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a Journal in a SQLite database.
type SQLite struct {
	db *sql.DB
}

var _ Journal = (*SQLite)(nil)

// NewSQLite opens or creates the database at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema in %q: %w", path, err)
	}
	return &SQLite{db: db}, nil
}

// Record stores the run, its chart and its events in a single transaction.
func (j *SQLite) Record(run Run, r *drip.Result) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs
		(run_id, symbol, created_at, start_date, end_date, years, investment, start_units, end_units,
		 start_total, end_total, cash, capital_gains, annualized_return)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Symbol, run.CreatedAt, run.From, run.To, run.Years, run.Investment,
		run.StartUnits, run.EndUnits, run.StartTotal, run.EndTotal, run.Cash, run.CapitalGains,
		run.AnnualizedReturn,
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.ID, err)
	}

	for _, p := range r.Chart.Points() {
		if _, err := tx.Exec(`INSERT INTO chart (run_id, date, value) VALUES (?, ?, ?)`,
			run.ID, p.On.String(), p.Value.Decimal().String()); err != nil {
			return fmt.Errorf("record chart of run %s: %w", run.ID, err)
		}
	}

	for i, e := range r.Events {
		if _, err := tx.Exec(`
			INSERT INTO events (run_id, seq, date, kind, units, amount, cash, message)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, e.On.String(), e.Kind.String(), int64(e.Units),
			e.Amount.Decimal().String(), e.Cash.Decimal().String(), e.String()); err != nil {
			return fmt.Errorf("record events of run %s: %w", run.ID, err)
		}
	}
	return tx.Commit()
}

// Runs lists the runs recorded for symbol, oldest first. An empty symbol lists them all.
func (j *SQLite) Runs(ctx context.Context, symbol string) ([]Run, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT run_id, symbol, created_at, start_date, end_date, years, investment, start_units, end_units,
		       start_total, end_total, cash, capital_gains, annualized_return
		FROM runs
		WHERE ? = '' OR symbol = ?
		ORDER BY run_id`, symbol, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Symbol, &r.CreatedAt, &r.From, &r.To, &r.Years, &r.Investment,
			&r.StartUnits, &r.EndUnits, &r.StartTotal, &r.EndTotal, &r.Cash, &r.CapitalGains,
			&r.AnnualizedReturn); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ChartPoint is a recorded chart point.
type ChartPoint struct {
	Date  string
	Value string
}

// Chart returns the chart of a run, in chronological order.
func (j *SQLite) Chart(ctx context.Context, runID string) ([]ChartPoint, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT date, value FROM chart WHERE run_id = ? ORDER BY date`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []ChartPoint
	for rows.Next() {
		var p ChartPoint
		if err := rows.Scan(&p.Date, &p.Value); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// Close closes the database.
func (j *SQLite) Close() error {
	return j.db.Close()
}
