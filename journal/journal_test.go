package journal

import (
	"context"
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

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
	prices.Add(date.New(2022, 1, 3), decimal.NewFromInt(60))
	res, err := drip.Simulate(drip.DefaultConfig(), prices, nil)
	require.NoError(t, err)
	return res
}

var createdAt = time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

func TestNewID(t *testing.T) {
	a, b := NewID(createdAt), NewID(createdAt)
	assert.Len(t, a, 26)
	assert.Less(t, a, b, "ids of the same millisecond are increasing")
}

func TestNewRun(t *testing.T) {
	run := NewRun("VTI", createdAt, simulate(t))
	assert.Equal(t, "VTI", run.Symbol)
	assert.Equal(t, "2021-01-04", run.From)
	assert.Equal(t, "2022-01-03", run.To)
	assert.Equal(t, int64(181), run.StartUnits)
	assert.Equal(t, "9955", run.StartTotal)
	assert.Equal(t, "10860", run.EndTotal)
}

func TestSQLiteRecord(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "runs.db")
	j, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })

	res := simulate(t)
	run := NewRun("VTI", createdAt, res)
	require.NoError(t, j.Record(run, res))
	require.NoError(t, j.Record(NewRun("SPY", createdAt, res), res))

	ctx := context.Background()
	runs, err := j.Runs(ctx, "VTI")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
	assert.Equal(t, "9955", runs[0].StartTotal)
	assert.True(t, createdAt.Equal(runs[0].CreatedAt))

	all, err := j.Runs(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	chart, err := j.Chart(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, []ChartPoint{{"2021-01-04", "9999"}, {"2022-01-03", "10895"}}, chart)

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM events WHERE run_id = ?`, run.ID).Scan(&n))
	assert.Equal(t, len(res.Events), n)
}

func TestSQLiteRecordTwice(t *testing.T) {
	j, err := NewSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer j.Close()

	res := simulate(t)
	run := NewRun("VTI", createdAt, res)
	require.NoError(t, j.Record(run, res))
	assert.Error(t, j.Record(run, res), "run ids are unique")

	runs, err := j.Runs(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, runs, 1, "a failed record leaves nothing behind")
}

func TestCSVJournal(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "journal")
	res := simulate(t)

	for _, symbol := range []string{"VTI", "SPY"} {
		j, err := Open(dir)
		require.NoError(t, err)
		require.IsType(t, &CSVJournal{}, j)
		require.NoError(t, j.Record(NewRun(symbol, createdAt, res), res))
		require.NoError(t, j.Close())
	}

	runs := readCSV(t, filepath.Join(dir, "runs.csv"))
	require.Len(t, runs, 3, "a single header, then one line per run")
	assert.Equal(t, runsHeader, runs[0])
	assert.Equal(t, "VTI", runs[1][1])
	assert.Equal(t, "SPY", runs[2][1])

	chart := readCSV(t, filepath.Join(dir, "chart.csv"))
	assert.Len(t, chart, 1+2*res.Chart.Len())

	events := readCSV(t, filepath.Join(dir, "events.csv"))
	assert.Len(t, events, 1+2*len(res.Events))
	assert.Equal(t, "purchase", events[1][3])
}

func TestOpenSQLite(t *testing.T) {
	j, err := Open(filepath.Join(t.TempDir(), "runs.sqlite"))
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, j)
	assert.NoError(t, j.Close())
}

func readCSV(t *testing.T, name string) [][]string {
	t.Helper()
	f, err := os.Open(name)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}
