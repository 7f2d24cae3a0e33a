package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/drip/journal"
	"github.com/google/subcommands"
)

type runsCmd struct {
	journal string
	symbol  string
	chart   string
}

func (*runsCmd) Name() string     { return "runs" }
func (*runsCmd) Synopsis() string { return "list the runs recorded in a SQLite journal" }
func (*runsCmd) Usage() string {
	return `dripcli runs -journal <file.db> [-symbol <name>] [-chart <run id>]

  Lists the recorded runs, oldest first. With -chart, prints the daily account value of a run instead.
`
}

func (c *runsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.journal, "journal", "runs.db", "SQLite journal written by 'simulate -journal'")
	f.StringVar(&c.symbol, "symbol", "", "only list the runs of this security")
	f.StringVar(&c.chart, "chart", "", "print the chart of this run id")
}

func (c *runsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if _, err := os.Stat(c.journal); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal: %v\n", err)
		return subcommands.ExitUsageError
	}
	j, err := journal.NewSQLite(c.journal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal: %v\n", err)
		return subcommands.ExitFailure
	}
	defer j.Close()

	var md string
	if c.chart != "" {
		points, err := j.Chart(ctx, c.chart)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading chart: %v\n", err)
			return subcommands.ExitFailure
		}
		if len(points) == 0 {
			fmt.Fprintf(os.Stderr, "no chart for run %q\n", c.chart)
			return subcommands.ExitFailure
		}
		md = chartTable(c.chart, points)
	} else {
		runs, err := j.Runs(ctx, c.symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error listing runs: %v\n", err)
			return subcommands.ExitFailure
		}
		md = runsTable(runs)
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// runsTable renders runs as a markdown table.
func runsTable(runs []journal.Run) string {
	var b strings.Builder
	b.WriteString("# Runs\n\n")
	if len(runs) == 0 {
		b.WriteString("No run recorded.\n")
		return b.String()
	}
	b.WriteString("| Run | Symbol | From | To | Investment | End total | Remainder | Capital gains | Annualized |\n")
	b.WriteString("|---|---|---|---|---:|---:|---:|---:|---:|\n")
	for _, r := range runs {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %.2f%% |\n",
			r.ID, r.Symbol, r.From, r.To, r.Investment, r.EndTotal, r.Cash, r.CapitalGains, r.AnnualizedReturn)
	}
	return b.String()
}

// chartTable renders the chart of a run as a markdown table.
func chartTable(id string, points []journal.ChartPoint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Chart of %s\n\n| Date | Value |\n|---|---:|\n", id)
	for _, p := range points {
		fmt.Fprintf(&b, "| %s | %s |\n", p.Date, p.Value)
	}
	return b.String()
}
