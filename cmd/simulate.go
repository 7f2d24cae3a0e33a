package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/drip"
	"github.com/etnz/drip/date"
	"github.com/etnz/drip/journal"
	"github.com/etnz/drip/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// simulateCmd holds the flags for the 'simulate' subcommand.
type simulateCmd struct {
	prices     string
	dividends  string
	config     string
	name       string
	investment string
	fee        string
	startYear  int
	endYear    int
	verbose    bool
	journal    string
	chart      string
	events     bool
	period     string
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "simulate a buy and hold investment reinvesting dividends" }
func (*simulateCmd) Usage() string {
	return `dripcli simulate -prices <file> [-dividends <file>] [-config <file>] [-investment <amount>] [-fee <amount>]
                 [-start-year <year>] [-end-year <year>] [-v] [-journal <file.db|dir>] [-chart <file.csv>]
                 [-name <name>] [-events] [-chart-period daily|monthly|yearly]

  Buys the security once with the investment, holds it, and reinvests every dividend.
  Prints the total return report. See 'dripcli topic simulate'.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.prices, "prices", "prices.jsonl", "daily prices series (.jsonl or .csv)")
	f.StringVar(&c.dividends, "dividends", "", "dividends series (.jsonl or .csv), none if empty")
	f.StringVar(&c.config, "config", "", "YAML configuration file, defaults if empty")
	f.StringVar(&c.name, "name", "", "name of the security in the report, defaults to the prices file directory")
	f.StringVar(&c.investment, "investment", "", "initial investment, overrides the configuration")
	f.StringVar(&c.fee, "fee", "", "monthly fee, overrides the configuration")
	f.IntVar(&c.startYear, "start-year", 0, "first simulated year, overrides the configuration")
	f.IntVar(&c.endYear, "end-year", 0, "last year, the simulation stops on its first priced day")
	f.BoolVar(&c.verbose, "v", false, "log every event of the simulation on stderr")
	f.StringVar(&c.journal, "journal", "", "record the run in a SQLite journal (.db) or a CSV journal directory")
	f.StringVar(&c.chart, "chart", "", "write the daily account value to a CSV file")
	f.BoolVar(&c.events, "events", false, "include the event log in the report")
	f.StringVar(&c.period, "chart-period", date.Monthly.String(), "period of the report chart rows (daily, monthly, yearly)")
}

func (c *simulateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -chart-period: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := c.loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in configuration: %v\n", err)
		return subcommands.ExitUsageError
	}

	prices, err := drip.DecodeSeriesFile(c.prices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading prices: %v\n", err)
		return subcommands.ExitFailure
	}
	dividends := drip.NewSeries()
	if c.dividends != "" {
		if dividends, err = drip.DecodeSeriesFile(c.dividends); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading dividends: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	sim := drip.NewSimulator(cfg)
	if c.verbose {
		sim.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	res, err := sim.Run(prices, dividends)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error simulating: %v\n", err)
		var missing *drip.MissingPriceDataError
		if errors.As(err, &missing) {
			first, _ := prices.First()
			last, _ := prices.Latest()
			fmt.Fprintf(os.Stderr, "prices range from %s to %s\n", first, last)
		}
		return subcommands.ExitFailure
	}

	name := c.name
	if name == "" {
		name = securityName(c.prices)
	}

	if c.chart != "" {
		if err := writeChart(c.chart, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing chart: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if c.journal != "" {
		if err := record(c.journal, name, res); err != nil {
			fmt.Fprintf(os.Stderr, "Error recording the run: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	printMarkdown(renderer.RenderResult(name, res, renderer.RenderOptions{SkipEvents: !c.events, ChartPeriod: period}))
	return subcommands.ExitSuccess
}

// loadConfig reads the configuration file, and applies the flag overrides.
func (c *simulateCmd) loadConfig() (drip.Config, error) {
	cfg := drip.DefaultConfig()
	if c.config != "" {
		var err error
		if cfg, err = drip.LoadConfig(c.config); err != nil {
			return cfg, err
		}
	}
	if c.investment != "" {
		v, err := decimal.NewFromString(c.investment)
		if err != nil {
			return cfg, fmt.Errorf("invalid -investment %q: %w", c.investment, err)
		}
		cfg.Investment = v
	}
	if c.fee != "" {
		v, err := decimal.NewFromString(c.fee)
		if err != nil {
			return cfg, fmt.Errorf("invalid -fee %q: %w", c.fee, err)
		}
		cfg.MonthlyFee = v
	}
	if c.startYear != 0 {
		cfg.StartYear = c.startYear
	}
	if c.endYear != 0 {
		cfg.EndYear = c.endYear
	}
	return cfg, cfg.Validate()
}

// securityName guesses a name from the series file: its directory, or its base name.
func securityName(prices string) string {
	dir := filepath.Base(filepath.Dir(prices))
	if dir != "." && dir != string(filepath.Separator) {
		return dir
	}
	return strings.TrimSuffix(filepath.Base(prices), filepath.Ext(prices))
}

func writeChart(filename string, res *drip.Result) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := res.Chart.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func record(path, name string, res *drip.Result) error {
	j, err := journal.Open(path)
	if err != nil {
		return err
	}
	run := journal.NewRun(name, time.Now(), res)
	if err := j.Record(run, res); err != nil {
		j.Close()
		return err
	}
	log.Printf("run %s recorded in %s", run.ID, path)
	return j.Close()
}
