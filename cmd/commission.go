package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/drip"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type commissionCmd struct {
	units  int64
	price  string
	cash   string
	config string
}

func (*commissionCmd) Name() string     { return "commission" }
func (*commissionCmd) Synopsis() string { return "compute the commission of a trade" }
func (*commissionCmd) Usage() string {
	return `dripcli commission -price <price> [-units <n>] [-cash <amount>] [-config <file>]

  Prints the commission charged to buy units at price. With -cash, prints instead
  the largest number of units that cash can buy, commission included.
`
}

func (c *commissionCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.units, "units", 1, "number of units traded")
	f.StringVar(&c.price, "price", "", "unit price")
	f.StringVar(&c.cash, "cash", "", "cash available, prints the units it can buy")
	f.StringVar(&c.config, "config", "", "YAML configuration file with the commission schedule")
}

func (c *commissionCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := drip.DefaultConfig()
	if c.config != "" {
		var err error
		if cfg, err = drip.LoadConfig(c.config); err != nil {
			fmt.Fprintf(os.Stderr, "Error in configuration: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	p, err := decimal.NewFromString(c.price)
	if err != nil || !p.IsPositive() {
		fmt.Fprintf(os.Stderr, "-price must be a positive number, got %q\n", c.price)
		return subcommands.ExitUsageError
	}
	price := drip.M(p, cfg.Currency)
	schedule := cfg.Commission

	if c.cash != "" {
		v, err := decimal.NewFromString(c.cash)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -cash %q: %v\n", c.cash, err)
			return subcommands.ExitUsageError
		}
		cash := drip.M(v, cfg.Currency)
		units := schedule.MaxUnits(cash, price)
		fmt.Printf("%s buys %d units at %s for %s\n", cash.Format(4), units, price.Format(4), schedule.Cost(units, price).Format(4))
		return subcommands.ExitSuccess
	}

	if c.units <= 0 {
		fmt.Fprintf(os.Stderr, "-units must be positive, got %d\n", c.units)
		return subcommands.ExitUsageError
	}
	units := drip.Units(c.units)
	fmt.Printf("commission of %d units at %s: %s\n", units, price.Format(4), schedule.Commission(units, price).Format(4))
	return subcommands.ExitSuccess
}
