package cmd

import (
	"context"
	"flag"

	"github.com/etnz/allocation"
	"github.com/google/subcommands"
)

type rebalanceCmd struct {
	portfolioFlags
}

func (*rebalanceCmd) Name() string { return "rebalance" }
func (*rebalanceCmd) Synopsis() string {
	return "sell overweight asset classes, then reinvest the proceeds"
}
func (*rebalanceCmd) Usage() string {
	return `alloc rebalance [-config <file>] [-holdings <file>]

  Restores balance in two phases: sells every asset class that is
  overweight beyond its 5/25 band down to its target, then allocates the
  proceeds plus any excess cash to the most underweight classes.
`
}

func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	c.portfolioFlags.SetFlags(f)
}

func (c *rebalanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	portfolio, warnings, err := c.load()
	if err != nil {
		return fail(err)
	}

	engine := allocation.NewEngine(portfolio)
	if err := engine.Rebalance(); err != nil {
		return fail(err)
	}

	report(portfolio, engine.Log(), warnings)
	return subcommands.ExitSuccess
}
