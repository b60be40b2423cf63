package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/allocation"
	"github.com/google/subcommands"
)

type investCmd struct {
	portfolioFlags
	amount float64
}

func (*investCmd) Name() string     { return "invest" }
func (*investCmd) Synopsis() string { return "add cash and allocate all excess cash, never selling" }
func (*investCmd) Usage() string {
	return `alloc invest [-amount <cash>] [-config <file>] [-holdings <file>]

  Adds cash to the portfolio and lazily allocates all excess cash to the
  most underweight asset classes. Prints the executed transactions and the
  resulting snapshot.
`
}

func (c *investCmd) SetFlags(f *flag.FlagSet) {
	c.portfolioFlags.SetFlags(f)
	f.Float64Var(&c.amount, "amount", 0, "Cash to add before investing. 0 invests only pre-existing excess cash.")
}

func (c *investCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount < 0 {
		fmt.Fprintln(os.Stderr, "Error: -amount cannot be negative.")
		return subcommands.ExitUsageError
	}

	portfolio, warnings, err := c.load()
	if err != nil {
		return fail(err)
	}

	engine := allocation.NewEngine(portfolio)
	if err := engine.Invest(allocation.M(c.amount, portfolio.Cash().Currency())); err != nil {
		return fail(err)
	}

	report(portfolio, engine.Log(), warnings)
	return subcommands.ExitSuccess
}
