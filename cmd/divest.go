package cmd

import (
	"context"
	"flag"

	"github.com/etnz/allocation"
	"github.com/google/subcommands"
)

type divestCmd struct {
	portfolioFlags
}

func (*divestCmd) Name() string { return "divest" }
func (*divestCmd) Synopsis() string {
	return "sell overweight asset classes until the cash target is met"
}
func (*divestCmd) Usage() string {
	return `alloc divest [-config <file>] [-holdings <file>]

  Sells from overweight asset classes, without reinvesting, until the cash
  balance reaches the cash target or no further sale can move it.
`
}

func (c *divestCmd) SetFlags(f *flag.FlagSet) {
	c.portfolioFlags.SetFlags(f)
}

func (c *divestCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	portfolio, warnings, err := c.load()
	if err != nil {
		return fail(err)
	}

	engine := allocation.NewEngine(portfolio)
	if err := engine.Divest(); err != nil {
		return fail(err)
	}

	report(portfolio, engine.Log(), warnings)
	return subcommands.ExitSuccess
}
