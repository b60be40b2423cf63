package cmd

import (
	"context"
	"flag"

	"github.com/etnz/allocation/renderer"
	"github.com/google/subcommands"
)

type snapshotCmd struct {
	portfolioFlags
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "report the portfolio tree without trading" }
func (*snapshotCmd) Usage() string {
	return `alloc snapshot [-config <file>] [-holdings <file>]

  Prints the asset-class tree with values, target and actual weights,
  deviations and the 5/25 balance check. Never trades.
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	c.portfolioFlags.SetFlags(f)
}

func (c *snapshotCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	portfolio, warnings, err := c.load()
	if err != nil {
		return fail(err)
	}

	printMarkdown(renderer.SnapshotMarkdown(portfolio.Snapshot()))
	if w := renderer.Warnings(warnings); w != "" {
		printMarkdown(w)
	}
	return subcommands.ExitSuccess
}
