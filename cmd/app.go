// Package cmd implements the CLI application that rebalances a portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/allocation"
	"github.com/etnz/allocation/renderer"
	"github.com/etnz/allocation/yfin"
	"github.com/google/subcommands"
)

// Commands lists the subcommands a main package registers.
// A main package will call subcommands.Register on each, then Execute the
// user-selected one.
var Commands = []subcommands.Command{
	&investCmd{},
	&rebalanceCmd{},
	&divestCmd{},
	&snapshotCmd{},
	&topicCmd{},
}

// portfolioFlags are the flags shared by every command that loads the
// portfolio.
type portfolioFlags struct {
	config   string
	holdings string
	offline  bool
}

func (p *portfolioFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.config, "config", "allocation.yaml", "Path to the asset-class hierarchy YAML file.")
	f.StringVar(&p.holdings, "holdings", "holdings.yaml", "Path to the current holdings YAML file.")
	f.BoolVar(&p.offline, "offline", false, "Do not fetch live quotes; every ticker must be pinned in the holdings file.")
}

// load builds the working-copy portfolio, pricing it with live quotes
// unless -offline is set. Anomaly warnings are returned for printing after
// the command output.
func (p *portfolioFlags) load() (*allocation.Portfolio, []allocation.Anomaly, error) {
	loader := &allocation.Loader{}
	if !p.offline {
		loader.Quotes = yfin.New()
	}
	return loader.Load(p.config, p.holdings)
}

// printMarkdown renders markdown for the terminal. On any rendering
// trouble the raw markdown is still printed: reports must never be lost to
// a styling error.
func printMarkdown(markdown string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(markdown)
		return
	}
	out, err := r.Render(markdown)
	if err != nil {
		fmt.Print(markdown)
		return
	}
	fmt.Print(out)
}

// report prints the outcome of an engine run: the transactions, the
// post-run snapshot, and any price warnings accumulated during loading.
func report(p *allocation.Portfolio, log *allocation.TransactionLog, warnings []allocation.Anomaly) {
	printMarkdown(renderer.TransactionsMarkdown(log))
	printMarkdown(renderer.SnapshotMarkdown(p.Snapshot()))
	if w := renderer.Warnings(warnings); w != "" {
		printMarkdown(w)
	}
}

// fail reports a command failure on stderr.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
