// Package renderer turns engine output into markdown reports: the
// portfolio snapshot tree and the transaction log of a run.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/allocation"
	md "github.com/nao1215/markdown"
)

// SnapshotMarkdown renders a portfolio snapshot to a markdown string:
// a summary table, the asset-class tree with weights and deviations, and
// the individual holdings.
func SnapshotMarkdown(s *allocation.PortfolioSnapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Snapshot")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Total Value"), md.Bold(s.TotalValue.String())},
		Rows: [][]string{
			{"Cash", s.Cash.String()},
			{"Cash Target", s.CashTarget.String()},
			{"Investable Value", s.InvestableValue.String()},
		},
	})

	doc.H2("Asset Classes")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignCenter,
		},
		Header: []string{"Asset Class", "Value", "Target", "Actual", "Deviation", "Balanced"},
	}
	for _, ac := range s.AssetClasses {
		name := ac.Name
		if ac.Composite {
			name = md.Bold(name)
		}
		table.Rows = append(table.Rows, []string{
			name,
			ac.Value.String(),
			ac.TargetWeight.String(),
			ac.Weight.String(),
			ac.Deviation.SignedString(),
			balanceMarker(ac),
		})
	}
	doc.Table(table)

	if len(s.Holdings) > 0 {
		doc.H2("Holdings")
		holdings := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
			},
			Header: []string{"Ticker", "Asset Class", "Shares", "Price", "Value"},
		}
		for _, h := range s.Holdings {
			holdings.Rows = append(holdings.Rows, []string{
				h.Ticker,
				h.AssetClass,
				h.Shares.String(),
				h.Price.String(),
				h.Value.String(),
			})
		}
		doc.Table(holdings)
	}

	return doc.String()
}

func balanceMarker(ac allocation.AssetClassSnapshot) string {
	if ac.OutOfBalance {
		return "⚠️"
	}
	return "✅"
}

// TransactionsMarkdown renders the executed trades of a run. An empty log
// renders as a short note rather than an empty table.
func TransactionsMarkdown(log *allocation.TransactionLog) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Transactions")
	if log.Len() == 0 {
		doc.PlainText("No transactions.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"#", "Ticker", "Shares", "Price", "Amount"},
	}
	for i, tx := range log.All() {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", i+1),
			tx.Ticker,
			tx.Shares.String(),
			tx.Price.String(),
			tx.Amount().String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// Transaction renders a single transaction to a one-line string.
func Transaction(tx allocation.Transaction) string {
	if tx.IsBuy() {
		return fmt.Sprintf("Bought %s of %s at %s", tx.Shares, tx.Ticker, tx.Price)
	}
	return fmt.Sprintf("Sold %s of %s at %s", tx.Shares.Abs(), tx.Ticker, tx.Price)
}

// Warnings renders the accumulated price anomalies as a markdown list.
// It returns "" when there is nothing to warn about.
func Warnings(anomalies []allocation.Anomaly) string {
	if len(anomalies) == 0 {
		return ""
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2("Price Warnings")
	var items []string
	for _, a := range anomalies {
		items = append(items, a.String())
	}
	doc.BulletList(items...)
	return doc.String()
}
