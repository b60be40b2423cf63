package allocation

import (
	"errors"
	"testing"
)

// logged collects the log into a slice for assertions.
func logged(e *Engine) []Transaction {
	var txs []Transaction
	for _, tx := range e.Log().All() {
		txs = append(txs, tx)
	}
	return txs
}

func TestInvestBuysMostUnderweight(t *testing.T) {
	// A is 25% when its target is 50%: the whole deposit goes there.
	p := mustPortfolio(t, 0, 0,
		mustLeaf(t, "A", 0.5, holdingAt("a", 20, 10)),
		mustLeaf(t, "B", 0.3, holdingAt("b", 18, 10)),
		mustLeaf(t, "C", 0.2, holdingAt("c", 12, 10)))
	e := NewEngine(p)

	if err := e.Invest(M(300, usd)); err != nil {
		t.Fatalf("Invest() = %v", err)
	}

	txs := logged(e)
	if len(txs) != 1 {
		t.Fatalf("Invest() executed %d transactions, want 1: %v", len(txs), txs)
	}
	if txs[0].Ticker != "a" || !txs[0].Shares.Equal(Q(30)) {
		t.Errorf("Invest() bought %s, want 30 a", txs[0])
	}
	if !p.Cash().IsZero() {
		t.Errorf("cash after Invest() = %s, want 0", p.Cash())
	}
}

func TestInvestTieGoesToFirstDeclared(t *testing.T) {
	p := mustPortfolio(t, 0, 0,
		mustLeaf(t, "X", 0.5, holdingAt("x", 0, 10)),
		mustLeaf(t, "Y", 0.5, holdingAt("y", 0, 10)))
	e := NewEngine(p)

	if err := e.Invest(M(10, usd)); err != nil {
		t.Fatalf("Invest() = %v", err)
	}

	txs := logged(e)
	if len(txs) != 1 || txs[0].Ticker != "x" {
		t.Fatalf("Invest() with tied deviations = %v, want a single buy of x", txs)
	}
}

func TestInvestNeverSellsAndKeepsCashConsistent(t *testing.T) {
	p := mustPortfolio(t, 0, 0,
		mustLeaf(t, "A", 1.0, holdingAt("a", 0, 7)))
	e := NewEngine(p)

	if err := e.Invest(M(100, usd)); err != nil {
		t.Fatalf("Invest() = %v", err)
	}

	spent := M(0, usd)
	for _, tx := range logged(e) {
		if !tx.IsBuy() {
			t.Errorf("Invest() sold: %s", tx)
		}
		spent = spent.Add(tx.Amount())
	}
	// 14 shares at 7 cost 98; the 2 left cannot afford a 15th share.
	if !spent.Equal(M(98, usd)) {
		t.Errorf("Invest() spent %s, want %s", spent, M(98, usd))
	}
	if !p.Cash().Equal(M(2, usd)) {
		t.Errorf("cash after Invest() = %s, want the remainder %s", p.Cash(), M(2, usd))
	}
}

func TestInvestNothingToDo(t *testing.T) {
	p := mustPortfolio(t, 0, 0,
		mustLeaf(t, "A", 0.5, holdingAt("a", 50, 10)),
		mustLeaf(t, "B", 0.5, holdingAt("b", 50, 10)))
	e := NewEngine(p)

	if err := e.Invest(M(0, usd)); err != nil {
		t.Fatalf("Invest() = %v", err)
	}
	if e.Log().Len() != 0 {
		t.Errorf("Invest(0) on a balanced portfolio executed %d transactions, want 0", e.Log().Len())
	}
}

func TestInvestRejectsNegativeAmount(t *testing.T) {
	p := mustPortfolio(t, 0, 0,
		mustLeaf(t, "A", 1.0, holdingAt("a", 1, 10)))
	var cerr *ConfigurationError
	if err := NewEngine(p).Invest(M(-5, usd)); !errors.As(err, &cerr) {
		t.Errorf("Invest(-5) = %v, want *ConfigurationError", err)
	}
}

func TestInvestAbortsOnMissingPrice(t *testing.T) {
	p := mustPortfolio(t, 0, 0,
		mustLeaf(t, "A", 1.0, NewHolding("a", Q(1))))
	e := NewEngine(p)

	var perr *PriceUnavailableError
	if err := e.Invest(M(100, usd)); !errors.As(err, &perr) {
		t.Fatalf("Invest() with an unpriced holding = %v, want *PriceUnavailableError", err)
	}
	// Nothing traded, nothing deposited.
	if e.Log().Len() != 0 {
		t.Errorf("aborted Invest() left %d transactions", e.Log().Len())
	}
	if !p.Cash().IsZero() {
		t.Errorf("aborted Invest() left cash at %s, want 0", p.Cash())
	}
}

func TestRebalanceSellsThenBuys(t *testing.T) {
	p := mustPortfolio(t, 0, 0,
		mustLeaf(t, "A", 0.5, holdingAt("a", 80, 10)),
		mustLeaf(t, "B", 0.5, holdingAt("b", 20, 10)))
	e := NewEngine(p)

	if err := e.Rebalance(); err != nil {
		t.Fatalf("Rebalance() = %v", err)
	}

	txs := logged(e)
	if len(txs) != 2 {
		t.Fatalf("Rebalance() executed %d transactions, want 2: %v", len(txs), txs)
	}
	if txs[0].Ticker != "a" || !txs[0].Shares.Equal(Q(-30)) {
		t.Errorf("first transaction = %s, want a sale of 30 a", txs[0])
	}
	if txs[1].Ticker != "b" || !txs[1].Shares.Equal(Q(30)) {
		t.Errorf("second transaction = %s, want a buy of 30 b", txs[1])
	}
	if !p.Cash().IsZero() {
		t.Errorf("cash after Rebalance() = %s, want 0", p.Cash())
	}
}

func TestRebalanceLeavesBalancedPortfolioAlone(t *testing.T) {
	p := mustPortfolio(t, 0, 0,
		mustLeaf(t, "A", 0.5, holdingAt("a", 51, 10)),
		mustLeaf(t, "B", 0.5, holdingAt("b", 49, 10)))
	e := NewEngine(p)

	if err := e.Rebalance(); err != nil {
		t.Fatalf("Rebalance() = %v", err)
	}
	if e.Log().Len() != 0 {
		t.Errorf("Rebalance() within the 5/25 bands executed %d transactions, want 0", e.Log().Len())
	}
}

func TestDivestSellsUpToCashTarget(t *testing.T) {
	p := mustPortfolio(t, 0, 150,
		mustLeaf(t, "A", 0.6, holdingAt("a", 80, 10)),
		mustLeaf(t, "B", 0.4, holdingAt("b", 20, 10)))
	e := NewEngine(p)

	if err := e.Divest(); err != nil {
		t.Fatalf("Divest() = %v", err)
	}

	txs := logged(e)
	if len(txs) != 1 {
		t.Fatalf("Divest() executed %d transactions, want 1: %v", len(txs), txs)
	}
	// The sale stops at the cash target, not at A's full excess.
	if txs[0].Ticker != "a" || !txs[0].Shares.Equal(Q(-15)) {
		t.Errorf("Divest() sold %s, want 15 a", txs[0])
	}
	if !p.Cash().Equal(M(150, usd)) {
		t.Errorf("cash after Divest() = %s, want %s", p.Cash(), M(150, usd))
	}
}

func TestDivestAlreadyAtTarget(t *testing.T) {
	p := mustPortfolio(t, 150, 150,
		mustLeaf(t, "A", 1.0, holdingAt("a", 10, 10)))
	e := NewEngine(p)

	if err := e.Divest(); err != nil {
		t.Fatalf("Divest() = %v", err)
	}
	if e.Log().Len() != 0 {
		t.Errorf("Divest() at the cash target executed %d transactions, want 0", e.Log().Len())
	}
}

func TestDivestStopsWhenNothingIsOverweight(t *testing.T) {
	p := mustPortfolio(t, 0, 1000,
		mustLeaf(t, "A", 0.5, holdingAt("a", 50, 10)),
		mustLeaf(t, "B", 0.5, holdingAt("b", 50, 10)))
	e := NewEngine(p)

	// The target is unreachable without selling in-balance classes;
	// Divest must terminate rather than force a sale.
	if err := e.Divest(); err != nil {
		t.Fatalf("Divest() = %v", err)
	}
	if e.Log().Len() != 0 {
		t.Errorf("Divest() on a balanced portfolio executed %d transactions, want 0", e.Log().Len())
	}
}

func TestInvestDescendsIntoNestedComposites(t *testing.T) {
	stocks := mustComposite(t, "Stocks",
		mustLeaf(t, "US", 0.4, holdingAt("vti", 0, 10)),
		mustLeaf(t, "Intl", 0.2, holdingAt("vxus", 4, 10)))
	bonds := mustLeaf(t, "Bonds", 0.4, holdingAt("bnd", 10, 10))
	p := mustPortfolio(t, 0, 0, stocks, bonds)
	e := NewEngine(p)

	if err := e.Invest(M(20, usd)); err != nil {
		t.Fatalf("Invest() = %v", err)
	}

	// Stocks as a whole is the most underweight branch, and inside it US
	// is further from target than Intl.
	txs := logged(e)
	if len(txs) == 0 || txs[0].Ticker != "vti" {
		t.Fatalf("Invest() transactions = %v, want the first buy to be vti", txs)
	}
}

func TestInvestFallsThroughExhaustedBranch(t *testing.T) {
	// A is the most underweight but one share costs more than the budget;
	// the engine must move on to B instead of stalling.
	p := mustPortfolio(t, 0, 0,
		mustLeaf(t, "A", 0.5, holdingAt("a", 0, 500)),
		mustLeaf(t, "B", 0.5, holdingAt("b", 1, 10)))
	e := NewEngine(p)

	if err := e.Invest(M(100, usd)); err != nil {
		t.Fatalf("Invest() = %v", err)
	}

	txs := logged(e)
	if len(txs) == 0 {
		t.Fatal("Invest() executed no transactions, want buys of b")
	}
	for _, tx := range txs {
		if tx.Ticker != "b" {
			t.Errorf("Invest() bought %s, want only b", tx)
		}
	}
}
