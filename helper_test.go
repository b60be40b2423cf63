package allocation

import "testing"

const usd = "USD"

// flatQuote builds a quote where market, bid and ask are all the same
// price, for tests that do not care about spreads.
func flatQuote(ticker string, price float64) Quote {
	p := M(price, usd)
	return Quote{Ticker: ticker, Price: p, Bid: p, Ask: p}
}

// holdingAt creates a priced holding with identical market, bid and ask.
func holdingAt(ticker string, shares, price float64) *Holding {
	h := NewHolding(ticker, Q(shares))
	h.SetQuote(flatQuote(ticker, price))
	return h
}

func mustLeaf(t *testing.T, name string, target Percent, positions ...*Holding) *Leaf {
	t.Helper()
	l, err := NewLeaf(name, target, positions...)
	if err != nil {
		t.Fatalf("NewLeaf(%q) = %v", name, err)
	}
	return l
}

func mustComposite(t *testing.T, name string, children ...AssetClass) *Composite {
	t.Helper()
	c, err := NewComposite(name, children...)
	if err != nil {
		t.Fatalf("NewComposite(%q) = %v", name, err)
	}
	return c
}

func mustPortfolio(t *testing.T, cash, cashTarget float64, children ...AssetClass) *Portfolio {
	t.Helper()
	p, err := NewPortfolio(M(cash, usd), M(cashTarget, usd), children...)
	if err != nil {
		t.Fatalf("NewPortfolio() = %v", err)
	}
	return p
}
