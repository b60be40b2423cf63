package allocation

import "time"

// Holding is a single security position: a ticker, a share count, and the
// three prices last observed for it. Buys execute at the ask, sells at the
// bid; the market price is only ever used for valuation.
type Holding struct {
	ticker string
	shares Quantity
	price  Money // market price, valuation only
	bid    Money
	ask    Money
}

// NewHolding creates an unpriced holding. It cannot be valued or traded
// until SetQuote provides its prices.
func NewHolding(ticker string, shares Quantity) *Holding {
	return &Holding{ticker: ticker, shares: shares}
}

func (h *Holding) Ticker() string   { return h.ticker }
func (h *Holding) Shares() Quantity { return h.shares }
func (h *Holding) Price() Money     { return h.price }
func (h *Holding) Bid() Money       { return h.bid }
func (h *Holding) Ask() Money       { return h.ask }

// SetQuote refreshes the holding's prices and returns the anomalies found
// in them, if any. Anomalies are warnings: they never block a later Buy or
// Sell.
func (h *Holding) SetQuote(q Quote) []Anomaly {
	h.price = q.Price
	h.bid = q.Bid
	h.ask = q.Ask
	return ValidateQuote(h.ticker, q.Price, q.Bid, q.Ask)
}

// Value returns the position's worth at the market price, independent of
// any bid/ask skew.
func (h *Holding) Value() Money { return h.price.Mul(h.shares) }

// checkPrice returns a *PriceUnavailableError if any of the three prices
// is missing.
func (h *Holding) checkPrice() error {
	switch {
	case h.price.IsZero():
		return &PriceUnavailableError{Ticker: h.ticker, Field: "market"}
	case h.bid.IsZero():
		return &PriceUnavailableError{Ticker: h.ticker, Field: "bid"}
	case h.ask.IsZero():
		return &PriceUnavailableError{Ticker: h.ticker, Field: "ask"}
	}
	return nil
}

// Buy purchases as many whole shares as the budget affords at the ask
// price. It returns nil when the budget does not cover a single share:
// that is not an error, it signals the caller that no progress is possible
// here. The unspent remainder of the budget stays with the caller.
func (h *Holding) Buy(budget Money) (*Transaction, error) {
	if h.ask.IsZero() {
		return nil, &PriceUnavailableError{Ticker: h.ticker, Field: "ask"}
	}
	n := budget.DivPrice(h.ask).Floor()
	if !n.IsPositive() {
		return nil, nil
	}
	h.shares = h.shares.Add(n)
	return &Transaction{Ticker: h.ticker, Shares: n, Price: h.ask, Time: time.Now()}, nil
}

// Sell disposes of whole shares at the bid price, up to the given cash
// amount and never more than the position holds. Like Buy, a zero-share
// outcome returns nil rather than an error.
func (h *Holding) Sell(amount Money) (*Transaction, error) {
	if h.bid.IsZero() {
		return nil, &PriceUnavailableError{Ticker: h.ticker, Field: "bid"}
	}
	n := amount.DivPrice(h.bid).Floor().Min(h.shares)
	return h.sellShares(n)
}

// SellAll liquidates the entire position, including any fractional tail,
// at the bid price.
func (h *Holding) SellAll() (*Transaction, error) {
	if h.bid.IsZero() {
		return nil, &PriceUnavailableError{Ticker: h.ticker, Field: "bid"}
	}
	return h.sellShares(h.shares)
}

func (h *Holding) sellShares(n Quantity) (*Transaction, error) {
	if !n.IsPositive() {
		return nil, nil
	}
	h.shares = h.shares.Sub(n)
	return &Transaction{Ticker: h.ticker, Shares: n.Neg(), Price: h.bid, Time: time.Now()}, nil
}
