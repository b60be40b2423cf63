package allocation

import "fmt"

// Quote carries the three prices observed for a ticker. The market price
// is used for valuation only; trades execute at the bid (sell) or the ask
// (buy).
type Quote struct {
	Ticker string
	Price  Money // last market price
	Bid    Money
	Ask    Money
}

// QuoteService provides quotes for tickers. Implementations may fetch them
// one by one or in a single batch; the distinction is invisible to callers.
type QuoteService interface {
	// Quote returns the prices for a ticker, or a *PriceUnavailableError.
	Quote(ticker string) (Quote, error)
	// Cache hints that the given tickers are about to be quoted, so a
	// batching implementation can satisfy them in one round trip.
	Cache(tickers []string) error
}

// StaticQuotes is a QuoteService with predefined prices. It backs tests and
// offline runs where prices come from a file rather than a provider.
type StaticQuotes struct {
	quotes map[string]Quote
}

// NewStaticQuotes creates an empty static quote service.
func NewStaticQuotes() *StaticQuotes {
	return &StaticQuotes{quotes: make(map[string]Quote)}
}

// Set registers the prices for a ticker. A zero bid or ask defaults to the
// market price, so simple fixtures only need one number.
func (s *StaticQuotes) Set(ticker string, price, bid, ask Money) {
	if bid.IsZero() {
		bid = price
	}
	if ask.IsZero() {
		ask = price
	}
	s.quotes[ticker] = Quote{Ticker: ticker, Price: price, Bid: bid, Ask: ask}
}

// Quote implements QuoteService.
func (s *StaticQuotes) Quote(ticker string) (Quote, error) {
	q, ok := s.quotes[ticker]
	if !ok {
		return Quote{}, &PriceUnavailableError{Ticker: ticker, Field: "market"}
	}
	return q, nil
}

// Cache implements QuoteService. All prices are already known, it only
// verifies they exist.
func (s *StaticQuotes) Cache(tickers []string) error {
	var missing []string
	for _, t := range tickers {
		if _, ok := s.quotes[t]; !ok {
			missing = append(missing, t)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("no price defined for tickers: %v", missing)
	}
	return nil
}
