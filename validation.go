package allocation

import "fmt"

// maxSpread is the widest bid/ask spread, as a fraction of the market
// price, that goes unremarked.
const maxSpread = 0.05

// Anomaly is a non-fatal warning about the prices observed for a ticker.
// A crossed or wide market is suspicious but does not block trading: buys
// keep using the ask and sells the bid.
type Anomaly struct {
	Ticker  string
	Message string
}

func (a Anomaly) String() string {
	return fmt.Sprintf("%s: %s", a.Ticker, a.Message)
}

// ValidateQuote checks the relationships between the market, bid and ask
// prices of a ticker and returns a warning for each anomaly found:
//
//   - bid higher than ask (crossed market)
//   - bid higher than the market price
//   - ask lower than the market price
//   - spread of 5% or more of the market price
//
// A zero bid or ask is treated as absent and skips the checks that need it.
func ValidateQuote(ticker string, price, bid, ask Money) []Anomaly {
	var anomalies []Anomaly
	warn := func(format string, args ...any) {
		anomalies = append(anomalies, Anomaly{Ticker: ticker, Message: fmt.Sprintf(format, args...)})
	}

	if !bid.IsZero() && !ask.IsZero() {
		if bid.GreaterThan(ask) {
			warn("bid price (%s) is higher than ask price (%s)", bid, ask)
		}
		if !price.IsZero() {
			spread := ask.Sub(bid).AsFloat() / price.AsFloat()
			if spread >= maxSpread {
				warn("large spread: %.1f%% (bid: %s, ask: %s, market: %s)", spread*100, bid, ask, price)
			}
		}
	}
	if !bid.IsZero() && !price.IsZero() && bid.GreaterThan(price) {
		warn("bid price (%s) is higher than market price (%s)", bid, price)
	}
	if !ask.IsZero() && !price.IsZero() && ask.LessThan(price) {
		warn("ask price (%s) is lower than market price (%s)", ask, price)
	}
	return anomalies
}
