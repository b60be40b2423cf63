package allocation

import "fmt"

// ConfigurationError reports an inconsistent or incomplete portfolio
// definition, such as sibling target weights that do not sum to 1.0.
// It aborts the command immediately.
type ConfigurationError struct {
	Node   string // name of the offending asset class, or "" for the portfolio
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Node == "" {
		return fmt.Sprintf("invalid portfolio configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration for %q: %s", e.Node, e.Reason)
}

// PriceUnavailableError reports that a holding touched during a command is
// missing one of its three prices. It aborts the command; the engine never
// retries a quote.
type PriceUnavailableError struct {
	Ticker string
	Field  string // "price", "bid" or "ask"
}

func (e *PriceUnavailableError) Error() string {
	return fmt.Sprintf("%s price not available for ticker %s", e.Field, e.Ticker)
}
