package allocation

import "fmt"

// Portfolio is the root container: a cash balance, a cash target, and the
// ordered top-level asset classes, wrapped in a single composite so the
// engine can treat the whole tree as one node.
//
// The portfolio is a working copy built once per command; the engine
// mutates share counts and the cash balance in place. Nothing here
// persists anything.
type Portfolio struct {
	cash        Money
	cashTarget  Money
	investments *Composite
}

// NewPortfolio assembles a portfolio from its top-level asset classes.
// The target weights declared across the tree must sum to 1.0 within
// tolerance, otherwise a *ConfigurationError is returned.
func NewPortfolio(cash, cashTarget Money, children ...AssetClass) (*Portfolio, error) {
	if cash.IsNegative() {
		return nil, &ConfigurationError{Reason: "cash value cannot be negative"}
	}
	if cashTarget.IsNegative() {
		return nil, &ConfigurationError{Reason: "cash target cannot be negative"}
	}
	root, err := NewComposite("Total", children...)
	if err != nil {
		return nil, err
	}
	if total := root.TargetWeight(); !total.Equal(1.0) {
		return nil, &ConfigurationError{
			Reason: fmt.Sprintf("target weights must sum to 1.0, got %v", float64(total)),
		}
	}
	return &Portfolio{cash: cash, cashTarget: cashTarget, investments: root}, nil
}

func (p *Portfolio) Cash() Money       { return p.cash }
func (p *Portfolio) CashTarget() Money { return p.cashTarget }

// Investments returns the root composite holding the whole tree.
func (p *Portfolio) Investments() *Composite { return p.investments }

// TotalValue returns the cash balance plus the value of every holding.
func (p *Portfolio) TotalValue() Money {
	return p.cash.Add(p.investments.Value())
}

// ExcessCash is the cash above the cash target: the only cash the engine
// is allowed to invest.
func (p *Portfolio) ExcessCash() Money {
	excess := p.cash.Sub(p.cashTarget)
	if excess.IsNegative() {
		return M(0, p.cash.Currency())
	}
	return excess
}

// InvestableValue is the denominator of every weight computation: the
// invested value plus the excess cash that is about to join it.
func (p *Portfolio) InvestableValue() Money {
	return p.investments.Value().Add(p.ExcessCash())
}

// CheckPrices verifies that every holding in the tree carries its three
// prices. It is called before any engine entry point runs, so a failed
// price fetch surfaces before the first trade.
func (p *Portfolio) CheckPrices() error {
	for _, h := range p.investments.holdings() {
		if err := h.checkPrice(); err != nil {
			return err
		}
	}
	return nil
}
