package allocation

import (
	"cmp"
	"slices"
)

// Engine runs the rebalancing algorithms over one portfolio, appending
// every executed trade to one transaction log. It holds no other state:
// remaining cash lives in the portfolio, and candidate selection is
// recomputed from scratch after every trade.
//
// Exactly one of Invest, Rebalance or Divest runs at a time against a
// given portfolio; the engine assumes exclusive access to the tree for the
// duration of the call.
type Engine struct {
	portfolio *Portfolio
	log       *TransactionLog
}

// NewEngine creates an engine over the portfolio with an empty log.
func NewEngine(p *Portfolio) *Engine {
	return &Engine{portfolio: p, log: NewTransactionLog()}
}

// Log returns the transactions executed so far, in execution order.
func (e *Engine) Log() *TransactionLog { return e.log }

// Invest adds cash to the portfolio and lazily allocates all excess cash:
// each round buys into the most underweight branch, recursively, and never
// sells. It terminates when the excess cash is exhausted or no holding in
// any branch can afford one more share.
func (e *Engine) Invest(cash Money) error {
	if cash.IsNegative() {
		return &ConfigurationError{Reason: "cannot invest a negative amount"}
	}
	if err := e.portfolio.CheckPrices(); err != nil {
		return err
	}
	e.portfolio.cash = e.portfolio.cash.Add(cash)
	return e.investExcess()
}

// Rebalance restores balance in two phases: first sell down every
// overweight branch, then run the same lazy allocation as Invest over the
// proceeds plus any pre-existing excess cash.
func (e *Engine) Rebalance() error {
	if err := e.portfolio.CheckPrices(); err != nil {
		return err
	}
	if err := e.sellOverweight(); err != nil {
		return err
	}
	return e.investExcess()
}

// Divest sells from overweight branches, without reinvesting, until the
// cash balance reaches the cash target or no further sale can move it.
func (e *Engine) Divest() error {
	if err := e.portfolio.CheckPrices(); err != nil {
		return err
	}
	for {
		needed := e.portfolio.cashTarget.Sub(e.portfolio.cash)
		if !needed.IsPositive() {
			return nil
		}
		tx, err := sellOverweight(e.portfolio.investments, e.portfolio.InvestableValue(), needed)
		if err != nil {
			return err
		}
		if tx == nil {
			// Nothing sellable is overweight, or the shortfall is smaller
			// than one share's bid. Normal terminal state.
			return nil
		}
		e.portfolio.cash = e.portfolio.cash.Add(tx.Amount())
		e.log.Append(*tx)
	}
}

// investExcess repeatedly routes the whole excess-cash pool to the most
// underweight branch. The pool shrinks by each purchase; totals are
// recomputed from the tree on every round.
func (e *Engine) investExcess() error {
	for {
		budget := e.portfolio.ExcessCash()
		if !budget.IsPositive() {
			return nil
		}
		tx, err := buyMostUnderweight(e.portfolio.investments, budget, e.portfolio.InvestableValue())
		if err != nil {
			return err
		}
		if tx == nil {
			// No branch can afford one more share. Normal terminal state.
			return nil
		}
		e.portfolio.cash = e.portfolio.cash.Sub(tx.Amount())
		e.log.Append(*tx)
	}
}

// sellOverweight runs phase A of Rebalance: sell down the most overweight
// out-of-balance branch, round after round, until none is left or no sale
// is possible.
func (e *Engine) sellOverweight() error {
	for {
		tx, err := sellOverweight(e.portfolio.investments, e.portfolio.InvestableValue(), Money{})
		if err != nil {
			return err
		}
		if tx == nil {
			return nil
		}
		e.portfolio.cash = e.portfolio.cash.Add(tx.Amount())
		e.log.Append(*tx)
	}
}

// buyMostUnderweight descends the tree toward the most negative deviation
// and buys as many shares as the budget affords there. At a composite the
// children are tried most-underweight first; the sort is stable, so a tie
// goes to the first declared child. A branch where no holding can afford a
// share simply yields nothing and the next candidate is tried, which keeps
// an exhausted branch from looping forever.
func buyMostUnderweight(node AssetClass, budget, investable Money) (*Transaction, error) {
	switch n := node.(type) {
	case *Leaf:
		// Holdings in preference order: the first that affords a share wins.
		for _, h := range n.positions {
			tx, err := h.Buy(budget)
			if err != nil || tx != nil {
				return tx, err
			}
		}
		return nil, nil
	case *Composite:
		children := slices.Clone(n.children)
		slices.SortStableFunc(children, func(a, b AssetClass) int {
			return cmp.Compare(Deviation(a, investable), Deviation(b, investable))
		})
		for _, child := range children {
			tx, err := buyMostUnderweight(child, budget, investable)
			if err != nil || tx != nil {
				return tx, err
			}
		}
		return nil, nil
	}
	return nil, nil
}

// sellOverweight descends the tree toward the most positive deviation and
// sells from the first leaf found overweight beyond its 5/25 band. The
// sale is sized to bring the leaf back to its target weight, capped by the
// optional limit (used by Divest to stop at the cash target); holdings are
// sold in preference order, like buys. A branch that cannot sell yields
// nothing and the next candidate is tried.
func sellOverweight(node AssetClass, investable Money, limit Money) (*Transaction, error) {
	switch n := node.(type) {
	case *Leaf:
		if Deviation(n, investable) <= 0 || !OutOfBalance(n, investable) {
			return nil, nil
		}
		excess := investable.Scale(Deviation(n, investable))
		if !limit.IsZero() && limit.LessThan(excess) {
			excess = limit
		}
		for _, h := range n.positions {
			tx, err := h.Sell(excess)
			if err != nil || tx != nil {
				return tx, err
			}
		}
		return nil, nil
	case *Composite:
		children := slices.Clone(n.children)
		slices.SortStableFunc(children, func(a, b AssetClass) int {
			return cmp.Compare(Deviation(b, investable), Deviation(a, investable))
		})
		for _, child := range children {
			tx, err := sellOverweight(child, investable, limit)
			if err != nil || tx != nil {
				return tx, err
			}
		}
		return nil, nil
	}
	return nil, nil
}
