package allocation

import "time"

// Visitor is the double-dispatch hook over the Leaf|Composite variant.
// Accept calls the matching Visit method before recursing into children in
// declared order (pre-order); a visitor relying on a different order must
// traverse by itself.
//
// Visitors must treat the tree as read-only: a visitor runs safely at any
// point, including mid-algorithm for diagnostics.
type Visitor interface {
	VisitComposite(c *Composite)
	VisitLeaf(l *Leaf)
	VisitHolding(h *Holding)
}

// Accept implements AssetClass.
func (c *Composite) Accept(v Visitor) {
	v.VisitComposite(c)
	for _, child := range c.children {
		child.Accept(v)
	}
}

// Accept implements AssetClass.
func (l *Leaf) Accept(v Visitor) {
	v.VisitLeaf(l)
	for _, h := range l.positions {
		v.VisitHolding(h)
	}
}

// AssetClassSnapshot is the immutable record of one asset class node at
// the moment of the snapshot.
type AssetClassSnapshot struct {
	Name         string
	Composite    bool
	Value        Money
	TargetWeight Percent
	Weight       Percent
	Deviation    Percent
	OutOfBalance bool
}

// HoldingSnapshot is the immutable record of one holding at the moment of
// the snapshot.
type HoldingSnapshot struct {
	Ticker     string
	AssetClass string
	Shares     Quantity
	Price      Money
	Value      Money
}

// PortfolioSnapshot is an immutable mirror of the whole tree at a point in
// time, for reporting. Asset classes and holdings appear in declaration
// order (pre-order traversal).
type PortfolioSnapshot struct {
	Time            time.Time
	Cash            Money
	CashTarget      Money
	TotalValue      Money
	InvestableValue Money
	AssetClasses    []AssetClassSnapshot
	Holdings        []HoldingSnapshot
}

// snapshotter walks the tree and records every node. It only reads.
type snapshotter struct {
	investable Money
	leaf       string // name of the leaf being visited, for holding rows
	snapshot   *PortfolioSnapshot
}

func (s *snapshotter) record(a AssetClass, composite bool) {
	s.snapshot.AssetClasses = append(s.snapshot.AssetClasses, AssetClassSnapshot{
		Name:         a.Name(),
		Composite:    composite,
		Value:        a.Value(),
		TargetWeight: a.TargetWeight(),
		Weight:       Weight(a, s.investable),
		Deviation:    Deviation(a, s.investable),
		OutOfBalance: OutOfBalance(a, s.investable),
	})
}

func (s *snapshotter) VisitComposite(c *Composite) { s.record(c, true) }

func (s *snapshotter) VisitLeaf(l *Leaf) {
	s.record(l, false)
	s.leaf = l.Name()
}

func (s *snapshotter) VisitHolding(h *Holding) {
	s.snapshot.Holdings = append(s.snapshot.Holdings, HoldingSnapshot{
		Ticker:     h.Ticker(),
		AssetClass: s.leaf,
		Shares:     h.Shares(),
		Price:      h.Price(),
		Value:      h.Value(),
	})
}

// Snapshot captures the portfolio state at the moment of the call. It does
// not mutate shares, cash or prices.
func (p *Portfolio) Snapshot() *PortfolioSnapshot {
	s := &snapshotter{
		investable: p.InvestableValue(),
		snapshot: &PortfolioSnapshot{
			Time:            time.Now(),
			Cash:            p.Cash(),
			CashTarget:      p.CashTarget(),
			TotalValue:      p.TotalValue(),
			InvestableValue: p.InvestableValue(),
		},
	}
	for _, child := range p.investments.Children() {
		child.Accept(s)
	}
	return s.snapshot
}
