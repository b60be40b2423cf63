package allocation

// AssetClass is a node of the allocation tree: either a Leaf owning an
// ordered sequence of holdings, or a Composite owning an ordered sequence
// of child asset classes. The variant is closed; consumers traverse it
// with a type switch (see the engine) or a Visitor (see the snapshotter),
// so an unhandled node kind cannot slip in silently.
type AssetClass interface {
	// Name of this asset class, for configuration errors and reports.
	Name() string
	// Value of the node: the sum of its holdings' values for a Leaf, the
	// sum of its children's values for a Composite. Recomputed on every
	// call since shares mutate during a run.
	Value() Money
	// TargetWeight is the desired fraction of the portfolio's investable
	// value. A Composite without an explicit target derives it as the sum
	// of its children's.
	TargetWeight() Percent
	// Accept dispatches the visitor over this node and, for a Composite,
	// over its children in declared order (pre-order).
	Accept(v Visitor)

	// holdings returns every holding under this node, in declared order.
	// It also seals the variant.
	holdings() []*Holding
}

// Thresholds of the 5/25 rule: an asset class is out of balance when its
// weight deviates from target by 5 absolute percentage points, or by 25%
// of the target itself.
const (
	absoluteBand Percent = 0.05
	relativeBand Percent = 0.25
)

// Weight returns the node's current fraction of the investable value. It
// is always recomputed against the total passed in, never memoized: the
// total changes after every trade.
func Weight(a AssetClass, investable Money) Percent {
	if !investable.IsPositive() {
		return 0
	}
	return Percent(a.Value().AsFloat() / investable.AsFloat())
}

// Deviation returns how far the node's weight is from its target.
// Positive means overweight, negative underweight.
func Deviation(a AssetClass, investable Money) Percent {
	return Weight(a, investable) - a.TargetWeight()
}

// OutOfBalance applies the 5/25 rule to the node. A zero target with a
// positive weight is always out of balance: the class is being phased out
// and anything it still holds is excess.
func OutOfBalance(a AssetClass, investable Money) bool {
	dev := Deviation(a, investable).Abs()
	target := a.TargetWeight()
	if target <= 0 {
		return dev > 0
	}
	return dev >= absoluteBand || dev/target >= relativeBand
}

// Leaf is a terminal asset class: a named group of holdings with a target
// weight. The holdings are in preference order: both buys and sells go to
// the first holding that can trade.
type Leaf struct {
	name      string
	target    Percent
	positions []*Holding
}

// NewLeaf creates a leaf asset class. The target weight must be in [0,1]
// and at least one holding is required.
func NewLeaf(name string, target Percent, positions ...*Holding) (*Leaf, error) {
	if target < 0 || target > 1 {
		return nil, &ConfigurationError{Node: name, Reason: "target weight must be between 0.0 and 1.0"}
	}
	if len(positions) == 0 {
		return nil, &ConfigurationError{Node: name, Reason: "a leaf asset class must have at least one holding"}
	}
	return &Leaf{name: name, target: target, positions: positions}, nil
}

func (l *Leaf) Name() string          { return l.name }
func (l *Leaf) TargetWeight() Percent { return l.target }

// Holdings returns the leaf's holdings in preference order.
func (l *Leaf) Holdings() []*Holding { return l.positions }

func (l *Leaf) Value() Money {
	var total Money
	for _, h := range l.positions {
		total = total.Add(h.Value())
	}
	return total
}

func (l *Leaf) holdings() []*Holding { return l.positions }

// Composite is a grouping of child asset classes, enabling nested trees
// where only the leaves declare weights.
type Composite struct {
	name      string
	target    Percent
	hasTarget bool
	children  []AssetClass
}

// NewComposite creates a composite asset class whose target weight derives
// from its children.
func NewComposite(name string, children ...AssetClass) (*Composite, error) {
	if len(children) == 0 {
		return nil, &ConfigurationError{Node: name, Reason: "a composite asset class must have at least one child"}
	}
	return &Composite{name: name, children: children}, nil
}

// NewCompositeWithTarget creates a composite with an explicit target
// weight instead of the derived sum of its children's.
func NewCompositeWithTarget(name string, target Percent, children ...AssetClass) (*Composite, error) {
	if target < 0 || target > 1 {
		return nil, &ConfigurationError{Node: name, Reason: "target weight must be between 0.0 and 1.0"}
	}
	c, err := NewComposite(name, children...)
	if err != nil {
		return nil, err
	}
	c.target = target
	c.hasTarget = true
	return c, nil
}

func (c *Composite) Name() string { return c.name }

// Children returns the child asset classes in declared order. Declaration
// order matters: it breaks ties when two children are equally out of
// balance.
func (c *Composite) Children() []AssetClass { return c.children }

func (c *Composite) TargetWeight() Percent {
	if c.hasTarget {
		return c.target
	}
	var sum Percent
	for _, child := range c.children {
		sum += child.TargetWeight()
	}
	return sum
}

func (c *Composite) Value() Money {
	var total Money
	for _, child := range c.children {
		total = total.Add(child.Value())
	}
	return total
}

func (c *Composite) holdings() []*Holding {
	var all []*Holding
	for _, child := range c.children {
		all = append(all, child.holdings()...)
	}
	return all
}
