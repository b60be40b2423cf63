package allocation

import "fmt"

// Percent is a dimensionless fraction of the portfolio: 0.05 means 5%.
// Target weights, actual weights and deviations are all Percent values.
type Percent float64

// weightTolerance is the precision used when comparing sums of target
// weights against 1.0.
const weightTolerance = 1e-6

func (p Percent) Abs() Percent {
	if p < 0 {
		return -p
	}
	return p
}

func (p Percent) Equal(q Percent) bool {
	return (p - q).Abs() < weightTolerance
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p)*100)
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p)*100)
	if res == "+0.00%" {
		return "-"
	}
	return res
}
